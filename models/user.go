package models

// User represents a row in the users table.
// Password is stored and returned as provided by the client.
type User struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"password" db:"password"`
}

// CreateUserRequest is the raw POST /users body. Fields are untyped so that
// Validate can tell a missing field from a field of the wrong type.
type CreateUserRequest struct {
	ID       any `json:"id"`
	Name     any `json:"name"`
	Email    any `json:"email"`
	Password any `json:"password"`
}

const (
	msgUserWrongTypes    = `wrong data types, all fields must be of type "string"`
	msgUserMissingFields = "missing data, check that id, name, email and password are all provided"
)

// Validate checks types first, then presence.
func (r CreateUserRequest) Validate() (User, error) {
	id, okID := r.ID.(string)
	name, okName := r.Name.(string)
	email, okEmail := r.Email.(string)
	password, okPassword := r.Password.(string)

	if !okID || !okName || !okEmail || !okPassword {
		return User{}, validationError(msgUserWrongTypes)
	}
	if id == "" || name == "" || email == "" || password == "" {
		return User{}, validationError(msgUserMissingFields)
	}

	return User{ID: id, Name: name, Email: email, Password: password}, nil
}
