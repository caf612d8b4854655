package models

import "time"

// TaskStatus is assigned by the store on insert and never changed by the API.
type TaskStatus int

const (
	StatusPending TaskStatus = iota
	StatusInProgress
	StatusDone
)

// Task represents a row in the tasks table.
type Task struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	Status      TaskStatus `json:"status" db:"status"`
}

// TaskWithUsers is a task flattened together with the users assigned to it.
type TaskWithUsers struct {
	Task
	Responsibles []User `json:"responsibles"`
}

// CreateTaskRequest is the raw POST /tasks body.
type CreateTaskRequest struct {
	ID          any `json:"id"`
	Title       any `json:"title"`
	Description any `json:"description"`
}

const msgTaskWrongTypes = `wrong data types, id, title and description must be of type "string"`

// CandidateID returns the id for the duplicate check, which runs before
// Validate. Non-string ids have nothing to collide with.
func (r CreateTaskRequest) CandidateID() (string, bool) {
	id, ok := r.ID.(string)
	return id, ok
}

// Validate only checks types; empty strings are accepted.
func (r CreateTaskRequest) Validate() (Task, error) {
	id, okID := r.ID.(string)
	title, okTitle := r.Title.(string)
	description, okDescription := r.Description.(string)

	if !okID || !okTitle || !okDescription {
		return Task{}, validationError(msgTaskWrongTypes)
	}

	return Task{ID: id, Title: title, Description: description}, nil
}

// UpdateTaskRequest is the raw PUT /tasks/{id} body.
type UpdateTaskRequest struct {
	ID          any `json:"id"`
	Title       any `json:"title"`
	Description any `json:"description"`
}

// Apply merges the request into current. A field replaces the current value
// only when it is truthy; falsy values (absent, null, "", false, 0) keep it.
// Truthy values that are not strings are rejected.
func (r UpdateTaskRequest) Apply(current Task) (Task, error) {
	out := current

	for _, f := range []struct {
		name string
		raw  any
		dst  *string
	}{
		{"id", r.ID, &out.ID},
		{"title", r.Title, &out.Title},
		{"description", r.Description, &out.Description},
	} {
		if !truthy(f.raw) {
			continue
		}
		s, ok := f.raw.(string)
		if !ok {
			return Task{}, validationError(`"` + f.name + `" must be of type "string"`)
		}
		*f.dst = s
	}

	return out, nil
}
