package models

import "users-tasks-service/apperr"

// Assignment is a row of the users_tasks join table. The pair is not unique.
type Assignment struct {
	UserID string `json:"user_id" db:"user_id"`
	TaskID string `json:"task_id" db:"task_id"`
}

func validationError(msg string) error {
	return apperr.Validation(msg)
}

// truthy follows JSON truthiness: null, false, 0 and "" are falsy.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	default:
		return true
	}
}
