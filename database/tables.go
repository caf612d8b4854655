package database

// Row is a set of column values for Insert and Update.
type Row map[string]any

// Table describes one table the service reads and writes. Columns is the
// select list; Writable lists the columns Insert and Update may set.
type Table struct {
	Name     string
	Columns  []string
	Writable []string
}

var (
	Users = Table{
		Name:     "users",
		Columns:  []string{"id", "name", "email", "password"},
		Writable: []string{"id", "name", "email", "password"},
	}

	// Tasks leaves created_at and status to the store defaults.
	Tasks = Table{
		Name:     "tasks",
		Columns:  []string{"id", "title", "description", "created_at", "status"},
		Writable: []string{"id", "title", "description"},
	}

	UsersTasks = Table{
		Name:     "users_tasks",
		Columns:  []string{"user_id", "task_id"},
		Writable: []string{"user_id", "task_id"},
	}
)

func (t Table) hasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

func (t Table) isWritable(column string) bool {
	for _, c := range t.Writable {
		if c == column {
			return true
		}
	}
	return false
}
