package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	ErrConstraintViolation = errors.New("constraint violation")
	ErrUnknownColumn       = errors.New("unknown column")
	ErrEmptyRow            = errors.New("no columns to write")
)

// Store is the query layer over users, tasks and users_tasks. Every method is
// a single statement; nothing runs inside a transaction.
type Store struct {
	db      *sqlx.DB
	dialect dialect
}

func NewStore(db *sqlx.DB) (*Store, error) {
	d, err := dialectFor(db.DriverName())
	if err != nil {
		return nil, err
	}
	return &Store{db: db, dialect: d}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SelectAll loads every row of t into dest, a pointer to a slice, in the
// store's natural order.
func (s *Store) SelectAll(ctx context.Context, t Table, dest any) error {
	q := "SELECT " + strings.Join(t.Columns, ", ") + " FROM " + t.Name
	if err := s.db.SelectContext(ctx, dest, q); err != nil {
		return fmt.Errorf("select %s: %w", t.Name, err)
	}
	return nil
}

func (s *Store) SelectWhereEquals(ctx context.Context, t Table, column string, value any, dest any) error {
	if !t.hasColumn(column) {
		return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, column)
	}

	q := s.db.Rebind("SELECT " + strings.Join(t.Columns, ", ") + " FROM " + t.Name + " WHERE " + column + " = ?")
	if err := s.db.SelectContext(ctx, dest, q, value); err != nil {
		return fmt.Errorf("select %s by %s: %w", t.Name, column, err)
	}
	return nil
}

// SelectWhereLike matches rows whose column contains substring. Wildcards in
// substring are passed through and case sensitivity is the store's.
func (s *Store) SelectWhereLike(ctx context.Context, t Table, column, substring string, dest any) error {
	if !t.hasColumn(column) {
		return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, column)
	}

	q := s.db.Rebind("SELECT " + strings.Join(t.Columns, ", ") + " FROM " + t.Name + " WHERE " + column + " LIKE ?")
	if err := s.db.SelectContext(ctx, dest, q, "%"+substring+"%"); err != nil {
		return fmt.Errorf("select %s like %s: %w", t.Name, column, err)
	}
	return nil
}

// Insert writes one row. Uniqueness violations come back wrapping
// ErrConstraintViolation.
func (s *Store) Insert(ctx context.Context, t Table, row Row) error {
	cols, err := t.writableColumns(row)
	if err != nil {
		return err
	}

	q := "INSERT INTO " + t.Name + " (" + strings.Join(cols, ", ") + ") VALUES (:" + strings.Join(cols, ", :") + ")"
	if _, err := s.db.NamedExecContext(ctx, q, map[string]any(row)); err != nil {
		if s.dialect.isUniqueViolation(err) {
			return fmt.Errorf("%w: insert %s: %v", ErrConstraintViolation, t.Name, err)
		}
		return fmt.Errorf("insert %s: %w", t.Name, err)
	}
	return nil
}

// Update sets the row's columns on every row where whereColumn equals
// whereValue and returns the number of rows affected.
func (s *Store) Update(ctx context.Context, t Table, row Row, whereColumn string, whereValue any) (int64, error) {
	if !t.hasColumn(whereColumn) {
		return 0, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, whereColumn)
	}
	cols, err := t.writableColumns(row)
	if err != nil {
		return 0, err
	}

	set := make([]string, 0, len(cols))
	args := make(map[string]any, len(cols)+1)
	for _, c := range cols {
		set = append(set, c+" = :"+c)
		args[c] = row[c]
	}
	args["where_value"] = whereValue

	q := "UPDATE " + t.Name + " SET " + strings.Join(set, ", ") + " WHERE " + whereColumn + " = :where_value"
	res, err := s.db.NamedExecContext(ctx, q, args)
	if err != nil {
		if s.dialect.isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: update %s: %v", ErrConstraintViolation, t.Name, err)
		}
		return 0, fmt.Errorf("update %s: %w", t.Name, err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected in %s: %w", t.Name, err)
	}
	return aff, nil
}

func (s *Store) DeleteWhere(ctx context.Context, t Table, column string, value any) (int64, error) {
	if !t.hasColumn(column) {
		return 0, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, column)
	}

	q := s.db.Rebind("DELETE FROM " + t.Name + " WHERE " + column + " = ?")
	res, err := s.db.ExecContext(ctx, q, value)
	if err != nil {
		return 0, fmt.Errorf("delete %s by %s: %w", t.Name, column, err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected in %s: %w", t.Name, err)
	}
	return aff, nil
}

// DeleteWhereBoth deletes rows matching both equality predicates.
func (s *Store) DeleteWhereBoth(ctx context.Context, t Table, column1 string, value1 any, column2 string, value2 any) (int64, error) {
	for _, c := range []string{column1, column2} {
		if !t.hasColumn(c) {
			return 0, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, c)
		}
	}

	q := s.db.Rebind("DELETE FROM " + t.Name + " WHERE " + column1 + " = ? AND " + column2 + " = ?")
	res, err := s.db.ExecContext(ctx, q, value1, value2)
	if err != nil {
		return 0, fmt.Errorf("delete %s by %s and %s: %w", t.Name, column1, column2, err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected in %s: %w", t.Name, err)
	}
	return aff, nil
}

// writableColumns returns the row's columns in table order.
func (t Table) writableColumns(row Row) ([]string, error) {
	for c := range row {
		if !t.isWritable(c) {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, c)
		}
	}

	cols := make([]string, 0, len(row))
	for _, c := range t.Writable {
		if _, ok := row[c]; ok {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyRow, t.Name)
	}
	return cols, nil
}
