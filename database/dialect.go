package database

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
	DriverMySQL    = "mysql"
)

var ErrUnsupportedDriver = errors.New("unsupported driver")

type dialect struct {
	driver string
	schema string
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverSQLite:
		return dialect{driver: driver, schema: sqliteSchema}, nil
	case DriverPostgres:
		return dialect{driver: driver, schema: postgresSchema}, nil
	case DriverMySQL:
		return dialect{driver: driver, schema: mysqlSchema}, nil
	default:
		return dialect{}, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

func (d dialect) isUniqueViolation(err error) bool {
	switch d.driver {
	case DriverSQLite:
		var sqErr sqlite3.Error
		return errors.As(err, &sqErr) &&
			(sqErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
	case DriverPostgres:
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == "23505"
	case DriverMySQL:
		var myErr *mysql.MySQLError
		return errors.As(err, &myErr) && myErr.Number == 1062
	}
	return false
}
