// Package sqlerr turns SQLite driver errors into HTTP errors.
//
// Constraint failures become 400 responses with a readable message, a
// missing row becomes 404, and anything else is a 500.
package sqlerr

import (
	"errors"
	"regexp"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Code classifies a driver error.
type Code string

const (
	Other               Code = "other"
	UniqueViolation     Code = "unique_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	Busy                Code = "busy"
)

// Error is a parsed SQLite error.
type Error struct {
	Code         Code
	DatabaseCode int
	Message      string
	TableName    string
	ColumnName   string

	driverErr error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps an extended SQLite result code.
func MapCode(code int) Code {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return UniqueViolation
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return NotNullViolation
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return CheckViolation
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ForeignKeyViolation
	}

	switch code & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return Busy
	}

	return Other
}

// "UNIQUE constraint failed: carousel_images.image_path"
var constraintTarget = regexp.MustCompile(`constraint failed: (\w+)\.(\w+)`)

// ConvertSQLiteError parses a driver error.
func ConvertSQLiteError(src *sqlite.Error) *Error {
	sqlErr := &Error{
		Code:         MapCode(src.Code()),
		DatabaseCode: src.Code(),
		Message:      src.Error(),
		driverErr:    src,
	}

	if m := constraintTarget.FindStringSubmatch(src.Error()); len(m) == 3 {
		sqlErr.TableName = m[1]
		sqlErr.ColumnName = m[2]
	}

	return sqlErr
}

// ErrCode returns the Code of err, or Other when err is not a SQLite error.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var driverErr *sqlite.Error
	if errors.As(err, &driverErr) {
		return MapCode(driverErr.Code())
	}

	return Other
}
