package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	customErrors "github.com/abisalde/inventory-service/internal/errors"
	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("record not found")

const (
	mysqlDuplicateEntry        = 1062
	mysqlCheckConstraintFailed = 3819
)

// constraintErrors maps the constraint (or, for SQLite unique indexes, the
// table.column) named in a driver message to the client-facing error. Check
// constraints come first since their names overlap the column names.
var constraintErrors = []struct {
	names []string
	err   *customErrors.AppError
}{
	{[]string{"CHK_USER_EMAIL_FORMAT"}, customErrors.InvalidEmail},
	{[]string{"CHK_USER_USERNAME_FORMAT"}, customErrors.InvalidUsername},
	{[]string{"CHK_USER_PHONE_FORMAT"}, customErrors.InvalidPhone},
	{[]string{"CHK_USER_ZIP_FORMAT"}, customErrors.InvalidZip},
	{[]string{"CHK_USER_INITIAL_FORMAT"}, customErrors.InvalidInitial},
	{[]string{"CHK_USER_STATE_FORMAT"}, customErrors.InvalidState},
	{[]string{"USER_EMAIL_UNIQUE", "USER.USER_EMAIL"}, customErrors.EmailExists},
	{[]string{"USER_USERNAME_UNIQUE", "USER.USER_USERNAME"}, customErrors.UsernameExists},
	{[]string{"USER_PHONE_UNIQUE", "USER.USER_PHONE"}, customErrors.PhoneExists},
}

// translate converts driver errors into repository and application errors.
// Unrecognised failures are wrapped and left for the caller to report as
// internal errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if msg, ok := constraintMessage(err); ok {
		for _, c := range constraintErrors {
			for _, name := range c.names {
				if strings.Contains(msg, name) {
					return c.err.Wrap(err)
				}
			}
		}
	}
	return fmt.Errorf("db error: %w", err)
}

func constraintMessage(err error) (string, bool) {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry, mysqlCheckConstraintFailed:
			return myErr.Message, true
		}
		return "", false
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		return liteErr.Error(), true
	}
	return "", false
}

// dbTime stores instants as whole UTC seconds so that SQLite's textual
// timestamps compare in chronological order.
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
