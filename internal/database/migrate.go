package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sync"

	"github.com/abisalde/inventory-service/internal/configs"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/mysql/*.sql migrations/sqlite3/*.sql
var migrations embed.FS

// goose keeps its base FS and dialect in package globals
var gooseMu sync.Mutex

func (db *Database) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, db.SQLDB, db.Driver)
}

// RunMigrations applies the embedded migrations for driver.
func RunMigrations(ctx context.Context, sqlDB *sql.DB, driver string) error {
	var dialect string
	switch driver {
	case configs.DriverMySQL:
		dialect = "mysql"
	case configs.DriverSQLite:
		dialect = "sqlite3"
	default:
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	return goose.UpContext(ctx, sqlDB, path.Join("migrations", driver))
}
