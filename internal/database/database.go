package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/abisalde/inventory-service/internal/configs"
	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type Database struct {
	SQLDB  *sql.DB
	Driver string
	logger *zap.Logger
}

// Connect opens the configured store, verifies it answers a ping and, when
// database.migrate is set, brings the schema up to date.
func Connect(ctx context.Context, cfg *configs.Config, logger *zap.Logger) (*Database, error) {
	sqlDB, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	db := &Database{SQLDB: sqlDB, Driver: cfg.DB.Driver, logger: logger}

	if cfg.DB.Migrate {
		if err := db.Migrate(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("database migration failed: %w", err)
		}
	}

	logger.Info("connected to database", zap.String("driver", cfg.DB.Driver))
	return db, nil
}

// Open builds the *sql.DB and applies pool settings without touching the
// network.
func Open(cfg *configs.Config) (*sql.DB, error) {
	var dsn string
	switch cfg.DB.Driver {
	case configs.DriverMySQL:
		dsn = mysqlDSN(cfg)
	case configs.DriverSQLite:
		dsn = sqliteDSN(cfg.DB.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}

	sqlDB, err := sql.Open(cfg.DB.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if cfg.DB.Driver == configs.DriverSQLite {
		// a single connection keeps writers serialized and in-memory
		// databases alive for the lifetime of the pool
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		return sqlDB, nil
	}

	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLife)
	return sqlDB, nil
}

func mysqlDSN(cfg *configs.Config) string {
	port := cfg.DB.Port
	if port == 0 {
		port = 3306
	}

	mc := mysql.NewConfig()
	mc.User = cfg.DB.User
	mc.Passwd = cfg.DB.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.DB.Host, strconv.Itoa(port))
	mc.DBName = cfg.DB.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	return mc.FormatDSN()
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		if strings.Contains(path, "?") {
			return path + "&_fk=1"
		}
		return path + "?_fk=1"
	}
	return "file:" + path + "?_fk=1&_busy_timeout=5000"
}

func (db *Database) Close() error {
	if db == nil || db.SQLDB == nil {
		return nil
	}
	if err := db.SQLDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

func (db *Database) HealthCheck(ctx context.Context) error {
	if db == nil || db.SQLDB == nil {
		return fmt.Errorf("sql.DB is not initialized")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
	}
	return db.SQLDB.PingContext(ctx)
}
