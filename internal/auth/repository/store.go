package repository

import (
	"context"
	"database/sql"

	"github.com/abisalde/inventory-service/internal/database"
)

// Store hands out repositories bound either to the pool or to a single
// transaction.
type Store interface {
	Users() UserRepository
	InTx(ctx context.Context, fn func(ctx context.Context, users UserRepository) error) error
}

type SQLStore struct {
	db    *sql.DB
	users UserRepository
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, users: NewUserRepository(db)}
}

func (s *SQLStore) Users() UserRepository {
	return s.users
}

// InTx runs fn in a read-committed transaction. fn must only use the
// repository it is given.
func (s *SQLStore) InTx(ctx context.Context, fn func(ctx context.Context, users UserRepository) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	return database.WithTx(ctx, s.db, opts, func(ctx context.Context, tx database.DBTX) error {
		return fn(ctx, NewUserRepository(tx))
	})
}

var _ Store = (*SQLStore)(nil)
