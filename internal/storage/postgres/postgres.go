package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solemate/solemate-api/internal/storage"
)

// Store реализует storage.Storage поверх PostgreSQL через пул pgx
type Store struct {
	pool *pgxpool.Pool
}

var _ storage.Storage = (*Store)(nil)

// New создает новый экземпляр Store
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
