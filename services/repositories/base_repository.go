package repositories

import (
	"gorm.io/gorm"
)

// BaseRepository holds the handle every typed repository reads and writes
// through. A repository is either bound to the shared connection or, via
// rebind, to one ledger transaction for its lifetime.
type BaseRepository struct {
	db *gorm.DB
}

func NewBaseRepository(db *gorm.DB) BaseRepository {
	return BaseRepository{db: db}
}

// DB returns the underlying database handle.
func (r *BaseRepository) DB() *gorm.DB {
	return r.db
}

// rebind returns a copy of the base bound to tx. Typed repositories wrap this
// in their WithTx so transaction-scoped copies keep the concrete type.
func (r *BaseRepository) rebind(tx *gorm.DB) BaseRepository {
	return BaseRepository{db: tx}
}
