package repository

import "gorm.io/gorm"

// TxManager runs a function against transaction-scoped repositories.
// The version store uses it to keep "read max version, insert snapshot"
// sequences and the three-step restore atomic.
type TxManager interface {
	WithinTransaction(fn func(blogs BlogRepository, versions VersionRepository) error) error
}

type gormTxManager struct {
	db       *gorm.DB
	blogs    BlogRepository
	versions VersionRepository
}

// NewTxManager creates a TxManager over the given DB and repositories
func NewTxManager(db *gorm.DB, blogs BlogRepository, versions VersionRepository) TxManager {
	return &gormTxManager{db: db, blogs: blogs, versions: versions}
}

func (m *gormTxManager) WithinTransaction(fn func(blogs BlogRepository, versions VersionRepository) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(m.blogs.WithTx(tx), m.versions.WithTx(tx))
	})
}
