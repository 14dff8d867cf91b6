package repository

import (
	"errors"

	"github.com/inkwell/inkwell-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VersionRepository append-only access to blog version snapshots.
// Rows are only ever inserted; updates and deletes happen solely through
// the cascade on blog deletion.
type VersionRepository interface {
	Create(version *domain.BlogVersion) error
	FindByBlogID(blogID string) ([]*domain.BlogVersion, error)
	FindByID(id string) (*domain.BlogVersion, error)
	// NextVersion computes max(version)+1 for the blog, 1 when no versions
	// exist. Callers must run this inside a transaction together with the
	// following Create so two writers cannot pick the same number; the
	// unique (blog_id, version) index rejects any race that slips through.
	NextVersion(blogID string) (int, error)
	// WithTx returns a copy of the repository bound to the given transaction
	WithTx(tx *gorm.DB) VersionRepository
}

type versionRepository struct {
	db *gorm.DB
}

// NewVersionRepository creates a new VersionRepository
func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{db: db}
}

func (r *versionRepository) WithTx(tx *gorm.DB) VersionRepository {
	return &versionRepository{db: tx}
}

func (r *versionRepository) Create(version *domain.BlogVersion) error {
	return r.db.Create(version).Error
}

// FindByBlogID returns all snapshots for the blog, most recent first.
// The result is read fresh on every call, never cached.
func (r *versionRepository) FindByBlogID(blogID string) ([]*domain.BlogVersion, error) {
	var versions []*domain.BlogVersion
	err := r.db.Where("blog_id = ?", blogID).
		Order("version DESC").
		Find(&versions).Error
	return versions, err
}

// FindByID returns the snapshot or nil when it does not exist
func (r *versionRepository) FindByID(id string) (*domain.BlogVersion, error) {
	var version domain.BlogVersion
	err := r.db.Where("id = ?", id).First(&version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &version, nil
}

func (r *versionRepository) NextVersion(blogID string) (int, error) {
	q := r.db.Model(&domain.BlogVersion{})
	// Row locks serialize concurrent numbering on MySQL. SQLite (used in
	// tests) has no FOR UPDATE; its single-writer model covers this.
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var maxVersion *int
	err := q.Where("blog_id = ?", blogID).
		Select("MAX(version)").
		Scan(&maxVersion).Error
	if err != nil {
		return 0, err
	}
	if maxVersion == nil {
		return 1, nil
	}
	return *maxVersion + 1, nil
}
