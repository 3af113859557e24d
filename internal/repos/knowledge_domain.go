package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
)

type DomainRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.Domain) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Domain, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*domain.Domain, error)
	// List returns active domains newest-first with the creator preloaded.
	// isPublic narrows by visibility when non-nil.
	List(ctx context.Context, tx *gorm.DB, isPublic *bool) ([]*domain.Domain, error)
	Update(ctx context.Context, tx *gorm.DB, row *domain.Domain) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type domainRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDomainRepo(db *gorm.DB, baseLog *logger.Logger) DomainRepo {
	return &domainRepo{db: db, log: baseLog.With("repo", "DomainRepo")}
}

func (r *domainRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.Domain) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Create(row).Error
}

func (r *domainRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Domain, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.Domain
	if err := t.WithContext(ctx).
		Preload("Creator").
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *domainRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*domain.Domain, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if slug == "" {
		return nil, nil
	}
	var out []*domain.Domain
	if err := t.WithContext(ctx).
		Preload("Creator").
		Where("slug = ?", slug).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *domainRepo) List(ctx context.Context, tx *gorm.DB, isPublic *bool) ([]*domain.Domain, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(ctx).
		Preload("Creator").
		Where("is_active = ?", true).
		Order("created_at DESC")
	if isPublic != nil {
		q = q.Where("is_public = ?", *isPublic)
	}
	var out []*domain.Domain
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *domainRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.Domain) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil
	}
	return t.WithContext(ctx).Save(row).Error
}

func (r *domainRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).Where("id = ?", id).Delete(&domain.Domain{}).Error
}
