package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
)

type EdgeTypeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.EdgeType) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.EdgeType, error)
	List(ctx context.Context, tx *gorm.DB, domainID *uuid.UUID) ([]*domain.EdgeType, error)
	ListByDomain(ctx context.Context, tx *gorm.DB, domainID uuid.UUID) ([]*domain.EdgeType, error)
	Update(ctx context.Context, tx *gorm.DB, row *domain.EdgeType) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type edgeTypeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEdgeTypeRepo(db *gorm.DB, baseLog *logger.Logger) EdgeTypeRepo {
	return &edgeTypeRepo{db: db, log: baseLog.With("repo", "EdgeTypeRepo")}
}

func (r *edgeTypeRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.EdgeType) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Create(row).Error
}

func (r *edgeTypeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.EdgeType, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.EdgeType
	if err := t.WithContext(ctx).
		Preload("Domain").
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

func (r *edgeTypeRepo) List(ctx context.Context, tx *gorm.DB, domainID *uuid.UUID) ([]*domain.EdgeType, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(ctx).
		Preload("Domain").
		Order("name ASC, created_at DESC")
	if domainID != nil {
		q = q.Where("domain_id = ?", *domainID)
	}
	var out []*domain.EdgeType
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *edgeTypeRepo) ListByDomain(ctx context.Context, tx *gorm.DB, domainID uuid.UUID) ([]*domain.EdgeType, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.EdgeType
	if domainID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("domain_id = ?", domainID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *edgeTypeRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.EdgeType) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil
	}
	return t.WithContext(ctx).Save(row).Error
}

func (r *edgeTypeRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).Where("id = ?", id).Delete(&domain.EdgeType{}).Error
}
