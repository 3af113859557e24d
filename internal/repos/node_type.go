package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
)

type NodeTypeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.NodeType) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.NodeType, error)
	// List orders by the explicit sort key, then newest-first; domainID
	// narrows to one domain when non-nil.
	List(ctx context.Context, tx *gorm.DB, domainID *uuid.UUID) ([]*domain.NodeType, error)
	ListByDomain(ctx context.Context, tx *gorm.DB, domainID uuid.UUID) ([]*domain.NodeType, error)
	Update(ctx context.Context, tx *gorm.DB, row *domain.NodeType) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type nodeTypeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNodeTypeRepo(db *gorm.DB, baseLog *logger.Logger) NodeTypeRepo {
	return &nodeTypeRepo{db: db, log: baseLog.With("repo", "NodeTypeRepo")}
}

func (r *nodeTypeRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.NodeType) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Create(row).Error
}

func (r *nodeTypeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.NodeType, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.NodeType
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

func (r *nodeTypeRepo) List(ctx context.Context, tx *gorm.DB, domainID *uuid.UUID) ([]*domain.NodeType, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(ctx).
		Preload("Domain").
		Order(`"order" ASC, created_at DESC`)
	if domainID != nil {
		q = q.Where("domain_id = ?", *domainID)
	}
	var out []*domain.NodeType
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *nodeTypeRepo) ListByDomain(ctx context.Context, tx *gorm.DB, domainID uuid.UUID) ([]*domain.NodeType, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.NodeType
	if domainID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("domain_id = ?", domainID).
		Order(`"order" ASC, name ASC`).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *nodeTypeRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.NodeType) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil
	}
	return t.WithContext(ctx).Save(row).Error
}

func (r *nodeTypeRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).Where("id = ?", id).Delete(&domain.NodeType{}).Error
}
