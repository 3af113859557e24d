package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
)

type EdgeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.Edge) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Edge, error)
	// List returns edges newest-first. nodeID matches either endpoint;
	// domainID restricts to edges whose source node lives in that domain.
	List(ctx context.Context, tx *gorm.DB, nodeID, domainID *uuid.UUID) ([]*domain.Edge, error)
	ListOutgoing(ctx context.Context, tx *gorm.DB, nodeID uuid.UUID) ([]*domain.Edge, error)
	ListIncoming(ctx context.Context, tx *gorm.DB, nodeID uuid.UUID) ([]*domain.Edge, error)
	Update(ctx context.Context, tx *gorm.DB, row *domain.Edge) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type edgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEdgeRepo(db *gorm.DB, baseLog *logger.Logger) EdgeRepo {
	return &edgeRepo{db: db, log: baseLog.With("repo", "EdgeRepo")}
}

func (r *edgeRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.Edge) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Create(row).Error
}

func (r *edgeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Edge, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.Edge
	if err := t.WithContext(ctx).
		Preload("Source").
		Preload("Target").
		Preload("Type").
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

func (r *edgeRepo) List(ctx context.Context, tx *gorm.DB, nodeID, domainID *uuid.UUID) ([]*domain.Edge, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(ctx).
		Preload("Source").
		Preload("Target").
		Preload("Type").
		Order("edges.created_at DESC")
	if nodeID != nil {
		q = q.Where("edges.source_id = ? OR edges.target_id = ?", *nodeID, *nodeID)
	}
	if domainID != nil {
		q = q.Joins("JOIN nodes source_node ON source_node.id = edges.source_id").
			Where("source_node.domain_id = ?", *domainID)
	}
	var out []*domain.Edge
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *edgeRepo) ListOutgoing(ctx context.Context, tx *gorm.DB, nodeID uuid.UUID) ([]*domain.Edge, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Edge
	if nodeID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Preload("Target").
		Preload("Type").
		Where("source_id = ?", nodeID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *edgeRepo) ListIncoming(ctx context.Context, tx *gorm.DB, nodeID uuid.UUID) ([]*domain.Edge, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Edge
	if nodeID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Preload("Source").
		Preload("Type").
		Where("target_id = ?", nodeID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *edgeRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.Edge) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil
	}
	return t.WithContext(ctx).Save(row).Error
}

func (r *edgeRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).Where("id = ?", id).Delete(&domain.Edge{}).Error
}
