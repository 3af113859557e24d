package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
)

type RatingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.Rating) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Rating, error)
	ListByNode(ctx context.Context, tx *gorm.DB, nodeID uuid.UUID) ([]*domain.Rating, error)
	ListByNodeAndMetric(ctx context.Context, tx *gorm.DB, nodeID uuid.UUID, metric domain.MetricType) ([]*domain.Rating, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type ratingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRatingRepo(db *gorm.DB, baseLog *logger.Logger) RatingRepo {
	return &ratingRepo{db: db, log: baseLog.With("repo", "RatingRepo")}
}

func (r *ratingRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.Rating) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Create(row).Error
}

func (r *ratingRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Rating, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.Rating
	if err := t.WithContext(ctx).
		Preload("Node").
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

func (r *ratingRepo) ListByNode(ctx context.Context, tx *gorm.DB, nodeID uuid.UUID) ([]*domain.Rating, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Rating
	if nodeID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("node_id = ?", nodeID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ratingRepo) ListByNodeAndMetric(ctx context.Context, tx *gorm.DB, nodeID uuid.UUID, metric domain.MetricType) ([]*domain.Rating, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Rating
	if nodeID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("node_id = ? AND metric_type = ?", nodeID, metric).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ratingRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).Where("id = ?", id).Delete(&domain.Rating{}).Error
}
