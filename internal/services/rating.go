package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
	"github.com/knowligo/knowligo-backend/internal/platform/apierr"
	"github.com/knowligo/knowligo-backend/internal/repos"
)

type CreateRatingInput struct {
	NodeID     uuid.UUID              `json:"node_id" binding:"required"`
	MetricType string                 `json:"metric_type" binding:"required"`
	Score      float64                `json:"score"`
	Details    map[string]interface{} `json:"details"`
}

type RatingService interface {
	Create(ctx context.Context, in CreateRatingInput) (*domain.Rating, error)
	ListByNode(ctx context.Context, nodeID uuid.UUID) ([]*domain.Rating, error)
	ListByNodeAndMetric(ctx context.Context, nodeID uuid.UUID, metric domain.MetricType) ([]*domain.Rating, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ratingService struct {
	db         *gorm.DB
	log        *logger.Logger
	ratingRepo repos.RatingRepo
	nodeRepo   repos.NodeRepo
}

func NewRatingService(db *gorm.DB, log *logger.Logger, ratingRepo repos.RatingRepo, nodeRepo repos.NodeRepo) RatingService {
	return &ratingService{
		db:         db,
		log:        log.With("service", "RatingService"),
		ratingRepo: ratingRepo,
		nodeRepo:   nodeRepo,
	}
}

func (s *ratingService) Create(ctx context.Context, in CreateRatingInput) (*domain.Rating, error) {
	metric := domain.MetricType(in.MetricType)
	if !metric.Valid() {
		return nil, apierr.Validation("invalid metric type %q", in.MetricType)
	}

	node, err := s.nodeRepo.GetByID(ctx, nil, in.NodeID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if node == nil {
		return nil, apierr.Validation("node %s does not exist", in.NodeID)
	}

	row := &domain.Rating{
		ID:         uuid.New(),
		NodeID:     in.NodeID,
		MetricType: metric,
		Score:      in.Score,
		Details:    datatypes.JSONMap(in.Details),
	}
	if err := s.ratingRepo.Create(ctx, nil, row); err != nil {
		return nil, apierr.FromDB(err)
	}
	return row, nil
}

func (s *ratingService) ListByNode(ctx context.Context, nodeID uuid.UUID) ([]*domain.Rating, error) {
	rows, err := s.ratingRepo.ListByNode(ctx, nil, nodeID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	return rows, nil
}

func (s *ratingService) ListByNodeAndMetric(ctx context.Context, nodeID uuid.UUID, metric domain.MetricType) ([]*domain.Rating, error) {
	if !metric.Valid() {
		return nil, apierr.Validation("invalid metric type %q", metric)
	}
	rows, err := s.ratingRepo.ListByNodeAndMetric(ctx, nil, nodeID, metric)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	return rows, nil
}

func (s *ratingService) Delete(ctx context.Context, id uuid.UUID) error {
	row, err := s.ratingRepo.GetByID(ctx, nil, id)
	if err != nil {
		return apierr.FromDB(err)
	}
	if row == nil {
		return apierr.NotFound("rating %s not found", id)
	}
	if err := s.ratingRepo.Delete(ctx, nil, id); err != nil {
		return apierr.FromDB(err)
	}
	return nil
}
