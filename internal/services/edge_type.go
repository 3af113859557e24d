package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
	"github.com/knowligo/knowligo-backend/internal/platform/apierr"
	"github.com/knowligo/knowligo-backend/internal/repos"
)

type CreateEdgeTypeInput struct {
	Name         string                 `json:"name" binding:"required"`
	Slug         string                 `json:"slug"`
	Description  *string                `json:"description"`
	Translations map[string]interface{} `json:"translations"`
	SemanticType string                 `json:"semantic_type"`
	Icon         *string                `json:"icon"`
	Color        string                 `json:"color"`
	Weight       *float64               `json:"weight"`
	IsDirected   *bool                  `json:"is_directed"`
	DomainID     uuid.UUID              `json:"domain_id" binding:"required"`
}

type UpdateEdgeTypeInput struct {
	Name         *string                `json:"name"`
	Slug         *string                `json:"slug"`
	Description  *string                `json:"description"`
	Translations map[string]interface{} `json:"translations"`
	SemanticType *string                `json:"semantic_type"`
	Icon         *string                `json:"icon"`
	Color        *string                `json:"color"`
	Weight       *float64               `json:"weight"`
	IsDirected   *bool                  `json:"is_directed"`
}

type EdgeTypeService interface {
	Create(ctx context.Context, in CreateEdgeTypeInput, callerID uuid.UUID) (*domain.EdgeType, error)
	List(ctx context.Context, domainID *uuid.UUID) ([]*domain.EdgeType, error)
	ListByDomain(ctx context.Context, domainID uuid.UUID) ([]*domain.EdgeType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.EdgeType, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateEdgeTypeInput, callerID uuid.UUID) (*domain.EdgeType, error)
	Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error
}

type edgeTypeService struct {
	db           *gorm.DB
	log          *logger.Logger
	edgeTypeRepo repos.EdgeTypeRepo
	domainRepo   repos.DomainRepo
}

func NewEdgeTypeService(db *gorm.DB, log *logger.Logger, edgeTypeRepo repos.EdgeTypeRepo, domainRepo repos.DomainRepo) EdgeTypeService {
	return &edgeTypeService{
		db:           db,
		log:          log.With("service", "EdgeTypeService"),
		edgeTypeRepo: edgeTypeRepo,
		domainRepo:   domainRepo,
	}
}

func (s *edgeTypeService) requireDomainOwner(ctx context.Context, domainID, callerID uuid.UUID) (*domain.Domain, error) {
	d, err := s.domainRepo.GetByID(ctx, nil, domainID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if d == nil {
		return nil, apierr.Validation("domain %s does not exist", domainID)
	}
	if d.CreatorID != callerID {
		return nil, apierr.Forbidden("only the domain creator can manage its edge types")
	}
	return d, nil
}

func (s *edgeTypeService) Create(ctx context.Context, in CreateEdgeTypeInput, callerID uuid.UUID) (*domain.EdgeType, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apierr.Validation("name is required")
	}
	if _, err := s.requireDomainOwner(ctx, in.DomainID, callerID); err != nil {
		return nil, err
	}

	semantic := domain.SemanticCustom
	if in.SemanticType != "" {
		semantic = domain.SemanticType(in.SemanticType)
		if !semantic.Valid() {
			return nil, apierr.Validation("invalid semantic type %q", in.SemanticType)
		}
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	color := in.Color
	if color == "" {
		color = "#52c41a"
	}
	weight := 0.0
	if in.Weight != nil {
		weight = *in.Weight
	}
	isDirected := true
	if in.IsDirected != nil {
		isDirected = *in.IsDirected
	}

	row := &domain.EdgeType{
		ID:           uuid.New(),
		Name:         name,
		Slug:         slug,
		Description:  in.Description,
		Translations: datatypes.JSONMap(in.Translations),
		SemanticType: semantic,
		Icon:         in.Icon,
		Color:        color,
		Weight:       weight,
		IsDirected:   isDirected,
		DomainID:     in.DomainID,
	}
	if err := s.edgeTypeRepo.Create(ctx, nil, row); err != nil {
		return nil, apierr.FromDB(err)
	}
	return row, nil
}

func (s *edgeTypeService) List(ctx context.Context, domainID *uuid.UUID) ([]*domain.EdgeType, error) {
	rows, err := s.edgeTypeRepo.List(ctx, nil, domainID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	return rows, nil
}

func (s *edgeTypeService) ListByDomain(ctx context.Context, domainID uuid.UUID) ([]*domain.EdgeType, error) {
	rows, err := s.edgeTypeRepo.ListByDomain(ctx, nil, domainID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	return rows, nil
}

func (s *edgeTypeService) GetByID(ctx context.Context, id uuid.UUID) (*domain.EdgeType, error) {
	row, err := s.edgeTypeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if row == nil {
		return nil, apierr.NotFound("edge type %s not found", id)
	}
	return row, nil
}

func (s *edgeTypeService) Update(ctx context.Context, id uuid.UUID, in UpdateEdgeTypeInput, callerID uuid.UUID) (*domain.EdgeType, error) {
	row, err := s.edgeTypeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if row == nil {
		return nil, apierr.NotFound("edge type %s not found", id)
	}
	if _, err := s.requireDomainOwner(ctx, row.DomainID, callerID); err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apierr.Validation("name cannot be empty")
		}
		row.Name = name
		if in.Slug == nil {
			row.Slug = Slugify(name)
		}
	}
	if in.Slug != nil {
		slug := strings.TrimSpace(*in.Slug)
		if slug == "" {
			return nil, apierr.Validation("slug cannot be empty")
		}
		row.Slug = slug
	}
	if in.SemanticType != nil {
		semantic := domain.SemanticType(*in.SemanticType)
		if !semantic.Valid() {
			return nil, apierr.Validation("invalid semantic type %q", *in.SemanticType)
		}
		row.SemanticType = semantic
	}
	if in.Description != nil {
		row.Description = in.Description
	}
	if in.Translations != nil {
		row.Translations = datatypes.JSONMap(in.Translations)
	}
	if in.Icon != nil {
		row.Icon = in.Icon
	}
	if in.Color != nil {
		row.Color = *in.Color
	}
	if in.Weight != nil {
		row.Weight = *in.Weight
	}
	if in.IsDirected != nil {
		row.IsDirected = *in.IsDirected
	}

	if err := s.edgeTypeRepo.Update(ctx, nil, row); err != nil {
		return nil, apierr.FromDB(err)
	}
	return row, nil
}

func (s *edgeTypeService) Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error {
	row, err := s.edgeTypeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return apierr.FromDB(err)
	}
	if row == nil {
		return apierr.NotFound("edge type %s not found", id)
	}
	if _, err := s.requireDomainOwner(ctx, row.DomainID, callerID); err != nil {
		return err
	}
	if err := s.edgeTypeRepo.Delete(ctx, nil, id); err != nil {
		return apierr.FromDB(err)
	}
	return nil
}
