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

type CreateNodeTypeInput struct {
	Name         string                 `json:"name" binding:"required"`
	Slug         string                 `json:"slug"`
	Description  *string                `json:"description"`
	Translations map[string]interface{} `json:"translations"`
	Icon         *string                `json:"icon"`
	Color        string                 `json:"color"`
	Schema       map[string]interface{} `json:"schema"`
	Order        *int                   `json:"order"`
	DomainID     uuid.UUID              `json:"domain_id" binding:"required"`
}

type UpdateNodeTypeInput struct {
	Name         *string                `json:"name"`
	Slug         *string                `json:"slug"`
	Description  *string                `json:"description"`
	Translations map[string]interface{} `json:"translations"`
	Icon         *string                `json:"icon"`
	Color        *string                `json:"color"`
	Schema       map[string]interface{} `json:"schema"`
	Order        *int                   `json:"order"`
}

type NodeTypeService interface {
	Create(ctx context.Context, in CreateNodeTypeInput, callerID uuid.UUID) (*domain.NodeType, error)
	List(ctx context.Context, domainID *uuid.UUID) ([]*domain.NodeType, error)
	ListByDomain(ctx context.Context, domainID uuid.UUID) ([]*domain.NodeType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.NodeType, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateNodeTypeInput, callerID uuid.UUID) (*domain.NodeType, error)
	Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error
}

type nodeTypeService struct {
	db           *gorm.DB
	log          *logger.Logger
	nodeTypeRepo repos.NodeTypeRepo
	domainRepo   repos.DomainRepo
}

func NewNodeTypeService(db *gorm.DB, log *logger.Logger, nodeTypeRepo repos.NodeTypeRepo, domainRepo repos.DomainRepo) NodeTypeService {
	return &nodeTypeService{
		db:           db,
		log:          log.With("service", "NodeTypeService"),
		nodeTypeRepo: nodeTypeRepo,
		domainRepo:   domainRepo,
	}
}

// requireDomainOwner loads the domain and verifies the caller created it.
func (s *nodeTypeService) requireDomainOwner(ctx context.Context, domainID, callerID uuid.UUID) (*domain.Domain, error) {
	d, err := s.domainRepo.GetByID(ctx, nil, domainID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if d == nil {
		return nil, apierr.Validation("domain %s does not exist", domainID)
	}
	if d.CreatorID != callerID {
		return nil, apierr.Forbidden("only the domain creator can manage its node types")
	}
	return d, nil
}

func (s *nodeTypeService) Create(ctx context.Context, in CreateNodeTypeInput, callerID uuid.UUID) (*domain.NodeType, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apierr.Validation("name is required")
	}
	if _, err := s.requireDomainOwner(ctx, in.DomainID, callerID); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	color := in.Color
	if color == "" {
		color = "#1890ff"
	}
	order := 0
	if in.Order != nil {
		order = *in.Order
	}

	row := &domain.NodeType{
		ID:           uuid.New(),
		Name:         name,
		Slug:         slug,
		Description:  in.Description,
		Translations: datatypes.JSONMap(in.Translations),
		Icon:         in.Icon,
		Color:        color,
		Schema:       datatypes.JSONMap(in.Schema),
		Order:        order,
		DomainID:     in.DomainID,
	}
	if err := s.nodeTypeRepo.Create(ctx, nil, row); err != nil {
		return nil, apierr.FromDB(err)
	}
	return row, nil
}

func (s *nodeTypeService) List(ctx context.Context, domainID *uuid.UUID) ([]*domain.NodeType, error) {
	rows, err := s.nodeTypeRepo.List(ctx, nil, domainID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	return rows, nil
}

func (s *nodeTypeService) ListByDomain(ctx context.Context, domainID uuid.UUID) ([]*domain.NodeType, error) {
	rows, err := s.nodeTypeRepo.ListByDomain(ctx, nil, domainID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	return rows, nil
}

func (s *nodeTypeService) GetByID(ctx context.Context, id uuid.UUID) (*domain.NodeType, error) {
	row, err := s.nodeTypeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if row == nil {
		return nil, apierr.NotFound("node type %s not found", id)
	}
	return row, nil
}

func (s *nodeTypeService) Update(ctx context.Context, id uuid.UUID, in UpdateNodeTypeInput, callerID uuid.UUID) (*domain.NodeType, error) {
	row, err := s.nodeTypeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if row == nil {
		return nil, apierr.NotFound("node type %s not found", id)
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
	if in.Schema != nil {
		row.Schema = datatypes.JSONMap(in.Schema)
	}
	if in.Order != nil {
		row.Order = *in.Order
	}

	if err := s.nodeTypeRepo.Update(ctx, nil, row); err != nil {
		return nil, apierr.FromDB(err)
	}
	return row, nil
}

func (s *nodeTypeService) Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error {
	row, err := s.nodeTypeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return apierr.FromDB(err)
	}
	if row == nil {
		return apierr.NotFound("node type %s not found", id)
	}
	if _, err := s.requireDomainOwner(ctx, row.DomainID, callerID); err != nil {
		return err
	}
	// Referencing nodes block the delete at the store; the violation
	// surfaces as a conflict.
	if err := s.nodeTypeRepo.Delete(ctx, nil, id); err != nil {
		return apierr.FromDB(err)
	}
	return nil
}
