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

type CreateDomainInput struct {
	Name         string                 `json:"name" binding:"required"`
	Slug         string                 `json:"slug"`
	Description  *string                `json:"description"`
	Translations map[string]interface{} `json:"translations"`
	IsPublic     *bool                  `json:"is_public"`
	Settings     map[string]interface{} `json:"settings"`
}

type UpdateDomainInput struct {
	Name         *string                `json:"name"`
	Slug         *string                `json:"slug"`
	Description  *string                `json:"description"`
	Translations map[string]interface{} `json:"translations"`
	IsPublic     *bool                  `json:"is_public"`
	IsActive     *bool                  `json:"is_active"`
	Settings     map[string]interface{} `json:"settings"`
}

type DomainService interface {
	Create(ctx context.Context, in CreateDomainInput, ownerID uuid.UUID) (*domain.Domain, error)
	List(ctx context.Context, isPublic *bool) ([]*domain.Domain, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Domain, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Domain, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateDomainInput, callerID uuid.UUID) (*domain.Domain, error)
	Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error
}

type domainService struct {
	db         *gorm.DB
	log        *logger.Logger
	domainRepo repos.DomainRepo
}

func NewDomainService(db *gorm.DB, log *logger.Logger, domainRepo repos.DomainRepo) DomainService {
	return &domainService{
		db:         db,
		log:        log.With("service", "DomainService"),
		domainRepo: domainRepo,
	}
}

func (s *domainService) Create(ctx context.Context, in CreateDomainInput, ownerID uuid.UUID) (*domain.Domain, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apierr.Validation("name is required")
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return nil, apierr.Validation("cannot derive a slug from name %q", name)
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	row := &domain.Domain{
		ID:           uuid.New(),
		Name:         name,
		Slug:         slug,
		Description:  in.Description,
		Translations: datatypes.JSONMap(in.Translations),
		IsPublic:     isPublic,
		IsActive:     true,
		Settings:     datatypes.JSONMap(in.Settings),
		CreatorID:    ownerID,
	}
	if err := s.domainRepo.Create(ctx, nil, row); err != nil {
		return nil, apierr.FromDB(err)
	}
	s.log.Info("created domain", "domain_id", row.ID, "slug", row.Slug)
	return row, nil
}

func (s *domainService) List(ctx context.Context, isPublic *bool) ([]*domain.Domain, error) {
	rows, err := s.domainRepo.List(ctx, nil, isPublic)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	return rows, nil
}

func (s *domainService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Domain, error) {
	row, err := s.domainRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if row == nil {
		return nil, apierr.NotFound("domain %s not found", id)
	}
	return row, nil
}

func (s *domainService) GetBySlug(ctx context.Context, slug string) (*domain.Domain, error) {
	row, err := s.domainRepo.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if row == nil {
		return nil, apierr.NotFound("domain with slug %q not found", slug)
	}
	return row, nil
}

func (s *domainService) Update(ctx context.Context, id uuid.UUID, in UpdateDomainInput, callerID uuid.UUID) (*domain.Domain, error) {
	row, err := s.domainRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if row == nil {
		return nil, apierr.NotFound("domain %s not found", id)
	}
	if row.CreatorID != callerID {
		return nil, apierr.Forbidden("only the domain creator can update it")
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apierr.Validation("name cannot be empty")
		}
		row.Name = name
		// Renaming re-derives the slug unless the patch pins one.
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
	if in.IsPublic != nil {
		row.IsPublic = *in.IsPublic
	}
	if in.IsActive != nil {
		row.IsActive = *in.IsActive
	}
	if in.Settings != nil {
		row.Settings = datatypes.JSONMap(in.Settings)
	}

	if err := s.domainRepo.Update(ctx, nil, row); err != nil {
		return nil, apierr.FromDB(err)
	}
	return row, nil
}

func (s *domainService) Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error {
	row, err := s.domainRepo.GetByID(ctx, nil, id)
	if err != nil {
		return apierr.FromDB(err)
	}
	if row == nil {
		return apierr.NotFound("domain %s not found", id)
	}
	if row.CreatorID != callerID {
		return apierr.Forbidden("only the domain creator can delete it")
	}
	if err := s.domainRepo.Delete(ctx, nil, id); err != nil {
		return apierr.FromDB(err)
	}
	s.log.Info("deleted domain", "domain_id", id, "slug", row.Slug)
	return nil
}
