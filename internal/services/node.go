package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
	"github.com/knowligo/knowligo-backend/internal/platform/apierr"
	"github.com/knowligo/knowligo-backend/internal/repos"
)

type CreateNodeInput struct {
	Title        string                 `json:"title" binding:"required"`
	Slug         string                 `json:"slug"`
	Excerpt      *string                `json:"excerpt"`
	CoverImage   *string                `json:"cover_image"`
	Content      map[string]interface{} `json:"content"`
	ContentHTML  *string                `json:"content_html"`
	ReadingTime  *int                   `json:"reading_time"`
	Translations map[string]interface{} `json:"translations"`
	Data         map[string]interface{} `json:"data"`
	Tags         []string               `json:"tags"`
	Status       string                 `json:"status"`
	DomainID     uuid.UUID              `json:"domain_id" binding:"required"`
	TypeID       uuid.UUID              `json:"type_id" binding:"required"`
}

type UpdateNodeInput struct {
	Title        *string                `json:"title"`
	Slug         *string                `json:"slug"`
	Excerpt      *string                `json:"excerpt"`
	CoverImage   *string                `json:"cover_image"`
	Content      map[string]interface{} `json:"content"`
	ContentHTML  *string                `json:"content_html"`
	ReadingTime  *int                   `json:"reading_time"`
	Translations map[string]interface{} `json:"translations"`
	Data         map[string]interface{} `json:"data"`
	Tags         []string               `json:"tags"`
	Status       *string                `json:"status"`
	DomainID     *uuid.UUID             `json:"domain_id"`
	TypeID       *uuid.UUID             `json:"type_id"`
}

type NodeService interface {
	Create(ctx context.Context, in CreateNodeInput, creatorID uuid.UUID) (*domain.Node, error)
	List(ctx context.Context, filter repos.NodeFilter) ([]*domain.Node, error)
	Search(ctx context.Context, query string) ([]*domain.Node, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Node, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Node, error)
	ListByType(ctx context.Context, typeID uuid.UUID, status *domain.NodeStatus) ([]*domain.Node, error)
	ListByTags(ctx context.Context, tags []string) ([]*domain.Node, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateNodeInput, callerID uuid.UUID) (*domain.Node, error)
	Publish(ctx context.Context, id uuid.UUID, callerID uuid.UUID) (*domain.Node, error)
	Archive(ctx context.Context, id uuid.UUID, callerID uuid.UUID) (*domain.Node, error)
	Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error
}

type nodeService struct {
	db           *gorm.DB
	log          *logger.Logger
	nodeRepo     repos.NodeRepo
	domainRepo   repos.DomainRepo
	nodeTypeRepo repos.NodeTypeRepo
}

func NewNodeService(
	db *gorm.DB,
	log *logger.Logger,
	nodeRepo repos.NodeRepo,
	domainRepo repos.DomainRepo,
	nodeTypeRepo repos.NodeTypeRepo,
) NodeService {
	return &nodeService{
		db:           db,
		log:          log.With("service", "NodeService"),
		nodeRepo:     nodeRepo,
		domainRepo:   domainRepo,
		nodeTypeRepo: nodeTypeRepo,
	}
}

// checkDomainAndType verifies both references exist and that the node type
// belongs to the node's domain.
func (s *nodeService) checkDomainAndType(ctx context.Context, domainID, typeID uuid.UUID) error {
	d, err := s.domainRepo.GetByID(ctx, nil, domainID)
	if err != nil {
		return apierr.FromDB(err)
	}
	if d == nil {
		return apierr.Validation("domain %s does not exist", domainID)
	}
	nt, err := s.nodeTypeRepo.GetByID(ctx, nil, typeID)
	if err != nil {
		return apierr.FromDB(err)
	}
	if nt == nil {
		return apierr.Validation("node type %s does not exist", typeID)
	}
	if nt.DomainID != domainID {
		return apierr.Validation("node type %s belongs to a different domain", typeID)
	}
	return nil
}

func (s *nodeService) Create(ctx context.Context, in CreateNodeInput, creatorID uuid.UUID) (*domain.Node, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apierr.Validation("title is required")
	}
	if err := s.checkDomainAndType(ctx, in.DomainID, in.TypeID); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return nil, apierr.Validation("cannot derive a slug from title %q", title)
	}

	status := domain.NodeStatusDraft
	if in.Status != "" {
		status = domain.NodeStatus(in.Status)
		if !status.Valid() {
			return nil, apierr.Validation("invalid status %q", in.Status)
		}
	}

	content := datatypes.JSONMap(in.Content)
	if content == nil {
		content = domain.DefaultNodeContent()
	}
	readingTime := 0
	if in.ReadingTime != nil {
		readingTime = *in.ReadingTime
	}

	row := &domain.Node{
		ID:           uuid.New(),
		Title:        title,
		Slug:         slug,
		Excerpt:      in.Excerpt,
		CoverImage:   in.CoverImage,
		Content:      content,
		ContentHTML:  in.ContentHTML,
		ReadingTime:  readingTime,
		Translations: datatypes.JSONMap(in.Translations),
		Data:         datatypes.JSONMap(in.Data),
		Tags:         in.Tags,
		Status:       status,
		DomainID:     in.DomainID,
		TypeID:       in.TypeID,
		CreatorID:    creatorID,
	}
	if status == domain.NodeStatusPublished {
		now := time.Now()
		row.PublishedAt = &now
	}
	if err := s.nodeRepo.Create(ctx, nil, row); err != nil {
		return nil, apierr.FromDB(err)
	}
	s.log.Info("created node", "node_id", row.ID, "slug", row.Slug)
	return row, nil
}

func (s *nodeService) List(ctx context.Context, filter repos.NodeFilter) ([]*domain.Node, error) {
	rows, err := s.nodeRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	return rows, nil
}

func (s *nodeService) Search(ctx context.Context, query string) ([]*domain.Node, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apierr.Validation("search query is required")
	}
	rows, err := s.nodeRepo.Search(ctx, nil, query)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	return rows, nil
}

func (s *nodeService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Node, error) {
	row, err := s.nodeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if row == nil {
		return nil, apierr.NotFound("node %s not found", id)
	}
	return row, nil
}

func (s *nodeService) GetBySlug(ctx context.Context, slug string) (*domain.Node, error) {
	row, err := s.nodeRepo.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if row == nil {
		return nil, apierr.NotFound("node with slug %q not found", slug)
	}
	return row, nil
}

func (s *nodeService) ListByType(ctx context.Context, typeID uuid.UUID, status *domain.NodeStatus) ([]*domain.Node, error) {
	rows, err := s.nodeRepo.ListByType(ctx, nil, typeID, status)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	return rows, nil
}

func (s *nodeService) ListByTags(ctx context.Context, tags []string) ([]*domain.Node, error) {
	if len(tags) == 0 {
		return nil, apierr.Validation("at least one tag is required")
	}
	rows, err := s.nodeRepo.ListByTags(ctx, nil, tags)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	return rows, nil
}

func (s *nodeService) requireCreator(ctx context.Context, id, callerID uuid.UUID) (*domain.Node, error) {
	row, err := s.nodeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if row == nil {
		return nil, apierr.NotFound("node %s not found", id)
	}
	if row.CreatorID != callerID {
		return nil, apierr.Forbidden("only the node creator can modify it")
	}
	return row, nil
}

func (s *nodeService) Update(ctx context.Context, id uuid.UUID, in UpdateNodeInput, callerID uuid.UUID) (*domain.Node, error) {
	row, err := s.requireCreator(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	domainID := row.DomainID
	typeID := row.TypeID
	if in.DomainID != nil {
		domainID = *in.DomainID
	}
	if in.TypeID != nil {
		typeID = *in.TypeID
	}
	if in.DomainID != nil || in.TypeID != nil {
		if err := s.checkDomainAndType(ctx, domainID, typeID); err != nil {
			return nil, err
		}
		row.DomainID = domainID
		row.TypeID = typeID
		row.Domain = nil
		row.Type = nil
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apierr.Validation("title cannot be empty")
		}
		row.Title = title
		if in.Slug == nil {
			row.Slug = Slugify(title)
		}
	}
	if in.Slug != nil {
		slug := strings.TrimSpace(*in.Slug)
		if slug == "" {
			return nil, apierr.Validation("slug cannot be empty")
		}
		row.Slug = slug
	}
	if in.Status != nil {
		next := domain.NodeStatus(*in.Status)
		if !next.Valid() {
			return nil, apierr.Validation("invalid status %q", *in.Status)
		}
		if err := checkStatusTransition(row.Status, next); err != nil {
			return nil, err
		}
		if next == domain.NodeStatusPublished && row.Status != domain.NodeStatusPublished {
			now := time.Now()
			row.PublishedAt = &now
		}
		row.Status = next
	}
	if in.Excerpt != nil {
		row.Excerpt = in.Excerpt
	}
	if in.CoverImage != nil {
		row.CoverImage = in.CoverImage
	}
	if in.Content != nil {
		row.Content = datatypes.JSONMap(in.Content)
	}
	if in.ContentHTML != nil {
		row.ContentHTML = in.ContentHTML
	}
	if in.ReadingTime != nil {
		row.ReadingTime = *in.ReadingTime
	}
	if in.Translations != nil {
		row.Translations = datatypes.JSONMap(in.Translations)
	}
	if in.Data != nil {
		row.Data = datatypes.JSONMap(in.Data)
	}
	if in.Tags != nil {
		row.Tags = in.Tags
	}

	if err := s.nodeRepo.Update(ctx, nil, row); err != nil {
		return nil, apierr.FromDB(err)
	}
	return row, nil
}

func (s *nodeService) Publish(ctx context.Context, id uuid.UUID, callerID uuid.UUID) (*domain.Node, error) {
	row, err := s.requireCreator(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if err := checkStatusTransition(row.Status, domain.NodeStatusPublished); err != nil {
		return nil, err
	}
	now := time.Now()
	row.Status = domain.NodeStatusPublished
	row.PublishedAt = &now
	if err := s.nodeRepo.Update(ctx, nil, row); err != nil {
		return nil, apierr.FromDB(err)
	}
	s.log.Info("published node", "node_id", row.ID, "slug", row.Slug)
	return row, nil
}

func (s *nodeService) Archive(ctx context.Context, id uuid.UUID, callerID uuid.UUID) (*domain.Node, error) {
	row, err := s.requireCreator(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if err := checkStatusTransition(row.Status, domain.NodeStatusArchived); err != nil {
		return nil, err
	}
	// PublishedAt is left as-is: archiving does not unpublish history.
	row.Status = domain.NodeStatusArchived
	if err := s.nodeRepo.Update(ctx, nil, row); err != nil {
		return nil, apierr.FromDB(err)
	}
	return row, nil
}

func (s *nodeService) Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error {
	row, err := s.requireCreator(ctx, id, callerID)
	if err != nil {
		return err
	}
	if err := s.nodeRepo.Delete(ctx, nil, id); err != nil {
		return apierr.FromDB(err)
	}
	s.log.Info("deleted node", "node_id", id, "slug", row.Slug)
	return nil
}

// checkStatusTransition enforces draft→published→archived with the
// draft→archived shortcut; nothing moves back to draft.
func checkStatusTransition(from, to domain.NodeStatus) error {
	if from == to {
		return nil
	}
	switch {
	case from == domain.NodeStatusDraft && to == domain.NodeStatusPublished:
		return nil
	case from == domain.NodeStatusDraft && to == domain.NodeStatusArchived:
		return nil
	case from == domain.NodeStatusPublished && to == domain.NodeStatusArchived:
		return nil
	}
	return apierr.Validation("cannot change status from %s to %s", from, to)
}
