package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
)

// NodeFilter narrows List; all fields combine with AND. Tags matches nodes
// whose tag set overlaps the given list (set intersection, not subset).
type NodeFilter struct {
	DomainID *uuid.UUID
	TypeID   *uuid.UUID
	Status   *domain.NodeStatus
	Tags     []string
}

type NodeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.Node) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Node, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*domain.Node, error)
	List(ctx context.Context, tx *gorm.DB, filter NodeFilter) ([]*domain.Node, error)
	// Search matches the query case-insensitively against title or excerpt.
	Search(ctx context.Context, tx *gorm.DB, query string) ([]*domain.Node, error)
	ListByType(ctx context.Context, tx *gorm.DB, typeID uuid.UUID, status *domain.NodeStatus) ([]*domain.Node, error)
	ListByTags(ctx context.Context, tx *gorm.DB, tags []string) ([]*domain.Node, error)
	Update(ctx context.Context, tx *gorm.DB, row *domain.Node) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type nodeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNodeRepo(db *gorm.DB, baseLog *logger.Logger) NodeRepo {
	return &nodeRepo{db: db, log: baseLog.With("repo", "NodeRepo")}
}

func (r *nodeRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.Node) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Create(row).Error
}

func (r *nodeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Node, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.Node
	if err := t.WithContext(ctx).
		Preload("Domain").
		Preload("Type").
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

func (r *nodeRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*domain.Node, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if slug == "" {
		return nil, nil
	}
	var out []*domain.Node
	if err := t.WithContext(ctx).
		Preload("Domain").
		Preload("Type").
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

func (r *nodeRepo) List(ctx context.Context, tx *gorm.DB, filter NodeFilter) ([]*domain.Node, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(ctx).
		Preload("Domain").
		Preload("Type").
		Preload("Creator").
		Order("created_at DESC")
	if filter.DomainID != nil {
		q = q.Where("domain_id = ?", *filter.DomainID)
	}
	if filter.TypeID != nil {
		q = q.Where("type_id = ?", *filter.TypeID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if len(filter.Tags) > 0 {
		q = q.Where("tags && ?", pq.StringArray(filter.Tags))
	}
	var out []*domain.Node
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *nodeRepo) Search(ctx context.Context, tx *gorm.DB, query string) ([]*domain.Node, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Node
	if query == "" {
		return out, nil
	}
	pattern := "%" + query + "%"
	if err := t.WithContext(ctx).
		Preload("Domain").
		Preload("Type").
		Where("title ILIKE ? OR excerpt ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *nodeRepo) ListByType(ctx context.Context, tx *gorm.DB, typeID uuid.UUID, status *domain.NodeStatus) ([]*domain.Node, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Node
	if typeID == uuid.Nil {
		return out, nil
	}
	q := t.WithContext(ctx).
		Preload("Domain").
		Preload("Creator").
		Where("type_id = ?", typeID).
		Order("created_at DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *nodeRepo) ListByTags(ctx context.Context, tx *gorm.DB, tags []string) ([]*domain.Node, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Node
	if len(tags) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Preload("Domain").
		Preload("Type").
		Where("tags && ?", pq.StringArray(tags)).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *nodeRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.Node) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil
	}
	return t.WithContext(ctx).Save(row).Error
}

func (r *nodeRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).Where("id = ?", id).Delete(&domain.Node{}).Error
}
