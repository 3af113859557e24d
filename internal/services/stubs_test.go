package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
	"github.com/knowligo/knowligo-backend/internal/repos"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func strPtr(s string) *string { return &s }

type stubUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[uuid.UUID]*domain.User{}}
}

func (r *stubUserRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.User) error {
	r.users[row.ID] = row
	return nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.User, error) {
	return r.users[id], nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	u, _ := r.GetByEmail(ctx, tx, email)
	return u != nil, nil
}

func (r *stubUserRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.User) error {
	r.users[row.ID] = row
	return nil
}

func (r *stubUserRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

type stubDomainRepo struct {
	domains map[uuid.UUID]*domain.Domain
}

func newStubDomainRepo() *stubDomainRepo {
	return &stubDomainRepo{domains: map[uuid.UUID]*domain.Domain{}}
}

func (r *stubDomainRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.Domain) error {
	r.domains[row.ID] = row
	return nil
}

func (r *stubDomainRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Domain, error) {
	return r.domains[id], nil
}

func (r *stubDomainRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*domain.Domain, error) {
	for _, d := range r.domains {
		if d.Slug == slug {
			return d, nil
		}
	}
	return nil, nil
}

func (r *stubDomainRepo) List(ctx context.Context, tx *gorm.DB, isPublic *bool) ([]*domain.Domain, error) {
	var out []*domain.Domain
	for _, d := range r.domains {
		if !d.IsActive {
			continue
		}
		if isPublic != nil && d.IsPublic != *isPublic {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *stubDomainRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.Domain) error {
	r.domains[row.ID] = row
	return nil
}

func (r *stubDomainRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	delete(r.domains, id)
	return nil
}

type stubNodeTypeRepo struct {
	rows map[uuid.UUID]*domain.NodeType
}

func newStubNodeTypeRepo() *stubNodeTypeRepo {
	return &stubNodeTypeRepo{rows: map[uuid.UUID]*domain.NodeType{}}
}

func (r *stubNodeTypeRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.NodeType) error {
	r.rows[row.ID] = row
	return nil
}

func (r *stubNodeTypeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.NodeType, error) {
	return r.rows[id], nil
}

func (r *stubNodeTypeRepo) List(ctx context.Context, tx *gorm.DB, domainID *uuid.UUID) ([]*domain.NodeType, error) {
	var out []*domain.NodeType
	for _, nt := range r.rows {
		if domainID != nil && nt.DomainID != *domainID {
			continue
		}
		out = append(out, nt)
	}
	return out, nil
}

func (r *stubNodeTypeRepo) ListByDomain(ctx context.Context, tx *gorm.DB, domainID uuid.UUID) ([]*domain.NodeType, error) {
	return r.List(ctx, tx, &domainID)
}

func (r *stubNodeTypeRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.NodeType) error {
	r.rows[row.ID] = row
	return nil
}

func (r *stubNodeTypeRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

type stubEdgeTypeRepo struct {
	rows map[uuid.UUID]*domain.EdgeType
}

func newStubEdgeTypeRepo() *stubEdgeTypeRepo {
	return &stubEdgeTypeRepo{rows: map[uuid.UUID]*domain.EdgeType{}}
}

func (r *stubEdgeTypeRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.EdgeType) error {
	r.rows[row.ID] = row
	return nil
}

func (r *stubEdgeTypeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.EdgeType, error) {
	return r.rows[id], nil
}

func (r *stubEdgeTypeRepo) List(ctx context.Context, tx *gorm.DB, domainID *uuid.UUID) ([]*domain.EdgeType, error) {
	var out []*domain.EdgeType
	for _, et := range r.rows {
		if domainID != nil && et.DomainID != *domainID {
			continue
		}
		out = append(out, et)
	}
	return out, nil
}

func (r *stubEdgeTypeRepo) ListByDomain(ctx context.Context, tx *gorm.DB, domainID uuid.UUID) ([]*domain.EdgeType, error) {
	return r.List(ctx, tx, &domainID)
}

func (r *stubEdgeTypeRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.EdgeType) error {
	r.rows[row.ID] = row
	return nil
}

func (r *stubEdgeTypeRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

type stubNodeRepo struct {
	rows map[uuid.UUID]*domain.Node
}

func newStubNodeRepo() *stubNodeRepo {
	return &stubNodeRepo{rows: map[uuid.UUID]*domain.Node{}}
}

func (r *stubNodeRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.Node) error {
	r.rows[row.ID] = row
	return nil
}

func (r *stubNodeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Node, error) {
	return r.rows[id], nil
}

func (r *stubNodeRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*domain.Node, error) {
	for _, n := range r.rows {
		if n.Slug == slug {
			return n, nil
		}
	}
	return nil, nil
}

func (r *stubNodeRepo) List(ctx context.Context, tx *gorm.DB, filter repos.NodeFilter) ([]*domain.Node, error) {
	var out []*domain.Node
	for _, n := range r.rows {
		if filter.DomainID != nil && n.DomainID != *filter.DomainID {
			continue
		}
		if filter.TypeID != nil && n.TypeID != *filter.TypeID {
			continue
		}
		if filter.Status != nil && n.Status != *filter.Status {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *stubNodeRepo) Search(ctx context.Context, tx *gorm.DB, query string) ([]*domain.Node, error) {
	var out []*domain.Node
	q := strings.ToLower(query)
	for _, n := range r.rows {
		if strings.Contains(strings.ToLower(n.Title), q) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *stubNodeRepo) ListByType(ctx context.Context, tx *gorm.DB, typeID uuid.UUID, status *domain.NodeStatus) ([]*domain.Node, error) {
	return r.List(ctx, tx, repos.NodeFilter{TypeID: &typeID, Status: status})
}

func (r *stubNodeRepo) ListByTags(ctx context.Context, tx *gorm.DB, tags []string) ([]*domain.Node, error) {
	var out []*domain.Node
	for _, n := range r.rows {
		for _, want := range tags {
			found := false
			for _, have := range n.Tags {
				if have == want {
					found = true
					break
				}
			}
			if found {
				out = append(out, n)
				break
			}
		}
	}
	return out, nil
}

func (r *stubNodeRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.Node) error {
	r.rows[row.ID] = row
	return nil
}

func (r *stubNodeRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

type stubEdgeRepo struct {
	rows map[uuid.UUID]*domain.Edge
}

func newStubEdgeRepo() *stubEdgeRepo {
	return &stubEdgeRepo{rows: map[uuid.UUID]*domain.Edge{}}
}

func (r *stubEdgeRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.Edge) error {
	r.rows[row.ID] = row
	return nil
}

func (r *stubEdgeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Edge, error) {
	return r.rows[id], nil
}

func (r *stubEdgeRepo) List(ctx context.Context, tx *gorm.DB, nodeID, domainID *uuid.UUID) ([]*domain.Edge, error) {
	var out []*domain.Edge
	for _, e := range r.rows {
		if nodeID != nil && e.SourceID != *nodeID && e.TargetID != *nodeID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *stubEdgeRepo) ListOutgoing(ctx context.Context, tx *gorm.DB, nodeID uuid.UUID) ([]*domain.Edge, error) {
	var out []*domain.Edge
	for _, e := range r.rows {
		if e.SourceID == nodeID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubEdgeRepo) ListIncoming(ctx context.Context, tx *gorm.DB, nodeID uuid.UUID) ([]*domain.Edge, error) {
	var out []*domain.Edge
	for _, e := range r.rows {
		if e.TargetID == nodeID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubEdgeRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.Edge) error {
	r.rows[row.ID] = row
	return nil
}

func (r *stubEdgeRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

type stubRatingRepo struct {
	rows map[uuid.UUID]*domain.Rating
}

func newStubRatingRepo() *stubRatingRepo {
	return &stubRatingRepo{rows: map[uuid.UUID]*domain.Rating{}}
}

func (r *stubRatingRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.Rating) error {
	r.rows[row.ID] = row
	return nil
}

func (r *stubRatingRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Rating, error) {
	return r.rows[id], nil
}

func (r *stubRatingRepo) ListByNode(ctx context.Context, tx *gorm.DB, nodeID uuid.UUID) ([]*domain.Rating, error) {
	var out []*domain.Rating
	for _, rt := range r.rows {
		if rt.NodeID == nodeID {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (r *stubRatingRepo) ListByNodeAndMetric(ctx context.Context, tx *gorm.DB, nodeID uuid.UUID, metric domain.MetricType) ([]*domain.Rating, error) {
	var out []*domain.Rating
	for _, rt := range r.rows {
		if rt.NodeID == nodeID && rt.MetricType == metric {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (r *stubRatingRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

var (
	_ repos.UserRepo     = (*stubUserRepo)(nil)
	_ repos.DomainRepo   = (*stubDomainRepo)(nil)
	_ repos.NodeTypeRepo = (*stubNodeTypeRepo)(nil)
	_ repos.EdgeTypeRepo = (*stubEdgeTypeRepo)(nil)
	_ repos.NodeRepo     = (*stubNodeRepo)(nil)
	_ repos.EdgeRepo     = (*stubEdgeRepo)(nil)
	_ repos.RatingRepo   = (*stubRatingRepo)(nil)
)

func seedStubDomain(repo *stubDomainRepo, creatorID uuid.UUID) *domain.Domain {
	d := &domain.Domain{
		ID:        uuid.New(),
		Name:      "Test Domain",
		Slug:      "test-domain-" + uuid.NewString()[:8],
		IsPublic:  true,
		IsActive:  true,
		CreatorID: creatorID,
	}
	_ = repo.Create(context.Background(), nil, d)
	return d
}

func seedStubNodeType(repo *stubNodeTypeRepo, domainID uuid.UUID) *domain.NodeType {
	nt := &domain.NodeType{
		ID:       uuid.New(),
		Name:     "Concept",
		Slug:     "concept",
		Color:    "#1890ff",
		DomainID: domainID,
	}
	_ = repo.Create(context.Background(), nil, nt)
	return nt
}

func seedStubEdgeType(repo *stubEdgeTypeRepo, domainID uuid.UUID) *domain.EdgeType {
	et := &domain.EdgeType{
		ID:           uuid.New(),
		Name:         "Supports",
		Slug:         "supports",
		SemanticType: domain.SemanticSupports,
		Color:        "#52c41a",
		IsDirected:   true,
		DomainID:     domainID,
	}
	_ = repo.Create(context.Background(), nil, et)
	return et
}

func seedStubNode(repo *stubNodeRepo, domainID, typeID, creatorID uuid.UUID) *domain.Node {
	n := &domain.Node{
		ID:        uuid.New(),
		Title:     "Node",
		Slug:      "node-" + uuid.NewString()[:8],
		Content:   domain.DefaultNodeContent(),
		Status:    domain.NodeStatusDraft,
		DomainID:  domainID,
		TypeID:    typeID,
		CreatorID: creatorID,
	}
	_ = repo.Create(context.Background(), nil, n)
	return n
}
