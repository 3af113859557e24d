package repos

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/repos/testutil"
)

func strPtr(s string) *string { return &s }

func seedUser(t *testing.T, tx *gorm.DB, email string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:       uuid.New(),
		Email:    email,
		Username: email,
		Roles:    []string{"user"},
	}
	if err := NewUserRepo(tx, testutil.Logger(t)).Create(context.Background(), tx, u); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func seedDomain(t *testing.T, tx *gorm.DB, creatorID uuid.UUID, slug string) *domain.Domain {
	t.Helper()
	d := &domain.Domain{
		ID:        uuid.New(),
		Name:      slug,
		Slug:      slug,
		IsPublic:  true,
		IsActive:  true,
		CreatorID: creatorID,
	}
	if err := NewDomainRepo(tx, testutil.Logger(t)).Create(context.Background(), tx, d); err != nil {
		t.Fatalf("seed domain %s: %v", slug, err)
	}
	return d
}

func seedNodeType(t *testing.T, tx *gorm.DB, domainID uuid.UUID, slug string, order int) *domain.NodeType {
	t.Helper()
	nt := &domain.NodeType{
		ID:       uuid.New(),
		Name:     slug,
		Slug:     slug,
		Color:    "#1890ff",
		Order:    order,
		DomainID: domainID,
	}
	if err := NewNodeTypeRepo(tx, testutil.Logger(t)).Create(context.Background(), tx, nt); err != nil {
		t.Fatalf("seed node type %s: %v", slug, err)
	}
	return nt
}

func seedEdgeType(t *testing.T, tx *gorm.DB, domainID uuid.UUID, slug string) *domain.EdgeType {
	t.Helper()
	et := &domain.EdgeType{
		ID:           uuid.New(),
		Name:         slug,
		Slug:         slug,
		SemanticType: domain.SemanticCustom,
		Color:        "#52c41a",
		IsDirected:   true,
		DomainID:     domainID,
	}
	if err := NewEdgeTypeRepo(tx, testutil.Logger(t)).Create(context.Background(), tx, et); err != nil {
		t.Fatalf("seed edge type %s: %v", slug, err)
	}
	return et
}

func seedNode(t *testing.T, tx *gorm.DB, d *domain.Domain, nt *domain.NodeType, creatorID uuid.UUID, slug string) *domain.Node {
	t.Helper()
	n := &domain.Node{
		ID:        uuid.New(),
		Title:     fmt.Sprintf("Node %s", slug),
		Slug:      slug,
		Content:   domain.DefaultNodeContent(),
		Status:    domain.NodeStatusDraft,
		DomainID:  d.ID,
		TypeID:    nt.ID,
		CreatorID: creatorID,
	}
	if err := NewNodeRepo(tx, testutil.Logger(t)).Create(context.Background(), tx, n); err != nil {
		t.Fatalf("seed node %s: %v", slug, err)
	}
	return n
}
