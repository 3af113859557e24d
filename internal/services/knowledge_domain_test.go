package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/knowligo/knowligo-backend/internal/platform/apierr"
)

func TestDomainServiceCreate(t *testing.T) {
	ctx := context.Background()
	repo := newStubDomainRepo()
	svc := NewDomainService(nil, testLogger(t), repo)
	owner := uuid.New()

	d, err := svc.Create(ctx, CreateDomainInput{Name: "Graph Theory 101"}, owner)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.Slug != "graph-theory-101" {
		t.Fatalf("derived slug: %q", d.Slug)
	}
	if !d.IsPublic || !d.IsActive {
		t.Fatalf("defaults: public=%v active=%v", d.IsPublic, d.IsActive)
	}
	if d.CreatorID != owner {
		t.Fatalf("creator: %s", d.CreatorID)
	}

	// An explicit slug wins over derivation.
	d2, err := svc.Create(ctx, CreateDomainInput{Name: "Another Name", Slug: "custom-slug"}, owner)
	if err != nil || d2.Slug != "custom-slug" {
		t.Fatalf("explicit slug: got=%v err=%v", d2, err)
	}

	if _, err := svc.Create(ctx, CreateDomainInput{Name: "   "}, owner); err == nil {
		t.Fatalf("Create(blank name): want validation error")
	} else if e, ok := apierr.As(err); !ok || e.Status != http.StatusBadRequest {
		t.Fatalf("Create(blank name): got %v", err)
	}
	if _, err := svc.Create(ctx, CreateDomainInput{Name: "!!!"}, owner); err == nil {
		t.Fatalf("Create(unsluggable name): want validation error")
	}
}

func TestDomainServiceOwnership(t *testing.T) {
	ctx := context.Background()
	repo := newStubDomainRepo()
	svc := NewDomainService(nil, testLogger(t), repo)
	owner := uuid.New()
	stranger := uuid.New()

	d := seedStubDomain(repo, owner)

	if _, err := svc.Update(ctx, d.ID, UpdateDomainInput{Name: strPtr("New Name")}, stranger); err == nil {
		t.Fatalf("Update(stranger): want forbidden")
	} else if e, ok := apierr.As(err); !ok || e.Status != http.StatusForbidden {
		t.Fatalf("Update(stranger): got %v", err)
	}
	if err := svc.Delete(ctx, d.ID, stranger); err == nil {
		t.Fatalf("Delete(stranger): want forbidden")
	}

	// Renaming re-derives the slug unless the patch pins one.
	got, err := svc.Update(ctx, d.ID, UpdateDomainInput{Name: strPtr("Fresh Name")}, owner)
	if err != nil || got.Slug != "fresh-name" {
		t.Fatalf("Update(rename): got=%v err=%v", got, err)
	}
	got, err = svc.Update(ctx, d.ID, UpdateDomainInput{Name: strPtr("Other Name"), Slug: strPtr("pinned")}, owner)
	if err != nil || got.Slug != "pinned" {
		t.Fatalf("Update(rename+slug): got=%v err=%v", got, err)
	}

	if err := svc.Delete(ctx, d.ID, owner); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, d.ID); err == nil {
		t.Fatalf("GetByID(deleted): want not found")
	} else if e, ok := apierr.As(err); !ok || e.Status != http.StatusNotFound {
		t.Fatalf("GetByID(deleted): got %v", err)
	}
	if err := svc.Delete(ctx, uuid.New(), owner); err == nil {
		t.Fatalf("Delete(missing): want not found")
	}
}
