package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/repos/testutil"
)

func TestNodeRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewNodeRepo(db, testutil.Logger(t))

	creator := seedUser(t, tx, "nodes@example.com")
	d1 := seedDomain(t, tx, creator.ID, "n-domain-one")
	d2 := seedDomain(t, tx, creator.ID, "n-domain-two")
	concept := seedNodeType(t, tx, d1.ID, "concept", 0)
	claim := seedNodeType(t, tx, d1.ID, "claim", 1)
	otherType := seedNodeType(t, tx, d2.ID, "concept", 0)

	gravity := &domain.Node{
		ID:        uuid.New(),
		Title:     "Gravity",
		Slug:      "gravity",
		Excerpt:   strPtr("Bodies attract each other"),
		Content:   domain.DefaultNodeContent(),
		Tags:      []string{"physics", "classical"},
		Status:    domain.NodeStatusPublished,
		DomainID:  d1.ID,
		TypeID:    concept.ID,
		CreatorID: creator.ID,
	}
	entropy := &domain.Node{
		ID:        uuid.New(),
		Title:     "Entropy",
		Slug:      "entropy",
		Content:   domain.DefaultNodeContent(),
		Tags:      []string{"physics", "thermo"},
		Status:    domain.NodeStatusDraft,
		DomainID:  d1.ID,
		TypeID:    claim.ID,
		CreatorID: creator.ID,
	}
	outside := &domain.Node{
		ID:        uuid.New(),
		Title:     "Outside",
		Slug:      "outside",
		Content:   domain.DefaultNodeContent(),
		Status:    domain.NodeStatusDraft,
		DomainID:  d2.ID,
		TypeID:    otherType.ID,
		CreatorID: creator.ID,
	}
	for _, n := range []*domain.Node{gravity, entropy, outside} {
		if err := repo.Create(ctx, tx, n); err != nil {
			t.Fatalf("Create(%s): %v", n.Slug, err)
		}
	}

	got, err := repo.GetByID(ctx, tx, gravity.ID)
	if err != nil || got == nil || got.Slug != "gravity" {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got.Domain == nil || got.Type == nil || got.Creator == nil {
		t.Fatalf("GetByID: relations not preloaded: %+v", got)
	}
	if missing, err := repo.GetByID(ctx, tx, uuid.New()); err != nil || missing != nil {
		t.Fatalf("GetByID(missing): got=%v err=%v", missing, err)
	}
	if got, err := repo.GetBySlug(ctx, tx, "entropy"); err != nil || got == nil || got.ID != entropy.ID {
		t.Fatalf("GetBySlug: got=%v err=%v", got, err)
	}

	if rows, err := repo.List(ctx, tx, NodeFilter{}); err != nil || len(rows) != 3 {
		t.Fatalf("List(all): err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.List(ctx, tx, NodeFilter{DomainID: testutil.PtrUUID(d1.ID)}); err != nil || len(rows) != 2 {
		t.Fatalf("List(domain): err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.List(ctx, tx, NodeFilter{TypeID: testutil.PtrUUID(claim.ID)}); err != nil || len(rows) != 1 || rows[0].ID != entropy.ID {
		t.Fatalf("List(type): err=%v len=%d", err, len(rows))
	}
	published := domain.NodeStatusPublished
	if rows, err := repo.List(ctx, tx, NodeFilter{Status: &published}); err != nil || len(rows) != 1 || rows[0].ID != gravity.ID {
		t.Fatalf("List(status): err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.List(ctx, tx, NodeFilter{Tags: []string{"thermo"}}); err != nil || len(rows) != 1 || rows[0].ID != entropy.ID {
		t.Fatalf("List(tags): err=%v len=%d", err, len(rows))
	}
	draft := domain.NodeStatusDraft
	if rows, err := repo.List(ctx, tx, NodeFilter{DomainID: testutil.PtrUUID(d1.ID), Status: &draft}); err != nil || len(rows) != 1 || rows[0].ID != entropy.ID {
		t.Fatalf("List(domain+status): err=%v len=%d", err, len(rows))
	}

	if rows, err := repo.Search(ctx, tx, "grav"); err != nil || len(rows) != 1 || rows[0].ID != gravity.ID {
		t.Fatalf("Search(title): err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.Search(ctx, tx, "ATTRACT"); err != nil || len(rows) != 1 || rows[0].ID != gravity.ID {
		t.Fatalf("Search(excerpt, case): err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.Search(ctx, tx, "no-such-thing"); err != nil || len(rows) != 0 {
		t.Fatalf("Search(none): err=%v len=%d", err, len(rows))
	}

	if rows, err := repo.ListByType(ctx, tx, concept.ID, nil); err != nil || len(rows) != 1 {
		t.Fatalf("ListByType: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.ListByType(ctx, tx, concept.ID, &draft); err != nil || len(rows) != 0 {
		t.Fatalf("ListByType(draft): err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.ListByTags(ctx, tx, []string{"physics"}); err != nil || len(rows) != 2 {
		t.Fatalf("ListByTags: err=%v len=%d", err, len(rows))
	}

	gravity.Title = "Gravitation"
	if err := repo.Update(ctx, tx, gravity); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := repo.Delete(ctx, tx, outside.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, err := repo.GetByID(ctx, tx, outside.ID); err != nil || got != nil {
		t.Fatalf("GetByID(deleted): got=%v err=%v", got, err)
	}

	// Slugs are unique across domains, not per domain.
	tx.SavePoint("dup")
	dup := &domain.Node{
		ID: uuid.New(), Title: "Dup", Slug: "gravity",
		Content: domain.DefaultNodeContent(), Status: domain.NodeStatusDraft,
		DomainID: d2.ID, TypeID: otherType.ID, CreatorID: creator.ID,
	}
	if err := repo.Create(ctx, tx, dup); err == nil {
		t.Fatalf("Create(duplicate slug): want error")
	}
	tx.RollbackTo("dup")
}

// Deleting a node removes its edges on either side and its ratings; the
// other endpoint survives.
func TestNodeRepoDeleteCascades(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewNodeRepo(db, testutil.Logger(t))
	log := testutil.Logger(t)

	creator := seedUser(t, tx, "node-cascade@example.com")
	d := seedDomain(t, tx, creator.ID, "node-cascade-domain")
	nt := seedNodeType(t, tx, d.ID, "concept", 0)
	et := seedEdgeType(t, tx, d.ID, "supports")
	doomed := seedNode(t, tx, d, nt, creator.ID, "doomed")
	neighbor := seedNode(t, tx, d, nt, creator.ID, "neighbor")

	edgeRepo := NewEdgeRepo(db, log)
	out := &domain.Edge{ID: uuid.New(), SourceID: doomed.ID, TargetID: neighbor.ID, TypeID: et.ID}
	in := &domain.Edge{ID: uuid.New(), SourceID: neighbor.ID, TargetID: doomed.ID, TypeID: et.ID}
	for _, e := range []*domain.Edge{out, in} {
		if err := edgeRepo.Create(ctx, tx, e); err != nil {
			t.Fatalf("Create(edge): %v", err)
		}
	}
	ratingRepo := NewRatingRepo(db, log)
	rating := &domain.Rating{ID: uuid.New(), NodeID: doomed.ID, MetricType: domain.MetricCoherence, Score: 0.3}
	if err := ratingRepo.Create(ctx, tx, rating); err != nil {
		t.Fatalf("Create(rating): %v", err)
	}

	if err := repo.Delete(ctx, tx, doomed.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for _, e := range []*domain.Edge{out, in} {
		if got, err := edgeRepo.GetByID(ctx, tx, e.ID); err != nil || got != nil {
			t.Fatalf("edge survived: got=%v err=%v", got, err)
		}
	}
	if got, err := ratingRepo.GetByID(ctx, tx, rating.ID); err != nil || got != nil {
		t.Fatalf("rating survived: got=%v err=%v", got, err)
	}
	if got, err := repo.GetByID(ctx, tx, neighbor.ID); err != nil || got == nil {
		t.Fatalf("neighbor should survive: got=%v err=%v", got, err)
	}
}
