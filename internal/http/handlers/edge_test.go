package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/services"
)

type stubEdgeService struct {
	nodeEdges *services.NodeEdges
}

var _ services.EdgeService = (*stubEdgeService)(nil)

func (s *stubEdgeService) Create(ctx context.Context, in services.CreateEdgeInput, callerID uuid.UUID) (*domain.Edge, error) {
	return nil, nil
}

func (s *stubEdgeService) List(ctx context.Context, nodeID, domainID *uuid.UUID) ([]*domain.Edge, error) {
	return nil, nil
}

func (s *stubEdgeService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Edge, error) {
	return nil, nil
}

func (s *stubEdgeService) ListOutgoing(ctx context.Context, nodeID uuid.UUID) ([]*domain.Edge, error) {
	return nil, nil
}

func (s *stubEdgeService) ListIncoming(ctx context.Context, nodeID uuid.UUID) ([]*domain.Edge, error) {
	return nil, nil
}

func (s *stubEdgeService) FindNodeEdges(ctx context.Context, nodeID uuid.UUID) (*services.NodeEdges, error) {
	return s.nodeEdges, nil
}

func (s *stubEdgeService) Update(ctx context.Context, id uuid.UUID, in services.UpdateEdgeInput, callerID uuid.UUID) (*domain.Edge, error) {
	return nil, nil
}

func (s *stubEdgeService) Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error {
	return nil
}

// The node-edges route carries its count object at the envelope level, with
// data holding only the two direction lists.
func TestNodeEdgesResponseShape(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	out := &domain.Edge{ID: uuid.New(), SourceID: uuid.New(), TargetID: uuid.New(), TypeID: uuid.New()}
	in := &domain.Edge{ID: uuid.New(), SourceID: out.TargetID, TargetID: out.SourceID, TypeID: out.TypeID}
	svc := &stubEdgeService{nodeEdges: &services.NodeEdges{
		Outgoing: []*domain.Edge{out},
		Incoming: []*domain.Edge{in},
		Count:    services.EdgeCounts{Outgoing: 1, Incoming: 1, Total: 2},
	}}

	r := gin.New()
	h := NewEdgeHandler(svc)
	r.GET("/edges/node/:nodeId", h.NodeEdges)

	req := httptest.NewRequest(http.MethodGet, "/edges/node/"+out.SourceID.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d body=%s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
		Count   struct {
			Outgoing int `json:"outgoing"`
			Incoming int `json:"incoming"`
			Total    int `json:"total"`
		} `json:"count"`
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success {
		t.Fatalf("success flag: %s", rec.Body.String())
	}
	if body.Count.Outgoing != 1 || body.Count.Incoming != 1 || body.Count.Total != 2 {
		t.Fatalf("count object: %+v", body.Count)
	}
	if _, ok := body.Data["outgoing"]; !ok {
		t.Fatalf("data missing outgoing: %s", rec.Body.String())
	}
	if _, ok := body.Data["incoming"]; !ok {
		t.Fatalf("data missing incoming: %s", rec.Body.String())
	}
	if _, ok := body.Data["counts"]; ok {
		t.Fatalf("counts must not nest inside data: %s", rec.Body.String())
	}
}
