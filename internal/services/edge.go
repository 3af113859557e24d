package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
	"github.com/knowligo/knowligo-backend/internal/platform/apierr"
	"github.com/knowligo/knowligo-backend/internal/repos"
)

type CreateEdgeInput struct {
	SourceID    uuid.UUID              `json:"source_id" binding:"required"`
	TargetID    uuid.UUID              `json:"target_id" binding:"required"`
	TypeID      uuid.UUID              `json:"type_id" binding:"required"`
	Description *string                `json:"description"`
	Metadata    map[string]interface{} `json:"metadata"`
}

type UpdateEdgeInput struct {
	Description *string                `json:"description"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// NodeEdges bundles both directions of a node's edges. Count rides at the
// envelope level of the HTTP response, not inside the data payload, so it is
// excluded from marshaling here.
type NodeEdges struct {
	Outgoing []*domain.Edge `json:"outgoing"`
	Incoming []*domain.Edge `json:"incoming"`
	Count    EdgeCounts     `json:"-"`
}

type EdgeCounts struct {
	Outgoing int `json:"outgoing"`
	Incoming int `json:"incoming"`
	Total    int `json:"total"`
}

type EdgeService interface {
	Create(ctx context.Context, in CreateEdgeInput, callerID uuid.UUID) (*domain.Edge, error)
	List(ctx context.Context, nodeID, domainID *uuid.UUID) ([]*domain.Edge, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Edge, error)
	ListOutgoing(ctx context.Context, nodeID uuid.UUID) ([]*domain.Edge, error)
	ListIncoming(ctx context.Context, nodeID uuid.UUID) ([]*domain.Edge, error)
	FindNodeEdges(ctx context.Context, nodeID uuid.UUID) (*NodeEdges, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateEdgeInput, callerID uuid.UUID) (*domain.Edge, error)
	Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error
}

type edgeService struct {
	db           *gorm.DB
	log          *logger.Logger
	edgeRepo     repos.EdgeRepo
	nodeRepo     repos.NodeRepo
	edgeTypeRepo repos.EdgeTypeRepo
	domainRepo   repos.DomainRepo
}

func NewEdgeService(
	db *gorm.DB,
	log *logger.Logger,
	edgeRepo repos.EdgeRepo,
	nodeRepo repos.NodeRepo,
	edgeTypeRepo repos.EdgeTypeRepo,
	domainRepo repos.DomainRepo,
) EdgeService {
	return &edgeService{
		db:           db,
		log:          log.With("service", "EdgeService"),
		edgeRepo:     edgeRepo,
		nodeRepo:     nodeRepo,
		edgeTypeRepo: edgeTypeRepo,
		domainRepo:   domainRepo,
	}
}

func (s *edgeService) Create(ctx context.Context, in CreateEdgeInput, callerID uuid.UUID) (*domain.Edge, error) {
	if in.SourceID == in.TargetID {
		return nil, apierr.Validation("self-loops are not allowed")
	}

	source, err := s.nodeRepo.GetByID(ctx, nil, in.SourceID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if source == nil {
		return nil, apierr.Validation("source node %s does not exist", in.SourceID)
	}
	target, err := s.nodeRepo.GetByID(ctx, nil, in.TargetID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if target == nil {
		return nil, apierr.Validation("target node %s does not exist", in.TargetID)
	}

	edgeType, err := s.edgeTypeRepo.GetByID(ctx, nil, in.TypeID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if edgeType == nil {
		return nil, apierr.Validation("edge type %s does not exist", in.TypeID)
	}
	if edgeType.DomainID != source.DomainID {
		return nil, apierr.Validation("edge type %s belongs to a different domain than the source node", in.TypeID)
	}

	if err := s.requireDomainOwner(ctx, source.DomainID, callerID); err != nil {
		return nil, err
	}

	row := &domain.Edge{
		ID:          uuid.New(),
		SourceID:    in.SourceID,
		TargetID:    in.TargetID,
		TypeID:      in.TypeID,
		Description: in.Description,
		Metadata:    datatypes.JSONMap(in.Metadata),
	}
	if err := s.edgeRepo.Create(ctx, nil, row); err != nil {
		return nil, apierr.FromDB(err)
	}
	s.log.Info("created edge", "edge_id", row.ID, "source_id", row.SourceID, "target_id", row.TargetID)
	return row, nil
}

func (s *edgeService) requireDomainOwner(ctx context.Context, domainID, callerID uuid.UUID) error {
	d, err := s.domainRepo.GetByID(ctx, nil, domainID)
	if err != nil {
		return apierr.FromDB(err)
	}
	if d == nil {
		return apierr.Validation("domain %s does not exist", domainID)
	}
	if d.CreatorID != callerID {
		return apierr.Forbidden("only the domain creator can manage its edges")
	}
	return nil
}

func (s *edgeService) List(ctx context.Context, nodeID, domainID *uuid.UUID) ([]*domain.Edge, error) {
	rows, err := s.edgeRepo.List(ctx, nil, nodeID, domainID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	return rows, nil
}

func (s *edgeService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Edge, error) {
	row, err := s.edgeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if row == nil {
		return nil, apierr.NotFound("edge %s not found", id)
	}
	return row, nil
}

func (s *edgeService) ListOutgoing(ctx context.Context, nodeID uuid.UUID) ([]*domain.Edge, error) {
	rows, err := s.edgeRepo.ListOutgoing(ctx, nil, nodeID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	return rows, nil
}

func (s *edgeService) ListIncoming(ctx context.Context, nodeID uuid.UUID) ([]*domain.Edge, error) {
	rows, err := s.edgeRepo.ListIncoming(ctx, nil, nodeID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	return rows, nil
}

// FindNodeEdges fetches both directions concurrently.
func (s *edgeService) FindNodeEdges(ctx context.Context, nodeID uuid.UUID) (*NodeEdges, error) {
	node, err := s.nodeRepo.GetByID(ctx, nil, nodeID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if node == nil {
		return nil, apierr.NotFound("node %s not found", nodeID)
	}

	var outgoing, incoming []*domain.Edge
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		outgoing, err = s.edgeRepo.ListOutgoing(gctx, nil, nodeID)
		return err
	})
	g.Go(func() error {
		var err error
		incoming, err = s.edgeRepo.ListIncoming(gctx, nil, nodeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apierr.FromDB(err)
	}

	return &NodeEdges{
		Outgoing: outgoing,
		Incoming: incoming,
		Count: EdgeCounts{
			Outgoing: len(outgoing),
			Incoming: len(incoming),
			Total:    len(outgoing) + len(incoming),
		},
	}, nil
}

func (s *edgeService) Update(ctx context.Context, id uuid.UUID, in UpdateEdgeInput, callerID uuid.UUID) (*domain.Edge, error) {
	row, err := s.edgeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if row == nil {
		return nil, apierr.NotFound("edge %s not found", id)
	}
	source, err := s.nodeRepo.GetByID(ctx, nil, row.SourceID)
	if err != nil {
		return nil, apierr.FromDB(err)
	}
	if source == nil {
		return nil, apierr.NotFound("source node %s not found", row.SourceID)
	}
	if err := s.requireDomainOwner(ctx, source.DomainID, callerID); err != nil {
		return nil, err
	}

	if in.Description != nil {
		row.Description = in.Description
	}
	if in.Metadata != nil {
		row.Metadata = datatypes.JSONMap(in.Metadata)
	}
	if err := s.edgeRepo.Update(ctx, nil, row); err != nil {
		return nil, apierr.FromDB(err)
	}
	return row, nil
}

func (s *edgeService) Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error {
	row, err := s.edgeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return apierr.FromDB(err)
	}
	if row == nil {
		return apierr.NotFound("edge %s not found", id)
	}
	source, err := s.nodeRepo.GetByID(ctx, nil, row.SourceID)
	if err != nil {
		return apierr.FromDB(err)
	}
	if source == nil {
		return apierr.NotFound("source node %s not found", row.SourceID)
	}
	if err := s.requireDomainOwner(ctx, source.DomainID, callerID); err != nil {
		return err
	}
	if err := s.edgeRepo.Delete(ctx, nil, id); err != nil {
		return apierr.FromDB(err)
	}
	return nil
}
