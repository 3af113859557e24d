package app

import (
	"github.com/knowligo/knowligo-backend/internal/http/handlers"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Domain   *handlers.DomainHandler
	NodeType *handlers.NodeTypeHandler
	EdgeType *handlers.EdgeTypeHandler
	Node     *handlers.NodeHandler
	Edge     *handlers.EdgeHandler
	Rating   *handlers.RatingHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   handlers.NewHealthHandler(),
		Auth:     handlers.NewAuthHandler(s.Auth),
		Domain:   handlers.NewDomainHandler(s.Domain),
		NodeType: handlers.NewNodeTypeHandler(s.NodeType),
		EdgeType: handlers.NewEdgeTypeHandler(s.EdgeType),
		Node:     handlers.NewNodeHandler(s.Node),
		Edge:     handlers.NewEdgeHandler(s.Edge),
		Rating:   handlers.NewRatingHandler(s.Rating),
	}
}
