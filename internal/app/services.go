package app

import (
	"gorm.io/gorm"

	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
	"github.com/knowligo/knowligo-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	Domain   services.DomainService
	NodeType services.NodeTypeService
	EdgeType services.EdgeTypeService
	Node     services.NodeService
	Edge     services.EdgeService
	Rating   services.RatingService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:     services.NewAuthService(db, log, r.User, r.OAuthAccount, cfg.JWTSecretKey, cfg.TokenTTL),
		Domain:   services.NewDomainService(db, log, r.Domain),
		NodeType: services.NewNodeTypeService(db, log, r.NodeType, r.Domain),
		EdgeType: services.NewEdgeTypeService(db, log, r.EdgeType, r.Domain),
		Node:     services.NewNodeService(db, log, r.Node, r.Domain, r.NodeType),
		Edge:     services.NewEdgeService(db, log, r.Edge, r.Node, r.EdgeType, r.Domain),
		Rating:   services.NewRatingService(db, log, r.Rating, r.Node),
	}
}
