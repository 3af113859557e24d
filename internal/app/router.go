package app

import (
	"github.com/gin-gonic/gin"

	httpserver "github.com/knowligo/knowligo-backend/internal/http"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers, mw Middleware) *gin.Engine {
	return httpserver.NewRouter(httpserver.RouterConfig{
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins,

		AuthMiddleware: mw.Auth,

		HealthHandler:   h.Health,
		AuthHandler:     h.Auth,
		DomainHandler:   h.Domain,
		NodeTypeHandler: h.NodeType,
		EdgeTypeHandler: h.EdgeType,
		NodeHandler:     h.Node,
		EdgeHandler:     h.Edge,
		RatingHandler:   h.Rating,
	})
}
