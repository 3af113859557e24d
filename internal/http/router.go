package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/knowligo/knowligo-backend/internal/http/handlers"
	httpMW "github.com/knowligo/knowligo-backend/internal/http/middleware"
	"github.com/knowligo/knowligo-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler   *httpH.HealthHandler
	AuthHandler     *httpH.AuthHandler
	DomainHandler   *httpH.DomainHandler
	NodeTypeHandler *httpH.NodeTypeHandler
	EdgeTypeHandler *httpH.EdgeTypeHandler
	NodeHandler     *httpH.NodeHandler
	EdgeHandler     *httpH.EdgeHandler
	RatingHandler   *httpH.RatingHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	// Auth (public)
	if cfg.AuthHandler != nil {
		r.POST("/auth/register", cfg.AuthHandler.Register)
		r.POST("/auth/login", cfg.AuthHandler.Login)
		r.POST("/auth/oauth/callback", cfg.AuthHandler.OAuthCallback)
	}

	protected := r.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.GET("/auth/me", cfg.AuthHandler.Me)
		}

		if cfg.DomainHandler != nil {
			protected.GET("/domains", cfg.DomainHandler.List)
			protected.GET("/domains/slug/:slug", cfg.DomainHandler.GetBySlug)
			protected.GET("/domains/:id", cfg.DomainHandler.Get)
			protected.POST("/domains", cfg.DomainHandler.Create)
			protected.PUT("/domains/:id", cfg.DomainHandler.Update)
			protected.PATCH("/domains/:id", cfg.DomainHandler.Update)
			protected.DELETE("/domains/:id", cfg.DomainHandler.Delete)
		}

		if cfg.NodeTypeHandler != nil {
			protected.GET("/node-types", cfg.NodeTypeHandler.List)
			protected.GET("/node-types/by-domain/:domainId", cfg.NodeTypeHandler.ListByDomain)
			protected.GET("/node-types/:id", cfg.NodeTypeHandler.Get)
			protected.POST("/node-types", cfg.NodeTypeHandler.Create)
			protected.PUT("/node-types/:id", cfg.NodeTypeHandler.Update)
			protected.PATCH("/node-types/:id", cfg.NodeTypeHandler.Update)
			protected.DELETE("/node-types/:id", cfg.NodeTypeHandler.Delete)
		}

		if cfg.EdgeTypeHandler != nil {
			protected.GET("/edge-types", cfg.EdgeTypeHandler.List)
			protected.GET("/edge-types/by-domain/:domainId", cfg.EdgeTypeHandler.ListByDomain)
			protected.GET("/edge-types/:id", cfg.EdgeTypeHandler.Get)
			protected.POST("/edge-types", cfg.EdgeTypeHandler.Create)
			protected.PUT("/edge-types/:id", cfg.EdgeTypeHandler.Update)
			protected.PATCH("/edge-types/:id", cfg.EdgeTypeHandler.Update)
			protected.DELETE("/edge-types/:id", cfg.EdgeTypeHandler.Delete)
		}

		if cfg.NodeHandler != nil {
			protected.GET("/nodes", cfg.NodeHandler.List)
			protected.GET("/nodes/search", cfg.NodeHandler.Search)
			protected.GET("/nodes/by-type/:typeId", cfg.NodeHandler.ListByType)
			protected.GET("/nodes/by-tags", cfg.NodeHandler.ListByTags)
			protected.GET("/nodes/slug/:slug", cfg.NodeHandler.GetBySlug)
			protected.GET("/nodes/:id", cfg.NodeHandler.Get)
			protected.POST("/nodes", cfg.NodeHandler.Create)
			protected.PUT("/nodes/:id", cfg.NodeHandler.Update)
			protected.PATCH("/nodes/:id", cfg.NodeHandler.Update)
			protected.PATCH("/nodes/:id/publish", cfg.NodeHandler.Publish)
			protected.PATCH("/nodes/:id/archive", cfg.NodeHandler.Archive)
			protected.DELETE("/nodes/:id", cfg.NodeHandler.Delete)
		}

		if cfg.EdgeHandler != nil {
			protected.GET("/edges", cfg.EdgeHandler.List)
			protected.GET("/edges/node/:nodeId", cfg.EdgeHandler.NodeEdges)
			protected.GET("/edges/node/:nodeId/outgoing", cfg.EdgeHandler.Outgoing)
			protected.GET("/edges/node/:nodeId/incoming", cfg.EdgeHandler.Incoming)
			protected.GET("/edges/:id", cfg.EdgeHandler.Get)
			protected.POST("/edges", cfg.EdgeHandler.Create)
			protected.PUT("/edges/:id", cfg.EdgeHandler.Update)
			protected.PATCH("/edges/:id", cfg.EdgeHandler.Update)
			protected.DELETE("/edges/:id", cfg.EdgeHandler.Delete)
		}

		if cfg.RatingHandler != nil {
			protected.GET("/ratings/node/:nodeId", cfg.RatingHandler.ListByNode)
			protected.POST("/ratings", cfg.RatingHandler.Create)
			protected.DELETE("/ratings/:id", cfg.RatingHandler.Delete)
		}
	}

	return r
}
