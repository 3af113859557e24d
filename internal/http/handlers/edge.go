package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/knowligo/knowligo-backend/internal/http/response"
	"github.com/knowligo/knowligo-backend/internal/platform/apierr"
	"github.com/knowligo/knowligo-backend/internal/services"
)

type EdgeHandler struct {
	edgeService services.EdgeService
}

func NewEdgeHandler(edgeService services.EdgeService) *EdgeHandler {
	return &EdgeHandler{edgeService: edgeService}
}

// GET /edges?node_id=&domain_id=
func (h *EdgeHandler) List(c *gin.Context) {
	nodeID, err := uuidQuery(c, "node_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	domainID, err := uuidQuery(c, "domain_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.edgeService.List(c.Request.Context(), nodeID, domainID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(rows), rows)
}

// GET /edges/:id
func (h *EdgeHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	row, err := h.edgeService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

// GET /edges/node/:nodeId
func (h *EdgeHandler) NodeEdges(c *gin.Context) {
	nodeID, err := uuidParam(c, "nodeId")
	if err != nil {
		response.Error(c, err)
		return
	}
	bundle, err := h.edgeService.FindNodeEdges(c.Request.Context(), nodeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	// The count object replaces the envelope's scalar count on this route.
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   bundle.Count,
		"data":    bundle,
	})
}

// GET /edges/node/:nodeId/outgoing
func (h *EdgeHandler) Outgoing(c *gin.Context) {
	nodeID, err := uuidParam(c, "nodeId")
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.edgeService.ListOutgoing(c.Request.Context(), nodeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(rows), rows)
}

// GET /edges/node/:nodeId/incoming
func (h *EdgeHandler) Incoming(c *gin.Context) {
	nodeID, err := uuidParam(c, "nodeId")
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.edgeService.ListIncoming(c.Request.Context(), nodeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(rows), rows)
}

// POST /edges
func (h *EdgeHandler) Create(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req services.CreateEdgeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	row, err := h.edgeService.Create(c.Request.Context(), req, caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, row)
}

// PUT+PATCH /edges/:id
func (h *EdgeHandler) Update(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req services.UpdateEdgeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	row, err := h.edgeService.Update(c.Request.Context(), id, req, caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

// DELETE /edges/:id
func (h *EdgeHandler) Delete(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.edgeService.Delete(c.Request.Context(), id, caller); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "edge deleted")
}
