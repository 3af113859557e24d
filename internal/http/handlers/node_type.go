package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/knowligo/knowligo-backend/internal/http/response"
	"github.com/knowligo/knowligo-backend/internal/platform/apierr"
	"github.com/knowligo/knowligo-backend/internal/services"
)

type NodeTypeHandler struct {
	nodeTypeService services.NodeTypeService
}

func NewNodeTypeHandler(nodeTypeService services.NodeTypeService) *NodeTypeHandler {
	return &NodeTypeHandler{nodeTypeService: nodeTypeService}
}

// GET /node-types?domain_id=
func (h *NodeTypeHandler) List(c *gin.Context) {
	domainID, err := uuidQuery(c, "domain_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.nodeTypeService.List(c.Request.Context(), domainID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(rows), rows)
}

// GET /node-types/by-domain/:domainId
func (h *NodeTypeHandler) ListByDomain(c *gin.Context) {
	domainID, err := uuidParam(c, "domainId")
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.nodeTypeService.ListByDomain(c.Request.Context(), domainID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(rows), rows)
}

// GET /node-types/:id
func (h *NodeTypeHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	row, err := h.nodeTypeService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

// POST /node-types
func (h *NodeTypeHandler) Create(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req services.CreateNodeTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	row, err := h.nodeTypeService.Create(c.Request.Context(), req, caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, row)
}

// PUT+PATCH /node-types/:id
func (h *NodeTypeHandler) Update(c *gin.Context) {
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
	var req services.UpdateNodeTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	row, err := h.nodeTypeService.Update(c.Request.Context(), id, req, caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

// DELETE /node-types/:id
func (h *NodeTypeHandler) Delete(c *gin.Context) {
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
	if err := h.nodeTypeService.Delete(c.Request.Context(), id, caller); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "node type deleted")
}
