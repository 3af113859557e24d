package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/knowligo/knowligo-backend/internal/http/response"
	"github.com/knowligo/knowligo-backend/internal/platform/apierr"
	"github.com/knowligo/knowligo-backend/internal/services"
)

type EdgeTypeHandler struct {
	edgeTypeService services.EdgeTypeService
}

func NewEdgeTypeHandler(edgeTypeService services.EdgeTypeService) *EdgeTypeHandler {
	return &EdgeTypeHandler{edgeTypeService: edgeTypeService}
}

// GET /edge-types?domain_id=
func (h *EdgeTypeHandler) List(c *gin.Context) {
	domainID, err := uuidQuery(c, "domain_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.edgeTypeService.List(c.Request.Context(), domainID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(rows), rows)
}

// GET /edge-types/by-domain/:domainId
func (h *EdgeTypeHandler) ListByDomain(c *gin.Context) {
	domainID, err := uuidParam(c, "domainId")
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.edgeTypeService.ListByDomain(c.Request.Context(), domainID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(rows), rows)
}

// GET /edge-types/:id
func (h *EdgeTypeHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	row, err := h.edgeTypeService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

// POST /edge-types
func (h *EdgeTypeHandler) Create(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req services.CreateEdgeTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	row, err := h.edgeTypeService.Create(c.Request.Context(), req, caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, row)
}

// PUT+PATCH /edge-types/:id
func (h *EdgeTypeHandler) Update(c *gin.Context) {
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
	var req services.UpdateEdgeTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	row, err := h.edgeTypeService.Update(c.Request.Context(), id, req, caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

// DELETE /edge-types/:id
func (h *EdgeTypeHandler) Delete(c *gin.Context) {
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
	if err := h.edgeTypeService.Delete(c.Request.Context(), id, caller); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "edge type deleted")
}
