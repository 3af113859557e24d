package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/http/response"
	"github.com/knowligo/knowligo-backend/internal/platform/apierr"
	"github.com/knowligo/knowligo-backend/internal/repos"
	"github.com/knowligo/knowligo-backend/internal/services"
)

type NodeHandler struct {
	nodeService services.NodeService
}

func NewNodeHandler(nodeService services.NodeService) *NodeHandler {
	return &NodeHandler{nodeService: nodeService}
}

func statusQuery(c *gin.Context) (*domain.NodeStatus, error) {
	raw := c.Query("status")
	if raw == "" {
		return nil, nil
	}
	status := domain.NodeStatus(raw)
	if !status.Valid() {
		return nil, apierr.Validation("invalid status: %q", raw)
	}
	return &status, nil
}

// GET /nodes?domain_id=&type_id=&status=&tags=a,b
func (h *NodeHandler) List(c *gin.Context) {
	domainID, err := uuidQuery(c, "domain_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	typeID, err := uuidQuery(c, "type_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	status, err := statusQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.nodeService.List(c.Request.Context(), repos.NodeFilter{
		DomainID: domainID,
		TypeID:   typeID,
		Status:   status,
		Tags:     tagsQuery(c, "tags"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(rows), rows)
}

// GET /nodes/search?q=
func (h *NodeHandler) Search(c *gin.Context) {
	rows, err := h.nodeService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(rows), rows)
}

// GET /nodes/by-type/:typeId?status=
func (h *NodeHandler) ListByType(c *gin.Context) {
	typeID, err := uuidParam(c, "typeId")
	if err != nil {
		response.Error(c, err)
		return
	}
	status, err := statusQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.nodeService.ListByType(c.Request.Context(), typeID, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(rows), rows)
}

// GET /nodes/by-tags?tags=a,b
func (h *NodeHandler) ListByTags(c *gin.Context) {
	rows, err := h.nodeService.ListByTags(c.Request.Context(), tagsQuery(c, "tags"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(rows), rows)
}

// GET /nodes/slug/:slug
func (h *NodeHandler) GetBySlug(c *gin.Context) {
	row, err := h.nodeService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

// GET /nodes/:id
func (h *NodeHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	row, err := h.nodeService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

// POST /nodes
func (h *NodeHandler) Create(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req services.CreateNodeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	row, err := h.nodeService.Create(c.Request.Context(), req, caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, row)
}

// PUT+PATCH /nodes/:id
func (h *NodeHandler) Update(c *gin.Context) {
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
	var req services.UpdateNodeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	row, err := h.nodeService.Update(c.Request.Context(), id, req, caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

// PATCH /nodes/:id/publish
func (h *NodeHandler) Publish(c *gin.Context) {
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
	row, err := h.nodeService.Publish(c.Request.Context(), id, caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

// PATCH /nodes/:id/archive
func (h *NodeHandler) Archive(c *gin.Context) {
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
	row, err := h.nodeService.Archive(c.Request.Context(), id, caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

// DELETE /nodes/:id
func (h *NodeHandler) Delete(c *gin.Context) {
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
	if err := h.nodeService.Delete(c.Request.Context(), id, caller); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "node deleted")
}
