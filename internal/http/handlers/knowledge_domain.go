package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/knowligo/knowligo-backend/internal/http/response"
	"github.com/knowligo/knowligo-backend/internal/platform/apierr"
	"github.com/knowligo/knowligo-backend/internal/services"
)

type DomainHandler struct {
	domainService services.DomainService
}

func NewDomainHandler(domainService services.DomainService) *DomainHandler {
	return &DomainHandler{domainService: domainService}
}

// GET /domains?public=bool
func (h *DomainHandler) List(c *gin.Context) {
	isPublic, err := boolQuery(c, "public")
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.domainService.List(c.Request.Context(), isPublic)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(rows), rows)
}

// GET /domains/:id
func (h *DomainHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	row, err := h.domainService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

// GET /domains/slug/:slug
func (h *DomainHandler) GetBySlug(c *gin.Context) {
	row, err := h.domainService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

// POST /domains
func (h *DomainHandler) Create(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req services.CreateDomainInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	row, err := h.domainService.Create(c.Request.Context(), req, caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, row)
}

// PUT+PATCH /domains/:id
func (h *DomainHandler) Update(c *gin.Context) {
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
	var req services.UpdateDomainInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	row, err := h.domainService.Update(c.Request.Context(), id, req, caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

// DELETE /domains/:id
func (h *DomainHandler) Delete(c *gin.Context) {
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
	if err := h.domainService.Delete(c.Request.Context(), id, caller); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "domain deleted")
}
