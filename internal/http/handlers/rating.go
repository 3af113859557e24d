package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/knowligo/knowligo-backend/internal/domain"
	"github.com/knowligo/knowligo-backend/internal/http/response"
	"github.com/knowligo/knowligo-backend/internal/platform/apierr"
	"github.com/knowligo/knowligo-backend/internal/services"
)

type RatingHandler struct {
	ratingService services.RatingService
}

func NewRatingHandler(ratingService services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// GET /ratings/node/:nodeId?metric=
func (h *RatingHandler) ListByNode(c *gin.Context) {
	nodeID, err := uuidParam(c, "nodeId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if metric := c.Query("metric"); metric != "" {
		rows, err := h.ratingService.ListByNodeAndMetric(c.Request.Context(), nodeID, domain.MetricType(metric))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.List(c, len(rows), rows)
		return
	}
	rows, err := h.ratingService.ListByNode(c.Request.Context(), nodeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, len(rows), rows)
}

// POST /ratings
func (h *RatingHandler) Create(c *gin.Context) {
	var req services.CreateRatingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	row, err := h.ratingService.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, row)
}

// DELETE /ratings/:id
func (h *RatingHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.ratingService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "rating deleted")
}
