package httpapi

import (
	"errors"
	"net/http"

	"github.com/dbelyaeva/fitlog/internal/common"
	"github.com/dbelyaeva/fitlog/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type weightResponse struct {
	ID       *uuid.UUID `json:"id"`
	Date     string     `json:"date"`
	WeightKg *float64   `json:"weightKg"`
}

type saveWeightRequest struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weightKg"`
}

func newWeightResponse(entry *models.WeightEntry) weightResponse {
	id := entry.ID
	kg := entry.WeightKg
	return weightResponse{
		ID:       &id,
		Date:     entry.EntryDate.Format(common.DateLayout),
		WeightKg: &kg,
	}
}

// GetWeight handles GET /api/weights/:date. A day without an entry is
// not an error: the response is a placeholder with null id and weight,
// so clients can render an empty diary cell.
func (h *Handler) GetWeight(c *gin.Context) {
	userID, err := CurrentUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	date, err := common.ParseDate(c.Param("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	entry, err := h.weights.GetByDate(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusOK, weightResponse{Date: date.Format(common.DateLayout)})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newWeightResponse(entry))
}

// ListWeights handles GET /api/weights?startDate=...&endDate=....
func (h *Handler) ListWeights(c *gin.Context) {
	userID, err := CurrentUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	start, err := common.ParseDate(c.Query("startDate"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	end, err := common.ParseDate(c.Query("endDate"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	entries, err := h.weights.ListRange(c.Request.Context(), userID, start, end)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]weightResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, newWeightResponse(entry))
	}
	c.JSON(http.StatusOK, resp)
}

// SaveWeight handles PUT /api/weights, replacing any value already
// recorded for the same date.
func (h *Handler) SaveWeight(c *gin.Context) {
	userID, err := CurrentUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req saveWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := common.ParseDate(req.Date)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entry, err := h.weights.Save(c.Request.Context(), userID, date, req.WeightKg)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newWeightResponse(entry))
}

// DeleteWeight handles DELETE /api/weights/:id.
func (h *Handler) DeleteWeight(c *gin.Context) {
	userID, err := CurrentUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := h.weights.Delete(c.Request.Context(), userID, entryID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
