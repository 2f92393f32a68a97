package httpapi

import (
	"net/http"

	"github.com/dbelyaeva/fitlog/internal/common"
	"github.com/dbelyaeva/fitlog/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type calorieResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	Calories  int       `json:"calories"`
	FoodName  *string   `json:"foodName"`
	PartOfDay *string   `json:"partOfDay"`
	Note      *string   `json:"note"`
}

type createCalorieRequest struct {
	Date      string  `json:"date"`
	Calories  int     `json:"calories"`
	FoodName  *string `json:"foodName"`
	PartOfDay *string `json:"partOfDay"`
	Note      *string `json:"note"`
}

func newCalorieResponse(entry *models.CalorieEntry) calorieResponse {
	return calorieResponse{
		ID:        entry.ID,
		Date:      entry.EntryDate.Format(common.DateLayout),
		Calories:  entry.Calories,
		FoodName:  entry.FoodName,
		PartOfDay: entry.PartOfDay,
		Note:      entry.Note,
	}
}

func newCalorieListResponse(entries []*models.CalorieEntry) []calorieResponse {
	resp := make([]calorieResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, newCalorieResponse(entry))
	}
	return resp
}

// GetCalories handles GET /api/calories/:date. A day without entries
// yields an empty list.
func (h *Handler) GetCalories(c *gin.Context) {
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

	entries, err := h.calories.ListByDate(c.Request.Context(), userID, date)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCalorieListResponse(entries))
}

// ListCalories handles GET /api/calories?startDate=...&endDate=....
func (h *Handler) ListCalories(c *gin.Context) {
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

	entries, err := h.calories.ListRange(c.Request.Context(), userID, start, end)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCalorieListResponse(entries))
}

// CreateCalorie handles POST /api/calories.
func (h *Handler) CreateCalorie(c *gin.Context) {
	userID, err := CurrentUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req createCalorieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := common.ParseDate(req.Date)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entry, err := h.calories.Create(c.Request.Context(), userID, date, req.Calories,
		req.FoodName, req.PartOfDay, req.Note)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCalorieResponse(entry))
}

// DeleteCalorie handles DELETE /api/calories/:id.
func (h *Handler) DeleteCalorie(c *gin.Context) {
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

	if err := h.calories.Delete(c.Request.Context(), userID, entryID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
