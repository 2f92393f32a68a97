package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type statusResponse struct {
	Service   string    `json:"service"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Status handles GET /api/status.
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{
		Service:   "fitlog",
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}
