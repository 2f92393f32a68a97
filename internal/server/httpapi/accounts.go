package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type signUpRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type signUpResponse struct {
	UserName string `json:"userName"`
}

// SignUp handles POST /api/auth/sign-up.
func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.accounts.SignUp(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, signUpResponse{UserName: account.Login})
}

// DeleteAccount handles DELETE /api/auth/delete for the authenticated
// user.
func (h *Handler) DeleteAccount(c *gin.Context) {
	userID, err := CurrentUserID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.accounts.DeleteAccount(c.Request.Context(), userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
