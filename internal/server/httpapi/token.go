package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dbelyaeva/fitlog/internal/server/services"
	"github.com/gin-gonic/gin"
)

// defaultScope is applied only when the scope parameter is absent from
// a password grant. A present-but-empty scope means the client asked
// for nothing and gets nothing.
const defaultScope = "openid api offline_access"

type oauthErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
}

// Token handles POST /connect/token (application/x-www-form-urlencoded),
// dispatching on grant_type. Grant failures come back as 403 with the
// OAuth2 error body; an unknown grant_type is a 400.
func (h *Handler) Token(c *gin.Context) {
	switch c.PostForm("grant_type") {
	case "password":
		h.passwordGrant(c)
	case "refresh_token":
		h.refreshGrant(c)
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, oauthErrorResponse{
			Error:            "unsupported_grant_type",
			ErrorDescription: "The specified grant type is not supported.",
		})
	}
}

func (h *Handler) passwordGrant(c *gin.Context) {
	scope, ok := c.GetPostForm("scope")
	if !ok {
		scope = defaultScope
	}

	resp, err := h.tokens.Password(c.Request.Context(), services.PasswordGrant{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
		Scopes:   strings.Fields(scope),
	})
	if err != nil {
		h.respondTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTokenResponse(resp))
}

func (h *Handler) refreshGrant(c *gin.Context) {
	// no default here: an absent scope inherits the stored grant
	resp, err := h.tokens.Refresh(c.Request.Context(), services.RefreshGrant{
		RefreshToken: c.PostForm("refresh_token"),
		Scopes:       strings.Fields(c.PostForm("scope")),
	})
	if err != nil {
		h.respondTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTokenResponse(resp))
}

func (h *Handler) respondTokenError(c *gin.Context, err error) {
	var oauthErr *services.OAuthError
	if errors.As(err, &oauthErr) {
		c.AbortWithStatusJSON(http.StatusForbidden, oauthErrorResponse{
			Error:            oauthErr.Code,
			ErrorDescription: oauthErr.Description,
		})
		return
	}
	h.respondError(c, err)
}

func newTokenResponse(resp *services.TokenResponse) tokenResponse {
	return tokenResponse{
		AccessToken:  resp.AccessToken,
		TokenType:    resp.TokenType,
		ExpiresIn:    resp.ExpiresIn,
		Scope:        resp.Scope,
		RefreshToken: resp.RefreshToken,
		IDToken:      resp.IdentityToken,
	}
}
