package httpapi

import (
	"net/http"
	"strings"

	"github.com/dbelyaeva/fitlog/internal/common"
	"github.com/dbelyaeva/fitlog/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const principalKey = "principal"

// AuthMiddleware validates the bearer token on every request in its
// group and stores the resulting principal in the gin context. Missing
// header, malformed header, and invalid or expired tokens all get the
// same 401.
func AuthMiddleware(signer *auth.TokenSigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			newErrorResponse(c, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			newErrorResponse(c, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		principal, err := signer.Parse(parts[1])
		if err != nil {
			newErrorResponse(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated principal stored by
// AuthMiddleware, or common.ErrorUnauthorized outside a protected route.
func CurrentPrincipal(c *gin.Context) (*auth.Principal, error) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	principal, ok := v.(*auth.Principal)
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return principal, nil
}

// CurrentUserID returns the authenticated subject id.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	principal, err := CurrentPrincipal(c)
	if err != nil {
		return uuid.Nil, err
	}
	return principal.SubjectID, nil
}

// IsAuthenticated reports whether the request carries a validated
// principal.
func IsAuthenticated(c *gin.Context) bool {
	_, err := CurrentPrincipal(c)
	return err == nil
}
