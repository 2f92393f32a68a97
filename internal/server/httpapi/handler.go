// Package httpapi exposes the server over HTTP: a gin router with the
// sign-up and token endpoints, bearer-protected diary routes, and the
// mapping from service errors to status codes.
package httpapi

import (
	"github.com/dbelyaeva/fitlog/internal/logging"
	"github.com/dbelyaeva/fitlog/internal/server/services"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	accounts *services.AccountService
	tokens   *services.TokenService
	weights  *services.WeightService
	calories *services.CalorieService
	logger   logging.Logger
}

func NewHandler(
	accounts *services.AccountService,
	tokens *services.TokenService,
	weights *services.WeightService,
	calories *services.CalorieService,
	logger logging.Logger,
) *Handler {
	return &Handler{
		accounts: accounts,
		tokens:   tokens,
		weights:  weights,
		calories: calories,
		logger:   logger.With("module", "httpapi"),
	}
}

// InitRoutes builds the router. The token endpoint lives outside /api
// at the path OAuth2 clients conventionally expect.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/connect/token", h.Token)

	api := router.Group("/api")
	{
		api.GET("/status", h.Status)
		api.POST("/auth/sign-up", h.SignUp)

		protected := api.Group("")
		protected.Use(AuthMiddleware(h.tokens.Signer()))
		{
			protected.DELETE("/auth/delete", h.DeleteAccount)

			protected.GET("/weights", h.ListWeights)
			protected.GET("/weights/:date", h.GetWeight)
			protected.PUT("/weights", h.SaveWeight)
			protected.DELETE("/weights/:id", h.DeleteWeight)

			protected.GET("/calories", h.ListCalories)
			protected.GET("/calories/:date", h.GetCalories)
			protected.POST("/calories", h.CreateCalorie)
			protected.DELETE("/calories/:id", h.DeleteCalorie)
		}
	}

	return router
}
