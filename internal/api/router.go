package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/foodgram-backend/config"
	"github.com/d60-Lab/foodgram-backend/internal/api/handler"
	"github.com/d60-Lab/foodgram-backend/internal/api/middleware"
	"github.com/d60-Lab/foodgram-backend/internal/service"
)

// NewRouter builds the gin engine with the full route table and the
// middleware chain: recovery, logging, gzip, rate limit, optional tracing
// and sentry reporting.
func NewRouter(cfg *config.Config, h *handler.Handler, auth service.AuthService) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.RateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))
	if cfg.Tracing.Endpoint != "" {
		r.Use(otelgin.Middleware("foodgram-backend"))
	}
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	r.Static(cfg.Media.BaseURL, cfg.Media.Root)
	r.GET("/s/:hash", h.ResolveShortLink)

	apiGroup := r.Group("/api")
	optional := middleware.OptionalAuth(auth)
	required := middleware.RequireAuth(auth)

	authGroup := apiGroup.Group("/auth/token")
	{
		authGroup.POST("/login/", h.Login)
		authGroup.POST("/logout/", h.Logout)
	}

	users := apiGroup.Group("/users")
	{
		users.POST("/", h.Register)
		users.GET("/", optional, h.ListUsers)
		users.GET("/subscriptions/", required, h.ListSubscriptions)
		users.GET("/me/", required, h.Me)
		users.POST("/set_password/", required, h.SetPassword)
		users.PUT("/me/avatar/", required, h.SetAvatar)
		users.DELETE("/me/avatar/", required, h.DeleteAvatar)
		users.GET("/:id/", optional, h.GetUser)
		users.POST("/:id/subscribe/", required, h.Subscribe)
		users.DELETE("/:id/subscribe/", required, h.Unsubscribe)
	}

	tags := apiGroup.Group("/tags")
	{
		tags.GET("/", h.ListTags)
		tags.GET("/:id/", h.GetTag)
	}

	ingredients := apiGroup.Group("/ingredients")
	{
		ingredients.GET("/", h.ListIngredients)
		ingredients.GET("/:id/", h.GetIngredient)
	}

	recipes := apiGroup.Group("/recipes")
	{
		recipes.GET("/", optional, h.ListRecipes)
		recipes.POST("/", required, h.CreateRecipe)
		recipes.GET("/download_shopping_cart/", required, h.DownloadShoppingCart)
		recipes.GET("/:id/", optional, h.GetRecipe)
		recipes.PATCH("/:id/", required, h.UpdateRecipe)
		recipes.DELETE("/:id/", required, h.DeleteRecipe)
		recipes.GET("/:id/get-link/", h.GetShortLink)
		recipes.POST("/:id/favorite/", required, h.Favorite)
		recipes.DELETE("/:id/favorite/", required, h.Unfavorite)
		recipes.POST("/:id/shopping_cart/", required, h.AddToShoppingCart)
		recipes.DELETE("/:id/shopping_cart/", required, h.RemoveFromShoppingCart)
	}

	return r
}
