package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"

	"github.com/skillswap/skillswap-backend/internal/config"
	"github.com/skillswap/skillswap-backend/internal/http/handlers"
	"github.com/skillswap/skillswap-backend/internal/http/middleware"
	"github.com/skillswap/skillswap-backend/internal/interface/http/handler"
	"github.com/skillswap/skillswap-backend/internal/interface/http/response"
	"github.com/skillswap/skillswap-backend/internal/validation"
)

// RegisterValidators подключает json-имена полей и доменные теги к валидатору gin.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	v.RegisterTagNameFunc(response.JSONTagName)
	return validation.RegisterTags(v)
}

func SetupRouter(
	cfg *config.Config,
	auth middleware.Authenticator,
	dbStatus middleware.ConnectivityChecker,
	rateStore limiter.Store,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	mediaHandler *handlers.MediaHandler,
	wsHandler *handlers.WSHandler,
	listingHandler *handler.ListingHandler,
	matchHandler *handler.MatchHandler,
	matchRequestHandler *handler.MatchRequestHandler,
	userHandler *handler.UserHandler,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	r.GET("/health", healthHandler.Health)
	if cfg.MediaStoragePath != "" {
		r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))
	}

	api := r.Group("/api")
	api.GET("/health", healthHandler.Health)

	// всё ниже ходит в базу
	db := api.Group("/")
	db.Use(middleware.RequireDatabase(dbStatus))

	requireAuth := middleware.AuthMiddleware(auth)
	optionalAuth := middleware.OptionalAuth(auth)

	authGroup := db.Group("/auth")
	{
		limited := authGroup.Group("/")
		limited.Use(middleware.RateLimitMiddleware(rateStore, cfg.RateLimitLimit, cfg.RateLimitPeriod))
		limited.POST("/register", authHandler.Register)
		limited.POST("/login", authHandler.Login)

		authGroup.GET("/me", requireAuth, authHandler.Me)
	}

	db.GET("/ws", wsHandler.Handle)

	skills := db.Group("/skills")
	{
		skills.GET("", optionalAuth, listingHandler.List)
		skills.GET("/:id", middleware.UUIDValidator("id"), listingHandler.Get)
		skills.POST("", requireAuth, listingHandler.Create)
		skills.PUT("/:id", requireAuth, middleware.UUIDValidator("id"), listingHandler.Update)
		skills.DELETE("/:id", requireAuth, middleware.UUIDValidator("id"), listingHandler.Delete)
	}

	matches := db.Group("/matches")
	matches.Use(requireAuth)
	{
		matches.POST("", matchHandler.Create)
		matches.GET("", matchHandler.List)
		matches.PUT("/:id/status", middleware.UUIDValidator("id"), matchHandler.UpdateStatus)
		matches.DELETE("/:id", middleware.UUIDValidator("id"), matchHandler.Delete)
	}

	requests := db.Group("/match-requests")
	requests.Use(requireAuth)
	{
		requests.POST("", matchRequestHandler.Send)
		requests.GET("/received", matchRequestHandler.Received)
		requests.GET("/sent", matchRequestHandler.Sent)
		requests.GET("/count", matchRequestHandler.Count)
		requests.PUT("/:id/accept", middleware.UUIDValidator("id"), matchRequestHandler.Accept)
		requests.PUT("/:id/decline", middleware.UUIDValidator("id"), matchRequestHandler.Decline)
	}

	users := db.Group("/users")
	{
		users.GET("", userHandler.Search)
		users.PUT("/profile", requireAuth, userHandler.UpdateProfile)
		users.POST("/avatar", requireAuth, mediaHandler.UploadAvatar)
		users.GET("/:id", middleware.UUIDValidator("id"), userHandler.Get)
	}

	return r
}
