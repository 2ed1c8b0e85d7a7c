package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/boardhouse/board-service/internal/api/handler"
	"github.com/boardhouse/board-service/internal/api/middleware"
	"github.com/boardhouse/board-service/internal/api/session"
	"github.com/boardhouse/board-service/internal/core/domain"
	"github.com/boardhouse/board-service/internal/core/ports"
	"github.com/boardhouse/board-service/internal/core/service"
	"github.com/boardhouse/board-service/internal/infrastructure/config"
	mongodb "github.com/boardhouse/board-service/internal/infrastructure/db/mongo"
	redisdb "github.com/boardhouse/board-service/internal/infrastructure/db/redis"
	"github.com/boardhouse/board-service/internal/token"
)

// NewRouter builds the Echo instance with all routes registered.
//
// The auth pipeline ordering is a correctness requirement, not an accident of
// wiring: Refresh must complete before Auth observes the access token, since
// Refresh both rewrites the outgoing cookie and hands the freshly minted
// token to Auth through the request context. AuthPipeline makes that order
// explicit and testable.
func NewRouter(db *mongo.Database, rdb *redis.Client, codec *token.Codec, cfg *config.Config, events ports.SecurityEventSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("board"))

	// --- Dependencies ---
	carrier := session.NewCarrier(cfg.Auth.SecureCookies)
	store := redisdb.NewRefreshTokenStore(rdb, cfg.Auth.RefreshTTL)

	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)
	followRepo := mongodb.NewFollowRepository(db)

	authService := service.NewAuthService(userRepo, store, codec)
	postService := service.NewPostService(postRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)
	followService := service.NewFollowService(followRepo, userRepo)

	// --- Auth pipeline (ordered) ---
	e.Use(AuthPipeline(codec, store, authService, carrier, events, cfg.Auth, log)...)

	authHandler := handler.NewAuthHandler(authService, carrier, codec)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	followHandler := handler.NewFollowHandler(followService)
	adminHandler := handler.NewAdminHandler(userRepo, store)

	requireAuth := middleware.RequireAuth()
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, requireAuth)
	e.POST("/auth/refresh", authHandler.Refresh, requireAuth)
	e.GET("/auth/me", authHandler.Me, requireAuth)

	// --- Board routes (reads are anonymous-friendly) ---
	e.GET("/posts", postHandler.List)
	e.GET("/posts/:id", postHandler.Get)
	e.GET("/posts/:id/comments", commentHandler.List)
	e.POST("/posts", postHandler.Create, requireAuth)
	e.PUT("/posts/:id", postHandler.Update, requireAuth)
	e.DELETE("/posts/:id", postHandler.Delete, requireAuth)
	e.POST("/posts/:id/comments", commentHandler.Create, requireAuth)
	e.DELETE("/comments/:id", commentHandler.Delete, requireAuth)

	// --- Follow graph ---
	e.GET("/users/:username/following", followHandler.Following)
	e.GET("/users/:username/followers", followHandler.Followers)
	e.POST("/users/:username/follow", followHandler.Follow, requireAuth)
	e.DELETE("/users/:username/follow", followHandler.Unfollow, requireAuth)

	// --- Admin ---
	admin := e.Group("/admin", requireAdmin)
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:username", adminHandler.DeleteUser)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}

// AuthPipeline returns the two auth middleware stages in their required
// order: token renewal strictly before access validation.
func AuthPipeline(codec *token.Codec, store ports.TokenStore, resolver ports.IdentityResolver, carrier session.Carrier, events ports.SecurityEventSink, authCfg config.AuthConfig, log zerolog.Logger) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.Refresh(middleware.RefreshConfig{
			Codec:        codec,
			Store:        store,
			Resolver:     resolver,
			Carrier:      carrier,
			Events:       events,
			StoreTimeout: authCfg.StoreTimeout,
			FailMode:     middleware.FailMode(authCfg.FailMode),
			Logger:       log,
		}),
		middleware.Auth(middleware.AuthConfig{
			Codec:          codec,
			Resolver:       resolver,
			Carrier:        carrier,
			ResolveTimeout: authCfg.StoreTimeout,
			Logger:         log,
		}),
	}
}
