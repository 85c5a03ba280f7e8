package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/itbasis/go-clock"
	"github.com/redis/go-redis/v9"

	"github.com/TiebeBeniers/vvsrotselaar/internal/api/handlers"
	"github.com/TiebeBeniers/vvsrotselaar/internal/api/middleware"
	"github.com/TiebeBeniers/vvsrotselaar/internal/config"
	"github.com/TiebeBeniers/vvsrotselaar/internal/repository"
	"github.com/TiebeBeniers/vvsrotselaar/internal/service"
	"github.com/TiebeBeniers/vvsrotselaar/internal/websocket"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/database"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/distributed"
	jwtutil "github.com/TiebeBeniers/vvsrotselaar/pkg/jwt"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/logger"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/ratelimit"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/storage"
)

// SetupRouter wires repositories, services, and routes. The returned
// shutdown func stops the background ticker and the Redis subscription.
func SetupRouter(cfg *config.Config, db *database.DB, redisClient *redis.Client) (*gin.Engine, func(), error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	storageManager, err := storage.New(cfg.StoragePath)
	if err != nil {
		return nil, nil, err
	}

	jwtManager := jwtutil.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	clk := clock.New()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	eventRepo := repository.NewEventRepository(db)
	evenementRepo := repository.NewEvenementRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Live broadcast ticker
	liveService := service.NewLiveService(matchRepo, wsHub, clk, cfg.TickInterval, cfg.LiveVisibilityWindow)
	liveService.Start()

	// Cross-instance fan-out: any instance's transition triggers an
	// immediate snapshot broadcast on every instance.
	coordinator := distributed.NewLiveCoordinator(redisClient, func(*distributed.LiveUpdate) {
		liveService.BroadcastSnapshot()
	})
	if err := coordinator.Start(context.Background()); err != nil {
		liveService.Stop()
		return nil, nil, err
	}

	lockManager := distributed.NewRedisLockManager(redisClient)
	orderQueue := distributed.NewRedisQueue(redisClient, "orders", 3)
	kioskLimiter := ratelimit.NewRedisRateLimiter(redisClient, "kiosk", 10, time.Minute)

	// Services
	userService := service.NewUserService(userRepo, jwtManager)
	matchService := service.NewMatchService(matchRepo, eventRepo, lockManager, coordinator, clk, cfg.GraceWindow, cfg.StartWindow)
	eventService := service.NewEventService(matchRepo, eventRepo, coordinator, clk)
	evenementService := service.NewEvenementService(evenementRepo, storageManager)
	shiftService := service.NewShiftService(shiftRepo)
	orderService := service.NewOrderService(orderRepo, orderQueue, clk)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	matchHandler := handlers.NewMatchHandler(matchService, eventService)
	liveHandler := handlers.NewLiveHandler(liveService)
	evenementHandler := handlers.NewEvenementHandler(evenementService)
	shiftHandler := handlers.NewShiftHandler(shiftService)
	orderHandler := handlers.NewOrderHandler(orderService)
	wsHandler := handlers.NewWebSocketHandler(wsHub)

	auth := middleware.Auth(jwtManager)
	admin := middleware.RequireAdmin()

	// Health check
	router.GET("/health", handlers.HealthCheck)

	// Poster images
	router.Static("/storage", cfg.StoragePath)

	v1 := router.Group("/api/v1")
	{
		// Public live feed
		v1.GET("/ws", wsHandler.HandleWebSocket)
		v1.GET("/live", liveHandler.GetLive)

		authRoutes := v1.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimit())
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		matches := v1.Group("/matches")
		{
			matches.GET("", matchHandler.ListMatches)
			matches.GET("/:id", matchHandler.GetMatch)
			matches.GET("/:id/timeline", matchHandler.GetTimeline)

			matches.POST("", auth, admin, matchHandler.CreateMatch)
			matches.PUT("/:id", auth, admin, matchHandler.UpdateMatch)
			matches.DELETE("/:id", auth, admin, matchHandler.DeleteMatch)

			// Transitions: authorization against the match's designated
			// controllers happens in the service.
			matches.POST("/:id/start", auth, matchHandler.StartMatch)
			matches.POST("/:id/pause", auth, matchHandler.PauseMatch)
			matches.POST("/:id/resume", auth, matchHandler.ResumeMatch)
			matches.POST("/:id/extra-time", auth, matchHandler.StartExtraTime)
			matches.POST("/:id/end", auth, matchHandler.EndMatch)
			matches.PUT("/:id/score", auth, matchHandler.CorrectScore)
			matches.POST("/:id/events", auth, matchHandler.LogEvent)
		}

		users := v1.Group("/users")
		users.Use(auth)
		{
			users.GET("/me", userHandler.GetCurrentUser)
			users.GET("", admin, userHandler.ListUsers)
			users.PUT("/:id", admin, userHandler.UpdateUser)
			users.DELETE("/:id", admin, userHandler.DeleteUser)
		}

		evenementen := v1.Group("/evenementen")
		{
			evenementen.GET("", evenementHandler.ListEvenementen)
			evenementen.GET("/:id", evenementHandler.GetEvenement)
			evenementen.POST("", auth, admin, evenementHandler.CreateEvenement)
			evenementen.PUT("/:id", auth, admin, evenementHandler.UpdateEvenement)
			evenementen.DELETE("/:id", auth, admin, evenementHandler.DeleteEvenement)
		}

		v1.GET("/announcement", evenementHandler.GetAnnouncement)
		v1.PUT("/announcement", auth, admin, evenementHandler.SetAnnouncement)

		shifts := v1.Group("/shifts")
		{
			shifts.GET("", shiftHandler.ListShifts)
			shifts.POST("", auth, admin, shiftHandler.SaveShift)
			shifts.DELETE("/:id", auth, admin, shiftHandler.DeleteShift)
			shifts.POST("/:id/signup", auth, shiftHandler.SignUp)
			shifts.POST("/:id/remove", auth, shiftHandler.Remove)
		}

		orders := v1.Group("/orders")
		orders.Use(auth)
		{
			orders.GET("/prices", orderHandler.GetPriceList)
			orders.POST("", middleware.RedisRateLimit(kioskLimiter, middleware.UserKeyFunc), orderHandler.CreateOrder)
			orders.GET("", admin, orderHandler.ListOrders)
			orders.POST("/next", admin, orderHandler.NextOrder)
			orders.POST("/:id/ack", admin, orderHandler.AckOrder)
		}
	}

	shutdown := func() {
		coordinator.Stop()
		liveService.Stop()
		logger.Info("Background services stopped")
	}

	return router, shutdown, nil
}
