package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	"github.com/yourusername/quiz-api/internal/handler"
	"github.com/yourusername/quiz-api/internal/middleware"
	pgRepo "github.com/yourusername/quiz-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quiz-api/internal/repository/redis"
	"github.com/yourusername/quiz-api/internal/service"
	ws "github.com/yourusername/quiz-api/internal/websocket"
	"github.com/yourusername/quiz-api/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	isProduction := gin.Mode() == gin.ReleaseMode

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), !isProduction)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if cfg.Server.RunMigrations {
		if err := database.MigrateDB(db, database.DefaultMigrationsSource); err != nil {
			log.Printf("Failed to migrate database: %v", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis необязателен: без него нет кеша викторин и ограничения частоты входа
	var cacheRepo repository.CacheRepository
	var rateLimiter *middleware.RateLimiter
	if cfg.Redis.Enabled {
		redisClient, err := database.NewUniversalRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		log.Println("Successfully connected to Redis")

		repo, err := redisRepo.NewCacheRepo(redisClient, "quizapi")
		if err != nil {
			log.Printf("Failed to initialize CacheRepo: %v", err)
			os.Exit(1)
		}
		cacheRepo = repo
		rateLimiter = middleware.NewRateLimiter(redisClient)
	} else {
		log.Println("Redis отключен: кеш викторин и rate limiting не используются")
	}

	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)

	hub := ws.NewHub()
	go hub.Run(ctx)

	authService := service.NewAuthService(userRepo)
	quizService := service.NewQuizService(quizRepo, cacheRepo, cfg.Cache.QuizTTL())
	attemptService := service.NewAttemptService(quizRepo, resultRepo, userRepo, hub)

	if created, err := authService.EnsureAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
		log.Printf("Failed to bootstrap admin account: %v", err)
		os.Exit(1)
	} else if created {
		log.Printf("Создан администратор по умолчанию: %s", cfg.Bootstrap.AdminUsername)
	}

	authHandler := handler.NewAuthHandler(authService)
	quizHandler := handler.NewQuizHandler(quizService)
	attemptHandler := handler.NewAttemptHandler(attemptService, quizService)
	liveHandler := handler.NewLiveHandler(hub, quizService, ws.ClientConfig{
		BufferSize:   cfg.WebSocket.ClientSendBuffer,
		PingInterval: time.Duration(cfg.WebSocket.PingInterval) * time.Second,
		PongWait:     time.Duration(cfg.WebSocket.PongWait) * time.Second,
	}, cfg.Server.AllowedOrigins)
	systemHandler := handler.NewSystemHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	})

	router := gin.Default()

	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	router.Use(middleware.RequestID())
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	router.GET("/", systemHandler.Welcome)
	router.GET("/healthz", systemHandler.Health)

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		if rateLimiter != nil {
			authGroup.Use(rateLimiter.Limit(middleware.AuthRateLimitConfig(cfg.RateLimit)))
		}
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.POST("", quizHandler.CreateQuiz)

			quizWithID := quizzes.Group("/:id")
			quizWithID.Use(middleware.ExtractUintParam("id", handler.QuizIDKey))
			{
				quizWithID.GET("", quizHandler.GetQuiz)
				quizWithID.PUT("", quizHandler.UpdateQuiz)
				quizWithID.DELETE("", quizHandler.DeleteQuiz)
			}
		}

		attempts := api.Group("/attempts")
		{
			attempts.POST("", attemptHandler.Submit)
			attempts.GET("/user/:userId", middleware.ExtractUintParam("userId", handler.UserIDKey), attemptHandler.GetUserResults)

			byQuiz := attempts.Group("/quiz/:quizId")
			byQuiz.Use(middleware.ExtractUintParam("quizId", handler.ResultQuizIDKey))
			{
				byQuiz.GET("", attemptHandler.GetQuizResults)
				byQuiz.GET("/export", attemptHandler.ExportQuizResults)
				byQuiz.GET("/live", liveHandler.Subscribe)
			}
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Server is running on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Останавливаем хаб, чтобы закрыть live-соединения до завершения HTTP сервера
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if sqlDB, err := database.GetSQLDB(db); err == nil {
		sqlDB.Close()
	}

	log.Println("Server exited properly")
}

// corsConfig строит настройки CORS. "*" в списке разрешает любой Origin без credentials.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
