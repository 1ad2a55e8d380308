// @title QuizCraft API
// @version 1.0
// @description AI-assisted quiz generation and answer scoring service.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizcraft/internal/adapter"
	"quizcraft/internal/adapter/modelclient"
	"quizcraft/internal/cache"
	"quizcraft/internal/config"
	"quizcraft/internal/database"
	"quizcraft/internal/extractor"
	"quizcraft/internal/handler"
	"quizcraft/internal/logger"
	"quizcraft/internal/middleware"
	"quizcraft/internal/repository"
	"quizcraft/internal/service"
	"quizcraft/internal/validation"

	_ "quizcraft/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger.Env); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Model client. With no API key configured this yields the sentinel
	// client and every pipeline call answers 503.
	modelClient, err := modelclient.New(context.Background(), cfg.Model)
	if err != nil {
		appLogger.Fatal("Failed to create model client", zap.Error(err))
	}
	appLogger.Info("Model client initialized", zap.String("provider", cfg.Model.Provider))

	// Database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	appLogger.Info("Successfully connected to database")

	// Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Repositories
	contentRepository := repository.NewContentDatabaseAdapter(db)
	quizRecordRepository := repository.NewQuizRecordDatabaseAdapter(db)
	challengeRepository := repository.NewChallengeDatabaseAdapter(db)
	scoreRecordRepository := repository.NewScoreRecordDatabaseAdapter(db)
	progressRepository := repository.NewProgressDatabaseAdapter(db)
	learnerRepository := repository.NewLearnerDatabaseAdapter(db)

	// Services
	recordCacheService := service.NewRecordCacheService(cacheAdapter, cfg.Cache.QuizRecordTTL)
	generationService := service.NewQuizGenerationService(
		contentRepository,
		quizRecordRepository,
		progressRepository,
		extractor.NewBlockExtractor(),
		modelClient,
		recordCacheService,
		cfg.Quiz.QuestionCount,
		cfg.Quiz.MinContentChars,
	)
	scoringService := service.NewScoringService(
		challengeRepository,
		scoreRecordRepository,
		progressRepository,
		modelClient,
	)
	authService, err := service.NewAuthService(learnerRepository, cacheAdapter, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Handlers
	requestValidator := validation.NewValidator()
	quizHandler := handler.NewQuizHandler(generationService, requestValidator)
	scoreHandler := handler.NewScoreHandler(scoringService, requestValidator)
	authHandler := handler.NewAuthHandler(authService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)

	quizGroup := apiGroup.Group("/quizzes", middleware.Protected(authService))
	quizGroup.Post("/generate", quizHandler.GenerateQuiz)
	quizGroup.Get("/:id", quizHandler.GetQuiz)

	scoreGroup := apiGroup.Group("/scores", middleware.Protected(authService))
	scoreGroup.Post("/", scoreHandler.SubmitScore)
	scoreGroup.Get("/me", scoreHandler.ListMyScores)

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("env", cfg.Logger.Env),
		)
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
