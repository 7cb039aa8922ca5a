package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	blogHTTP "blogicum/internal/controller/http"
	"blogicum/internal/repo/cache"
	"blogicum/internal/repo/persistent"
	"blogicum/internal/usecase"
	redisCache "blogicum/pkg/cache"
	"blogicum/pkg/config"
	"blogicum/pkg/database"
	"blogicum/pkg/jwt"
	"blogicum/pkg/logger"
	"blogicum/pkg/queue"
	"blogicum/pkg/s3"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	_ "blogicum/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()
	gin.SetMode(cfg.GinMode)

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := redisCache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without rate limits and session revocation)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v (image uploads disabled)", err)
		s3Client = nil
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwt.NewService(cfg.JWTSecret, cfg.SessionTTL),
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(a.db)
	postRepo := persistent.NewPostRepository(a.db)
	commentRepo := persistent.NewCommentRepository(a.db)
	categoryRepo := persistent.NewCategoryRepository(a.db)
	locationRepo := persistent.NewLocationRepository(a.db)

	var sessions cache.SessionStore
	if a.redisClient != nil {
		sessions = cache.NewSessionStore(a.redisClient)
	}
	var images usecase.ImageStore
	if a.s3Client != nil {
		images = a.s3Client
	}
	var mail usecase.MailPublisher
	if a.queueClient != nil {
		mail = a.queueClient
	}

	// Initialize use cases
	postUseCase := usecase.NewPostUseCase(postRepo, commentRepo, categoryRepo, locationRepo, images, a.cfg.PageSize, a.log)
	commentUseCase := usecase.NewCommentUseCase(postRepo, commentRepo, a.log)
	profileUseCase := usecase.NewProfileUseCase(userRepo, postRepo, a.cfg.PageSize, a.log)
	authUseCase := usecase.NewAuthUseCase(userRepo, sessions, a.jwtService, mail, a.cfg.MailFrom, a.log)
	adminUseCase := usecase.NewAdminUseCase(categoryRepo, locationRepo, postRepo, a.cfg.PageSize, a.log)

	// Initialize HTTP handlers
	cookies := blogHTTP.SessionCookies{Secure: a.cfg.SecureCookie, TTL: a.cfg.SessionTTL}
	handlers := blogHTTP.Handlers{
		Post:    blogHTTP.NewPostHandler(postUseCase, commentUseCase, a.log),
		Comment: blogHTTP.NewCommentHandler(commentUseCase, a.log),
		Profile: blogHTTP.NewProfileHandler(profileUseCase, authUseCase, cookies, a.log),
		Auth:    blogHTTP.NewAuthHandler(authUseCase, cookies, a.log),
		Admin:   blogHTTP.NewAdminHandler(adminUseCase, a.log),
		Pages:   blogHTTP.NewPageHandler(a.log),
	}

	r, err := blogHTTP.NewRouter(handlers, authUseCase, blogHTTP.RouterConfig{
		Cookies:        cookies,
		RedisClient:    a.redisClient,
		AuthRateLimit:  a.cfg.AuthRateLimit,
		AuthRateWindow: a.cfg.AuthRateWindow,
		AdminOrigins:   a.cfg.AdminOrigins,
	}, a.log)
	if err != nil {
		a.log.Error("Failed to build router: %v", err)
		return err
	}

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Blogicum starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down blogicum...")
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Drain requests first, then close their backends
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	a.log.Info("Blogicum exited")
	return nil
}
