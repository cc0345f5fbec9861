package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/samora254/KitabuNew/internal/config"
	"github.com/samora254/KitabuNew/internal/controller"
	"github.com/samora254/KitabuNew/internal/repository"
	"github.com/samora254/KitabuNew/internal/service"
	"github.com/samora254/KitabuNew/pkg/database"
	"github.com/samora254/KitabuNew/pkg/logger"
	"github.com/samora254/KitabuNew/pkg/monitoring"
	"github.com/samora254/KitabuNew/pkg/security"
	"github.com/samora254/KitabuNew/pkg/tracing"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	content   *repository.ContentRepository
	progress  *repository.ProgressRepository
	flashcard *repository.FlashcardRepository
	quiz      *repository.QuizRepository
	homework  *repository.HomeworkRepository
	chat      *repository.ChatRepository
}

type services struct {
	auth      *service.AuthService
	storage   *service.StorageService
	tutor     *service.TutorService
	progress  *service.ProgressService
	content   *service.ContentService
	flashcard *service.FlashcardService
	quiz      *service.QuizService
	homework  *service.HomeworkService
	chat      *service.ChatService
	user      *service.UserService
}

type controllers struct {
	auth      *controller.AuthController
	content   *controller.ContentController
	flashcard *controller.FlashcardController
	quiz      *controller.QuizController
	homework  *controller.HomeworkController
	progress  *controller.ProgressController
	chat      *controller.ChatController
	user      *controller.UserController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig fans a freshly parsed config out to registered listeners.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		content:   repository.NewContentRepository(db),
		progress:  repository.NewProgressRepository(db),
		flashcard: repository.NewFlashcardRepository(db),
		quiz:      repository.NewQuizRepository(db),
		homework:  repository.NewHomeworkRepository(db),
		chat:      repository.NewChatRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.tutor = service.NewTutorService(cfg.AI)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.progress = service.NewProgressService(repos.content, repos.progress, repos.user, db, rdb)
	s.content = service.NewContentService(repos.content, s.progress, rdb)
	s.flashcard = service.NewFlashcardService(repos.flashcard, repos.content, s.tutor)
	s.quiz = service.NewQuizService(repos.quiz, repos.content, s.progress, s.tutor, db)
	s.homework = service.NewHomeworkService(repos.homework, repos.content)
	s.chat = service.NewChatService(repos.chat, repos.content, s.tutor)
	s.user = service.NewUserService(repos.user, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		content:   controller.NewContentController(s.content),
		flashcard: controller.NewFlashcardController(s.flashcard),
		quiz:      controller.NewQuizController(s.quiz, s.tutor),
		homework:  controller.NewHomeworkController(s.homework, s.storage),
		progress:  controller.NewProgressController(s.progress),
		chat:      controller.NewChatController(s.chat),
		user:      controller.NewUserController(s.user),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("kitabu-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type != "minio" && cfg.Storage.LocalPath != "" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, os.ModePerm)
		}
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
