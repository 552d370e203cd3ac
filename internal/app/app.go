package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"skillbloom_backend/internal/config"
	"skillbloom_backend/internal/controller"
	"skillbloom_backend/internal/repository"
	"skillbloom_backend/internal/service"
	"skillbloom_backend/pkg/configwatcher"
	"skillbloom_backend/pkg/database"
	"skillbloom_backend/pkg/logger"
	"skillbloom_backend/pkg/monitoring"
	"skillbloom_backend/pkg/security"
	"skillbloom_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	limiter         *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user            *repository.UserRepository
	assessment      *repository.AssessmentRepository
	skillEnrollment *repository.SkillEnrollmentRepository
	pod             *repository.PodRepository
	aiLog           *repository.AILogRepository
	baby            *repository.BabyRepository
}

type services struct {
	ai             *service.AIService
	auth           *service.AuthService
	user           *service.UserService
	assessment     *service.AssessmentService
	recommendation *service.RecommendationService
	mentor         *service.MentorService
	skillPath      *service.SkillPathService
	pod            *service.PodService
	baby           *service.BabyMonitorService
}

type controllers struct {
	auth       *controller.AuthController
	assessment *controller.AssessmentController
	ai         *controller.AIController
	skillPath  *controller.SkillPathController
	pod        *controller.PodController
	baby       *controller.BabyController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		user:            repository.NewUserRepository(db),
		assessment:      repository.NewAssessmentRepository(db),
		skillEnrollment: repository.NewSkillEnrollmentRepository(db, rdb, time.Duration(cfg.Redis.ProgressTTLMinutes)*time.Minute),
		pod:             repository.NewPodRepository(db),
		aiLog:           repository.NewAILogRepository(db),
		baby:            repository.NewBabyRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.ai = service.NewAIService(service.NewTextCompleter(cfg.AI), cfg.AI.Timeout())
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.user)
	s.recommendation = service.NewRecommendationService(s.ai, repos.user)
	s.mentor = service.NewMentorService(s.ai, repos.user, repos.aiLog)
	s.skillPath = service.NewSkillPathService(repos.skillEnrollment, s.mentor)
	s.pod = service.NewPodService(repos.pod)
	s.baby = service.NewBabyMonitorService(repos.baby, nil)

	// AI 配置热更新
	a.RegisterConfigCallback(s.ai.Reload)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, cfg *config.Config) *controllers {
	streamInterval := time.Duration(cfg.Baby.StreamIntervalSeconds) * time.Second
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.user),
		assessment: controller.NewAssessmentController(s.assessment, s.recommendation),
		ai:         controller.NewAIController(s.mentor, s.recommendation),
		skillPath:  controller.NewSkillPathController(s.skillPath),
		pod:        controller.NewPodController(s.pod),
		baby:       controller.NewBabyController(s.baby, streamInterval),
		health:     controller.NewHealthController(db, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	a.limiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, window)
	router.Use(a.limiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// newApp 只负责装配，数据库与 Redis 由调用方准备好
func newApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db, cfg)

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode == gin.DebugMode {
		router.Use(gin.Logger())
	}
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	return app
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		logger.Log.Error("Failed to initialize database", zap.Error(err))
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.Error("Failed to migrate database", zap.Error(err))
		return nil, err
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Error("Failed to initialize redis", zap.Error(err))
		return nil, err
	}

	// 监控初始化
	monitoring.Init()

	app := newApp(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("skillbloom", cfg.Tracing)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
			return nil, err
		}
		app.tracer = tp
	}

	return app, nil
}

func (a *App) startBackgroundTasks(ctx context.Context) {
	go a.limiter.Cleanup(ctx)

	if a.Config.ConfigPath == "" {
		logger.Log.Info("No config file in use, hot reload disabled")
		return
	}
	w := configwatcher.New(a.Config.ConfigPath)
	for _, cb := range a.configCallbacks {
		w.OnReload(cb)
	}
	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.startBackgroundTasks(ctx)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.close(shutdownCtx)
	logger.Log.Info("Server exiting")
	logger.Log.Sync()
}

func (a *App) close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
