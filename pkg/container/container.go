package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"b2bees-backend/internal/config"
	infraCache "b2bees-backend/internal/infrastructure/cache"
	"b2bees-backend/internal/infrastructure/database"
	"b2bees-backend/internal/infrastructure/email"
	"b2bees-backend/internal/infrastructure/llm"
	"b2bees-backend/internal/infrastructure/queue"
	"b2bees-backend/internal/infrastructure/storage"
	"b2bees-backend/pkg/cache"
	"b2bees-backend/pkg/jwt"

	// Bee (catalog)
	beeHandler "b2bees-backend/internal/domains/bee/handler"
	beeRepo "b2bees-backend/internal/domains/bee/repository"
	beeService "b2bees-backend/internal/domains/bee/service"

	// Subscriber
	subscriberHandler "b2bees-backend/internal/domains/subscriber/handler"
	subscriberRepo "b2bees-backend/internal/domains/subscriber/repository"
	subscriberService "b2bees-backend/internal/domains/subscriber/service"

	// Analytics
	analyticsHandler "b2bees-backend/internal/domains/analytics/handler"
	analyticsRepo "b2bees-backend/internal/domains/analytics/repository"
	analyticsService "b2bees-backend/internal/domains/analytics/service"

	// Upload, chat, admin
	adminHandler "b2bees-backend/internal/domains/admin/handler"
	adminService "b2bees-backend/internal/domains/admin/service"
	chatHandler "b2bees-backend/internal/domains/chat/handler"
	chatService "b2bees-backend/internal/domains/chat/service"
	uploadHandler "b2bees-backend/internal/domains/upload/handler"
	uploadService "b2bees-backend/internal/domains/upload/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Thứ tự build: config -> infrastructure -> repositories -> services -> handlers
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	RedisCache  *infraCache.RedisCache // nil khi chạy với memory cache
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client
	Email       email.EmailService

	ImageProcessor *storage.ImageProcessor
	LocalStorage   *storage.LocalStorage
	PrimaryStorage storage.ObjectStore // nil khi UPLOAD_PROVIDER=local
	LLMClient      llm.Client          // nil khi chưa có API key

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	BeeRepo        beeRepo.Repository
	SubscriberRepo subscriberRepo.Repository
	AnalyticsRepo  analyticsRepo.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	BeeService        beeService.Service
	SubscriberService subscriberService.Service
	AnalyticsService  analyticsService.Service
	UploadService     uploadService.Service
	ChatService       chatService.Service
	AuthService       adminService.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	BeeHandler        *beeHandler.BeeHandler
	SubscriberHandler *subscriberHandler.SubscriberHandler
	AnalyticsHandler  *analyticsHandler.AnalyticsHandler
	UploadHandler     *uploadHandler.UploadHandler
	ChatHandler       *chatHandler.ChatHandler
	AuthHandler       *adminHandler.AuthHandler
}

// NewContainer tạo và initialize toàn bộ dependency graph
func NewContainer(ctx context.Context) (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("✅ Config loaded")

	// ========================================
	// STEP 2: INFRASTRUCTURE
	// ========================================
	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 3..5: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	// ----------------------------------------
	// DATABASE
	// ----------------------------------------
	log.Info().Msg("🗄️  Connecting to PostgreSQL...")

	db := database.NewPostgresDB(cfg.Database)
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Info().Msg("✅ Database connected")

	// ----------------------------------------
	// CACHE
	// ----------------------------------------
	// Redis lỗi: production thì fail, local thì chạy tiếp với memory cache
	log.Info().Msg("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		if cfg.App.IsProduction() {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Warn().Err(err).Msg("⚠️  Redis connection failed, using in-memory cache")
		_ = redisCache.Close()
		c.Cache = infraCache.NewMemoryCache()
	} else {
		c.RedisCache = redisCache
		c.Cache = redisCache
	}

	// ----------------------------------------
	// AUTH, QUEUE, EMAIL
	// ----------------------------------------
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	c.AsynqClient = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	c.Email = email.NewSMTPEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)

	// ----------------------------------------
	// STORAGE
	// ----------------------------------------
	c.ImageProcessor = storage.NewImageProcessor(int64(cfg.Upload.MaxSizeMB) * 1024 * 1024)
	c.LocalStorage = storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.PublicBaseURL)

	switch cfg.Upload.Provider {
	case storage.ProviderImgur:
		c.PrimaryStorage = storage.NewImgurStorage(cfg.Imgur.ClientID, cfg.Imgur.APIURL, cfg.Imgur.Timeout)
	case storage.ProviderMinIO:
		minioStore, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			return fmt.Errorf("failed to init minio storage: %w", err)
		}
		c.PrimaryStorage = minioStore
	}
	log.Info().Str("provider", cfg.Upload.Provider).Msg("✅ Upload storage ready")

	// ----------------------------------------
	// LLM
	// ----------------------------------------
	c.LLMClient = c.newLLMClient(ctx)

	return nil
}

// newLLMClient trả về nil interface khi thiếu key, chat sẽ trả 500
func (c *Container) newLLMClient(ctx context.Context) llm.Client {
	cfg := c.Config.LLM

	switch cfg.Provider {
	case llm.ProviderGemini:
		if cfg.GeminiKey == "" {
			log.Warn().Msg("⚠️  GEMINI_API_KEY not set, chat disabled")
			return nil
		}
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			log.Error().Err(err).Msg("Failed to init Gemini client, chat disabled")
			return nil
		}
		return client
	default:
		if cfg.OpenAIKey == "" {
			log.Warn().Msg("⚠️  OPENAI_API_KEY not set, chat disabled")
			return nil
		}
		return llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.Timeout,
		})
	}
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BeeRepo = beeRepo.NewPostgresRepository(pool)
	c.SubscriberRepo = subscriberRepo.NewPostgresRepository(pool)
	c.AnalyticsRepo = analyticsRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.BeeService = beeService.NewBeeService(c.BeeRepo, c.Cache, c.Config.Cache.CatalogTTL)
	c.SubscriberService = subscriberService.NewSubscriberService(c.SubscriberRepo, c.AsynqClient)
	c.AnalyticsService = analyticsService.NewAnalyticsService(c.AnalyticsRepo, c.SubscriberService)

	c.UploadService = uploadService.NewUploadService(uploadService.Config{
		Primary:    c.PrimaryStorage,
		Fallback:   c.LocalStorage,
		Processor:  c.ImageProcessor,
		Production: c.Config.App.IsProduction(),
	})

	c.ChatService = chatService.NewChatService(c.LLMClient)
	c.AuthService = adminService.NewAuthService(c.Config.Admin.PasswordHash, c.JWTManager, c.Cache)
}

func (c *Container) initHandlers() {
	c.BeeHandler = beeHandler.NewBeeHandler(c.BeeService)
	c.SubscriberHandler = subscriberHandler.NewSubscriberHandler(c.SubscriberService)
	c.AnalyticsHandler = analyticsHandler.NewAnalyticsHandler(c.AnalyticsService)
	c.UploadHandler = uploadHandler.NewUploadHandler(c.UploadService, c.ImageProcessor.MaxSize)
	c.ChatHandler = chatHandler.NewChatHandler(c.ChatService)
	c.AuthHandler = adminHandler.NewAuthHandler(c.AuthService)
}

// BeeName dùng cho welcome email
func (c *Container) BeeName(ctx context.Context, beeID int64) string {
	bee, err := c.BeeService.GetBeeByID(ctx, beeID)
	if err != nil {
		return ""
	}
	return bee.Name
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close asynq client")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close database")
		} else {
			log.Info().Msg("✅ Database connections closed")
		}
	}

	if c.RedisCache != nil {
		if err := c.RedisCache.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		} else {
			log.Info().Msg("✅ Redis connections closed")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
