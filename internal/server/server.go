package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"quill/internal/ai"
	"quill/internal/config"
	"quill/internal/handler"
	"quill/internal/pkg/cache"
	"quill/internal/pkg/mongodb"
	"quill/internal/pkg/ratelimit"
	"quill/internal/repository"
	"quill/internal/server/middleware"
	"quill/internal/service/generation"
)

const shutdownTimeout = 15 * time.Second

// Server HTTP 服务器
type Server struct {
	cfg      *config.Config
	engine   *gin.Engine
	mongo    *mongodb.Client
	redis    *cache.RedisCache
	aiClient *ai.Client
	memory   *ratelimit.MemoryStore // 仅内存计数时非 nil
	pipeline *generation.Pipeline
	usage    *repository.UsageRepo
}

// New 创建服务器实例
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &Server{
		cfg:    cfg,
		engine: gin.New(),
	}

	// 初始化 MongoDB (可选，用量记录)
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, usage ledger disabled")
		} else {
			srv.mongo = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			// 创建索引
			if err := mongodb.EnsureIndexes(ctx, client.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
			srv.usage = repository.NewUsageRepo(client.Database())
		}
	}

	// 初始化 AI 客户端，缺少凭证时请求级报错
	aiClient, err := ai.NewClient(ctx, &cfg.AI)
	if err != nil {
		srv.closeStores()
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}
	srv.aiClient = aiClient
	log.Info().Str("provider", cfg.AI.Provider).Str("model", cfg.AI.Model).Msg("initialized generation client")

	opts := []generation.Option{generation.WithDecodePolicy(cfg.Decode.Policy)}
	if limiter := srv.newLimiter(); limiter != nil {
		opts = append(opts, generation.WithLimiter(limiter))
	}
	if srv.usage != nil {
		opts = append(opts, generation.WithUsageRecorder(srv.usage))
	}
	srv.pipeline = generation.NewPipeline(generation.NewValidator(), aiClient, opts...)

	// 设置路由
	srv.setupRoutes()

	return srv, nil
}

// newLimiter 按配置创建限流器，Redis 不可用时退回内存计数
func (s *Server) newLimiter() ratelimit.Limiter {
	rl := s.cfg.RateLimit
	if !rl.Enabled {
		log.Warn().Msg("rate limiting disabled")
		return nil
	}

	if rl.Store == config.StoreRedis {
		rc, err := cache.NewRedisCache(&s.cfg.Redis)
		if err == nil {
			s.redis = rc
			log.Info().Str("addr", s.cfg.Redis.Addr).Int("limit", rl.Limit).Dur("window", rl.Window).Msg("rate limiting with Redis store")
			return ratelimit.NewRedisStore(rc, rl.Limit, rl.Window)
		}
		log.Warn().Err(err).Msg("failed to connect to Redis, falling back to in-memory rate limiting")
	}

	s.memory = ratelimit.NewMemoryStore(rl.Limit, rl.Window)
	log.Info().Int("limit", rl.Limit).Dur("window", rl.Window).Msg("rate limiting with in-memory store")
	return s.memory
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS(s.cfg.Server.CORSAllowedOrigins))
	s.engine.Use(middleware.Metrics())

	// 健康检查与指标
	healthHandler := handler.NewHealthHandler(s.cfg.Version)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	generateHandler := handler.NewGenerateHandler(s.pipeline)
	s.engine.POST("/api/generate", generateHandler.Generate)

	// API v1
	v1 := s.engine.Group("/api/v1")
	{
		v1.POST("/generate", generateHandler.Generate)
		v1.GET("/intents", handler.NewCatalogHandler().Intents)

		if s.usage != nil {
			v1.GET("/usage", handler.NewUsageHandler(s.usage).List)
		} else {
			log.Warn().Msg("MongoDB not configured, usage endpoint disabled")
		}
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 定期清理过期的限流记录
	if s.memory != nil && s.cfg.RateLimit.SweepInterval > 0 {
		go s.memory.RunSweeper(ctx, s.cfg.RateLimit.SweepInterval)
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		s.Close()
		return err
	case err := <-errCh:
		s.Close()
		return err
	}
}

// Close 释放外部连接
func (s *Server) Close() {
	if s.aiClient != nil {
		if err := s.aiClient.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close generation client")
		}
	}
	s.closeStores()
}

func (s *Server) closeStores() {
	if s.mongo != nil {
		if err := s.mongo.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close MongoDB connection")
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close Redis connection")
		}
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
