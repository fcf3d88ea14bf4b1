package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/drop/internal/config"
	"github.com/thereayou/drop/internal/database"
	"github.com/thereayou/drop/internal/handlers"
	"github.com/thereayou/drop/internal/middleware"
	"github.com/thereayou/drop/pkg/auth"
	pkglog "github.com/thereayou/drop/pkg/log"
)

type Server struct {
	cfg        *config.Config
	Router     *gin.Engine
	Conn       *database.Connector
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
}

func NewServer(cfg *config.Config) (*Server, error) {
	logger := pkglog.L()

	conn, err := database.Open(database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetimeMins) * time.Minute,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		return nil, err
	}
	db := database.NewDatabase(conn)

	// Недоступная база не мешает старту: стена покажет примеры,
	// а схема догонится при следующей загрузке или через /api/init-db.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.EnsureSchema(ctx); err != nil {
		logger.Warn().Err(err).Msg("database schema not initialized at startup")
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		conn.Close()
		return nil, err
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		conn.Close()
		return nil, err
	}

	jwtMgr := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)
	blacklist := auth.NewRedisBlacklist(rdb)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(pkglog.GinMiddleware(logger))
	router.Use(middleware.Metrics())

	APIEndpoints(router, Endpoints{
		Auth:     handlers.NewAuthHandler(db, jwtMgr, blacklist),
		Users:    handlers.NewUserHandler(db),
		Messages: handlers.NewMessageHandler(db),
		Wall:     handlers.NewWallHandler(db),
		Health:   handlers.NewHealthHandler(db),
		Required: middleware.AuthMiddleware(jwtMgr, blacklist),
		Optional: middleware.OptionalAuth(jwtMgr, blacklist),
	})

	return &Server{
		cfg:        cfg,
		Router:     router,
		Conn:       conn,
		DB:         db,
		Redis:      rdb,
		JWTManager: jwtMgr,
	}, nil
}

// Run слушает порт до отмены ctx, затем аккуратно останавливается
func (s *Server) Run(ctx context.Context) error {
	logger := pkglog.L()

	srv := &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: s.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", s.cfg.Port).Str("driver", s.Conn.Dialect()).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info().Msg("server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) Close() {
	logger := pkglog.L()
	if err := s.Redis.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close redis")
	}
	if err := s.Conn.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close database")
	}
}
