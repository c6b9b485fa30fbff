package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/admin"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/audit"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/backend"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/booking"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/config"
	dbpkg "github.com/NavaUDP/Agenda-Revitek-sub000/internal/db"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/logger"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/metrics"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/routes"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/session"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/validators"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	validators.RegisterGin()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	api := backend.New(cfg.BackendURL, cfg.BackendTimeout, log.Named("backend"), m)

	sessions := session.NewManager(sessionStore(cfg, log), log.Named("session"))

	var (
		dispatcher *audit.Dispatcher
		auditLogs  *audit.Logger
	)
	if cfg.DBUrl != "" {
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			log.Fatal("database unavailable", zap.Error(err))
		}
		auditLogs = audit.New(db)
		dispatcher = audit.NewDispatcher(auditLogs, log.Named("audit"))
		defer dispatcher.Close()
	} else {
		log.Warn("DATABASE_URL not set, audit trail disabled")
	}

	bookings := booking.NewService(api, booking.NewStore(cfg.BookingFlowTTL), log.Named("booking"), m)
	admins := admin.NewRegistry(admin.Deps{Audit: dispatcher, Metrics: m, Logger: log.Named("admin")}, cfg.SessionTTL)

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:    cfg,
		Logger:    log,
		API:       api,
		Sessions:  sessions,
		Bookings:  bookings,
		Admins:    admins,
		Audit:     dispatcher,
		AuditLogs: auditLogs,
		Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("backend", cfg.BackendURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}

func sessionStore(cfg *config.Config, log *zap.Logger) session.Store {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set, sessions kept in memory")
		return session.NewMemoryStore(cfg.SessionTTL)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("redis unavailable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	return session.NewRedisStore(client, cfg.SessionTTL)
}
