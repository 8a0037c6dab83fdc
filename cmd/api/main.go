package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zhouzirui/candidate-desk/backend/internal/config"
	"github.com/zhouzirui/candidate-desk/backend/internal/handler"
	feedHandler "github.com/zhouzirui/candidate-desk/backend/internal/handler/feed"
	"github.com/zhouzirui/candidate-desk/backend/internal/metrics"
	"github.com/zhouzirui/candidate-desk/backend/internal/model/candidate"
	"github.com/zhouzirui/candidate-desk/backend/internal/observability"
	candidateService "github.com/zhouzirui/candidate-desk/backend/internal/service/candidate"
	"github.com/zhouzirui/candidate-desk/backend/internal/service/feed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if envErr != nil {
		logger.Info("no .env file loaded, continuing with system environment variables only", zap.Error(envErr))
	}

	seed, err := candidate.LoadSeed(cfg.Candidates.SeedFile)
	if err != nil {
		logger.Fatal("failed to load candidate seed", zap.String("path", cfg.Candidates.SeedFile), zap.Error(err))
	}
	store := candidate.NewMemoryStore(seed)
	logger.Info("candidate store initialized", zap.Int("candidates", len(seed)))

	var appMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		appMetrics = metrics.New()
	}

	// metrics 为 nil 时不能以接口形式传入，否则 nil 检查失效
	var observer feed.Observer
	var recorder candidateService.Recorder
	if appMetrics != nil {
		observer = appMetrics
		recorder = appMetrics
	}

	broker := feed.NewBroker(cfg.Feed.Buffer, observer, logger.Named("feed"))
	svc := candidateService.NewService(store,
		candidateService.WithPublisher(broker),
		candidateService.WithRecorder(recorder),
		candidateService.WithLogger(logger.Named("candidates")),
		candidateService.WithDefaultPageSize(cfg.Candidates.DefaultPageSize),
	)

	router := handler.NewRouter(handler.Deps{
		Candidates:     svc,
		Feed:           feedHandler.New(broker, cfg.Feed.Heartbeat, logger.Named("feed")),
		Metrics:        appMetrics,
		Logger:         logger.Named("http"),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	startServer(ctx, logger, cfg.Server, router)
}

func startServer(ctx context.Context, logger *zap.Logger, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		// 推送连接随进程信号一起结束
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	logger.Info("candidate api listening", zap.String("addr", addr))
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
