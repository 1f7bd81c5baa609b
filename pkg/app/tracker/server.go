// Package tracker implements app.Runner for the bridge tracker process.
package tracker

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/DINetworks/DI-U2U/pkg/app/http"
	"github.com/DINetworks/DI-U2U/pkg/config"
	"github.com/DINetworks/DI-U2U/pkg/ethereum"
	"github.com/DINetworks/DI-U2U/pkg/initiator"
	"github.com/DINetworks/DI-U2U/pkg/pgutil"
	"github.com/DINetworks/DI-U2U/pkg/poller"
	"github.com/DINetworks/DI-U2U/pkg/receipt"
	"github.com/DINetworks/DI-U2U/pkg/relayer"
	"github.com/DINetworks/DI-U2U/pkg/tracker"
	"github.com/DINetworks/DI-U2U/pkg/txstore"
	"github.com/DINetworks/DI-U2U/pkg/txstore/pgstore"
	"github.com/DINetworks/DI-U2U/pkg/txstore/redisstore"
)

// Server holds configuration for the tracker process.
type Server struct {
	cfg *config.Config
}

// NewServer initializes a new tracker Server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Run starts the tracker engine and the HTTP API. It blocks until an OS
// shutdown signal is received or a fatal server error occurs.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("nil config")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	redacted := cfg.Redacted()
	logger.Info("Starting bridge tracker",
		zap.String("rpc_url", redacted.Chain.RPCURL),
		zap.Uint64("chain_id", cfg.Chain.ChainID),
		zap.String("relayer_url", cfg.Relayer.BaseURL),
		zap.String("storage", cfg.Storage.Backend))

	storage, closeStorage, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	store := txstore.New(storage, logger)
	chains := cfg.ChainRegistry()

	ethClient, err := ethereum.NewClient(ctx, cfg.Chain, cfg.Wallet, logger)
	if err != nil {
		return fmt.Errorf("initialize chain client: %w", err)
	}
	defer ethClient.Close()

	relayerClient, err := relayer.NewHTTPClient(relayer.Config{
		BaseURL:        cfg.Relayer.BaseURL,
		RequestTimeout: cfg.Relayer.RequestTimeout,
		RateLimit:      cfg.Relayer.RateLimit,
		RateBurst:      cfg.Relayer.RateBurst,
	}, logger)
	if err != nil {
		return fmt.Errorf("initialize relayer client: %w", err)
	}

	engine := tracker.NewEngine(store, ethClient, relayerClient, chains, engineConfig(cfg), logger)
	if err := engine.Start(ctx); err != nil {
		return fmt.Errorf("start tracker engine: %w", err)
	}
	defer s.stopEngine(engine, logger)

	var submitter Initiator
	if ethClient.SigningEnabled() {
		submitter = initiator.New(ethClient, store, engine, chains, initiator.Config{
			SourceChain:  chains.DisplayName(cfg.Chain.ChainID),
			Decimals:     cfg.Wallet.Decimals,
			NativeSymbol: cfg.Wallet.NativeSymbol,
			TokenSymbol:  cfg.Wallet.TokenSymbol,
		}, logger)
		logger.Info("Bridge initiation enabled", zap.String("address", ethClient.Address().Hex()))
	} else {
		logger.Info("No wallet configured, bridge initiation disabled")
	}

	router := s.newRouter(store, submitter, engine, logger)
	return apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)
}

func engineConfig(cfg *config.Config) tracker.Config {
	return tracker.Config{
		Watcher: receipt.Config{
			Interval:       cfg.Watcher.Interval,
			RequestTimeout: cfg.Chain.RequestTimeout,
		},
		Poller: poller.Config{
			Interval:       cfg.Poller.Interval,
			RequestTimeout: cfg.Relayer.RequestTimeout,
			Policy: poller.Policy{
				MaxAttempts:     cfg.Poller.MaxAttempts,
				MaxDuration:     cfg.Poller.MaxDuration,
				InitialInterval: cfg.Poller.InitialInterval,
				MaxInterval:     cfg.Poller.MaxInterval,
				Multiplier:      cfg.Poller.Multiplier,
			},
		},
	}
}

// stopEngine waits for the engine loops for at most the shutdown timeout
func (s *Server) stopEngine(engine *tracker.Engine, logger *zap.Logger) {
	done := make(chan struct{})
	go func() {
		engine.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(s.cfg.Shutdown.Timeout):
		logger.Warn("Tracker engine did not stop in time", zap.Duration("timeout", s.cfg.Shutdown.Timeout))
	}
}

// openStorage returns the configured persistence backend and its cleanup
func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (txstore.Storage, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage, transactions are lost on restart")
		return txstore.NewMemoryStorage(), func() {}, nil

	case config.StorageRedis:
		rs := redisstore.New(redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
			MaxIdle:  cfg.Redis.MaxIdle,
		})
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("Redis connection established", zap.String("addr", cfg.Redis.Addr))
		return rs, func() { _ = rs.Close() }, nil

	case config.StoragePostgres:
		db, err := pgutil.ConnectDB(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Connected to database",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Database))
		return pgstore.New(db), func() { _ = db.Close() }, nil

	default:
		logger.Info("Using file storage", zap.String("path", cfg.Storage.Path))
		return txstore.NewFileStorage(cfg.Storage.Path), func() {}, nil
	}
}

func (s *Server) newRouter(store TransactionStore, submitter Initiator, engine *tracker.Engine, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		if !engine.IsReady() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT_READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})

	if s.cfg.Monitoring.Enabled {
		r.Handle("/metrics", promhttp.Handler())
		logger.Info("Metrics enabled", zap.String("path", "/metrics"))
	}

	RegisterRoutes(r, store, submitter, engine, logger)
	return r
}
