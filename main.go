package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/besuhoff/predator-arena-go/internal/config"
	"github.com/besuhoff/predator-arena-go/internal/game"
	"github.com/besuhoff/predator-arena-go/internal/handlers"
	"github.com/besuhoff/predator-arena-go/internal/logging"
	"github.com/besuhoff/predator-arena-go/internal/mapgen"
	"github.com/besuhoff/predator-arena-go/internal/server"
)

func main() {
	cfg, envLoaded, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	flag.StringVar(&cfg.Host, "host", cfg.Host, "Host to listen on")
	flag.StringVar(&cfg.Port, "port", cfg.Port, "Port to listen on")
	flag.StringVar(&cfg.TLSCert, "cert", cfg.TLSCert, "TLS certificate file (required for HTTPS)")
	flag.StringVar(&cfg.TLSKey, "key", cfg.TLSKey, "TLS key file (required for HTTPS)")
	flag.BoolVar(&cfg.UseTLS, "tls", cfg.UseTLS, "Enable TLS/HTTPS")
	flag.IntVar(&cfg.TickRate, "tick-rate", cfg.TickRate, "Simulation ticks per second")
	flag.Int64Var(&cfg.MapSeed, "seed", cfg.MapSeed, "Map generation seed")
	flag.StringVar(&cfg.TuningFile, "tuning", cfg.TuningFile, "YAML file overriding gameplay constants")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.Parse()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if !envLoaded {
		logger.Debug("No .env file found, using environment only")
	}

	if err := run(cfg, logger); err != nil {
		logger.Errorw("Server stopped with error", "error", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

func run(cfg *config.Config, logger *zap.SugaredLogger) error {
	if cfg.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", cfg.TickRate)
	}
	tuning, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		return err
	}

	world := mapgen.Generate(rand.New(rand.NewSource(cfg.MapSeed)), tuning)
	logger.Infow("Map generated", "seed", cfg.MapSeed, "walls", len(world.Walls), "width", world.Width, "height", world.Height)

	gameServer := server.NewGameServer(tuning, world, server.Options{
		TickRate:             cfg.TickRate,
		MaxMessagesPerSecond: cfg.MaxMessagesPerSecond,
		AllowedOrigin:        cfg.FrontendURL,
	}, logger,
		game.WithRand(rand.New(rand.NewSource(cfg.MapSeed+1))),
		game.WithSweptBullets(cfg.SweptBullets),
	)
	statusHandler := handlers.NewStatusHandler(gameServer)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gameServer.HandleWebSocket)
	mux.HandleFunc("/health", statusHandler.HandleHealth)
	mux.HandleFunc("/api/v1/status", handlers.CORS(cfg.FrontendURL, statusHandler.HandleStatus))

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return gameServer.Run(ctx)
	})

	g.Go(func() error {
		var err error
		if cfg.UseTLS || cfg.TLSCert != "" {
			if cfg.TLSCert == "" || cfg.TLSKey == "" {
				return errors.New("TLS enabled but certificate or key file not provided")
			}
			logger.Infow("Starting game server with TLS", "addr", cfg.Addr(), "websocket", "wss://"+cfg.Addr()+"/ws")
			err = httpServer.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			logger.Infow("Starting game server", "addr", cfg.Addr(), "websocket", "ws://"+cfg.Addr()+"/ws")
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
