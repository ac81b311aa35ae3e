package main

//	@title						LeaseTrace API
//	@version					0.1.0
//	@description				DHCP lease device classification service API.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/leasetrace/leasetrace/internal/auth"
	"github.com/leasetrace/leasetrace/internal/classify"
	"github.com/leasetrace/leasetrace/internal/config"
	"github.com/leasetrace/leasetrace/internal/event"
	"github.com/leasetrace/leasetrace/internal/registry"
	"github.com/leasetrace/leasetrace/internal/server"
	"github.com/leasetrace/leasetrace/internal/store"
	"github.com/leasetrace/leasetrace/internal/version"
	"github.com/leasetrace/leasetrace/pkg/plugin"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Println(version.Info())
		return
	}

	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Load configuration (before logger, so log level/format can be configured).
	viperCfg, err := server.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg := config.New(viperCfg)

	logger, err := config.NewLogger(viperCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("LeaseTrace server starting", zap.String("version", version.Short()))

	if f := viperCfg.ConfigFileUsed(); f != "" {
		logger.Info("configuration loaded",
			zap.String("component", "config"),
			zap.String("source", f),
		)
	} else {
		logger.Warn("no configuration file found, using defaults",
			zap.String("component", "config"),
		)
	}

	// Open database
	dbPath := viperCfg.GetString("database.dsn")
	if dbPath == "" {
		dbPath = "leasetrace.db"
	}
	db, err := store.New(dbPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("database initialized",
		zap.String("component", "database"),
		zap.String("path", dbPath),
	)

	// Shared services
	bus := event.NewBus(logger.Named("event"))
	reg := registry.New(logger.Named("registry"))

	// Register all plugins (compile-time composition)
	modules := []plugin.Plugin{
		classify.New(),
	}
	for _, m := range modules {
		if err := reg.Register(m); err != nil {
			logger.Fatal("failed to register plugin", zap.Error(err))
		}
	}

	// Validate dependency graph and API versions
	if err := reg.Validate(); err != nil {
		logger.Fatal("plugin validation failed", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := reg.InitAll(ctx, func(name string) plugin.Dependencies {
		return plugin.Dependencies{
			Config:  cfg.Sub("plugins." + name),
			Logger:  logger.Named(name),
			Store:   db,
			Bus:     bus,
			Plugins: reg,
		}
	}); err != nil {
		logger.Fatal("failed to initialize plugins", zap.Error(err))
	}

	if err := reg.StartAll(ctx); err != nil {
		logger.Fatal("failed to start plugins", zap.Error(err))
	}

	// Optional bearer-token authentication. The operator token is minted
	// at startup and printed once; there is no user database.
	var authHandler server.RouteRegistrar
	if viperCfg.GetBool("auth.enabled") {
		jwtSecret := viperCfg.GetString("auth.jwt_secret")
		if jwtSecret == "" {
			// Ephemeral secret -- tokens won't survive restarts.
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				logger.Fatal("failed to generate JWT secret", zap.Error(err))
			}
			jwtSecret = hex.EncodeToString(b)
			logger.Info("using auto-generated JWT secret (set auth.jwt_secret in config to persist tokens across restarts)",
				zap.String("component", "auth"),
			)
		}

		accessTTL := viperCfg.GetDuration("auth.access_token_ttl")
		if accessTTL == 0 {
			accessTTL = 24 * time.Hour
		}

		tokens := auth.NewTokenService([]byte(jwtSecret), accessTTL)
		operatorToken, err := tokens.IssueAccessToken(&auth.User{
			ID:       "operator",
			Username: "operator",
			Role:     auth.RoleAdmin,
		})
		if err != nil {
			logger.Fatal("failed to mint operator token", zap.Error(err))
		}
		authHandler = auth.NewHandler(tokens)
		logger.Info("authentication enabled",
			zap.String("component", "auth"),
			zap.Duration("access_token_ttl", accessTTL),
		)
		fmt.Fprintf(os.Stderr, "\n  Operator API token (valid %s):\n  %s\n\n", accessTTL, operatorToken)
	} else {
		logger.Info("authentication disabled", zap.String("component", "auth"))
	}

	// Create and start HTTP server
	addr := viperCfg.GetString("server.host") + ":" + viperCfg.GetString("server.port")
	if addr == ":" {
		addr = "0.0.0.0:8080"
	}
	readyCheck := server.ReadinessChecker(func(ctx context.Context) error {
		return db.DB().PingContext(ctx)
	})
	srv := server.New(addr, reg, logger, readyCheck, authHandler)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("LeaseTrace server ready", zap.String("addr", addr))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	reg.StopAll(shutdownCtx)

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("LeaseTrace server stopped")
}
