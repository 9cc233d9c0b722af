// Package main initializes and starts the snippet HTTP server,
// setting up configuration, logging, the database connection, the rate
// limiter, repositories, services, and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"

	nethttp "net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/atinyakov/SnipVault/internal/config"
	"github.com/atinyakov/SnipVault/internal/crypto"
	"github.com/atinyakov/SnipVault/internal/db"
	"github.com/atinyakov/SnipVault/internal/logger"
	"github.com/atinyakov/SnipVault/internal/ratelimit"
	"github.com/atinyakov/SnipVault/internal/repository"
	"github.com/atinyakov/SnipVault/internal/server/handler/http"
	"github.com/atinyakov/SnipVault/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// The encryption key is mandatory; refusing to start beats silently
	// falling back to an insecure default.
	cipher, err := crypto.NewCipher(options.EncryptionKey)
	if err != nil {
		zapLogger.Fatal("cannot init cipher", zap.Error(err))
	}

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Optionally sweep expired snippets in the background.
	if options.CleanerInterval > 0 {
		db.StartExpiredCleaner(context.Background(), postgresDB,
			options.CleanerInterval, zapLogger)
	}

	// The rate limiter is shared by all handlers. With Redis the quota
	// holds across processes; without it an in-process limiter is used.
	var limiter ratelimit.Limiter
	if options.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: options.RedisAddr})
		limiter = ratelimit.NewRedisLimiter(client, options.RateLimit, options.RateWindow, "ratelimit:")
	} else {
		zapLogger.Warn("no redis address configured, rate limits apply per process only")
		limiter = ratelimit.NewMemoryLimiter(options.RateLimit, options.RateWindow)
	}
	defer func() { _ = limiter.Close() }()

	// Initialize the snippet repository and business-logic service.
	snippetRepo := repository.NewPostgresSnippetRepository(postgresDB)
	snippetService := service.NewSnippetService(snippetRepo, cipher)

	// Create HTTP handlers and build the router.
	snippetHandler := &http.SnippetHandler{SnippetService: snippetService}
	router := http.NewRouter(snippetHandler, limiter, zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
