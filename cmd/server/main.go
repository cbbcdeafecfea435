package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/dparedes/techstore/internal/adapter/handler"
	"github.com/dparedes/techstore/internal/adapter/storage"
	"github.com/dparedes/techstore/internal/core/service"
	"github.com/dparedes/techstore/internal/pkg/config"
	"github.com/dparedes/techstore/internal/pkg/logger"
	"github.com/dparedes/techstore/internal/port"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Catalog backend
	var catalogRepo port.CatalogRepository
	var db *sql.DB
	switch cfg.CatalogBackend {
	case "mysql":
		db, err = sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal("failed to connect mysql", "error", err)
		}
		db.SetMaxOpenConns(50)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			log.Fatal("failed to ping mysql", "error", err)
		}
		log.Info("connected to mysql")
		catalogRepo = storage.NewMySQLCatalog(db)
	default:
		catalogRepo = storage.NewMemoryCatalog(storage.DemoCatalog())
		log.Info("using in-memory catalog", "products", len(storage.DemoCatalog()))
	}

	// State store backend
	var store port.StateStore
	var rdb *redis.Client
	switch cfg.StoreBackend {
	case "redis":
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to connect redis", "error", err)
		}
		log.Info("connected to redis")
		store = storage.NewRedisStore(rdb)
	default:
		fileStore, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatal("failed to open data dir", "error", err)
		}
		store = fileStore
		log.Info("using file state store", "dir", cfg.DataDir)
	}

	notifier := &logNotifier{log: log.With("component", "notifier")}

	catalogService := service.NewCatalogService(catalogRepo)
	cartService := service.NewCartService(ctx, catalogRepo, store,
		service.WithNotifier(notifier),
		service.WithCartLogger(log.With("component", "cart")),
	)
	checkoutService := service.NewCheckoutService(catalogRepo, cartService,
		service.WithDelay(cfg.CheckoutDelay),
		service.WithCheckoutNotifier(notifier),
		service.WithCheckoutLogger(log.With("component", "checkout")),
	)

	httpHandler := handler.NewHTTPHandler(catalogService, cartService, checkoutService)
	mux := http.NewServeMux()
	httpHandler.Register(mux)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: mux,
	}

	go func() {
		log.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Info("HTTP server stopped")

	if rdb != nil {
		rdb.Close()
	}
	if db != nil {
		db.Close()
	}
	log.Info("connections closed")
}

// logNotifier routes toast messages to the structured log; a real
// presentation layer would push them to the client instead.
type logNotifier struct {
	log *logger.Logger
}

func (n *logNotifier) Notify(level port.NotifyLevel, message string) {
	switch level {
	case port.NotifyError:
		n.log.Error(message)
	case port.NotifyWarning:
		n.log.Warn(message)
	default:
		n.log.Info(message)
	}
}
