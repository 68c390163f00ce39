package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moviweb/moviweb/internal/config"
	httpserver "github.com/moviweb/moviweb/internal/http"
	"github.com/moviweb/moviweb/internal/omdb"
	"github.com/moviweb/moviweb/internal/repository"
	"github.com/moviweb/moviweb/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.New(os.Stdout, "[moviweb] ", log.LstdFlags|log.Lshortfile)

	if !cfg.LookupConfigured() {
		logger.Println("OMDB_API_KEY not set; movie lookups are disabled")
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	storeOpts := store.Options{
		MaxConns:        int32(cfg.DBMaxConns),
		MinConns:        int32(cfg.DBMinConns),
		MaxConnIdleTime: time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime: time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:     time.Duration(cfg.DBConnTimeout) * time.Second,
		Logger:          logger,
	}

	st, err := store.New(dbCtx, cfg.DBURL, storeOpts)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer st.Close()

	if err := st.ApplySchema(dbCtx); err != nil {
		log.Fatalf("initialize schema: %v", err)
	}

	lookup, err := omdb.NewHTTPClient(cfg.OMDbURL, cfg.OMDbAPIKey, config.PlaceholderAPIKey,
		time.Duration(cfg.OMDbTimeoutSecs)*time.Second, logger)
	if err != nil {
		log.Fatalf("init omdb client: %v", err)
	}

	repo := repository.New(st)
	server := httpserver.New(cfg, st, repo, lookup, logger)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			log.Printf("server error: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("graceful shutdown error: %v", err)
	}
}
