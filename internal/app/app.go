package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/GME-dev/QUOTATION-GEN/internal/app/config"
	apphttp "github.com/GME-dev/QUOTATION-GEN/internal/app/http"
	"github.com/GME-dev/QUOTATION-GEN/internal/app/http/handlers"
	"github.com/GME-dev/QUOTATION-GEN/internal/app/logging"
	"github.com/GME-dev/QUOTATION-GEN/internal/domain/quotation"
	pdfgen "github.com/GME-dev/QUOTATION-GEN/internal/domain/quotation/pdf/gofpdf"
	"github.com/GME-dev/QUOTATION-GEN/internal/infra/cache"
	"github.com/GME-dev/QUOTATION-GEN/internal/infra/db/postgres"
	"github.com/GME-dev/QUOTATION-GEN/internal/infra/storage"
)

// Run wires the service together and blocks until shutdown. Every shared
// resource (pool, cache, renderer) is scoped here and released on exit.
func Run() error {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	files, err := storage.NewDir(cfg.DownloadsDir)
	if err != nil {
		return fmt.Errorf("prepare downloads dir: %w", err)
	}

	c := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, log)
	defer c.Close()

	store := postgres.NewQuotationStore(db)
	svc := quotation.NewService(store, files, pdfgen.New(), log)

	h := handlers.New(svc, c, cfg, log)
	router := apphttp.NewRouter(cfg, h, log)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
