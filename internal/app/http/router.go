package http

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/GME-dev/QUOTATION-GEN/internal/app/config"
	"github.com/GME-dev/QUOTATION-GEN/internal/app/http/handlers"
	"github.com/GME-dev/QUOTATION-GEN/internal/app/http/middleware"
)

func NewRouter(cfg config.Config, h *handlers.Handlers, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logging(log))
	r.Use(middleware.Metrics)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{cfg.CORSAllowOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Internal-Token"},
	}).Handler)

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	quotations := func(r chi.Router) {
		r.Post("/", h.CreateQuotation)
		r.Get("/", h.ListQuotations)
		r.Get("/{id}", h.GetQuotation)
		r.Get("/{quotationNo}/download", h.DownloadQuotation)
		r.With(middleware.InternalAuth(cfg.AdminToken)).Delete("/", h.DeleteQuotations)
	}
	// The front end historically used both prefixes.
	r.Route("/quotations", quotations)
	r.Route("/api/quotations", quotations)

	r.Handle("/downloads/*", http.StripPrefix("/downloads/", http.FileServer(fileOnlyDir{http.Dir(cfg.DownloadsDir)})))
	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}

// fileOnlyDir serves regular files and hides directory listings.
type fileOnlyDir struct {
	dir http.Dir
}

func (d fileOnlyDir) Open(name string) (http.File, error) {
	f, err := d.dir.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
