package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/GME-dev/QUOTATION-GEN/internal/app/config"
	"github.com/GME-dev/QUOTATION-GEN/internal/domain/quotation"
	"github.com/GME-dev/QUOTATION-GEN/internal/infra/cache"
)

// QuotationService is the create/list/download surface the handlers sit on.
type QuotationService interface {
	Create(ctx context.Context, in quotation.CreateInput) (*quotation.CreateResult, error)
	List(ctx context.Context) ([]quotation.Quotation, error)
	Get(ctx context.Context, id uuid.UUID) (*quotation.Quotation, error)
	Download(ctx context.Context, number string) (string, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type Handlers struct {
	Svc   QuotationService
	Cache *cache.Cache
	Cfg   config.Config
	Log   zerolog.Logger
}

func New(svc QuotationService, c *cache.Cache, cfg config.Config, log zerolog.Logger) *Handlers {
	return &Handlers{Svc: svc, Cache: c, Cfg: cfg, Log: log}
}
