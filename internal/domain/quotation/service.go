package quotation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/GME-dev/QUOTATION-GEN/internal/metrics"
)

// Store is the durable collection of quotation records. Uniqueness of
// quotation_no is the store's responsibility; Insert must return
// ErrDuplicateNumber when the constraint trips.
type Store interface {
	Insert(ctx context.Context, q *Quotation) error
	NumberExists(ctx context.Context, number string) (bool, error)
	List(ctx context.Context) ([]Quotation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Quotation, error)
	GetByNumber(ctx context.Context, number string) (*Quotation, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Generator renders a finalized quotation to PDF bytes.
type Generator interface {
	Generate(q Quotation) ([]byte, error)
}

// FileStore keeps one PDF per quotation number.
type FileStore interface {
	Save(number string, data []byte) (string, error)
	Path(number string) (string, bool)
}

// CreateResult is the outcome of a create transaction. A non-nil RenderErr
// means the record was persisted but the PDF step failed; the record is not
// rolled back and the PDF can be regenerated via the download path.
type CreateResult struct {
	Quotation *Quotation
	PDF       []byte
	PDFPath   string
	RenderErr error
}

type Service struct {
	store Store
	files FileStore
	gen   Generator
	alloc *Allocator
	log   zerolog.Logger

	// mu serializes the whole create transaction so no two requests
	// interleave between the number check and the insert.
	mu  sync.Mutex
	now func() time.Time
}

func NewService(store Store, files FileStore, gen Generator, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		files: files,
		gen:   gen,
		alloc: NewAllocator(),
		log:   log,
		now:   time.Now,
	}
}

// Create validates the payload, allocates a number, persists the record and
// renders its PDF, in that order. Validation and allocation failures leave no
// trace; a render failure after the insert degrades to a partial success.
func (s *Service) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = NewDate(s.now())
	}

	q := &Quotation{
		ID:              uuid.New(),
		Date:            date,
		CustomerName:    in.CustomerName,
		CustomerAddress: in.CustomerAddress,
		BikeRegNo:       in.BikeRegNo,
		Items:           in.Items,
		Remarks:         in.Remarks,
		CreatedAt:       s.now(),
	}
	if q.Remarks == "" {
		q.Remarks = DefaultRemarks
	}
	q.TotalAmount = q.Total().InexactFloat64()

	s.mu.Lock()
	defer s.mu.Unlock()

	number, err := s.alloc.Allocate(ctx, in.QuotationNo, date.Time, s.numberExists)
	if err != nil {
		return nil, err
	}
	q.QuotationNo = number

	if err := s.store.Insert(ctx, q); err != nil {
		if errors.Is(err, ErrDuplicateNumber) {
			return nil, ErrNumberExhausted
		}
		return nil, &StorageError{Op: "insert", Err: err}
	}
	metrics.QuotationsCreated.Inc()
	s.log.Info().Str("quotation_no", number).Msg("quotation created")

	data, err := s.gen.Generate(*q)
	if err != nil {
		metrics.PDFRenders.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("quotation_no", number).Msg("pdf render failed after save")
		return &CreateResult{Quotation: q, RenderErr: &RenderError{Err: err}}, nil
	}
	metrics.PDFRenders.WithLabelValues("ok").Inc()

	path, err := s.files.Save(number, data)
	if err != nil {
		s.log.Error().Err(err).Str("quotation_no", number).Msg("pdf write failed after save")
		return &CreateResult{Quotation: q, PDF: data, RenderErr: &RenderError{Err: err}}, nil
	}

	return &CreateResult{Quotation: q, PDF: data, PDFPath: path}, nil
}

func (s *Service) numberExists(ctx context.Context, number string) (bool, error) {
	metrics.AllocatorChecks.Inc()
	return s.store.NumberExists(ctx, number)
}

// List returns all quotations, newest first.
func (s *Service) List(ctx context.Context) ([]Quotation, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Quotation, error) {
	q, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StorageError{Op: "get", Err: err}
	}
	return q, nil
}

// Download resolves the stored PDF for a quotation number, regenerating it
// from the saved record when the file is gone from disk.
func (s *Service) Download(ctx context.Context, number string) (string, error) {
	q, err := s.store.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}
		return "", &StorageError{Op: "get by number", Err: err}
	}

	if path, ok := s.files.Path(q.QuotationNo); ok {
		return path, nil
	}

	s.log.Info().Str("quotation_no", q.QuotationNo).Msg("stored pdf missing, regenerating")
	data, err := s.gen.Generate(*q)
	if err != nil {
		metrics.PDFRenders.WithLabelValues("error").Inc()
		return "", &RenderError{Err: err}
	}
	metrics.PDFRenders.WithLabelValues("ok").Inc()

	path, err := s.files.Save(q.QuotationNo, data)
	if err != nil {
		return "", &StorageError{Op: "write pdf", Err: err}
	}
	return path, nil
}

// DeleteAll wipes the collection and reports how many records were removed.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, &StorageError{Op: "delete all", Err: err}
	}
	s.log.Info().Int64("deleted", n).Msg("all quotations deleted")
	return n, nil
}
