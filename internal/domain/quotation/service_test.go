package quotation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu          sync.Mutex
	records     map[string]Quotation
	insertErr   error
	alwaysTaken bool
	inserts     int
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]Quotation)}
}

func (m *memStore) Insert(ctx context.Context, q *Quotation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	if _, ok := m.records[q.QuotationNo]; ok {
		return ErrDuplicateNumber
	}
	m.records[q.QuotationNo] = *q
	m.inserts++
	return nil
}

func (m *memStore) NumberExists(ctx context.Context, number string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.alwaysTaken {
		return true, nil
	}
	_, ok := m.records[number]
	return ok, nil
}

func (m *memStore) List(ctx context.Context) ([]Quotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Quotation, 0, len(m.records))
	for _, q := range m.records {
		out = append(out, q)
	}
	return out, nil
}

func (m *memStore) GetByID(ctx context.Context, id uuid.UUID) (*Quotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range m.records {
		if q.ID == id {
			return &q, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) GetByNumber(ctx context.Context, number string) (*Quotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q, ok := m.records[number]; ok {
		return &q, nil
	}
	return nil, ErrNotFound
}

func (m *memStore) DeleteAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.records))
	m.records = make(map[string]Quotation)
	return n, nil
}

type stubGen struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (g *stubGen) Generate(q Quotation) ([]byte, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.4 stub " + q.QuotationNo), nil
}

type stubFiles struct {
	mu      sync.Mutex
	files   map[string][]byte
	saveErr error
}

func newStubFiles() *stubFiles { return &stubFiles{files: make(map[string][]byte)} }

func (f *stubFiles) Save(number string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.files[number] = data
	return "/tmp/" + number + ".pdf", nil
}

func (f *stubFiles) Path(number string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[number]; ok {
		return "/tmp/" + number + ".pdf", true
	}
	return "", false
}

func validInput() CreateInput {
	return CreateInput{
		QuotationNo:     "GM-20240821-100",
		Date:            NewDate(time.Date(2024, 8, 21, 0, 0, 0, 0, time.UTC)),
		CustomerName:    "A",
		CustomerAddress: "B",
		Items:           []LineItem{{Description: "Service", Quantity: 2, Rate: 500}},
	}
}

func newTestService(store Store, files FileStore, gen Generator) *Service {
	return NewService(store, files, gen, zerolog.Nop())
}

func TestCreatePersistsAndRenders(t *testing.T) {
	store := newMemStore()
	files := newStubFiles()
	gen := &stubGen{}
	svc := newTestService(store, files, gen)

	res, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.Nil(t, res.RenderErr)
	require.Equal(t, "GM-20240821-100", res.Quotation.QuotationNo)
	require.NotEmpty(t, res.PDF)
	require.NotEmpty(t, res.PDFPath)

	stored, err := store.GetByNumber(context.Background(), "GM-20240821-100")
	require.NoError(t, err)
	require.Equal(t, res.Quotation.ID, stored.ID)
	_, ok := files.files["GM-20240821-100"]
	require.True(t, ok)
}

func TestCreateRecomputesTotal(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, newStubFiles(), &stubGen{})

	in := validInput()
	in.TotalAmount = 9999 // client lies; the stored figure must be the item sum
	res, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, 1000.0, res.Quotation.TotalAmount)
}

func TestCreateDefaultsRemarksAndDate(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, newStubFiles(), &stubGen{})

	in := validInput()
	in.Date = Date{}
	in.Remarks = ""
	res, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, DefaultRemarks, res.Quotation.Remarks)
	require.False(t, res.Quotation.Date.IsZero())
	require.False(t, res.Quotation.CreatedAt.IsZero())
}

func TestCreateValidationLeavesNoTrace(t *testing.T) {
	store := newMemStore()
	gen := &stubGen{}
	svc := newTestService(store, newStubFiles(), gen)

	in := validInput()
	in.CustomerAddress = ""
	_, err := svc.Create(context.Background(), in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "customerAddress", verr.Field)
	require.Zero(t, store.inserts)
	require.Zero(t, gen.calls)
}

func TestCreateAllocatorExhaustion(t *testing.T) {
	store := newMemStore()
	store.alwaysTaken = true
	gen := &stubGen{}
	svc := newTestService(store, newStubFiles(), gen)

	_, err := svc.Create(context.Background(), validInput())
	require.ErrorIs(t, err, ErrNumberExhausted)
	require.Zero(t, store.inserts)
	require.Zero(t, gen.calls)
}

func TestCreateStorageFailureAbortsBeforeRender(t *testing.T) {
	store := newMemStore()
	store.insertErr = errors.New("connection reset")
	gen := &stubGen{}
	svc := newTestService(store, newStubFiles(), gen)

	_, err := svc.Create(context.Background(), validInput())
	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	require.Zero(t, gen.calls)
}

func TestCreateDuplicateInsertMapsToExhaustion(t *testing.T) {
	store := newMemStore()
	store.insertErr = ErrDuplicateNumber
	svc := newTestService(store, newStubFiles(), &stubGen{})

	_, err := svc.Create(context.Background(), validInput())
	require.ErrorIs(t, err, ErrNumberExhausted)
}

func TestCreateRenderFailureIsPartialSuccess(t *testing.T) {
	store := newMemStore()
	gen := &stubGen{err: errors.New("font table corrupt")}
	svc := newTestService(store, newStubFiles(), gen)

	res, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, res.RenderErr)

	// The record survives the render failure.
	stored, err := store.GetByNumber(context.Background(), res.Quotation.QuotationNo)
	require.NoError(t, err)
	require.Equal(t, res.Quotation.ID, stored.ID)
}

func TestCreateFileWriteFailureIsPartialSuccess(t *testing.T) {
	store := newMemStore()
	files := newStubFiles()
	files.saveErr = errors.New("disk full")
	svc := newTestService(store, files, &stubGen{})

	res, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, res.RenderErr)
	require.NotEmpty(t, res.PDF)
	require.Equal(t, 1, store.inserts)
}

func TestCreateConcurrentCollidingCandidates(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, newStubFiles(), &stubGen{})

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Every request carries the same candidate number.
			svc.Create(context.Background(), validInput())
		}()
	}
	wg.Wait()

	// However many succeeded, no number was ever stored twice and the store
	// saw exactly one insert per record.
	require.Equal(t, len(store.records), store.inserts)
	for number := range store.records {
		require.True(t, ValidNumber(number))
	}
}

func TestDownloadUsesExistingFile(t *testing.T) {
	store := newMemStore()
	files := newStubFiles()
	gen := &stubGen{}
	svc := newTestService(store, files, gen)

	res, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	gen.calls = 0

	path, err := svc.Download(context.Background(), res.Quotation.QuotationNo)
	require.NoError(t, err)
	require.Equal(t, res.PDFPath, path)
	require.Zero(t, gen.calls)
}

func TestDownloadRegeneratesMissingFile(t *testing.T) {
	store := newMemStore()
	files := newStubFiles()
	gen := &stubGen{}
	svc := newTestService(store, files, gen)

	res, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	// Simulate the file disappearing from disk.
	delete(files.files, res.Quotation.QuotationNo)
	gen.calls = 0

	path, err := svc.Download(context.Background(), res.Quotation.QuotationNo)
	require.NoError(t, err)
	require.NotEmpty(t, path)
	require.Equal(t, 1, gen.calls)
	_, ok := files.files[res.Quotation.QuotationNo]
	require.True(t, ok)
}

func TestDownloadUnknownNumber(t *testing.T) {
	svc := newTestService(newMemStore(), newStubFiles(), &stubGen{})
	_, err := svc.Download(context.Background(), "GM-20240821-999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetUnknownID(t *testing.T) {
	svc := newTestService(newMemStore(), newStubFiles(), &stubGen{})
	_, err := svc.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAllThenList(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, newStubFiles(), &stubGen{})

	in := validInput()
	in.QuotationNo = "" // let the allocator derive numbers
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
	}

	n, err := svc.DeleteAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), n)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}
