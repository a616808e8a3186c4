package quotation

import "errors"

var (
	// ErrNotFound is returned when no record matches the requested id or number.
	ErrNotFound = errors.New("quotation not found")

	// ErrNumberExhausted is returned when the allocator runs out of attempts.
	ErrNumberExhausted = errors.New("could not allocate a unique quotation number")

	// ErrDuplicateNumber is returned by the store when an insert trips the
	// unique index on quotation_no.
	ErrDuplicateNumber = errors.New("quotation number already exists")
)

// ValidationError reports a rejected field of a create request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

// RenderError wraps a PDF generation failure. Whether it is fatal depends on
// the phase: before persistence it aborts the request, after persistence the
// record is kept and the caller is told to retry the download.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return "pdf render failed: " + e.Err.Error() }
func (e *RenderError) Unwrap() error { return e.Err }

// StorageError wraps a failed store operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage " + e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }
