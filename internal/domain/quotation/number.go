package quotation

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

// Quotation numbers look like GM-20240821-347: a fixed prefix, the issue date
// and a random three-digit component drawn from 100..999.
const (
	NumberPrefix = "GM"

	// One initial check plus four regenerations; attempt five failing means
	// the day's random space is too contended and the caller gets a conflict.
	maxAllocAttempts = 5
)

var numberPattern = regexp.MustCompile(`^GM-\d{8}-\d{3}$`)

// ValidNumber reports whether s is a well-formed quotation number.
func ValidNumber(s string) bool { return numberPattern.MatchString(s) }

// ExistsFunc reports whether a quotation number is already taken.
type ExistsFunc func(ctx context.Context, number string) (bool, error)

// Allocator derives a quotation number that no stored record uses. The random
// component is not unique by construction; collisions are handled by bounded
// retry and ultimately by the store's unique index.
type Allocator struct {
	maxAttempts int
	randDigits  func() string
}

func NewAllocator() *Allocator {
	return &Allocator{maxAttempts: maxAllocAttempts, randDigits: randomDigits}
}

func randomDigits() string {
	return fmt.Sprintf("%03d", rand.Intn(900)+100)
}

func datePrefix(date time.Time) string {
	return NumberPrefix + "-" + date.Format("20060102")
}

// Candidate builds a fresh candidate for the given issue date.
func (a *Allocator) Candidate(date time.Time) string {
	return datePrefix(date) + "-" + a.randDigits()
}

// Allocate returns the first candidate that exists reports as free. A
// malformed candidate is replaced by one derived from date. Regenerated
// candidates keep the date prefix captured here, so a request that straddles
// midnight keeps the prefix it started with.
func (a *Allocator) Allocate(ctx context.Context, candidate string, date time.Time, exists ExistsFunc) (string, error) {
	if !ValidNumber(candidate) {
		candidate = a.Candidate(date)
	}
	prefix := candidate[:len(candidate)-4]

	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", &StorageError{Op: "number lookup", Err: err}
		}
		if !taken {
			return candidate, nil
		}
		candidate = prefix + "-" + a.randDigits()
	}
	return "", ErrNumberExhausted
}
