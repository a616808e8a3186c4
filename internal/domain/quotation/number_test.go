package quotation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidNumber(t *testing.T) {
	require.True(t, ValidNumber("GM-20240821-347"))
	require.False(t, ValidNumber("GM-20240821-47"))
	require.False(t, ValidNumber("GM-2024821-347"))
	require.False(t, ValidNumber("XX-20240821-347"))
	require.False(t, ValidNumber(""))
	require.False(t, ValidNumber("GM-20240821-3470"))
}

func fixedDigits(seq ...string) func() string {
	i := 0
	return func() string {
		d := seq[i%len(seq)]
		i++
		return d
	}
}

func TestAllocateAcceptsFreeCandidate(t *testing.T) {
	a := NewAllocator()
	calls := 0
	exists := func(ctx context.Context, number string) (bool, error) {
		calls++
		return false, nil
	}

	got, err := a.Allocate(context.Background(), "GM-20240821-347", time.Now(), exists)
	require.NoError(t, err)
	require.Equal(t, "GM-20240821-347", got)
	require.Equal(t, 1, calls)
}

func TestAllocateDerivesCandidateFromDate(t *testing.T) {
	a := &Allocator{maxAttempts: 5, randDigits: fixedDigits("123")}
	date := time.Date(2024, 8, 21, 10, 0, 0, 0, time.UTC)

	got, err := a.Allocate(context.Background(), "garbage", date, func(ctx context.Context, n string) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	require.Equal(t, "GM-20240821-123", got)
}

func TestAllocateRegeneratesKeepingPrefix(t *testing.T) {
	a := &Allocator{maxAttempts: 5, randDigits: fixedDigits("555")}
	var seen []string
	exists := func(ctx context.Context, number string) (bool, error) {
		seen = append(seen, number)
		return len(seen) == 1, nil
	}

	got, err := a.Allocate(context.Background(), "GM-20240821-100", time.Now(), exists)
	require.NoError(t, err)
	require.Equal(t, "GM-20240821-555", got)
	require.Equal(t, []string{"GM-20240821-100", "GM-20240821-555"}, seen)
}

func TestAllocateGivesUpAfterFiveAttempts(t *testing.T) {
	a := &Allocator{maxAttempts: maxAllocAttempts, randDigits: fixedDigits("100", "200", "300", "400", "500")}
	checks := 0
	exists := func(ctx context.Context, number string) (bool, error) {
		checks++
		return true, nil
	}

	_, err := a.Allocate(context.Background(), "GM-20240821-100", time.Now(), exists)
	require.ErrorIs(t, err, ErrNumberExhausted)
	require.Equal(t, 5, checks)
}

func TestAllocateWrapsLookupErrors(t *testing.T) {
	a := NewAllocator()
	exists := func(ctx context.Context, number string) (bool, error) {
		return false, context.DeadlineExceeded
	}

	_, err := a.Allocate(context.Background(), "GM-20240821-100", time.Now(), exists)
	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCandidateFormat(t *testing.T) {
	a := NewAllocator()
	date := time.Date(2024, 8, 21, 23, 59, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		require.True(t, ValidNumber(a.Candidate(date)))
	}
}
