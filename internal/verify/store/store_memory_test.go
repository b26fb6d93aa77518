package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peselgate/internal/verify"
	"peselgate/internal/verify/store"
)

func TestMemoryStore_SaveAndFind(t *testing.T) {
	s := store.NewMemoryStore(time.Minute)
	ctx := context.Background()

	result := &verify.Result{
		SubjectHash: "abc",
		Valid:       true,
		Gender:      "female",
		DateOfBirth: "2002-09-04",
		CheckedAt:   time.Now().UTC(),
	}
	require.NoError(t, s.SaveResult(ctx, result))

	found, err := s.FindResult(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, result, found)
}

func TestMemoryStore_MissReturnsNotFound(t *testing.T) {
	s := store.NewMemoryStore(time.Minute)

	_, err := s.FindResult(context.Background(), "missing")
	assert.True(t, errors.Is(err, verify.ErrNotFound))
}

func TestMemoryStore_ExpiresAfterTTL(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s := store.NewMemoryStore(time.Minute, store.WithMemoryClock(clock))
	ctx := context.Background()

	require.NoError(t, s.SaveResult(ctx, &verify.Result{SubjectHash: "abc", Valid: true}))

	now = now.Add(59 * time.Second)
	_, err := s.FindResult(ctx, "abc")
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, err = s.FindResult(ctx, "abc")
	assert.True(t, errors.Is(err, verify.ErrNotFound))
}

func TestMemoryStore_ZeroTTLNeverExpires(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s := store.NewMemoryStore(0, store.WithMemoryClock(clock))
	ctx := context.Background()

	require.NoError(t, s.SaveResult(ctx, &verify.Result{SubjectHash: "abc", Valid: true}))

	now = now.Add(24 * time.Hour)
	_, err := s.FindResult(ctx, "abc")
	require.NoError(t, err)
}

func TestMemoryStore_OverwritesExisting(t *testing.T) {
	s := store.NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, s.SaveResult(ctx, &verify.Result{SubjectHash: "abc", Valid: false}))
	require.NoError(t, s.SaveResult(ctx, &verify.Result{SubjectHash: "abc", Valid: true}))

	found, err := s.FindResult(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, found.Valid)
}
