package verify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peselgate/pkg/pesel"
	audit "peselgate/pkg/platform/audit"
)

type fakeStore struct {
	mu      sync.Mutex
	results map[string]*Result
	finds   int
	saves   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{results: make(map[string]*Result)}
}

func (s *fakeStore) FindResult(_ context.Context, subjectHash string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finds++
	if result, ok := s.results[subjectHash]; ok {
		return result, nil
	}
	return nil, ErrNotFound
}

func (s *fakeStore) SaveResult(_ context.Context, result *Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	s.results[result.SubjectHash] = result
	return nil
}

type fakeAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *fakeAudit) Emit(_ context.Context, event audit.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
	return nil
}

func (a *fakeAudit) recorded() []audit.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]audit.Event{}, a.events...)
}

func newTestService(t *testing.T) (*Service, *fakeStore, *fakeAudit) {
	t.Helper()
	store := newFakeStore()
	sink := &fakeAudit{}
	svc := New(store, NewHasher([]byte("test-key")),
		WithAuditPublisher(sink),
		WithClock(func() time.Time {
			return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
		}),
	)
	return svc, store, sink
}

func TestVerify_ValidPesel(t *testing.T) {
	svc, _, sink := newTestService(t)

	result, err := svc.Verify(context.Background(), "02290486168")
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Reason)
	assert.Equal(t, "female", result.Gender)
	assert.Equal(t, "2002-09-04", result.DateOfBirth)
	assert.Equal(t, "2000-2099", result.CenturyBand)
	assert.NotEmpty(t, result.SubjectHash)
	assert.NotContains(t, result.SubjectHash, "02290486168")
	assert.Equal(t, time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC), result.CheckedAt)

	events := sink.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionPeselVerified, events[0].Action)
	assert.Equal(t, "valid", events[0].Outcome)
	assert.Equal(t, result.SubjectHash, events[0].SubjectHash)
}

func TestVerify_InvalidPesel(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason pesel.Reason
	}{
		{"bad checksum", "02290486169", pesel.ReasonChecksumMismatch},
		{"too short", "12345", pesel.ReasonInvalidFormat},
		{"non numeric", "0229048616x", pesel.ReasonInvalidFormat},
		{"impossible date", "02223086160", pesel.ReasonInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, sink := newTestService(t)

			result, err := svc.Verify(context.Background(), tt.input)
			require.NoError(t, err)

			assert.False(t, result.Valid)
			assert.Equal(t, tt.reason, result.Reason)
			assert.Empty(t, result.Gender)
			assert.Empty(t, result.DateOfBirth)
			assert.Empty(t, result.CenturyBand)

			events := sink.recorded()
			require.Len(t, events, 1)
			assert.Equal(t, audit.ActionPeselRejected, events[0].Action)
			assert.Equal(t, string(tt.reason), events[0].Reason)
		})
	}
}

func TestVerify_CenturyBandPerMonthBand(t *testing.T) {
	tests := []struct {
		input string
		band  string
	}{
		{"78920213442", "1800-1899"},
		{"60032417874", "1900-1999"},
		{"02290486168", "2000-2099"},
		{"50431012349", "2100-2199"},
		{"03723199998", "2200-2299"},
	}
	for _, tt := range tests {
		t.Run(tt.band, func(t *testing.T) {
			svc, _, _ := newTestService(t)

			result, err := svc.Verify(context.Background(), tt.input)
			require.NoError(t, err)
			require.True(t, result.Valid)
			assert.Equal(t, tt.band, result.CenturyBand)
		})
	}
}

func TestVerify_EmptyInput(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Verify(context.Background(), "   ")
	require.Error(t, err)
}

func TestVerify_SecondCallServedFromStore(t *testing.T) {
	svc, store, sink := newTestService(t)

	first, err := svc.Verify(context.Background(), "02290486168")
	require.NoError(t, err)
	second, err := svc.Verify(context.Background(), "02290486168")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.saves)
	// Cache hits are not re-audited; the compliance trail records the
	// original evaluation.
	assert.Len(t, sink.recorded(), 1)
}

func TestVerifyBatch_PreservesOrder(t *testing.T) {
	svc, _, sink := newTestService(t)

	inputs := []string{"02290486168", "02290486169", "01302534699"}
	results, err := svc.VerifyBatch(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Valid)
	assert.False(t, results[1].Valid)
	assert.Equal(t, pesel.ReasonChecksumMismatch, results[1].Reason)
	assert.True(t, results[2].Valid)
	assert.Equal(t, "male", results[2].Gender)

	var batchEvents []audit.Event
	for _, event := range sink.recorded() {
		if event.Action == audit.ActionBatchVerified {
			batchEvents = append(batchEvents, event)
		}
	}
	require.Len(t, batchEvents, 1)
	assert.Equal(t, "partial", batchEvents[0].Outcome)
}

func TestVerifyBatch_Limits(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.VerifyBatch(context.Background(), nil)
	require.Error(t, err)

	oversized := make([]string, MaxBatchSize+1)
	for i := range oversized {
		oversized[i] = "02290486168"
	}
	_, err = svc.VerifyBatch(context.Background(), oversized)
	require.Error(t, err)
}

func TestSubjectHash_Deterministic(t *testing.T) {
	hasher := NewHasher([]byte("key-a"))
	other := NewHasher([]byte("key-b"))

	assert.Equal(t, hasher.SubjectHash("02290486168"), hasher.SubjectHash("02290486168"))
	assert.NotEqual(t, hasher.SubjectHash("02290486168"), hasher.SubjectHash("02290486169"))
	assert.NotEqual(t, hasher.SubjectHash("02290486168"), other.SubjectHash("02290486168"))
	assert.Len(t, hasher.SubjectHash("02290486168"), 64)
}
