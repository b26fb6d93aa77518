package memory

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "peselgate/pkg/platform/audit"
)

func seedStore(t *testing.T, n int) *InMemoryStore {
	t.Helper()
	s := NewInMemoryStore()
	for i := 0; i < n; i++ {
		require.NoError(t, s.Append(context.Background(), audit.Event{
			ID:     strconv.Itoa(i),
			Action: audit.ActionPeselVerified,
		}))
	}
	return s
}

func TestInMemoryStore_ListRecent_ReturnsNewestTail(t *testing.T) {
	s := seedStore(t, 5)

	events, err := s.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "3", events[0].ID)
	assert.Equal(t, "4", events[1].ID)
}

func TestInMemoryStore_ListRecent_NonPositiveLimitReturnsAll(t *testing.T) {
	s := seedStore(t, 3)

	for _, limit := range []int{0, -1} {
		events, err := s.ListRecent(context.Background(), limit)
		require.NoError(t, err)
		assert.Len(t, events, 3, "limit=%d", limit)
	}
}

func TestInMemoryStore_ListRecent_LimitBeyondSize(t *testing.T) {
	s := seedStore(t, 2)

	events, err := s.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestInMemoryStore_Clear(t *testing.T) {
	s := seedStore(t, 2)
	s.Clear()

	events, err := s.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}
