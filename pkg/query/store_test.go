package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStoreCommitAndLookup verifies the basic cache round-trip.
func TestStoreCommitAndLookup(t *testing.T) {
	s := NewStore()

	ticket := s.Begin("dealers")
	ok := s.Commit(ticket, "page=1", "payload-1")
	require.True(t, ok)

	data, found := s.Lookup("dealers", "page=1")
	require.True(t, found)
	assert.Equal(t, "payload-1", data)

	_, found = s.Lookup("dealers", "page=2")
	assert.False(t, found)
}

// TestStaleCommitRejected verifies last-request-wins: a response that
// started before a newer request must not be stored.
func TestStaleCommitRejected(t *testing.T) {
	s := NewStore()

	older := s.Begin("products")
	newer := s.Begin("products")

	// Поздний ответ на старый запрос приходит первым? Нет — наоборот:
	// новый запрос завершается первым, потом доезжает старый.
	ok := s.Commit(newer, "page=2", "fresh")
	require.True(t, ok)

	ok = s.Commit(older, "page=1", "stale")
	assert.False(t, ok, "slow response for superseded request must be discarded")

	_, found := s.Lookup("products", "page=1")
	assert.False(t, found)

	data, found := s.Lookup("products", "page=2")
	require.True(t, found)
	assert.Equal(t, "fresh", data)
}

// TestInvalidateDropsEntries verifies mutation invalidation hides cached pages.
func TestInvalidateDropsEntries(t *testing.T) {
	s := NewStore()

	ticket := s.Begin("banners")
	require.True(t, s.Commit(ticket, "page=1", "old-list"))

	s.Invalidate("banners")

	_, found := s.Lookup("banners", "page=1")
	assert.False(t, found, "cache must be empty after invalidation")
}

// TestInvalidateRejectsInFlight verifies a request started before the
// mutation cannot commit its now-outdated result.
func TestInvalidateRejectsInFlight(t *testing.T) {
	s := NewStore()

	ticket := s.Begin("orders")
	s.Invalidate("orders")

	ok := s.Commit(ticket, "page=1", "pre-mutation data")
	assert.False(t, ok)
}

// TestInvalidateIsPerResource verifies other resources keep their cache.
func TestInvalidateIsPerResource(t *testing.T) {
	s := NewStore()

	require.True(t, s.Commit(s.Begin("dealers"), "page=1", "dealers-list"))
	require.True(t, s.Commit(s.Begin("orders"), "page=1", "orders-list"))

	s.Invalidate("dealers")

	_, found := s.Lookup("dealers", "page=1")
	assert.False(t, found)

	data, found := s.Lookup("orders", "page=1")
	require.True(t, found)
	assert.Equal(t, "orders-list", data)
}

// TestInvalidateAll verifies session-wide cache drop.
func TestInvalidateAll(t *testing.T) {
	s := NewStore()
	require.True(t, s.Commit(s.Begin("dealers"), "page=1", "a"))
	require.True(t, s.Commit(s.Begin("orders"), "page=1", "b"))

	s.InvalidateAll()

	_, found := s.Lookup("dealers", "page=1")
	assert.False(t, found)
	_, found = s.Lookup("orders", "page=1")
	assert.False(t, found)
}
