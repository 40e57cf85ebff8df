package session

import (
	"context"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{values: make(map[string]string)}
}

func (m *mockStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value.(string)
	return nil
}

func (m *mockStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *mockStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type mockKeyer struct{}

func (mockKeyer) AccessSessionKey(accessID string) string {
	return "session:access:" + accessID
}

func newTestManager(store *mockStore) *Manager {
	return &Manager{
		store: store,
		keyer: mockKeyer{},
		ttl:   time.Hour,
	}
}

func TestGenerateStoresRefreshToken(t *testing.T) {
	store := newMockStore()
	mgr := newTestManager(store)

	accessID := NewAccessID()
	token, err := mgr.Generate(context.Background(), accessID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	stored, err := store.Get(context.Background(), mockKeyer{}.AccessSessionKey(accessID))
	require.NoError(t, err)
	require.Equal(t, token, stored)
}

func TestGenerateRequiresAccessID(t *testing.T) {
	mgr := newTestManager(newMockStore())

	_, err := mgr.Generate(context.Background(), "  ")
	require.Error(t, err)
}

func TestRotateIssuesNewPairAndInvalidatesOld(t *testing.T) {
	store := newMockStore()
	mgr := newTestManager(store)

	oldAccessID := NewAccessID()
	oldToken, err := mgr.Generate(context.Background(), oldAccessID)
	require.NoError(t, err)

	newAccessID, newToken, err := mgr.Rotate(context.Background(), oldAccessID, oldToken)
	require.NoError(t, err)
	require.NotEqual(t, oldAccessID, newAccessID)
	require.NotEqual(t, oldToken, newToken)

	ok, err := mgr.HasSession(context.Background(), oldAccessID)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = mgr.HasSession(context.Background(), newAccessID)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRotateRejectsMismatchedToken(t *testing.T) {
	store := newMockStore()
	mgr := newTestManager(store)

	accessID := NewAccessID()
	_, err := mgr.Generate(context.Background(), accessID)
	require.NoError(t, err)

	_, _, err = mgr.Rotate(context.Background(), accessID, "forged-token")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRotateRejectsUnknownAccessID(t *testing.T) {
	mgr := newTestManager(newMockStore())

	_, _, err := mgr.Rotate(context.Background(), NewAccessID(), "whatever")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRevokeDeletesSession(t *testing.T) {
	store := newMockStore()
	mgr := newTestManager(store)

	accessID := NewAccessID()
	_, err := mgr.Generate(context.Background(), accessID)
	require.NoError(t, err)

	require.NoError(t, mgr.Revoke(context.Background(), accessID))

	ok, err := mgr.HasSession(context.Background(), accessID)
	require.NoError(t, err)
	require.False(t, ok)
}
