package tagging

import (
	"context"
	"testing"
	"time"

	custom_error "assetconsole/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegistryScopesSessionsToOperator(t *testing.T) {
	registry := NewRegistry(time.Minute, zap.NewNop())

	session := registry.Create("alice")
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, StateIdle, session.Snapshot().State)

	found, err := registry.Get(session.ID, "alice")
	require.NoError(t, err)
	assert.Same(t, session, found)

	_, err = registry.Get(session.ID, "bob")
	assert.ErrorIs(t, err, custom_error.ErrSessionNotFound)

	assert.ErrorIs(t, registry.Delete(session.ID, "bob"), custom_error.ErrSessionNotFound)
	require.NoError(t, registry.Delete(session.ID, "alice"))
	assert.Equal(t, 0, registry.Len())

	_, err = registry.Get(session.ID, "alice")
	assert.ErrorIs(t, err, custom_error.ErrSessionNotFound)
}

func TestRegistryExpiresIdleSessions(t *testing.T) {
	registry := NewRegistry(10*time.Minute, zap.NewNop())

	stale := registry.Create("alice")
	fresh := registry.Create("alice")

	stale.mu.Lock()
	stale.lastActive = time.Now().Add(-11 * time.Minute)
	stale.mu.Unlock()

	assert.Equal(t, 1, registry.expire(time.Now()))
	assert.Equal(t, 1, registry.Len())

	_, err := registry.Get(fresh.ID, "alice")
	assert.NoError(t, err)
	_, err = registry.Get(stale.ID, "alice")
	assert.ErrorIs(t, err, custom_error.ErrSessionNotFound)
}

func TestRegistryDefaultsTTL(t *testing.T) {
	registry := NewRegistry(0, zap.NewNop())
	assert.Equal(t, DefaultSessionTTL, registry.ttl)
}

func TestRegistryRunStopsWithContext(t *testing.T) {
	registry := NewRegistry(time.Minute, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		registry.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("registry janitor did not stop")
	}
}
