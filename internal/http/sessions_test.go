package httpx

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestSessionRegistry_BuildsOncePerID(t *testing.T) {
	var builds atomic.Int32
	release := make(chan struct{})
	reg := NewSessionRegistry(SessionRegistryOptions{
		Factory: func(_ context.Context, id string) (*ConsoleSession, error) {
			builds.Add(1)
			<-release
			return &ConsoleSession{ID: id}, nil
		},
		Logger: discardLogger(),
	})

	var wg sync.WaitGroup
	results := make([]*ConsoleSession, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := reg.Get(context.Background(), "sid")
			assert.NoError(t, err)
			results[i] = s
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	for _, s := range results {
		assert.Same(t, results[0], s)
	}
}

func TestSessionRegistry_FactoryErrorIsNotCached(t *testing.T) {
	calls := 0
	reg := NewSessionRegistry(SessionRegistryOptions{
		Factory: func(_ context.Context, id string) (*ConsoleSession, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("kv down")
			}
			return &ConsoleSession{ID: id}, nil
		},
	})

	_, err := reg.Get(context.Background(), "sid")
	require.Error(t, err)
	s, err := reg.Get(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, "sid", s.ID)
}

func TestSessionRegistry_SweepEvictsIdle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	reg := NewSessionRegistry(SessionRegistryOptions{
		Factory: func(_ context.Context, id string) (*ConsoleSession, error) {
			return &ConsoleSession{ID: id}, nil
		},
		IdleTTL: time.Hour,
		Now:     clock.Now,
	})
	ctx := context.Background()

	_, err := reg.Get(ctx, "old")
	require.NoError(t, err)
	clock.Advance(45 * time.Minute)
	_, err = reg.Get(ctx, "fresh")
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)

	assert.Equal(t, 1, reg.Sweep())
	assert.Equal(t, 1, reg.Len())

	// Touching keeps a session alive.
	_, err = reg.Get(ctx, "fresh")
	require.NoError(t, err)
	clock.Advance(59 * time.Minute)
	assert.Equal(t, 0, reg.Sweep())
}

func TestSessionRegistry_EvictedSessionRestoresFromPersistence(t *testing.T) {
	f := newConsoleFixture(t)
	id := f.signIn(t, false)

	s, err := f.reg.Get(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, s.Store.Session().Authenticated())

	f.reg.mu.Lock()
	delete(f.reg.sessions, id)
	f.reg.mu.Unlock()

	s2, err := f.reg.Get(context.Background(), id)
	require.NoError(t, err)
	assert.NotSame(t, s, s2)
	assert.Equal(t, "owner@shop.io", s2.Store.Session().UserEmail)
}

func TestSessionRegistry_RetireMovesLanguageAndPurges(t *testing.T) {
	f := newConsoleFixture(t)
	ctx := context.Background()
	id := f.signIn(t, true)

	old, err := f.reg.Get(ctx, id)
	require.NoError(t, err)
	_, err = old.Lang.Set(ctx, "zh")
	require.NoError(t, err)

	fresh, err := f.reg.Create(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, id, fresh.ID)
	assert.False(t, fresh.Store.Session().Authenticated())
	assert.Equal(t, 2, f.reg.Len())

	require.NoError(t, f.reg.Retire(ctx, old, fresh))
	assert.Equal(t, 1, f.reg.Len())

	lang, err := fresh.Lang.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "zh", string(lang))
	assert.Equal(t, []string{"session:" + fresh.ID + ":lang"}, f.kv.Keys())

	again, err := f.reg.Get(ctx, id)
	require.NoError(t, err)
	assert.NotSame(t, old, again)
	assert.False(t, again.Store.Session().Authenticated())
}
