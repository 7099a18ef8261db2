package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	mu    sync.Mutex
	calls int
	n     int64
	err   error
	hit   chan struct{}
}

func (f *fakePurger) Purge(context.Context) (int64, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.hit != nil {
		select {
		case f.hit <- struct{}{}:
		default:
		}
	}
	return f.n, f.err
}

type purgeCounter struct {
	mu    sync.Mutex
	total int64
}

func (c *purgeCounter) StoragePurged(n int64) {
	c.mu.Lock()
	c.total += n
	c.mu.Unlock()
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewPurgeRunner_Validation(t *testing.T) {
	_, err := NewPurgeRunner(PurgeRunnerOptions{Interval: time.Minute})
	require.Error(t, err)

	_, err = NewPurgeRunner(PurgeRunnerOptions{Purger: &fakePurger{}})
	require.Error(t, err)

	r, err := NewPurgeRunner(PurgeRunnerOptions{Purger: &fakePurger{}, Interval: time.Minute})
	require.NoError(t, err)
	assert.NotNil(t, r.logger)
}

func TestPurgeRunner_SweepReportsDeleted(t *testing.T) {
	p := &fakePurger{n: 4}
	obs := &purgeCounter{}
	r, err := NewPurgeRunner(PurgeRunnerOptions{Purger: p, Interval: time.Minute, Observer: obs, Logger: quietLogger()})
	require.NoError(t, err)

	assert.Equal(t, int64(4), r.sweep(context.Background()))
	assert.Equal(t, int64(4), obs.total)
}

func TestPurgeRunner_SweepSwallowsErrors(t *testing.T) {
	p := &fakePurger{err: errors.New("relation does not exist")}
	obs := &purgeCounter{}
	r, err := NewPurgeRunner(PurgeRunnerOptions{Purger: p, Interval: time.Minute, Observer: obs, Logger: quietLogger()})
	require.NoError(t, err)

	assert.Zero(t, r.sweep(context.Background()))
	assert.Zero(t, obs.total)
	assert.Equal(t, 1, p.calls)
}

func TestPurgeRunner_SkipsCancelledContext(t *testing.T) {
	p := &fakePurger{}
	r, err := NewPurgeRunner(PurgeRunnerOptions{Purger: p, Interval: time.Minute, Logger: quietLogger()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.sweep(ctx)
	assert.Zero(t, p.calls)
}

func TestPurgeRunner_RunStopsOnCancel(t *testing.T) {
	p := &fakePurger{n: 1, hit: make(chan struct{}, 1)}
	r, err := NewPurgeRunner(PurgeRunnerOptions{Purger: p, Interval: 20 * time.Millisecond, Logger: quietLogger()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	select {
	case <-p.hit:
	case <-time.After(2 * time.Second):
		t.Fatal("purge never ran")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
}
