package bootstrap

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"
)

// Purger deletes expired client storage entries and reports how many.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// PurgeObserver receives the number of entries removed by each sweep.
type PurgeObserver interface {
	StoragePurged(n int64)
}

// PurgeRunnerOptions holds the dependencies of a PurgeRunner.
type PurgeRunnerOptions struct {
	Purger   Purger
	Interval time.Duration
	Observer PurgeObserver
	Logger   *slog.Logger
}

// PurgeRunner sweeps expired entries on a fixed interval.
type PurgeRunner struct {
	purger   Purger
	interval time.Duration
	observer PurgeObserver
	logger   *slog.Logger
}

// NewPurgeRunner validates opts.
func NewPurgeRunner(opts PurgeRunnerOptions) (*PurgeRunner, error) {
	if opts.Purger == nil {
		return nil, errors.New("purger is required")
	}
	if opts.Interval <= 0 {
		return nil, errors.New("purge interval must be positive")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PurgeRunner{
		purger:   opts.Purger,
		interval: opts.Interval,
		observer: opts.Observer,
		logger:   logger.With("component", "storage_purge"),
	}, nil
}

// Run sweeps once after a short jitter, then on every tick until ctx is
// cancelled. Cancellation is a clean stop and returns nil.
func (r *PurgeRunner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting storage purge", "interval", r.interval)
	r.waitWithJitter(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "storage purge stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

// sweep runs one purge. Failures are logged and the loop carries on.
func (r *PurgeRunner) sweep(ctx context.Context) int64 {
	if ctx.Err() != nil {
		return 0
	}
	start := time.Now()
	n, err := r.purger.Purge(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		r.logger.ErrorContext(ctx, "storage purge failed", "error", err)
		return 0
	}
	if r.observer != nil {
		r.observer.StoragePurged(n)
	}
	if n > 0 {
		r.logger.InfoContext(ctx, "storage purge completed", "deleted", n, "duration", time.Since(start))
	}
	return n
}

// waitWithJitter delays up to 10% of the interval so replicas started
// together do not sweep at the same moment.
func (r *PurgeRunner) waitWithJitter(ctx context.Context) {
	maxJitter := int64(r.interval / 10)
	if maxJitter <= 0 {
		return
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return
	}
	jitter := time.Duration(int64(binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter))) // #nosec G115 - bounded by maxJitter
	select {
	case <-time.After(jitter):
	case <-ctx.Done():
	}
}
