// Package resource limits what mapped files may consume process-wide.
package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMappingLimitExceeded is returned when the mapped bytes budget cannot
// cover a request without waiting.
var ErrMappingLimitExceeded = errors.New("resource: mapped bytes limit exceeded")

// Config holds resource limits.
type Config struct {
	// MappedBytesLimit is the hard limit for bytes mapped by all files sharing
	// the controller. If 0, no hard limit is enforced (only tracking).
	MappedBytesLimit int64

	// MaxConcurrentProbes is the maximum number of probe programs compiled and
	// run at the same time. If 0, defaults to 1.
	MaxConcurrentProbes int64

	// PrefetchBytesPerSec limits how many bytes per second may be requested
	// with MADV_WILLNEED. If 0, unlimited.
	PrefetchBytesPerSec int64
}

// Controller manages resources shared by mapped files.
type Controller struct {
	cfg Config

	// Mapped bytes
	mapSem  *semaphore.Weighted // nil if unlimited
	mapUsed atomic.Int64

	// Probes
	probeSem *semaphore.Weighted

	// Prefetch
	prefetch *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentProbes <= 0 {
		cfg.MaxConcurrentProbes = 1
	}

	c := &Controller{
		cfg:      cfg,
		probeSem: semaphore.NewWeighted(cfg.MaxConcurrentProbes),
	}

	if cfg.MappedBytesLimit > 0 {
		c.mapSem = semaphore.NewWeighted(cfg.MappedBytesLimit)
	}

	if cfg.PrefetchBytesPerSec > 0 {
		c.prefetch = rate.NewLimiter(rate.Limit(cfg.PrefetchBytesPerSec), int(cfg.PrefetchBytesPerSec))
	}

	return c
}

// AcquireMapping reserves bytes of the mapped bytes budget.
// If a hard limit is configured and usage would exceed it,
// this blocks until bytes are released or ctx is canceled.
func (c *Controller) AcquireMapping(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.mapSem != nil {
		if bytes > c.cfg.MappedBytesLimit {
			return ErrMappingLimitExceeded
		}
		if err := c.mapSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.mapUsed.Add(bytes)
	return nil
}

// TryAcquireMapping reserves bytes without blocking.
// Returns ErrMappingLimitExceeded if the limit would be exceeded.
func (c *Controller) TryAcquireMapping(bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.mapSem != nil && !c.mapSem.TryAcquire(bytes) {
		return ErrMappingLimitExceeded
	}

	c.mapUsed.Add(bytes)
	return nil
}

// ReleaseMapping returns bytes to the budget.
func (c *Controller) ReleaseMapping(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.mapSem != nil {
		c.mapSem.Release(bytes)
	}
	c.mapUsed.Add(-bytes)
}

// MappedBytes returns the number of bytes currently reserved.
func (c *Controller) MappedBytes() int64 {
	if c == nil {
		return 0
	}
	return c.mapUsed.Load()
}

// MappedBytesLimit returns the configured limit (0 if unlimited).
func (c *Controller) MappedBytesLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MappedBytesLimit
}

// AcquireProbe reserves a probe slot. Blocks if all slots are busy.
func (c *Controller) AcquireProbe(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.probeSem.Acquire(ctx, 1)
}

// TryAcquireProbe reserves a probe slot without blocking.
func (c *Controller) TryAcquireProbe() bool {
	if c == nil {
		return true
	}
	return c.probeSem.TryAcquire(1)
}

// ReleaseProbe releases a probe slot.
func (c *Controller) ReleaseProbe() {
	if c == nil {
		return
	}
	c.probeSem.Release(1)
}

// AcquirePrefetch waits until the prefetch limit allows bytes to be
// requested. Requests larger than one second's worth are paced in
// one-second chunks.
func (c *Controller) AcquirePrefetch(ctx context.Context, bytes int64) error {
	if c == nil || c.prefetch == nil {
		return nil
	}
	burst := int64(c.prefetch.Burst())
	for bytes > 0 {
		n := min(bytes, burst)
		if err := c.prefetch.WaitN(ctx, int(n)); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}
