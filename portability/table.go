package portability

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/hildjj/mmap-ffi/internal/fs"
	"github.com/hildjj/mmap-ffi/resource"
)

// Table maps platforms to their constants. It is seeded from the built-in
// table and grows as missing platforms are probed; entries are never
// replaced or removed by Resolve.
//
// NewTable seeds the built-in entries. The zero value is an empty table that
// probes with Toolchain{} and logs to slog.Default().
//
// A Table is safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	once    sync.Once
	entries map[Platform]Constants

	prober Prober
	logger *slog.Logger
	ctrl   *resource.Controller
	fs     fs.FileSystem
	group  singleflight.Group
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithTableLogger sets the logger that receives probe recommendations.
func WithTableLogger(l *slog.Logger) TableOption {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithDefaultProber sets the prober used when Resolve is called without one.
func WithDefaultProber(p Prober) TableOption {
	return func(t *Table) {
		if p != nil {
			t.prober = p
		}
	}
}

// WithProbeController bounds concurrent probe runs by the controller's probe
// slots.
func WithProbeController(c *resource.Controller) TableOption {
	return func(t *Table) { t.ctrl = c }
}

// WithoutBuiltins starts the table empty.
func WithoutBuiltins() TableOption {
	return func(t *Table) { clear(t.entries) }
}

func withFileSystem(fsys fs.FileSystem) TableOption {
	return func(t *Table) { t.fs = fsys }
}

// NewTable returns a table holding the built-in entries.
func NewTable(opts ...TableOption) *Table {
	t := &Table{
		entries: Builtin(),
		prober:  Toolchain{},
		logger:  slog.Default(),
		fs:      fs.Default,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.lazyInit()
	return t
}

// lazyInit sets defaults for fields left unset, so the zero Table works.
func (t *Table) lazyInit() {
	t.once.Do(func() {
		if t.entries == nil {
			t.entries = make(map[Platform]Constants)
		}
		if t.prober == nil {
			t.prober = Toolchain{}
		}
		if t.logger == nil {
			t.logger = slog.Default()
		}
		if t.fs == nil {
			t.fs = fs.Default
		}
	})
}

var defaultTable = sync.OnceValue(func() *Table { return NewTable() })

// Default returns the process-wide table.
func Default() *Table {
	return defaultTable()
}

// Lookup returns the constants stored for p.
func (t *Table) Lookup(p Platform) (Constants, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.entries[p]
	return c, ok
}

// Store adds or replaces the entry for p after validating c.
func (t *Table) Store(p Platform, c Constants) error {
	if err := c.Validate(); err != nil {
		return err
	}
	t.lazyInit()
	t.mu.Lock()
	t.entries[p] = c
	t.mu.Unlock()
	return nil
}

// Len returns the number of entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Platforms returns the platforms currently in the table.
func (t *Table) Platforms() []Platform {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Platform, 0, len(t.entries))
	for p := range t.entries {
		out = append(out, p)
	}
	return out
}

// Resolve returns the constants for p. On a miss the probe program is
// compiled and run with prober (or the table's default prober when nil) and
// the result is kept for the lifetime of the table. Concurrent misses for the
// same platform share one probe run. Failures are not cached, but Resolve
// never retries on its own.
//
// ctx only bounds how long this caller waits. The shared probe is not
// cancelled with it, so other callers still get the result, and a probe
// that nobody waits for any more still fills the table.
//
// The probe always runs on the host, whatever p names.
func (t *Table) Resolve(ctx context.Context, p Platform, prober Prober) (Constants, error) {
	t.lazyInit()
	if c, ok := t.Lookup(p); ok {
		return c, nil
	}
	if err := ctx.Err(); err != nil {
		return Constants{}, err
	}
	if prober == nil {
		prober = t.prober
	}

	shared := context.WithoutCancel(ctx)
	ch := t.group.DoChan(string(p), func() (any, error) {
		return t.probeAndStore(shared, p, prober)
	})

	select {
	case <-ctx.Done():
		return Constants{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Constants{}, r.Err
		}
		return r.Val.(Constants), nil
	}
}

func (t *Table) probeAndStore(ctx context.Context, p Platform, prober Prober) (Constants, error) {
	if c, ok := t.Lookup(p); ok {
		return c, nil
	}

	if err := t.ctrl.AcquireProbe(ctx); err != nil {
		return Constants{}, err
	}
	defer t.ctrl.ReleaseProbe()

	c, err := probe(ctx, t.fs, prober, p)
	if err != nil {
		return Constants{}, err
	}

	t.mu.Lock()
	if prev, ok := t.entries[p]; ok {
		c = prev
	} else {
		t.entries[p] = c
	}
	t.mu.Unlock()

	t.logger.Warn("platform constants were probed at runtime; add them to the built-in table",
		"platform", p.String(),
		"constants", c.GoString(),
	)
	return c, nil
}
