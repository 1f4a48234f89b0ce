package mmapffi

import (
	"log/slog"

	"github.com/hildjj/mmap-ffi/native"
	"github.com/hildjj/mmap-ffi/permission"
	"github.com/hildjj/mmap-ffi/portability"
	"github.com/hildjj/mmap-ffi/resource"
)

type options struct {
	mode     AccessMode
	offset   int64
	length   int64 // -1: whole file from offset
	compiler string
	platform portability.Platform
	table    *portability.Table
	prober   portability.Prober

	libraryName string
	library     native.Library
	gate        permission.Gate

	metricsCollector MetricsCollector
	logger           *Logger
	controller       *resource.Controller
	noBudgetWait     bool
}

// Option configures a File.
type Option func(*options)

// WithAccessMode sets the access mode. The default is ReadOnly.
func WithAccessMode(mode AccessMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithOffset maps the file starting at offset bytes. mmap requires the
// offset to be a multiple of the page size.
func WithOffset(offset int64) Option {
	return func(o *options) {
		o.offset = offset
	}
}

// WithLength maps exactly length bytes instead of the rest of the file.
// A negative length restores the default.
func WithLength(length int64) Option {
	return func(o *options) {
		if length < 0 {
			length = -1
		}
		o.length = length
	}
}

// WithCompiler sets the C compiler used if the platform constants have to be
// probed. Ignored when WithProber is also given.
func WithCompiler(compiler string) Option {
	return func(o *options) {
		o.compiler = compiler
	}
}

// WithPlatform resolves constants for platform instead of the host.
func WithPlatform(platform portability.Platform) Option {
	return func(o *options) {
		o.platform = platform
	}
}

// WithTable resolves constants from table instead of portability.Default().
func WithTable(table *portability.Table) Option {
	return func(o *options) {
		o.table = table
	}
}

// WithProber sets the prober used on a constants table miss.
func WithProber(prober portability.Prober) Option {
	return func(o *options) {
		o.prober = prober
	}
}

// WithLibraryName loads the named C library instead of the platform default.
func WithLibraryName(name string) Option {
	return func(o *options) {
		o.libraryName = name
	}
}

// WithLibrary uses an already bound library. The File takes ownership and
// releases it on Close.
func WithLibrary(lib native.Library) Option {
	return func(o *options) {
		o.library = lib
	}
}

// WithGate sets the permission gate. The default asks the kernel through
// access(2).
func WithGate(gate permission.Gate) Option {
	return func(o *options) {
		o.gate = gate
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := mmapffi.NewJSONLogger(slog.LevelDebug)
//	f, _ := mmapffi.New("data.bin", mmapffi.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController charges mapped bytes and prefetch requests to ctrl.
// Share one controller between files to enforce process-wide limits.
func WithResourceController(ctrl *resource.Controller) Option {
	return func(o *options) {
		o.controller = ctrl
	}
}

// WithoutBudgetWait makes Map fail with resource.ErrMappingLimitExceeded
// when the controller's mapped bytes budget is exhausted, instead of waiting
// for other files to be closed.
func WithoutBudgetWait() Option {
	return func(o *options) {
		o.noBudgetWait = true
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		mode:             ReadOnly,
		length:           -1,
		platform:         portability.Host(),
		gate:             permission.Access{},
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.table == nil {
		o.table = portability.Default()
	}
	if o.gate == nil {
		o.gate = permission.Access{}
	}
	if o.prober == nil && o.compiler != "" {
		o.prober = portability.Toolchain{Compiler: o.compiler}
	}
	return o
}
