// Command mmapprobe prints the portability constants for a platform in the
// form used by the built-in table, probing the host with a C compiler when
// the platform is not built in.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hildjj/mmap-ffi/portability"
)

var (
	platform string
	compiler string
	force    bool
	asJSON   bool
	logLevel slog.Level
)

func init() {
	flag.StringVar(&platform, "platform", string(portability.Host()), "Platform identifier to resolve. Probing always runs on the host")
	flag.StringVar(&compiler, "compiler", portability.DefaultCompiler, "C compiler used to build the probe program")
	flag.BoolVar(&force, "force", false, "Probe even when the platform is built in")
	flag.BoolVar(&asJSON, "json", false, "Print the probe JSON object instead of a Go table entry")
	flag.TextVar(&logLevel, "log-level", slog.LevelInfo, "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("Failed to resolve constants",
			"platform", platform,
			"compiler", compiler,
			"error", err,
		)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	p := portability.Platform(platform)
	prober := portability.Toolchain{Compiler: compiler}

	var (
		c   portability.Constants
		err error
	)
	if force {
		logger.Debug("Probing", "platform", p.String(), "compiler", compiler)
		c, err = portability.Probe(ctx, prober)
	} else {
		table := portability.NewTable(
			portability.WithTableLogger(logger),
			portability.WithDefaultProber(prober),
		)
		c, err = table.Resolve(ctx, p, nil)
	}
	if err != nil {
		return err
	}

	if asJSON {
		b, err := json.Marshal(c)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(os.Stdout, "%s\n", b)
		return err
	}
	_, err = fmt.Fprintf(os.Stdout, "%q: %#v,\n", p, c)
	return err
}
