package portability

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/hildjj/mmap-ffi/internal/fs"
)

//go:embed csrc/probe.c
var probeSource []byte

// ProbeSource returns the C source of the probe program.
func ProbeSource() []byte {
	return bytes.Clone(probeSource)
}

// DefaultCompiler is the compiler used by a zero Toolchain.
const DefaultCompiler = "gcc"

// Prober builds and runs the probe program.
type Prober interface {
	// Compile builds the C source at sourcePath and returns the path of the
	// resulting executable.
	Compile(ctx context.Context, sourcePath string) (executablePath string, err error)
	// Run executes the program and returns its standard output.
	Run(ctx context.Context, executablePath string) (stdout []byte, err error)
}

// Toolchain is a Prober that uses a C compiler found on PATH.
type Toolchain struct {
	// Compiler is the compiler binary. Empty means DefaultCompiler.
	Compiler string
	// Flags are passed to the compiler before the output and source arguments.
	Flags []string
}

func (t Toolchain) compiler() string {
	if t.Compiler == "" {
		return DefaultCompiler
	}
	return t.Compiler
}

// Compile implements Prober. The executable is written next to the source.
func (t Toolchain) Compile(ctx context.Context, sourcePath string) (string, error) {
	exe := sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))]
	if exe == sourcePath {
		exe += ".out"
	}

	args := append(append([]string(nil), t.Flags...), "-o", exe, sourcePath)
	out, err := exec.CommandContext(ctx, t.compiler(), args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s: %w: %s", t.compiler(), err, bytes.TrimSpace(out))
	}
	return exe, nil
}

// Run implements Prober.
func (Toolchain) Run(ctx context.Context, executablePath string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, executablePath).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", executablePath, err, bytes.TrimSpace(exitErr.Stderr))
		}
		return nil, fmt.Errorf("%s: %w", executablePath, err)
	}
	return out, nil
}

// Probe compiles and runs the probe program once with prober and returns the
// constants it reports. It does not touch any Table.
func Probe(ctx context.Context, prober Prober) (Constants, error) {
	return probe(ctx, fs.Default, prober, Host())
}

func probe(ctx context.Context, fsys fs.FileSystem, prober Prober, p Platform) (c Constants, err error) {
	compileErr := func(err error) error { return &ProbeError{Stage: StageCompile, Platform: p, Err: err} }
	execErr := func(err error) error { return &ProbeError{Stage: StageExecute, Platform: p, Err: err} }

	dir, err := fsys.MkdirTemp("", "mmapffi-probe-")
	if err != nil {
		return Constants{}, compileErr(err)
	}
	defer fsys.RemoveAll(dir)

	src := filepath.Join(dir, "probe.c")
	if err := fs.WriteFile(fsys, src, probeSource, 0o600); err != nil {
		return Constants{}, compileErr(err)
	}

	exe, err := prober.Compile(ctx, src)
	if err != nil {
		return Constants{}, compileErr(err)
	}

	out, runErr := prober.Run(ctx, exe)
	if rmErr := fsys.Remove(exe); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		return Constants{}, execErr(errors.Join(runErr, fmt.Errorf("remove %s: %w", exe, rmErr)))
	}
	if runErr != nil {
		return Constants{}, execErr(runErr)
	}

	c, err = ParseConstants(firstLine(out))
	if err != nil {
		return Constants{}, &ProbeError{Stage: StageExecute, Platform: p, Output: string(out), Err: err}
	}
	return c, nil
}

// firstLine returns the first non-blank line of out.
func firstLine(out []byte) []byte {
	for _, line := range bytes.Split(out, []byte("\n")) {
		if line = bytes.TrimSpace(line); len(line) > 0 {
			return line
		}
	}
	return nil
}
