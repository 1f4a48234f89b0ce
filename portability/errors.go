package portability

import (
	"errors"
	"fmt"
)

var (
	// ErrProbeCompilation is matched by a ProbeError from the compile stage.
	ErrProbeCompilation = errors.New("portability: probe compilation failed")
	// ErrProbeExecution is matched by a ProbeError from the execute stage,
	// including output that is not a valid constants object.
	ErrProbeExecution = errors.New("portability: probe execution failed")
)

// Stage is a step of a probe run.
type Stage string

const (
	StageCompile Stage = "compile"
	StageExecute Stage = "execute"
)

// ProbeError describes a failed probe run.
type ProbeError struct {
	Stage    Stage
	Platform Platform
	// Output is the compiler diagnostics or the program output that could
	// not be parsed, when available.
	Output string
	Err    error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("portability: probe %s for %s: %v", e.Stage, e.Platform, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's stage.
func (e *ProbeError) Is(target error) bool {
	switch target {
	case ErrProbeCompilation:
		return e.Stage == StageCompile
	case ErrProbeExecution:
		return e.Stage == StageExecute
	}
	return false
}
