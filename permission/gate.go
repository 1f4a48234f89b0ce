// Package permission decides whether a file may be opened for the requested
// kind of access before any file system call is made.
package permission

import (
	"context"
	"sync"
)

// Capability is a kind of access to a resource.
type Capability string

const (
	Read  Capability = "read"
	Write Capability = "write"
)

// Request asks for one capability on one resource (a local file path).
type Request struct {
	Capability Capability
	Resource   string
}

// Gate grants or denies capability requests. A non-nil error means the gate
// could not decide; it is not a denial.
type Gate interface {
	Request(ctx context.Context, req Request) (granted bool, err error)
}

// GateFunc adapts a function to a Gate.
type GateFunc func(ctx context.Context, req Request) (bool, error)

// Request implements Gate.
func (f GateFunc) Request(ctx context.Context, req Request) (bool, error) {
	return f(ctx, req)
}

var (
	// AllowAll grants every request.
	AllowAll Gate = GateFunc(func(context.Context, Request) (bool, error) { return true, nil })
	// DenyAll denies every request.
	DenyAll Gate = GateFunc(func(context.Context, Request) (bool, error) { return false, nil })
)

// Static grants a fixed set of capabilities on any resource and records every
// request it sees.
type Static struct {
	mu       sync.Mutex
	granted  map[Capability]bool
	requests []Request
}

// NewStatic returns a gate granting exactly caps.
func NewStatic(caps ...Capability) *Static {
	s := &Static{granted: make(map[Capability]bool, len(caps))}
	for _, c := range caps {
		s.granted[c] = true
	}
	return s
}

// Request implements Gate.
func (s *Static) Request(ctx context.Context, req Request) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	return s.granted[req.Capability], nil
}

// Requests returns the requests seen so far, in order.
func (s *Static) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}
