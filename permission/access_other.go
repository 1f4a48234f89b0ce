//go:build !unix

package permission

import (
	"context"
	"errors"
)

// Access is unavailable on this platform; every request fails.
type Access struct{}

// Request implements Gate.
func (Access) Request(context.Context, Request) (bool, error) {
	return false, errors.ErrUnsupported
}
