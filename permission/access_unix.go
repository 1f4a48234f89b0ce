//go:build unix

package permission

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Access asks the kernel through access(2) whether the real user may read or
// write the resource. A resource that does not exist yet is granted; opening
// it reports the missing file.
type Access struct{}

// Request implements Gate.
func (Access) Request(ctx context.Context, req Request) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var mode uint32
	switch req.Capability {
	case Read:
		mode = unix.R_OK
	case Write:
		mode = unix.W_OK
	default:
		return false, fmt.Errorf("permission: unknown capability %q", req.Capability)
	}

	err := unix.Access(req.Resource, mode)
	switch {
	case err == nil, errors.Is(err, unix.ENOENT):
		return true, nil
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM), errors.Is(err, unix.EROFS):
		return false, nil
	default:
		return false, fmt.Errorf("permission: access %s: %w", req.Resource, err)
	}
}
