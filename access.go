package mmapffi

import (
	"fmt"

	"github.com/hildjj/mmap-ffi/permission"
	"github.com/hildjj/mmap-ffi/portability"
)

// AccessMode selects how a file is opened and mapped.
type AccessMode int

const (
	ReadOnly AccessMode = iota
	// WriteOnly maps the file for writing only. The file is still opened
	// O_RDWR, since a shared writable mapping needs a readable descriptor,
	// but only the write capability is requested.
	WriteOnly
	ReadWrite
)

func (m AccessMode) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case WriteOnly:
		return "write-only"
	case ReadWrite:
		return "read-write"
	default:
		return fmt.Sprintf("AccessMode(%d)", int(m))
	}
}

// capabilities returns the capabilities to request, in order. Unknown modes
// need none; they are rejected by flags.
func (m AccessMode) capabilities() []permission.Capability {
	switch m {
	case ReadOnly:
		return []permission.Capability{permission.Read}
	case WriteOnly:
		return []permission.Capability{permission.Write}
	case ReadWrite:
		return []permission.Capability{permission.Read, permission.Write}
	default:
		return nil
	}
}

// flags returns the open(2) flags and mmap protection for m.
func (m AccessMode) flags(c portability.Constants) (open, prot int32, err error) {
	switch m {
	case ReadOnly:
		return c.ORdOnly, c.ProtRead, nil
	case WriteOnly:
		return c.ORdWr, c.ProtWrite, nil
	case ReadWrite:
		return c.ORdWr, c.ProtRead | c.ProtWrite, nil
	default:
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidAccessMode, int(m))
	}
}

func (m AccessMode) readable() bool { return m == ReadOnly || m == ReadWrite }
func (m AccessMode) writable() bool { return m == WriteOnly || m == ReadWrite }

// Advice is an access pattern hint passed to madvise.
type Advice int

const (
	AdviceNormal Advice = iota
	AdviceRandom
	AdviceSequential
	// AdviceWillNeed asks the kernel to read the region ahead. It is paced
	// by the resource controller's prefetch limit, if any.
	AdviceWillNeed
	AdviceDontNeed
)

func (a Advice) String() string {
	switch a {
	case AdviceNormal:
		return "normal"
	case AdviceRandom:
		return "random"
	case AdviceSequential:
		return "sequential"
	case AdviceWillNeed:
		return "willneed"
	case AdviceDontNeed:
		return "dontneed"
	default:
		return fmt.Sprintf("Advice(%d)", int(a))
	}
}

func (a Advice) native(c portability.Constants) (int32, error) {
	switch a {
	case AdviceNormal:
		return c.MadvNormal, nil
	case AdviceRandom:
		return c.MadvRandom, nil
	case AdviceSequential:
		return c.MadvSequential, nil
	case AdviceWillNeed:
		return c.MadvWillNeed, nil
	case AdviceDontNeed:
		return c.MadvDontNeed, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidAdvice, int(a))
	}
}
