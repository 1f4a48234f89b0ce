package portability

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConstants is returned for constants that cannot describe a real
// platform.
var ErrInvalidConstants = errors.New("portability: invalid constants")

// Constants holds the platform-specific values needed to open, map and advise
// a file through the C library. The JSON names are those printed by the probe
// program.
type Constants struct {
	// StatOffset is the byte offset of the 64-bit st_size field in struct stat.
	StatOffset int64 `json:"statOffset"`
	// StatSize is sizeof(struct stat).
	StatSize int64 `json:"statSize"`

	ORdOnly int32 `json:"O_RDONLY"`
	OWrOnly int32 `json:"O_WRONLY"`
	ORdWr   int32 `json:"O_RDWR"`

	ProtRead  int32 `json:"PROT_READ"`
	ProtWrite int32 `json:"PROT_WRITE"`

	MadvNormal     int32 `json:"MADV_NORMAL"`
	MadvRandom     int32 `json:"MADV_RANDOM"`
	MadvSequential int32 `json:"MADV_SEQUENTIAL"`
	MadvWillNeed   int32 `json:"MADV_WILLNEED"`
	MadvDontNeed   int32 `json:"MADV_DONTNEED"`

	// MapFailed is the MAP_FAILED pointer value as a signed integer.
	MapFailed int64 `json:"MAP_FAILED"`
	MapShared int32 `json:"MAP_SHARED"`
}

// probeKeys lists every key the probe program must print.
var probeKeys = []string{
	"statOffset", "statSize",
	"O_RDONLY", "O_WRONLY", "O_RDWR",
	"PROT_READ", "PROT_WRITE",
	"MADV_NORMAL", "MADV_RANDOM", "MADV_SEQUENTIAL", "MADV_WILLNEED", "MADV_DONTNEED",
	"MAP_FAILED", "MAP_SHARED",
}

// MapFailedAddr returns MAP_FAILED as the pointer value mmap returns.
func (c Constants) MapFailedAddr() uintptr {
	return uintptr(c.MapFailed)
}

// Validate checks that c can be used to read st_size and to map a file.
func (c Constants) Validate() error {
	switch {
	case c.StatSize <= 0:
		return fmt.Errorf("%w: statSize %d", ErrInvalidConstants, c.StatSize)
	case c.StatOffset < 0 || c.StatOffset+8 > c.StatSize:
		return fmt.Errorf("%w: statOffset %d outside struct of %d bytes", ErrInvalidConstants, c.StatOffset, c.StatSize)
	case c.ProtRead == 0 || c.ProtWrite == 0:
		return fmt.Errorf("%w: zero PROT_READ or PROT_WRITE", ErrInvalidConstants)
	case c.MapShared == 0:
		return fmt.Errorf("%w: zero MAP_SHARED", ErrInvalidConstants)
	}
	return nil
}

// ParseConstants decodes one JSON object as printed by the probe program.
// Every key must be present.
func ParseConstants(line []byte) (Constants, error) {
	var raw map[string]json.Number
	if err := json.Unmarshal(line, &raw); err != nil {
		return Constants{}, fmt.Errorf("portability: decode probe output: %w", err)
	}

	var missing []string
	for _, key := range probeKeys {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Constants{}, fmt.Errorf("portability: probe output lacks %s", strings.Join(missing, ", "))
	}

	var c Constants
	if err := json.Unmarshal(line, &c); err != nil {
		return Constants{}, fmt.Errorf("portability: decode probe output: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Constants{}, err
	}
	return c, nil
}

// GoString renders c as a Go composite literal, the form used by the
// built-in table.
func (c Constants) GoString() string {
	return fmt.Sprintf(`portability.Constants{
	StatOffset: %d, StatSize: %d,
	ORdOnly: %#x, OWrOnly: %#x, ORdWr: %#x,
	ProtRead: %#x, ProtWrite: %#x,
	MadvNormal: %d, MadvRandom: %d, MadvSequential: %d, MadvWillNeed: %d, MadvDontNeed: %d,
	MapFailed: %d, MapShared: %#x,
}`,
		c.StatOffset, c.StatSize,
		c.ORdOnly, c.OWrOnly, c.ORdWr,
		c.ProtRead, c.ProtWrite,
		c.MadvNormal, c.MadvRandom, c.MadvSequential, c.MadvWillNeed, c.MadvDontNeed,
		c.MapFailed, c.MapShared)
}
