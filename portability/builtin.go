package portability

import "maps"

// The open/mmap/madvise flag values below are shared by every platform in
// the table; only the struct stat layout differs.
func posix(statOffset, statSize int64) Constants {
	return Constants{
		StatOffset:     statOffset,
		StatSize:       statSize,
		ORdOnly:        0x0,
		OWrOnly:        0x1,
		ORdWr:          0x2,
		ProtRead:       0x1,
		ProtWrite:      0x2,
		MadvNormal:     0,
		MadvRandom:     1,
		MadvSequential: 2,
		MadvWillNeed:   3,
		MadvDontNeed:   4,
		MapFailed:      -1,
		MapShared:      0x1,
	}
}

var builtin = map[Platform]Constants{
	// x86_64 kernel struct stat.
	"x86_64-unknown-linux-gnu":  posix(48, 144),
	"x86_64-unknown-linux-musl": posix(48, 144),
	// asm-generic struct stat.
	"aarch64-unknown-linux-gnu":   posix(48, 128),
	"aarch64-unknown-linux-musl":  posix(48, 128),
	"riscv64gc-unknown-linux-gnu": posix(48, 128),
	// 64-bit inode struct stat.
	"x86_64-apple-darwin":  posix(96, 144),
	"aarch64-apple-darwin": posix(96, 144),
	// FreeBSD 12+ (64-bit ino_t).
	"x86_64-unknown-freebsd":  posix(112, 224),
	"aarch64-unknown-freebsd": posix(112, 224),
}

// Builtin returns a copy of the built-in table.
func Builtin() map[Platform]Constants {
	return maps.Clone(builtin)
}
