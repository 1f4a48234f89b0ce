// Package portability resolves the numeric constants and struct stat layout
// needed to call mmap through a C library on a given platform.
//
// POSIX names such as O_RDWR, PROT_WRITE or MADV_WILLNEED have no portable
// numeric values, and the offset of st_size inside struct stat depends on the
// kernel ABI and the libc build. A [Table] maps a [Platform] identifier to its
// [Constants]. It is seeded from a built-in list ([Builtin]); on a miss it
// compiles and runs a small C program through a [Prober] and caches the
// result for the life of the table.
//
// The probe is a fallback. Every successful probe logs a warning with the
// discovered values so they can be added to the built-in list.
package portability
