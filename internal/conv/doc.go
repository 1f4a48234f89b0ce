// Package conv provides safe integer conversions for sizes and offsets that
// come from native calls, such as st_size read out of a struct stat buffer.
package conv
