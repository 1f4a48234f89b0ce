//go:build !(darwin || freebsd || linux)

package native

var defaultLibraryNames = []string{"libc.so"}
