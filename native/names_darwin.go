package native

import "runtime"

var defaultLibraryNames = []string{"/usr/lib/libSystem.B.dylib"}

const errnoSymbol = "__error"

// On x86_64 the plain fstat symbol still uses the 32-bit inode struct stat.
func fstatSymbol() string {
	if runtime.GOARCH == "amd64" {
		return "fstat$INODE64"
	}
	return "fstat"
}
