package native

// glibc ships libc.so.6; musl systems usually only provide libc.so.
var defaultLibraryNames = []string{"libc.so.6", "libc.so"}

const errnoSymbol = "__errno_location"

// fstat is exported as a real symbol since glibc 2.33.
func fstatSymbol() string { return "fstat" }
