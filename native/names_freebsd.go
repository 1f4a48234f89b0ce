package native

var defaultLibraryNames = []string{"libc.so.7"}

const errnoSymbol = "__error"

func fstatSymbol() string { return "fstat" }
