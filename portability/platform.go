package portability

import "runtime"

// Platform identifies an OS, CPU architecture and ABI combination, e.g.
// "aarch64-apple-darwin". It is only ever used as a lookup key.
type Platform string

func (p Platform) String() string { return string(p) }

var archNames = map[string]string{
	"amd64":   "x86_64",
	"arm64":   "aarch64",
	"riscv64": "riscv64gc",
	"ppc64le": "powerpc64le",
	"ppc64":   "powerpc64",
	"s390x":   "s390x",
	"loong64": "loongarch64",
	"mips64":  "mips64",
	"386":     "i686",
	"arm":     "armv7",
}

// Host returns the identifier of the running platform.
func Host() Platform {
	return platformFor(runtime.GOOS, runtime.GOARCH)
}

func platformFor(goos, goarch string) Platform {
	arch, ok := archNames[goarch]
	if !ok {
		arch = goarch
	}
	switch goos {
	case "linux":
		return Platform(arch + "-unknown-linux-gnu")
	case "darwin", "ios":
		return Platform(arch + "-apple-" + goos)
	default:
		return Platform(arch + "-unknown-" + goos)
	}
}
