//go:build !(darwin || freebsd || linux) || android

package native

import "fmt"

// Open always fails: there is no supported dynamic loader on this platform.
func Open(name string) (Library, error) {
	return nil, fmt.Errorf("%w (library %q)", ErrUnsupported, name)
}
