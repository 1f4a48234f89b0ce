package portability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformFor(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         Platform
	}{
		{"linux", "amd64", "x86_64-unknown-linux-gnu"},
		{"linux", "arm64", "aarch64-unknown-linux-gnu"},
		{"linux", "riscv64", "riscv64gc-unknown-linux-gnu"},
		{"darwin", "arm64", "aarch64-apple-darwin"},
		{"darwin", "amd64", "x86_64-apple-darwin"},
		{"freebsd", "amd64", "x86_64-unknown-freebsd"},
		{"openbsd", "arm64", "aarch64-unknown-openbsd"},
		{"linux", "sparc64", "sparc64-unknown-linux-gnu"},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, platformFor(tt.goos, tt.goarch))
		})
	}
}

func TestHost(t *testing.T) {
	assert.NotEmpty(t, Host())
	assert.Equal(t, Host(), Host())
}
