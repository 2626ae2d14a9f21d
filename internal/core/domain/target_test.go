package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTarget_String(t *testing.T) {
	assert.Equal(t, "x86_64-unknown-linux-gnu", Target{Arch: ArchX86_64, OSVariant: OSLinuxGNU}.String())
	assert.Equal(t, "aarch64-apple-darwin", Target{Arch: ArchAarch64, OSVariant: OSDarwin}.String())
}
