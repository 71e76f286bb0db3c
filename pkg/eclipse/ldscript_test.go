package eclipse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const memScript = `MEMORY
{
  RAM (xrw) : ORIGIN = 0x20000000, LENGTH = 192K
  CCMRAM (xrw) : ORIGIN = 0x10000000, LENGTH = 64K
  FLASH (rx) : ORIGIN = 0x00000000, LENGTH = 2048K
  FLASHB1 (rx) : ORIGIN = 0x00000000, LENGTH = 0
}
`

func TestPatchFlashOrigin(t *testing.T) {
	patched, changed := PatchFlashOrigin([]byte(memScript))
	assert.True(t, changed)
	assert.Contains(t, string(patched), "FLASH (rx) : ORIGIN = 0x08000000, LENGTH = 2048K")
	assert.Contains(t, string(patched), "FLASHB1 (rx) : ORIGIN = 0x00000000, LENGTH = 0")
	assert.Contains(t, string(patched), "RAM (xrw) : ORIGIN = 0x20000000, LENGTH = 192K")

	// a second pass must be a no-op
	again, changed := PatchFlashOrigin(patched)
	assert.False(t, changed)
	assert.Equal(t, patched, again)
}

func TestPatchFlashOriginUntouched(t *testing.T) {
	script := "FLASH (rx) : ORIGIN = 0x08000000, LENGTH = 1024K\n"
	patched, changed := PatchFlashOrigin([]byte(script))
	assert.False(t, changed)
	assert.Equal(t, script, string(patched))
}
