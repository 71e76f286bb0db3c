package eclipse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const dispatchHeader = `#ifndef CMSIS_DEVICE_H
#define CMSIS_DEVICE_H

#include "stm32f0xx.h"

#endif
`

func TestRewriteDeviceInclude(t *testing.T) {
	patched, changed := RewriteDeviceInclude([]byte(dispatchHeader), "stm32f4xx")
	assert.True(t, changed)
	assert.Contains(t, string(patched), `#include "stm32f4xx.h"`)
	assert.NotContains(t, string(patched), "stm32f0xx")

	// a second pass must be a no-op
	again, changed := RewriteDeviceInclude(patched, "stm32f4xx")
	assert.False(t, changed)
	assert.Equal(t, patched, again)
}

func TestRewriteDeviceIncludeUnrelated(t *testing.T) {
	header := "#include <stdint.h>\n"
	patched, changed := RewriteDeviceInclude([]byte(header), "stm32f4xx")
	assert.False(t, changed)
	assert.Equal(t, header, string(patched))
}
