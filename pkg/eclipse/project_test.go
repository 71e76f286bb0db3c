package eclipse

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenProject(t *testing.T) {
	dir := t.TempDir()

	_, err := OpenProject(dir)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotEclipseProject))

	err = os.WriteFile(filepath.Join(dir, ".cproject"), []byte("<cproject/>"), 0644)
	assert.NoError(t, err)

	p, err := OpenProject(dir)
	assert.NoError(t, err)
	assert.Equal(t, dir, p.Location)
}

func TestPaths(t *testing.T) {
	p := &Project{Location: "/tmp/proj"}

	assert.Equal(t, filepath.Join("/tmp/proj", ".cproject"), p.DescriptorFile())
	assert.Equal(t, filepath.Join("/tmp/proj", "include"), p.IncludeDir())
	assert.Equal(t, filepath.Join("/tmp/proj", "src"), p.SourceDir())
	assert.Equal(t, filepath.Join("/tmp/proj", "system", "include", "cmsis"), p.CMSISInclude())
	assert.Equal(t, filepath.Join("/tmp/proj", "system", "include", "cmsis", "device"), p.CMSISDeviceInclude())
	assert.Equal(t, filepath.Join("/tmp/proj", "system", "src", "cmsis"), p.CMSISSource())
	assert.Equal(t, filepath.Join("/tmp/proj", "system", "include", "stm32f4xx"), p.FamilyInclude("stm32f4xx"))
	assert.Equal(t, filepath.Join("/tmp/proj", "system", "src", "stm32f4xx"), p.FamilySource("stm32f4xx"))
	assert.Equal(t, filepath.Join("/tmp/proj", "Middlewares"), p.MiddlewaresDir())
	assert.Equal(t, filepath.Join("/tmp/proj", "system", "include", "cmsis", "cmsis_device.h"), p.DeviceHeader())
	assert.Equal(t, filepath.Join("/tmp/proj", "ldscripts", "mem.ld"), p.LinkerScript())
}
