package cubemx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMatrix(t *testing.T) {
	m, err := DefaultMatrix()
	assert.NoError(t, err)
	assert.NotEmpty(t, m.System)
	assert.NotEmpty(t, m.Startup)
	assert.False(t, m.System[0].Imported)
}

func TestCandidateResolve(t *testing.T) {
	p := &Project{Location: "/tmp/proj"}
	target := Target{MCU: "STM32F429xx", Family: "F4"}

	c := Candidate{Path: "Drivers/CMSIS/Device/ST/{DEVICE}/Source/Templates/system_{device}.c"}
	assert.Equal(t, filepath.Join("/tmp/proj", "Drivers", "CMSIS", "Device", "ST", "STM32F4xx",
		"Source", "Templates", "system_stm32f4xx.c"), c.Resolve(p, target))

	c = Candidate{Path: "startup/startup_{mcu}.s"}
	assert.Equal(t, filepath.Join("/tmp/proj", "startup", "startup_stm32f429xx.s"), c.Resolve(p, target))
}

func TestMatrixSystemFile(t *testing.T) {
	dir := makeGenerated(t, "STM32F429xx", false)
	target := Target{MCU: "STM32F429xx", Family: "F4"}

	p, err := OpenProject(dir)
	assert.NoError(t, err)

	m, err := DefaultMatrix()
	assert.NoError(t, err)

	// no candidate exists yet
	_, _, err = m.SystemFile(p, target)
	assert.Error(t, err)

	// the fallback location is used when the template location is missing
	writeFile(t, filepath.Join(dir, "Src", "system_stm32f4xx.c"), "")
	path, candidate, err := m.SystemFile(p, target)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Src", "system_stm32f4xx.c"), path)
	assert.True(t, candidate.Imported)

	// the template location wins when both exist
	templates := filepath.Join(dir, "Drivers", "CMSIS", "Device", "ST", "STM32F4xx", "Source", "Templates")
	writeFile(t, filepath.Join(templates, "system_stm32f4xx.c"), "")
	path, candidate, err = m.SystemFile(p, target)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(templates, "system_stm32f4xx.c"), path)
	assert.False(t, candidate.Imported)
}

func TestMatrixStartupFile(t *testing.T) {
	dir := makeGenerated(t, "STM32F429xx", false)
	target := Target{MCU: "STM32F429xx", Family: "F4"}

	p, err := OpenProject(dir)
	assert.NoError(t, err)

	m, err := DefaultMatrix()
	assert.NoError(t, err)

	writeFile(t, filepath.Join(dir, "startup", "startup_stm32f429xx.s"), "")
	path, _, err := m.StartupFile(p, target)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "startup", "startup_stm32f429xx.s"), path)
}
