package cubemx

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/stm32tools/cubeimport/pkg/utils"
)

// layoutMatrix describes the locations CubeMX generations have used for the
// relocatable CMSIS files. Candidates are probed in order and the first
// existing file wins, so mixed vendor package layouts resolve without knowing
// the exact generator version.
const layoutMatrix = `
system:
  - path: Drivers/CMSIS/Device/ST/{DEVICE}/Source/Templates/system_{device}.c
  - path: Src/system_{device}.c
    imported: true
startup:
  - path: Drivers/CMSIS/Device/ST/{DEVICE}/Source/Templates/gcc/startup_{mcu}.s
  - path: startup/startup_{mcu}.s
`

// A Candidate is one possible location of a relocatable file.
type Candidate struct {
	// the project relative path with {DEVICE}, {device} and {mcu} placeholders
	Path string `yaml:"path"`

	// whether the application import already copies the file, leaving a stray
	// duplicate behind
	Imported bool `yaml:"imported"`
}

// Resolve expands the candidate path for the given project and target.
func (c Candidate) Resolve(p *Project, t Target) string {
	// expand placeholders
	path := c.Path
	path = strings.ReplaceAll(path, "{DEVICE}", t.DeviceDir())
	path = strings.ReplaceAll(path, "{device}", t.Device())
	path = strings.ReplaceAll(path, "{mcu}", strings.ToLower(t.MCU))

	return filepath.Join(p.Location, filepath.FromSlash(path))
}

// A Matrix holds the candidate locations for all relocatable files.
type Matrix struct {
	System  []Candidate `yaml:"system"`
	Startup []Candidate `yaml:"startup"`
}

// DefaultMatrix returns the layout matrix for the known CubeMX generations.
func DefaultMatrix() (Matrix, error) {
	// parse embedded matrix
	var m Matrix
	err := yaml.Unmarshal([]byte(layoutMatrix), &m)
	if err != nil {
		return Matrix{}, err
	}

	return m, nil
}

// SystemFile probes the matrix for the system initialization file of the given
// project and returns its location and the matched candidate.
func (m Matrix) SystemFile(p *Project, t Target) (string, Candidate, error) {
	return locate("system file", m.System, p, t)
}

// StartupFile probes the matrix for the assembler startup file of the given
// project and returns its location and the matched candidate.
func (m Matrix) StartupFile(p *Project, t Target) (string, Candidate, error) {
	return locate("startup file", m.Startup, p, t)
}

func locate(kind string, candidates []Candidate, p *Project, t Target) (string, Candidate, error) {
	// probe candidates in order
	for _, candidate := range candidates {
		path := candidate.Resolve(p, t)
		ok, err := utils.Exists(path)
		if err != nil {
			return "", Candidate{}, err
		} else if ok {
			return path, candidate, nil
		}
	}

	return "", Candidate{}, fmt.Errorf("%s not found in any known layout", kind)
}
