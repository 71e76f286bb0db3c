// Package cubemx provides access to projects generated by the STM32CubeMX
// code generator.
package cubemx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/stm32tools/cubeimport/pkg/cproject"
	"github.com/stm32tools/cubeimport/pkg/utils"
)

// ErrNotCubeMXProject is returned when a folder is missing the CubeMX project
// marker file.
var ErrNotCubeMXProject = errors.New("not a CubeMX project")

// ErrNotSW4STM32Project is returned when a CubeMX project was not generated
// for the SW4STM32 tool-chain.
var ErrNotSW4STM32Project = errors.New("not a SW4STM32 project")

// the option class carrying the include paths in generated descriptors
const includesClass = "gnu.c.compiler.option.include.paths"

// A Project is a CubeMX generated project available on disk.
type Project struct {
	// the root folder of the generated project
	Location string

	// the folder holding the SW4STM32 tool-chain project
	Toolchain string
}

// OpenProject will validate and open the CubeMX project at the given path.
func OpenProject(path string) (*Project, error) {
	// check marker file
	ok, err := utils.Exists(filepath.Join(path, ".mxproject"))
	if err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotCubeMXProject, path)
	}

	// tool-chain projects were generated into a SW4STM32 subfolder before
	// CubeMX 4.14 and into the project root afterwards
	ok, err = utils.Exists(filepath.Join(path, "SW4STM32"))
	if err != nil {
		return nil, err
	} else if ok {
		return &Project{
			Location:  path,
			Toolchain: filepath.Join(path, "SW4STM32"),
		}, nil
	}

	// newer layouts share the root folder with other tool-chains, so the
	// descriptor must actually target the AC6 tool-chain
	data, err := os.ReadFile(filepath.Join(path, ".cproject"))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotSW4STM32Project, path)
	} else if err != nil {
		return nil, err
	}
	if !strings.Contains(string(data), "ac6") {
		return nil, fmt.Errorf("%w: %s", ErrNotSW4STM32Project, path)
	}

	return &Project{
		Location:  path,
		Toolchain: path,
	}, nil
}

// Includes returns the include paths registered in the tool-chain descriptor.
func (p *Project) Includes() ([]string, error) {
	// load descriptor
	doc, err := p.loadDescriptor()
	if err != nil {
		return nil, err
	}

	return doc.OptionValues(includesClass), nil
}

// IncDir returns the application header folder.
func (p *Project) IncDir() string {
	return filepath.Join(p.Location, "Inc")
}

// SrcDir returns the application source folder.
func (p *Project) SrcDir() string {
	return filepath.Join(p.Location, "Src")
}

// HALDriverInc returns the HAL driver header folder for the given target.
func (p *Project) HALDriverInc(t Target) string {
	return filepath.Join(p.Location, "Drivers", t.DeviceDir()+"_HAL_Driver", "Inc")
}

// HALDriverSrc returns the HAL driver source folder for the given target.
func (p *Project) HALDriverSrc(t Target) string {
	return filepath.Join(p.Location, "Drivers", t.DeviceDir()+"_HAL_Driver", "Src")
}

// CMSISInclude returns the core CMSIS header folder.
func (p *Project) CMSISInclude() string {
	return filepath.Join(p.Location, "Drivers", "CMSIS", "Include")
}

// CMSISDeviceInclude returns the vendor device adapter header folder for the
// given target.
func (p *Project) CMSISDeviceInclude(t Target) string {
	return filepath.Join(p.Location, "Drivers", "CMSIS", "Device", "ST", t.DeviceDir(), "Include")
}

// MiddlewaresDir returns the bundled middleware folder.
func (p *Project) MiddlewaresDir() string {
	return filepath.Join(p.Location, "Middlewares")
}

// findDescriptor locates the tool-chain descriptor below the tool-chain
// folder.
func (p *Project) findDescriptor() (string, error) {
	// walk tool-chain folder
	var descriptor string
	err := filepath.WalkDir(p.Toolchain, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == ".cproject" {
			descriptor = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	// check result
	if descriptor == "" {
		return "", fmt.Errorf("%w: no descriptor under %s", ErrNotSW4STM32Project, p.Toolchain)
	}

	return descriptor, nil
}

// loadDescriptor locates and parses the tool-chain descriptor.
func (p *Project) loadDescriptor() (*cproject.Descriptor, error) {
	// locate descriptor
	descriptor, err := p.findDescriptor()
	if err != nil {
		return nil, err
	}

	return cproject.Load(descriptor)
}
