// Package eclipse provides access to Eclipse projects using the GNU ARM
// Eclipse plug-in layout.
package eclipse

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/stm32tools/cubeimport/pkg/utils"
)

// ErrNotEclipseProject is returned when a folder is missing the Eclipse build
// descriptor.
var ErrNotEclipseProject = errors.New("not an Eclipse project")

// A Project is an Eclipse CDT project available on disk.
type Project struct {
	// the root folder of the project
	Location string
}

// OpenProject will validate and open the Eclipse project at the given path.
func OpenProject(path string) (*Project, error) {
	// check build descriptor
	ok, err := utils.Exists(filepath.Join(path, ".cproject"))
	if err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotEclipseProject, path)
	}

	return &Project{Location: path}, nil
}

// DescriptorFile returns the path of the build descriptor.
func (p *Project) DescriptorFile() string {
	return filepath.Join(p.Location, ".cproject")
}

// IncludeDir returns the application header folder.
func (p *Project) IncludeDir() string {
	return filepath.Join(p.Location, "include")
}

// SourceDir returns the application source folder.
func (p *Project) SourceDir() string {
	return filepath.Join(p.Location, "src")
}

// SystemInclude returns the system header folder.
func (p *Project) SystemInclude() string {
	return filepath.Join(p.Location, "system", "include")
}

// SystemSource returns the system source folder.
func (p *Project) SystemSource() string {
	return filepath.Join(p.Location, "system", "src")
}

// CMSISInclude returns the CMSIS header folder.
func (p *Project) CMSISInclude() string {
	return filepath.Join(p.Location, "system", "include", "cmsis")
}

// CMSISDeviceInclude returns the vendor device adapter header folder.
func (p *Project) CMSISDeviceInclude() string {
	return filepath.Join(p.Location, "system", "include", "cmsis", "device")
}

// CMSISSource returns the CMSIS source folder.
func (p *Project) CMSISSource() string {
	return filepath.Join(p.Location, "system", "src", "cmsis")
}

// FamilyInclude returns the HAL header folder for the given device, e.g.
// system/include/stm32f4xx.
func (p *Project) FamilyInclude(device string) string {
	return filepath.Join(p.Location, "system", "include", device)
}

// FamilySource returns the HAL source folder for the given device, e.g.
// system/src/stm32f4xx.
func (p *Project) FamilySource(device string) string {
	return filepath.Join(p.Location, "system", "src", device)
}

// MiddlewaresDir returns the imported middleware folder.
func (p *Project) MiddlewaresDir() string {
	return filepath.Join(p.Location, "Middlewares")
}

// DeviceHeader returns the CMSIS dispatch header that selects the device
// specific header.
func (p *Project) DeviceHeader() string {
	return filepath.Join(p.Location, "system", "include", "cmsis", "cmsis_device.h")
}

// LinkerScript returns the memory layout linker script.
func (p *Project) LinkerScript() string {
	return filepath.Join(p.Location, "ldscripts", "mem.ld")
}
