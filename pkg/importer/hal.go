package importer

import (
	"path/filepath"

	"github.com/stm32tools/cubeimport/pkg/utils"
)

// importHAL imports the HAL driver and registers the device macro with all
// tools.
func (i *Importer) importHAL() error {
	// merge driver folders
	device := i.target.Device()
	err := i.mergeTree(i.cubemx.HALDriverInc(i.target), i.eclipse.FamilyInclude(device))
	if err != nil {
		return err
	}
	err = i.mergeTree(i.cubemx.HALDriverSrc(i.target), i.eclipse.FamilySource(device))
	if err != nil {
		return err
	}

	// register the device macro
	i.addMacros(i.target.MCU)

	// drop shipped template sources that must not be compiled
	templates := []string{
		device + "_hal_msp_template.c",
		device + "_hal_timebase_tim_template.c",
	}
	for _, name := range templates {
		err = i.remove(filepath.Join(i.eclipse.FamilySource(device), name))
		if err != nil {
			return err
		}
	}

	utils.Log(i.out, "Successfully imported HAL driver files.")

	return nil
}
