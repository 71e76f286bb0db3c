package importer

import (
	"fmt"
	"os"

	"github.com/stm32tools/cubeimport/pkg/eclipse"
	"github.com/stm32tools/cubeimport/pkg/utils"
)

// cleanup deletes the scaffolding sources the GNU ARM Eclipse plug-in template
// ships with, which the imported content replaces.
func (i *Importer) cleanup() error {
	// leave the project untouched in dry-run mode
	if i.dryRun {
		utils.Log(i.out, "Skipping scaffolding cleanup (dry-run).")
		return nil
	}

	// clear the application and CMSIS source folders
	for _, dir := range []string{i.eclipse.IncludeDir(), i.eclipse.SourceDir(), i.eclipse.CMSISSource()} {
		utils.Debug(i.dbg, fmt.Sprintf("Clearing '%s'", dir))
		err := utils.ClearTree(dir)
		if err != nil {
			return err
		}
	}

	// purge the family scaffolding folders
	for _, dir := range []string{i.eclipse.SystemInclude(), i.eclipse.SystemSource()} {
		deleted, err := utils.Purge(dir, i.target.Device()+"*", i.target.Series()+"-stdperiph*")
		if err != nil {
			return err
		}
		for _, name := range deleted {
			utils.Debug(i.dbg, fmt.Sprintf("Deleted '%s' from '%s'", name, dir))
		}
	}

	// purge the family headers from the CMSIS folder
	deleted, err := utils.Purge(i.eclipse.CMSISInclude(), i.target.Series()+"*.h", "system_"+i.target.Series()+"*.h")
	if err != nil {
		return err
	}
	for _, name := range deleted {
		utils.Debug(i.dbg, fmt.Sprintf("Deleted '%s' from '%s'", name, i.eclipse.CMSISInclude()))
	}

	// recreate the family folders the import fills
	device := i.target.Device()
	for _, dir := range []string{i.eclipse.FamilyInclude(device), i.eclipse.FamilySource(device)} {
		err = os.MkdirAll(dir, 0755)
		if err != nil {
			return err
		}
	}

	// point the dispatch header at the detected device
	err = i.fixDeviceHeader()
	if err != nil {
		return err
	}

	utils.Log(i.out, "Deleted unneeded files generated by the GNU ARM Eclipse plug-in.")

	return nil
}

// fixDeviceHeader rewrites the include directive inside the CMSIS dispatch
// header so it matches the detected device.
func (i *Importer) fixDeviceHeader() error {
	// skip missing header
	path := i.eclipse.DeviceHeader()
	ok, err := utils.Exists(path)
	if err != nil || !ok {
		return err
	}

	// read header
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// rewrite include directive
	patched, changed := eclipse.RewriteDeviceInclude(data, i.target.Device())
	if !changed {
		return nil
	}

	utils.Debug(i.dbg, fmt.Sprintf("Rewrote device include in '%s'", path))

	return os.WriteFile(path, patched, 0644)
}
