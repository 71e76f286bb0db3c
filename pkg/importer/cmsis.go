package importer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/stm32tools/cubeimport/pkg/utils"
)

// importCMSIS imports the CMSIS core package and the vendor device adapter and
// relocates the system and startup files into the build tree.
func (i *Importer) importCMSIS() error {
	// ensure the device header folder
	if !i.dryRun {
		err := os.MkdirAll(i.eclipse.CMSISDeviceInclude(), 0755)
		if err != nil {
			return err
		}
	}

	// register the include paths used by the imported headers
	device := i.target.Device()
	i.addIncludes(false, "../system/include/"+device)
	i.addIncludes(true, "../system/include/cmsis/device")

	// merge the device adapter and core header folders
	err := i.mergeTree(i.cubemx.CMSISDeviceInclude(i.target), i.eclipse.CMSISDeviceInclude())
	if err != nil {
		return err
	}
	err = i.mergeTree(i.cubemx.CMSISInclude(), i.eclipse.CMSISInclude())
	if err != nil {
		return err
	}

	// locate the relocatable files
	systemFile, systemLayout, err := i.matrix.SystemFile(i.cubemx, i.target)
	if err != nil {
		return err
	}
	startupFile, _, err := i.matrix.StartupFile(i.cubemx, i.target)
	if err != nil {
		return err
	}
	i.report.setLayout(systemFile, startupFile)

	// copy both into the CMSIS source folder
	err = i.copyFile(systemFile, i.eclipse.CMSISSource())
	if err != nil {
		return err
	}
	err = i.copyFile(startupFile, i.eclipse.CMSISSource())
	if err != nil {
		return err
	}

	// assembler sources carry the upper-case extension in the build tree
	base := filepath.Base(startupFile)
	err = i.rename(
		filepath.Join(i.eclipse.CMSISSource(), base),
		filepath.Join(i.eclipse.CMSISSource(), strings.TrimSuffix(base, ".s")+".S"),
	)
	if err != nil {
		return err
	}

	// newer generators keep the system file inside the application sources,
	// where the application import leaves a stray copy behind
	if systemLayout.Imported {
		err = i.remove(filepath.Join(i.eclipse.SourceDir(), filepath.Base(systemFile)))
		if err != nil {
			return err
		}
	}

	utils.Log(i.out, "Successfully imported CMSIS files.")

	return nil
}
