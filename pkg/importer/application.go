package importer

import (
	"github.com/stm32tools/cubeimport/pkg/utils"
)

// importApplication imports the generated application headers and sources.
func (i *Importer) importApplication() error {
	// merge application folders
	err := i.mergeTree(i.cubemx.IncDir(), i.eclipse.IncludeDir())
	if err != nil {
		return err
	}
	err = i.mergeTree(i.cubemx.SrcDir(), i.eclipse.SourceDir())
	if err != nil {
		return err
	}

	utils.Log(i.out, "Successfully imported application files.")

	return nil
}
