package importer

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/stm32tools/cubeimport/pkg/utils"
)

// freeRTOSWarning is surfaced when the FreeRTOS middleware was imported.
const freeRTOSWarning = `The CubeMX project contains the FreeRTOS middleware library.
The library was imported into the Eclipse project, but the tool-chain 'Float ABI' and
'FPU Type' settings still need attention if the MCU supports hard float (e.g. for a
STM32F4 set 'Float ABI' to 'FP Instructions (hard)' and 'FPU Type' to 'fpv4-sp-d16').
Also exclude the unused heap implementations (heap_1.c, heap_2.c, ...) from the build.`

// fatFsWarning is surfaced when the FatFs middleware was imported.
const fatFsWarning = `The CubeMX project contains the FatFs middleware library.
The library was imported into the Eclipse project, but the unneeded codepage files
(cc932.c, cc936.c, ...) still need to be excluded from the build.`

// importMiddlewares imports the bundled middleware libraries when present.
func (i *Importer) importMiddlewares() error {
	// check bundled middlewares
	mw, err := i.cubemx.FindMiddlewares()
	if err != nil {
		return err
	}
	if !mw.Present {
		return nil
	}

	// copy the whole middleware subtree
	err = i.copyTree(i.cubemx.MiddlewaresDir(), i.eclipse.MiddlewaresDir())
	if err != nil {
		return err
	}

	// register the middleware include paths declared by the generated project
	includes, err := i.cubemx.Includes()
	if err != nil {
		return err
	}
	includes = lo.FilterMap(includes, func(include string, _ int) (string, bool) {
		return strings.TrimPrefix(include, "../../"), strings.Contains(include, "Middlewares")
	})
	i.addIncludes(true, includes...)

	// compile the imported sources
	i.addSourceEntries("Middlewares")

	// drop the template network interface shipped with LwIP
	if mw.LwIP {
		err = i.remove(filepath.Join(i.eclipse.MiddlewaresDir(), "Third_Party", "LwIP", "src", "netif", "ethernetif_template.c"))
		if err != nil {
			return err
		}
	}

	// some libraries need manual attention after the import
	if mw.FreeRTOS {
		i.warn(freeRTOSWarning)
	}
	if mw.FatFs {
		i.warn(fatFsWarning)
	}

	utils.Log(i.out, "Successfully imported middleware libraries.")

	return nil
}
