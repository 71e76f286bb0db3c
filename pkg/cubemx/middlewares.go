package cubemx

import (
	"io/fs"
	"path/filepath"
)

// Middlewares describes the optional middleware libraries bundled with a
// generated project.
type Middlewares struct {
	Present  bool
	FreeRTOS bool
	FatFs    bool
	LwIP     bool
}

// FindMiddlewares will walk the project tree and report which middleware
// libraries are bundled.
func (p *Project) FindMiddlewares() (Middlewares, error) {
	// walk project tree
	var mw Middlewares
	err := filepath.WalkDir(p.Location, func(path string, d fs.DirEntry, err error) error {
		// directly return errors
		if err != nil {
			return err
		}

		// only folders are markers
		if !d.IsDir() {
			return nil
		}

		// flag known folders
		switch d.Name() {
		case "Middlewares":
			mw.Present = true
		case "FreeRTOS":
			mw.FreeRTOS = true
		case "FatFs":
			mw.FatFs = true
		case "LwIP":
			mw.LwIP = true
		}

		return nil
	})
	if err != nil {
		return Middlewares{}, err
	}

	return mw, nil
}
