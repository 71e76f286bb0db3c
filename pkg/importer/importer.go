// Package importer merges STM32CubeMX generated projects into Eclipse
// projects that use the GNU ARM Eclipse plug-in layout.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/stm32tools/cubeimport/pkg/cproject"
	"github.com/stm32tools/cubeimport/pkg/cubemx"
	"github.com/stm32tools/cubeimport/pkg/eclipse"
	"github.com/stm32tools/cubeimport/pkg/utils"
)

// option classes of the GNU ARM Eclipse plug-in
const (
	asmIncludesClass = "ilg.gnuarmeclipse.managedbuild.cross.option.assembler.include.paths"
	cIncludesClass   = "ilg.gnuarmeclipse.managedbuild.cross.option.c.compiler.include.paths"
	cppIncludesClass = "ilg.gnuarmeclipse.managedbuild.cross.option.cpp.compiler.include.paths"
	asmDefsClass     = "ilg.gnuarmeclipse.managedbuild.cross.option.assembler.defs"
	cDefsClass       = "ilg.gnuarmeclipse.managedbuild.cross.option.c.compiler.defs"
	cppDefsClass     = "ilg.gnuarmeclipse.managedbuild.cross.option.cpp.compiler.defs"
)

// An Importer is a single import session from a CubeMX generated project into
// an Eclipse project.
type Importer struct {
	eclipse *eclipse.Project
	cubemx  *cubemx.Project
	target  cubemx.Target
	matrix  cubemx.Matrix
	desc    *cproject.Descriptor
	report  *Report
	dryRun  bool
	out     io.Writer
	dbg     io.Writer
}

// NewImporter will validate both projects, detect the target MCU and prepare
// an import session. If out is not nil it will be used to log progress, dbg
// receives per-file detail. In dry-run mode the session leaves the Eclipse
// project untouched and only reports what a real run would change.
func NewImporter(eclipsePath, cubemxPath string, dryRun bool, out, dbg io.Writer) (*Importer, error) {
	// open destination project
	dst, err := eclipse.OpenProject(eclipsePath)
	if err != nil {
		return nil, err
	}

	// open source project
	src, err := cubemx.OpenProject(cubemxPath)
	if err != nil {
		return nil, err
	}

	// detect target MCU and device family
	target, err := src.DetectTarget()
	if err != nil {
		return nil, err
	}

	// log target
	utils.Log(out, fmt.Sprintf("Detected MCU type: %s", target.MCU))
	utils.Log(out, fmt.Sprintf("Detected device family: %s", target.Family))

	// load layout matrix
	matrix, err := cubemx.DefaultMatrix()
	if err != nil {
		return nil, err
	}

	return &Importer{
		eclipse: dst,
		cubemx:  src,
		target:  target,
		matrix:  matrix,
		report:  newReport(target, dryRun),
		dryRun:  dryRun,
		out:     out,
		dbg:     dbg,
	}, nil
}

// Report returns the report of the session.
func (i *Importer) Report() *Report {
	return i.report
}

// Target returns the detected target.
func (i *Importer) Target() cubemx.Target {
	return i.target
}

// Run will execute the import pipeline. The Eclipse project is modified in
// place and a failing step leaves it partially migrated.
func (i *Importer) Run() error {
	// parse the build descriptor
	desc, err := cproject.Load(i.eclipse.DescriptorFile())
	if err != nil {
		return err
	}
	i.desc = desc

	// delete the stale scaffolding left by the plug-in template
	err = i.cleanup()
	if err != nil {
		return err
	}

	// import the generated application code
	err = i.importApplication()
	if err != nil {
		return err
	}

	// import the HAL driver
	err = i.importHAL()
	if err != nil {
		return err
	}

	// import the CMSIS package
	err = i.importCMSIS()
	if err != nil {
		return err
	}

	// import the bundled middleware libraries
	err = i.importMiddlewares()
	if err != nil {
		return err
	}

	// save the modified build descriptor
	err = i.saveDescriptor()
	if err != nil {
		return err
	}

	// patch the linker script
	err = i.patchLinkerScript()
	if err != nil {
		return err
	}

	return nil
}

// saveDescriptor writes the modified build descriptor back to disk.
func (i *Importer) saveDescriptor() error {
	// keep file in dry-run mode
	if i.dryRun {
		utils.Log(i.out, "Skipping descriptor write (dry-run).")
		return nil
	}

	// write descriptor
	err := i.desc.WriteFile(i.eclipse.DescriptorFile())
	if err != nil {
		return err
	}

	utils.Log(i.out, "Updated the project build descriptor.")

	return nil
}

// patchLinkerScript fixes the flash origin when the linker script still
// carries the all-zero address.
func (i *Importer) patchLinkerScript() error {
	// read memory layout script
	path := i.eclipse.LinkerScript()
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// patch flash origin
	patched, changed := eclipse.PatchFlashOrigin(data)
	if !changed {
		return nil
	}
	i.report.LinkerPatched = true

	// keep file in dry-run mode
	if i.dryRun {
		utils.Log(i.out, "Skipping linker script write (dry-run).")
		return nil
	}

	// write script
	err = os.WriteFile(path, patched, 0644)
	if err != nil {
		return err
	}

	utils.Log(i.out, fmt.Sprintf("Changed the flash origin from 0x00000000 to 0x08000000 in '%s'.", path))

	return nil
}

// mergeTree copies the source folder content into the destination folder and
// records the transfer in the report. In dry-run mode the source is only
// scanned.
func (i *Importer) mergeTree(src, dst string) error {
	utils.Debug(i.dbg, fmt.Sprintf("Copying content of '%s' to '%s'", src, dst))

	// scan or merge tree
	var stats utils.TreeStats
	var err error
	if i.dryRun {
		stats, err = utils.ScanTree(src)
	} else {
		stats, err = utils.MergeTree(src, dst)
	}
	if err != nil {
		return err
	}

	// record transfer
	i.report.addTree(src, dst, stats)

	return nil
}

// copyTree copies a whole subtree into the destination folder. A destination
// left over from a previous import is cleared once and the copy retried.
func (i *Importer) copyTree(src, dst string) error {
	utils.Debug(i.dbg, fmt.Sprintf("Copying folder '%s' to '%s'", src, dst))

	// only scan source in dry-run mode
	if i.dryRun {
		stats, err := utils.ScanTree(src)
		if err != nil {
			return err
		}
		i.report.addTree(src, dst, stats)
		return nil
	}

	// copy subtree and retry once over a leftover destination
	stats, err := utils.CopyTree(src, dst)
	if errors.Is(err, os.ErrExist) {
		utils.Debug(i.dbg, fmt.Sprintf("Clearing leftover folder '%s'", dst))
		err = os.RemoveAll(dst)
		if err != nil {
			return err
		}
		stats, err = utils.CopyTree(src, dst)
	}
	if err != nil {
		return err
	}

	// record transfer
	i.report.addTree(src, dst, stats)

	return nil
}

// copyFile copies a single file into the destination folder, keeping its name.
func (i *Importer) copyFile(src, dstDir string) error {
	dst := filepath.Join(dstDir, filepath.Base(src))
	utils.Debug(i.dbg, fmt.Sprintf("Copying '%s' to '%s'", src, dst))

	// keep destination in dry-run mode
	if i.dryRun {
		return nil
	}

	// copy file
	_, err := utils.CopyFile(src, dst, nil)

	return err
}

// remove deletes the file at the given path when it exists.
func (i *Importer) remove(path string) error {
	// skip missing files
	ok, err := utils.Exists(path)
	if err != nil || !ok {
		return err
	}

	utils.Debug(i.dbg, fmt.Sprintf("Deleting '%s'", path))

	// keep file in dry-run mode
	if i.dryRun {
		return nil
	}

	return os.Remove(path)
}

// rename moves the file at the given path when it exists.
func (i *Importer) rename(from, to string) error {
	// skip missing files
	ok, err := utils.Exists(from)
	if err != nil || !ok {
		return err
	}

	utils.Debug(i.dbg, fmt.Sprintf("Renaming '%s' to '%s'", from, to))

	// keep file in dry-run mode
	if i.dryRun {
		return nil
	}

	return os.Rename(from, to)
}

// addIncludes registers include paths with the C and C++ tools and optionally
// the assembler. Paths are stored quoted, following the IDE convention.
func (i *Importer) addIncludes(asm bool, paths ...string) {
	// select affected tools
	classes := []string{cIncludesClass, cppIncludesClass}
	if asm {
		classes = append(classes, asmIncludesClass)
	}

	// add paths to all selected tools
	var added []string
	for _, class := range classes {
		added = append(added, i.desc.AddOptionValues(class, true, paths...)...)
	}

	// record added paths
	added = lo.Uniq(added)
	for _, path := range added {
		utils.Debug(i.dbg, fmt.Sprintf("Adding include path '%s'", path))
	}
	i.report.addIncludes(added...)
}

// addMacros registers preprocessor macros with all tools.
func (i *Importer) addMacros(macros ...string) {
	// add macros to all tools
	var added []string
	for _, class := range []string{asmDefsClass, cDefsClass, cppDefsClass} {
		added = append(added, i.desc.AddOptionValues(class, false, macros...)...)
	}

	// record added macros
	added = lo.Uniq(added)
	for _, macro := range added {
		utils.Debug(i.dbg, fmt.Sprintf("Adding macro '%s'", macro))
	}
	i.report.addMacros(added...)
}

// addSourceEntries registers source folders with the descriptor.
func (i *Importer) addSourceEntries(names ...string) {
	// add entries
	added := i.desc.AddSourceEntries(names...)

	// record added entries
	for _, name := range added {
		utils.Debug(i.dbg, fmt.Sprintf("Adding source folder '%s'", name))
	}
	i.report.addSourceEntries(added...)
}

// warn records a warning the command surfaces after the run.
func (i *Importer) warn(msg string) {
	i.report.addWarning(msg)
}
