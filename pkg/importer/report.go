package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"

	"github.com/stm32tools/cubeimport/pkg/cubemx"
	"github.com/stm32tools/cubeimport/pkg/utils"
)

// A TreeImport records one merged or copied source tree.
type TreeImport struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Files       int    `json:"files"`
	Bytes       int64  `json:"bytes"`
	Fingerprint string `json:"fingerprint"`
}

// A Report summarizes everything an import session changed or, in dry-run
// mode, would change.
type Report struct {
	MCU           string       `json:"mcu"`
	Family        string       `json:"family"`
	DryRun        bool         `json:"dry_run"`
	SystemFile    string       `json:"system_file,omitempty"`
	StartupFile   string       `json:"startup_file,omitempty"`
	Trees         []TreeImport `json:"trees"`
	Includes      []string     `json:"includes"`
	Macros        []string     `json:"macros"`
	SourceEntries []string     `json:"source_entries"`
	LinkerPatched bool         `json:"linker_patched"`
	Warnings      []string     `json:"warnings,omitempty"`
}

func newReport(target cubemx.Target, dryRun bool) *Report {
	return &Report{
		MCU:    target.MCU,
		Family: target.Family,
		DryRun: dryRun,
	}
}

func (r *Report) addTree(src, dst string, stats utils.TreeStats) {
	r.Trees = append(r.Trees, TreeImport{
		Source:      src,
		Destination: dst,
		Files:       stats.Files,
		Bytes:       stats.Bytes,
		Fingerprint: fmt.Sprintf("%016x", stats.Sum),
	})
}

func (r *Report) setLayout(systemFile, startupFile string) {
	r.SystemFile = systemFile
	r.StartupFile = startupFile
}

func (r *Report) addIncludes(paths ...string) {
	r.Includes = append(r.Includes, paths...)
}

func (r *Report) addMacros(macros ...string) {
	r.Macros = append(r.Macros, macros...)
}

func (r *Report) addSourceEntries(names ...string) {
	r.SourceEntries = append(r.SourceEntries, names...)
}

func (r *Report) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// TotalFiles returns the number of files across all imported trees.
func (r *Report) TotalFiles() int {
	return lo.SumBy(r.Trees, func(tree TreeImport) int {
		return tree.Files
	})
}

// TotalBytes returns the number of bytes across all imported trees.
func (r *Report) TotalBytes() int64 {
	return lo.SumBy(r.Trees, func(tree TreeImport) int64 {
		return tree.Bytes
	})
}

// Save will write the report to the specified path.
func (r *Report) Save(path string) error {
	// encode report
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	// write report
	err = os.WriteFile(path, append(data, '\n'), 0644)
	if err != nil {
		return err
	}

	return nil
}
