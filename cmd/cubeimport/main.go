package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"code.cloudfoundry.org/bytefmt"

	"github.com/stm32tools/cubeimport/pkg/importer"
	"github.com/stm32tools/cubeimport/pkg/utils"
)

func main() {
	// parse command
	cmd := parseCommand()

	// map verbosity to writers
	var out, dbg io.Writer
	if cmd.oVerbose >= 2 {
		out = os.Stdout
	}
	if cmd.oVerbose >= 3 {
		dbg = os.Stdout
	}

	// prepare import session
	imp, err := importer.NewImporter(cmd.aEclipseProject, cmd.aCubeMXProject, cmd.oDryRun, out, dbg)
	exitIfSet(err)

	// run import pipeline
	exitIfSet(imp.Run())

	// get report
	report := imp.Report()

	// show summary
	if cmd.oVerbose >= 2 {
		// prepare table
		tbl := newTable("DESTINATION", "FILES", "SIZE")

		// add rows
		for _, tree := range report.Trees {
			tbl.add(tree.Destination, strconv.Itoa(tree.Files), bytefmt.ByteSize(uint64(tree.Bytes)))
		}

		// add totals
		tbl.add("total", strconv.Itoa(report.TotalFiles()), bytefmt.ByteSize(uint64(report.TotalBytes())))

		// show table
		fmt.Println()
		tbl.print()
	}

	// show warnings
	for _, warning := range report.Warnings {
		printWarning(warning)
	}

	// write report
	if cmd.oReport != "" {
		if cmd.oDryRun {
			utils.Log(out, "Skipping report write (dry-run).")
		} else {
			exitIfSet(report.Save(cmd.oReport))
		}
	}
}

func printWarning(msg string) {
	// print banner
	line := strings.Repeat("#", 100)
	fmt.Println(line)
	fmt.Println("####" + center("READ CAREFULLY", 92) + "####")
	fmt.Println(line)

	// print message
	fmt.Println(msg)
	fmt.Println()
}

func center(str string, width int) string {
	// pad string on both sides
	left := (width - len(str)) / 2
	right := width - len(str) - left

	return strings.Repeat(" ", left) + str + strings.Repeat(" ", right)
}
