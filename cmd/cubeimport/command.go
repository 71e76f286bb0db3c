package main

import (
	"strconv"

	"github.com/docopt/docopt-go"
)

var usage = `cubeimport - import STM32CubeMX generated projects into Eclipse projects

Usage:
  cubeimport <eclipse-project> <cubemx-project> [--verbose=<n> --dryrun --report=<path>]

Options:
  -v --verbose=<n>    Verbosity level from 1 (quiet) to 3 (debug) [default: 1].
  -d --dryrun         Only report what an import would change.
  -r --report=<path>  Write a JSON report of the import.
  -h --help           Show this screen.
`

type command struct {
	// arguments
	aEclipseProject string
	aCubeMXProject  string

	// options
	oVerbose int
	oDryRun  bool
	oReport  string
}

func parseCommand() *command {
	a, err := docopt.Parse(usage, nil, true, "", false)
	exitIfSet(err)

	return &command{
		// arguments
		aEclipseProject: getString(a["<eclipse-project>"]),
		aCubeMXProject:  getString(a["<cubemx-project>"]),

		// options
		oVerbose: getInt(a["--verbose"]),
		oDryRun:  getBool(a["--dryrun"]),
		oReport:  getString(a["--report"]),
	}
}

func getBool(field interface{}) bool {
	val, _ := field.(bool)
	return val
}

func getString(field interface{}) string {
	str, _ := field.(string)
	return str
}

func getInt(field interface{}) int {
	num, _ := strconv.Atoi(getString(field))
	return num
}
