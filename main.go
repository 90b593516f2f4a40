/*
Command timelinegrid lays out dated records (content briefings, tasks) on a
scrollable grid of ISO calendar weeks.

Records are read from CSV, configured per screen through a YAML file with
named profiles, and the computed layout is written as JSON or YAML for the
presentation layer to draw. The layout itself lives in package timeline and
is a pure function of the records, the reference date and the configuration.

Usage:

	timelinegrid layout --csv briefings.csv --profile briefings
	timelinegrid weeks --profile tasks --now 2024-01-17
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
