package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"timelinegrid/timeline"
)

// encodeFunc writes a layout in one output format.
type encodeFunc func(io.Writer, *timeline.Layout) error

// encoderFor returns the layout encoder for an output format name.
func encoderFor(format string) (encodeFunc, error) {
	switch strings.ToLower(format) {
	case "json":
		return encodeJSON, nil
	case "yaml", "yml":
		return encodeYAML, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use json or yaml)", format)
	}
}

// encodeJSON writes the layout as indented JSON.
func encodeJSON(w io.Writer, layout *timeline.Layout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(layout)
}

// encodeYAML writes the layout as a YAML document.
func encodeYAML(w io.Writer, layout *timeline.Layout) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(layout); err != nil {
		return err
	}
	return enc.Close()
}

// writeWeeks prints the week grid as an aligned table.
func writeWeeks(w io.Writer, window timeline.Window, weeks []timeline.WeekBucket, today float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "WEEK\tSTART\tEND\tCURRENT\n")
	for _, wk := range weeks {
		current := ""
		if wk.IsCurrentWeek {
			current = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", wk.Label, wk.Start.Format("2006-01-02"), wk.End.Format("2006-01-02"), current)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nwindow %s .. %s, today at %.1f%%\n",
		window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"), today)
	return err
}
