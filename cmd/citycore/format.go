package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ChicagoDave/citycore/pkg/catalog"
	"github.com/ChicagoDave/citycore/pkg/validation"
)

func printValidationReport(out io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(out, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(out, "  [%s] %s\n", e.Level, e.Message)
			if e.Path != "" {
				fmt.Fprintf(out, "    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Fprintf(out, "    expected: %s\n", e.Expected)
			}
			if e.ConflictWith != "" {
				fmt.Fprintf(out, "    conflicts with: %s\n", e.ConflictWith)
			}
			for _, s := range e.Suggestions {
				fmt.Fprintf(out, "    * %s\n", s)
			}
		}
		fmt.Fprintln(out)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(out, "WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Fprintf(out, "  [%s] %s\n", w.Level, w.Message)
			if w.Path != "" {
				fmt.Fprintf(out, "    -> %s = %v\n", w.Path, w.ActualValue)
			}
			if w.Expected != "" {
				fmt.Fprintf(out, "    expected: %s\n", w.Expected)
			}
			for _, s := range w.Suggestions {
				fmt.Fprintf(out, "    * %s\n", s)
			}
		}
		fmt.Fprintln(out)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(out, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(out, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(out)
	}

	if r.Valid {
		fmt.Fprintf(out, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(out, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printCatalog(out io.Writer, cat *catalog.Catalog) {
	fmt.Fprintln(out, "Building Catalog")
	fmt.Fprintln(out, "================")
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%-12s %-16s %6s %5s  %s\n", "Zone", "Name", "Size", "Tile", "Faces")
	fmt.Fprintf(out, "%-12s %-16s %6s %5s  %s\n", "------------", "----------------", "------", "-----", "-----")

	for _, t := range cat.Types() {
		for _, s := range cat.For(t) {
			faces := make([]string, len(s.Orientations))
			for i, d := range s.Orientations {
				faces[i] = d.String()
			}
			size := fmt.Sprintf("%dx%d", s.Size.Width, s.Size.Height)
			fmt.Fprintf(out, "%-12s %-16s %6s %5d  %s\n", t, s.Name, size, s.Tile, strings.Join(faces, ","))
		}
	}

	fmt.Fprintln(out)
	for _, t := range cat.Types() {
		fmt.Fprintf(out, "  %-12s %d entries, max extent %d\n", t+":", len(cat.For(t)), cat.MaxExtent(t))
	}
}
