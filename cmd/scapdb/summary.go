package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/quay/scapdb"
)

// WriteSummary prints the per-OS profile counts of db, in the same order the
// database lists them.
func writeSummary(w io.Writer, output string, db *scapdb.Database) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\nDatabase saved to: %s\n", output)
	fmt.Fprintf(&b, "Total OS variants: %d\n", len(db.Datastreams))
	oses := make([]string, 0, len(db.Datastreams))
	for os := range db.Datastreams {
		oses = append(oses, os)
	}
	slices.Sort(oses)
	for _, os := range oses {
		for _, ds := range db.Datastreams[os] {
			fmt.Fprintf(&b, "  %s v%s: %d profiles\n", os, ds.Version, db.ProfileCount(os, ds.Version))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
