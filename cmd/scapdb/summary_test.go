package main

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/quay/scapdb"
)

func TestWriteSummary(t *testing.T) {
	db := scapdb.NewDatabase("/opt", time.Now())
	add := func(os, ver string, n int) {
		ds := scapdb.Datastream{OS: os, Version: ver}
		db.AddDatastream(ds)
		db.SetProfiles(ds, make([]scapdb.Profile, n))
	}
	add("rhel9", "0.1.79", 12)
	add("rhel8", "0.1.9", 3)
	add("rhel8", "0.1.10", 0)

	var b strings.Builder
	if err := writeSummary(&b, "scap_database.json", db); err != nil {
		t.Fatal(err)
	}
	want := `
Database saved to: scap_database.json
Total OS variants: 2
  rhel8 v0.1.9: 3 profiles
  rhel8 v0.1.10: 0 profiles
  rhel9 v0.1.79: 12 profiles
`
	if got := b.String(); got != want {
		t.Error(cmp.Diff(got, want))
	}
}
