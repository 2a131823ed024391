// Package jsonblob reads and writes a [scapdb.Database] as a single JSON
// document.
//
// The JSON form is the contract with downstream consumers: top-level keys
// "metadata", "datastreams", "profiles", and "rules", nested as described on
// [scapdb.Database]. The embedded schema describes it; see [Validate].
package jsonblob

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/quay/scapdb"
)

// Store writes the Database to w as indented JSON. It's the inverse of Load.
func Store(ctx context.Context, w io.Writer, db *scapdb.Database) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(db); err != nil {
		return fmt.Errorf("jsonblob: unable to encode database: %w", err)
	}
	slog.DebugContext(ctx, "wrote database", "os_count", len(db.Datastreams))
	return nil
}

// Load reads a Database written by Store.
//
// The OS identity of every datastream is restored from the key it's grouped
// under.
func Load(ctx context.Context, r io.Reader) (*scapdb.Database, error) {
	var db scapdb.Database
	if err := json.NewDecoder(r).Decode(&db); err != nil {
		return nil, &scapdb.Error{
			Op:      `jsonblob.Load`,
			Kind:    scapdb.ErrInvalid,
			Message: "unable to decode database",
			Inner:   err,
		}
	}
	for os, dss := range db.Datastreams {
		for i := range dss {
			dss[i].OS = os
		}
	}
	slog.DebugContext(ctx, "loaded database", "os_count", len(db.Datastreams))
	return &db, nil
}
