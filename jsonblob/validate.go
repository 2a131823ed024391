package jsonblob

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/quay/scapdb"
)

//go:embed database.schema.json
var schemaJSON []byte

const schemaURL = `database.schema.json`

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("jsonblob: unable to add schema: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("jsonblob: unable to compile schema: %w", err)
	}
	return s, nil
})

// Validate reports whether b is a well-formed database document.
//
// If the document does not conform, the returned error is an [ErrInvalid].
//
// [ErrInvalid]: scapdb.ErrInvalid
func Validate(ctx context.Context, b []byte) error {
	s, err := compiled()
	if err != nil {
		return &scapdb.Error{
			Op:    `jsonblob.Validate`,
			Kind:  scapdb.ErrInternal,
			Inner: err,
		}
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return &scapdb.Error{
			Op:      `jsonblob.Validate`,
			Kind:    scapdb.ErrInvalid,
			Message: "unable to decode document",
			Inner:   err,
		}
	}
	if err := s.Validate(v); err != nil {
		return &scapdb.Error{
			Op:      `jsonblob.Validate`,
			Kind:    scapdb.ErrInvalid,
			Message: "schema violation",
			Inner:   err,
		}
	}
	slog.DebugContext(ctx, "database document valid", "size", len(b))
	return nil
}
