// Package xccdf extracts profiles, rules, parameters and framework references
// from XCCDF content, either bare benchmarks or SCAP source datastreams
// wrapping them.
//
// A [Document] is decoded once and then queried. Cross references (profile to
// rule, rule to Value) are plain id strings resolved through per-document
// lookups; targets may be legitimately absent, in which case the reference
// contributes nothing.
package xccdf

import (
	"bufio"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/quay/scapdb"
	"github.com/quay/scapdb/internal/xmlutil"
)

// DefaultValuePrefix is the id prefix stripped from Value ids to produce
// parameter variable names.
const DefaultValuePrefix = `xccdf_org.ssgproject.content_value_`

// Opts configures document decoding. The zero value is ready to use.
type Opts struct {
	// ValuePrefix is stripped from Value ids to produce parameter names. If
	// empty, DefaultValuePrefix is used.
	ValuePrefix string
}

// Document is a decoded XCCDF document.
//
// A Document is immutable once returned from [Parse] and is safe for
// concurrent use.
type Document struct {
	valuePrefix string

	profiles []profile
	rules    []rule
	values   []value

	// Id lookups into the slices above. The first occurrence of an id wins.
	profileIdx map[string]int
	ruleIdx    map[string]int
	valueIdx   map[string]int
}

// Parse decodes the document in r.
//
// Every Profile, Rule, and Value element in either XCCDF namespace is
// collected in document order, wherever it appears in the tree. Malformed XML
// reports an error of kind [scapdb.ErrInvalid] and no Document.
func Parse(ctx context.Context, r io.Reader, opts *Opts) (*Document, error) {
	const op = `xccdf.Parse`
	if opts == nil {
		opts = &Opts{}
	}
	doc := Document{
		valuePrefix: opts.ValuePrefix,
		profileIdx:  make(map[string]int),
		ruleIdx:     make(map[string]int),
		valueIdx:    make(map[string]int),
	}
	if doc.valuePrefix == "" {
		doc.valuePrefix = DefaultValuePrefix
	}
	invalid := func(err error) error {
		return &scapdb.Error{
			Op:      op,
			Kind:    scapdb.ErrInvalid,
			Message: "unable to decode document",
			Inner:   err,
		}
	}

	dec := xmlutil.NewDecoder(r)
	var sawRoot bool
	for {
		tok, err := dec.Token()
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			if !sawRoot {
				return nil, invalid(errors.New("no root element"))
			}
			slog.DebugContext(ctx, "document decoded",
				"profiles", len(doc.profiles),
				"rules", len(doc.rules),
				"values", len(doc.values))
			return &doc, nil
		default:
			return nil, invalid(err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true
		switch {
		case is(start.Name, elemProfile):
			var p profile
			if err := dec.DecodeElement(&p, &start); err != nil {
				return nil, invalid(err)
			}
			add(&doc.profiles, doc.profileIdx, p.ID, p)
		case is(start.Name, elemRule):
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			var r rule
			if err := dec.DecodeElement(&r, &start); err != nil {
				return nil, invalid(err)
			}
			add(&doc.rules, doc.ruleIdx, r.ID, r)
		case is(start.Name, elemValue):
			var v value
			if err := dec.DecodeElement(&v, &start); err != nil {
				return nil, invalid(err)
			}
			add(&doc.values, doc.valueIdx, v.ID, v)
		}
	}
}

func add[T any](s *[]T, idx map[string]int, id string, v T) {
	if _, ok := idx[id]; !ok {
		idx[id] = len(*s)
	}
	*s = append(*s, v)
}

// Open decodes the document at the named path. Errors carry the path.
func Open(ctx context.Context, path string, opts *Opts) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &scapdb.Error{
			Op:    `xccdf.Open`,
			Kind:  scapdb.ErrPrecondition,
			Path:  path,
			Inner: err,
		}
	}
	defer f.Close()
	doc, err := Parse(ctx, bufio.NewReader(f), opts)
	if err != nil {
		var e *scapdb.Error
		if errors.As(err, &e) {
			e.Path = path
			return nil, e
		}
		return nil, fmt.Errorf("xccdf: %q: %w", path, err)
	}
	return doc, nil
}

func (d *Document) profile(id string) (*profile, bool) {
	i, ok := d.profileIdx[id]
	if !ok {
		return nil, false
	}
	return &d.profiles[i], true
}

func (d *Document) rule(id string) (*rule, bool) {
	i, ok := d.ruleIdx[id]
	if !ok {
		return nil, false
	}
	return &d.rules[i], true
}

func (d *Document) value(id string) (*value, bool) {
	i, ok := d.valueIdx[id]
	if !ok {
		return nil, false
	}
	return &d.values[i], true
}
