// Package builder turns the datastreams under a scan root into a
// [scapdb.Database].
package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/quay/claircore/toolkit/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/quay/scapdb"
	"github.com/quay/scapdb/datastream"
	"github.com/quay/scapdb/xccdf"
)

// DefaultRoot is where SCAP content is conventionally unpacked.
const DefaultRoot = `/opt`

// Options configures a Builder. The zero value is ready to use.
type Options struct {
	// Workers is the number of datastreams decoded concurrently. Values less
	// than 1 mean 1. The result doesn't depend on this setting.
	Workers int
	// SkipInvalid controls the policy for datastreams that fail to decode. If
	// false, the first failure aborts the build. If true, the failure is
	// logged and the datastream is left out of the Database entirely.
	SkipInvalid bool
	// Discovery configures the content naming conventions.
	Discovery *datastream.Options
	// Parse configures document decoding.
	Parse *xccdf.Opts
	// Now is used to stamp the Database. If nil, time.Now is used.
	Now func() time.Time
}

// Builder builds Databases.
type Builder struct {
	opts Options
}

// New returns a Builder. Opts may be nil.
func New(opts *Options) *Builder {
	var b Builder
	if opts != nil {
		b.opts = *opts
	}
	if b.opts.Workers < 1 {
		b.opts.Workers = 1
	}
	if b.opts.Now == nil {
		b.opts.Now = time.Now
	}
	return &b
}

// Extraction is everything pulled out of one datastream.
type extraction struct {
	ds       scapdb.Datastream
	profiles []scapdb.Profile
	// Rules, parallel to profiles.
	rules   [][]scapdb.Rule
	skipped bool
}

// Build discovers the datastreams under root and extracts every profile and
// each profile's selected rules from them.
//
// Discovery errors are always returned. Decode errors are handled according
// to [Options.SkipInvalid].
func (b *Builder) Build(ctx context.Context, root string) (_ *scapdb.Database, err error) {
	run := uuid.New()
	ctx, span := tracer.Start(ctx, "Build", trace.WithAttributes(
		attribute.String("root", root),
		attribute.Stringer("run", run),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "build failed")
		}
		span.End()
	}()
	ctx = log.With(ctx, "run", run, "root", root)

	found, err := datastream.Discover(ctx, root, b.opts.Discovery)
	if err != nil {
		return nil, err
	}
	dss := flatten(found)
	slog.InfoContext(ctx, "discovered datastreams", "os_count", len(found), "count", len(dss))

	// Each worker owns its document and writes only its own slot.
	res := make([]extraction, len(dss))
	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(b.opts.Workers)
	for i, ds := range dss {
		eg.Go(func() error {
			ex, err := b.extract(ectx, ds)
			if err != nil {
				return err
			}
			res[i] = ex
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	db := scapdb.NewDatabase(root, b.opts.Now())
	for _, ex := range res {
		if ex.skipped {
			continue
		}
		db.AddDatastream(ex.ds)
		db.SetProfiles(ex.ds, ex.profiles)
		for i, p := range ex.profiles {
			db.SetRules(ex.ds, p.ID, ex.rules[i])
		}
	}
	slog.InfoContext(ctx, "built database", "os_count", len(db.Datastreams))
	return db, nil
}

// Extract decodes one datastream and pulls its profiles and their rules.
func (b *Builder) extract(ctx context.Context, ds scapdb.Datastream) (_ extraction, err error) {
	ctx, span := tracer.Start(ctx, "extract", trace.WithAttributes(
		attribute.String("os", ds.OS),
		attribute.String("version", ds.Version),
		attribute.String("path", ds.Path),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "extract failed")
		}
		span.End()
	}()
	ctx = log.With(ctx, "os", ds.OS, "version", ds.Version, "path", ds.Path)
	slog.InfoContext(ctx, "processing datastream")

	start := time.Now()
	doc, err := xccdf.Open(ctx, ds.Path, b.opts.Parse)
	parseDuration.Observe(time.Since(start).Seconds())
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return extraction{}, err
	case b.opts.SkipInvalid && errors.Is(err, scapdb.ErrInvalid):
		datastreamCounter.WithLabelValues(outcomeSkipped).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "skipped invalid datastream")
		slog.WarnContext(ctx, "skipping invalid datastream", "reason", err)
		return extraction{ds: ds, skipped: true}, nil
	default:
		datastreamCounter.WithLabelValues(outcomeError).Inc()
		return extraction{}, fmt.Errorf("builder: datastream %q: %w", ds.Path, err)
	}

	ex := extraction{
		ds:       ds,
		profiles: doc.Profiles(),
	}
	ex.rules = make([][]scapdb.Rule, len(ex.profiles))
	var n int
	for i, p := range ex.profiles {
		ex.rules[i] = doc.Rules(p.ID)
		n += len(ex.rules[i])
	}
	datastreamCounter.WithLabelValues(outcomeOK).Inc()
	profileCounter.Add(float64(len(ex.profiles)))
	ruleCounter.Add(float64(n))
	slog.DebugContext(ctx, "extracted datastream", "profiles", len(ex.profiles), "rules", n)
	return ex, nil
}

// Flatten returns the discovered datastreams in a stable order: by OS
// identity, then in discovery order.
func flatten(m map[string][]scapdb.Datastream) []scapdb.Datastream {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var out []scapdb.Datastream
	for _, k := range keys {
		out = append(out, m[k]...)
	}
	return out
}
