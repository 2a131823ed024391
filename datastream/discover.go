// Package datastream finds SCAP source datastreams installed on disk.
//
// Content is expected in the layout the SCAP Security Guide release archives
// unpack to:
//
//	<root>/scap-security-guide-<version>/ssg-<os>-ds.xml
package datastream

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver"

	"github.com/quay/scapdb"
)

// Default naming conventions.
const (
	DefaultContentPrefix = `scap-security-guide-`
	DefaultFilePrefix    = `ssg-`
	DefaultFileSuffix    = `-ds.xml`
)

// Options configures discovery. The zero value uses the default naming
// conventions.
type Options struct {
	// ContentPrefix is the name prefix of content directories; the remainder
	// of the name is the content version.
	ContentPrefix string
	// FilePrefix and FileSuffix bracket the OS identity in datastream file
	// names.
	FilePrefix string
	FileSuffix string
}

func (o *Options) defaults() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.ContentPrefix == "" {
		out.ContentPrefix = DefaultContentPrefix
	}
	if out.FilePrefix == "" {
		out.FilePrefix = DefaultFilePrefix
	}
	if out.FileSuffix == "" {
		out.FileSuffix = DefaultFileSuffix
	}
	return out
}

// Discover reports the datastreams below root, grouped by OS identity. No
// document is opened.
//
// Entries that don't follow the naming conventions are skipped. A missing or
// unreadable root, or an unreadable content directory, is an error of kind
// [scapdb.ErrPrecondition]; a root with nothing matching in it is not.
func Discover(ctx context.Context, root string, opts *Options) (map[string][]scapdb.Datastream, error) {
	fi, err := os.Stat(root)
	switch {
	case err != nil:
		return nil, &scapdb.Error{
			Op:    `datastream.Discover`,
			Kind:  scapdb.ErrPrecondition,
			Path:  root,
			Inner: err,
		}
	case !fi.IsDir():
		return nil, &scapdb.Error{
			Op:      `datastream.Discover`,
			Kind:    scapdb.ErrPrecondition,
			Path:    root,
			Message: "not a directory",
		}
	}
	m, err := DiscoverFS(ctx, os.DirFS(root), opts)
	if err != nil {
		var e *scapdb.Error
		if errors.As(err, &e) && e.Path != "" {
			e.Path = filepath.Join(root, filepath.FromSlash(e.Path))
		}
		return nil, err
	}
	// Report paths in the host's form, rooted where the caller asked.
	for _, dss := range m {
		for i := range dss {
			dss[i].Path = filepath.Join(root, filepath.FromSlash(dss[i].Path))
		}
	}
	return m, nil
}

// DiscoverFS is like [Discover], but over an [fs.FS]. Reported paths are
// relative to the root of sys, in [fs.FS] path form.
func DiscoverFS(ctx context.Context, sys fs.FS, opts *Options) (map[string][]scapdb.Datastream, error) {
	cfg := opts.defaults()
	ents, err := fs.ReadDir(sys, ".")
	if err != nil {
		return nil, &scapdb.Error{
			Op:    `datastream.Discover`,
			Kind:  scapdb.ErrPrecondition,
			Path:  ".",
			Inner: err,
		}
	}

	out := make(map[string][]scapdb.Datastream)
	for _, ent := range ents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dir := ent.Name()
		version, ok := strings.CutPrefix(dir, cfg.ContentPrefix)
		if !ok || version == "" || !isDir(sys, ent) {
			continue
		}
		files, err := fs.ReadDir(sys, dir)
		if err != nil {
			return nil, &scapdb.Error{
				Op:    `datastream.Discover`,
				Kind:  scapdb.ErrPrecondition,
				Path:  dir,
				Inner: err,
			}
		}
		for _, f := range files {
			name := f.Name()
			id, ok := osIdentity(name, cfg.FilePrefix, cfg.FileSuffix)
			if !ok || f.IsDir() {
				continue
			}
			ds := scapdb.Datastream{
				Path:     path.Join(dir, name),
				Version:  version,
				Filename: name,
				OS:       id,
			}
			slog.DebugContext(ctx, "found datastream", "os", id, "version", version, "path", ds.Path)
			out[id] = append(out[id], ds)
		}
	}
	for _, dss := range out {
		sortByVersion(dss)
	}
	return out, nil
}

// OsIdentity returns the segment of name between prefix and suffix.
func osIdentity(name, prefix, suffix string) (string, bool) {
	s, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return "", false
	}
	s, ok = strings.CutSuffix(s, suffix)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// IsDir follows symlinks, which content installs commonly use to point a
// stable name at the current release.
func isDir(sys fs.FS, ent fs.DirEntry) bool {
	if ent.IsDir() {
		return true
	}
	if ent.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := fs.Stat(sys, ent.Name())
	return err == nil && fi.IsDir()
}

// SortByVersion orders datastreams by content version. Versions that parse as
// semantic versions sort numerically and before any that don't, which sort
// lexically.
func sortByVersion(dss []scapdb.Datastream) {
	sort.SliceStable(dss, func(i, j int) bool {
		a, aErr := semver.NewVersion(dss[i].Version)
		b, bErr := semver.NewVersion(dss[j].Version)
		switch {
		case aErr == nil && bErr == nil:
			if !a.Equal(b) {
				return a.LessThan(b)
			}
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		}
		return dss[i].Version < dss[j].Version
	})
}
