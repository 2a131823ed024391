package jsonblob

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression is selected by file extension.
const (
	extGzip = ".gz"
	extZstd = ".zst"
	extXz   = ".xz"
)

// Create creates the named file and returns a writer that compresses
// according to the file's extension: ".gz", ".zst", and ".xz" are recognized,
// anything else is written as-is.
//
// The returned WriteCloser must be closed to flush the compressor; Close
// reports the first error encountered.
func Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	var w io.WriteCloser
	switch strings.ToLower(filepath.Ext(name)) {
	case extGzip:
		w = gzip.NewWriter(f)
	case extZstd:
		w, err = zstd.NewWriter(f)
	case extXz:
		w, err = xz.NewWriter(f)
	default:
		return f, nil
	}
	if err != nil {
		return nil, errors.Join(err, f.Close())
	}
	return &stack{Writer: w, closers: []io.Closer{w, f}}, nil
}

// Open opens the named file and returns a reader that decompresses according
// to the file's extension, as in [Create].
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	var r io.Reader
	var c io.Closer
	switch strings.ToLower(filepath.Ext(name)) {
	case extGzip:
		var z *gzip.Reader
		z, err = gzip.NewReader(f)
		r, c = z, z
	case extZstd:
		var z *zstd.Decoder
		z, err = zstd.NewReader(f)
		if err == nil {
			r, c = z, closeFunc(func() error { z.Close(); return nil })
		}
	case extXz:
		r, err = xz.NewReader(f)
	default:
		return f, nil
	}
	if err != nil {
		return nil, errors.Join(err, f.Close())
	}
	s := &stack{Reader: r}
	if c != nil {
		s.closers = append(s.closers, c)
	}
	s.closers = append(s.closers, f)
	return s, nil
}

// Stack closes its closers in order.
type stack struct {
	io.Reader
	io.Writer
	closers []io.Closer
}

func (s *stack) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type closeFunc func() error

func (f closeFunc) Close() error { return f() }
