//go:build !go1.25

package test

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// LogOutput spools records to a file and replays them through [testing.TB.Log]
// when the test finishes.
func logOutput(t testing.TB) io.Writer {
	n := filepath.Join(t.TempDir(), "log")
	w, err := os.Create(n)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		w.Close()
		f, err := os.Open(n)
		if err != nil {
			t.Error(err)
			return
		}
		defer f.Close()
		s := bufio.NewScanner(f)
		for s.Scan() {
			t.Log(s.Text())
		}
		if err := s.Err(); err != nil {
			t.Error(err)
		}
	})
	return w
}
