package xmlutil

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestNewDecoderLatin1(t *testing.T) {
	t.Parallel()
	// "café" with the é encoded as a single ISO-8859-1 byte.
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<title>caf\xe9</title>"
	var v struct {
		Text string `xml:",chardata"`
	}
	if err := NewDecoder(strings.NewReader(doc)).Decode(&v); err != nil {
		t.Fatal(err)
	}
	if got, want := v.Text, "café"; got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
}

func TestNewDecoderWindows1252(t *testing.T) {
	t.Parallel()
	want := "Don’t use “smart” quotes"
	body, err := charmap.Windows1252.NewEncoder().String(want)
	if err != nil {
		t.Fatal(err)
	}
	doc := "<?xml version=\"1.0\" encoding=\"windows-1252\"?>\n<title>" + body + "</title>"
	var v struct {
		Text string `xml:",chardata"`
	}
	if err := NewDecoder(strings.NewReader(doc)).Decode(&v); err != nil {
		t.Fatal(err)
	}
	if got := v.Text; got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
}

func TestNewDecoderUnknownCharset(t *testing.T) {
	t.Parallel()
	doc := "<?xml version=\"1.0\" encoding=\"x-not-a-charset\"?>\n<title>a</title>"
	var v struct{}
	if err := NewDecoder(strings.NewReader(doc)).Decode(&v); err == nil {
		t.Error("expected error for unknown charset")
	}
}
