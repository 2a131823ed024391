// Package xmlutil holds helpers for decoding vendor XML.
package xmlutil

import (
	"encoding/xml"
	"io"

	"golang.org/x/net/html/charset"
)

// CharsetReader is suitable for use as an [xml.Decoder]'s CharsetReader. It
// handles every encoding label known to the WHATWG encoding standard, which
// covers the ISO-8859 and Windows code pages older content is published in.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	return charset.NewReaderLabel(label, input)
}

// NewDecoder returns an [xml.Decoder] reading from r with [CharsetReader]
// installed.
func NewDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = CharsetReader
	return dec
}
