// Package scapdb holds the data model for a database of SCAP compliance
// content: the profiles, rules, parameters and framework references found in
// vendor-installed XCCDF datastreams.
package scapdb

// Datastream is one compliance-content document found on disk.
//
// Datastreams are discovered once per scan and never modified afterward.
type Datastream struct {
	// Absolute or root-relative path to the document. This is the identity of
	// a Datastream.
	Path string `json:"path"`
	// Content version, derived from the parent directory name.
	// example: "0.1.79"
	Version string `json:"version"`
	// Base name of the document.
	// example: "ssg-rhel8-ds.xml"
	Filename string `json:"filename"`
	// OS identity, derived from the filename. This is the key the datastream is
	// grouped under and is not repeated in the JSON form.
	// example: "rhel8"
	OS string `json:"-"`
}
