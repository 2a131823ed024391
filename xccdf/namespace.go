package xccdf

import "encoding/xml"

// Namespaces recognized for XCCDF elements.
const (
	Namespace12 = `http://checklists.nist.gov/xccdf/1.2`
	Namespace11 = `http://checklists.nist.gov/xccdf/1.1`
	// NamespaceDatastream is the SCAP source datastream namespace. Datastream
	// wrapper elements are walked through, never decoded.
	NamespaceDatastream = `http://scap.nist.gov/schema/scap/source/1.2`
)

// Local names of the elements the extractors care about.
const (
	elemProfile     = `Profile`
	elemRule        = `Rule`
	elemValue       = `Value`
	elemSelect      = `select`
	elemTitle       = `title`
	elemDescription = `description`
	elemRationale   = `rationale`
	elemReference   = `reference`
	elemIdent       = `ident`
	elemCheck       = `check`
	elemCheckExport = `check-export`
	elemValueText   = `value`
)

// Is reports whether n is the XCCDF element with the provided local name, in
// either supported namespace.
func is(n xml.Name, local string) bool {
	if n.Local != local {
		return false
	}
	switch n.Space {
	case Namespace12, Namespace11:
		return true
	}
	return false
}

// Attr returns the value of the unqualified attribute named n, and whether it
// was present.
func attr(el xml.StartElement, n string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Space == "" && a.Name.Local == n {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the value of the unqualified attribute named n, or def if
// it's absent.
func attrOr(el xml.StartElement, n, def string) string {
	if v, ok := attr(el, n); ok {
		return v
	}
	return def
}
