package xccdf

import (
	"strings"

	"github.com/quay/scapdb"
)

// ClassifyReference reports which framework bucket a reference entry belongs
// in, based on its href attribute and text. The checks are ordered; the first
// one that holds decides:
//
//   - CIS if the href mentions "cis" (this includes cisecurity.org)
//   - NIST if the href mentions "nist"
//   - SRG if the href mentions "disa" and the text contains "SRG"
//   - STIG-ID if the href mentions "stigid"
//
// Href comparisons ignore case; the "SRG" text check does not.
func ClassifyReference(href, text string) (scapdb.Framework, bool) {
	h := strings.ToLower(href)
	switch {
	case strings.Contains(h, "cis"):
		return scapdb.CIS, true
	case strings.Contains(h, "nist"):
		return scapdb.NIST, true
	case strings.Contains(h, "disa") && strings.Contains(text, "SRG"):
		return scapdb.SRG, true
	case strings.Contains(h, "stigid"):
		return scapdb.STIGID, true
	}
	return "", false
}

// IsCCE reports whether an ident's system attribute names the CCE scheme.
func IsCCE(system string) bool {
	return strings.Contains(strings.ToLower(system), "cce")
}

// Classify buckets a rule's reference and ident elements. Idents are a
// separate element type and feed only the CCE bucket, whatever the
// reference entries say.
func classify(r *rule) scapdb.References {
	refs := scapdb.NewReferences()
	for _, ref := range r.References {
		if f, ok := ClassifyReference(ref.Href, ref.Text); ok {
			refs.Add(f, ref.Text)
		}
	}
	for _, id := range r.Idents {
		if IsCCE(id.System) {
			refs.Add(scapdb.CCE, id.Text)
		}
	}
	return refs
}

// References returns the classified references of the first rule with the
// provided id.
func (d *Document) References(ruleID string) scapdb.References {
	r, ok := d.rule(ruleID)
	if !ok {
		return scapdb.NewReferences()
	}
	return classify(r)
}
