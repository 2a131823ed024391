package xccdf

import (
	"github.com/quay/scapdb"
)

// Rules returns rules defined in the document, in document order.
//
// If profileID is empty, every rule is returned. Otherwise only rules the
// profile selects are returned; an unknown profile selects nothing. Selected
// ids with no matching rule are ignored.
//
// Repeated rule ids are all returned: the result is a list, not a set.
func (d *Document) Rules(profileID string) []scapdb.Rule {
	var sel map[string]struct{}
	if profileID != "" {
		var ok bool
		sel, ok = d.Selection(profileID)
		if !ok {
			return []scapdb.Rule{}
		}
	}
	out := make([]scapdb.Rule, 0, len(d.rules))
	for i := range d.rules {
		r := &d.rules[i]
		if sel != nil {
			if _, ok := sel[r.ID]; !ok {
				continue
			}
		}
		out = append(out, d.convert(r))
	}
	return out
}

// Rule returns the first rule with the provided id.
func (d *Document) Rule(id string) (scapdb.Rule, bool) {
	r, ok := d.rule(id)
	if !ok {
		return scapdb.Rule{}, false
	}
	return d.convert(r), true
}

func (d *Document) convert(r *rule) scapdb.Rule {
	out := scapdb.Rule{
		ID:          r.ID,
		Title:       r.Title.Or("Unknown"),
		Description: r.Description.Or(""),
		Severity:    scapdb.Severity(r.Severity),
		Rationale:   r.Rationale.Or(""),
		References:  classify(r),
	}
	out.SetParameters(d.parameters(r))
	return out
}
