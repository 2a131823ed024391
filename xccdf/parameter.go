package xccdf

import (
	"strings"

	"github.com/quay/scapdb"
)

// Parameters returns the tunable values bound to the checks of the first rule
// with the provided id, keyed by normalized variable name.
//
// Value ids that don't resolve are skipped. An unknown rule has no
// parameters.
func (d *Document) Parameters(ruleID string) map[string]scapdb.Parameter {
	r, ok := d.rule(ruleID)
	if !ok {
		return map[string]scapdb.Parameter{}
	}
	return d.parameters(r)
}

func (d *Document) parameters(r *rule) map[string]scapdb.Parameter {
	ps := make(map[string]scapdb.Parameter, len(r.Exports))
	for _, id := range r.Exports {
		v, ok := d.value(id)
		if !ok {
			continue
		}
		// If two exports normalize to the same name, the last one wins.
		ps[d.VarName(id)] = scapdb.Parameter{
			Name:    v.Title.Or("Unknown"),
			Default: v.Default(),
			Type:    v.Type,
			ValueID: id,
		}
	}
	return ps
}

// VarName returns the variable name for a Value id: the id with the
// document's value prefix removed.
func (d *Document) VarName(valueID string) string {
	return strings.TrimPrefix(valueID, d.valuePrefix)
}
