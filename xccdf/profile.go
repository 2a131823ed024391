package xccdf

import (
	"regexp"

	"github.com/quay/scapdb"
)

// VersionPatterns are tried in order against a profile description; the first
// match wins. The three-component forms come first so that a full version is
// never truncated by the two-component form.
var versionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`v(\d+\.\d+\.\d+)`),
	regexp.MustCompile(`(?i)version\s+(\d+\.\d+\.\d+)`),
	regexp.MustCompile(`\bv(\d+\.\d+)`),
}

// InferVersion returns the benchmark version mentioned in a profile
// description, as "v" followed by the dotted number, or
// [scapdb.UnknownVersion].
func InferVersion(description string) string {
	if description == "" {
		return scapdb.UnknownVersion
	}
	for _, re := range versionPatterns {
		if m := re.FindStringSubmatch(description); m != nil {
			return "v" + m[1]
		}
	}
	return scapdb.UnknownVersion
}

// Profiles returns every profile defined in the document, in document order.
func (d *Document) Profiles() []scapdb.Profile {
	out := make([]scapdb.Profile, 0, len(d.profiles))
	for i := range d.profiles {
		p := &d.profiles[i]
		desc := p.Description.Or("")
		sel := make([]string, len(p.Selected))
		copy(sel, p.Selected)
		out = append(out, scapdb.Profile{
			ID:              p.ID,
			Title:           p.Title.Or("Unknown"),
			Description:     desc,
			Version:         InferVersion(desc),
			RuleCount:       len(sel),
			SelectedRuleIDs: sel,
		})
	}
	return out
}

// Selection returns the set of rule ids the named profile selects, and whether
// the profile exists.
func (d *Document) Selection(profileID string) (map[string]struct{}, bool) {
	p, ok := d.profile(profileID)
	if !ok {
		return nil, false
	}
	set := make(map[string]struct{}, len(p.Selected))
	for _, id := range p.Selected {
		set[id] = struct{}{}
	}
	return set, true
}
