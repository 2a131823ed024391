package scapdb

// UnknownVersion is reported when no version string could be found in a
// profile's description.
const UnknownVersion = "Unknown"

// Profile is a named, curated subset of the rules in a datastream.
type Profile struct {
	// Unique within a datastream.
	// example: "xccdf_org.ssgproject.content_profile_cis"
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Version inferred from the description text, or [UnknownVersion].
	// example: "v3.0.0"
	Version string `json:"version"`
	// Number of select elements marked selected. This counts repeats, so it
	// may be larger than the number of distinct ids.
	RuleCount int `json:"rule_count"`
	// Rule ids in document order. These are weak references: an id may not
	// resolve to any Rule in the datastream.
	SelectedRuleIDs []string `json:"selected_rule_ids"`
}

// Selects reports whether the profile selects the rule with the provided id.
func (p *Profile) Selects(id string) bool {
	for _, s := range p.SelectedRuleIDs {
		if s == id {
			return true
		}
	}
	return false
}
