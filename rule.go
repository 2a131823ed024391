package scapdb

// Severity is the severity attribute of a rule, copied verbatim.
//
// Content may carry values outside the defined constants; those are
// preserved as-is.
type Severity string

// Severities defined by XCCDF.
const (
	SeverityUnknown Severity = "unknown"
	SeverityInfo    Severity = "info"
	SeverityLow     Severity = "low"
	SeverityMedium  Severity = "medium"
	SeverityHigh    Severity = "high"
)

// Rule is a single checkable requirement.
type Rule struct {
	// Unique within a datastream, modulo malformed content.
	// example: "xccdf_org.ssgproject.content_rule_accounts_tmout"
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Severity    Severity   `json:"severity"`
	Rationale   string     `json:"rationale"`
	References  References `json:"references"`
	// HasParameters is always len(Parameters) > 0; see [Rule.SetParameters].
	HasParameters bool `json:"has_parameters"`
	// Parameters keyed by normalized variable name.
	// example: "var_accounts_tmout"
	Parameters map[string]Parameter `json:"parameters"`
}

// SetParameters replaces the rule's parameters and keeps HasParameters in
// agreement with them. A nil map is replaced with an empty one.
func (r *Rule) SetParameters(p map[string]Parameter) {
	if p == nil {
		p = make(map[string]Parameter)
	}
	r.Parameters = p
	r.HasParameters = len(p) > 0
}

// Parameter is a tunable Value bound to one of a rule's checks.
type Parameter struct {
	// Title of the Value element.
	Name string `json:"name"`
	// Default value, unparsed.
	Default string `json:"default"`
	// Declared type. Not validated.
	// example: "number"
	Type string `json:"type"`
	// Id of the originating Value element.
	// example: "xccdf_org.ssgproject.content_value_var_accounts_tmout"
	ValueID string `json:"value_id"`
}

// Framework names one of the fixed reference buckets.
type Framework string

// Frameworks a reference can be classified into.
const (
	CIS    Framework = "cis"
	NIST   Framework = "nist"
	SRG    Framework = "srg"
	STIGID Framework = "stigid"
	CCE    Framework = "cce"
)

// Frameworks is every Framework, in JSON order.
var Frameworks = []Framework{CIS, NIST, SRG, STIGID, CCE}

// References holds a rule's compliance-framework references. Each bucket is
// in document order and may contain duplicates.
type References struct {
	CIS    []string `json:"cis"`
	NIST   []string `json:"nist"`
	SRG    []string `json:"srg"`
	STIGID []string `json:"stigid"`
	CCE    []string `json:"cce"`
}

// NewReferences returns References with every bucket empty but non-nil, so
// that the JSON form has arrays rather than nulls.
func NewReferences() References {
	return References{
		CIS:    []string{},
		NIST:   []string{},
		SRG:    []string{},
		STIGID: []string{},
		CCE:    []string{},
	}
}

// Add appends s to the bucket for f. Unknown frameworks are ignored.
func (r *References) Add(f Framework, s string) {
	if b := r.bucket(f); b != nil {
		*b = append(*b, s)
	}
}

// Get returns the bucket for f.
func (r *References) Get(f Framework) []string {
	if b := r.bucket(f); b != nil {
		return *b
	}
	return nil
}

func (r *References) bucket(f Framework) *[]string {
	switch f {
	case CIS:
		return &r.CIS
	case NIST:
		return &r.NIST
	case SRG:
		return &r.SRG
	case STIGID:
		return &r.STIGID
	case CCE:
		return &r.CCE
	}
	return nil
}
