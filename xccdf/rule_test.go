package xccdf

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quay/scapdb"
	"github.com/quay/scapdb/test"
)

func parseString(ctx context.Context, t testing.TB, s string) *Document {
	t.Helper()
	doc, err := Parse(ctx, strings.NewReader(s), nil)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func ruleIDs(rs []scapdb.Rule) []string {
	ids := make([]string, len(rs))
	for i, r := range rs {
		ids[i] = r.ID
	}
	return ids
}

func TestRulesFiltered(t *testing.T) {
	t.Parallel()
	ctx := test.Logging(t)
	doc := openFixture(ctx, t)

	tt := []struct {
		Profile string
		Want    []string
	}{
		{Profile: "", Want: []string{ruleA, ruleB, ruleC}},
		{Profile: profileCIS, Want: []string{ruleA, ruleB}},
		{Profile: profileSTIG, Want: []string{ruleB, ruleC}},
		{Profile: "xccdf_org.ssgproject.content_profile_nope", Want: []string{}},
	}
	for _, tc := range tt {
		t.Run(tc.Profile, func(t *testing.T) {
			got := ruleIDs(doc.Rules(tc.Profile))
			if !cmp.Equal(got, tc.Want) {
				t.Error(cmp.Diff(got, tc.Want))
			}
		})
	}
}

// Every selected id that names a rule is returned; the others are dropped.
func TestRulesSelectionProperty(t *testing.T) {
	t.Parallel()
	ctx := test.Logging(t)
	doc := openFixture(ctx, t)

	for _, p := range doc.Profiles() {
		got := make(map[string]bool)
		for _, r := range doc.Rules(p.ID) {
			got[r.ID] = true
		}
		for _, id := range p.SelectedRuleIDs {
			_, exists := doc.Rule(id)
			if exists != got[id] {
				t.Errorf("%s: rule %s: exists %v, returned %v", p.ID, id, exists, got[id])
			}
		}
	}
}

func TestRuleFields(t *testing.T) {
	t.Parallel()
	ctx := test.Logging(t)
	doc := openFixture(ctx, t)

	tt := []struct {
		ID   string
		Want scapdb.Rule
	}{
		{
			ID: ruleA,
			Want: scapdb.Rule{
				ID:          ruleA,
				Title:       "Rule A",
				Description: "Ensure a is set.",
				Severity:    scapdb.SeverityMedium,
				Rationale:   "A matters.",
				References: scapdb.References{
					CIS:    []string{"1.1.1"},
					NIST:   []string{"CM-6(a)"},
					SRG:    []string{"SRG-OS-000480-GPOS-00227"},
					STIGID: []string{"TEST-01-000001"},
					CCE:    []string{"CCE-80001-1"},
				},
				HasParameters: false,
				Parameters:    map[string]scapdb.Parameter{},
			},
		},
		{
			ID: ruleB,
			Want: scapdb.Rule{
				ID:          ruleB,
				Title:       "Rule B",
				Description: "Set X.",
				Severity:    scapdb.SeverityHigh,
				Rationale:   "B matters.",
				References: scapdb.References{
					CIS:    []string{},
					NIST:   []string{},
					SRG:    []string{},
					STIGID: []string{},
					CCE:    []string{"CCE-80002-9"},
				},
				HasParameters: true,
				Parameters: map[string]scapdb.Parameter{
					"var_x": {
						Name:    "Maximum X",
						Default: "5",
						Type:    "number",
						ValueID: "xccdf_org.ssgproject.content_value_var_x",
					},
				},
			},
		},
		{
			ID: ruleC,
			Want: scapdb.Rule{
				ID:            ruleC,
				Title:         "Rule C",
				Description:   "",
				Severity:      scapdb.SeverityUnknown,
				Rationale:     "",
				References:    scapdb.NewReferences(),
				HasParameters: false,
				Parameters:    map[string]scapdb.Parameter{},
			},
		},
	}
	for _, tc := range tt {
		t.Run(tc.ID, func(t *testing.T) {
			got, ok := doc.Rule(tc.ID)
			if !ok {
				t.Fatalf("missing rule %q", tc.ID)
			}
			if !cmp.Equal(got, tc.Want) {
				t.Error(cmp.Diff(got, tc.Want))
			}
		})
	}
}

func TestHasParametersMatchesMap(t *testing.T) {
	t.Parallel()
	ctx := test.Logging(t)
	doc := openFixture(ctx, t)
	for _, r := range doc.Rules("") {
		if r.HasParameters != (len(r.Parameters) > 0) {
			t.Errorf("%s: has_parameters %v with %d parameters", r.ID, r.HasParameters, len(r.Parameters))
		}
	}
}

func TestRuleDuplicateIDs(t *testing.T) {
	t.Parallel()
	ctx := test.Logging(t)
	doc := parseString(ctx, t, `<Benchmark xmlns="http://checklists.nist.gov/xccdf/1.2">
  <Profile id="p"><select idref="dup" selected="true"/></Profile>
  <Value id="xccdf_org.ssgproject.content_value_v"><value>1</value></Value>
  <Rule id="dup" severity="low"><title>first</title></Rule>
  <Rule id="dup" severity="high"><title>second</title>
    <check><check-export value-id="xccdf_org.ssgproject.content_value_v"/></check>
  </Rule>
</Benchmark>`)

	rs := doc.Rules("p")
	if got, want := len(rs), 2; got != want {
		t.Fatalf("got: %d rules, want: %d", got, want)
	}
	if got, want := []string{rs[0].Title, rs[1].Title}, []string{"first", "second"}; !cmp.Equal(got, want) {
		t.Error(cmp.Diff(got, want))
	}
	if rs[0].HasParameters || !rs[1].HasParameters {
		t.Errorf("parameters should follow each rule element: %v, %v", rs[0].HasParameters, rs[1].HasParameters)
	}
	// Lookups by id resolve to the first occurrence.
	r, _ := doc.Rule("dup")
	if got, want := r.Title, "first"; got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
	if got := doc.Parameters("dup"); len(got) != 0 {
		t.Errorf("unexpected parameters: %v", got)
	}
}

func TestRuleEmptySeverity(t *testing.T) {
	t.Parallel()
	ctx := test.Logging(t)
	doc := parseString(ctx, t, `<Benchmark xmlns="http://checklists.nist.gov/xccdf/1.2">
  <Rule id="r" severity=""><title></title><description>All <b>bold</b> text</description></Rule>
</Benchmark>`)
	r, ok := doc.Rule("r")
	if !ok {
		t.Fatal("missing rule")
	}
	// Present-but-empty is copied as-is, not defaulted.
	if got, want := r.Severity, scapdb.Severity(""); got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
	if got, want := r.Title, ""; got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
	if got, want := r.Description, "All bold text"; got != want {
		t.Errorf("got: %q, want: %q", got, want)
	}
}
