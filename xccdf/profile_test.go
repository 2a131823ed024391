package xccdf

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quay/scapdb"
	"github.com/quay/scapdb/test"
)

func TestInferVersion(t *testing.T) {
	t.Parallel()
	tt := []struct {
		In   string
		Want string
	}{
		{In: "", Want: scapdb.UnknownVersion},
		{In: "no version here", Want: scapdb.UnknownVersion},
		{In: "Benchmark v3.0.0 supersedes v3.0", Want: "v3.0.0"},
		{In: "Benchmark v3.0 then v3.0.0", Want: "v3.0.0"},
		{In: "DISA STIG Version 1.2.3", Want: "v1.2.3"},
		{In: "disa stig VERSION 2.0.1", Want: "v2.0.1"},
		{In: "Benchmark v1.2", Want: "v1.2"},
		{In: "revision1.2 is not a version", Want: scapdb.UnknownVersion},
		{In: "Version 2 release 1", Want: scapdb.UnknownVersion},
	}
	for _, tc := range tt {
		t.Run(tc.In, func(t *testing.T) {
			got := InferVersion(tc.In)
			if got != tc.Want {
				t.Errorf("got: %q, want: %q", got, tc.Want)
			}
			if again := InferVersion(tc.In); again != got {
				t.Errorf("not idempotent: %q != %q", again, got)
			}
		})
	}
}

func TestProfiles(t *testing.T) {
	t.Parallel()
	ctx := test.Logging(t)
	doc := openFixture(ctx, t)

	got := doc.Profiles()
	want := []scapdb.Profile{
		{
			ID:    profileCIS,
			Title: "CIS Test OS Benchmark for Level 1 - Server",
			Description: "This profile defines a baseline that aligns to the \"Level 1 - Server\"\n" +
				"configuration from the Center for Internet Security® Test OS Benchmark™, v3.0.0, which supersedes v3.0 of the benchmark.",
			Version:         "v3.0.0",
			RuleCount:       3,
			SelectedRuleIDs: []string{ruleA, ruleB, "xccdf_org.ssgproject.content_rule_missing"},
		},
		{
			ID:              profileSTIG,
			Title:           "DISA STIG for Test OS",
			Description:     "This profile contains configuration checks that align to the\nDISA STIG for Test OS Version 1.2.3.",
			Version:         "v1.2.3",
			RuleCount:       2,
			SelectedRuleIDs: []string{ruleB, ruleC},
		},
	}
	if !cmp.Equal(got, want) {
		t.Error(cmp.Diff(got, want))
	}
}

func TestProfileDefaults(t *testing.T) {
	t.Parallel()
	ctx := test.Logging(t)
	doc := parseString(ctx, t, `<Benchmark xmlns="http://checklists.nist.gov/xccdf/1.2">
  <Profile id="bare">
    <select idref="nested-ok" selected="true"/>
    <x:wrapper xmlns:x="urn:example"><select idref="nested" selected="true"/></x:wrapper>
  </Profile>
</Benchmark>`)
	got := doc.Profiles()
	want := []scapdb.Profile{{
		ID:              "bare",
		Title:           "Unknown",
		Description:     "",
		Version:         scapdb.UnknownVersion,
		RuleCount:       2,
		SelectedRuleIDs: []string{"nested-ok", "nested"},
	}}
	if !cmp.Equal(got, want) {
		t.Error(cmp.Diff(got, want))
	}
}

func TestSelectionUnknown(t *testing.T) {
	t.Parallel()
	ctx := test.Logging(t)
	doc := openFixture(ctx, t)
	if _, ok := doc.Selection("xccdf_org.ssgproject.content_profile_nope"); ok {
		t.Error("unexpected selection for unknown profile")
	}
}
