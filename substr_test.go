package ldap

import (
	"testing"
)

func TestSubstringAssertion(t *testing.T) {
	var r RFC4517
	for idx, raw := range []string{
		`substring*substring`,
		`substri*ng*thing`,
		`*substring*substring*`,
		`*substr*ing*end`,
		`substring*substring*substring`,
		`subst*`,
		`*ubstr`,
	} {
		if ssa, err := r.SubstringAssertion(raw); err != nil {
			t.Errorf("%s[%d] failed: %v", t.Name(), idx, err)
		} else if got := ssa.String(); got != raw {
			t.Errorf("%s[%d] failed:\n\twant:%s\n\tgot: %s\n",
				t.Name(), idx, raw, got)
			t.Logf("RAW: %#v\n", ssa)
		}
	}
}

func TestSubstringAssertion_Matches(t *testing.T) {
	var r RFC4517
	ssa, err := r.SubstringAssertion(`sub*end`)
	if err != nil {
		t.Fatalf("SubstringAssertion failed: %v", err)
	}

	if !ssa.Matches(`subMiddleend`, true) {
		t.Errorf("Matches: expected match for subMiddleend")
	}
	if ssa.Matches(`SUBMIDDLE`, true) {
		t.Errorf("Matches: expected no match, missing final")
	}
	if !ssa.Matches(`SUBMIDDLEEND`, true) {
		t.Errorf("Matches: expected case-insensitive match")
	}
	if ssa.Matches(`SUBMIDDLEEND`, false) {
		t.Errorf("Matches: expected case-exact mismatch")
	}
}
