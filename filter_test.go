package ldap

import (
	"testing"
)

func TestInvalidFilter_String(t *testing.T) {
	f := invalidFilter{}
	if f.String() != `` {
		t.Errorf("%s failed: unable to print nil filter", t.Name())
	}
	if f.Choice() != `invalid` {
		t.Errorf("%s failed: want choice invalid, got %s", t.Name(), f.Choice())
	}
	if f.Len() != 0 {
		t.Errorf("%s failed: want length 0, got %d", t.Name(), f.Len())
	}
}

func TestFilter(t *testing.T) {
	var r RFC4515

	for idx, x := range []struct {
		Input  any
		Output string
		Choice string
		Length int
	}{
		{
			Input:  `(&(objectClass=*)(cn=Jesse))`,
			Output: `(&(objectClass=*)(cn=Jesse))`,
			Choice: `and`,
			Length: 2,
		},
		{
			Input:  `(&(objectClass=*)(|(cn=Jesse)(cn=Courtney)))`,
			Output: `(&(objectClass=*)(|(cn=Jesse)(cn=Courtney)))`,
			Choice: `and`,
			Length: 2,
		},
		{
			Input:  `(objectClass=top)`,
			Output: `(objectClass=top)`,
			Choice: `equalityMatch`,
			Length: 1,
		},
		{
			Input:  `(givenName~=Jessi)`,
			Output: `(givenName~=Jessi)`,
			Choice: `approxMatch`,
			Length: 1,
		},
		{
			Input:  `(n>=17485)`,
			Output: `(n>=17485)`,
			Choice: `greaterOrEqual`,
			Length: 1,
		},
		{
			Input:  `(cn=Babs Jensen)`,
			Output: `(cn=Babs Jensen)`,
			Choice: `equalityMatch`,
			Length: 1,
		},
		{
			Input:  `(!(cn=Tim Howes))`,
			Output: `(!(cn=Tim Howes))`,
			Choice: `not`,
			Length: 1,
		},
		{
			Input:  `(|(employeeID=123456)(sn=Jensen)(cn=Babs J*))`,
			Output: `(|(employeeID=123456)(sn=Jensen)(cn=Babs J*))`,
			Choice: `or`,
			Length: 3,
		},
		{
			Input:  `(o=univ*of*mich*)`,
			Output: `(o=univ*of*mich*)`,
			Choice: `substrings`,
			Length: 1,
		},
		{
			Input:  `(n<=17485)`,
			Output: `(n<=17485)`,
			Choice: `lessOrEqual`,
			Length: 1,
		},
		{
			Input:  `objectClass=top`,
			Output: `(objectClass=top)`,
			Choice: `equalityMatch`,
			Length: 1,
		},
		{
			Input:  `(givenName:=John)`,
			Output: `(givenName:=John)`,
			Choice: `extensibleMatch`,
			Length: 1,
		},
		{
			Input:  `(sn;lang-sl:dn:=Lučić)`,
			Output: `(sn;lang-sl:dn:=Lučić)`,
			Choice: `extensibleMatch`,
			Length: 1,
		},
		{
			Input:  `(givenName:caseExactMatch:=John)`,
			Output: `(givenName:caseExactMatch:=John)`,
			Choice: `extensibleMatch`,
			Length: 1,
		},
		{
			Input:  `(:caseExactMatch:=John)`,
			Output: `(:caseExactMatch:=John)`,
			Choice: `extensibleMatch`,
			Length: 1,
		},
		{
			Input:  ``,
			Output: `(objectClass=*)`,
			Choice: `present`,
			Length: 1,
		},
		{
			Input:  nil,
			Output: `(objectClass=*)`,
			Choice: `present`,
			Length: 1,
		},
	} {
		filter, err := r.Filter(x.Input)
		if err != nil {
			t.Errorf("%s[%d] parse check failed: %v", t.Name(), idx, err)
			continue
		}
		if got := filter.String(); got != x.Output {
			t.Errorf("%s[%d] string check failed:\nwant: %s\ngot:  %s",
				t.Name(), idx, x.Output, got)
			continue
		}
		if choice := filter.Choice(); choice != x.Choice {
			t.Errorf("%s[%d] choice check failed:\nwant: %s\ngot:  %s\n",
				t.Name(), idx, x.Choice, choice)
			continue
		}
		if l := filter.Len(); l != x.Length {
			t.Errorf("%s[%d] length check failed:\nwant: %d\ngot:  %d\n",
				t.Name(), idx, x.Length, l)
		}
	}
}

func TestFilter_malformed(t *testing.T) {
	var r RFC4515

	for idx, x := range []any{
		struct{}{},
		`(objectGUID=`,
	} {
		if _, err := r.Filter(x); err == nil {
			t.Errorf("%s[%d]: expected error for malformed input", t.Name(), idx)
		}
	}
}

func TestFilter_codecov(t *testing.T) {
	var r RFC4517
	if _, err := r.OID(`cn`); err != nil {
		t.Errorf("%s failed: %v", t.Name(), err)
	}

	splitFilterParts(``)
	splitFilterParts(`(a=b)(c=d)`)

	parseItemFilter(`4783`)
	parseItemFilter(`47=83`)
	parseExtensibleMatch(`a:dn:1.2.3.4`, `xxxx`)
	parseExtensibleMatch(`a`, `xxxx`)
	parseExtensibleMatch(`:mr`, `xxxx`)
}
