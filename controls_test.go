package ldap

import (
	"testing"

	ber "github.com/go-asn1-ber/asn1-ber"
)

func TestControl_EncodeDecode(t *testing.T) {
	c := Control{Type: OIDManageDsaIT, Criticality: true, Value: []byte("payload")}

	pkt := c.encode()
	decoded, err := decodeControl(pkt)
	if err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	}

	if decoded.Type != c.Type || decoded.Criticality != c.Criticality || string(decoded.Value) != string(c.Value) {
		t.Errorf("%s failed: round trip mismatch: got %+v", t.Name(), decoded)
	}

	if decoded.String() != OIDManageDsaIT+`*` {
		t.Errorf("%s failed: String() mismatch: got %q", t.Name(), decoded.String())
	}
}

func TestControl_InvalidOID(t *testing.T) {
	pkt := Control{Type: "notAnOID"}.encode()
	if _, err := decodeControl(pkt); err == nil {
		t.Fatalf("%s failed: expected error for non-numeric controlType", t.Name())
	}
}

func TestEncodeDecodeControls(t *testing.T) {
	ctls := []Control{
		{Type: OIDManageDsaIT, Criticality: true},
		PagedResultsControl{PageSize: 10, Cookie: []byte("cookie")}.Control(),
	}

	pkt := encodeControls(ctls)
	decoded, err := decodeControls(pkt)
	if err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	}
	if len(decoded) != 2 {
		t.Fatalf("%s failed: want 2 controls, got %d", t.Name(), len(decoded))
	}

	if nilDecoded, err := decodeControls(nil); err != nil || nilDecoded != nil {
		t.Errorf("%s failed: decodeControls(nil) want (nil, nil), got (%v, %v)", t.Name(), nilDecoded, err)
	}
	if encodeControls(nil) != nil {
		t.Errorf("%s failed: encodeControls(nil) want nil packet", t.Name())
	}
}

func TestPagedResultsControl(t *testing.T) {
	p := PagedResultsControl{PageSize: 50, Cookie: []byte("abc")}
	c := p.Control()

	if c.Type != OIDPagedResults {
		t.Fatalf("%s failed: wrong control type %q", t.Name(), c.Type)
	}

	back, err := ParsePagedResultsControl(c)
	if err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	}
	if back.PageSize != 50 || string(back.Cookie) != "abc" {
		t.Errorf("%s failed: round trip mismatch: got %+v", t.Name(), back)
	}

	if _, err = ParsePagedResultsControl(Control{Type: OIDManageDsaIT}); err == nil {
		t.Errorf("%s failed: expected error for wrong control type", t.Name())
	}
}

func TestManageDsaITControl(t *testing.T) {
	c := ManageDsaITControl{}.Control()
	if c.Type != OIDManageDsaIT || !c.Criticality {
		t.Errorf("%s failed: got %+v", t.Name(), c)
	}
}

func TestServerSideSortControl(t *testing.T) {
	s := ServerSideSortControl{Keys: []SortKey{
		{AttributeType: "cn"},
		{AttributeType: "sn", MatchingRule: "caseIgnoreMatch", Reverse: true},
	}}
	c := s.Control()
	if c.Type != OIDServerSideSort {
		t.Fatalf("%s failed: wrong control type %q", t.Name(), c.Type)
	}
	if len(c.Value) == 0 {
		t.Fatalf("%s failed: empty control value", t.Name())
	}
}

func TestSortResultControl(t *testing.T) {
	inner := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "SortResult")
	inner.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagEnumerated, int64(0), "sortResult"))
	c := Control{Type: OIDSortResult, Value: inner.Bytes()}

	back, err := ParseSortResultControl(c)
	if err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	}
	if back.Code != 0 {
		t.Errorf("%s failed: want Code 0, got %d", t.Name(), back.Code)
	}
}

func TestVLVControls(t *testing.T) {
	req := VLVRequestControl{BeforeCount: 1, AfterCount: 2, Offset: 5, ContentCount: 100}
	c := req.Control()
	if c.Type != OIDVLVRequest {
		t.Fatalf("%s failed: wrong control type %q", t.Name(), c.Type)
	}
}

func TestSubtreeDeleteControl(t *testing.T) {
	c := SubtreeDeleteControl{}.Control()
	if c.Type != OIDSubtreeDelete || !c.Criticality {
		t.Errorf("%s failed: got %+v", t.Name(), c)
	}
}

func TestNoOpControl(t *testing.T) {
	c := NoOpControl{}.Control()
	if c.Type != OIDNoOp || !c.Criticality {
		t.Errorf("%s failed: got %+v", t.Name(), c)
	}
}

func TestPasswordPolicyControl(t *testing.T) {
	c := PasswordPolicyControl{}.Control()
	if c.Type != OIDPasswordPolicy {
		t.Errorf("%s failed: got %+v", t.Name(), c)
	}
}

func TestAssertionControl(t *testing.T) {
	var rfc RFC4515
	f, err := rfc.Filter("(objectClass=*)")
	if err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	}

	c := AssertionControl{Filter: f}.Control()
	if c.Type != OIDAssertion || !c.Criticality {
		t.Errorf("%s failed: got %+v", t.Name(), c)
	}
}

func TestPreAndPostReadControl(t *testing.T) {
	pre := PreReadControl{Attributes: []string{"cn", "sn"}}.Control()
	if pre.Type != OIDPreReadEntry {
		t.Errorf("%s failed: got %+v", t.Name(), pre)
	}

	post := PostReadControl{Attributes: []string{"cn"}}.Control()
	if post.Type != OIDPostReadEntry {
		t.Errorf("%s failed: got %+v", t.Name(), post)
	}
}

func TestProxyAuthorizationControl(t *testing.T) {
	c := ProxyAuthorizationControl{AuthzID: "dn:cn=admin,dc=example,dc=com"}.Control()
	if c.Type != OIDProxyAuthorization || string(c.Value) != "dn:cn=admin,dc=example,dc=com" {
		t.Errorf("%s failed: got %+v", t.Name(), c)
	}
}

func TestRelaxRulesAndDontUseCopyControls(t *testing.T) {
	if c := (RelaxRulesControl{}).Control(); c.Type != OIDRelaxRules || !c.Criticality {
		t.Errorf("%s failed: RelaxRulesControl got %+v", t.Name(), c)
	}
	if c := (DontUseCopyControl{}).Control(); c.Type != OIDDontUseCopy || !c.Criticality {
		t.Errorf("%s failed: DontUseCopyControl got %+v", t.Name(), c)
	}
}
