package ldap

import (
	"testing"
)

func TestDN(t *testing.T) {
	var r RFC4514

	for idx, dn := range []string{
		`uid=jesse,ou=People,o=example\, co`,
		`uid=jesse+uidNumber=5042,ou=People,o=example\, co`,
		`cn=example`,
		`l=z`,
		`l=xy`,
		`l=abc`,
		`UID=jsmith,DC=example,DC=net`,
		`OU=Sales+CN=J. Smith,DC=example,DC=net`,
		`CN=John Smith\, III,DC=example,DC=net`,
		`CN=Before\0dAfter,DC=example,DC=net`,
		`1.3.6.1.4.1.1466.0=#04024869,DC=example,DC=com`,
		`CN=Lu\C4\8Di\C4\87`,
		`CN=broken\?,DC=example,DC=com`,
	} {
		if _, err := r.DistinguishedName(dn); err != nil {
			t.Errorf("%s[%d] failed [%s]: %v", t.Name(), idx, dn, err)
		}
	}
}

func TestParseDN(t *testing.T) {
	dn, err := ParseDN(`uid=jesse,ou=People,dc=example,dc=com`)
	if err != nil {
		t.Fatalf("ParseDN failed: %v", err)
	}

	if dn.Attribute() != `uid` {
		t.Errorf("Attribute: want uid, got %s", dn.Attribute())
	}
	if dn.Value() != `jesse` {
		t.Errorf("Value: want jesse, got %s", dn.Value())
	}

	parent := dn.Parent()
	if parent.String() != `ou=People,dc=example,dc=com` {
		t.Errorf("Parent: got %s", parent.String())
	}

	base, err := ParseDN(`dc=example,dc=com`)
	if err != nil {
		t.Fatalf("ParseDN(base) failed: %v", err)
	}

	if !dn.EndsWith(base) {
		t.Errorf("EndsWith: expected dn to end with base")
	}
	if !base.StartsWith(base) {
		t.Errorf("StartsWith: expected base to start with itself")
	}

	chain, err := dn.Walk(base)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(chain) != 3 {
		t.Errorf("Walk: expected 3 links, got %d", len(chain))
	}
	if chain[0].String() != base.String() || chain[len(chain)-1].String() != dn.String() {
		t.Errorf("Walk: endpoints mismatch: %s .. %s", chain[0], chain[len(chain)-1])
	}

	other, _ := ParseDN(`dc=other,dc=com`)
	if _, err := dn.Walk(other); err == nil {
		t.Errorf("Walk: expected error for non-matching base")
	}

	if dn.GetParent(dn) != nil {
		t.Errorf("GetParent: expected nil when base equals dn")
	}
}

func TestDNEqualAndNormalize(t *testing.T) {
	a, err := ParseDN(`UID=Jesse,OU=People,DC=Example,DC=Com`)
	if err != nil {
		t.Fatalf("ParseDN(a) failed: %v", err)
	}
	b, err := ParseDN(`uid=jesse,ou=people,dc=example,dc=com`)
	if err != nil {
		t.Fatalf("ParseDN(b) failed: %v", err)
	}

	if !a.Equal(b) {
		t.Errorf("Equal: expected case-insensitive match")
	}

	multiA, err := ParseDN(`ou=Sales+cn=J. Smith,dc=example,dc=com`)
	if err != nil {
		t.Fatalf("ParseDN(multiA) failed: %v", err)
	}
	multiB, err := ParseDN(`cn=J. Smith+ou=Sales,dc=example,dc=com`)
	if err != nil {
		t.Fatalf("ParseDN(multiB) failed: %v", err)
	}
	if !multiA.Equal(multiB) {
		t.Errorf("Equal: expected multi-valued RDN permutation tolerance")
	}

	normA, err := Normalize(a.String())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	normAgain, err := Normalize(normA)
	if err != nil {
		t.Fatalf("Normalize (idempotent pass) failed: %v", err)
	}
	if normA != normAgain {
		t.Errorf("Normalize: not idempotent: %q vs %q", normA, normAgain)
	}

	if a.Hash() != a.Hash() {
		t.Errorf("Hash: expected stable hash for same DN")
	}
}

func TestCompose(t *testing.T) {
	base, err := ParseDN(`dc=example,dc=com`)
	if err != nil {
		t.Fatalf("ParseDN(base) failed: %v", err)
	}

	composed, err := Compose([2]string{`ou`, `People`}, base)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if composed.String() != `ou=People,dc=example,dc=com` {
		t.Errorf("Compose: got %s", composed.String())
	}
}

func TestEscapeDN(t *testing.T) {
	esc := EscapeDN(`Smith, J.`)
	if esc != `Smith\2c J.` {
		t.Errorf("EscapeDN: got %q", esc)
	}
}
