package ldap

import "testing"

func TestAttributes(t *testing.T) {
	attrs := NewAttributes()

	attrs.Set(`CN`, `Babs Jensen`)
	attrs.Add(`cn`, `Babs J Jensen`)
	attrs.Set(`sn`, `Jensen`)

	if got := attrs.Get(`cn`); len(got) != 2 {
		t.Fatalf("%s failed: want 2 cn values, got %d", t.Name(), len(got))
	}

	if got := attrs.GetOne(`SN`); got != `Jensen` {
		t.Errorf("%s failed:\nwant: Jensen\ngot:  %s", t.Name(), got)
	}

	if !attrs.Has(`Cn`) {
		t.Errorf("%s failed: expected Has(Cn) true", t.Name())
	}

	names := attrs.Names()
	if len(names) != 2 || names[0] != `CN` || names[1] != `sn` {
		t.Errorf("%s failed: unexpected name order/casing: %#v", t.Name(), names)
	}

	attrs.Delete(`CN`)
	if attrs.Has(`cn`) {
		t.Errorf("%s failed: expected cn removed", t.Name())
	}
	if attrs.Len() != 1 {
		t.Errorf("%s failed: want 1 remaining attribute, got %d", t.Name(), attrs.Len())
	}
}

func TestAttributes_zeroValue(t *testing.T) {
	var attrs Attributes
	if attrs.Get(`cn`) != nil {
		t.Errorf("%s failed: expected nil from zero-value Attributes", t.Name())
	}
	attrs.Set(`cn`, `x`)
	if got := attrs.GetOne(`cn`); got != `x` {
		t.Errorf("%s failed: zero-value Set/Get round trip failed", t.Name())
	}
}
