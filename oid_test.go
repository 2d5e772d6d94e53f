package ldap

/*
NOTE: a bulk of the desirable test cases are already handled in
JesseCoretta/go-objectid, which is imported.
*/

import (
	"testing"
)

func TestOID(t *testing.T) {
	var r RFC4512

	for idx, raw := range []string{
		`1.3.6.1.4.1.56521`,
		`cn`,
		`2.5.4.3`,
		`l`,
	} {
		if err := r.OID(raw); err != nil {
			t.Errorf("%s[%d] failed: %v\n", t.Name(), idx, err)
		}
	}
}

func TestNumericOID(t *testing.T) {
	var r RFC4512

	for idx, raw := range []string{
		`1.3.6.1.4.1.56521`,
		`2.5.4.3`,
	} {
		if _, err := r.NumericOID(raw); err != nil {
			t.Errorf("%s[%d] failed: %v\n", t.Name(), idx, err)
		}
	}
}

func TestDescriptor(t *testing.T) {
	var r RFC4512

	for idx, raw := range []string{
		`cn`,
		`sn`,
		`randomAttr-v2`,
		`l`,
		`n`,
	} {
		if _, err := r.Descriptor(raw); err != nil {
			t.Errorf("%s[%d] failed: %v\n", t.Name(), idx, err)
		}
	}
}

func TestOID_codecov(t *testing.T) {
	var x RFC4517
	if _, err := x.NumericOID(`2.5.4.3`); err != nil {
		t.Errorf("%s failed: %v", t.Name(), err)
	}
	x.Descriptor(`cn`)
	if _, err := x.Descriptor(`cn#`); err == nil {
		t.Errorf("%s: expected error for trailing '#'", t.Name())
	}
	if _, err := x.Descriptor(`c--n`); err == nil {
		t.Errorf("%s: expected error for consecutive hyphens", t.Name())
	}
	if _, err := x.Descriptor(`c@n`); err == nil {
		t.Errorf("%s: expected error for '@'", t.Name())
	}

	var r RFC4512
	if err := r.OID(`not a valid oid or descr !!`); err == nil {
		t.Errorf("%s: expected error for malformed input", t.Name())
	}
}
