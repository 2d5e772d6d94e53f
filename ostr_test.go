package ldap

import (
	"fmt"
	"testing"
)

func ExampleOctetString_IsZero() {
	var oct OctetString
	fmt.Println(oct.IsZero())
	// Output: true
}

func TestOctetString(t *testing.T) {
	var r RFC4517

	for _, raw := range []string{
		``,
		`This is an OctetString.`,
	} {
		if oct, err := r.OctetString(raw); err != nil {
			t.Errorf("%s failed: %v", t.Name(), err)
		} else if got := oct.String(); raw != got {
			t.Errorf("%s failed:\nwant: %s\ngot:  %s",
				t.Name(), raw, got)
		}
	}

	if _, err := r.OctetString(42); err == nil {
		t.Errorf("%s: expected error for incompatible type", t.Name())
	}

	octet1 := OctetString{0x01, 0x02, 0x02}
	octet2 := OctetString{0x01, 0x02, 0x02}
	if !octet1.Equal(octet2) {
		t.Errorf("%s failed: expected equal octet strings", t.Name())
	}

	octet3 := OctetString{0x01, 0x02, 0x03}
	if octet1.Equal(octet3) {
		t.Errorf("%s failed: expected unequal octet strings", t.Name())
	}

	if octet1.Compare(octet3) >= 0 {
		t.Errorf("%s failed: expected octet1 < octet3", t.Name())
	}
	if octet3.Compare(octet1) <= 0 {
		t.Errorf("%s failed: expected octet3 > octet1", t.Name())
	}
	if octet1.Compare(octet2) != 0 {
		t.Errorf("%s failed: expected octet1 == octet2", t.Name())
	}

	short := OctetString{0x01}
	long := OctetString{0x01, 0x02}
	if short.Compare(long) >= 0 {
		t.Errorf("%s failed: expected shorter prefix to sort first", t.Name())
	}
}
