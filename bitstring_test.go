package ldap

import "testing"

func TestBitString(t *testing.T) {
	var r RFC4517

	for idx, raw := range []string{
		`'0101'B`,
		`'1'B`,
		`'0000'B`,
	} {
		if bs, err := r.BitString(raw); err != nil {
			t.Errorf("%s[%d] failed: %v", t.Name(), idx, err)
		} else if got := bs.String(); got != raw {
			t.Errorf("%s[%d] failed:\nwant: %s\ngot:  %s", t.Name(), idx, raw, got)
		}
	}

	for idx, raw := range []string{
		``,
		`0101B`,
		`'0102'B`,
		`''B`,
	} {
		if _, err := r.BitString(raw); err == nil {
			t.Errorf("%s[%d]: expected error for malformed input %q", t.Name(), idx, raw)
		}
	}
}
