package ldap

import "testing"

func TestAttributeBuilder(t *testing.T) {
	f := And(Attribute(`objectClass`).Present(), Attribute(`cn`).Eq(`Jesse`))
	if got, want := f.String(), `(&(objectClass=*)(cn=Jesse))`; got != want {
		t.Errorf("%s failed:\nwant: %s\ngot:  %s", t.Name(), want, got)
	}

	if got, want := Or(Attribute(`sn`).Eq(`Jensen`), Attribute(`cn`).Eq(`Babs`)).String(),
		`(|(sn=Jensen)(cn=Babs))`; got != want {
		t.Errorf("%s failed:\nwant: %s\ngot:  %s", t.Name(), want, got)
	}

	if got, want := Not(Attribute(`cn`).Eq(`Tim Howes`)).String(), `(!(cn=Tim Howes))`; got != want {
		t.Errorf("%s failed:\nwant: %s\ngot:  %s", t.Name(), want, got)
	}

	sub := Attribute(`o`).Substrings(`univ`, []string{`of`}, `mich`)
	if got, want := sub.String(), `(o=univ*of*mich)`; got != want {
		t.Errorf("%s failed:\nwant: %s\ngot:  %s", t.Name(), want, got)
	}

	ext := Attribute(`sn`).Extensible(`caseExactMatch`, `John`, false)
	if got, want := ext.String(), `(sn:caseExactMatch:=John)`; got != want {
		t.Errorf("%s failed:\nwant: %s\ngot:  %s", t.Name(), want, got)
	}
}

func TestWalk(t *testing.T) {
	f := And(
		Attribute(`objectClass`).Present(),
		Or(Attribute(`cn`).Eq(`Jesse`), Attribute(`cn`).Eq(`Courtney`)),
	)

	var preOrder []string
	Walk(f, PreOrder, func(node Filter) bool {
		preOrder = append(preOrder, node.Choice())
		return true
	})

	want := []string{`and`, `present`, `or`, `equalityMatch`, `equalityMatch`}
	if len(preOrder) != len(want) {
		t.Fatalf("%s failed: want %d nodes, got %d (%v)", t.Name(), len(want), len(preOrder), preOrder)
	}
	for i := range want {
		if preOrder[i] != want[i] {
			t.Errorf("%s[%d] failed:\nwant: %s\ngot:  %s", t.Name(), i, want[i], preOrder[i])
		}
	}

	var count int
	Walk(f, PostOrder, func(Filter) bool {
		count++
		return true
	})
	if count != len(want) {
		t.Errorf("%s failed: post-order visited %d nodes, want %d", t.Name(), count, len(want))
	}
}

func TestPretty(t *testing.T) {
	f := And(Attribute(`objectClass`).Present(), Attribute(`cn`).Eq(`Jesse`))
	got := Pretty(f, `  `)
	want := "(&\n  (objectClass=*)\n  (cn=Jesse)\n)"
	if got != want {
		t.Errorf("%s failed:\nwant: %q\ngot:  %q", t.Name(), want, got)
	}
}

func TestFilterBERRoundTrip(t *testing.T) {
	var r RFC4515

	for idx, raw := range []string{
		`(&(objectClass=*)(cn=Jesse))`,
		`(|(sn=Jensen)(cn=Babs J*))`,
		`(!(cn=Tim Howes))`,
		`(n>=17485)`,
		`(n<=17485)`,
		`(givenName~=Jessi)`,
		`(o=univ*of*mich*)`,
		`(givenName:caseExactMatch:=John)`,
	} {
		f, err := r.Filter(raw)
		if err != nil {
			t.Fatalf("%s[%d] parse failed: %v", t.Name(), idx, err)
		}

		pkt := EncodeFilter(f)
		decoded, err := DecodeFilter(pkt)
		if err != nil {
			t.Errorf("%s[%d] decode failed: %v", t.Name(), idx, err)
			continue
		}

		if got, want := decoded.String(), f.String(); got != want {
			t.Errorf("%s[%d] round trip mismatch:\nwant: %s\ngot:  %s", t.Name(), idx, want, got)
		}
	}
}
