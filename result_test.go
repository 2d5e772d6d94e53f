package ldap

import "testing"

func TestResult_SuccessAndErr(t *testing.T) {
	ok := Result{Code: 0}
	if !ok.Success() {
		t.Fatalf("%s failed: expected Code 0 to be Success", t.Name())
	}
	if err := ok.Err(); err != nil {
		t.Fatalf("%s failed: expected nil error, got %v", t.Name(), err)
	}

	fail := Result{Code: 32, Message: "no such object", MatchedDN: "dc=example,dc=com"}
	if fail.Success() {
		t.Fatalf("%s failed: expected Code 32 to not be Success", t.Name())
	}
	err := fail.Err()
	if err == nil {
		t.Fatalf("%s failed: expected non-nil error", t.Name())
	}
	if le, ok := err.(*Error); !ok || le.Kind != KindNoSuchObject {
		t.Fatalf("%s failed: expected KindNoSuchObject, got %v", t.Name(), err)
	}
}

func TestEntry_GetAndGetOne(t *testing.T) {
	attrs := NewAttributes()
	attrs.Set("cn", "Jesse", "Coretta")

	dn, err := ParseDN("cn=Jesse,dc=example,dc=com")
	if err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	}

	e := &Entry{DN: dn, Attributes: attrs}

	if got := e.GetOne("CN"); got != "Jesse" {
		t.Errorf("%s failed: want Jesse, got %s", t.Name(), got)
	}
	if got := e.Get("cn"); len(got) != 2 {
		t.Errorf("%s failed: want 2 values, got %d", t.Name(), len(got))
	}
	if got := e.GetOne("sn"); got != `` {
		t.Errorf("%s failed: want empty string for absent attribute, got %q", t.Name(), got)
	}

	var nilEntry *Entry
	if got := nilEntry.Get("cn"); got != nil {
		t.Errorf("%s failed: nil Entry.Get should return nil, got %v", t.Name(), got)
	}
	if got := nilEntry.GetOne("cn"); got != `` {
		t.Errorf("%s failed: nil Entry.GetOne should return empty string, got %q", t.Name(), got)
	}
}

func TestSearchResult_Count(t *testing.T) {
	var nilResult *SearchResult
	if got := nilResult.Count(); got != 0 {
		t.Errorf("%s failed: nil SearchResult.Count want 0, got %d", t.Name(), got)
	}

	dn, _ := ParseDN("dc=example,dc=com")
	res := &SearchResult{Entries: []*Entry{{DN: dn}, {DN: dn}, {DN: dn}}}
	if got := res.Count(); got != 3 {
		t.Errorf("%s failed: want 3, got %d", t.Name(), got)
	}
}
