package ldap

import (
	"errors"
	"testing"
)

func TestKindString(t *testing.T) {
	for idx, x := range []struct {
		Kind Kind
		Want string
	}{
		{KindNoSuchObject, "NoSuchObject"},
		{KindInvalidCredentials, "InvalidCredentials"},
		{KindNotUnique, "NotUnique"},
		{KindRuntimeErrorUnconnected, "RuntimeErrorUnconnected"},
		{Kind(9999), "Unknown"},
	} {
		if got := x.Kind.String(); got != x.Want {
			t.Errorf("%s[%d] failed: want %q, got %q", t.Name(), idx, x.Want, got)
		}
	}
}

func TestKindTransient(t *testing.T) {
	for idx, x := range []struct {
		Kind Kind
		Want bool
	}{
		{KindServerDown, true},
		{KindTimeout, true},
		{KindBusy, true},
		{KindInvalidCredentials, false},
		{KindNotUnique, false},
	} {
		if got := x.Kind.Transient(); got != x.Want {
			t.Errorf("%s[%d] failed: want %t, got %t", t.Name(), idx, x.Want, got)
		}
	}
}

func TestKindFromResultCode(t *testing.T) {
	for idx, x := range []struct {
		Code int
		Want Kind
	}{
		{0, KindUnknown},
		{32, KindNoSuchObject},
		{49, KindInvalidCredentials},
		{68, KindEntryAlreadyExists},
		{9001, KindOther},
	} {
		if got := KindFromResultCode(x.Code); got != x.Want {
			t.Errorf("%s[%d] failed: want %s, got %s", t.Name(), idx, x.Want, got)
		}
	}
}

func TestError_ErrorAndIs(t *testing.T) {
	err := newResultError(32, "no such object", "dc=example,dc=com", "extra info", nil)

	if err.Kind != KindNoSuchObject {
		t.Fatalf("%s failed: want Kind %s, got %s", t.Name(), KindNoSuchObject, err.Kind)
	}

	msg := err.Error()
	if stridx(msg, "no such object") < 0 || stridx(msg, "extra info") < 0 || stridx(msg, "dc=example,dc=com") < 0 {
		t.Fatalf("%s failed: unexpected message %q", t.Name(), msg)
	}

	if !errors.Is(err, &Error{Kind: KindNoSuchObject}) {
		t.Fatalf("%s failed: errors.Is did not match same Kind", t.Name())
	}
	if errors.Is(err, &Error{Kind: KindInvalidCredentials}) {
		t.Fatalf("%s failed: errors.Is matched different Kind", t.Name())
	}
}

func TestNewNotUniqueError(t *testing.T) {
	results := []Result{
		{MatchedDN: "cn=one,dc=example,dc=com"},
		{MatchedDN: "cn=two,dc=example,dc=com"},
	}

	err := newNotUniqueError(results)
	if err.Kind != KindNotUnique {
		t.Fatalf("%s failed: want Kind %s, got %s", t.Name(), KindNotUnique, err.Kind)
	}
	if len(err.Results) != 2 {
		t.Fatalf("%s failed: want 2 results, got %d", t.Name(), len(err.Results))
	}
}

func TestErrUnconnected(t *testing.T) {
	if !errors.Is(errUnconnected, &Error{Kind: KindRuntimeErrorUnconnected}) {
		t.Fatalf("%s failed: errUnconnected is not KindRuntimeErrorUnconnected", t.Name())
	}

	var c Conn
	if err := c.Close(); !errors.Is(err, errUnconnected) {
		t.Errorf("%s failed: zero-value Conn.Close want errUnconnected, got %v", t.Name(), err)
	}
	if _, err := c.Search(&SearchRequest{Filter: "(objectClass=*)"}); !errors.Is(err, errUnconnected) {
		t.Errorf("%s failed: zero-value Conn.Search want errUnconnected, got %v", t.Name(), err)
	}
}
