package ldap

import (
	"testing"
)

func TestSearchScope(t *testing.T) {
	tests := []struct {
		Scope any
		Valid bool
	}{
		{
			Scope: 0,
			Valid: true,
		},
		{
			Scope: 1,
			Valid: true,
		},
		{
			Scope: "baseObject",
			Valid: true,
		},
		{
			Scope: 1,
			Valid: true,
		},
		{
			Scope: "onelevel",
			Valid: true,
		},
		{
			Scope: 2,
			Valid: true,
		},
		{
			Scope: "subtree",
			Valid: true,
		},
		{
			Scope: 3,
			Valid: true,
		},
		{
			Scope: "children",
			Valid: true,
		},
		{
			Scope: "subordinate",
			Valid: true,
		},
		{
			Scope: 5,
		},
		{
			Scope: "onelivel",
		},
	}

	var r RFC4511
	for idx, obj := range tests {
		s, err := r.SearchScope(obj.Scope)
		if obj.Valid {
			if err != nil {
				t.Errorf("%s[%d] failed: %v", t.Name(), idx, err)
				return
			} else if s.String() == badSearchScope {
				t.Errorf("%s[%d] failed: bogus scope", t.Name(), idx)
				return
			}
		} else if err == nil {
			t.Errorf("%s[%d] failed: expected error, got nil", t.Name(), idx)
			return
		}
	}
}

func TestSearchScope_Wire(t *testing.T) {
	for idx, x := range []struct {
		Scope SearchScope
		Wire  int64
	}{
		{ScopeBaseObject, 0},
		{ScopeSingleLevel, 1},
		{ScopeSubtree, 2},
		{ScopeChildren, 3},
		{noScope, -1},
	} {
		if got := x.Scope.Wire(); got != x.Wire {
			t.Errorf("%s[%d] failed: want %d, got %d", t.Name(), idx, x.Wire, got)
		}
		if x.Wire >= 0 {
			if back := scopeFromWire(x.Wire); back != x.Scope {
				t.Errorf("%s[%d] round trip failed: want %v, got %v", t.Name(), idx, x.Scope, back)
			}
		}
	}

	if scopeFromWire(99) != noScope {
		t.Errorf("%s failed: expected noScope for unrecognized wire value", t.Name())
	}
}
