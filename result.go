package ldap

/*
result.go implements component F: the response wrappers handed back to a
caller once a protocol operation completes -- the outcome envelope common
to every LDAPResult-shaped response (§ 4.1.9 of RFC 4511), and the Entry /
SearchResult pair used by the Search operation, built atop the Attribute
map of component D and the DN model of component B.
*/

/*
Result implements the common LDAPResult fields shared by every non-search
response PDU, per [§ 4.1.9 of RFC 4511]:

	LDAPResult ::= SEQUENCE {
	     resultCode         ENUMERATED { ... },
	     matchedDN          LDAPDN,
	     diagnosticMessage  LDAPString,
	     referral           [3] Referral OPTIONAL }

[§ 4.1.9 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.1.9
*/
type Result struct {
	Code      int
	MatchedDN string
	Message   string
	Referrals []string
	Controls  []Control
}

// Success returns true if the receiver's Code is zero (the LDAP
// "success" result code).
func (r Result) Success() bool { return r.Code == 0 }

// Err returns an [*Error] describing the receiver, or nil if the
// receiver represents success.
func (r Result) Err() error {
	if r.Success() {
		return nil
	}
	return newResultError(r.Code, r.Message, r.MatchedDN, ``, r.Controls)
}

/*
Entry represents a single directory entry returned by a Search operation:
a DN and its associated [Attributes] map.
*/
type Entry struct {
	DN         *DN
	Attributes Attributes
}

// Get is a convenience shorthand for r.Attributes.Get(name).
func (e *Entry) Get(name string) []string {
	if e == nil || e.Attributes == nil {
		return nil
	}
	return e.Attributes.Get(name)
}

// GetOne returns the first value of name, or "" if absent.
func (e *Entry) GetOne(name string) string {
	vals := e.Get(name)
	if len(vals) == 0 {
		return ``
	}
	return vals[0]
}

/*
SearchResult aggregates every [Entry] and referral URL returned by a
Search operation, plus the controls carried by its terminating
SearchResultDone.
*/
type SearchResult struct {
	Entries   []*Entry
	Referrals []string
	Controls  []Control
}

// Count returns the number of entries in the receiver.
func (s *SearchResult) Count() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}
