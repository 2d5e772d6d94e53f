package ldap

/*
OctetString implements [§ 3.3.25 of RFC 4517]:

	OctetString = *OCTET

[§ 3.3.25 of RFC 4517]: https://datatracker.ietf.org/doc/html/rfc4517#section-3.3.25
*/
type OctetString []byte

// IsZero returns true if the receiver is a nil OctetString.
func (r OctetString) IsZero() bool { return r == nil }

// String returns the string representation of the receiver instance.
func (r OctetString) String() string {
	return string(r)
}

// Len returns the integer length of the receiver instance.
func (r OctetString) Len() int { return len(r) }

// Equal performs an octet-for-octet comparison against other, per
// [§ 4.2.27 of RFC 4517] (octetStringMatch, OID 2.5.13.17).
//
// [§ 4.2.27 of RFC 4517]: https://datatracker.ietf.org/doc/html/rfc4517#section-4.2.27
func (r OctetString) Equal(other OctetString) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if r[i] != other[i] {
			return false
		}
	}
	return true
}

// Compare performs a byte-lexicographic ordering comparison against other,
// returning -1, 0 or 1.
func (r OctetString) Compare(other OctetString) int {
	mLen := len(r)
	if len(other) < mLen {
		mLen = len(other)
	}

	for i := 0; i < mLen; i++ {
		switch {
		case r[i] < other[i]:
			return -1
		case r[i] > other[i]:
			return 1
		}
	}

	switch {
	case len(r) < len(other):
		return -1
	case len(r) > len(other):
		return 1
	}

	return 0
}

/*
OctetString returns an instance of [OctetString] alongside an error
following an analysis of x in the context of an Octet String.
*/
func (r RFC4517) OctetString(x any) (OctetString, error) {
	return marshalOctetString(x)
}

func marshalOctetString(x any) (oct OctetString, err error) {
	raw, err := assertOctetString(x)
	if err == nil {
		oct = OctetString(raw)
	}

	return
}

func assertOctetString(in any) (raw []byte, err error) {
	switch tv := in.(type) {
	case []byte:
		raw = tv
	case OctetString:
		raw = []byte(tv)
	case string:
		raw = []byte(tv)
	default:
		err = errorBadType("OctetString")
	}

	return
}
