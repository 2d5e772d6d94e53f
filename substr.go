package ldap

/*
SubstringAssertion implements the Substring Assertion.

From [§ 3.3.30 of RFC 4517]:

	SubstringAssertion = [ initial ] any [ final ]

	initial  = substring
	any      = ASTERISK *(substring ASTERISK)
	final    = substring
	ASTERISK = %x2A  ; asterisk ("*")

	substring           = 1*substring-character
	substring-character = %x00-29
	                      / (%x5C "2A")  ; escaped "*"
	                      / %x2B-5B
	                      / (%x5C "5C")  ; escaped "\"
	                      / %x5D-7F
	                      / UTFMB

From [§ 2 of RFC 4515]:

	SubstringFilter ::= SEQUENCE {
	    type    AttributeDescription,
	    -- initial and final can occur at most once
	    substrings    SEQUENCE SIZE (1..MAX) OF substring CHOICE {
	     initial        [0] AssertionValue,
	     any            [1] AssertionValue,
	     final          [2] AssertionValue } }

From [§ 3 of RFC 4515]:

	initial = assertionvalue
	any     = ASTERISK *(assertionvalue ASTERISK)
	final   = assertionvalue

[§ 2 of RFC 4515]: https://datatracker.ietf.org/doc/html/rfc4515#section-2
[§ 3 of RFC 4515]: https://datatracker.ietf.org/doc/html/rfc4515#section-3
[§ 3.3.30 of RFC 4517]: https://datatracker.ietf.org/doc/html/rfc4517#section-3.3.30
*/
type SubstringAssertion struct {
	Initial AssertionValue `asn1:"tag:0"`
	Any     AssertionValue `asn1:"tag:1"`
	Final   AssertionValue `asn1:"tag:2"`
}

// IsZero returns true if no part of the receiver holds a value.
func (r SubstringAssertion) IsZero() bool {
	return len(r.Initial) == 0 &&
		len(r.Any) == 0 &&
		len(r.Final) == 0
}

/*
String returns the string representation of the receiver instance.
*/
func (r SubstringAssertion) String() (s string) {
	Any := func() string {
		if len(r.Any) > 0 {
			return `*` + r.Any.String() + `*`
		}
		return `*`
	}

	if !r.IsZero() {
		bld := newStrBuilder()

		if len(r.Initial) > 0 {
			bld.WriteString(r.Initial.String())
			bld.WriteString(Any())
			if len(r.Final) > 0 {
				bld.WriteString(r.Final.String())
			}
		} else if len(r.Final) > 0 {
			bld.WriteString(Any())
			bld.WriteString(r.Final.String())
		} else {
			// If a star is the only value,
			// don't save anything.
			bld.WriteString(Any())
		}

		s = bld.String()
	}

	return
}

/*
SubstringAssertion returns an error following an analysis of x in the
context of a Substring Assertion.
*/
func (r RFC4517) SubstringAssertion(x any) (SubstringAssertion, error) {
	return marshalSubstringAssertion(x)
}

func marshalSubstringAssertion(z any) (ssa SubstringAssertion, err error) {
	var x string
	if x, err = assertSubstringAssertion(z); err != nil {
		return
	}

	x = trimS(x)
	f := hasPfx(x, `*`)
	l := hasSfx(x, `*`)
	if cntns(x, `**`) {
		err = errorTxt("SubstringAssertion cannot contain consecutive asterisks")
		return
	} else if !cntns(x, `*`) {
		err = errorTxt("SubstringAssertion requires at least one asterisk")
		return
	}

	if f && l {
		// Any only
		ssa.Any, err = substrProcess1(x)
	} else if f && !l {
		// Final + Any
		ssa.Any, ssa.Final, err = substrProcess2(x)
	} else if !f && l {
		// Initial + Any
		ssa.Initial, ssa.Any, err = substrProcess3(x)
	} else if !f && !l {
		ssa.Initial, ssa.Any, ssa.Final, err = substrProcess4(x)
	}

	return
}

// assertionValueRunes verifies that s contains no stray, unescaped NUL
// bytes -- the one substring-character constraint from RFC4517 §3.3.30
// that survives unescaping.
func assertionValueRunes(s string) (err error) {
	for _, r := range s {
		if r == 0x00 {
			err = errorTxt("SubstringAssertion: NUL byte in substring component")
			break
		}
	}
	return
}

func substrProcess1(x string) (a AssertionValue, err error) {
	z := x[1 : len(x)-1]
	sp := split(z, `*`)
	asp := join(sp, ``)
	if err = assertionValueRunes(asp); err == nil {
		a = AssertionValue(z)
	}

	return
}

func substrProcess2(x string) (a, f AssertionValue, err error) {
	z := x[1:]
	sp := split(z, `*`)
	for idx := 0; idx < len(sp) && err == nil; idx++ {
		err = assertionValueRunes(sp[idx])
	}

	if len(sp) == 1 {
		f = AssertionValue(sp[len(sp)-1])
	} else {
		a = AssertionValue(join(sp[:len(sp)-1], `*`))
		f = AssertionValue(sp[len(sp)-1])
	}

	return
}

func substrProcess3(x string) (i, a AssertionValue, err error) {
	z := x[:len(x)-1]
	sp := split(z, `*`)
	for idx := 0; idx < len(sp) && err == nil; idx++ {
		err = assertionValueRunes(sp[idx])
	}

	if len(sp) == 1 {
		i = AssertionValue(sp[0])
	} else {
		i = AssertionValue(sp[0])
		a = AssertionValue(join(sp[1:], `*`))
	}

	return
}

func substrProcess4(x string) (i, a, f AssertionValue, err error) {
	sp := split(x, `*`)
	for idx := 0; idx < len(sp) && err == nil; idx++ {
		err = assertionValueRunes(sp[idx])
	}

	switch len(sp) {
	case 0, 1:
		err = errorTxt("SubstringAssertion requires at least one asterisk")
	case 2:
		i = AssertionValue(sp[0])
		f = AssertionValue(sp[1])
	default:
		i = AssertionValue(sp[0])
		a = AssertionValue(join(sp[1:len(sp)-1], `*`))
		f = AssertionValue(sp[len(sp)-1])
	}

	return
}

func assertSubstringAssertion(x any) (value string, err error) {
	switch tv := x.(type) {
	case string:
		value = tv
	case []byte:
		value = string(tv)
	case SubstringAssertion:
		value = tv.String()
	default:
		err = errorBadType("SubstringAssertion")
	}

	return
}

// Matches reports whether value satisfies the receiver's initial/any/final
// parts, per [§ 4.2.13 of RFC 4517] (caseIgnoreSubstringsMatch, OID
// 2.5.13.4) when caseInsensitive is true, or its case-exact counterpart
// (OID 2.5.13.7) otherwise.
//
// [§ 4.2.13 of RFC 4517]: https://datatracker.ietf.org/doc/html/rfc4517#section-4.2.13
func (r SubstringAssertion) Matches(value string, caseInsensitive bool) bool {
	caseHandler := func(val string) string { return val }
	if caseInsensitive {
		caseHandler = lc
	}

	value = caseHandler(value)

	if r.Initial != nil {
		initialStr := caseHandler(string(r.Initial))
		if !hasPfx(value, initialStr) {
			return false
		}
		value = trimPfx(value, initialStr)
	}

	anyStr := `*` + trim(caseHandler(string(r.Any)), `*`) + `*`
	for _, substr := range split(anyStr, "*") {
		if substr == "" {
			continue
		}
		index := stridx(value, substr)
		if index == -1 {
			return false
		}
		value = value[index+len(substr):]
	}

	if r.Final != nil {
		finalStr := caseHandler(string(r.Final))
		return hasSfx(value, finalStr)
	}

	return true
}
