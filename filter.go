package ldap

import (
	ber "github.com/go-asn1-ber/asn1-ber"
)

/*
Filter returns an instance of [Filter] alongside an error.
*/
func (r RFC4515) Filter(x any) (filter Filter, err error) {
	switch tv := x.(type) {
	case nil:
		// Nil returns the default filter.
		filter, err = r.Filter(``)
		return
	case string:
		// try to handle a zero length string
		// filter (default return).
		if len(tv) == 0 {
			filter = PresentFilter{
				Desc: AttributeDescription(`objectClass`),
			}
			return
		}
	}

	if filter, err = processFilter(x); filter == nil {
		filter = Filter(invalidFilter{})
		err = errorTxt("Invalid filter")
	}

	return
}

/*
Filter implements [Section 2] and [Section 3] of RFC4515.

[Section 2]: https://datatracker.ietf.org/doc/html/rfc4515#section-2
[Section 3]: https://datatracker.ietf.org/doc/html/rfc4515#section-3
*/
type Filter interface {
	IsZero() bool
	String() string
	Choice() string
	Len() int
}

type invalidFilter struct{}

/*
AndFilter implements the "and" CHOICE of an instance of [Filter].
*/
type AndFilter []Filter

/*
OrFilter implements the "or" CHOICE of an instance of [Filter].
*/
type OrFilter []Filter

/*
NotFilter implements the "not" CHOICE of an instance of [Filter].
*/
type NotFilter struct {
	Filter
}

/*
EqualityMatchFilter aliases the [AttributeValueAssertion] type to implement
the "equalityMatch" CHOICE of an instance of [Filter].
*/
type EqualityMatchFilter AttributeValueAssertion

/*
GreaterOrEqualFilter aliases the [AttributeValueAssertion] type to implement
the "greaterOrEqual" CHOICE of an instance of [Filter].
*/
type GreaterOrEqualFilter AttributeValueAssertion

/*
LessOrEqualFilter aliases the [AttributeValueAssertion] type to implement
the "lessOrEqual" CHOICE of an instance of [Filter].
*/
type LessOrEqualFilter AttributeValueAssertion

/*
ApproximateMatchFilter aliases the [AttributeValueAssertion] type to implement
the "approxMatch" CHOICE of an instance of [Filter].
*/
type ApproximateMatchFilter AttributeValueAssertion

/*
AttributeValueAssertion implements the basis for [ApproximateMatchFilter],
[GreaterOrEqualFilter], [LessOrEqualFilter] and [EqualityMatchFilter].

	AttributeValueAssertion ::= SEQUENCE {
	    attributeDesc   AttributeDescription,
	    assertionValue  AssertionValue }
*/
type AttributeValueAssertion struct {
	Desc  AttributeDescription
	Value AssertionValue
}

/*
AttributeDescription implements the LDAPString description component of
an instance of [AttributeValueAssertion].
*/
type AttributeDescription string

/*
AssertionValue implements the OCTET STRING value component of an instance
of [AttributeValueAssertion].
*/
type AssertionValue []byte

/*
PresentFilter implements the "present" CHOICE of an instance of [Filter].
*/
type PresentFilter struct {
	Desc AttributeDescription
}

/*
ExtensibleMatchFilter aliases the [MatchingRuleAssertionFilter] to implement
the "extensibleMatch" CHOICE of an instance of [Filter].
*/
type ExtensibleMatchFilter MatchingRuleAssertionFilter

/*
MatchingRuleAssertion implements the basis of [ExtensibleMatchFilter].

	MatchingRuleAssertion ::= SEQUENCE {
	    matchingRule    [1] MatchingRuleId OPTIONAL,
	    type            [2] AttributeDescription OPTIONAL,
	    matchValue      [3] AssertionValue,
	    dnAttributes    [4] BOOLEAN DEFAULT FALSE }
*/
type MatchingRuleAssertionFilter struct {
	MatchingRule string               `asn1:"tag:1,optional"`
	Type         AttributeDescription `asn1:"tag:2,optional"`
	MatchValue   AssertionValue       `asn1:"tag:3"`
	DNAttributes bool                 `asn1:"tag:4,default:false"`
}

/*
SubstringsFilter implements the "substrings" CHOICE of an instance of [Filter].
*/
type SubstringsFilter struct {
	Type       AttributeDescription
	Substrings SubstringAssertion
}

func (r invalidFilter) IsZero() bool { return true }

/*
IsZero returns a Boolean value indicative of a nil receiver state.
*/
func (r AndFilter) IsZero() bool { return r == nil }

/*
IsZero returns a Boolean value indicative of a nil receiver state.
*/
func (r OrFilter) IsZero() bool { return r == nil }

/*
IsZero returns a Boolean value indicative of a nil receiver state.
*/
func (r NotFilter) IsZero() bool { return r.Filter == nil }

/*
IsZero returns a Boolean value indicative of a nil receiver state.
*/
func (r EqualityMatchFilter) IsZero() bool { return &r == nil }

/*
IsZero returns a Boolean value indicative of a nil receiver state.
*/
func (r GreaterOrEqualFilter) IsZero() bool { return &r == nil }

/*
IsZero returns a Boolean value indicative of a nil receiver state.
*/
func (r LessOrEqualFilter) IsZero() bool { return &r == nil }

/*
IsZero returns a Boolean value indicative of a nil receiver state.
*/
func (r ApproximateMatchFilter) IsZero() bool { return &r == nil }

/*
IsZero returns a Boolean value indicative of a nil receiver state.
*/
func (r PresentFilter) IsZero() bool { return &r == nil }

/*
IsZero returns a Boolean value indicative of a nil receiver state.
*/
func (r SubstringsFilter) IsZero() bool { return &r == nil }

/*
IsZero returns a Boolean value indicative of a nil receiver state.
*/
func (r ExtensibleMatchFilter) IsZero() bool { return &r == nil }

func (r invalidFilter) String() string { return `` }

/*
String returns the string representation of the receiver instance.
*/
func (r AttributeDescription) String() string {
	return string(r)
}

/*
String returns the string representation of the receiver instance.
*/
func (r AssertionValue) String() string {
	return string(r)
}

/*
String returns the string representation of the receiver instance.
*/
func (r AndFilter) String() (s string) {
	if !r.IsZero() {
		var parts []string
		for _, ref := range r {
			parts = append(parts, ref.String())
		}
		s = "(&" + join(parts, "") + ")"
	}

	return
}

/*
String returns the string representation of the receiver instance.
*/
func (r OrFilter) String() (s string) {
	if !r.IsZero() {
		var parts []string
		for _, ref := range r {
			parts = append(parts, ref.String())
		}
		s = "(|" + join(parts, "") + ")"
	}

	return
}

/*
String returns the string representation of the receiver instance.
*/
func (r NotFilter) String() (s string) {
	if !r.IsZero() {
		s = "(!" + r.Filter.String() + ")"
	}

	return
}

/*
String returns the string representation of the receiver instance.
*/
func (r EqualityMatchFilter) String() (s string) {
	if !r.IsZero() {
		s = `(` + r.Desc.String() + `=` + r.Value.String() + `)`
	}

	return
}

/*
String returns the string representation of the receiver instance.
*/
func (r GreaterOrEqualFilter) String() (s string) {
	if !r.IsZero() {
		s = `(` + r.Desc.String() + `>=` + r.Value.String() + `)`
	}

	return
}

/*
String returns the string representation of the receiver instance.
*/
func (r LessOrEqualFilter) String() (s string) {
	if !r.IsZero() {
		s = `(` + r.Desc.String() + `<=` + r.Value.String() + `)`
	}

	return
}

/*
String returns the string representation of the receiver instance.
*/
func (r ApproximateMatchFilter) String() (s string) {
	if !r.IsZero() {
		s = `(` + r.Desc.String() + `~=` + r.Value.String() + `)`
	}

	return
}

/*
String returns the string representation of the receiver instance.
*/
func (r PresentFilter) String() (s string) {
	if !r.IsZero() {
		s = `(` + r.Desc.String() + `=*` + `)`
	}

	return
}

/*
String returns the string representation of the receiver instance.
*/
func (r SubstringsFilter) String() (s string) {
	if !r.IsZero() {
		s = `(` + string(r.Type) + `=` + r.Substrings.String() + `)`
	}

	return
}

/*
String returns the string representation of the receiver instance.
*/
func (r ExtensibleMatchFilter) String() (s string) {
	if !r.IsZero() {
		if r.MatchValue == nil {
			return
		}

		value := r.MatchValue.String()
		typ := r.Type.String()
		mr := r.MatchingRule
		dna := r.DNAttributes

		if typ != "" && mr == "" {
			if dna {
				s = typ + `:dn:=` + value
			} else {
				s = typ + `:=` + value
			}
		} else if typ == "" && mr != "" {
			if dna {
				s = `:dn:` + mr + `:=` + value
			} else {
				s = `:` + mr + `:=` + value
			}
		} else if typ != "" && mr != "" {
			if dna {
				s = typ + `:dn:` + mr + `:=` + value
			} else {
				s = typ + `:` + mr + `:=` + value
			}
		}

		if s != "" {
			s = `(` + s + `)`
		}
	}

	return
}

func (r invalidFilter) Choice() string { return "invalid" }

/*
Choice returns the string literal CHOICE "and".
*/
func (r AndFilter) Choice() string { return "and" }

/*
Choice returns the string literal CHOICE "or".
*/
func (r OrFilter) Choice() string { return "or" }

/*
Choice returns the string literal CHOICE "not".
*/
func (r NotFilter) Choice() string { return "not" }

/*
Choice returns the string literal CHOICE "equalityMatch".
*/
func (r EqualityMatchFilter) Choice() string { return "equalityMatch" }

/*
Choice returns the string literal CHOICE "greaterOrEqual".
*/
func (r GreaterOrEqualFilter) Choice() string { return "greaterOrEqual" }

/*
Choice returns the string literal CHOICE "lessOrEqual".
*/
func (r LessOrEqualFilter) Choice() string { return "lessOrEqual" }

/*
Choice returns the string literal CHOICE "approxMatch".
*/
func (r ApproximateMatchFilter) Choice() string { return "approxMatch" }

/*
Choice returns the string literal CHOICE "present".
*/
func (r PresentFilter) Choice() string { return "present" }

/*
Choice returns the string literal CHOICE "substrings".
*/
func (r SubstringsFilter) Choice() string { return "substrings" }

/*
Choice returns the string literal CHOICE "extensibleMatch".
*/
func (r ExtensibleMatchFilter) Choice() string { return "extensibleMatch" }

func (r invalidFilter) Len() int { return 0 }

/*
Len returns the integer length of the receiver instance.
*/
func (r AndFilter) Len() int { return len(r) }

/*
Len returns the integer length of the receiver instance.
*/
func (r OrFilter) Len() int { return len(r) }

/*
Len returns the Len of the single wrapped [Filter].
*/
func (r NotFilter) Len() int { return r.Filter.Len() }

/*
Len always returns one (1), as instances of this kind only contain a
single value.
*/
func (r EqualityMatchFilter) Len() int { return 1 }

/*
Len always returns one (1), as instances of this kind only contain a
single value.
*/
func (r GreaterOrEqualFilter) Len() int { return 1 }

/*
Len always returns one (1), as instances of this kind only contain a
single value.
*/
func (r LessOrEqualFilter) Len() int { return 1 }

/*
Len always returns one (1), as instances of this kind only contain a
single value.
*/
func (r ApproximateMatchFilter) Len() int { return 1 }

/*
Len always returns one (1), as instances of this kind only contain a
single value.
*/
func (r PresentFilter) Len() int { return 1 }

/*
Len always returns one (1), as instances of this kind only contain a
single value.
*/
func (r SubstringsFilter) Len() int { return 1 }

/*
Len always returns one (1), as instances of this kind only contain a
single value.
*/
func (r ExtensibleMatchFilter) Len() int { return 1 }

func processFilter(x any) (filter Filter, err error) {
	var input string
	if input, err = assertString(x, 1, "Search Filter"); err != nil {
		return
	}

	if input = trimS(input); input == "" {
		filter = PresentFilter{Desc: AttributeDescription("objectClass")}
		return
	}

	switch {
	case hasPfx(input, "(&"):
		filter, err = parseAndFilter(input)
	case hasPfx(input, "(|"):
		filter, err = parseOrFilter(input)
	case hasPfx(input, "(!"):
		filter, err = parseNotFilter(input)
	default:
		filter, err = parseItemFilter(input)
	}

	return
}

func parseAndFilter(input string) (Filter, error) {
	return parseComplexFilter(input[2:len(input)-1], "&")
}

func parseOrFilter(input string) (Filter, error) {
	return parseComplexFilter(input[2:len(input)-1], "|")
}

func parseNotFilter(input string) (Filter, error) {
	subRef, err := processFilter(input[2 : len(input)-1])
	if err != nil {
		return nil, err
	}
	return NotFilter{subRef}, nil
}

func parseComplexFilter(input, prefix string) (Filter, error) {
	var refs []Filter
	parts := splitFilterParts(input)
	for _, part := range parts {
		subRef, err := processFilter(part)
		if err != nil {
			return nil, err
		}
		refs = append(refs, subRef)
	}
	if prefix == "&" {
		return AndFilter(refs), nil
	}
	return OrFilter(refs), nil
}

func parseItemFilter(input string) (Filter, error) {
	idx := stridx(input, "=")
	if idx == -1 {
		return nil, errorTxt("Nil filter item")
	}
	pre, after := input[:idx], input[idx+1:]

	// Parentheticals will just get in the way,
	// so let's strip them off. They'll return
	// during string representation.
	pre = repAll(pre, `(`, ``)
	after = repAll(after, `)`, ``)

	if after == `*` {
		return PresentFilter{
			Desc: AttributeDescription(pre),
		}, nil
	} else if hasSfx(pre, `>`) {
		return GreaterOrEqualFilter{
			AttributeDescription(pre[:len(pre)-1]),
			AssertionValue(after),
		}, nil
	} else if hasSfx(pre, `<`) {
		return LessOrEqualFilter{
			AttributeDescription(pre[:len(pre)-1]),
			AssertionValue(after),
		}, nil
	} else if hasSfx(pre, `~`) {
		return ApproximateMatchFilter{
			AttributeDescription(pre[:len(pre)-1]),
			AssertionValue(after),
		}, nil
	} else if cntns(after, "*") {
		if ssa, err := processSubstringAssertion(after); err == nil {
			return SubstringsFilter{
				Type:       AttributeDescription(pre),
				Substrings: ssa,
			}, nil
		}
	} else if cntns(pre, ":") {
		return parseExtensibleMatch(pre, after)
	}

	return EqualityMatchFilter{
		Desc:  AttributeDescription(pre),
		Value: AssertionValue(after)}, nil
}

func parseExtensibleMatch(a, b string) (Filter, error) {
	scol := hasPfx(a, `:`)
	sdn := hasPfx(a, `:dn:`)
	val := AssertionValue(b)

	filter := ExtensibleMatchFilter{}

	if !scol {
		// attr:=Value is essentially attr=Value
		//
		// MatchingRule    string                  `asn1:"tag:1,optional"`
		// Type            AttributeDescription    `asn1:"tag:2,optional"`
		// MatchValue      AssertionValue          `asn1:"tag:3"`
		// DNAttributes    bool                    `asn1:"tag:4,default:false"`
		if !cntns(a, `:dn:`) {
			if idx := idxr(a, ':'); idx != -1 {
				filter.Type = AttributeDescription(a[:idx])
				filter.MatchingRule = trim(a[idx+1:], `:`)
				filter.MatchValue = val
			}
		} else {
			filter.DNAttributes = true
			if c := split(a, `:dn:`); len(c) == 2 {
				if len(c[0]) > 0 && len(c[1]) > 0 {
					filter.Type = AttributeDescription(c[0])
					filter.MatchingRule = trim(c[1], `:`)
				} else if len(c[0]) > 0 {
					filter.Type = AttributeDescription(c[0])
				} else if len(c[1]) > 0 {
					filter.MatchingRule = c[1]
				}
			}
		}

		filter.MatchValue = AssertionValue(b)
	} else if scol {
		if sdn {
			filter.DNAttributes = true
			filter.MatchingRule = a[4 : len(a)-1]
		} else {
			filter.MatchingRule = a[1 : len(a)-1]
		}
		filter.MatchValue = val
	}

	return filter, nil
}

func splitFilterParts(input string) []string {
	var parts []string
	currentPart := newStrBuilder()
	depth := 0
	for _, char := range input {
		switch char {
		case '(':
			if depth == 0 && currentPart.Len() > 0 {
				parts = append(parts, currentPart.String())
				currentPart.Reset()
			}
			depth++
		case ')':
			depth--
		}
		currentPart.WriteRune(char)
	}
	if currentPart.Len() > 0 {
		parts = append(parts, currentPart.String())
	}
	return parts
}

/*
Attribute implements a symbolic filter-builder anchor: instead of
composing a filter as a raw RFC4515 string and re-parsing it, a caller
may write Attribute(`cn`).Eq(`Babs Jensen`) and receive a [Filter]
directly.
*/
type Attribute string

// Eq returns an [EqualityMatchFilter] asserting that the receiver equals
// value.
func (a Attribute) Eq(value string) Filter {
	return EqualityMatchFilter{Desc: AttributeDescription(a), Value: AssertionValue(value)}
}

// Ge returns a [GreaterOrEqualFilter] asserting that the receiver is
// greater than or equal to value.
func (a Attribute) Ge(value string) Filter {
	return GreaterOrEqualFilter{Desc: AttributeDescription(a), Value: AssertionValue(value)}
}

// Le returns a [LessOrEqualFilter] asserting that the receiver is less
// than or equal to value.
func (a Attribute) Le(value string) Filter {
	return LessOrEqualFilter{Desc: AttributeDescription(a), Value: AssertionValue(value)}
}

// Approx returns an [ApproximateMatchFilter] asserting that the receiver
// approximately matches value.
func (a Attribute) Approx(value string) Filter {
	return ApproximateMatchFilter{Desc: AttributeDescription(a), Value: AssertionValue(value)}
}

// Present returns a [PresentFilter] asserting that the receiver is
// present on the entry.
func (a Attribute) Present() Filter {
	return PresentFilter{Desc: AttributeDescription(a)}
}

// Substrings returns a [SubstringsFilter] built from the supplied initial,
// any and final substring components. Any component left empty (besides
// at least one of the three) is omitted.
func (a Attribute) Substrings(initial string, any []string, final string) Filter {
	sa := SubstringAssertion{}
	if initial != `` {
		sa.Initial = AssertionValue(initial)
	}
	if len(any) > 0 {
		sa.Any = AssertionValue(join(any, `*`))
	}
	if final != `` {
		sa.Final = AssertionValue(final)
	}
	return SubstringsFilter{Type: AttributeDescription(a), Substrings: sa}
}

// Extensible returns an [ExtensibleMatchFilter] using the named matching
// rule, optionally qualified with dn-attribute matching semantics per
// [§ 4.5.1 of RFC 4511].
//
// [§ 4.5.1 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.5.1
func (a Attribute) Extensible(matchingRule, value string, dnAttributes bool) Filter {
	return ExtensibleMatchFilter{
		MatchingRule: matchingRule,
		Type:         AttributeDescription(a),
		MatchValue:   AssertionValue(value),
		DNAttributes: dnAttributes,
	}
}

// And combines filters into an [AndFilter].
func And(filters ...Filter) Filter { return AndFilter(filters) }

// Or combines filters into an [OrFilter].
func Or(filters ...Filter) Filter { return OrFilter(filters) }

// Not negates f, returning a [NotFilter].
func Not(f Filter) Filter { return NotFilter{Filter: f} }

// children returns the immediate child filters of f, or nil if f is a
// leaf (has no nested [Filter] values).
func children(f Filter) []Filter {
	switch tv := f.(type) {
	case AndFilter:
		return []Filter(tv)
	case OrFilter:
		return []Filter(tv)
	case NotFilter:
		return []Filter{tv.Filter}
	}
	return nil
}

// WalkOrder selects the traversal strategy used by [Walk].
type WalkOrder uint8

const (
	PreOrder WalkOrder = iota
	PostOrder
	BothOrder
)

/*
Walk performs an iterative, explicit-stack traversal of f and every
filter nested beneath it, invoking visit for each node encountered. The
order in which visit is called relative to a node's children is governed
by order. Returning false from visit halts the traversal early.
*/
func Walk(f Filter, order WalkOrder, visit func(Filter) bool) {
	type frame struct {
		node    Filter
		visited bool
	}

	stack := []frame{{node: f}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		kids := children(top.node)

		if len(kids) == 0 {
			stack = stack[:len(stack)-1]
			if !visit(top.node) {
				return
			}
			continue
		}

		if top.visited {
			stack = stack[:len(stack)-1]
			if order == PostOrder || order == BothOrder {
				if !visit(top.node) {
					return
				}
			}
			continue
		}

		if order == PreOrder || order == BothOrder {
			if !visit(top.node) {
				return
			}
		}

		stack[len(stack)-1].visited = true
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: kids[i]})
		}
	}
}

/*
Pretty renders f as an indented, multi-line rendition of its RFC4515
string form, using indent as the per-depth indentation unit.
*/
func Pretty(f Filter, indent string) string {
	return prettyDepth(f, indent, 0)
}

func prettyDepth(f Filter, indent string, depth int) string {
	pad := repeatStr(indent, depth)
	kids := children(f)

	if len(kids) == 0 {
		return pad + f.String()
	}

	prefix := `(&`
	switch f.(type) {
	case OrFilter:
		prefix = `(|`
	case NotFilter:
		prefix = `(!`
	}

	bld := newStrBuilder()
	bld.WriteString(pad)
	bld.WriteString(prefix)
	bld.WriteString("\n")

	for _, k := range kids {
		bld.WriteString(prettyDepth(k, indent, depth+1))
		bld.WriteString("\n")
	}

	bld.WriteString(pad + `)`)

	return bld.String()
}

func repeatStr(s string, n int) (out string) {
	for i := 0; i < n; i++ {
		out += s
	}
	return
}

// Filter CHOICE tags per § 4.5.1 of RFC 4511.
const (
	filterTagAnd             = 0
	filterTagOr              = 1
	filterTagNot             = 2
	filterTagEqualityMatch   = 3
	filterTagSubstrings      = 4
	filterTagGreaterOrEqual  = 5
	filterTagLessOrEqual     = 6
	filterTagPresent         = 7
	filterTagApproxMatch     = 8
	filterTagExtensibleMatch = 9
)

// EncodeFilter renders f into its BER CHOICE encoding, per
// [§ 4.5.1 of RFC 4511].
//
// [§ 4.5.1 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.5.1
func EncodeFilter(f Filter) *ber.Packet {
	switch tv := f.(type) {
	case AndFilter:
		pkt := ber.Encode(ber.ClassContext, ber.TypeConstructed, filterTagAnd, nil, "And")
		for _, child := range tv {
			pkt.AppendChild(EncodeFilter(child))
		}
		return pkt
	case OrFilter:
		pkt := ber.Encode(ber.ClassContext, ber.TypeConstructed, filterTagOr, nil, "Or")
		for _, child := range tv {
			pkt.AppendChild(EncodeFilter(child))
		}
		return pkt
	case NotFilter:
		pkt := ber.Encode(ber.ClassContext, ber.TypeConstructed, filterTagNot, nil, "Not")
		pkt.AppendChild(EncodeFilter(tv.Filter))
		return pkt
	case EqualityMatchFilter:
		return encodeAVAFilter(filterTagEqualityMatch, "EqualityMatch", AttributeValueAssertion(tv))
	case GreaterOrEqualFilter:
		return encodeAVAFilter(filterTagGreaterOrEqual, "GreaterOrEqual", AttributeValueAssertion(tv))
	case LessOrEqualFilter:
		return encodeAVAFilter(filterTagLessOrEqual, "LessOrEqual", AttributeValueAssertion(tv))
	case ApproximateMatchFilter:
		return encodeAVAFilter(filterTagApproxMatch, "ApproxMatch", AttributeValueAssertion(tv))
	case PresentFilter:
		return ber.NewString(ber.ClassContext, ber.TypePrimitive, filterTagPresent, string(tv.Desc), "Present")
	case SubstringsFilter:
		pkt := ber.Encode(ber.ClassContext, ber.TypeConstructed, filterTagSubstrings, nil, "Substrings")
		pkt.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, string(tv.Type), "Type"))
		subs := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Substrings")
		if len(tv.Substrings.Initial) > 0 {
			subs.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, 0, tv.Substrings.Initial.String(), "Initial"))
		}
		if len(tv.Substrings.Any) > 0 {
			subs.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, 1, tv.Substrings.Any.String(), "Any"))
		}
		if len(tv.Substrings.Final) > 0 {
			subs.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, 2, tv.Substrings.Final.String(), "Final"))
		}
		pkt.AppendChild(subs)
		return pkt
	case ExtensibleMatchFilter:
		pkt := ber.Encode(ber.ClassContext, ber.TypeConstructed, filterTagExtensibleMatch, nil, "ExtensibleMatch")
		if tv.MatchingRule != `` {
			pkt.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, 1, tv.MatchingRule, "MatchingRule"))
		}
		if tv.Type != `` {
			pkt.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, 2, string(tv.Type), "Type"))
		}
		pkt.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, 3, tv.MatchValue.String(), "MatchValue"))
		if tv.DNAttributes {
			pkt.AppendChild(ber.NewBoolean(ber.ClassContext, ber.TypePrimitive, 4, true, "DNAttributes"))
		}
		return pkt
	}

	return ber.Encode(ber.ClassContext, ber.TypePrimitive, filterTagPresent, "objectClass", "Present")
}

func encodeAVAFilter(tag int, description string, ava AttributeValueAssertion) *ber.Packet {
	pkt := ber.Encode(ber.ClassContext, ber.TypeConstructed, tag, nil, description)
	pkt.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, string(ava.Desc), "Attribute"))
	pkt.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, ava.Value.String(), "Value"))
	return pkt
}

// DecodeFilter parses a single Filter CHOICE out of pkt, per
// [§ 4.5.1 of RFC 4511].
//
// [§ 4.5.1 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.5.1
func DecodeFilter(pkt *ber.Packet) (f Filter, err error) {
	if pkt == nil {
		err = errorFilter("nil filter packet")
		return
	}

	switch pkt.Tag {
	case filterTagAnd:
		var and AndFilter
		for _, child := range pkt.Children {
			var sub Filter
			if sub, err = DecodeFilter(child); err != nil {
				return
			}
			and = append(and, sub)
		}
		f = and
	case filterTagOr:
		var or OrFilter
		for _, child := range pkt.Children {
			var sub Filter
			if sub, err = DecodeFilter(child); err != nil {
				return
			}
			or = append(or, sub)
		}
		f = or
	case filterTagNot:
		if len(pkt.Children) != 1 {
			err = errorFilter("not filter requires exactly one child")
			return
		}
		var sub Filter
		if sub, err = DecodeFilter(pkt.Children[0]); err != nil {
			return
		}
		f = NotFilter{Filter: sub}
	case filterTagEqualityMatch, filterTagGreaterOrEqual, filterTagLessOrEqual, filterTagApproxMatch:
		var ava AttributeValueAssertion
		if ava, err = decodeAVAFilter(pkt); err != nil {
			return
		}
		switch pkt.Tag {
		case filterTagEqualityMatch:
			f = EqualityMatchFilter(ava)
		case filterTagGreaterOrEqual:
			f = GreaterOrEqualFilter(ava)
		case filterTagLessOrEqual:
			f = LessOrEqualFilter(ava)
		case filterTagApproxMatch:
			f = ApproximateMatchFilter(ava)
		}
	case filterTagPresent:
		desc, _ := pkt.Value.(string)
		f = PresentFilter{Desc: AttributeDescription(desc)}
	case filterTagSubstrings:
		f, err = decodeSubstringsFilter(pkt)
	case filterTagExtensibleMatch:
		f, err = decodeExtensibleMatchFilter(pkt)
	default:
		err = errorFilter("unrecognized filter CHOICE tag")
	}

	return
}

func decodeAVAFilter(pkt *ber.Packet) (ava AttributeValueAssertion, err error) {
	if len(pkt.Children) != 2 {
		err = errorFilter("attribute value assertion requires exactly two elements")
		return
	}
	desc, _ := pkt.Children[0].Value.(string)
	value, _ := pkt.Children[1].Value.(string)
	ava = AttributeValueAssertion{Desc: AttributeDescription(desc), Value: AssertionValue(value)}
	return
}

func decodeSubstringsFilter(pkt *ber.Packet) (f Filter, err error) {
	if len(pkt.Children) != 2 {
		err = errorFilter("substrings filter requires exactly two elements")
		return
	}
	typ, _ := pkt.Children[0].Value.(string)

	var sa SubstringAssertion
	for _, sub := range pkt.Children[1].Children {
		val, _ := sub.Value.(string)
		switch sub.Tag {
		case 0:
			sa.Initial = AssertionValue(val)
		case 1:
			sa.Any = AssertionValue(val)
		case 2:
			sa.Final = AssertionValue(val)
		}
	}

	f = SubstringsFilter{Type: AttributeDescription(typ), Substrings: sa}
	return
}

func decodeExtensibleMatchFilter(pkt *ber.Packet) (f Filter, err error) {
	var emf ExtensibleMatchFilter
	for _, child := range pkt.Children {
		switch child.Tag {
		case 1:
			emf.MatchingRule, _ = child.Value.(string)
		case 2:
			typ, _ := child.Value.(string)
			emf.Type = AttributeDescription(typ)
		case 3:
			val, _ := child.Value.(string)
			emf.MatchValue = AssertionValue(val)
		case 4:
			emf.DNAttributes, _ = child.Value.(bool)
		}
	}
	f = emf
	return
}
