package ldap

/*
dn_api.go layers the public DN surface over the RFC4514 parser in dn.go:
parsing, canonical normalization, composition, escaping, ancestor traversal
and structured accessors. The underlying grammar and escaping rules are
unchanged from dn.go; this file only adds the ergonomic wrapper a caller
works with.
*/

import (
	"hash/fnv"
)

// DN is a parsed, immutable distinguished name.
type DN struct {
	*DistinguishedName
}

// ParseDN parses s per RFC4514 and returns the resulting DN. Malformed
// syntax fails with a KindInvalidDN *Error.
func ParseDN(s string) (*DN, error) {
	var rfc RFC4514
	raw, err := rfc.DistinguishedName(s)
	if err != nil {
		return nil, errorDN(err.Error())
	}
	if raw == nil {
		raw = &DistinguishedName{}
	}
	return &DN{raw}, nil
}

// Normalize returns the canonical string form of x, which may be a string
// or an already-parsed *DN. Normalization is idempotent: Normalize applied
// to its own output returns the same string.
func Normalize(x any) (string, error) {
	switch tv := x.(type) {
	case *DN:
		return tv.String(), nil
	case string:
		dn, err := ParseDN(tv)
		if err != nil {
			return "", err
		}
		return dn.String(), nil
	default:
		return "", errorBadType("Normalize")
	}
}

// ComposePart is anything Compose accepts as a single RDN-equivalent
// component: a pre-parsed *DN, a canonical DN string, or an (attr, value)
// pair supplied as a two-element [2]string.
type ComposePart any

// Compose concatenates parts left-to-right, child RDNs first, escaping any
// (attr, value) tuples automatically, and returns the resulting DN.
func Compose(parts ...ComposePart) (*DN, error) {
	var rdns []*RelativeDistinguishedName

	for _, p := range parts {
		switch tv := p.(type) {
		case *DN:
			rdns = append(rdns, tv.RDNs...)
		case string:
			parsed, err := ParseDN(tv)
			if err != nil {
				return nil, err
			}
			rdns = append(rdns, parsed.RDNs...)
		case [2]string:
			atv := &AttributeTypeAndValue{Type: tv[0], Value: tv[1]}
			rdns = append(rdns, &RelativeDistinguishedName{Attributes: []*AttributeTypeAndValue{atv}})
		default:
			return nil, errorBadType("Compose part")
		}
	}

	return &DN{&DistinguishedName{RDNs: rdns}}, nil
}

// EscapeDN backslash-hex-escapes every RFC4514 reserved character in s,
// including a leading/trailing space and a leading '#'.
func EscapeDN(s string) string {
	bld := newStrBuilder()
	for i := 0; i < len(s); i++ {
		c := s[i]
		if cntns(`"+,;<>\`, string(c)) || c == 0 ||
			(c == ' ' && (i == 0 || i == len(s)-1)) || (c == '#' && i == 0) {
			bld.WriteString(`\` + enchex([]byte{c}))
			continue
		}
		bld.WriteByte(c)
	}
	return bld.String()
}

// Parent returns the DN with its leading (most-specific) RDN removed, or
// an empty DN if d has zero or one RDNs.
func (d *DN) Parent() *DN {
	if d == nil || len(d.RDNs) <= 1 {
		return &DN{&DistinguishedName{}}
	}
	return &DN{&DistinguishedName{RDNs: d.RDNs[1:]}}
}

// GetParent returns d's parent relative to base, or nil if d is already at
// or above base (i.e. base is not a strict ancestor-excluded descendant).
func (d *DN) GetParent(base *DN) *DN {
	if d == nil || base == nil {
		return nil
	}
	if len(d.RDNs) <= len(base.RDNs) {
		return nil
	}
	return &DN{&DistinguishedName{RDNs: d.RDNs[1:]}}
}

// Walk yields the chain of DNs from base down to d, inclusive, ordered
// from base to d. It fails if d does not end with base.
func (d *DN) Walk(base *DN) ([]*DN, error) {
	if d == nil || base == nil {
		return nil, errorDN("nil DN in Walk")
	}
	if !d.EndsWith(base) {
		return nil, errorDN("DN does not end with the given base")
	}

	depth := len(d.RDNs) - len(base.RDNs)
	out := make([]*DN, 0, depth+1)
	for i := depth; i >= 0; i-- {
		out = append(out, &DN{&DistinguishedName{RDNs: d.RDNs[i:]}})
	}

	return out, nil
}

// EndsWith returns true if d is other, or a descendant of other.
func (d *DN) EndsWith(other *DN) bool {
	if d == nil || other == nil {
		return false
	}
	if len(other.RDNs) == 0 {
		return true
	}
	if len(d.RDNs) < len(other.RDNs) {
		return false
	}
	tail := d.RDNs[len(d.RDNs)-len(other.RDNs):]
	for i := range other.RDNs {
		if !tail[i].EqualFold(other.RDNs[i]) {
			return false
		}
	}
	return true
}

// StartsWith returns true if d is other, or if d's leading (most-specific)
// RDNs equal all of other's RDNs.
func (d *DN) StartsWith(other *DN) bool {
	if d == nil || other == nil {
		return false
	}
	if len(other.RDNs) == 0 {
		return true
	}
	if len(d.RDNs) < len(other.RDNs) {
		return false
	}
	head := d.RDNs[:len(other.RDNs)]
	for i := range other.RDNs {
		if !head[i].EqualFold(other.RDNs[i]) {
			return false
		}
	}
	return true
}

// Contains reports whether rdn is present anywhere in d, compared by
// canonical-RDN equality rather than substring matching.
func (d *DN) Contains(rdn *RelativeDistinguishedName) bool {
	if d == nil || rdn == nil {
		return false
	}
	for _, r := range d.RDNs {
		if r.EqualFold(rdn) {
			return true
		}
	}
	return false
}

// RDN returns the first attributeTypeAndValue of d's leading RDN.
func (d *DN) RDN() *AttributeTypeAndValue {
	if d == nil || len(d.RDNs) == 0 || len(d.RDNs[0].Attributes) == 0 {
		return nil
	}
	return d.RDNs[0].Attributes[0]
}

// MultiRDN returns every attributeTypeAndValue of d's leading RDN.
func (d *DN) MultiRDN() []*AttributeTypeAndValue {
	if d == nil || len(d.RDNs) == 0 {
		return nil
	}
	return d.RDNs[0].Attributes
}

// Attribute returns the attribute type of d's leading RDN's first AVA.
func (d *DN) Attribute() string {
	if a := d.RDN(); a != nil {
		return a.Type
	}
	return ""
}

// Attributes returns the attribute types of every RDN's every AVA, in
// structural order.
func (d *DN) Attributes() (attrs []string) {
	if d == nil {
		return nil
	}
	for _, r := range d.RDNs {
		for _, a := range r.Attributes {
			attrs = append(attrs, a.Type)
		}
	}
	return
}

// Value returns the attribute value of d's leading RDN's first AVA.
func (d *DN) Value() string {
	if a := d.RDN(); a != nil {
		return a.Value
	}
	return ""
}

// Values returns the attribute values of every RDN's every AVA, in
// structural order.
func (d *DN) Values() (vals []string) {
	if d == nil {
		return nil
	}
	for _, r := range d.RDNs {
		for _, a := range r.Attributes {
			vals = append(vals, a.Value)
		}
	}
	return
}

// Slice returns the DN consisting of RDNs i..j (exclusive of j), the same
// way slicing a []*RelativeDistinguishedName would behave.
func (d *DN) Slice(i, j int) *DN {
	if d == nil || i < 0 || j > len(d.RDNs) || i > j {
		return &DN{&DistinguishedName{}}
	}
	return &DN{&DistinguishedName{RDNs: d.RDNs[i:j]}}
}

// Equal reports canonical equality: tolerant to case, redundant whitespace,
// backslash-hex escapes, and permutation within a multi-valued RDN.
func (d *DN) Equal(other *DN) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.DistinguishedName.EqualFold(other.DistinguishedName)
}

// Hash returns a stable hash of d's case-folded canonical form, suitable for use as a
// map key surrogate when *DN itself cannot be compared with ==.
func (d *DN) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(foldString(d.String())))
	return h.Sum64()
}
