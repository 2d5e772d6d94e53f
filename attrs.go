package ldap

/*
attrs.go implements component D: a case-insensitive attribute map.
Lookups fold on attribute descriptor per [§ 2.5 of RFC 4512]; names are
only case-folded, so an alias pair such as "cn" and "commonName" are two
distinct keys. The first-seen spelling of a descriptor is
preserved for iteration and re-serialization, mirroring the case-folding
conventions already established for [DistinguishedName] comparisons.

[§ 2.5 of RFC 4512]: https://datatracker.ietf.org/doc/html/rfc4512#section-2.5
*/

/*
Attributes implements a case-insensitive multi-valued attribute map keyed
by attribute descriptor.
*/
type Attributes struct {
	order  []string
	casing map[string]string
	values map[string][]string
}

// NewAttributes returns an initialized, empty [Attributes] instance.
func NewAttributes() Attributes {
	return Attributes{
		casing: make(map[string]string),
		values: make(map[string][]string),
	}
}

func (a *Attributes) init() {
	if a.casing == nil {
		a.casing = make(map[string]string)
	}
	if a.values == nil {
		a.values = make(map[string][]string)
	}
}

// Set replaces all values of name with vals, recording the first-seen
// casing of name if this is a new entry.
func (a *Attributes) Set(name string, vals ...string) {
	a.init()
	key := lc(name)
	if _, exists := a.casing[key]; !exists {
		a.casing[key] = name
		a.order = append(a.order, key)
	}
	a.values[key] = vals
}

// Add appends vals to any existing values of name.
func (a *Attributes) Add(name string, vals ...string) {
	a.init()
	key := lc(name)
	if _, exists := a.casing[key]; !exists {
		a.casing[key] = name
		a.order = append(a.order, key)
	}
	a.values[key] = append(a.values[key], vals...)
}

// Get returns the values of name, or nil if name is absent. Matching is
// case-insensitive.
func (a Attributes) Get(name string) []string {
	if a.values == nil {
		return nil
	}
	return a.values[lc(name)]
}

// GetOne returns the first value of name, or "" if absent.
func (a Attributes) GetOne(name string) string {
	vals := a.Get(name)
	if len(vals) == 0 {
		return ``
	}
	return vals[0]
}

// Has returns true if name is present in the receiver, regardless of
// casing.
func (a Attributes) Has(name string) bool {
	if a.values == nil {
		return false
	}
	_, ok := a.values[lc(name)]
	return ok
}

// Delete removes name from the receiver, regardless of casing.
func (a *Attributes) Delete(name string) {
	if a.values == nil {
		return
	}
	key := lc(name)
	if _, ok := a.values[key]; !ok {
		return
	}
	delete(a.values, key)
	delete(a.casing, key)
	for i, k := range a.order {
		if k == key {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// Names returns the attribute descriptors present in the receiver, in
// first-seen insertion order, using each descriptor's original casing.
func (a Attributes) Names() (names []string) {
	for _, key := range a.order {
		names = append(names, a.casing[key])
	}
	return
}

// Len returns the number of distinct attribute descriptors held by the
// receiver.
func (a Attributes) Len() int { return len(a.order) }
