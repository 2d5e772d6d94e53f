package ldap

import (
	"context"
	"crypto/tls"

	ber "github.com/go-asn1-ber/asn1-ber"
)

/*
sync.go implements component H: the blocking façade built atop the
async connection engine of async.go. [Conn] is the type most callers
reach for; it correlates every request with its terminal response
before returning, the way the teacher's own connection wrapper serves
a synchronous API atop an asynchronous transport.
*/

// Conn is a blocking LDAP connection. The zero value is not usable;
// obtain one via [Dial], [DialTLS] or [DialContext].
type Conn struct {
	async *AsyncConn
}

// Dial opens a plain-TCP LDAP connection to addr.
func Dial(network, addr string) (*Conn, error) {
	return DialContext(context.Background(), network, addr)
}

// DialContext is the context-aware form of [Dial].
func DialContext(ctx context.Context, network, addr string) (*Conn, error) {
	a, err := DialAsync(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	return &Conn{async: a}, nil
}

// DialTLS opens an implicit-TLS (LDAPS) connection to addr.
func DialTLS(network, addr string, cfg *tls.Config) (*Conn, error) {
	a, err := DialTLSAsync(context.Background(), network, addr, cfg)
	if err != nil {
		return nil, err
	}
	return &Conn{async: a}, nil
}

// Close releases the underlying connection.
func (c *Conn) Close() error {
	if c.async == nil {
		return errUnconnected
	}
	return c.async.Close()
}

// StartTLS upgrades an already-dialed plain connection in place, per
// [§ 4.14 of RFC 4511].
//
// [§ 4.14 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.14
func (c *Conn) StartTLS(cfg *tls.Config) error {
	if c.async == nil {
		return errUnconnected
	}
	return c.async.StartTLS(cfg)
}

// do writes op (with ctls), waits for its single terminal response, and
// decodes the shared LDAPResult prefix.
func (c *Conn) do(op *ber.Packet, ctls []Control) (Result, *ber.Packet, error) {
	if c.async == nil {
		return Result{}, nil, errUnconnected
	}

	_, ch, err := c.async.SendRequest(op, ctls)
	if err != nil {
		return Result{}, nil, err
	}

	r := <-ch
	if r.err != nil {
		return Result{}, nil, r.err
	}

	result, err := decodeLDAPResult(r.op)
	return result, r.op, err
}

// extended performs a single-response extended operation.
func (c *Conn) extended(oid string, value []byte) (ExtendedResult, error) {
	if c.async == nil {
		return ExtendedResult{}, errUnconnected
	}

	op := encodeExtendedRequest(oid, value)
	_, ch, err := c.async.SendRequest(op, nil)
	if err != nil {
		return ExtendedResult{}, err
	}

	r := <-ch
	if r.err != nil {
		return ExtendedResult{}, r.err
	}

	return decodeExtendedResponse(r.op)
}

// Bind performs a simple Bind, per [§ 4.2 of RFC 4511].
//
// [§ 4.2 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.2
func (c *Conn) Bind(dn, password string) error {
	op := ber.Encode(ber.ClassApplication, ber.TypeConstructed, appBindRequest, nil, "BindRequest")
	op.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, int64(3), "Version"))
	op.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, dn, "Name"))
	op.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, 0, password, "Simple Authentication"))

	result, _, err := c.do(op, nil)
	if err != nil {
		return err
	}
	return result.Err()
}

// SASLBind performs a SASL Bind carrying mechanism and credentials,
// returning the server's optional SASL response credentials. It is the
// building block [BindGSSAPI] (sasl.go) and EXTERNAL binds are built on.
func (c *Conn) SASLBind(mechanism string, credentials []byte) (serverCreds []byte, err error) {
	op := ber.Encode(ber.ClassApplication, ber.TypeConstructed, appBindRequest, nil, "BindRequest")
	op.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, int64(3), "Version"))
	op.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, ``, "Name"))

	sasl := ber.Encode(ber.ClassContext, ber.TypeConstructed, 3, nil, "SaslCredentials")
	sasl.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, mechanism, "Mechanism"))
	if credentials != nil {
		sasl.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, string(credentials), "Credentials"))
	}
	op.AppendChild(sasl)

	result, raw, err := c.do(op, nil)
	if err != nil {
		return nil, err
	}
	if err = result.Err(); err != nil && result.Code != 14 { // 14 = saslBindInProgress
		return nil, err
	}

	for _, child := range raw.Children[3:] {
		if child.Tag == 7 {
			if s, ok := child.Value.(string); ok {
				serverCreds = []byte(s)
			}
		}
	}

	return
}

/*
SearchRequest describes a Search operation, per [§ 4.5.1 of RFC 4511].

[§ 4.5.1 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.5.1
*/
type SearchRequest struct {
	BaseDN       string
	Scope        SearchScope
	DerefAliases int
	SizeLimit    int
	TimeLimit    int
	TypesOnly    bool
	Filter       string
	Attributes   []string
	Controls     []Control
}

// Search performs a Search operation, streaming SearchResultEntry and
// SearchResultReference PDUs into the returned [SearchResult] until the
// terminating SearchResultDone arrives.
func (c *Conn) Search(req *SearchRequest) (*SearchResult, error) {
	if c.async == nil {
		return nil, errUnconnected
	}

	var rfc RFC4515
	filter, err := rfc.Filter(req.Filter)
	if err != nil {
		return nil, errorFilter(err.Error())
	}

	op := ber.Encode(ber.ClassApplication, ber.TypeConstructed, appSearchRequest, nil, "SearchRequest")
	op.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, req.BaseDN, "BaseDN"))
	op.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagEnumerated, req.Scope.Wire(), "Scope"))
	op.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagEnumerated, int64(req.DerefAliases), "DerefAliases"))
	op.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, int64(req.SizeLimit), "SizeLimit"))
	op.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, int64(req.TimeLimit), "TimeLimit"))
	op.AppendChild(ber.NewBoolean(ber.ClassUniversal, ber.TypePrimitive, ber.TagBoolean, req.TypesOnly, "TypesOnly"))
	op.AppendChild(EncodeFilter(filter))
	op.AppendChild(encodeAttrSelection(req.Attributes))

	_, ch, err := c.async.SendRequest(op, req.Controls)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{}
	for r := range ch {
		if r.err != nil {
			return nil, r.err
		}

		switch r.op.Tag {
		case appSearchResultEntry:
			entry, derr := decodeSearchResultEntry(r.op)
			if derr != nil {
				return nil, derr
			}
			result.Entries = append(result.Entries, entry)
		case appSearchResultReference:
			for _, ref := range r.op.Children {
				if uri, ok := ref.Value.(string); ok {
					result.Referrals = append(result.Referrals, uri)
				}
			}
		case appSearchResultDone:
			done, derr := decodeLDAPResult(r.op)
			if derr != nil {
				return nil, derr
			}
			result.Controls = r.ctls
			if derr = done.Err(); derr != nil {
				return result, derr
			}
		}
	}

	return result, nil
}

// SearchUnique performs req and returns its single matching [Entry],
// failing with a KindNotUnique *Error if more than one entry matched.
func (c *Conn) SearchUnique(req *SearchRequest) (*Entry, error) {
	res, err := c.Search(req)
	if err != nil {
		return nil, err
	}

	switch len(res.Entries) {
	case 0:
		return nil, newResultError(32, "no entry matched the filter", req.BaseDN, ``, nil)
	case 1:
		return res.Entries[0], nil
	}

	results := make([]Result, len(res.Entries))
	for i, e := range res.Entries {
		results[i] = Result{MatchedDN: e.DN.String()}
	}
	return nil, newNotUniqueError(results)
}

func decodeSearchResultEntry(pkt *ber.Packet) (*Entry, error) {
	if pkt == nil || len(pkt.Children) < 2 {
		return nil, unknownBERPacket
	}

	dnStr, ok := pkt.Children[0].Value.(string)
	if !ok {
		return nil, unknownBERPacket
	}

	dn, err := ParseDN(dnStr)
	if err != nil {
		return nil, err
	}

	attrs := NewAttributes()
	for _, av := range pkt.Children[1].Children {
		if len(av.Children) < 1 {
			continue
		}
		name, _ := av.Children[0].Value.(string)

		var vals []string
		if len(av.Children) > 1 {
			for _, v := range av.Children[1].Children {
				if s, ok := v.Value.(string); ok {
					vals = append(vals, s)
				}
			}
		}
		attrs.Set(name, vals...)
	}

	return &Entry{DN: dn, Attributes: attrs}, nil
}

// Add performs an Add operation, per [§ 4.7 of RFC 4511].
//
// [§ 4.7 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.7
func (c *Conn) Add(dn string, attrs Attributes) error {
	op := ber.Encode(ber.ClassApplication, ber.TypeConstructed, appAddRequest, nil, "AddRequest")
	op.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, dn, "Entry"))

	al := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "AttributeList")
	for _, name := range attrs.Names() {
		al.AppendChild(encodePartialAttribute(name, attrs.Get(name)))
	}
	op.AppendChild(al)

	result, _, err := c.do(op, nil)
	if err != nil {
		return err
	}
	return result.Err()
}

func encodePartialAttribute(name string, values []string) *ber.Packet {
	seq := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "PartialAttribute")
	seq.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, name, "type"))

	set := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSet, nil, "vals")
	for _, v := range values {
		set.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, v, "val"))
	}
	seq.AppendChild(set)

	return seq
}

// Delete performs a Delete operation, per [§ 4.8 of RFC 4511].
//
// [§ 4.8 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.8
func (c *Conn) Delete(dn string) error {
	op := ber.NewString(ber.ClassApplication, ber.TypePrimitive, appDelRequest, dn, "DelRequest")
	result, _, err := c.do(op, nil)
	if err != nil {
		return err
	}
	return result.Err()
}

// ModifyOp identifies the kind of change a [ModifyChange] applies, per
// [§ 4.6 of RFC 4511].
//
// [§ 4.6 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.6
type ModifyOp int

// ModifyOp constants, matching the ENUMERATED values of § 4.6 of RFC 4511.
const (
	ModifyAdd ModifyOp = iota
	ModifyDelete
	ModifyReplace
)

// ModifyChange is a single change within a Modify operation.
type ModifyChange struct {
	Operation ModifyOp
	Attribute string
	Values    []string
}

// Modify performs a Modify operation, per [§ 4.6 of RFC 4511].
//
// [§ 4.6 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.6
func (c *Conn) Modify(dn string, changes []ModifyChange) error {
	op := ber.Encode(ber.ClassApplication, ber.TypeConstructed, appModifyRequest, nil, "ModifyRequest")
	op.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, dn, "Object"))

	seq := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Changes")
	for _, change := range changes {
		item := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Change")
		item.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagEnumerated, int64(change.Operation), "Operation"))
		item.AppendChild(encodePartialAttribute(change.Attribute, change.Values))
		seq.AppendChild(item)
	}
	op.AppendChild(seq)

	result, _, err := c.do(op, nil)
	if err != nil {
		return err
	}
	return result.Err()
}

// ModifyDN performs a ModifyDN operation, per [§ 4.9 of RFC 4511].
// newSuperior is ignored (omitted from the wire request) when empty.
//
// [§ 4.9 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.9
func (c *Conn) ModifyDN(dn, newRDN string, deleteOldRDN bool, newSuperior string) error {
	op := ber.Encode(ber.ClassApplication, ber.TypeConstructed, appModifyDNRequest, nil, "ModifyDNRequest")
	op.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, dn, "Entry"))
	op.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, newRDN, "NewRDN"))
	op.AppendChild(ber.NewBoolean(ber.ClassUniversal, ber.TypePrimitive, ber.TagBoolean, deleteOldRDN, "DeleteOldRDN"))
	if newSuperior != `` {
		op.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, 0, newSuperior, "NewSuperior"))
	}

	result, _, err := c.do(op, nil)
	if err != nil {
		return err
	}
	return result.Err()
}

// Compare performs a Compare operation, per [§ 4.10 of RFC 4511],
// reporting whether the named attribute of dn holds value.
//
// [§ 4.10 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.10
func (c *Conn) Compare(dn, attribute, value string) (bool, error) {
	op := ber.Encode(ber.ClassApplication, ber.TypeConstructed, appCompareRequest, nil, "CompareRequest")
	op.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, dn, "Entry"))

	ava := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "ava")
	ava.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, attribute, "desc"))
	ava.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, value, "assertionValue"))
	op.AppendChild(ava)

	result, _, err := c.do(op, nil)
	if err != nil {
		return false, err
	}

	switch result.Code {
	case 6: // compareTrue
		return true, nil
	case 5: // compareFalse
		return false, nil
	}

	return false, result.Err()
}

// Schema retrieves and parses ctx's subschemaSubentry, wiring the
// description parsers of schema.go to a live connection: it reads the
// root DSE's subschemaSubentry attribute, then searches that entry's
// object/attribute/syntax/matching-rule definitions into a
// [SubschemaSubentry].
func (c *Conn) Schema(ctx context.Context) (*SubschemaSubentry, error) {
	root, err := c.SearchUnique(&SearchRequest{
		BaseDN:     ``,
		Scope:      ScopeBaseObject,
		Filter:     `(objectClass=*)`,
		Attributes: []string{"subschemaSubentry"},
	})
	if err != nil {
		return nil, err
	}

	subentryDN := root.GetOne("subschemaSubentry")
	if subentryDN == `` {
		return nil, errorTxt("root DSE did not advertise a subschemaSubentry")
	}

	entry, err := c.SearchUnique(&SearchRequest{
		BaseDN: subentryDN,
		Scope:  ScopeBaseObject,
		Filter: `(objectClass=subschema)`,
		Attributes: []string{
			"attributeTypes", "objectClasses", "ldapSyntaxes",
			"matchingRules", "matchingRuleUse", "dITContentRules",
			"nameForms", "dITStructureRules",
		},
	})
	if err != nil {
		return nil, err
	}

	schema := new(SubschemaSubentry)

	for _, raw := range entry.Get("attributeTypes") {
		if def, perr := parseAttributeTypeDescription(raw); perr == nil {
			schema.Push(def)
		}
	}
	for _, raw := range entry.Get("objectClasses") {
		if def, perr := parseObjectClassDescription(raw); perr == nil {
			schema.Push(def)
		}
	}
	for _, raw := range entry.Get("ldapSyntaxes") {
		if def, perr := parseLDAPSyntaxDescription(raw); perr == nil {
			schema.Push(def)
		}
	}
	for _, raw := range entry.Get("matchingRules") {
		if def, perr := parseMatchingRuleDescription(raw); perr == nil {
			schema.Push(def)
		}
	}
	for _, raw := range entry.Get("matchingRuleUse") {
		if def, perr := parseMatchingRuleUseDescription(raw); perr == nil {
			schema.Push(def)
		}
	}
	for _, raw := range entry.Get("dITContentRules") {
		if def, perr := parseDITContentRuleDescription(raw); perr == nil {
			schema.Push(def)
		}
	}
	for _, raw := range entry.Get("nameForms") {
		if def, perr := parseNameFormDescription(raw); perr == nil {
			schema.Push(def)
		}
	}
	for _, raw := range entry.Get("dITStructureRules") {
		if def, perr := parseDITStructureRuleDescription(raw); perr == nil {
			schema.Push(def)
		}
	}

	return schema, nil
}
