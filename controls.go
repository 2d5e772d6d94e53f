package ldap

import (
	ber "github.com/go-asn1-ber/asn1-ber"
)

/*
controls.go implements [§ 4.1.11 of RFC 4511]: the Control envelope that
rides alongside a request or response message, plus the well-known OIDs
this package recognizes natively (paged results, server-side sort, the
subtree-delete and manage-DSA-IT switches). Wire framing follows the
teacher's BER-handling conventions, built atop [go-asn1-ber] rather than
a bespoke DER codec.

[§ 4.1.11 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.1.11
[go-asn1-ber]: https://github.com/go-asn1-ber/asn1-ber
*/

// Well-known control OIDs this package encodes/decodes natively.
const (
	OIDPagedResults        = `1.2.840.113556.1.4.319`
	OIDServerSideSort      = `1.2.840.113556.1.4.473`
	OIDSortResult          = `1.2.840.113556.1.4.474`
	OIDVLVRequest          = `2.16.840.1.113730.3.4.9`
	OIDVLVResponse         = `2.16.840.1.113730.3.4.10`
	OIDSubtreeDelete       = `1.2.840.113556.1.4.805`
	OIDManageDsaIT         = `2.16.840.1.113730.3.4.2`
	OIDPasswordPolicy      = `1.3.6.1.4.1.42.2.27.8.5.1`
	OIDAssertion           = `1.3.6.1.1.12`
	OIDPreReadEntry        = `1.3.6.1.1.13.1`
	OIDPostReadEntry       = `1.3.6.1.1.13.2`
	OIDProxyAuthorization  = `2.16.840.1.113730.3.4.18`
	OIDRelaxRules          = `1.3.6.1.4.1.4203.666.5.12`
	OIDDontUseCopy         = `1.3.6.1.1.22`
	OIDNoOp                = `1.3.6.1.4.1.4203.1.10.2`
	OIDTransactionSpec     = `1.3.6.1.1.21.2`
)

/*
Control implements a generic LDAP control as described in [§ 4.1.11 of
RFC 4511]:

	Control ::= SEQUENCE {
	     controlType             LDAPOID,
	     criticality             BOOLEAN DEFAULT FALSE,
	     controlValue            OCTET STRING OPTIONAL }

[§ 4.1.11 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.1.11
*/
type Control struct {
	Type        string
	Criticality bool
	Value       []byte
}

// String returns the control's OID, flagged with a trailing asterisk
// when marked critical.
func (c Control) String() string {
	if c.Criticality {
		return c.Type + `*`
	}
	return c.Type
}

func (c Control) encode() *ber.Packet {
	pkt := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Control")
	pkt.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, c.Type, "Control Type"))
	if c.Criticality {
		pkt.AppendChild(ber.NewBoolean(ber.ClassUniversal, ber.TypePrimitive, ber.TagBoolean, true, "Criticality"))
	}
	if c.Value != nil {
		pkt.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, string(c.Value), "Control Value"))
	}
	return pkt
}

func decodeControl(pkt *ber.Packet) (c Control, err error) {
	if len(pkt.Children) < 1 {
		err = errorTxt("Control: missing controlType")
		return
	}
	c.Type, _ = pkt.Children[0].Value.(string)
	if !ValidLDAPOID(c.Type) {
		err = errorTxt("Control: controlType is not a valid LDAPOID: " + c.Type)
		return
	}

	for _, child := range pkt.Children[1:] {
		switch v := child.Value.(type) {
		case bool:
			c.Criticality = v
		case string:
			c.Value = []byte(v)
		}
	}

	return
}

func encodeControls(ctls []Control) *ber.Packet {
	if len(ctls) == 0 {
		return nil
	}
	seq := ber.Encode(ber.ClassContext, ber.TypeConstructed, 0, nil, "Controls")
	for _, c := range ctls {
		seq.AppendChild(c.encode())
	}
	return seq
}

func decodeControls(pkt *ber.Packet) (ctls []Control, err error) {
	if pkt == nil {
		return
	}
	for _, child := range pkt.Children {
		var c Control
		if c, err = decodeControl(child); err != nil {
			return
		}
		ctls = append(ctls, c)
	}
	return
}

/*
PagedResultsControl implements the simple paged results control defined
by [RFC 2696], identified by [OIDPagedResults].

[RFC 2696]: https://datatracker.ietf.org/doc/html/rfc2696
*/
type PagedResultsControl struct {
	PageSize uint32
	Cookie   []byte
}

// Control marshals the receiver into a generic [Control].
func (p PagedResultsControl) Control() Control {
	inner := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "PagedResults")
	inner.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, int64(p.PageSize), "Page Size"))
	inner.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, string(p.Cookie), "Cookie"))

	return Control{
		Type:  OIDPagedResults,
		Value: inner.Bytes(),
	}
}

// ParsePagedResultsControl decodes c.Value into a [PagedResultsControl].
func ParsePagedResultsControl(c Control) (p PagedResultsControl, err error) {
	if c.Type != OIDPagedResults {
		err = errorTxt("Control: not a paged results control")
		return
	}

	pkt := ber.DecodePacket(c.Value)
	if pkt == nil || len(pkt.Children) < 2 {
		err = errorTxt("PagedResultsControl: malformed control value")
		return
	}

	size, ok := pkt.Children[0].Value.(int64)
	if !ok {
		err = errorTxt("PagedResultsControl: malformed page size")
		return
	}
	p.PageSize = uint32(size)

	cookie, ok := pkt.Children[1].Value.(string)
	if !ok {
		err = errorTxt("PagedResultsControl: malformed cookie")
		return
	}
	p.Cookie = []byte(cookie)

	return
}

/*
ManageDsaITControl implements the ManageDsaIT control of [RFC 3296],
which suppresses dereferencing of alias and referral-bearing entries.

[RFC 3296]: https://datatracker.ietf.org/doc/html/rfc3296
*/
type ManageDsaITControl struct{}

// Control marshals the receiver into a generic [Control].
func (ManageDsaITControl) Control() Control {
	return Control{Type: OIDManageDsaIT, Criticality: true}
}

/*
SortKey describes a single attribute to order a search result set by,
per [RFC 2891].

[RFC 2891]: https://datatracker.ietf.org/doc/html/rfc2891
*/
type SortKey struct {
	AttributeType string
	MatchingRule  string
	Reverse       bool
}

func (k SortKey) encode() *ber.Packet {
	seq := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "SortKey")
	seq.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, k.AttributeType, "attributeType"))
	if k.MatchingRule != `` {
		seq.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, 0, k.MatchingRule, "matchingRule"))
	}
	if k.Reverse {
		seq.AppendChild(ber.NewBoolean(ber.ClassContext, ber.TypePrimitive, 1, true, "reverseOrder"))
	}
	return seq
}

/*
ServerSideSortControl implements the server-side sort request control of
[RFC 2891], identified by [OIDServerSideSort].

[RFC 2891]: https://datatracker.ietf.org/doc/html/rfc2891
*/
type ServerSideSortControl struct {
	Keys []SortKey
}

// Control marshals the receiver into a generic [Control].
func (s ServerSideSortControl) Control() Control {
	seq := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "SortKeyList")
	for _, k := range s.Keys {
		seq.AppendChild(k.encode())
	}
	return Control{Type: OIDServerSideSort, Value: seq.Bytes()}
}

/*
SortResultControl implements the sort result response control of
[RFC 2891], identified by [OIDSortResult].

[RFC 2891]: https://datatracker.ietf.org/doc/html/rfc2891
*/
type SortResultControl struct {
	Code            int
	AttributeType   string
}

// ParseSortResultControl decodes c.Value into a [SortResultControl].
func ParseSortResultControl(c Control) (s SortResultControl, err error) {
	if c.Type != OIDSortResult {
		err = errorTxt("Control: not a sort result control")
		return
	}
	pkt := ber.DecodePacket(c.Value)
	if pkt == nil || len(pkt.Children) < 1 {
		err = errorTxt("SortResultControl: malformed control value")
		return
	}
	code, ok := pkt.Children[0].Value.(int64)
	if !ok {
		err = errorTxt("SortResultControl: malformed sortResult")
		return
	}
	s.Code = int(code)
	if len(pkt.Children) > 1 {
		s.AttributeType, _ = pkt.Children[1].Value.(string)
	}
	return
}

/*
VLVRequestControl implements the virtual list view request control of
draft-ietf-ldapext-ldapv3-vlv, identified by [OIDVLVRequest]. It must
ride alongside a [ServerSideSortControl].
*/
type VLVRequestControl struct {
	BeforeCount uint32
	AfterCount  uint32
	Offset      uint32
	ContentCount uint32
	ContextID   []byte
}

// Control marshals the receiver into a generic [Control].
func (v VLVRequestControl) Control() Control {
	seq := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "VirtualListViewRequest")
	seq.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, int64(v.BeforeCount), "beforeCount"))
	seq.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, int64(v.AfterCount), "afterCount"))

	target := ber.Encode(ber.ClassContext, ber.TypeConstructed, 0, nil, "byOffset")
	target.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, int64(v.Offset), "offset"))
	target.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, int64(v.ContentCount), "contentCount"))
	seq.AppendChild(target)

	if v.ContextID != nil {
		seq.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, string(v.ContextID), "contextID"))
	}

	return Control{Type: OIDVLVRequest, Value: seq.Bytes()}
}

/*
VLVResponseControl implements the virtual list view response control,
identified by [OIDVLVResponse].
*/
type VLVResponseControl struct {
	TargetPosition uint32
	ContentCount   uint32
	Code           int
	ContextID      []byte
}

// ParseVLVResponseControl decodes c.Value into a [VLVResponseControl].
func ParseVLVResponseControl(c Control) (v VLVResponseControl, err error) {
	if c.Type != OIDVLVResponse {
		err = errorTxt("Control: not a VLV response control")
		return
	}
	pkt := ber.DecodePacket(c.Value)
	if pkt == nil || len(pkt.Children) < 3 {
		err = errorTxt("VLVResponseControl: malformed control value")
		return
	}
	pos, _ := pkt.Children[0].Value.(int64)
	cnt, _ := pkt.Children[1].Value.(int64)
	code, _ := pkt.Children[2].Value.(int64)
	v.TargetPosition, v.ContentCount, v.Code = uint32(pos), uint32(cnt), int(code)
	if len(pkt.Children) > 3 {
		if s, ok := pkt.Children[3].Value.(string); ok {
			v.ContextID = []byte(s)
		}
	}
	return
}

/*
SubtreeDeleteControl implements the subtree delete control, identified
by [OIDSubtreeDelete], requesting that the server recursively remove an
entire subtree on an otherwise-rejected non-leaf Delete operation.
*/
type SubtreeDeleteControl struct{}

// Control marshals the receiver into a generic [Control].
func (SubtreeDeleteControl) Control() Control {
	return Control{Type: OIDSubtreeDelete, Criticality: true}
}

/*
NoOpControl implements the No-Op request control, identified by
[OIDNoOp]. Attached to a Modify, Add, Delete or ModifyDN request, it
asks the server to validate and report the outcome of the operation
without actually applying it.
*/
type NoOpControl struct{}

// Control marshals the receiver into a generic [Control].
func (NoOpControl) Control() Control {
	return Control{Type: OIDNoOp, Criticality: true}
}

/*
PasswordPolicyControl implements the request form of the password
policy control, identified by [OIDPasswordPolicy].
*/
type PasswordPolicyControl struct{}

// Control marshals the receiver into a generic [Control].
func (PasswordPolicyControl) Control() Control {
	return Control{Type: OIDPasswordPolicy}
}

/*
PasswordPolicyResponse decodes the response form of the password policy
control, reporting warnings (time/grace remaining before expiry) and
any policy-related error the server attached to a Bind, Modify or
Extended response.
*/
type PasswordPolicyResponse struct {
	TimeBeforeExpiration int64
	GraceAuthNsRemaining int64
	Error                int
	HasError             bool
}

// ParsePasswordPolicyResponse decodes c.Value into a
// [PasswordPolicyResponse].
func ParsePasswordPolicyResponse(c Control) (p PasswordPolicyResponse, err error) {
	if c.Type != OIDPasswordPolicy {
		err = errorTxt("Control: not a password policy control")
		return
	}
	p.TimeBeforeExpiration, p.GraceAuthNsRemaining = -1, -1

	pkt := ber.DecodePacket(c.Value)
	if pkt == nil {
		return
	}
	for _, child := range pkt.Children {
		switch child.Tag {
		case 0: // warning [0]
			for _, w := range child.Children {
				if v, ok := w.Value.(int64); ok {
					switch w.Tag {
					case 0:
						p.TimeBeforeExpiration = v
					case 1:
						p.GraceAuthNsRemaining = v
					}
				}
			}
		case 1: // error [1]
			if v, ok := child.Value.(int64); ok {
				p.Error = int(v)
				p.HasError = true
			}
		}
	}
	return
}

/*
AssertionControl implements the assertion control of [RFC4528]: the
accompanying operation only proceeds if the target entry matches the
supplied filter.

[RFC4528]: https://datatracker.ietf.org/doc/html/rfc4528
*/
type AssertionControl struct {
	Filter Filter
}

// Control marshals the receiver into a generic [Control].
func (a AssertionControl) Control() Control {
	return Control{Type: OIDAssertion, Criticality: true, Value: EncodeFilter(a.Filter).Bytes()}
}

/*
PreReadControl and PostReadControl implement the read-entry controls of
[RFC4527], returning the state of the target entry as it was before, or
as it became after, a Modify, ModifyDN, Add or Delete operation.

[RFC4527]: https://datatracker.ietf.org/doc/html/rfc4527
*/
type PreReadControl struct {
	Attributes []string
}

// Control marshals the receiver into a generic [Control].
func (p PreReadControl) Control() Control {
	return Control{Type: OIDPreReadEntry, Value: encodeAttrSelection(p.Attributes).Bytes()}
}

// PostReadControl is the [RFC4527] complement of [PreReadControl],
// requesting the post-operation state of the target entry.
type PostReadControl struct {
	Attributes []string
}

// Control marshals the receiver into a generic [Control].
func (p PostReadControl) Control() Control {
	return Control{Type: OIDPostReadEntry, Value: encodeAttrSelection(p.Attributes).Bytes()}
}

func encodeAttrSelection(attrs []string) *ber.Packet {
	seq := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "AttributeSelection")
	for _, a := range attrs {
		seq.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, a, "attr"))
	}
	return seq
}

// ParseReadEntryControl decodes a Pre/PostReadControl response value
// (a SearchResultEntry) into an [Entry].
func ParseReadEntryControl(c Control) (e *Entry, err error) {
	pkt := ber.DecodePacket(c.Value)
	if pkt == nil || len(pkt.Children) < 1 {
		err = errorTxt("ReadEntryControl: malformed control value")
		return
	}
	return decodeSearchResultEntry(pkt)
}

/*
ProxyAuthorizationControl implements the proxied authorization control
of [RFC4370], causing the accompanying operation to be evaluated as
though performed by authzID rather than the bound identity.

[RFC4370]: https://datatracker.ietf.org/doc/html/rfc4370
*/
type ProxyAuthorizationControl struct {
	AuthzID string
}

// Control marshals the receiver into a generic [Control].
func (p ProxyAuthorizationControl) Control() Control {
	return Control{Type: OIDProxyAuthorization, Criticality: true, Value: []byte(p.AuthzID)}
}

/*
RelaxRulesControl implements the relax rules control of
draft-zeilenga-ldap-relax, instructing the server to waive certain
schema and operational-attribute constraints for the accompanying
operation.
*/
type RelaxRulesControl struct{}

// Control marshals the receiver into a generic [Control].
func (RelaxRulesControl) Control() Control {
	return Control{Type: OIDRelaxRules, Criticality: true}
}

/*
DontUseCopyControl implements the "don't use copy" control of
[RFC 6171], requiring the server to service the request from an
authoritative source rather than a replica or cache.

[RFC 6171]: https://datatracker.ietf.org/doc/html/rfc6171
*/
type DontUseCopyControl struct{}

// Control marshals the receiver into a generic [Control].
func (DontUseCopyControl) Control() Control {
	return Control{Type: OIDDontUseCopy, Criticality: true}
}

