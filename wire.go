package ldap

import (
	"sync/atomic"

	ber "github.com/go-asn1-ber/asn1-ber"
)

/*
wire.go implements the LDAPMessage envelope of [§ 4.1.1 of RFC 4511]
that every protocol operation travels inside, plus the protocolOp
application tags the async connection engine dispatches on.

	LDAPMessage ::= SEQUENCE {
	     messageID       MessageID,
	     protocolOp      CHOICE { ... },
	     controls        [0] Controls OPTIONAL }

[§ 4.1.1 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.1.1
*/

// Application-class protocolOp tags, per § 4.2 through § 4.12 of RFC 4511.
const (
	appBindRequest           = 0
	appBindResponse          = 1
	appUnbindRequest         = 2
	appSearchRequest         = 3
	appSearchResultEntry     = 4
	appSearchResultDone      = 5
	appModifyRequest         = 6
	appModifyResponse        = 7
	appAddRequest            = 8
	appAddResponse           = 9
	appDelRequest            = 10
	appDelResponse           = 11
	appModifyDNRequest       = 12
	appModifyDNResponse      = 13
	appCompareRequest        = 14
	appCompareResponse       = 15
	appAbandonRequest        = 16
	appSearchResultReference = 19
	appExtendedRequest       = 23
	appExtendedResponse      = 24
)

var globalMessageID int64

// nextMessageID returns the next monotonically increasing MessageID,
// shared across every [AsyncConn] in the process.
func nextMessageID() int64 {
	return atomic.AddInt64(&globalMessageID, 1)
}

// encodeMessage wraps op (an already-tagged protocolOp packet) and ctls
// into a complete LDAPMessage envelope.
func encodeMessage(messageID int64, op *ber.Packet, ctls []Control) *ber.Packet {
	msg := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "LDAPMessage")
	msg.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, messageID, "MessageID"))
	msg.AppendChild(op)

	if c := encodeControls(ctls); c != nil {
		msg.AppendChild(c)
	}

	return msg
}

// decodeMessage unwraps an LDAPMessage envelope, returning its message
// ID, its protocolOp child packet, and any controls it carried.
func decodeMessage(pkt *ber.Packet) (messageID int64, op *ber.Packet, ctls []Control, err error) {
	if pkt == nil || len(pkt.Children) < 2 {
		err = unknownBERPacket
		return
	}

	id, ok := pkt.Children[0].Value.(int64)
	if !ok {
		err = unknownBERPacket
		return
	}
	messageID = id
	op = pkt.Children[1]

	if len(pkt.Children) > 2 {
		ctls, err = decodeControls(pkt.Children[2])
	}

	return
}

// isNotice reports whether op is an unsolicited notification: an
// ExtendedResponse bearing messageID zero, per § 4.4 of RFC 4511.
func isNotice(messageID int64, op *ber.Packet) bool {
	return messageID == 0 && op != nil && op.Tag == appExtendedResponse
}
