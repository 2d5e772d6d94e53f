package ldap

import (
	"testing"

	ber "github.com/go-asn1-ber/asn1-ber"
)

func TestEncodeDecodeMessage(t *testing.T) {
	op := ber.Encode(ber.ClassApplication, ber.TypeConstructed, appDelRequest, nil, "DelRequest")

	ctls := []Control{{Type: OIDManageDsaIT, Criticality: true}}

	msg := encodeMessage(7, op, ctls)

	pkt := ber.DecodePacket(msg.Bytes())
	if pkt == nil {
		t.Fatalf("%s failed: re-decoded packet is nil", t.Name())
	}

	id, decodedOp, decodedCtls, err := decodeMessage(pkt)
	if err != nil {
		t.Fatalf("%s failed: %v", t.Name(), err)
	}

	if id != 7 {
		t.Errorf("%s failed: want messageID 7, got %d", t.Name(), id)
	}
	if decodedOp == nil || decodedOp.Tag != appDelRequest {
		t.Errorf("%s failed: wrong protocolOp tag: %+v", t.Name(), decodedOp)
	}
	if len(decodedCtls) != 1 || decodedCtls[0].Type != OIDManageDsaIT {
		t.Errorf("%s failed: wrong controls: %+v", t.Name(), decodedCtls)
	}
}

func TestDecodeMessage_Malformed(t *testing.T) {
	if _, _, _, err := decodeMessage(nil); err == nil {
		t.Errorf("%s failed: expected error for nil packet", t.Name())
	}

	short := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "short")
	short.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, int64(1), "MessageID"))
	if _, _, _, err := decodeMessage(short); err == nil {
		t.Errorf("%s failed: expected error for message missing protocolOp", t.Name())
	}
}

func TestNextMessageID_Monotonic(t *testing.T) {
	a := nextMessageID()
	b := nextMessageID()
	if b <= a {
		t.Errorf("%s failed: want strictly increasing IDs, got %d then %d", t.Name(), a, b)
	}
}

func TestIsNotice(t *testing.T) {
	op := ber.Encode(ber.ClassApplication, ber.TypeConstructed, appExtendedResponse, nil, "ExtendedResponse")
	if !isNotice(0, op) {
		t.Errorf("%s failed: want true for messageID 0 ExtendedResponse", t.Name())
	}
	if isNotice(1, op) {
		t.Errorf("%s failed: want false for non-zero messageID", t.Name())
	}

	other := ber.Encode(ber.ClassApplication, ber.TypeConstructed, appSearchResultDone, nil, "SearchResultDone")
	if isNotice(0, other) {
		t.Errorf("%s failed: want false for non-ExtendedResponse op", t.Name())
	}
}
