package ldap

import (
	ber "github.com/go-asn1-ber/asn1-ber"
	"github.com/google/uuid"
)

/*
transaction.go implements component I: the transaction bracketing of
[RFC 5805]. A [Transaction] wraps a bound [Conn], carries the opaque
transaction identifier the server assigns in its StartTransaction
response, and attaches a [TransactionSpecification] control to every
update operation performed while it is open.

Because the RFC leaves transaction identifiers entirely opaque to the
client, every [Transaction] is additionally tagged with a locally
generated [uuid.UUID] correlation ID, exposed through [Transaction.ID]
so a caller can trace the start/update/end lifecycle of a given
transaction in its own logs. This package logs nothing itself, and the
correlation ID is never sent on the wire.

[RFC 5805]: https://datatracker.ietf.org/doc/html/rfc5805
*/

// Transaction is an open LDAP transaction, per [RFC 5805].
//
// [RFC 5805]: https://datatracker.ietf.org/doc/html/rfc5805
type Transaction struct {
	conn          *Conn
	correlationID uuid.UUID
	identifier    []byte
}

// StartTransaction opens a transaction on c, per [§ 2 of RFC 5805].
//
// [§ 2 of RFC 5805]: https://datatracker.ietf.org/doc/html/rfc5805#section-2
func (c *Conn) StartTransaction() (*Transaction, error) {
	ext, err := c.extended(OIDStartTransaction, nil)
	if err != nil {
		return nil, err
	}

	if len(ext.Value) == 0 {
		return nil, errorTxt("StartTransaction: server returned no transaction identifier")
	}

	return &Transaction{
		conn:          c,
		correlationID: uuid.New(),
		identifier:    ext.Value,
	}, nil
}

// ID returns the client-local correlation ID used to trace this
// transaction's lifecycle; it is not transmitted on the wire.
func (t *Transaction) ID() uuid.UUID { return t.correlationID }

// spec returns the [TransactionSpecification] control to attach to an
// update operation performed within the transaction.
func (t *Transaction) spec() Control {
	return Control{
		Type:        OIDTransactionSpec,
		Criticality: true,
		Value:       t.identifier,
	}
}

// Add performs an Add operation within the transaction.
func (t *Transaction) Add(dn string, attrs Attributes) error {
	op := ber.Encode(ber.ClassApplication, ber.TypeConstructed, appAddRequest, nil, "AddRequest")
	op.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, dn, "Entry"))

	al := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "AttributeList")
	for _, name := range attrs.Names() {
		al.AppendChild(encodePartialAttribute(name, attrs.Get(name)))
	}
	op.AppendChild(al)

	result, _, err := t.conn.do(op, []Control{t.spec()})
	if err != nil {
		return err
	}
	return result.Err()
}

// Delete performs a Delete operation within the transaction.
func (t *Transaction) Delete(dn string) error {
	op := ber.NewString(ber.ClassApplication, ber.TypePrimitive, appDelRequest, dn, "DelRequest")
	result, _, err := t.conn.do(op, []Control{t.spec()})
	if err != nil {
		return err
	}
	return result.Err()
}

// Modify performs a Modify operation within the transaction.
func (t *Transaction) Modify(dn string, changes []ModifyChange) error {
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

	result, _, err := t.conn.do(op, []Control{t.spec()})
	if err != nil {
		return err
	}
	return result.Err()
}

// Commit ends the transaction with commit=TRUE, per [§ 3 of RFC 5805].
//
// [§ 3 of RFC 5805]: https://datatracker.ietf.org/doc/html/rfc5805#section-3
func (t *Transaction) Commit() error {
	return t.end(true)
}

// Abort ends the transaction with commit=FALSE, discarding every
// update performed within it.
func (t *Transaction) Abort() error {
	return t.end(false)
}

func (t *Transaction) end(commit bool) error {
	seq := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "txnEndReq")
	if !commit {
		seq.AppendChild(ber.NewBoolean(ber.ClassUniversal, ber.TypePrimitive, ber.TagBoolean, false, "commit"))
	}
	seq.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, string(t.identifier), "identifier"))

	ext, err := t.conn.extended(OIDEndTransaction, seq.Bytes())
	if err != nil {
		return err
	}
	return ext.Result.Err()
}
