package ldap

import (
	"context"
	"crypto/tls"
	"net"
	"sync"

	ber "github.com/go-asn1-ber/asn1-ber"
)

/*
async.go implements component G: the asynchronous connection engine. An
[AsyncConn] owns a single network connection and a background goroutine
that demultiplexes LDAPMessage responses by MessageID, the same
request/response correlation pattern used by every production LDAP
client built atop [go-asn1-ber]. Every blocking convenience in
[Conn] (component H) is built on top of this engine's channel-based
primitives.
*/

// response carries one decoded LDAPMessage response, still addressed to
// the MessageID that requested it.
type response struct {
	op   *ber.Packet
	ctls []Control
	err  error
}

/*
AsyncConn is the low-level, non-blocking LDAP connection engine. Callers
normally reach for [Conn] instead; AsyncConn is exported for callers that
need to pipeline requests without waiting on each response in turn.
*/
type AsyncConn struct {
	writeMu sync.Mutex
	conn    net.Conn

	pendingMu sync.Mutex
	pending   map[int64]chan response

	closeOnce sync.Once
	closed    chan struct{}

	tlsUpgradeMu sync.Mutex
	tlsUpgradeID int64
	tlsUpgradeTo *tls.Config
	tlsUpgraded  chan error
}

// DialAsync establishes an [AsyncConn] over a plain TCP connection.
func DialAsync(ctx context.Context, network, addr string) (*AsyncConn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	return newAsyncConn(conn), nil
}

// DialTLSAsync establishes an [AsyncConn] over an implicit (LDAPS) TLS
// connection.
func DialTLSAsync(ctx context.Context, network, addr string, cfg *tls.Config) (*AsyncConn, error) {
	var d tls.Dialer
	d.Config = cfg
	conn, err := d.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	return newAsyncConn(conn), nil
}

func newAsyncConn(conn net.Conn) *AsyncConn {
	c := &AsyncConn{
		conn:    conn,
		pending: make(map[int64]chan response),
		closed:  make(chan struct{}),
	}
	go c.readLoop()
	return c
}

func (c *AsyncConn) readLoop() {
	for {
		pkt, err := ber.ReadPacket(c.conn)
		if err != nil {
			c.shutdown(err)
			return
		}

		messageID, op, ctls, err := decodeMessage(pkt)
		if err != nil {
			continue
		}

		if isNotice(messageID, op) {
			c.handleNotice(op)
			continue
		}

		c.maybeUpgradeTLS(messageID, op)
		c.dispatch(messageID, op, ctls)
	}
}

// handleNotice processes an unsolicited notification (§ 4.4 of RFC 4511),
// of which only Notice of Disconnection is recognized: it tears the
// connection down from the client side.
func (c *AsyncConn) handleNotice(op *ber.Packet) {
	if len(op.Children) == 0 {
		return
	}
	oid, _ := op.Children[0].Value.(string)
	if oid == OIDNoticeOfDisconnection {
		c.shutdown(errorTxt("server sent Notice of Disconnection"))
	}
}

func (c *AsyncConn) maybeUpgradeTLS(messageID int64, op *ber.Packet) {
	c.tlsUpgradeMu.Lock()
	id, cfg, ch := c.tlsUpgradeID, c.tlsUpgradeTo, c.tlsUpgraded
	c.tlsUpgradeMu.Unlock()

	if cfg == nil || id != messageID || op.Tag != appExtendedResponse {
		return
	}

	result, _ := decodeLDAPResult(op)

	c.tlsUpgradeMu.Lock()
	c.tlsUpgradeTo = nil
	c.tlsUpgradeMu.Unlock()

	if !result.Success() {
		ch <- result.Err()
		return
	}

	tlsConn := tls.Client(c.conn, cfg)
	if err := tlsConn.HandshakeContext(context.Background()); err != nil {
		ch <- err
		return
	}
	c.conn = tlsConn
	ch <- nil
}

func (c *AsyncConn) dispatch(messageID int64, op *ber.Packet, ctls []Control) {
	c.pendingMu.Lock()
	ch, ok := c.pending[messageID]
	if ok && isTerminalOp(op.Tag) {
		delete(c.pending, messageID)
	}
	c.pendingMu.Unlock()

	if !ok {
		return
	}

	ch <- response{op: op, ctls: ctls}

	if isTerminalOp(op.Tag) {
		close(ch)
	}
}

func isTerminalOp(tag ber.Tag) bool {
	switch int(tag) {
	case appBindResponse, appAddResponse, appDelResponse, appModifyResponse,
		appModifyDNResponse, appCompareResponse, appSearchResultDone,
		appExtendedResponse:
		return true
	}
	return false
}

func (c *AsyncConn) shutdown(err error) {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.pendingMu.Lock()
		for id, ch := range c.pending {
			ch <- response{err: err}
			close(ch)
			delete(c.pending, id)
		}
		c.pendingMu.Unlock()
		c.conn.Close()
	})
}

// SendRequest writes op (a fully tagged protocolOp) wrapped in a fresh
// LDAPMessage envelope and returns the MessageID assigned along with a
// channel that will carry every response addressed to it. The channel is
// closed once a terminal response (per [isTerminalOp]) has been
// delivered.
func (c *AsyncConn) SendRequest(op *ber.Packet, ctls []Control) (int64, <-chan response, error) {
	select {
	case <-c.closed:
		return 0, nil, errUnconnected
	default:
	}

	id := nextMessageID()
	ch := make(chan response, 4)

	c.pendingMu.Lock()
	c.pending[id] = ch
	c.pendingMu.Unlock()

	msg := encodeMessage(id, op, ctls)

	c.writeMu.Lock()
	_, err := c.conn.Write(msg.Bytes())
	c.writeMu.Unlock()

	if err != nil {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
		return 0, nil, err
	}

	return id, ch, nil
}

// Abandon sends an AbandonRequest for messageID and releases any local
// channel still pending for it, per [§ 4.11 of RFC 4511].
//
// [§ 4.11 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.11
func (c *AsyncConn) Abandon(messageID int64) error {
	c.pendingMu.Lock()
	if ch, ok := c.pending[messageID]; ok {
		delete(c.pending, messageID)
		close(ch)
	}
	c.pendingMu.Unlock()

	op := ber.NewInteger(ber.ClassApplication, ber.TypePrimitive, appAbandonRequest, messageID, "AbandonRequest")

	id := nextMessageID()
	msg := encodeMessage(id, op, nil)

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err := c.conn.Write(msg.Bytes())
	return err
}

// StartTLS sends the Start TLS extended request of [RFC 4511] and, on a
// successful response, performs the in-place TLS handshake from within
// the read loop goroutine itself -- the same goroutine that is the sole
// reader of the underlying [net.Conn] -- so no concurrent access to the
// connection is possible during the upgrade.
//
// [RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511
func (c *AsyncConn) StartTLS(cfg *tls.Config) error {
	select {
	case <-c.closed:
		return errUnconnected
	default:
	}

	id := nextMessageID()
	respCh := make(chan response, 1)
	upgradeCh := make(chan error, 1)

	c.tlsUpgradeMu.Lock()
	c.tlsUpgradeID = id
	c.tlsUpgradeTo = cfg
	c.tlsUpgraded = upgradeCh
	c.tlsUpgradeMu.Unlock()

	c.pendingMu.Lock()
	c.pending[id] = respCh
	c.pendingMu.Unlock()

	op := encodeExtendedRequest(OIDStartTLS, nil)
	msg := encodeMessage(id, op, nil)

	c.writeMu.Lock()
	_, err := c.conn.Write(msg.Bytes())
	c.writeMu.Unlock()
	if err != nil {
		return err
	}

	if err = <-upgradeCh; err != nil {
		return err
	}

	r := <-respCh
	if r.err != nil {
		return r.err
	}

	result, err := decodeLDAPResult(r.op)
	if err != nil {
		return err
	}
	return result.Err()
}

// Close terminates the underlying connection and releases any pending
// requests with [errUnconnected].
func (c *AsyncConn) Close() error {
	c.shutdown(errUnconnected)
	return nil
}

// OIDNoticeOfDisconnection is the responseName borne by an unsolicited
// ExtendedResponse announcing server-initiated disconnection, per
// [§ 4.4.1 of RFC 4511].
//
// [§ 4.4.1 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.4.1
const OIDNoticeOfDisconnection = `1.3.6.1.4.1.1466.20036`

// decodeLDAPResult extracts the common LDAPResult prefix (resultCode,
// matchedDN, diagnosticMessage, optional referral) shared by every
// response PDU, per [§ 4.1.9 of RFC 4511].
//
// [§ 4.1.9 of RFC 4511]: https://datatracker.ietf.org/doc/html/rfc4511#section-4.1.9
func decodeLDAPResult(op *ber.Packet) (r Result, err error) {
	if op == nil || len(op.Children) < 3 {
		err = unknownBERPacket
		return
	}

	code, ok := op.Children[0].Value.(int64)
	if !ok {
		err = unknownBERPacket
		return
	}
	r.Code = int(code)

	r.MatchedDN, _ = op.Children[1].Value.(string)
	r.Message, _ = op.Children[2].Value.(string)

	for _, child := range op.Children[3:] {
		if child.Tag == 3 {
			for _, ref := range child.Children {
				if uri, ok := ref.Value.(string); ok {
					r.Referrals = append(r.Referrals, uri)
				}
			}
		}
	}

	return
}
