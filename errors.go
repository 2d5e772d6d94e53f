package ldap

/*
errors.go implements the closed error taxonomy of component A: a Kind enum
mapped from LDAP result codes and protocol conditions, and a concrete Error
type carrying the fields a caller needs to triage a failed operation. The
small errorTxt/errorBadType/errorBadLength constructors keep the same shape
the upstream go-dirsyn err.go uses for its own parse errors, generalized to
also build a typed *Error when a Kind is known.
*/

// Kind identifies the category of an Error. The zero Kind (KindUnknown) is
// what [KindFromResultCode] returns for result code 0 (success); no *Error
// built by this package carries it otherwise.
type Kind uint16

const (
	KindUnknown Kind = iota

	// Semantic (server-reported, result-code-driven) kinds.
	KindNoSuchObject
	KindAlreadyExists
	KindInsufficientAccess
	KindInvalidCredentials
	KindObjectClassViolation
	KindUnavailableCriticalExtension
	KindAssertionFailed
	KindUnwillingToPerform
	KindAllowedOnNonleaf
	KindConstraintViolation
	KindNoSuchAttribute
	KindInvalidAttributeSyntax
	KindNotAllowedOnRDN
	KindEntryAlreadyExists
	KindBusy
	KindUnavailable
	KindOther

	// Protocol kinds.
	KindProtocolError
	KindFilterError
	KindInvalidDN
	KindVLVError
	KindNoSuchOperation

	// Transport kinds.
	KindServerDown
	KindTimeout
	KindTLSError
	KindNetworkError

	// Library-specific kinds.
	KindNotUnique
	KindRuntimeErrorUnconnected
)

func (k Kind) String() string {
	switch k {
	case KindNoSuchObject:
		return "NoSuchObject"
	case KindAlreadyExists:
		return "AlreadyExists"
	case KindInsufficientAccess:
		return "InsufficientAccess"
	case KindInvalidCredentials:
		return "InvalidCredentials"
	case KindObjectClassViolation:
		return "ObjectClassViolation"
	case KindUnavailableCriticalExtension:
		return "UnavailableCriticalExtension"
	case KindAssertionFailed:
		return "AssertionFailed"
	case KindUnwillingToPerform:
		return "UnwillingToPerform"
	case KindAllowedOnNonleaf:
		return "AllowedOnNonleaf"
	case KindConstraintViolation:
		return "ConstraintViolation"
	case KindNoSuchAttribute:
		return "NoSuchAttribute"
	case KindInvalidAttributeSyntax:
		return "InvalidAttributeSyntax"
	case KindNotAllowedOnRDN:
		return "NotAllowedOnRDN"
	case KindEntryAlreadyExists:
		return "EntryAlreadyExists"
	case KindBusy:
		return "Busy"
	case KindUnavailable:
		return "Unavailable"
	case KindProtocolError:
		return "ProtocolError"
	case KindFilterError:
		return "FilterError"
	case KindInvalidDN:
		return "InvalidDN"
	case KindVLVError:
		return "VLVError"
	case KindNoSuchOperation:
		return "NoSuchOperation"
	case KindServerDown:
		return "ServerDown"
	case KindTimeout:
		return "Timeout"
	case KindTLSError:
		return "TLSError"
	case KindNetworkError:
		return "NetworkError"
	case KindNotUnique:
		return "NotUnique"
	case KindRuntimeErrorUnconnected:
		return "RuntimeErrorUnconnected"
	case KindOther:
		return "Other"
	}
	return "Unknown"
}

// Transient reports whether operations failing with this Kind should be
// retried by the connection engine's automatic-reconnect policy (§4.G).
func (k Kind) Transient() bool {
	switch k {
	case KindServerDown, KindTimeout, KindNetworkError, KindBusy, KindUnavailable:
		return true
	}
	return false
}

// resultCodeKinds maps LDAP result codes (RFC 4511 §4.1.9) to a Kind.
var resultCodeKinds = map[int]Kind{
	1:  KindProtocolError, // operationsError
	2:  KindProtocolError, // protocolError (also LDAPv2 compat)
	3:  KindTimeout,       // timeLimitExceeded
	4:  KindOther,         // sizeLimitExceeded
	32: KindNoSuchObject,
	34: KindInvalidDN, // invalidDNSyntax
	48: KindOther,     // inappropriateAuthentication
	49: KindInvalidCredentials,
	50: KindInsufficientAccess,
	51: KindBusy,
	52: KindUnavailable,
	53: KindUnwillingToPerform,
	65: KindObjectClassViolation,
	66: KindAllowedOnNonleaf, // notAllowedOnNonLeaf
	67: KindNotAllowedOnRDN,  // notAllowedOnRDN
	68: KindEntryAlreadyExists,
	69: KindObjectClassViolation, // objectClassModsProhibited
	12: KindUnavailableCriticalExtension,
	16: KindNoSuchAttribute,
	21: KindInvalidAttributeSyntax,
	20: KindAlreadyExists, // attributeOrValueExists
	19: KindConstraintViolation,
	122: KindAssertionFailed,
	76:  KindVLVError,
	118: KindOther, // canceled
	119: KindNoSuchOperation,
}

// KindFromResultCode resolves the Kind for an LDAP result code as received
// on the wire. Unrecognized non-zero codes resolve to KindOther.
func KindFromResultCode(code int) Kind {
	if code == 0 {
		return KindUnknown
	}
	if k, ok := resultCodeKinds[code]; ok {
		return k
	}
	return KindOther
}

/*
Error is the concrete error type returned by every fallible operation in
this package. It is a value type: safe to copy, and stable
under gob/json round-tripping so it can cross a connection-pool boundary
(spec.md §7) unchanged.
*/
type Error struct {
	Kind        Kind
	Description string
	Info        string
	MatchedDN   string
	BaseDN      string
	ResultCode  int
	Errno       int
	Controls    []Control
	// Results carries the partial result set for KindNotUnique errors.
	Results []Result
}

func (e *Error) Error() string {
	s := e.Kind.String() + ": " + e.Description
	if e.Info != "" {
		s += " (" + e.Info + ")"
	}
	if e.MatchedDN != "" {
		s += " [matched: " + e.MatchedDN + "]"
	}
	return s
}

// Is supports errors.Is comparison by Kind, so callers can write
// errors.Is(err, &Error{Kind: KindNoSuchObject}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind Kind, description string) *Error {
	return &Error{Kind: kind, Description: description}
}

func newResultError(code int, description, matchedDN, info string, controls []Control) *Error {
	return &Error{
		Kind:        KindFromResultCode(code),
		Description: description,
		Info:        info,
		MatchedDN:   matchedDN,
		ResultCode:  code,
		Controls:    controls,
	}
}

func newNotUniqueError(results []Result) *Error {
	return &Error{
		Kind:        KindNotUnique,
		Description: "search matched more than one entry",
		Results:     results,
	}
}

func errorBadLength(name string, length int) error {
	return mkerr(`Invalid length '` + fmtInt(int64(length), 10) + `' for ` + name)
}

func errorBadType(name string) error {
	return mkerr(`Incompatible input type for ` + name)
}

func errorTxt(txt string) error {
	return mkerr(txt)
}

func errorDN(txt string) error {
	return &Error{Kind: KindInvalidDN, Description: txt}
}

func errorFilter(txt string) error {
	return &Error{Kind: KindFilterError, Description: txt}
}

var (
	nilBEREncodeErr   error = mkerr("cannot BER encode nil instance")
	unknownBERPacket  error = mkerr("unidentified BER packet; cannot process")
	endOfFilterErr    error = errorFilter("unexpected end of filter")
	invalidFilterErr  error = errorFilter("invalid or malformed filter")
	emptyFilterSetErr error = errorFilter("zero or invalid filter SET")
	errUnconnected    error = &Error{Kind: KindRuntimeErrorUnconnected, Description: "connection is not established"}
)
