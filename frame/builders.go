package frame

import (
	"fmt"
	"strings"
)

// Opt applies an optional header (or other mutation) to a frame under
// construction. Modeled on the teacher's functional-option idiom for
// frame tagging (subscription.go's "opts ...func(*frame.Frame) error").
type Opt func(*Frame) error

// WithHeader adds an arbitrary user header.
func WithHeader(name, value string) Opt {
	return func(f *Frame) error {
		f.Header.Add(name, value)
		return nil
	}
}

// WithReceipt tags the frame with a receipt header, registering it for
// a matching RECEIPT from the broker (spec §4.2, §4.3 "Receipts").
func WithReceipt(receiptID string) Opt {
	return WithHeader(Receipt, receiptID)
}

func applyOpts(f *Frame, opts []Opt) error {
	for _, opt := range opts {
		if opt == nil {
			return newArgError("nil option")
		}
		if err := opt(f); err != nil {
			return err
		}
	}
	return nil
}

func joinVersions(vs []Version) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}

func has11Plus(vs []Version) bool {
	for _, v := range vs {
		if v != V10 {
			return true
		}
	}
	return false
}

func formatHeartBeat(cx, cy int) string {
	return fmt.Sprintf("%d,%d", cx, cy)
}

// connectOrStomp builds the shared CONNECT/STOMP frame shape (spec
// §4.2 "CONNECT/STOMP").
func connectOrStomp(command string, acceptVersions []Version, host, login, passcode string, heartBeatCx, heartBeatCy int, opts ...Opt) (*Frame, error) {
	if len(acceptVersions) == 0 {
		return nil, newArgError("accept-version: at least one version is required")
	}
	if command == STOMP && !has11Plus(acceptVersions) {
		return nil, newArgError("STOMP command is only legal for STOMP 1.1 and later")
	}
	if has11Plus(acceptVersions) && host == "" {
		return nil, newArgError("host is mandatory when advertising STOMP 1.1 or later")
	}
	if heartBeatCx < 0 || heartBeatCy < 0 {
		return nil, newArgError("heart-beat values must be non-negative")
	}

	f := New(command, AcceptVersion, joinVersions(acceptVersions))
	if host != "" {
		f.Header.Add(Host, host)
	}
	if login != "" {
		f.Header.Add(Login, login)
	}
	if passcode != "" {
		f.Header.Add(Passcode, passcode)
	}
	if heartBeatCx != 0 || heartBeatCy != 0 {
		f.Header.Add(HeartBeat, formatHeartBeat(heartBeatCx, heartBeatCy))
	}
	if err := applyOpts(f, opts); err != nil {
		return nil, err
	}
	return f, nil
}

// Connect builds a CONNECT frame.
func Connect(acceptVersions []Version, host, login, passcode string, heartBeatCx, heartBeatCy int, opts ...Opt) (*Frame, error) {
	return connectOrStomp(CONNECT, acceptVersions, host, login, passcode, heartBeatCx, heartBeatCy, opts...)
}

// Stomp builds a STOMP frame — the 1.1+ synonym for CONNECT.
func Stomp(acceptVersions []Version, host, login, passcode string, heartBeatCx, heartBeatCy int, opts ...Opt) (*Frame, error) {
	return connectOrStomp(STOMP, acceptVersions, host, login, passcode, heartBeatCx, heartBeatCy, opts...)
}

// Send builds a SEND frame. contentType may be empty. If body is
// non-empty, version is 1.1 or later, and the caller has not supplied
// its own content-length via opts, a content-length header is added
// automatically (spec §4.2 "SEND").
func Send(v Version, destination string, contentType string, body []byte, opts ...Opt) (*Frame, error) {
	if destination == "" {
		return nil, newArgError("destination is required")
	}
	f := New(SEND, Destination, destination)
	if contentType != "" {
		f.Header.Add(ContentType, contentType)
	}
	f.Body = body
	if err := applyOpts(f, opts); err != nil {
		return nil, err
	}
	f.Header = withContentLength(v, f.Header, f.Body)
	return f, nil
}

// Subscribe builds a SUBSCRIBE frame. id is required for 1.1+ and
// optional (but recommended) for 1.0. ackMode defaults to "auto" when
// empty.
func Subscribe(v Version, destination, id, ackMode string, opts ...Opt) (*Frame, error) {
	if destination == "" {
		return nil, newArgError("destination is required")
	}
	if v != V10 && id == "" {
		return nil, newArgError("id is required for STOMP 1.1 and later")
	}
	if ackMode == "" {
		ackMode = "auto"
	}
	f := New(SUBSCRIBE, Destination, destination)
	if id != "" {
		f.Header.Add(Id, id)
	}
	f.Header.Add(Ack, ackMode)
	if err := applyOpts(f, opts); err != nil {
		return nil, err
	}
	return f, nil
}

// Unsubscribe builds an UNSUBSCRIBE frame. In 1.1+, id is mandatory; in
// 1.0 either destination or id satisfies the requirement.
func Unsubscribe(v Version, destination, id string, opts ...Opt) (*Frame, error) {
	if v != V10 && id == "" {
		return nil, newArgError("id is required for STOMP 1.1 and later")
	}
	if v == V10 && destination == "" && id == "" {
		return nil, newArgError("destination or id is required")
	}
	f := New(UNSUBSCRIBE)
	if id != "" {
		f.Header.Add(Id, id)
	}
	if destination != "" {
		f.Header.Add(Destination, destination)
	}
	if err := applyOpts(f, opts); err != nil {
		return nil, err
	}
	return f, nil
}

// Begin builds a BEGIN frame.
func Begin(transaction string, opts ...Opt) (*Frame, error) {
	return transactionFrame(BEGIN, transaction, opts...)
}

// Commit builds a COMMIT frame.
func Commit(transaction string, opts ...Opt) (*Frame, error) {
	return transactionFrame(COMMIT, transaction, opts...)
}

// Abort builds an ABORT frame.
func Abort(transaction string, opts ...Opt) (*Frame, error) {
	return transactionFrame(ABORT, transaction, opts...)
}

func transactionFrame(command, transaction string, opts ...Opt) (*Frame, error) {
	if transaction == "" {
		return nil, newArgError("transaction is required")
	}
	f := New(command, Transaction, transaction)
	if err := applyOpts(f, opts); err != nil {
		return nil, err
	}
	return f, nil
}

// AckArgs carries the message-identifying headers an ACK/NACK needs to
// reference, whose required combination depends on version (spec §4.2
// "ACK/NACK"). Construct from the headers of the MESSAGE being
// acknowledged.
type AckArgs struct {
	// MessageID is required for 1.0 and 1.1.
	MessageID string
	// Subscription is required for 1.1 (optional for 1.0).
	Subscription string
	// ID is the server-provided "ack" header token, required for 1.2.
	ID string
}

// Ack builds an ACK frame.
func Ack(v Version, a AckArgs, transaction string, opts ...Opt) (*Frame, error) {
	return ackOrNack(ACK, v, a, transaction, opts...)
}

// Nack builds a NACK frame. NACK does not exist in STOMP 1.0.
func Nack(v Version, a AckArgs, transaction string, opts ...Opt) (*Frame, error) {
	if v == V10 {
		return nil, newArgError("NACK is not supported in STOMP 1.0")
	}
	return ackOrNack(NACK, v, a, transaction, opts...)
}

func ackOrNack(command string, v Version, a AckArgs, transaction string, opts ...Opt) (*Frame, error) {
	f := New(command)
	switch v {
	case V10:
		if a.MessageID == "" {
			return nil, newArgError("message-id is required")
		}
		f.Header.Add(MessageId, a.MessageID)
		if a.Subscription != "" {
			f.Header.Add(Subscription, a.Subscription)
		}
	case V11:
		if a.MessageID == "" || a.Subscription == "" {
			return nil, newArgError("message-id and subscription are both required")
		}
		f.Header.Add(MessageId, a.MessageID)
		f.Header.Add(Subscription, a.Subscription)
	case V12:
		if a.ID == "" {
			return nil, newArgError("id is required")
		}
		f.Header.Add(Id, a.ID)
	default:
		return nil, newArgError("unsupported version: " + string(v))
	}
	if transaction != "" {
		f.Header.Add(Transaction, transaction)
	}
	if err := applyOpts(f, opts); err != nil {
		return nil, err
	}
	return f, nil
}

// Disconnect builds a DISCONNECT frame.
func Disconnect(opts ...Opt) (*Frame, error) {
	f := New(DISCONNECT)
	if err := applyOpts(f, opts); err != nil {
		return nil, err
	}
	return f, nil
}
