package stomp

import (
	"github.com/pkg/errors"

	"github.com/stomplib/stomp/frame"
)

// Error kinds for the session state machine (spec §7 "State errors").
// Framing and construction errors carry their own kinds from the frame
// package; these are the ones a Session itself can report.
const (
	KindIllegalInState      = "illegal-in-state"
	KindUnknownTransaction  = "unknown-transaction"
	KindUnmatchedReceipt    = "unmatched-receipt"
	KindVersionMismatch     = "version-mismatch"
	KindBrokerError         = "broker-error"
	KindReceiptLost         = "receipt-lost"
	KindInvalidMessage      = "invalid-message-frame"
	KindUnknownSubscription = "unknown-subscription"
)

// Error values that do not depend on session state.
var (
	ErrNackNotSupported      = newErrorMessage("", "NACK not supported in STOMP 1.0")
	ErrCannotNackAutoSub     = newErrorMessage("", "cannot send NACK for a subscription with ack:auto")
	ErrCompletedSubscription = newErrorMessage("", "subscription is unsubscribed")
	ErrCompletedTransaction  = newErrorMessage("", "transaction is completed")
	ErrNilOption             = newErrorMessage("", "nil option")
)

// Error implements the error interface and provides additional
// information about a STOMP-level failure: a stable Kind tag, a human
// Message (advisory only), and, for broker-originated failures, the
// verbatim *frame.Frame that caused it. Errors built by the session
// carry one of the Kind constants above; the package-level sentinel
// values (ErrNackNotSupported and the rest) carry an empty Kind and are
// compared by value.
type Error struct {
	Kind    string
	Message string
	Frame   *frame.Frame
}

func (e Error) Error() string {
	return e.Message
}

func newErrorMessage(kind, msg string) Error {
	return Error{Kind: kind, Message: msg}
}

func illegalInState(command string, s State) Error {
	pkgLogger.Debugf("rejected %s: session is %s", command, s)
	return Error{
		Kind:    KindIllegalInState,
		Message: "cannot send " + command + " while session is " + s.String(),
	}
}

func unknownTransaction(token string) Error {
	return Error{
		Kind:    KindUnknownTransaction,
		Message: "unknown transaction: " + token,
	}
}

func unmatchedReceipt(id string) Error {
	return Error{
		Kind:    KindUnmatchedReceipt,
		Message: "RECEIPT does not match any pending receipt: " + id,
	}
}

func versionMismatch(serverVersion string) Error {
	return Error{
		Kind:    KindVersionMismatch,
		Message: "server negotiated an unadvertised version: " + serverVersion,
	}
}

// newBrokerError wraps a broker ERROR frame verbatim (spec §7 "Broker
// errors": "delivered to the host verbatim (headers + body)"),
// mirroring the teacher's newError(f) constructor.
func newBrokerError(f *frame.Frame) Error {
	e := Error{Kind: KindBrokerError, Frame: f}
	if f.Command == frame.ERROR {
		if message := f.Header.Get(frame.Message); message != "" {
			e.Message = message
		} else {
			e.Message = "ERROR frame, missing message header"
		}
	} else {
		e.Message = errors.Errorf("unexpected frame: %s", f.Command).Error()
	}
	return e
}

func receiptLost(id string) Error {
	return Error{
		Kind:    KindReceiptLost,
		Message: "pending receipt lost on abrupt disconnect: " + id,
	}
}

func invalidMessageFrame(reason string) Error {
	return Error{
		Kind:    KindInvalidMessage,
		Message: "invalid MESSAGE frame: " + reason,
	}
}

func unknownSubscription(token string) Error {
	return Error{
		Kind:    KindUnknownSubscription,
		Message: "unknown subscription: " + token,
	}
}
