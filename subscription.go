package stomp

import (
	"github.com/stomplib/stomp/frame"
)

// AckMode is the acknowledgement mode a subscription was created with
// (spec §3 "Subscription").
type AckMode string

const (
	AckAuto             AckMode = "auto"
	AckClient           AckMode = "client"
	AckClientIndividual AckMode = "client-individual"
)

// The Subscription type represents a client subscription to a
// destination (spec §3). Unlike the teacher's connection-bound
// Subscription — which owned a channel (C) and a goroutine reading
// frames off the wire (readLoop/handleMessage/handleError/
// handleReceipt) — this Subscription is a pure value owned by a
// Session: the socket layer and any per-message dispatch loop are the
// excluded collaborators of spec §1, supplied by the host, which reads
// MESSAGE/ERROR events out of Session.OnFrame instead of out of a
// per-subscription channel.
type Subscription struct {
	id          string
	destination string
	ackMode     AckMode
	active      bool

	// Context is the opaque value the caller supplied when the
	// subscription was created (spec §3: "used by the caller to
	// re-register handlers after replay").
	Context interface{}

	// Headers holds the original SUBSCRIBE headers, preserved verbatim
	// so Session.Replay can reissue them unchanged.
	Headers *frame.Header
}

// Id returns the subscription's local token, unique within its
// session.
func (s *Subscription) Id() string {
	return s.id
}

// Destination returns the destination the subscription applies to.
func (s *Subscription) Destination() string {
	return s.destination
}

// AckMode returns the subscription's acknowledgement mode.
func (s *Subscription) AckMode() AckMode {
	return s.ackMode
}

// Active returns whether the subscription is still registered with its
// session. It becomes false once Session.Unsubscribe has issued the
// UNSUBSCRIBE frame for it (spec §3: "destroyed on UNSUBSCRIBE, or
// retained for replay after a broken connection" — Active reports the
// former; a subscription kept around only for replay after an abrupt
// disconnect is not Active but still appears in Session.Replay).
func (s *Subscription) Active() bool {
	return s.active
}
