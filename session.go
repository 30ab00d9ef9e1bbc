package stomp

import (
	"fmt"
	"sync/atomic"

	"github.com/stomplib/stomp/frame"
)

// EventKind distinguishes the events Session.OnFrame can report.
type EventKind int

const (
	// EventNone is the zero value: OnFrame returned an error with
	// nothing else worth reporting.
	EventNone EventKind = iota
	// EventConnected reports a successful CONNECTED negotiation.
	EventConnected
	// EventMessage reports an inbound MESSAGE frame.
	EventMessage
	// EventReceipt reports a RECEIPT that matched a pending receipt.
	EventReceipt
	// EventError reports a broker ERROR frame, or an internal failure
	// (such as a version mismatch) that is connection-fatal. The
	// session has already transitioned to StateDisconnected (abruptly)
	// by the time this event is returned.
	EventError
)

// Event is the result of feeding one inbound frame to Session.OnFrame.
type Event struct {
	Kind         EventKind
	Frame        *frame.Frame
	Subscription *Subscription
	Err          error
}

// Session is the STOMP client session state machine (spec §3, §4.3).
// It is single-owner: like the frame codec, it performs synchronous,
// non-blocking state transitions and expects the host to serialize
// access externally if its runtime is multi-threaded (spec §5).
type Session struct {
	state State

	clientVersions []frame.Version
	clientCx       int
	clientCy       int
	version        frame.Version
	sessionID      string
	serverName     string
	outgoingHB     int
	incomingHB     int

	subs         *subscriptionTable
	receipts     *receiptTable
	transactions map[string]Transaction

	subCounter     uint64
	txCounter      uint64
	receiptCounter uint64
}

// New creates a Session in StateDisconnected, ready for Connect.
func New() *Session {
	return &Session{
		subs:         newSubscriptionTable(),
		receipts:     newReceiptTable(),
		transactions: make(map[string]Transaction),
	}
}

// State returns the session's current connection state.
func (s *Session) State() State {
	return s.state
}

// NegotiatedVersion returns the version negotiated on CONNECTED. Before
// a successful negotiation it is the zero Version.
func (s *Session) NegotiatedVersion() frame.Version {
	return s.version
}

// SessionID returns the broker-assigned session identifier, if any.
func (s *Session) SessionID() string {
	return s.sessionID
}

// ServerName returns the broker's self-reported server name, if any.
func (s *Session) ServerName() string {
	return s.serverName
}

// HeartBeat returns the negotiated outgoing and incoming heart-beat
// intervals, in milliseconds. Zero in either direction means that
// direction is disabled (spec §4.3 "Inbound frames are validated").
func (s *Session) HeartBeat() (outgoingMS, incomingMS int) {
	return s.outgoingHB, s.incomingHB
}

// PendingReceipts returns the receipt ids the session is still waiting
// on, in the order they were registered.
func (s *Session) PendingReceipts() []string {
	return s.receipts.ids()
}

func (s *Session) nextSubID() string {
	return fmt.Sprintf("sub-%d", atomic.AddUint64(&s.subCounter, 1)-1)
}

func (s *Session) nextTxID() string {
	return fmt.Sprintf("tx-%d", atomic.AddUint64(&s.txCounter, 1)-1)
}

func (s *Session) nextReceiptID() string {
	return fmt.Sprintf("receipt-%d", atomic.AddUint64(&s.receiptCounter, 1)-1)
}

// registerReceipt records f as pending if it carries a receipt header
// (spec §4.3 "Receipts").
func (s *Session) registerReceipt(f *frame.Frame) {
	if id, ok := f.Header.Contains(frame.Receipt); ok {
		s.receipts.add(pendingReceipt{id: id, command: f.Command})
	}
}

// --- Outbound frame construction -------------------------------------

// Connect builds and returns a CONNECT frame, advancing the session to
// StateConnecting. Legal only from StateDisconnected (spec §4.3).
func (s *Session) Connect(acceptVersions []frame.Version, host, login, passcode string, heartBeatCx, heartBeatCy int, opts ...frame.Opt) (*frame.Frame, error) {
	if s.state != StateDisconnected {
		return nil, illegalInState(frame.CONNECT, s.state)
	}
	f, err := frame.Connect(acceptVersions, host, login, passcode, heartBeatCx, heartBeatCy, opts...)
	if err != nil {
		return nil, err
	}
	s.clientVersions = acceptVersions
	s.clientCx, s.clientCy = heartBeatCx, heartBeatCy
	s.state = StateConnecting
	return f, nil
}

// Stomp builds and returns a STOMP frame (the 1.1+ synonym for
// CONNECT), with the same state transition as Connect.
func (s *Session) Stomp(acceptVersions []frame.Version, host, login, passcode string, heartBeatCx, heartBeatCy int, opts ...frame.Opt) (*frame.Frame, error) {
	if s.state != StateDisconnected {
		return nil, illegalInState(frame.STOMP, s.state)
	}
	f, err := frame.Stomp(acceptVersions, host, login, passcode, heartBeatCx, heartBeatCy, opts...)
	if err != nil {
		return nil, err
	}
	s.clientVersions = acceptVersions
	s.clientCx, s.clientCy = heartBeatCx, heartBeatCy
	s.state = StateConnecting
	return f, nil
}

// Subscribe builds a SUBSCRIBE frame and registers the subscription.
// If id is empty, a local token is assigned from the session's
// monotonic subscription counter (spec §4.3 "Subscription
// management"). context is stored on the Subscription for the caller
// to consult after Replay.
func (s *Session) Subscribe(destination string, ackMode AckMode, id string, context interface{}, opts ...frame.Opt) (string, *frame.Frame, error) {
	if s.state != StateConnected {
		return "", nil, illegalInState(frame.SUBSCRIBE, s.state)
	}
	if id == "" {
		id = s.nextSubID()
	}
	f, err := frame.Subscribe(s.version, destination, id, string(ackMode), opts...)
	if err != nil {
		return "", nil, err
	}
	s.subs.add(&Subscription{
		id:          id,
		destination: destination,
		ackMode:     ackMode,
		active:      true,
		Context:     context,
		Headers:     f.Header.Clone(),
	})
	s.registerReceipt(f)
	return id, f, nil
}

// Unsubscribe builds an UNSUBSCRIBE frame for the subscription
// identified by token and removes it from the session's subscription
// set (spec §4.3: "UNSUBSCRIBE removes it on issuance (optimistic)").
func (s *Session) Unsubscribe(token string, opts ...frame.Opt) (*frame.Frame, error) {
	if s.state != StateConnected {
		return nil, illegalInState(frame.UNSUBSCRIBE, s.state)
	}
	sub, ok := s.subs.get(token)
	if !ok {
		return nil, unknownSubscription(token)
	}
	f, err := frame.Unsubscribe(s.version, sub.destination, token, opts...)
	if err != nil {
		return nil, err
	}
	sub.active = false
	s.subs.remove(token)
	s.registerReceipt(f)
	return f, nil
}

// Send builds a SEND frame. If transaction is non-empty it must name
// an active transaction, or the frame is rejected with
// unknown-transaction and the session's state is left unchanged (spec
// §4.3 "Transactions", §7 "State errors").
func (s *Session) Send(destination, contentType string, body []byte, transaction string, opts ...frame.Opt) (*frame.Frame, error) {
	if s.state != StateConnected {
		return nil, illegalInState(frame.SEND, s.state)
	}
	if transaction != "" {
		if _, active := s.transactions[transaction]; !active {
			return nil, unknownTransaction(transaction)
		}
	}
	f, err := frame.Send(s.version, destination, contentType, body, opts...)
	if err != nil {
		return nil, err
	}
	if transaction != "" {
		f.Header.Add(frame.Transaction, transaction)
	}
	s.registerReceipt(f)
	return f, nil
}

// Begin builds a BEGIN frame and records the transaction as active. If
// token is empty, one is assigned from the session's monotonic
// transaction counter.
func (s *Session) Begin(token string, opts ...frame.Opt) (string, *frame.Frame, error) {
	if s.state != StateConnected {
		return "", nil, illegalInState(frame.BEGIN, s.state)
	}
	if token == "" {
		token = s.nextTxID()
	}
	f, err := frame.Begin(token, opts...)
	if err != nil {
		return "", nil, err
	}
	s.transactions[token] = Transaction{token: token}
	s.registerReceipt(f)
	return token, f, nil
}

// Commit builds a COMMIT frame for an active transaction and removes
// it from the active set.
func (s *Session) Commit(token string, opts ...frame.Opt) (*frame.Frame, error) {
	return s.endTransaction(frame.COMMIT, token, opts...)
}

// Abort builds an ABORT frame for an active transaction and removes it
// from the active set.
func (s *Session) Abort(token string, opts ...frame.Opt) (*frame.Frame, error) {
	return s.endTransaction(frame.ABORT, token, opts...)
}

func (s *Session) endTransaction(command, token string, opts ...frame.Opt) (*frame.Frame, error) {
	if s.state != StateConnected {
		return nil, illegalInState(command, s.state)
	}
	if _, active := s.transactions[token]; !active {
		return nil, unknownTransaction(token)
	}
	var f *frame.Frame
	var err error
	if command == frame.COMMIT {
		f, err = frame.Commit(token, opts...)
	} else {
		f, err = frame.Abort(token, opts...)
	}
	if err != nil {
		return nil, err
	}
	delete(s.transactions, token)
	s.registerReceipt(f)
	return f, nil
}

// Ack builds an ACK frame for the MESSAGE frame msg, extracting the
// version-appropriate identifying headers from it (spec §4.2
// "ACK/NACK", §6 "ack/nack(message_headers) -> frame").
func (s *Session) Ack(msg *frame.Frame, transaction string, opts ...frame.Opt) (*frame.Frame, error) {
	return s.ackOrNack(frame.ACK, msg, transaction, opts...)
}

// Nack builds a NACK frame for the MESSAGE frame msg. NACK is illegal
// in STOMP 1.0 and for a subscription whose ack mode is "auto" (spec
// §4.2, §7).
func (s *Session) Nack(msg *frame.Frame, transaction string, opts ...frame.Opt) (*frame.Frame, error) {
	if s.version == frame.V10 {
		return nil, ErrNackNotSupported
	}
	if subID, ok := msg.Header.Contains(frame.Subscription); ok {
		if sub, found := s.subs.get(subID); found && sub.ackMode == AckAuto {
			return nil, ErrCannotNackAutoSub
		}
	}
	return s.ackOrNack(frame.NACK, msg, transaction, opts...)
}

func (s *Session) ackOrNack(command string, msg *frame.Frame, transaction string, opts ...frame.Opt) (*frame.Frame, error) {
	if s.state != StateConnected {
		return nil, illegalInState(command, s.state)
	}
	if transaction != "" {
		if _, active := s.transactions[transaction]; !active {
			return nil, unknownTransaction(transaction)
		}
	}
	args := frame.AckArgs{
		MessageID:    msg.Header.Get(frame.MessageId),
		Subscription: msg.Header.Get(frame.Subscription),
		ID:           msg.Header.Get(frame.Ack),
	}
	var f *frame.Frame
	var err error
	if command == frame.ACK {
		f, err = frame.Ack(s.version, args, transaction, opts...)
	} else {
		f, err = frame.Nack(s.version, args, transaction, opts...)
	}
	if err != nil {
		return nil, err
	}
	s.registerReceipt(f)
	return f, nil
}

// Disconnect builds a DISCONNECT frame, optionally tagged with a
// receipt, and advances the session to StateDisconnecting. Graceful
// shutdown (spec §5) is: issue DISCONNECT with a receipt, wait for
// PendingReceipts to empty, then the caller closes the transport.
func (s *Session) Disconnect(receiptID string, opts ...frame.Opt) (*frame.Frame, error) {
	if s.state != StateConnected {
		return nil, illegalInState(frame.DISCONNECT, s.state)
	}
	f, err := frame.Disconnect(opts...)
	if err != nil {
		return nil, err
	}
	if receiptID != "" {
		f.Header.Set(frame.Receipt, receiptID)
	}
	s.registerReceipt(f)
	s.state = StateDisconnecting
	return f, nil
}

// NextReceiptID returns a fresh receipt id from the session's
// monotonic receipt counter, for callers that want to tag a frame with
// WithReceipt before handing it to one of the builder methods above.
func (s *Session) NextReceiptID() string {
	return s.nextReceiptID()
}

// --- Inbound frame handling --------------------------------------------

// OnFrame validates an inbound frame against the session's current
// state (spec §4.3 "Inbound frames are validated") and updates that
// state accordingly.
func (s *Session) OnFrame(f *frame.Frame) (Event, error) {
	switch f.Command {
	case frame.CONNECTED:
		return s.onConnected(f)
	case frame.MESSAGE:
		return s.onMessage(f)
	case frame.RECEIPT:
		return s.onReceipt(f)
	case frame.ERROR:
		return s.onBrokerError(f)
	default:
		err := Error{Kind: KindIllegalInState, Message: "unexpected inbound command: " + f.Command}
		return Event{}, err
	}
}

func (s *Session) onConnected(f *frame.Frame) (Event, error) {
	if s.state != StateConnecting {
		return Event{}, illegalInState(frame.CONNECTED, s.state)
	}
	serverVersion := f.Header.Get(frame.Version)
	version, ok := frame.Negotiate(s.clientVersions, serverVersion)
	if !ok {
		err := versionMismatch(serverVersion)
		s.abruptDisconnect()
		return Event{Kind: EventError, Frame: f, Err: err}, err
	}
	s.version = version
	s.sessionID = f.Header.Get(frame.Session)
	s.serverName = f.Header.Get(frame.Server)
	s.outgoingHB, s.incomingHB = negotiateHeartBeat(s.clientCx, s.clientCy, f)
	s.state = StateConnected
	return Event{Kind: EventConnected, Frame: f}, nil
}

func (s *Session) onMessage(f *frame.Frame) (Event, error) {
	if s.state != StateConnected {
		return Event{}, illegalInState(frame.MESSAGE, s.state)
	}
	if f.Header.Get(frame.Destination) == "" {
		return Event{}, invalidMessageFrame("missing destination")
	}
	if f.Header.Get(frame.MessageId) == "" {
		return Event{}, invalidMessageFrame("missing message-id")
	}
	subID, hasSub := f.Header.Contains(frame.Subscription)
	if s.version != frame.V10 && !hasSub {
		return Event{}, invalidMessageFrame("missing subscription")
	}
	var sub *Subscription
	if hasSub {
		sub, _ = s.subs.get(subID)
	}
	if s.version == frame.V12 && sub != nil && sub.ackMode != AckAuto {
		if f.Header.Get(frame.Ack) == "" {
			return Event{}, invalidMessageFrame("missing ack")
		}
	}
	return Event{Kind: EventMessage, Frame: f, Subscription: sub}, nil
}

func (s *Session) onReceipt(f *frame.Frame) (Event, error) {
	id := f.Header.Get(frame.ReceiptId)
	if _, ok := s.receipts.remove(id); !ok {
		err := unmatchedReceipt(id)
		return Event{}, err
	}
	return Event{Kind: EventReceipt, Frame: f}, nil
}

func (s *Session) onBrokerError(f *frame.Frame) (Event, error) {
	if s.state == StateDisconnected {
		return Event{}, illegalInState(frame.ERROR, s.state)
	}
	err := newBrokerError(f)
	s.abruptDisconnect()
	return Event{Kind: EventError, Frame: f, Err: err}, err
}

// abruptDisconnect implements spec §4.3's abrupt transition: the
// session drops straight to StateDisconnected from any state,
// subscriptions are kept (but marked inactive) so Replay can reissue
// them, and outstanding receipts are cleared and reported lost.
func (s *Session) abruptDisconnect() []Error {
	s.state = StateDisconnected
	for _, sub := range s.subs.ordered() {
		sub.active = false
	}
	var lost []Error
	for _, r := range s.receipts.clear() {
		lost = append(lost, receiptLost(r.id))
	}
	if len(lost) > 0 {
		pkgLogger.Warnf("abrupt disconnect: %d pending receipt(s) lost", len(lost))
	}
	return lost
}

// ForceDisconnect forces the session into an abrupt disconnect from
// the transport side — a forced connection loss rather than a protocol
// event. It returns the receipts that were pending, now reported lost.
func (s *Session) ForceDisconnect() []Error {
	return s.abruptDisconnect()
}

// Replay returns the SUBSCRIBE frames needed to reissue the session's
// current subscription set on a new connection, in original insertion
// order, with original headers preserved verbatim (spec §4.3
// "Subscription management", §8 invariant 4).
func (s *Session) Replay() []*frame.Frame {
	subs := s.subs.ordered()
	out := make([]*frame.Frame, 0, len(subs))
	for _, sub := range subs {
		out = append(out, &frame.Frame{Command: frame.SUBSCRIBE, Header: sub.Headers.Clone()})
	}
	return out
}

// Subscriptions returns the session's current subscriptions in
// insertion order.
func (s *Session) Subscriptions() []*Subscription {
	return s.subs.ordered()
}

// Transactions returns the session's currently active transactions, in
// no particular order (spec §4.3 does not require transaction-set
// ordering the way it does for subscriptions and receipts).
func (s *Session) Transactions() []Transaction {
	out := make([]Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		out = append(out, tx)
	}
	return out
}

// negotiateHeartBeat computes the effective outgoing/incoming heart-beat
// intervals from the client's own offer and the server's CONNECTED
// header (spec §4.3: effective outgoing is max(client-cx, server-sy);
// effective incoming is max(client-cy, server-sx); zero on either side
// disables that direction).
func negotiateHeartBeat(clientCx, clientCy int, f *frame.Frame) (outgoingMS, incomingMS int) {
	hb := f.Header.Get(frame.HeartBeat)
	if hb == "" {
		return 0, 0
	}
	var sx, sy int
	if _, err := fmt.Sscanf(hb, "%d,%d", &sx, &sy); err != nil {
		return 0, 0
	}
	if clientCx == 0 || sy == 0 {
		outgoingMS = 0
	} else {
		outgoingMS = max(clientCx, sy)
	}
	if clientCy == 0 || sx == 0 {
		incomingMS = 0
	} else {
		incomingMS = max(clientCy, sx)
	}
	return outgoingMS, incomingMS
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
