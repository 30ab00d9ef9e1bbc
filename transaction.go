package stomp

// Transaction represents a client-side grouping token for SEND/ACK/NACK
// frames pending a COMMIT or ABORT (spec §3 "Transaction"). Grounded in
// shape on _examples/djoyahoy-stomp/tx.go's Tx (a token plus a
// completion flag), adapted from an object with its own Commit/Abort
// methods to a value tracked by Session, since spec §4.3 makes BEGIN,
// COMMIT and ABORT session-level operations rather than methods on a
// transaction handle — the session, not the transaction, is what
// validates "is this token still active" for every SEND/ACK/NACK.
type Transaction struct {
	token string
}

// Token returns the transaction's local identifier, the value carried
// in the "transaction" header of frames belonging to it.
func (t Transaction) Token() string {
	return t.token
}
