package frame

// Client commands.
const (
	CONNECT     = "CONNECT"
	STOMP       = "STOMP"
	SEND        = "SEND"
	SUBSCRIBE   = "SUBSCRIBE"
	UNSUBSCRIBE = "UNSUBSCRIBE"
	BEGIN       = "BEGIN"
	COMMIT      = "COMMIT"
	ABORT       = "ABORT"
	ACK         = "ACK"
	NACK        = "NACK"
	DISCONNECT  = "DISCONNECT"
)

// Server commands.
const (
	CONNECTED = "CONNECTED"
	MESSAGE   = "MESSAGE"
	RECEIPT   = "RECEIPT"
	ERROR     = "ERROR"
)

// Header names, as they appear on the wire.
const (
	AcceptVersion = "accept-version"
	Ack           = "ack"
	ContentLength = "content-length"
	ContentType   = "content-type"
	Destination   = "destination"
	HeartBeat     = "heart-beat"
	Host          = "host"
	Id            = "id"
	Login         = "login"
	Message       = "message"
	MessageId     = "message-id"
	Passcode      = "passcode"
	Receipt       = "receipt"
	ReceiptId     = "receipt-id"
	Server        = "server"
	Session       = "session"
	Subscription  = "subscription"
	Transaction   = "transaction"

	// Version is the header name of the broker's negotiated
	// protocol version, echoed on the CONNECTED frame.
	Version = "version"
)

// commandsWithoutBody is the set of commands whose frames must not
// carry a body (spec: CONNECT, SUBSCRIBE, UNSUBSCRIBE, BEGIN, COMMIT,
// ABORT, ACK, NACK, DISCONNECT, CONNECTED, RECEIPT).
var commandsWithoutBody = map[string]bool{
	CONNECT:     true,
	STOMP:       true,
	SUBSCRIBE:   true,
	UNSUBSCRIBE: true,
	BEGIN:       true,
	COMMIT:      true,
	ABORT:       true,
	ACK:         true,
	NACK:        true,
	DISCONNECT:  true,
	CONNECTED:   true,
	RECEIPT:     true,
}

// AllowsBody returns whether the given command may carry a non-empty
// body. SEND, MESSAGE and ERROR do; everything else does not.
func AllowsBody(command string) bool {
	return !commandsWithoutBody[command]
}

// unescapedCommands never have header escaping applied, in either
// direction, regardless of negotiated version.
var unescapedCommands = map[string]bool{
	CONNECT: true,
	STOMP:   true,
}

// Unescaped returns whether command is exempt from header escaping.
func Unescaped(command string) bool {
	return unescapedCommands[command]
}
