// Package stomp implements the client side of the STOMP messaging
// protocol (versions 1.0, 1.1 and 1.2): frame encoding and decoding
// live in the frame subpackage, and this package layers an I/O-free
// session state machine on top of it, tracking connect negotiation,
// subscription lifecycle, pending receipts and transactions, and
// producing what a host transport needs to replay subscriptions after
// a forced reconnect.
//
// The socket layer, any concrete I/O driver, and thread/event-loop
// integration are not part of this package; a Session only ever
// consumes and produces *frame.Frame values, leaving the host to read
// and write them over whatever transport it chooses.
package stomp
