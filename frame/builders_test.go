package frame

import (
	. "gopkg.in/check.v1"
)

type BuilderSuite struct{}

var _ = Suite(&BuilderSuite{})

func (s *BuilderSuite) TestConnectRequiresHostFor11Plus(c *C) {
	_, err := Connect([]Version{V10, V11}, "", "", "", 0, 0)
	c.Assert(err, NotNil)

	f, err := Connect([]Version{V10}, "", "", "", 0, 0)
	c.Assert(err, IsNil)
	c.Assert(f.Command, Equals, CONNECT)
}

func (s *BuilderSuite) TestConnectHeartBeat(c *C) {
	f, err := Connect([]Version{V12}, "/", "", "", 5000, 10000)
	c.Assert(err, IsNil)
	c.Assert(f.Header.Get(HeartBeat), Equals, "5000,10000")
}

func (s *BuilderSuite) TestStompRequires11Plus(c *C) {
	_, err := Stomp([]Version{V10}, "/", "", "", 0, 0)
	c.Assert(err, NotNil)

	f, err := Stomp([]Version{V10, V11}, "/", "", "", 0, 0)
	c.Assert(err, IsNil)
	c.Assert(f.Command, Equals, STOMP)
}

func (s *BuilderSuite) TestSendRequiresDestination(c *C) {
	_, err := Send(V12, "", "", nil)
	c.Assert(err, NotNil)
}

func (s *BuilderSuite) TestSendAutoContentLength(c *C) {
	f, err := Send(V11, "/q", "text/plain", []byte("hi"))
	c.Assert(err, IsNil)
	c.Assert(f.Header.Get(ContentLength), Equals, "2")

	f, err = Send(V10, "/q", "", []byte("hi"))
	c.Assert(err, IsNil)
	_, ok := f.Header.Contains(ContentLength)
	c.Assert(ok, Equals, false)
}

func (s *BuilderSuite) TestSendWithReceiptOpt(c *C) {
	f, err := Send(V12, "/q", "", nil, WithReceipt("r-1"))
	c.Assert(err, IsNil)
	c.Assert(f.Header.Get(Receipt), Equals, "r-1")
}

func (s *BuilderSuite) TestSubscribeRequiresIdFor11Plus(c *C) {
	_, err := Subscribe(V11, "/q", "", "")
	c.Assert(err, NotNil)

	f, err := Subscribe(V11, "/q", "sub-0", "")
	c.Assert(err, IsNil)
	c.Assert(f.Header.Get(Ack), Equals, "auto")
	c.Assert(f.Header.Get(Id), Equals, "sub-0")
}

func (s *BuilderSuite) TestUnsubscribe10AcceptsDestinationOrId(c *C) {
	_, err := Unsubscribe(V10, "", "")
	c.Assert(err, NotNil)

	f, err := Unsubscribe(V10, "/q", "")
	c.Assert(err, IsNil)
	c.Assert(f.Header.Get(Destination), Equals, "/q")
}

func (s *BuilderSuite) TestUnsubscribe11RequiresId(c *C) {
	_, err := Unsubscribe(V11, "/q", "")
	c.Assert(err, NotNil)

	f, err := Unsubscribe(V11, "", "sub-0")
	c.Assert(err, IsNil)
	c.Assert(f.Header.Get(Id), Equals, "sub-0")
}

func (s *BuilderSuite) TestBeginCommitAbortRequireTransaction(c *C) {
	_, err := Begin("")
	c.Assert(err, NotNil)
	f, err := Begin("tx-1")
	c.Assert(err, IsNil)
	c.Assert(f.Header.Get(Transaction), Equals, "tx-1")

	f, err = Commit("tx-1")
	c.Assert(err, IsNil)
	c.Assert(f.Command, Equals, COMMIT)

	f, err = Abort("tx-1")
	c.Assert(err, IsNil)
	c.Assert(f.Command, Equals, ABORT)
}

func (s *BuilderSuite) TestAckVariesByVersion(c *C) {
	_, err := Ack(V10, AckArgs{}, "")
	c.Assert(err, NotNil)
	f, err := Ack(V10, AckArgs{MessageID: "m-1"}, "")
	c.Assert(err, IsNil)
	c.Assert(f.Header.Get(MessageId), Equals, "m-1")

	_, err = Ack(V11, AckArgs{MessageID: "m-1"}, "")
	c.Assert(err, NotNil)
	f, err = Ack(V11, AckArgs{MessageID: "m-1", Subscription: "s-1"}, "")
	c.Assert(err, IsNil)
	c.Assert(f.Header.Get(Subscription), Equals, "s-1")

	_, err = Ack(V12, AckArgs{MessageID: "m-1"}, "")
	c.Assert(err, NotNil)
	f, err = Ack(V12, AckArgs{ID: "ack-1"}, "")
	c.Assert(err, IsNil)
	c.Assert(f.Header.Get(Id), Equals, "ack-1")
}

func (s *BuilderSuite) TestNackIllegalIn10(c *C) {
	_, err := Nack(V10, AckArgs{MessageID: "m-1"}, "")
	c.Assert(err, NotNil)

	f, err := Nack(V12, AckArgs{ID: "ack-1"}, "")
	c.Assert(err, IsNil)
	c.Assert(f.Command, Equals, NACK)
}

func (s *BuilderSuite) TestAckWithTransaction(c *C) {
	f, err := Ack(V12, AckArgs{ID: "ack-1"}, "tx-1")
	c.Assert(err, IsNil)
	c.Assert(f.Header.Get(Transaction), Equals, "tx-1")
}

func (s *BuilderSuite) TestDisconnectWithReceipt(c *C) {
	f, err := Disconnect(WithReceipt("r-9"))
	c.Assert(err, IsNil)
	c.Assert(f.Header.Get(Receipt), Equals, "r-9")
}

func (s *BuilderSuite) TestNilOptRejected(c *C) {
	_, err := Disconnect(nil)
	c.Assert(err, NotNil)
}
