package stomp

import (
	. "gopkg.in/check.v1"
)

type StateSuite struct{}

var _ = Suite(&StateSuite{})

func (s *StateSuite) TestZeroValueIsDisconnected(c *C) {
	var st State
	c.Assert(st, Equals, StateDisconnected)
	c.Assert(st.String(), Equals, "disconnected")
}

func (s *StateSuite) TestStringForEachState(c *C) {
	c.Assert(StateConnecting.String(), Equals, "connecting")
	c.Assert(StateConnected.String(), Equals, "connected")
	c.Assert(StateDisconnecting.String(), Equals, "disconnecting")
	c.Assert(State(99).String(), Equals, "unknown")
}
