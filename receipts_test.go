package stomp

import (
	. "gopkg.in/check.v1"
)

type ReceiptTableSuite struct{}

var _ = Suite(&ReceiptTableSuite{})

func (s *ReceiptTableSuite) TestAddRemoveIds(c *C) {
	t := newReceiptTable()
	t.add(pendingReceipt{id: "r-1", command: "SEND"})
	t.add(pendingReceipt{id: "r-2", command: "SUBSCRIBE"})
	c.Assert(t.ids(), DeepEquals, []string{"r-1", "r-2"})

	r, ok := t.remove("r-1")
	c.Assert(ok, Equals, true)
	c.Assert(r.command, Equals, "SEND")
	c.Assert(t.ids(), DeepEquals, []string{"r-2"})

	_, ok = t.remove("r-1")
	c.Assert(ok, Equals, false)
}

func (s *ReceiptTableSuite) TestClearReturnsAllAndEmpties(c *C) {
	t := newReceiptTable()
	t.add(pendingReceipt{id: "r-1"})
	t.add(pendingReceipt{id: "r-2"})
	cleared := t.clear()
	c.Assert(cleared, HasLen, 2)
	c.Assert(t.len(), Equals, 0)
	c.Assert(t.ids(), HasLen, 0)
}
