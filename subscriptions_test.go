package stomp

import (
	. "gopkg.in/check.v1"
)

type SubscriptionTableSuite struct{}

var _ = Suite(&SubscriptionTableSuite{})

func (s *SubscriptionTableSuite) TestAddGetRemovePreservesOrder(c *C) {
	t := newSubscriptionTable()
	a := &Subscription{id: "a"}
	b := &Subscription{id: "b"}
	cc := &Subscription{id: "c"}
	t.add(a)
	t.add(b)
	t.add(cc)

	got, ok := t.get("b")
	c.Assert(ok, Equals, true)
	c.Assert(got, Equals, b)

	t.remove("b")
	_, ok = t.get("b")
	c.Assert(ok, Equals, false)

	ordered := t.ordered()
	c.Assert(ordered, HasLen, 2)
	c.Assert(ordered[0].id, Equals, "a")
	c.Assert(ordered[1].id, Equals, "c")
	c.Assert(t.len(), Equals, 2)
}

func (s *SubscriptionTableSuite) TestRemoveUnknownIsNoop(c *C) {
	t := newSubscriptionTable()
	t.add(&Subscription{id: "a"})
	t.remove("not-there")
	c.Assert(t.len(), Equals, 1)
}
