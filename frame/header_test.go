package frame

import (
	. "gopkg.in/check.v1"
)

type HeaderSuite struct{}

var _ = Suite(&HeaderSuite{})

func (s *HeaderSuite) TestDuplicatesPreserved(c *C) {
	h := NewHeader()
	h.Add("x", "1")
	h.Add("x", "2")
	c.Assert(h.Len(), Equals, 2)
	c.Assert(h.Get("x"), Equals, "1")

	k, v := h.At(0)
	c.Assert(k, Equals, "x")
	c.Assert(v, Equals, "1")
	k, v = h.At(1)
	c.Assert(k, Equals, "x")
	c.Assert(v, Equals, "2")
}

func (s *HeaderSuite) TestInsertionOrder(c *C) {
	h := NewHeader("a", "1", "b", "2", "c", "3")
	var keys []string
	for i := 0; i < h.Len(); i++ {
		k, _ := h.At(i)
		keys = append(keys, k)
	}
	c.Assert(keys, DeepEquals, []string{"a", "b", "c"})
}

func (s *HeaderSuite) TestSetReplacesAllOccurrences(c *C) {
	h := NewHeader()
	h.Add("x", "1")
	h.Add("y", "mid")
	h.Add("x", "2")
	h.Set("x", "new")
	c.Assert(h.Len(), Equals, 2)
	c.Assert(h.Get("x"), Equals, "new")
}

func (s *HeaderSuite) TestDel(c *C) {
	h := NewHeader("a", "1", "b", "2", "a", "3")
	h.Del("a")
	c.Assert(h.Len(), Equals, 1)
	_, ok := h.Contains("a")
	c.Assert(ok, Equals, false)
}

func (s *HeaderSuite) TestCloneIsIndependent(c *C) {
	h := NewHeader("a", "1")
	clone := h.Clone()
	clone.Add("b", "2")
	c.Assert(h.Len(), Equals, 1)
	c.Assert(clone.Len(), Equals, 2)
}

func (s *HeaderSuite) TestNilHeaderIsSafe(c *C) {
	var h *Header
	c.Assert(h.Len(), Equals, 0)
	_, ok := h.Contains("x")
	c.Assert(ok, Equals, false)
	c.Assert(h.Get("x"), Equals, "")
}
