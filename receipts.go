package stomp

import "container/list"

// pendingReceipt is a receipt a session is waiting on (spec §3
// "Pending Receipt").
type pendingReceipt struct {
	id      string
	command string
}

// receiptTable mirrors subscriptionTable's insertion-ordered,
// remove-without-reorder shape (spec §9), applied to the second
// container the session owns: outstanding receipts. The ordering
// matters less here than for subscriptions — spec §5 explicitly
// tolerates reordering among receipt responses — but a single
// container type keeps both owned collections consistent with the
// same container/list idiom borrowed from
// _examples/mschneider82-stomp/server/client/subscription_list.go.
type receiptTable struct {
	order *list.List
	byID  map[string]*list.Element
}

func newReceiptTable() *receiptTable {
	return &receiptTable{
		order: list.New(),
		byID:  make(map[string]*list.Element),
	}
}

func (t *receiptTable) add(r pendingReceipt) {
	el := t.order.PushBack(r)
	t.byID[r.id] = el
}

func (t *receiptTable) remove(id string) (pendingReceipt, bool) {
	el, ok := t.byID[id]
	if !ok {
		return pendingReceipt{}, false
	}
	t.order.Remove(el)
	delete(t.byID, id)
	return el.Value.(pendingReceipt), true
}

func (t *receiptTable) ids() []string {
	out := make([]string, 0, t.order.Len())
	for el := t.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(pendingReceipt).id)
	}
	return out
}

func (t *receiptTable) clear() []pendingReceipt {
	out := make([]pendingReceipt, 0, t.order.Len())
	for el := t.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(pendingReceipt))
	}
	t.order.Init()
	for k := range t.byID {
		delete(t.byID, k)
	}
	return out
}

func (t *receiptTable) len() int {
	return t.order.Len()
}
