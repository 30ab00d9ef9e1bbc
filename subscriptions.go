package stomp

import "container/list"

// subscriptionTable is an insertion-ordered collection of
// subscriptions, keyed by local token. Order survives removal — a
// requirement spec §9 calls out explicitly ("rehashing during
// UNSUBSCRIBE must not perturb remaining order") because
// Session.Replay must reissue subscriptions in their original
// insertion order. Grounded on
// _examples/mschneider82-stomp/server/client/subscription_list.go's
// SubscriptionList, which solves the identical ordering problem for a
// server-side subscription list using container/list; this is the
// same structure adapted to the client side and to *Subscription.
type subscriptionTable struct {
	order *list.List
	byID  map[string]*list.Element
}

func newSubscriptionTable() *subscriptionTable {
	return &subscriptionTable{
		order: list.New(),
		byID:  make(map[string]*list.Element),
	}
}

func (t *subscriptionTable) add(sub *Subscription) {
	el := t.order.PushBack(sub)
	t.byID[sub.id] = el
}

func (t *subscriptionTable) get(id string) (*Subscription, bool) {
	el, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	return el.Value.(*Subscription), true
}

// remove deletes the subscription with the given id, if present,
// without disturbing the relative order of the remaining entries.
func (t *subscriptionTable) remove(id string) {
	el, ok := t.byID[id]
	if !ok {
		return
	}
	t.order.Remove(el)
	delete(t.byID, id)
}

// ordered returns every subscription in insertion order.
func (t *subscriptionTable) ordered() []*Subscription {
	out := make([]*Subscription, 0, t.order.Len())
	for el := t.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*Subscription))
	}
	return out
}

func (t *subscriptionTable) len() int {
	return t.order.Len()
}
