package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubPublishReachesAllSubscribers(t *testing.T) {

	h := newHub()

	var first []Event
	var second []Event

	h.subscribe(OrdersCollection, func(e Event) { first = append(first, e) })
	h.subscribe(OrdersCollection, func(e Event) { second = append(second, e) })

	event := Event{Action: UpdateAction, Record: Record{ID: "abc", Doc: json.RawMessage(`{}`)}}
	h.publish(OrdersCollection, event)

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
	assert.Equal(t, UpdateAction, first[0].Action)
	assert.Equal(t, "abc", second[0].Record.ID)
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {

	h := newHub()

	var got []Event
	unsubscribe := h.subscribe(OrdersCollection, func(e Event) { got = append(got, e) })

	h.publish(OrdersCollection, Event{Action: CreateAction})
	unsubscribe()
	h.publish(OrdersCollection, Event{Action: DeleteAction})

	assert.Len(t, got, 1)
	assert.Equal(t, CreateAction, got[0].Action)
}

func TestHubCollectionsAreIndependent(t *testing.T) {

	h := newHub()

	var got []Event
	h.subscribe(PlansCollection, func(e Event) { got = append(got, e) })

	h.publish(OrdersCollection, Event{Action: CreateAction})

	assert.Empty(t, got)
}

func TestHubUnsubscribeTwiceIsHarmless(t *testing.T) {

	h := newHub()

	unsubscribe := h.subscribe(OrdersCollection, func(Event) {})
	unsubscribe()
	unsubscribe()

	h.publish(OrdersCollection, Event{Action: CreateAction})
}
