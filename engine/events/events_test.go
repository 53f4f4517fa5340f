package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nathoo/turncore/types"
)

func TestDispatch_MatchesType(t *testing.T) {
	bus := New()
	var opened, all []string
	bus.Subscribe("door_closed", func(ev types.Event) { opened = append(opened, ev.Type) })
	bus.Subscribe("", func(ev types.Event) { all = append(all, ev.Type) })

	bus.Dispatch([]types.Event{{Type: "door_closed"}, {Type: "stairs_unlocked"}})

	assert.Equal(t, []string{"door_closed"}, opened)
	assert.Equal(t, []string{"door_closed", "stairs_unlocked"}, all)
}

func TestDispatch_SubscriptionOrder(t *testing.T) {
	bus := New()
	var order []int
	for i := range 3 {
		bus.Subscribe("x", func(types.Event) { order = append(order, i) })
	}

	bus.Dispatch([]types.Event{{Type: "x"}})
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestUnsubscribe(t *testing.T) {
	bus := New()
	calls := 0
	stop := bus.Subscribe("x", func(types.Event) { calls++ })

	bus.Dispatch([]types.Event{{Type: "x"}})
	stop()
	bus.Dispatch([]types.Event{{Type: "x"}})
	stop()

	assert.Equal(t, 1, calls)
}

func TestDispatch_SubscribeDuringDispatch(t *testing.T) {
	bus := New()
	late := 0
	bus.Subscribe("x", func(types.Event) {
		bus.Subscribe("x", func(types.Event) { late++ })
	})

	bus.Dispatch([]types.Event{{Type: "x"}, {Type: "x"}})
	assert.Equal(t, 0, late, "subscribers added mid-dispatch wait for the next action")

	bus.Dispatch([]types.Event{{Type: "x"}})
	assert.Equal(t, 2, late)
}
