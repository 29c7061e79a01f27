package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusSubscribePublish(t *testing.T) {
	bus := NewBus()

	var got []Event
	bus.Subscribe(GrantCreated, func(e Event) {
		got = append(got, e)
	})

	bus.Publish(New(GrantCreated, "user-1", map[string]any{"grantId": "g1"}))
	bus.Publish(New(GrantRevoked, "user-1", nil))

	assert.Len(t, got, 1)
	assert.Equal(t, GrantCreated, got[0].Type)
	assert.Equal(t, "user-1", got[0].ActorId)
	assert.Equal(t, "g1", got[0].Payload["grantId"])
}

func TestBusSubscribeAll(t *testing.T) {
	bus := NewBus()

	var count int
	bus.SubscribeAll(func(e Event) { count++ })

	bus.Publish(New(GrantCreated, "u", nil))
	bus.Publish(New(ProjectionAccept, "u", nil))
	assert.Equal(t, 2, count)
}

func TestBusHandlerPanicDoesNotPropagate(t *testing.T) {
	bus := NewBus()

	bus.Subscribe(GrantCreated, func(e Event) { panic("boom") })
	var reached bool
	bus.Subscribe(GrantCreated, func(e Event) { reached = true })

	assert.NotPanics(t, func() {
		bus.Publish(New(GrantCreated, "u", nil))
	})
	assert.True(t, reached)
}

func TestBusConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe(ProjectionCreated, func(e Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(New(ProjectionCreated, "u", nil))
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, count)
}
