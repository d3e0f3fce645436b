package ecs

import (
	"github.com/phanxgames/dreamscape"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EventType is the Donburi event type for dreamscape domain events.
var EventType = events.NewEventType[dreamscape.Event]()

type donburiSink struct {
	world donburi.World
}

// NewSink creates an EventSink backed by a Donburi world. Events are queued
// on EventType and delivered by events.ProcessAllEvents or
// EventType.ProcessEvents.
func NewSink(world donburi.World) dreamscape.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Emit(event dreamscape.Event) {
	EventType.Publish(s.world, event)
}

// BirdData mirrors one bird of the flock.
type BirdData struct {
	ID      uint64
	X, Y    float64 // last known position
	Perched bool
	Anchor  dreamscape.AnchorKey
}

// Bird is the component Census attaches to each bird entity.
var Bird = donburi.NewComponentType[BirdData]()

// Census keeps one entity per living bird, driven by bird events.
type Census struct {
	world    donburi.World
	entities map[uint64]donburi.Entity
}

// NewCensus subscribes a census to EventType on world.
func NewCensus(world donburi.World) *Census {
	c := &Census{world: world, entities: make(map[uint64]donburi.Entity)}
	EventType.Subscribe(world, c.handle)
	return c
}

// Len returns the number of birds tracked.
func (c *Census) Len() int {
	return len(c.entities)
}

// Lookup returns the entry for bird id.
func (c *Census) Lookup(id uint64) (*donburi.Entry, bool) {
	e, ok := c.entities[id]
	if !ok || !c.world.Valid(e) {
		return nil, false
	}
	return c.world.Entry(e), true
}

// Perched returns how many tracked birds are sitting on an anchor.
func (c *Census) Perched() int {
	n := 0
	for _, e := range c.entities {
		if Bird.Get(c.world.Entry(e)).Perched {
			n++
		}
	}
	return n
}

func (c *Census) handle(w donburi.World, e dreamscape.Event) {
	switch e.Type {
	case dreamscape.EventBirdSpawned:
		entity := w.Create(Bird)
		Bird.SetValue(w.Entry(entity), BirdData{ID: e.BirdID, X: e.X, Y: e.Y})
		c.entities[e.BirdID] = entity
	case dreamscape.EventBirdPerched, dreamscape.EventBirdFled:
		entry, ok := c.Lookup(e.BirdID)
		if !ok {
			return
		}
		b := Bird.Get(entry)
		b.X, b.Y = e.X, e.Y
		b.Perched = e.Type == dreamscape.EventBirdPerched
		if b.Perched {
			b.Anchor = e.Anchor
		}
	}
}
