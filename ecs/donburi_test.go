package ecs

import (
	"testing"

	"github.com/phanxgames/dreamscape"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewSink(world)
	if sink == nil {
		t.Fatal("NewSink returned nil")
	}
}

func TestSink_Emit(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewSink(world)

	var received []dreamscape.Event
	EventType.Subscribe(world, func(w donburi.World, e dreamscape.Event) {
		received = append(received, e)
	})

	sink.Emit(dreamscape.Event{
		Type:   dreamscape.EventBoltStruck,
		Frame:  42,
		X:      100,
		Y:      0,
		Height: 360,
	})
	sink.Emit(dreamscape.Event{
		Type:    dreamscape.EventWeatherToggled,
		Weather: dreamscape.WeatherCloud,
	})

	// Events are queued; process them.
	EventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != dreamscape.EventBoltStruck || e0.Frame != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.X != 100 || e0.Height != 360 {
		t.Errorf("event 0 bolt: (%v,%v)", e0.X, e0.Height)
	}

	e1 := received[1]
	if e1.Type != dreamscape.EventWeatherToggled || e1.Weather != dreamscape.WeatherCloud {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewSink(world)

	var count1, count2 int
	EventType.Subscribe(world, func(w donburi.World, e dreamscape.Event) {
		count1++
	})
	EventType.Subscribe(world, func(w donburi.World, e dreamscape.Event) {
		count2++
	})

	sink.Emit(dreamscape.Event{Type: dreamscape.EventStormStarted})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestCensus_TracksBirdLifecycle(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewSink(world)
	census := NewCensus(world)

	sink.Emit(dreamscape.Event{Type: dreamscape.EventBirdSpawned, BirdID: 1, X: -50, Y: 100})
	sink.Emit(dreamscape.Event{Type: dreamscape.EventBirdSpawned, BirdID: 2, X: 1330, Y: 80})
	EventType.ProcessEvents(world)

	if census.Len() != 2 {
		t.Fatalf("Len = %d, want 2", census.Len())
	}
	if census.Perched() != 0 {
		t.Errorf("Perched = %d before any landing", census.Perched())
	}

	sink.Emit(dreamscape.Event{
		Type:   dreamscape.EventBirdPerched,
		BirdID: 1,
		X:      640,
		Y:      200,
		Anchor: dreamscape.AnchorHead,
	})
	EventType.ProcessEvents(world)

	entry, ok := census.Lookup(1)
	if !ok {
		t.Fatal("bird 1 missing")
	}
	b := Bird.Get(entry)
	if !b.Perched || b.Anchor != dreamscape.AnchorHead || b.X != 640 {
		t.Errorf("bird 1 after perch: %+v", *b)
	}
	if census.Perched() != 1 {
		t.Errorf("Perched = %d, want 1", census.Perched())
	}

	sink.Emit(dreamscape.Event{Type: dreamscape.EventBirdFled, BirdID: 1, X: 650, Y: 190})
	sink.Emit(dreamscape.Event{Type: dreamscape.EventBirdFled, BirdID: 99})
	EventType.ProcessEvents(world)

	if census.Perched() != 0 {
		t.Errorf("Perched = %d after flight", census.Perched())
	}
	if _, ok := census.Lookup(99); ok {
		t.Error("unknown bird should not appear")
	}
}

func TestCensus_FollowsWorld(t *testing.T) {
	world := donburi.NewWorld()
	census := NewCensus(world)

	w := dreamscape.NewWorld(dreamscape.Options{Seed: 11, Events: NewSink(world)})
	p := dreamscape.DefaultParams()
	for range 900 {
		w.Step(nil, p, 1.0/60)
		EventType.ProcessEvents(world)
	}

	if got, want := census.Len(), len(w.Flock().Birds()); got != want {
		t.Errorf("census tracks %d birds, flock has %d", got, want)
	}
}
