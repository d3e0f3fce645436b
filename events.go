package dreamscape

// EventType identifies a kind of domain event.
type EventType uint8

const (
	EventHandRaised     EventType = iota // hand-raise hysteresis turned on
	EventHandLowered                     // hand-raise hysteresis turned off
	EventWeatherToggled                  // a tap flipped the weather mode
	EventStormStarted                    // palm held open long enough
	EventStormEnded                      // palm closed during a storm
	EventBoltStruck                      // a lightning bolt was spawned
	EventBirdSpawned                     // a bird joined the flock
	EventBirdPerched                     // a bird landed on an anchor
	EventBirdFled                        // a bird was shaken off its anchor
)

func (t EventType) String() string {
	switch t {
	case EventHandRaised:
		return "hand_raised"
	case EventHandLowered:
		return "hand_lowered"
	case EventWeatherToggled:
		return "weather_toggled"
	case EventStormStarted:
		return "storm_started"
	case EventStormEnded:
		return "storm_ended"
	case EventBoltStruck:
		return "bolt_struck"
	case EventBirdSpawned:
		return "bird_spawned"
	case EventBirdPerched:
		return "bird_perched"
	case EventBirdFled:
		return "bird_fled"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Event is a notable state change produced by a frame. Only the fields
// relevant to Type are set.
type Event struct {
	Type  EventType `json:"type"`
	Frame uint64    `json:"frame"`
	Time  float64   `json:"time"` // simulation seconds
	// Position of the bolt origin or bird.
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	// Bolt fields (valid for EventBoltStruck)
	Height float64 `json:"height,omitempty"`
	// Bird fields (valid for EventBird*)
	BirdID uint64    `json:"birdId,omitempty"`
	Anchor AnchorKey `json:"anchor,omitempty"`
	// Weather field (valid for EventWeatherToggled)
	Weather WeatherMode `json:"weather"`
}

// EventSink receives a frame's events once the frame is complete. Emit is
// called from the frame goroutine and must not block.
type EventSink interface {
	Emit(event Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// Emit calls f(event).
func (f EventSinkFunc) Emit(event Event) { f(event) }

// MultiSink fans events out to several sinks in order.
type MultiSink []EventSink

// Emit forwards event to every non-nil sink.
func (m MultiSink) Emit(event Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(event)
		}
	}
}
