package dreamscape

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// ---- Debug mode tests ------------------------------------------------------

func observed(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func TestDebugMode_LogsTimingsEverySixtyFrames(t *testing.T) {
	log, logs := observed(zap.DebugLevel)
	w := NewWorld(Options{Seed: 2, Logger: log, Debug: true})
	p := DefaultParams()

	for range 2*debugEvery + 10 {
		w.Step(nil, p, 1.0/60)
	}

	timings := logs.FilterMessage("frame timings").All()
	if len(timings) != 2 {
		t.Fatalf("got %d timing lines, want 2", len(timings))
	}
	fields := timings[0].ContextMap()
	if fields["frame"] != uint64(debugEvery) {
		t.Errorf("first timing line frame = %v", fields["frame"])
	}
	for _, k := range []string{"gesture", "particle", "lightning", "birds", "compose", "total", "commands"} {
		if _, ok := fields[k]; !ok {
			t.Errorf("timing line missing %q", k)
		}
	}
}

func TestDebugMode_OffIsQuiet(t *testing.T) {
	log, logs := observed(zap.DebugLevel)
	w := NewWorld(Options{Seed: 2, Logger: log})
	p := DefaultParams()

	for range 2 * debugEvery {
		w.Step(nil, p, 1.0/60)
	}
	if n := logs.FilterMessage("frame timings").Len(); n != 0 {
		t.Errorf("got %d timing lines with debug off", n)
	}
}

func TestDebugMode_LogsEvents(t *testing.T) {
	log, logs := observed(zap.DebugLevel)
	w := NewWorld(Options{Seed: 2, Logger: log})

	w.Step(&Snapshot{RightHand: tapHand()}, DefaultParams(), 1.0/60)

	events := logs.FilterMessage("event").All()
	if len(events) == 0 {
		t.Fatal("tap produced no event log")
	}
	if got := events[0].ContextMap()["type"]; got != EventWeatherToggled.String() {
		t.Errorf("event type = %v", got)
	}
}

func TestDebugMode_InfoLoggerSkipsEvents(t *testing.T) {
	log, logs := observed(zap.InfoLevel)
	w := NewWorld(Options{Seed: 2, Logger: log, Debug: true})

	for range debugEvery {
		w.Step(&Snapshot{RightHand: tapHand()}, DefaultParams(), 1.0/60)
	}
	if logs.Len() != 0 {
		t.Errorf("info logger recorded %d debug entries", logs.Len())
	}
}
