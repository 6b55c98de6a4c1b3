package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gregoryjjb/looper/flags"
)

type EventKind uint8

const (
	// The cursor moved to another step.
	EventAdvance EventKind = 1 << iota
	// The cursor crossed into another lap.
	EventLap
	// The sequencer changed state.
	EventState
)

var eventKindNames = []struct {
	kind EventKind
	name string
}{
	{EventAdvance, "advance"},
	{EventLap, "lap"},
	{EventState, "state"},
}

type eventMask struct{}

func (eventMask) Mask() EventKind { return EventAdvance | EventLap | EventState }

// EventKinds is a set of EventKind.
type EventKinds = flags.Flags[EventKind, eventMask]

func KindsOf(ks ...EventKind) EventKinds {
	return flags.Of[EventKind, eventMask](ks...)
}

// ParseEventKinds reads a comma separated list of kind names. An empty
// string selects every kind.
func ParseEventKinds(s string) (EventKinds, error) {
	if strings.TrimSpace(s) == "" {
		return flags.Full[EventKind, eventMask](), nil
	}

	kinds := flags.None[EventKind, eventMask]()
outer:
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		for _, k := range eventKindNames {
			if k.name == part {
				kinds.Set(k.kind)
				continue outer
			}
		}
		return kinds, fmt.Errorf("%w: unknown event kind %q", ErrValidation, part)
	}
	return kinds, nil
}

func EventKindNames(kinds EventKinds) []string {
	names := []string{}
	for _, k := range eventKindNames {
		if kinds.Has(k.kind) {
			names = append(names, k.name)
		}
	}
	return names
}

type Event struct {
	Kinds EventKinds
	State SequencerState
	Entry *Entry
	Lap   uint64
	Step  int
	Time  time.Time
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kinds []string       `json:"kinds"`
		State SequencerState `json:"state"`
		Entry *Entry         `json:"entry"`
		Lap   uint64         `json:"lap"`
		Step  int            `json:"step"`
		Time  time.Time      `json:"time"`
	}{
		Kinds: EventKindNames(e.Kinds),
		State: e.State,
		Entry: e.Entry,
		Lap:   e.Lap,
		Step:  e.Step,
		Time:  e.Time,
	})
}
