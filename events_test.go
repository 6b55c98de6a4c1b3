package main_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	looper "gregoryjjb/looper"
)

func TestParseEventKinds(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		wantErr bool
	}{
		{name: "empty selects all", in: "", want: []string{"advance", "lap", "state"}},
		{name: "single", in: "lap", want: []string{"lap"}},
		{name: "several", in: "state, Advance", want: []string{"advance", "state"}},
		{name: "duplicates", in: "lap,lap", want: []string{"lap"}},
		{name: "unknown", in: "lap,skip", wantErr: true},
		{name: "trailing comma", in: "lap,", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := looper.ParseEventKinds(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, looper.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, looper.EventKindNames(got))
		})
	}
}

func TestEventJSON(t *testing.T) {
	e := looper.Event{
		Kinds: looper.KindsOf(looper.EventAdvance, looper.EventLap),
		State: looper.StatePlaying,
		Entry: &looper.Entry{Name: "a"},
		Lap:   2,
		Step:  7,
		Time:  time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"kinds": ["advance", "lap"],
		"state": "playing",
		"entry": {"name": "a"},
		"lap": 2,
		"step": 7,
		"time": "2024-12-25T00:00:00Z"
	}`, string(data))
}
