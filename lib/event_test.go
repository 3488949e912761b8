package lib

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestEventsTracker_Add(t *testing.T) {
	tracker := &EventsTracker{}
	event := &Event{EventType: string(EventTypeSwap)}

	err := tracker.Add(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tracker.Events) != 1 {
		t.Errorf("expected 1 event, got %d", len(tracker.Events))
	}
}

func TestEventsTracker_Add_Nil(t *testing.T) {
	var tracker *EventsTracker

	err := tracker.Add(&Event{})
	if err == nil {
		t.Error("expected error for nil tracker")
	}
	// nil trackers are inert
	tracker.Refer("ignored")
	tracker.Truncate(0)
	require.Equal(t, "", tracker.GetReference())
	require.Zero(t, tracker.Len())
	require.Nil(t, tracker.Reset())
}

func TestEventsTracker_Refer(t *testing.T) {
	tracker := &EventsTracker{}
	ref := "test-reference"

	tracker.Refer(ref)

	if tracker.GetReference() != ref {
		t.Errorf("expected reference %s, got %s", ref, tracker.Reference)
	}
}

func TestEventsTracker_Truncate(t *testing.T) {
	tests := []struct {
		name     string
		detail   string
		keep     int
		expected int
	}{
		{
			name:     "drop tail",
			detail:   "events after the first n are dropped",
			keep:     1,
			expected: 1,
		},
		{
			name:     "drop all",
			detail:   "truncating to zero empties the tracker",
			keep:     0,
			expected: 0,
		},
		{
			name:     "beyond length",
			detail:   "truncating past the end is a no-op",
			keep:     5,
			expected: 3,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tracker := &EventsTracker{Events: Events{{Sequence: 1}, {Sequence: 2}, {Sequence: 3}}}
			tracker.Truncate(test.keep)
			require.Equal(t, test.expected, tracker.Len())
		})
	}
}

func TestEventsTracker_Reset(t *testing.T) {
	tracker := &EventsTracker{
		Reference: "call",
		Events:    Events{&Event{EventType: string(EventTypeBurn)}},
	}

	events := tracker.Reset()

	require.Len(t, events, 1)
	require.Empty(t, tracker.Events)
	require.Empty(t, tracker.Reference)
}

func TestEventJSON(t *testing.T) {
	payload, err := json.Marshal(EventSwap{
		Side:      SwapSideBuy,
		AmountIn:  decimal.NewFromInt(10),
		AmountOut: decimal.RequireFromString("90.6"),
		Fee:       decimal.RequireFromString("0.27"),
	})
	require.NoError(t, err)
	bz, e := MarshalJSON(&Event{Id: "id", Sequence: 7, EventType: string(EventTypeSwap), Caller: "stu", Pool: "con_token1", Msg: payload})
	require.NoError(t, e)
	got := new(Event)
	require.NoError(t, UnmarshalJSON(bz, got))
	require.Equal(t, uint64(7), got.Sequence)
	require.Equal(t, "con_token1", got.Pool)
	swap := new(EventSwap)
	require.NoError(t, json.Unmarshal(got.Msg, swap))
	require.True(t, swap.AmountOut.Equal(decimal.RequireFromString("90.6")))
	require.Equal(t, SwapSideBuy, swap.Side)
}
