package fsm

import (
	"encoding/json"
	"testing"

	"github.com/canopy-network/canopy-amm/lib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestEventsOfBuy(t *testing.T) {
	sm := newTestExchange(t)
	sm.ResetEvents("call-1")
	_, err := sm.Buy(testTrader, testToken, decimal.NewFromInt(10), lib.Zero, false)
	require.NoError(t, err)
	events := sm.ResetEvents("call-2")
	// the fee conversion, the burn and the trade were recorded in order
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.EventType
		require.Equal(t, "call-1", e.Reference)
		require.Equal(t, testTrader, e.Caller)
		require.NotEmpty(t, e.Id)
		if i > 0 {
			require.Equal(t, events[i-1].Sequence+1, e.Sequence)
		}
	}
	require.Equal(t, []string{
		string(lib.EventTypeInternalSwap),
		string(lib.EventTypeInternalSwap),
		string(lib.EventTypeBurn),
		string(lib.EventTypeSwap),
	}, types)
	// the trade payload carries the amounts
	swap := new(lib.EventSwap)
	require.NoError(t, json.Unmarshal(events[3].Msg, swap))
	require.Equal(t, lib.SwapSideBuy, swap.Side)
	require.True(t, swap.AmountIn.Equal(decimal.NewFromInt(10)))
	requireNear(t, decimal.RequireFromString("90.636363636363636"), swap.AmountOut, tolerance)
	require.False(t, swap.ReferenceFees)
	// the tracker is empty after the reset
	require.Empty(t, sm.Events())
}

func TestGetEvents(t *testing.T) {
	tests := []struct {
		name     string
		detail   string
		limit    int
		expected int
	}{
		{
			name:     "all",
			detail:   "a zero limit returns the whole log",
			limit:    0,
			expected: 5,
		},
		{
			name:     "limited",
			detail:   "the newest events are returned first",
			limit:    2,
			expected: 2,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// genesis deploys 3 assets and the exchange opens 2 markets
			sm := newTestExchange(t)
			// execute the function call
			events, err := sm.GetEvents(test.limit)
			require.NoError(t, err)
			require.Len(t, events, test.expected)
			require.Equal(t, string(lib.EventTypePoolCreated), events[0].EventType)
			require.Equal(t, testToken, events[0].Pool)
			for i := 1; i < len(events); i++ {
				require.Greater(t, events[i-1].Sequence, events[i].Sequence)
			}
		})
	}
}

func TestEventsRolledBack(t *testing.T) {
	sm := newTestExchange(t)
	before, err := sm.GetEvents(0)
	require.NoError(t, err)
	// a rejected trade records nothing, in the tracker or in the log
	numEvents := len(sm.Events())
	_, err = sm.Buy(testTrader, testToken, decimal.NewFromInt(10), decimal.NewFromInt(1000), false)
	require.Error(t, err)
	require.Len(t, sm.Events(), numEvents)
	after, err := sm.GetEvents(0)
	require.NoError(t, err)
	require.Equal(t, before, after)
}
