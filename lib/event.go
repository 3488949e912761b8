package lib

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventTypePoolCreated          EventType = "pool-created"
	EventTypeLiquidityAdded       EventType = "liquidity-added"
	EventTypeLiquidityRemoved     EventType = "liquidity-removed"
	EventTypeLiquidityTransferred EventType = "liquidity-transferred"
	EventTypeLiquidityApproved    EventType = "liquidity-approved"
	EventTypeSwap                 EventType = "swap"
	EventTypeInternalSwap         EventType = "internal-swap"
	EventTypeBurn                 EventType = "burn"
	EventTypeStake                EventType = "stake"
	EventTypeSync                 EventType = "sync"
	EventTypeConfigurationChanged EventType = "configuration-changed"
	EventTypeAssetDeployed        EventType = "asset-deployed"

	EventReferenceGenesis = "genesis"

	SwapSideBuy  = "buy"
	SwapSideSell = "sell"
)

type EventsTracker struct {
	Reference string // the id of the call the events belong to
	Events    Events // the actual events
}

// Add() adds an event to the tracker
func (t *EventsTracker) Add(event *Event) (e ErrorI) {
	if t == nil {
		return ErrEmptyEventsTracker()
	}
	t.Events = append(t.Events, event)
	return
}

// Refer() sets a reference string for the event tracker
func (t *EventsTracker) Refer(s string) {
	if t == nil {
		return
	}
	t.Reference = s
}

// GetReference() is an accessor for the reference string
func (t *EventsTracker) GetReference() string {
	if t == nil {
		return ""
	}
	return t.Reference
}

// Len() is the number of tracked events
func (t *EventsTracker) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Events)
}

// Truncate() drops every event recorded after the first n
func (t *EventsTracker) Truncate(n int) {
	if t == nil || n >= len(t.Events) {
		return
	}
	t.Events = t.Events[:n]
}

// Reset() resets the event tracker and returns the captured events
func (t *EventsTracker) Reset() (e Events) {
	if t == nil {
		return
	}
	// save
	e = t.Events
	// reset
	t.Events, t.Reference = nil, ""
	// exit
	return
}

type Events []*Event

// Event is a typed record of a state change committed by the engine
type Event struct {
	Id        string          `json:"id"`             // unique identifier of the event
	Sequence  uint64          `json:"sequence"`       // position of the event in the ledger's event log
	EventType string          `json:"eventType"`      // the kind of state change
	Reference string          `json:"reference"`      // the call the event belongs to
	Caller    string          `json:"caller"`         // the account that made the call
	Pool      string          `json:"pool,omitempty"` // the pool the event is about, if any
	Msg       json.RawMessage `json:"msg,omitempty"`  // the type specific payload
}

// EventPoolCreated is the payload of a pool creation
type EventPoolCreated struct {
	CurrencyAmount decimal.Decimal `json:"currencyAmount"`
	AssetAmount    decimal.Decimal `json:"assetAmount"`
	Points         decimal.Decimal `json:"points"`
}

// EventLiquidityAdded is the payload of a proportional deposit
type EventLiquidityAdded struct {
	CurrencyAmount decimal.Decimal `json:"currencyAmount"`
	AssetAmount    decimal.Decimal `json:"assetAmount"`
	Points         decimal.Decimal `json:"points"`
}

// EventLiquidityRemoved is the payload of a proportional withdrawal
type EventLiquidityRemoved struct {
	CurrencyAmount decimal.Decimal `json:"currencyAmount"`
	AssetAmount    decimal.Decimal `json:"assetAmount"`
	Points         decimal.Decimal `json:"points"`
	Beneficiary    string          `json:"beneficiary"`
}

// EventLiquidityTransferred is the payload of a direct or delegated liquidity point transfer
type EventLiquidityTransferred struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	Spender string          `json:"spender,omitempty"`
	Points  decimal.Decimal `json:"points"`
}

// EventLiquidityApproved is the payload of a liquidity allowance increase
type EventLiquidityApproved struct {
	Spender string          `json:"spender"`
	Points  decimal.Decimal `json:"points"`
}

// EventSwap is the payload of a trade
type EventSwap struct {
	Side          string          `json:"side"`
	AmountIn      decimal.Decimal `json:"amountIn"`
	AmountOut     decimal.Decimal `json:"amountOut"`
	Fee           decimal.Decimal `json:"fee"`
	ReferenceFees bool            `json:"referenceFees"`
}

// EventInternalSwap is the payload of a fee conversion against a pool
type EventInternalSwap struct {
	Side      string          `json:"side"`
	AmountIn  decimal.Decimal `json:"amountIn"`
	AmountOut decimal.Decimal `json:"amountOut"`
}

// EventBurn is the payload of an amount sent to the burn sink
type EventBurn struct {
	Asset  string          `json:"asset"`
	Amount decimal.Decimal `json:"amount"`
	Sink   string          `json:"sink"`
}

// EventStake is the payload of a stake change
type EventStake struct {
	Asset    string          `json:"asset"`
	Amount   decimal.Decimal `json:"amount"`
	Discount decimal.Decimal `json:"discount"`
}

// EventSync is the payload of a reserve reconciliation
type EventSync struct {
	PreviousReserveAsset decimal.Decimal `json:"previousReserveAsset"`
	ReserveAsset         decimal.Decimal `json:"reserveAsset"`
	Price                decimal.Decimal `json:"price"`
}

// EventConfigurationChanged is the payload of an accepted configuration change
type EventConfigurationChanged struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Version uint64 `json:"version"`
}

// EventAssetDeployed is the payload of an asset deployment
type EventAssetDeployed struct {
	Kind string `json:"kind"`
}
