package fsm

import (
	"encoding/binary"
	"encoding/json"

	"github.com/canopy-network/canopy-amm/lib"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventPoolCreated() adds a pool created event
func (s *StateMachine) EventPoolCreated(caller, asset string, currencyAmount, assetAmount, points decimal.Decimal) lib.ErrorI {
	return s.addEvent(lib.EventTypePoolCreated, &lib.EventPoolCreated{
		CurrencyAmount: currencyAmount,
		AssetAmount:    assetAmount,
		Points:         points,
	}, caller, asset)
}

// EventLiquidityAdded() adds a liquidity deposit event
func (s *StateMachine) EventLiquidityAdded(caller, asset string, currencyAmount, assetAmount, points decimal.Decimal) lib.ErrorI {
	return s.addEvent(lib.EventTypeLiquidityAdded, &lib.EventLiquidityAdded{
		CurrencyAmount: currencyAmount,
		AssetAmount:    assetAmount,
		Points:         points,
	}, caller, asset)
}

// EventLiquidityRemoved() adds a liquidity withdrawal event
func (s *StateMachine) EventLiquidityRemoved(caller, asset, beneficiary string, currencyAmount, assetAmount, points decimal.Decimal) lib.ErrorI {
	return s.addEvent(lib.EventTypeLiquidityRemoved, &lib.EventLiquidityRemoved{
		CurrencyAmount: currencyAmount,
		AssetAmount:    assetAmount,
		Points:         points,
		Beneficiary:    beneficiary,
	}, caller, asset)
}

// EventLiquidityTransferred() adds a liquidity point transfer event; spender is empty for direct transfers
func (s *StateMachine) EventLiquidityTransferred(caller, asset, from, to, spender string, points decimal.Decimal) lib.ErrorI {
	return s.addEvent(lib.EventTypeLiquidityTransferred, &lib.EventLiquidityTransferred{
		From:    from,
		To:      to,
		Spender: spender,
		Points:  points,
	}, caller, asset)
}

// EventLiquidityApproved() adds a liquidity allowance event
func (s *StateMachine) EventLiquidityApproved(caller, asset, spender string, points decimal.Decimal) lib.ErrorI {
	return s.addEvent(lib.EventTypeLiquidityApproved, &lib.EventLiquidityApproved{Spender: spender, Points: points}, caller, asset)
}

// EventSwap() adds a trade event
func (s *StateMachine) EventSwap(caller, asset, side string, amountIn, amountOut, fee decimal.Decimal, referenceFees bool) lib.ErrorI {
	return s.addEvent(lib.EventTypeSwap, &lib.EventSwap{
		Side:          side,
		AmountIn:      amountIn,
		AmountOut:     amountOut,
		Fee:           fee,
		ReferenceFees: referenceFees,
	}, caller, asset)
}

// EventInternalSwap() adds a fee conversion event
func (s *StateMachine) EventInternalSwap(caller, asset, side string, amountIn, amountOut decimal.Decimal) lib.ErrorI {
	return s.addEvent(lib.EventTypeInternalSwap, &lib.EventInternalSwap{
		Side:      side,
		AmountIn:  amountIn,
		AmountOut: amountOut,
	}, caller, asset)
}

// EventBurn() adds a burn event
func (s *StateMachine) EventBurn(caller, asset, sink string, amount decimal.Decimal) lib.ErrorI {
	return s.addEvent(lib.EventTypeBurn, &lib.EventBurn{Asset: asset, Amount: amount, Sink: sink}, caller, "")
}

// EventStake() adds a stake change event
func (s *StateMachine) EventStake(caller, asset string, amount, discount decimal.Decimal) lib.ErrorI {
	return s.addEvent(lib.EventTypeStake, &lib.EventStake{Asset: asset, Amount: amount, Discount: discount}, caller, "")
}

// EventSync() adds a reserve reconciliation event
func (s *StateMachine) EventSync(caller, asset string, previous, reserveAsset, price decimal.Decimal) lib.ErrorI {
	return s.addEvent(lib.EventTypeSync, &lib.EventSync{
		PreviousReserveAsset: previous,
		ReserveAsset:         reserveAsset,
		Price:                price,
	}, caller, asset)
}

// EventConfigurationChanged() adds an accepted configuration change event
func (s *StateMachine) EventConfigurationChanged(caller, key, value string, version uint64) lib.ErrorI {
	return s.addEvent(lib.EventTypeConfigurationChanged, &lib.EventConfigurationChanged{Key: key, Value: value, Version: version}, caller, "")
}

// EventAssetDeployed() adds an asset deployment event
func (s *StateMachine) EventAssetDeployed(caller, asset, kind string) lib.ErrorI {
	return s.addEvent(lib.EventTypeAssetDeployed, &lib.EventAssetDeployed{Kind: kind}, caller, asset)
}

// GetEvents() returns up to limit events from the ledger's event log, newest first; a zero limit returns all
func (s *StateMachine) GetEvents(limit int) (events lib.Events, err lib.ErrorI) {
	it, err := s.RevIterator(EventPrefix())
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for ; it.Valid() && (limit <= 0 || len(events) < limit); it.Next() {
		e := new(lib.Event)
		if err = lib.UnmarshalJSON(it.Value(), e); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return
}

// addEvent() is a helper function that creates an event with common fields set, appends it to the
// ledger's event log and adds it to the tracker
func (s *StateMachine) addEvent(eventType lib.EventType, msg any, caller, pool string) lib.ErrorI {
	payload, e := json.Marshal(msg)
	if e != nil {
		return lib.ErrJSONMarshal(e)
	}
	sequence, err := s.nextEventSequence()
	if err != nil {
		return err
	}
	event := &lib.Event{
		Id:        uuid.NewString(),
		Sequence:  sequence,
		EventType: string(eventType),
		Reference: s.events.GetReference(),
		Caller:    caller,
		Pool:      pool,
		Msg:       payload,
	}
	bz, err := lib.MarshalJSON(event)
	if err != nil {
		return err
	}
	if err = s.Set(KeyForEvent(sequence), bz); err != nil {
		return err
	}
	return s.events.Add(event)
}

// nextEventSequence() returns the next position in the event log and advances the counter
func (s *StateMachine) nextEventSequence() (sequence uint64, err lib.ErrorI) {
	bz, err := s.Get(eventSequenceKey)
	if err != nil {
		return
	}
	if len(bz) == 8 {
		sequence = binary.BigEndian.Uint64(bz)
	}
	return sequence, s.Set(eventSequenceKey, formatUint64(sequence+1))
}
