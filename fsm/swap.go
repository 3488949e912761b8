package fsm

import (
	"github.com/canopy-network/canopy-amm/lib"
	"github.com/shopspring/decimal"
)

/* This file implements the pricing engine: constant product buys and sells priced against a market's reserves */

// Buy() spends currency for the market's asset and returns the amount of asset paid to the caller
//
//	k = C * A; new_C = C + spent; new_A = k / new_C; out = A - new_A
//
// a zero minimumReceived sets no bound; referenceFees charges the fee in the reference asset instead of the output
func (s *StateMachine) Buy(caller, asset string, currencyAmount, minimumReceived decimal.Decimal, referenceFees bool) (received decimal.Decimal, err lib.ErrorI) {
	err = s.Atomic(func() lib.ErrorI {
		if caller == "" {
			return ErrEmptyCaller()
		}
		params, e := s.GetParams()
		if e != nil {
			return e
		}
		plan := s.newSwapPlan(caller, params)
		pool, e := plan.pool(asset)
		if e != nil {
			return e
		}
		if !currencyAmount.IsPositive() {
			return ErrNonPositiveAmount("currency amount")
		}
		tradable, e := s.resolveAsset(asset)
		if e != nil {
			return e
		}
		currency, e := s.resolveAsset(s.CurrencyAsset())
		if e != nil {
			return e
		}
		plan.escrow(currency, caller, currencyAmount)
		reserveCurrency, reserveAsset := pool.ReserveCurrency, pool.ReserveAsset
		k := lib.Mul(reserveCurrency, reserveAsset)
		newCurrency := reserveCurrency.Add(currencyAmount)
		newAsset, e := lib.Quo(k, newCurrency)
		if e != nil {
			return e
		}
		received = reserveAsset.Sub(newAsset)
		rate, e := s.feeRate(caller, params)
		if e != nil {
			return e
		}
		fee := lib.Mul(received, rate)
		if referenceFees {
			fee = lib.Mul(fee, params.ReferenceFeeMultiplier)
			// the currency value of the fee at this market's price, with the rate on top
			feeReserveAsset, er := lib.Quo(k, reserveAsset.Add(fee))
			if er != nil {
				return er
			}
			feeValue := reserveCurrency.Sub(feeReserveAsset)
			feeValue = feeValue.Add(lib.Mul(feeValue, rate))
			currencyReceived, er := plan.chargeReferenceFee(feeValue, rate)
			if er != nil {
				return er
			}
			bought, er := plan.internalBuy(asset, currencyReceived)
			if er != nil {
				return er
			}
			newAsset = newAsset.Add(bought)
		} else {
			received = received.Sub(fee)
			retained := lib.Mul(fee, params.BurnRetainedFraction)
			converted, er := plan.internalSell(asset, fee.Sub(retained))
			if er != nil {
				return er
			}
			if er = plan.burnViaReference(converted); er != nil {
				return er
			}
			newAsset = newAsset.Add(retained)
		}
		if !received.IsPositive() {
			return ErrReserveError()
		}
		if received.LessThan(minimumReceived) {
			return ErrSlippage(received, minimumReceived)
		}
		plan.payout(tradable, caller, received)
		// the trade's own reserves are set last and overwrite any fee conversion against this market
		if e = pool.setReserves(newCurrency, newAsset); e != nil {
			return e
		}
		if e = plan.commit(); e != nil {
			return e
		}
		return s.EventSwap(caller, asset, lib.SwapSideBuy, currencyAmount, received, fee, referenceFees)
	})
	if err != nil {
		return lib.Zero, err
	}
	return
}

// Sell() spends the market's asset for currency and returns the amount of currency paid to the caller
//
//	k = C * A; new_A = A + spent; new_C = k / new_A; out = C - new_C
//
// a zero minimumReceived sets no bound; referenceFees charges the fee in the reference asset instead of the output
func (s *StateMachine) Sell(caller, asset string, assetAmount, minimumReceived decimal.Decimal, referenceFees bool) (received decimal.Decimal, err lib.ErrorI) {
	err = s.Atomic(func() lib.ErrorI {
		if caller == "" {
			return ErrEmptyCaller()
		}
		params, e := s.GetParams()
		if e != nil {
			return e
		}
		plan := s.newSwapPlan(caller, params)
		pool, e := plan.pool(asset)
		if e != nil {
			return e
		}
		if !assetAmount.IsPositive() {
			return ErrNonPositiveAmount("asset amount")
		}
		tradable, e := s.resolveAsset(asset)
		if e != nil {
			return e
		}
		currency, e := s.resolveAsset(s.CurrencyAsset())
		if e != nil {
			return e
		}
		plan.escrow(tradable, caller, assetAmount)
		reserveCurrency, reserveAsset := pool.ReserveCurrency, pool.ReserveAsset
		k := lib.Mul(reserveCurrency, reserveAsset)
		newAsset := reserveAsset.Add(assetAmount)
		newCurrency, e := lib.Quo(k, newAsset)
		if e != nil {
			return e
		}
		received = reserveCurrency.Sub(newCurrency)
		rate, e := s.feeRate(caller, params)
		if e != nil {
			return e
		}
		fee := lib.Mul(received, rate)
		if referenceFees {
			fee = lib.Mul(fee, params.ReferenceFeeMultiplier)
			currencyReceived, er := plan.chargeReferenceFee(fee, rate)
			if er != nil {
				return er
			}
			newCurrency = newCurrency.Add(currencyReceived)
		} else {
			received = received.Sub(fee)
			retained := lib.Mul(fee, params.BurnRetainedFraction)
			newCurrency = newCurrency.Add(retained)
			if er := plan.burnViaReference(fee.Sub(retained)); er != nil {
				return er
			}
		}
		if !received.IsPositive() {
			return ErrReserveError()
		}
		if received.LessThan(minimumReceived) {
			return ErrSlippage(received, minimumReceived)
		}
		plan.payout(currency, caller, received)
		// the trade's own reserves are set last and overwrite any fee conversion against this market
		if e = pool.setReserves(newCurrency, newAsset); e != nil {
			return e
		}
		if e = plan.commit(); e != nil {
			return e
		}
		return s.EventSwap(caller, asset, lib.SwapSideSell, assetAmount, received, fee, referenceFees)
	})
	if err != nil {
		return lib.Zero, err
	}
	return
}

// feeRate() is the base fee scaled by the caller's staking discount
func (s *StateMachine) feeRate(caller string, params *Params) (decimal.Decimal, lib.ErrorI) {
	position, err := s.GetStake(caller)
	if err != nil {
		return lib.Zero, err
	}
	return lib.Mul(params.FeePercentage, position.Multiplier), nil
}
