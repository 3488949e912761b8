package fsm

import (
	"github.com/canopy-network/canopy-amm/lib"
	"github.com/shopspring/decimal"
)

/*
	This file implements the fee & burn router.

	A trade is planned against a working set of pools before anything is written:
	the internal swaps used for fee conversion read and update the working set, the trade's own pool is set last,
	and only then are all pools written and the queued asset movements executed.
	A failure anywhere in the plan leaves every pool untouched.
*/

// swapPlan is the full delta set of one trade
type swapPlan struct {
	sm        *StateMachine
	params    *Params
	caller    string
	pools     map[string]*Pool // working set of every pool the trade touches
	order     []string         // the order pools entered the working set
	transfers []plannedTransfer
}

// plannedTransfer is an asset movement executed after the pools are written
type plannedTransfer struct {
	asset   lib.AssetI
	account string // the payer of an escrow or the recipient of a payout
	amount  decimal.Decimal
	escrow  bool
}

// newSwapPlan() starts an empty plan for the caller under the current configuration
func (s *StateMachine) newSwapPlan(caller string, params *Params) *swapPlan {
	return &swapPlan{sm: s, params: params, caller: caller, pools: make(map[string]*Pool)}
}

// pool() returns the working copy of a market, loading it from state on first use
func (p *swapPlan) pool(asset string) (*Pool, lib.ErrorI) {
	if pool, ok := p.pools[asset]; ok {
		return pool, nil
	}
	pool, err := p.sm.GetExistingPool(asset)
	if err != nil {
		return nil, err
	}
	p.pools[asset], p.order = pool, append(p.order, asset)
	return pool, nil
}

// referencePool() returns the working copy of the reference asset market
func (p *swapPlan) referencePool() (*Pool, lib.ErrorI) {
	pool, err := p.pool(p.params.ReferenceAsset)
	if err != nil {
		if err.Code() == lib.CodePoolNotFound && err.Module() == lib.StateMachineModule {
			return nil, ErrReferencePoolNotFound(p.params.ReferenceAsset)
		}
		return nil, err
	}
	return pool, nil
}

// escrow() queues an asset movement from the account into the engine
func (p *swapPlan) escrow(asset lib.AssetI, from string, amount decimal.Decimal) {
	p.transfers = append(p.transfers, plannedTransfer{asset: asset, account: from, amount: amount, escrow: true})
}

// payout() queues an asset movement from the engine to the account
func (p *swapPlan) payout(asset lib.AssetI, to string, amount decimal.Decimal) {
	p.transfers = append(p.transfers, plannedTransfer{asset: asset, account: to, amount: amount})
}

// internalBuy() spends currency into a market at the base fee and returns the asset bought
// the fee stays in the market; a non-positive amount buys nothing
func (p *swapPlan) internalBuy(asset string, currencyAmount decimal.Decimal) (decimal.Decimal, lib.ErrorI) {
	pool, err := p.pool(asset)
	if err != nil {
		return lib.Zero, err
	}
	if !currencyAmount.IsPositive() {
		return lib.Zero, nil
	}
	if _, err = p.sm.resolveAsset(asset); err != nil {
		return lib.Zero, err
	}
	k := lib.Mul(pool.ReserveCurrency, pool.ReserveAsset)
	newCurrency := pool.ReserveCurrency.Add(currencyAmount)
	newAsset, err := lib.Quo(k, newCurrency)
	if err != nil {
		return lib.Zero, err
	}
	bought := pool.ReserveAsset.Sub(newAsset)
	fee := lib.Mul(bought, p.params.FeePercentage)
	bought, newAsset = bought.Sub(fee), newAsset.Add(fee)
	if !bought.IsPositive() {
		return lib.Zero, ErrReserveError()
	}
	if err = pool.setReserves(newCurrency, newAsset); err != nil {
		return lib.Zero, err
	}
	return bought, p.sm.EventInternalSwap(p.caller, asset, lib.SwapSideBuy, currencyAmount, bought)
}

// internalSell() spends asset into a market at the base fee and returns the currency bought
// the fee stays in the market; a non-positive amount sells nothing
func (p *swapPlan) internalSell(asset string, assetAmount decimal.Decimal) (decimal.Decimal, lib.ErrorI) {
	pool, err := p.pool(asset)
	if err != nil {
		return lib.Zero, err
	}
	if !assetAmount.IsPositive() {
		return lib.Zero, nil
	}
	if _, err = p.sm.resolveAsset(asset); err != nil {
		return lib.Zero, err
	}
	k := lib.Mul(pool.ReserveCurrency, pool.ReserveAsset)
	newAsset := pool.ReserveAsset.Add(assetAmount)
	newCurrency, err := lib.Quo(k, newAsset)
	if err != nil {
		return lib.Zero, err
	}
	bought := pool.ReserveCurrency.Sub(newCurrency)
	fee := lib.Mul(bought, p.params.FeePercentage)
	bought, newCurrency = bought.Sub(fee), newCurrency.Add(fee)
	if !bought.IsPositive() {
		return lib.Zero, ErrReserveError()
	}
	if err = pool.setReserves(newCurrency, newAsset); err != nil {
		return lib.Zero, err
	}
	return bought, p.sm.EventInternalSwap(p.caller, asset, lib.SwapSideSell, assetAmount, bought)
}

// chargeReferenceFee() charges the caller a fee worth currencyValue in the reference asset
// the amount of reference asset is priced by a buy of currencyValue (plus the rate on top) against the reference market;
// the retained fraction is sold into the reference market for currency and the rest is burned
// the pricing uses the output currency instead of the input currency and is an approximation of a fee neutral route
func (p *swapPlan) chargeReferenceFee(currencyValue, rate decimal.Decimal) (currencyReceived decimal.Decimal, err lib.ErrorI) {
	ref, err := p.referencePool()
	if err != nil {
		return lib.Zero, err
	}
	refAsset, err := p.sm.resolveAsset(p.params.ReferenceAsset)
	if err != nil {
		return lib.Zero, err
	}
	k := lib.Mul(ref.ReserveCurrency, ref.ReserveAsset)
	newCurrency := ref.ReserveCurrency.Add(currencyValue).Add(lib.Mul(currencyValue, rate))
	newAsset, err := lib.Quo(k, newCurrency)
	if err != nil {
		return lib.Zero, err
	}
	charged := ref.ReserveAsset.Sub(newAsset)
	retained := lib.Mul(charged, p.params.BurnRetainedFraction)
	p.escrow(refAsset, p.caller, charged)
	if currencyReceived, err = p.internalSell(p.params.ReferenceAsset, retained); err != nil {
		return lib.Zero, err
	}
	return currencyReceived, p.burn(refAsset, charged.Sub(retained))
}

// burnViaReference() converts currency into the reference asset through the reference market and burns it
func (p *swapPlan) burnViaReference(currencyAmount decimal.Decimal) lib.ErrorI {
	if _, err := p.referencePool(); err != nil {
		return err
	}
	refAsset, err := p.sm.resolveAsset(p.params.ReferenceAsset)
	if err != nil {
		return err
	}
	bought, err := p.internalBuy(p.params.ReferenceAsset, currencyAmount)
	if err != nil {
		return err
	}
	return p.burn(refAsset, bought)
}

// burn() queues a payout to the burn sink
func (p *swapPlan) burn(asset lib.AssetI, amount decimal.Decimal) lib.ErrorI {
	if !amount.IsPositive() {
		return nil
	}
	p.payout(asset, p.params.BurnSink, amount)
	return p.sm.EventBurn(p.caller, asset.Name(), p.params.BurnSink, amount)
}

// commit() writes every pool of the working set and then executes the queued asset movements in order
func (p *swapPlan) commit() lib.ErrorI {
	for _, asset := range p.order {
		if err := p.sm.SetPool(p.pools[asset]); err != nil {
			return err
		}
	}
	for _, t := range p.transfers {
		var err lib.ErrorI
		if t.escrow {
			err = p.sm.escrow(t.asset, t.account, t.amount)
		} else {
			err = p.sm.payout(t.asset, t.account, t.amount)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
