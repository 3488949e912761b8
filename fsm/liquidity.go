package fsm

import (
	"github.com/canopy-network/canopy-amm/lib"
	"github.com/shopspring/decimal"
)

/* This file implements the liquidity ledger: per market liquidity points, their transfer and their delegation */

// AddLiquidity() deposits both legs in the market's current ratio and mints points proportional to the currency added
func (s *StateMachine) AddLiquidity(caller, asset string, currencyAmount decimal.Decimal) (minted decimal.Decimal, err lib.ErrorI) {
	err = s.Atomic(func() lib.ErrorI {
		if caller == "" {
			return ErrEmptyCaller()
		}
		pool, e := s.GetExistingPool(asset)
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
		// the asset leg required to keep the price
		assetAmount, e := lib.Quo(currencyAmount, pool.Price)
		if e != nil {
			return e
		}
		if minted, e = lib.Quo(lib.Mul(pool.TotalPoints, currencyAmount), pool.ReserveCurrency); e != nil {
			return e
		}
		// effects
		balance, e := s.LiquidityBalanceOf(asset, caller)
		if e != nil {
			return e
		}
		if e = s.setLPBalance(asset, caller, balance.Add(minted)); e != nil {
			return e
		}
		pool.TotalPoints = pool.TotalPoints.Add(minted)
		if e = pool.setReserves(pool.ReserveCurrency.Add(currencyAmount), pool.ReserveAsset.Add(assetAmount)); e != nil {
			return e
		}
		if e = s.SetPool(pool); e != nil {
			return e
		}
		// interactions
		if e = s.escrow(currency, caller, currencyAmount); e != nil {
			return e
		}
		if e = s.escrow(tradable, caller, assetAmount); e != nil {
			return e
		}
		return s.EventLiquidityAdded(caller, asset, currencyAmount, assetAmount, minted)
	})
	if err != nil {
		return lib.Zero, err
	}
	return
}

// RemoveLiquidity() burns points and pays out the matching share of both reserves to the beneficiary
// an empty beneficiary pays the caller; the market must keep more than one point and positive reserves
func (s *StateMachine) RemoveLiquidity(caller, asset string, amount decimal.Decimal, beneficiary string) (currencyOut, assetOut decimal.Decimal, err lib.ErrorI) {
	err = s.Atomic(func() lib.ErrorI {
		if caller == "" {
			return ErrEmptyCaller()
		}
		pool, e := s.GetExistingPool(asset)
		if e != nil {
			return e
		}
		if !amount.IsPositive() {
			return ErrNonPositiveAmount("liquidity amount")
		}
		balance, e := s.LiquidityBalanceOf(asset, caller)
		if e != nil {
			return e
		}
		if balance.LessThan(amount) {
			return ErrInsufficientLiquidity(balance, amount)
		}
		tradable, e := s.resolveAsset(asset)
		if e != nil {
			return e
		}
		currency, e := s.resolveAsset(s.CurrencyAsset())
		if e != nil {
			return e
		}
		if beneficiary == "" {
			beneficiary = caller
		}
		share, e := lib.Quo(amount, pool.TotalPoints)
		if e != nil {
			return e
		}
		currencyOut, assetOut = lib.Mul(pool.ReserveCurrency, share), lib.Mul(pool.ReserveAsset, share)
		// invariants
		pool.TotalPoints = pool.TotalPoints.Sub(amount)
		if pool.TotalPoints.LessThanOrEqual(lib.One) {
			return ErrRemainingLiquidity()
		}
		newCurrency, newAsset := pool.ReserveCurrency.Sub(currencyOut), pool.ReserveAsset.Sub(assetOut)
		if !newCurrency.IsPositive() || !newAsset.IsPositive() {
			return ErrDegenerateReserves(asset)
		}
		// effects
		if e = s.setLPBalance(asset, caller, balance.Sub(amount)); e != nil {
			return e
		}
		if e = pool.setReserves(newCurrency, newAsset); e != nil {
			return e
		}
		if e = s.SetPool(pool); e != nil {
			return e
		}
		// interactions
		if e = s.payout(currency, beneficiary, currencyOut); e != nil {
			return e
		}
		if e = s.payout(tradable, beneficiary, assetOut); e != nil {
			return e
		}
		return s.EventLiquidityRemoved(caller, asset, beneficiary, currencyOut, assetOut, amount)
	})
	if err != nil {
		return lib.Zero, lib.Zero, err
	}
	return
}

// TransferLiquidity() moves points of a market from the caller to the recipient
func (s *StateMachine) TransferLiquidity(caller, asset, to string, amount decimal.Decimal) lib.ErrorI {
	return s.Atomic(func() lib.ErrorI {
		if caller == "" {
			return ErrEmptyCaller()
		}
		if to == "" {
			return lib.ErrInvalidArgument()
		}
		if !amount.IsPositive() {
			return ErrNonPositiveAmount("liquidity amount")
		}
		if err := s.moveLiquidity(asset, caller, to, amount); err != nil {
			return err
		}
		return s.EventLiquidityTransferred(caller, asset, caller, to, "", amount)
	})
}

// ApproveLiquidity() increases the points of a market the spender may move out of the caller's position
func (s *StateMachine) ApproveLiquidity(caller, asset, spender string, amount decimal.Decimal) lib.ErrorI {
	return s.Atomic(func() lib.ErrorI {
		if caller == "" {
			return ErrEmptyCaller()
		}
		if spender == "" {
			return lib.ErrInvalidArgument()
		}
		if !amount.IsPositive() {
			return ErrNonPositiveAmount("liquidity amount")
		}
		allowance, err := s.LiquidityAllowance(asset, caller, spender)
		if err != nil {
			return err
		}
		if err = s.setDecimal(KeyForLPAllowance(asset, caller, spender), allowance.Add(amount)); err != nil {
			return err
		}
		return s.EventLiquidityApproved(caller, asset, spender, amount)
	})
}

// TransferLiquidityFrom() moves points out of mainAccount's position on behalf of the caller, consuming the caller's allowance
// allowances are scoped to one market and cannot be spent against another
func (s *StateMachine) TransferLiquidityFrom(caller, asset, to, mainAccount string, amount decimal.Decimal) lib.ErrorI {
	return s.Atomic(func() lib.ErrorI {
		if caller == "" {
			return ErrEmptyCaller()
		}
		if to == "" || mainAccount == "" {
			return lib.ErrInvalidArgument()
		}
		if !amount.IsPositive() {
			return ErrNonPositiveAmount("liquidity amount")
		}
		allowance, err := s.LiquidityAllowance(asset, mainAccount, caller)
		if err != nil {
			return err
		}
		if allowance.LessThan(amount) {
			return ErrInsufficientAllowance(allowance, amount)
		}
		if err = s.moveLiquidity(asset, mainAccount, to, amount); err != nil {
			return err
		}
		if err = s.setDecimal(KeyForLPAllowance(asset, mainAccount, caller), allowance.Sub(amount)); err != nil {
			return err
		}
		return s.EventLiquidityTransferred(caller, asset, mainAccount, to, caller, amount)
	})
}

// LiquidityBalanceOf() is the number of points of a market held by the account
func (s *StateMachine) LiquidityBalanceOf(asset, account string) (decimal.Decimal, lib.ErrorI) {
	return s.getDecimal(KeyForLPBalance(asset, account))
}

// LiquidityAllowance() is the number of points of a market the spender may still move out of owner's position
func (s *StateMachine) LiquidityAllowance(asset, owner, spender string) (decimal.Decimal, lib.ErrorI) {
	return s.getDecimal(KeyForLPAllowance(asset, owner, spender))
}

// LiquidityPositions() returns every account holding a position in the market, including emptied positions
func (s *StateMachine) LiquidityPositions(asset string) (positions map[string]decimal.Decimal, err lib.ErrorI) {
	positions = make(map[string]decimal.Decimal)
	err = s.IterateAndExecute(LPBalancePrefix(asset), func(key, value []byte) lib.ErrorI {
		account, e := AccountFromLPBalanceKey(key)
		if e != nil {
			return e
		}
		balance, e := lib.ParseDecimal(string(value))
		if e != nil {
			return e
		}
		positions[account] = balance
		return nil
	})
	return
}

// moveLiquidity() debits from and credits to; the credit is read after the debit so a self transfer nets to zero
func (s *StateMachine) moveLiquidity(asset, from, to string, amount decimal.Decimal) lib.ErrorI {
	fromBalance, err := s.LiquidityBalanceOf(asset, from)
	if err != nil {
		return err
	}
	if fromBalance.LessThan(amount) {
		return ErrInsufficientLiquidity(fromBalance, amount)
	}
	if err = s.setLPBalance(asset, from, fromBalance.Sub(amount)); err != nil {
		return err
	}
	toBalance, err := s.LiquidityBalanceOf(asset, to)
	if err != nil {
		return err
	}
	return s.setLPBalance(asset, to, toBalance.Add(amount))
}

// setLPBalance() sets the position of an account; positions are never deleted, only emptied
func (s *StateMachine) setLPBalance(asset, account string, balance decimal.Decimal) lib.ErrorI {
	return s.setDecimal(KeyForLPBalance(asset, account), balance)
}

// getDecimal() reads a decimal stored in its string form; a missing key reads as zero
func (s *StateMachine) getDecimal(key []byte) (decimal.Decimal, lib.ErrorI) {
	bz, err := s.Get(key)
	if err != nil || bz == nil {
		return lib.Zero, err
	}
	return lib.ParseDecimal(string(bz))
}

// setDecimal() stores a decimal in its string form
func (s *StateMachine) setDecimal(key []byte, d decimal.Decimal) lib.ErrorI {
	return s.Set(key, []byte(d.String()))
}
