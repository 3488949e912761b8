package fsm

import (
	"github.com/canopy-network/canopy-amm/lib"
	"github.com/shopspring/decimal"
)

// StakePosition is an account's stake with the engine and the fee discount it earns
type StakePosition struct {
	Account    string          `json:"account"`    // the staker
	Asset      string          `json:"asset"`      // the asset actually staked; survives a change of the reference asset
	Amount     decimal.Decimal `json:"amount"`     // amount held by the engine
	Multiplier decimal.Decimal `json:"multiplier"` // applied to the base fee; 1 is no discount
}

// Discount() is the fraction of the fee the position waives
func (x *StakePosition) Discount() decimal.Decimal { return lib.One.Sub(x.Multiplier) }

// Stake() sets the caller's stake to target, escrowing the increase or paying back the decrease,
// and recomputes the discount from the new amount
// a decrease is paid back in the asset that was actually staked even if the reference asset has changed since;
// an increase is only possible in the current reference asset; asset, when named, must match the staked identity
func (s *StateMachine) Stake(caller string, target decimal.Decimal, asset string) (discount decimal.Decimal, err lib.ErrorI) {
	err = s.Atomic(func() lib.ErrorI {
		if caller == "" {
			return ErrEmptyCaller()
		}
		if target.IsNegative() {
			return ErrNegativeStake()
		}
		params, e := s.GetParams()
		if e != nil {
			return e
		}
		position, e := s.GetStake(caller)
		if e != nil {
			return e
		}
		identity := params.ReferenceAsset
		if position.Amount.IsPositive() {
			identity = position.Asset
		}
		if asset != "" && asset != identity {
			return ErrStakeAssetMismatch(identity, asset)
		}
		staked, e := s.resolveAsset(identity)
		if e != nil {
			return e
		}
		if discount, e = lib.DiscountAmount(target, params.LogAccuracy, params.DiscountSlope); e != nil {
			return e
		}
		diff := target.Sub(position.Amount)
		if diff.IsPositive() {
			if identity != params.ReferenceAsset {
				return ErrStakeAssetMismatch(identity, params.ReferenceAsset)
			}
			balance, er := staked.BalanceOf(s.store, caller)
			if er != nil {
				return er
			}
			if balance.LessThan(diff) {
				return ErrInsufficientStakeFunds(balance, diff)
			}
		}
		// effects
		if e = s.addStakeTotal(identity, diff); e != nil {
			return e
		}
		if target.IsZero() {
			e = s.Delete(KeyForStake(caller))
		} else {
			e = s.SetStake(&StakePosition{Account: caller, Asset: identity, Amount: target, Multiplier: lib.One.Sub(discount)})
		}
		if e != nil {
			return e
		}
		// interactions
		switch {
		case diff.IsPositive():
			e = s.escrow(staked, caller, diff)
		case diff.IsNegative():
			e = s.payout(staked, caller, diff.Neg())
		}
		if e != nil {
			return e
		}
		return s.EventStake(caller, identity, target, discount)
	})
	if err != nil {
		return lib.Zero, err
	}
	return
}

// GetStake() returns the account's stake; an account that never staked has an empty position with no discount
func (s *StateMachine) GetStake(account string) (*StakePosition, lib.ErrorI) {
	bz, err := s.Get(KeyForStake(account))
	if err != nil {
		return nil, err
	}
	position := &StakePosition{Account: account, Amount: lib.Zero, Multiplier: lib.One}
	if bz == nil {
		return position, nil
	}
	if err = lib.UnmarshalJSON(bz, position); err != nil {
		return nil, err
	}
	return position, nil
}

// SetStake() converts the StakePosition into bytes and sets it in state
func (s *StateMachine) SetStake(position *StakePosition) lib.ErrorI {
	bz, err := lib.MarshalJSON(position)
	if err != nil {
		return err
	}
	return s.Set(KeyForStake(position.Account), bz)
}

// GetStakeTotal() is the amount of an asset the engine holds for stakers
func (s *StateMachine) GetStakeTotal(asset string) (decimal.Decimal, lib.ErrorI) {
	return s.getDecimal(KeyForStakeTotal(asset))
}

// addStakeTotal() adjusts the amount of an asset the engine holds for stakers
func (s *StateMachine) addStakeTotal(asset string, delta decimal.Decimal) lib.ErrorI {
	if delta.IsZero() {
		return nil
	}
	total, err := s.GetStakeTotal(asset)
	if err != nil {
		return err
	}
	return s.setDecimal(KeyForStakeTotal(asset), total.Add(delta))
}
