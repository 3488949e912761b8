package fsm

import (
	"github.com/canopy-network/canopy-amm/lib"
	"github.com/shopspring/decimal"
)

// SyncReserves() overwrites a market's asset reserve with the asset balance the engine actually holds for it
// (its balance less what stakers have escrowed) and recomputes the price
// it is gated by the sync_enabled key and the owner, and never touches another market or the currency reserve
func (s *StateMachine) SyncReserves(caller, asset string) (reserveAsset decimal.Decimal, err lib.ErrorI) {
	err = s.Atomic(func() lib.ErrorI {
		params, e := s.GetParams()
		if e != nil {
			return e
		}
		if !params.SyncEnabled {
			return ErrSyncDisabled()
		}
		if caller == "" || caller != params.Owner {
			return ErrNotOwner()
		}
		pool, e := s.GetExistingPool(asset)
		if e != nil {
			return e
		}
		tradable, e := s.resolveAsset(asset)
		if e != nil {
			return e
		}
		held, e := tradable.BalanceOf(s.store, s.EngineAccount())
		if e != nil {
			return e
		}
		staked, e := s.GetStakeTotal(asset)
		if e != nil {
			return e
		}
		if reserveAsset = held.Sub(staked); !reserveAsset.IsPositive() {
			return ErrDegenerateReserves(asset)
		}
		previous := pool.ReserveAsset
		if e = pool.setReserves(pool.ReserveCurrency, reserveAsset); e != nil {
			return e
		}
		if e = s.SetPool(pool); e != nil {
			return e
		}
		return s.EventSync(caller, asset, previous, reserveAsset, pool.Price)
	})
	if err != nil {
		return lib.Zero, err
	}
	return
}
