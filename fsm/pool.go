package fsm

import (
	"github.com/canopy-network/canopy-amm/lib"
	"github.com/shopspring/decimal"
)

// Pool is a market between the fixed currency asset and one other asset
type Pool struct {
	Asset           string          `json:"asset"`           // the non-currency leg of the market
	ReserveCurrency decimal.Decimal `json:"reserveCurrency"` // currency held for the market
	ReserveAsset    decimal.Decimal `json:"reserveAsset"`    // asset held for the market
	Price           decimal.Decimal `json:"price"`           // cached reserve_currency / reserve_asset
	TotalPoints     decimal.Decimal `json:"totalPoints"`     // sum of every liquidity position of the market
	Exists          bool            `json:"exists"`          // never reverts to false once set
}

// setReserves() updates both reserves and recomputes the cached price so it is never stale
func (p *Pool) setReserves(currency, asset decimal.Decimal) lib.ErrorI {
	price, err := lib.Quo(currency, asset)
	if err != nil {
		return err
	}
	p.ReserveCurrency, p.ReserveAsset, p.Price = currency, asset, price
	return nil
}

// CreatePool() opens a market for an asset that exposes the asset interface
// both legs are escrowed from the caller, who receives the initial liquidity points
func (s *StateMachine) CreatePool(caller, asset string, currencyAmount, assetAmount decimal.Decimal) (created bool, err lib.ErrorI) {
	err = s.Atomic(func() lib.ErrorI {
		if caller == "" {
			return ErrEmptyCaller()
		}
		pool, e := s.GetPool(asset)
		if e != nil {
			return e
		}
		if pool.Exists {
			return ErrPoolExists(asset)
		}
		if !currencyAmount.IsPositive() || !assetAmount.IsPositive() {
			return ErrNonPositiveAmount("currency amount and asset amount")
		}
		if asset == s.CurrencyAsset() {
			return ErrInvalidPoolAsset(asset)
		}
		tradable, e := s.resolveAsset(asset)
		if e != nil {
			return e
		}
		currency, e := s.resolveAsset(s.CurrencyAsset())
		if e != nil {
			return e
		}
		// effects
		points := decimal.NewFromInt(InitialLiquidityPoints)
		pool.Exists, pool.TotalPoints = true, points
		if e = pool.setReserves(currencyAmount, assetAmount); e != nil {
			return e
		}
		if e = s.SetPool(pool); e != nil {
			return e
		}
		if e = s.setLPBalance(asset, caller, points); e != nil {
			return e
		}
		// interactions
		if e = s.escrow(currency, caller, currencyAmount); e != nil {
			return e
		}
		if e = s.escrow(tradable, caller, assetAmount); e != nil {
			return e
		}
		return s.EventPoolCreated(caller, asset, currencyAmount, assetAmount, points)
	})
	return err == nil, err
}

// GetPool() returns the market of an asset; a market that was never created is returned with Exists unset
func (s *StateMachine) GetPool(asset string) (*Pool, lib.ErrorI) {
	bz, err := s.Get(KeyForPool(asset))
	if err != nil {
		return nil, err
	}
	pool := &Pool{Asset: asset}
	if bz == nil {
		return pool, nil
	}
	if err = lib.UnmarshalJSON(bz, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// GetExistingPool() returns the market of an asset or ErrPoolNotFound
func (s *StateMachine) GetExistingPool(asset string) (*Pool, lib.ErrorI) {
	pool, err := s.GetPool(asset)
	if err != nil {
		return nil, err
	}
	if !pool.Exists {
		return nil, ErrPoolNotFound(asset)
	}
	return pool, nil
}

// SetPool() converts the Pool into bytes and sets it in state
func (s *StateMachine) SetPool(pool *Pool) lib.ErrorI {
	bz, err := lib.MarshalJSON(pool)
	if err != nil {
		return err
	}
	return s.Set(KeyForPool(pool.Asset), bz)
}

// GetPools() returns every market in key order
func (s *StateMachine) GetPools() (pools []*Pool, err lib.ErrorI) {
	err = s.IterateAndExecute(PoolPrefix(), func(_, value []byte) lib.ErrorI {
		pool := new(Pool)
		if e := lib.UnmarshalJSON(value, pool); e != nil {
			return e
		}
		pools = append(pools, pool)
		return nil
	})
	return
}
