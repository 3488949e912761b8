package rpc

import (
	"net/http"
	"net/http/pprof"

	"github.com/canopy-network/canopy-amm/lib"
	"github.com/julienschmidt/httprouter"
)

// Version writes the exchange software's version information
func (s *Server) Version(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	write(w, SoftwareVersion, http.StatusOK)
}

// Transaction executes a call envelope and responds with its result and events
func (s *Server) Transaction(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Create a new instance of lib.Transaction to hold the incoming call
	tx := new(lib.Transaction)
	// Unmarshal the HTTP request body into the transaction instance.
	if ok := unmarshal(w, r, tx); !ok {
		return
	}
	// Execute the call against the ledger
	result, err := s.controller.HandleTransaction(tx)
	if err != nil {
		write(w, err, http.StatusBadRequest)
		return
	}
	write(w, result, http.StatusOK)
}

// Params responds with the engine configuration
func (s *Server) Params(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.query(w, func() (any, lib.ErrorI) { return s.controller.GetParams() })
}

// Pool responds with the market of an asset
func (s *Server) Pool(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(assetRequest)
	if ok := unmarshal(w, r, req); !ok {
		return
	}
	s.query(w, func() (any, lib.ErrorI) { return s.controller.GetPool(req.Asset) })
}

// Pools responds with every market
func (s *Server) Pools(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.query(w, func() (any, lib.ErrorI) { return s.controller.GetPools() })
}

// Liquidity responds with the points an account holds in a market
func (s *Server) Liquidity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(assetAndAccountRequest)
	if ok := unmarshal(w, r, req); !ok {
		return
	}
	s.query(w, func() (any, lib.ErrorI) { return s.controller.LiquidityBalanceOf(req.Asset, req.Account) })
}

// LiquidityAllowance responds with the points a spender may move out of an owner's position
func (s *Server) LiquidityAllowance(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(allowanceRequest)
	if ok := unmarshal(w, r, req); !ok {
		return
	}
	s.query(w, func() (any, lib.ErrorI) {
		return s.controller.LiquidityAllowance(req.Asset, req.Owner, req.Spender)
	})
}

// LiquidityPositions responds with every position of a market
func (s *Server) LiquidityPositions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(assetRequest)
	if ok := unmarshal(w, r, req); !ok {
		return
	}
	s.query(w, func() (any, lib.ErrorI) { return s.controller.LiquidityPositions(req.Asset) })
}

// Stake responds with the stake of an account and its discount
func (s *Server) Stake(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(accountRequest)
	if ok := unmarshal(w, r, req); !ok {
		return
	}
	s.query(w, func() (any, lib.ErrorI) {
		stake, err := s.controller.GetStake(req.Account)
		if err != nil {
			return nil, err
		}
		return &StakeResponse{StakePosition: stake, Discount: stake.Discount()}, nil
	})
}

// Balance responds with the balance an account holds of a deployed asset
func (s *Server) Balance(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(assetAndAccountRequest)
	if ok := unmarshal(w, r, req); !ok {
		return
	}
	s.query(w, func() (any, lib.ErrorI) { return s.controller.BalanceOf(req.Asset, req.Account) })
}

// Events responds with the newest events of the ledger
func (s *Server) Events(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(eventsRequest)
	if ok := unmarshal(w, r, req); !ok {
		return
	}
	s.query(w, func() (any, lib.ErrorI) { return s.controller.GetEvents(req.Limit) })
}

// query writes the result of a read against the ledger
func (s *Server) query(w http.ResponseWriter, callback func() (any, lib.ErrorI)) {
	result, err := callback()
	if err != nil {
		write(w, err, http.StatusBadRequest)
		return
	}
	write(w, result, http.StatusOK)
}

// debugHandler serves the runtime profiles
func debugHandler(routeName string) httprouter.Handle {
	var f http.HandlerFunc
	switch routeName {
	case DebugHeapRouteName, DebugGoroutineRouteName:
		f = func(w http.ResponseWriter, r *http.Request) {
			pprof.Handler(routeName).ServeHTTP(w, r)
		}
	case DebugCPURouteName:
		f = pprof.Profile
	default:
		f = func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}
	}
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		f(w, r)
	}
}
