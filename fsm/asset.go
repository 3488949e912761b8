package fsm

import (
	"sync"

	"github.com/canopy-network/canopy-amm/lib"
	"github.com/canopy-network/canopy-amm/token"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shopspring/decimal"
)

// deployment kinds persisted in the ledger so the registry can be rebuilt on restart
const (
	DeploymentKindToken = "token"
)

// AssetRegistry holds every contract deployed under a name
// a contract is only trusted as a tradable asset once it passes the asset interface check,
// after which the verified handle is cached so later calls skip the check
type AssetRegistry struct {
	mu        sync.RWMutex
	contracts map[string]any                 // name -> deployed contract of unknown shape
	verified  *lru.Cache[string, lib.AssetI] // name -> verified asset handle
}

// NewAssetRegistry() creates an empty registry with a verified cache of the given size
func NewAssetRegistry(cacheSize int) *AssetRegistry {
	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := lru.New[string, lib.AssetI](cacheSize)
	if err != nil {
		panic(err)
	}
	return &AssetRegistry{contracts: make(map[string]any), verified: cache}
}

// Deploy() registers a contract under a name; names are never reused
func (r *AssetRegistry) Deploy(name string, contract any) lib.ErrorI {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.contracts[name]; exists {
		return ErrAssetExists(name)
	}
	r.contracts[name] = contract
	return nil
}

// Resolve() returns the asset handle of a deployed contract that exposes the asset interface
func (r *AssetRegistry) Resolve(name string) (lib.AssetI, lib.ErrorI) {
	if asset, ok := r.verified.Get(name); ok {
		return asset, nil
	}
	r.mu.RLock()
	contract, exists := r.contracts[name]
	r.mu.RUnlock()
	if !exists {
		return nil, ErrInvalidInterface(name)
	}
	asset, ok := contract.(lib.AssetI)
	if !ok {
		return nil, ErrInvalidInterface(name)
	}
	r.verified.Add(name, asset)
	return asset, nil
}

// Deployed() is true if any contract is registered under the name
func (r *AssetRegistry) Deployed(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.contracts[name]
	return exists
}

// DeployAsset() registers a contract and, for contracts the node knows how to rebuild, persists the deployment
func (s *StateMachine) DeployAsset(name string, contract any) lib.ErrorI {
	if name == "" {
		return ErrAssetNotDeployed(name)
	}
	if err := s.registry.Deploy(name, contract); err != nil {
		return err
	}
	if _, isToken := contract.(*token.Token); isToken {
		return s.Set(KeyForDeployment(name), []byte(DeploymentKindToken))
	}
	return nil
}

// resolveAsset() returns the verified asset handle for a name
func (s *StateMachine) resolveAsset(name string) (lib.AssetI, lib.ErrorI) {
	return s.registry.Resolve(name)
}

// BalanceOf() is the balance an account holds of a deployed asset
func (s *StateMachine) BalanceOf(assetName, account string) (balance decimal.Decimal, err lib.ErrorI) {
	asset, err := s.resolveAsset(assetName)
	if err != nil {
		return
	}
	return asset.BalanceOf(s.store, account)
}

// loadDeployments() rebuilds the registry from the deployments persisted in the ledger
func (s *StateMachine) loadDeployments() lib.ErrorI {
	return s.IterateAndExecute(DeploymentPrefix(), func(key, value []byte) lib.ErrorI {
		segments, err := lib.DecodeLengthPrefixed(key)
		if err != nil {
			return err
		}
		if len(segments) != 2 {
			return lib.ErrInvalidArgument()
		}
		name := string(segments[1])
		switch string(value) {
		case DeploymentKindToken:
			return s.registry.Deploy(name, token.New(name))
		default:
			s.log.Warnf("Skipping deployment %s of unknown kind %q", name, value)
		}
		return nil
	})
}

// TransferAsset() moves a deployed asset from the caller to the recipient
func (s *StateMachine) TransferAsset(caller, assetName, to string, amount decimal.Decimal) lib.ErrorI {
	return s.Atomic(func() lib.ErrorI {
		if caller == "" {
			return ErrEmptyCaller()
		}
		asset, err := s.resolveAsset(assetName)
		if err != nil {
			return err
		}
		return asset.Transfer(s.store, caller, to, amount)
	})
}

// ApproveAsset() lets spender move amount of a deployed asset out of the caller's balance
func (s *StateMachine) ApproveAsset(caller, assetName, spender string, amount decimal.Decimal) lib.ErrorI {
	return s.Atomic(func() lib.ErrorI {
		if caller == "" {
			return ErrEmptyCaller()
		}
		asset, err := s.resolveAsset(assetName)
		if err != nil {
			return err
		}
		return asset.Approve(s.store, caller, amount, spender)
	})
}

// escrow() moves amount from the account into the engine's custody using the allowance the account granted the engine
func (s *StateMachine) escrow(asset lib.AssetI, from string, amount decimal.Decimal) lib.ErrorI {
	if amount.IsZero() {
		return nil
	}
	return asset.TransferFrom(s.store, s.EngineAccount(), amount, s.EngineAccount(), from)
}

// payout() moves amount out of the engine's custody to the recipient
func (s *StateMachine) payout(asset lib.AssetI, to string, amount decimal.Decimal) lib.ErrorI {
	if amount.IsZero() {
		return nil
	}
	return asset.Transfer(s.store, s.EngineAccount(), to, amount)
}
