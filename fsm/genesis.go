package fsm

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/canopy-network/canopy-amm/lib"
	"github.com/canopy-network/canopy-amm/token"
	"github.com/shopspring/decimal"
)

// GenesisState is the beginning state of the ledger: the owner, the engine configuration and the deployed assets
type GenesisState struct {
	Owner  string          `json:"owner"`            // the account allowed to change the configuration
	Params *Params         `json:"params,omitempty"` // optional; defaults are used when omitted
	Assets []*GenesisAsset `json:"assets"`           // token contracts to deploy along with their initial balances
}

// GenesisAsset is a token contract deployed at genesis
type GenesisAsset struct {
	Name     string            `json:"name"`
	Balances []*GenesisBalance `json:"balances"`
}

type GenesisBalance struct {
	Account string          `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}

// NewFromGenesisFile() creates a new beginning state from a file
func (s *StateMachine) NewFromGenesisFile() lib.ErrorI {
	genesis, err := s.ReadGenesisFromFile()
	if err != nil {
		return err
	}
	return s.NewFromGenesis(genesis)
}

// ReadGenesisFromFile() reads a GenesisState object from a file
func (s *StateMachine) ReadGenesisFromFile() (genesis *GenesisState, e lib.ErrorI) {
	genesis = new(GenesisState)
	bz, err := os.ReadFile(filepath.Join(s.Config.DataDirPath, lib.GenesisFilePath))
	if err != nil {
		return nil, ErrReadGenesisFile(err)
	}
	if err = json.Unmarshal(bz, genesis); err != nil {
		return nil, ErrUnmarshalGenesis(err)
	}
	return
}

// ValidateGenesisState() validates a GenesisState object
func (s *StateMachine) ValidateGenesisState(genesis *GenesisState) lib.ErrorI {
	if genesis.Owner == "" {
		return ErrInvalidGenesis("owner is empty")
	}
	if genesis.Params != nil {
		if err := genesis.Params.Validate(); err != nil {
			return err
		}
	}
	names := make(map[string]struct{})
	for _, asset := range genesis.Assets {
		if asset == nil || asset.Name == "" {
			return ErrInvalidGenesis("asset name is empty")
		}
		if _, found := names[asset.Name]; found {
			return ErrInvalidGenesis("asset " + asset.Name + " is listed twice")
		}
		names[asset.Name] = struct{}{}
		for _, b := range asset.Balances {
			if b == nil || b.Account == "" || !b.Amount.IsPositive() {
				return ErrInvalidGenesis("balance of " + asset.Name + " is malformed")
			}
		}
	}
	return nil
}

// NewFromGenesis() creates a new beginning state using a GenesisState object
// the currency is always deployed; every listed asset is deployed as a token and minted to its holders
func (s *StateMachine) NewFromGenesis(genesis *GenesisState) lib.ErrorI {
	if err := s.ValidateGenesisState(genesis); err != nil {
		return err
	}
	s.events.Refer(lib.EventReferenceGenesis)
	params := genesis.Params
	if params == nil {
		params = DefaultParams(genesis.Owner)
	}
	params.Owner = genesis.Owner
	if err := s.SetParams(params); err != nil {
		return err
	}
	if err := s.deployGenesisToken(genesis.Owner, s.CurrencyAsset()); err != nil {
		return err
	}
	for _, asset := range genesis.Assets {
		if asset.Name != s.CurrencyAsset() {
			if err := s.deployGenesisToken(genesis.Owner, asset.Name); err != nil {
				return err
			}
		}
		contract, err := s.resolveAsset(asset.Name)
		if err != nil {
			return err
		}
		t, ok := contract.(*token.Token)
		if !ok {
			return ErrInvalidGenesis("asset " + asset.Name + " can't be minted")
		}
		for _, b := range asset.Balances {
			if err = t.Mint(s.store, b.Account, b.Amount); err != nil {
				return err
			}
		}
	}
	return s.Set(genesisCompleteKey, []byte{1})
}

// deployGenesisToken() deploys a token contract and records the deployment event
func (s *StateMachine) deployGenesisToken(owner, name string) lib.ErrorI {
	if err := s.DeployAsset(name, token.New(name)); err != nil {
		return err
	}
	return s.EventAssetDeployed(owner, name, DeploymentKindToken)
}
