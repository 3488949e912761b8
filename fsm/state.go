package fsm

import (
	"github.com/canopy-network/canopy-amm/lib"
	"github.com/canopy-network/canopy-amm/store"
)

const (
	// InitialLiquidityPoints is the amount of liquidity points minted to the creator of a market
	InitialLiquidityPoints = 100
)

// StateMachine is the exchange engine: it maintains pools, liquidity positions, stakes and the engine
// configuration on top of a key value ledger store and moves assets through the asset interface
type StateMachine struct {
	store    lib.RWStoreI       // the ledger the current call reads from and writes to
	registry *AssetRegistry     // deployed asset contracts by name
	events   *lib.EventsTracker // events recorded by the current call
	Config   lib.Config         // the node configuration
	log      lib.LoggerI        // the logger
}

// New() creates a new instance of a StateMachine
func New(c lib.Config, store lib.StoreI, log lib.LoggerI) (*StateMachine, lib.ErrorI) {
	sm := &StateMachine{
		store:    nil,
		registry: NewAssetRegistry(c.AssetCacheSize),
		events:   new(lib.EventsTracker),
		Config:   c,
		log:      log,
	}
	return sm, sm.Initialize(store)
}

// Initialize() initializes a StateMachine object using the StoreI
// a ledger without a genesis marker is seeded from the genesis file in the data directory
func (s *StateMachine) Initialize(db lib.StoreI) (err lib.ErrorI) {
	s.store = db
	complete, err := s.Get(genesisCompleteKey)
	if err != nil {
		return err
	}
	if complete == nil {
		if err = s.NewFromGenesisFile(); err != nil {
			return err
		}
		return db.Commit()
	}
	return s.loadDeployments()
}

// Atomic() executes the callback against a discardable overlay of the current store
// on success the overlay is written through; on failure the store and the recorded events are left as they were
func (s *StateMachine) Atomic(callback func() lib.ErrorI) (err lib.ErrorI) {
	parent, numEvents := s.store, s.events.Len()
	txn := store.NewTxn(parent)
	s.SetStore(txn)
	defer func() {
		s.SetStore(parent)
		if err != nil {
			txn.Discard()
			s.events.Truncate(numEvents)
		}
	}()
	if err = callback(); err != nil {
		return
	}
	return txn.Write()
}

// Set() upserts a key-value pair under a key
func (s *StateMachine) Set(k, v []byte) lib.ErrorI {
	store := s.Store()
	if err := store.Set(k, v); err != nil {
		return err
	}
	return nil
}

// Get() retrieves a key-value pair under a key
// NOTE: returns (nil, nil) if no value is found for that key
func (s *StateMachine) Get(key []byte) ([]byte, lib.ErrorI) {
	store := s.Store()
	bz, err := store.Get(key)
	if err != nil {
		return nil, err
	}
	return bz, nil
}

// Delete() deletes a key-value pair under a key
func (s *StateMachine) Delete(key []byte) lib.ErrorI {
	store := s.Store()
	if err := store.Delete(key); err != nil {
		return err
	}
	return nil
}

// Iterator() creates and returns an iterator for the state machine's underlying store
// starting at the specified key and iterating lexicographically
func (s *StateMachine) Iterator(key []byte) (lib.IteratorI, lib.ErrorI) {
	store := s.Store()
	it, err := store.Iterator(key)
	if err != nil {
		return nil, err
	}
	return it, nil
}

// RevIterator() creates and returns an iterator for the state machine's underlying store
// starting at the end-prefix of the specified key and iterating reverse lexicographically
func (s *StateMachine) RevIterator(key []byte) (lib.IteratorI, lib.ErrorI) {
	store := s.Store()
	it, err := store.RevIterator(key)
	if err != nil {
		return nil, err
	}
	return it, nil
}

// IterateAndExecute() creates an iterator and executes a callback function for each key-value pair
func (s *StateMachine) IterateAndExecute(prefix []byte, callback func(key, value []byte) lib.ErrorI) lib.ErrorI {
	it, err := s.Iterator(prefix)
	if err != nil {
		return err
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		if err = callback(it.Key(), it.Value()); err != nil {
			return err
		}
	}
	return nil
}

// TxnWrap() is an atomicity and consistency feature that enables easy rollback of changes by discarding the transaction if an error occurs
func (s *StateMachine) TxnWrap() (lib.StoreTxnI, lib.ErrorI) {
	store, ok := s.store.(lib.StoreI)
	if !ok {
		return nil, ErrWrongStoreType()
	}
	txn := store.NewTxn()
	s.SetStore(txn)
	return txn, nil
}

// EngineAccount() is the account that holds every escrowed asset on behalf of the engine
func (s *StateMachine) EngineAccount() string { return s.Config.EngineAccount }

// CurrencyAsset() is the fixed currency leg of every pool
func (s *StateMachine) CurrencyAsset() string { return s.Config.CurrencyAsset }

func (s *StateMachine) Store() lib.RWStoreI         { return s.store }
func (s *StateMachine) SetStore(store lib.RWStoreI) { s.store = store }
func (s *StateMachine) Registry() *AssetRegistry    { return s.registry }
func (s *StateMachine) Events() lib.Events          { return s.events.Events }

// ResetEvents() starts a new call: events recorded from now on carry the reference; the previous events are returned
func (s *StateMachine) ResetEvents(reference string) lib.Events {
	events := s.events.Reset()
	s.events.Refer(reference)
	return events
}
