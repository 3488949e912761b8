package store

import (
	"path/filepath"

	"github.com/canopy-network/canopy-amm/lib"
	"github.com/dgraph-io/badger/v4"
)

/*
	Store is the ledger persistence of the exchange engine.

	It holds one open badger read-write transaction (the writer). Every engine call writes into an in-memory
	Txn overlay created by NewTxn(); when the call succeeds the overlay is written into the writer and Commit()
	persists it atomically, starting a fresh writer. A failed call discards its overlay and the writer never sees it.
*/

// StoreI interface enforcement
var _ lib.StoreI = &Store{}

// Store is a badgerDB backed key value store with a single pending writer
type Store struct {
	db     *badger.DB
	writer *TxnWrapper
	log    lib.LoggerI
}

// New() creates a new instance of a Store with the provided config
func New(config lib.Config, log lib.LoggerI) (*Store, lib.ErrorI) {
	opts := badger.DefaultOptions(filepath.Join(config.DataDirPath, config.DBName))
	if config.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	if config.MemTableSize > 0 {
		opts = opts.WithMemTableSize(config.MemTableSize)
	}
	return NewStoreWithOptions(opts.WithLoggingLevel(badger.ERROR), log)
}

// NewStoreInMemory() creates a new instance of a memory only Store, used for testing
func NewStoreInMemory(log lib.LoggerI) (*Store, lib.ErrorI) {
	return NewStoreWithOptions(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR), log)
}

// NewStoreWithOptions() opens the badger database and starts the first writer
func NewStoreWithOptions(opts badger.Options, log lib.LoggerI) (*Store, lib.ErrorI) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, ErrOpenDB(err)
	}
	return &Store{db: db, writer: NewTxnWrapper(db.NewTransaction(true), log), log: log}, nil
}

// Get() returns the value bytes for a key; nil if not found
func (s *Store) Get(key []byte) ([]byte, lib.ErrorI) { return s.writer.Get(key) }

// Set() sets the value bytes for a key in the pending writer
func (s *Store) Set(k, v []byte) lib.ErrorI { return s.writer.Set(k, v) }

// Delete() removes the key in the pending writer
func (s *Store) Delete(k []byte) lib.ErrorI { return s.writer.Delete(k) }

// Iterator() returns an iterator over the keys with the prefix, pending writes included
func (s *Store) Iterator(prefix []byte) (lib.IteratorI, lib.ErrorI) { return s.writer.Iterator(prefix) }

// RevIterator() returns a reverse iterator over the keys with the prefix, pending writes included
func (s *Store) RevIterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	return s.writer.RevIterator(prefix)
}

// NewTxn() wraps the store in a discardable in-memory overlay
func (s *Store) NewTxn() lib.StoreTxnI { return NewTxn(s) }

// Commit() persists the pending writer and opens a new one
func (s *Store) Commit() lib.ErrorI {
	if err := s.writer.db.Commit(); err != nil {
		s.resetWriter()
		return ErrCommitDB(err)
	}
	s.resetWriter()
	return nil
}

// Discard() drops every pending write since the last commit
func (s *Store) Discard() {
	s.writer.Close()
	s.resetWriter()
}

// Close() discards the pending writer and gracefully stops the database
func (s *Store) Close() lib.ErrorI {
	s.writer.Close()
	if err := s.db.Close(); err != nil {
		return ErrCloseDB(err)
	}
	return nil
}

// IsEmpty() is true when nothing was ever written to the store
func (s *Store) IsEmpty() (bool, lib.ErrorI) {
	it, err := s.Iterator(nil)
	if err != nil {
		return false, err
	}
	defer it.Close()
	return !it.Valid(), nil
}

// resetWriter() opens a fresh read-write transaction
func (s *Store) resetWriter() {
	s.writer = NewTxnWrapper(s.db.NewTransaction(true), s.log)
}
