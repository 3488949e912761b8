package store

import (
	"bytes"

	"github.com/canopy-network/canopy-amm/lib"
	"github.com/dgraph-io/badger/v4"
)

// RWStoreI interface enforcement
var _ lib.RWStoreI = &TxnWrapper{}

// TxnWrapper is a wrapper over the badgerDB Txn object that conforms to the RWStoreI interface
type TxnWrapper struct {
	logger lib.LoggerI
	db     *badger.Txn
}

// NewTxnWrapper() creates a new TxnWrapper with the provided params
func NewTxnWrapper(db *badger.Txn, logger lib.LoggerI) *TxnWrapper {
	return &TxnWrapper{logger: logger, db: db}
}

// Get() retrieves the value associated with the key from the BadgerDB transaction
func (t *TxnWrapper) Get(k []byte) ([]byte, lib.ErrorI) {
	item, err := t.db.Get(k)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, ErrStoreGet(err)
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, ErrStoreGet(err)
	}
	return val, nil
}

// Set() stores the key-value pair in the BadgerDB transaction
func (t *TxnWrapper) Set(k, v []byte) lib.ErrorI {
	if len(k) == 0 {
		return ErrInvalidKey()
	}
	if err := t.db.Set(k, v); err != nil {
		return ErrStoreSet(err)
	}
	return nil
}

// Delete() removes the key-value pair from the BadgerDB transaction
func (t *TxnWrapper) Delete(k []byte) lib.ErrorI {
	if err := t.db.Delete(k); err != nil {
		return ErrStoreDelete(err)
	}
	return nil
}

// Close() discards the current transaction
func (t *TxnWrapper) Close() { t.db.Discard() }

// Iterator() creates a new iterator for the given prefix in the BadgerDB transaction
func (t *TxnWrapper) Iterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	parent := t.db.NewIterator(badger.IteratorOptions{})
	parent.Seek(prefix)
	return &Iterator{logger: t.logger, parent: parent, prefix: prefix}, nil
}

// RevIterator() creates a new reverse iterator for the given prefix in the BadgerDB transaction
func (t *TxnWrapper) RevIterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	parent := t.db.NewIterator(badger.IteratorOptions{Reverse: true})
	seekLast(parent, prefix)
	return &Iterator{logger: t.logger, parent: parent, prefix: prefix}, nil
}

// seekLast() positions a reverse iterator at the last key for the given prefix
func seekLast(it *badger.Iterator, prefix []byte) {
	end := lib.PrefixEnd(prefix)
	// no upper bound means the last key of the database
	if end == nil {
		it.Rewind()
		return
	}
	// reverse seek lands on the largest key <= end, which may be end itself
	it.Seek(end)
	if it.Valid() && bytes.Equal(it.Item().Key(), end) {
		it.Next()
	}
}

// IteratorI interface enforcement
var _ lib.IteratorI = &Iterator{}

// Iterator implements a wrapper around BadgerDB's iterator but satisfies the IteratorI interface
type Iterator struct {
	logger lib.LoggerI
	parent *badger.Iterator
	prefix []byte
	err    error
}

// Valid() is true while the iterator points at a key under the prefix
func (i *Iterator) Valid() bool {
	return i.parent.Valid() && bytes.HasPrefix(i.parent.Item().Key(), i.prefix)
}

// Next() moves to the next item
func (i *Iterator) Next() { i.parent.Next() }

// Key() returns a copy of the current key
func (i *Iterator) Key() (key []byte) { return i.parent.Item().KeyCopy(nil) }

// Value() returns a copy of the current value
func (i *Iterator) Value() (value []byte) {
	value, i.err = i.parent.Item().ValueCopy(nil)
	if i.err != nil {
		i.logger.Error(i.err.Error())
	}
	return
}

// Close() releases the underlying badger iterator
func (i *Iterator) Close() { i.parent.Close() }
