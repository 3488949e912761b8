package store

import (
	"testing"

	"github.com/canopy-network/canopy-amm/lib"
	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func TestGetSetDelete(t *testing.T) {
	db, store, cleanup := newTestTxnWrapper(t)
	defer cleanup()
	bulkSetKV(t, store, "", "a", "b")
	got, err := store.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, "a", string(got))
	require.NoError(t, store.Delete([]byte("b")))
	got, err = store.Get([]byte("b"))
	require.NoError(t, err)
	require.Nil(t, got)
	// nothing is visible outside the transaction before commit
	reader := db.NewTransaction(false)
	defer reader.Discard()
	_, er := reader.Get([]byte("a"))
	require.ErrorIs(t, er, badger.ErrKeyNotFound)
}

func TestEmptyKey(t *testing.T) {
	_, store, cleanup := newTestTxnWrapper(t)
	defer cleanup()
	require.ErrorContains(t, store.Set(nil, []byte("a")), "ledger keys must not be empty")
}

func TestReverseIteratorUnboundedPrefix(t *testing.T) {
	_, store, cleanup := newTestTxnWrapper(t)
	defer cleanup()
	prefix := string([]byte{0xFF, 0xFF})
	bulkSetKV(t, store, prefix, "a", "b")
	bulkSetKV(t, store, "", "c")
	it, err := store.RevIterator([]byte(prefix))
	require.NoError(t, err)
	defer it.Close()
	validateIterators(t, prefix, []string{"b", "a"}, it)
}

func newTestTxnWrapper(t *testing.T) (*badger.DB, *TxnWrapper, func()) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	store := NewTxnWrapper(db.NewTransaction(true), lib.NewNullLogger())
	return db, store, func() { store.Close(); db.Close() }
}
