package store

import (
	"bytes"
	"sort"
	"strings"

	"github.com/canopy-network/canopy-amm/lib"
)

// enforce the StoreTxnI interface
var _ lib.StoreTxnI = &Txn{}

/*
	Txn acts like a database transaction for a single engine call.
	It saves set/del operations in memory and allows the caller to Write() to the parent or Discard().
	When read from, it merges with the parent as if Write() had already been called.

	CONTRACT:
	- not thread safe; the controller admits one call at a time
	- deleted values are shadowed until Write()
	- iterators are snapshots taken at creation time; writes made while iterating are not observed
*/
type Txn struct {
	parent lib.RWStoreI  // store to Write() to
	ops    map[string]op // [string(key)] -> set/del operations saved in memory
	sorted []string      // ops keys sorted lexicographically; needed for iteration
}

// op or Operation has the value portion of the operation and if it's a *delete* or a *set*
type op struct {
	value  []byte // value of key value pair
	delete bool   // is operation delete
}

// NewTxn() creates a new instance of a Txn with the specified parent store
func NewTxn(parent lib.RWStoreI) *Txn {
	return &Txn{parent: parent, ops: make(map[string]op)}
}

// Get() retrieves the value for a given key from either the in-memory operations or the parent store
func (t *Txn) Get(key []byte) ([]byte, lib.ErrorI) {
	if v, found := t.ops[string(key)]; found {
		if v.delete {
			return nil, nil
		}
		return v.value, nil
	}
	return t.parent.Get(key)
}

// Set() adds or updates the value for a key in the in-memory operations
func (t *Txn) Set(key, value []byte) lib.ErrorI {
	if len(key) == 0 {
		return ErrInvalidKey()
	}
	t.update(string(key), value, false)
	return nil
}

// Delete() marks a key for deletion in the in-memory operations
func (t *Txn) Delete(key []byte) lib.ErrorI { t.update(string(key), nil, true); return nil }

// update() modifies or adds an operation for a key in the in-memory operations and maintains order
func (t *Txn) update(key string, v []byte, delete bool) {
	if _, found := t.ops[key]; !found {
		i := sort.SearchStrings(t.sorted, key)
		t.sorted = append(t.sorted, "")
		copy(t.sorted[i+1:], t.sorted[i:])
		t.sorted[i] = key
	}
	t.ops[key] = op{value: bytes.Clone(v), delete: delete}
}

// Iterator() returns a merged iterator of the in-memory operations and the parent store with the given prefix
func (t *Txn) Iterator(prefix []byte) (lib.IteratorI, lib.ErrorI) { return t.merge(prefix, false) }

// RevIterator() returns a merged reverse iterator of the in-memory operations and the parent store with the given prefix
func (t *Txn) RevIterator(prefix []byte) (lib.IteratorI, lib.ErrorI) { return t.merge(prefix, true) }

// Discard() clears all in-memory operations
func (t *Txn) Discard() { t.ops, t.sorted = make(map[string]op), nil }

// Write() flushes the in-memory operations to the parent store in key order and clears in-memory changes
func (t *Txn) Write() (err lib.ErrorI) {
	for _, k := range t.sorted {
		v := t.ops[k]
		if v.delete {
			err = t.parent.Delete([]byte(k))
		} else {
			err = t.parent.Set([]byte(k), v.value)
		}
		if err != nil {
			return
		}
	}
	t.Discard()
	return
}

// merge() snapshots the parent entries under the prefix and overlays the in-memory operations on them
func (t *Txn) merge(prefix []byte, reverse bool) (lib.IteratorI, lib.ErrorI) {
	parent, err := t.parent.Iterator(prefix)
	if err != nil {
		return nil, err
	}
	defer parent.Close()
	var entries []entry
	// both sides are sorted ascending; walk them together
	p := string(prefix)
	i := sort.SearchStrings(t.sorted, p)
	for ; parent.Valid(); parent.Next() {
		pk := string(parent.Key())
		// emit the in-memory keys that sort before the parent key
		for ; i < len(t.sorted) && t.sorted[i] < pk && strings.HasPrefix(t.sorted[i], p); i++ {
			entries = t.appendOp(entries, t.sorted[i])
		}
		// the in-memory operation shadows the parent entry
		if i < len(t.sorted) && t.sorted[i] == pk {
			entries = t.appendOp(entries, pk)
			i++
			continue
		}
		entries = append(entries, entry{key: []byte(pk), value: parent.Value()})
	}
	for ; i < len(t.sorted) && strings.HasPrefix(t.sorted[i], p); i++ {
		entries = t.appendOp(entries, t.sorted[i])
	}
	if reverse {
		for l, r := 0, len(entries)-1; l < r; l, r = l+1, r-1 {
			entries[l], entries[r] = entries[r], entries[l]
		}
	}
	return &TxnIterator{entries: entries}, nil
}

// appendOp() adds the in-memory operation for key unless it is a delete
func (t *Txn) appendOp(entries []entry, key string) []entry {
	if o := t.ops[key]; !o.delete {
		entries = append(entries, entry{key: []byte(key), value: o.value})
	}
	return entries
}

// enforce the Iterator interface
var _ lib.IteratorI = &TxnIterator{}

// entry is a single key value pair of a snapshot
type entry struct {
	key, value []byte
}

// TxnIterator walks a merged snapshot of the parent and the in-memory operations
type TxnIterator struct {
	entries []entry
	index   int
}

func (t *TxnIterator) Valid() bool   { return t.index < len(t.entries) }
func (t *TxnIterator) Next()         { t.index++ }
func (t *TxnIterator) Key() []byte   { return t.entries[t.index].key }
func (t *TxnIterator) Value() []byte { return t.entries[t.index].value }
func (t *TxnIterator) Close()        {}
