package store

import (
	"testing"

	"github.com/canopy-network/canopy-amm/lib"
	"github.com/stretchr/testify/require"
)

func TestTxnWriteSetGet(t *testing.T) {
	parent, cleanup := testStore(t)
	defer cleanup()
	test := NewTxn(parent)
	require.NoError(t, test.Set([]byte("1/a"), []byte("a")))
	// test get from ops before write()
	val, err := test.Get([]byte("1/a"))
	require.NoError(t, err)
	require.Equal(t, []byte("a"), val)
	// test get from parent before write()
	val, err = parent.Get([]byte("1/a"))
	require.NoError(t, err)
	require.Nil(t, val)
	require.NoError(t, test.Write())
	// test get from parent after write()
	val, err = parent.Get([]byte("1/a"))
	require.NoError(t, err)
	require.Equal(t, []byte("a"), val)
	// test get after write() falls through to the parent
	val, err = test.Get([]byte("1/a"))
	require.NoError(t, err)
	require.Equal(t, []byte("a"), val)
}

func TestTxnWriteDelete(t *testing.T) {
	parent, cleanup := testStore(t)
	defer cleanup()
	test := NewTxn(parent)
	require.NoError(t, test.Set([]byte("1/a"), []byte("a")))
	require.NoError(t, test.Write())
	require.NoError(t, test.Delete([]byte("1/a")))
	val, err := test.Get([]byte("1/a"))
	require.NoError(t, err)
	require.Nil(t, val)
	val, err = parent.Get([]byte("1/a"))
	require.NoError(t, err)
	require.Equal(t, []byte("a"), val)
	require.NoError(t, test.Write())
	val, err = parent.Get([]byte("1/a"))
	require.NoError(t, err)
	require.Nil(t, val)
}

func TestTxnDiscard(t *testing.T) {
	parent, cleanup := testStore(t)
	defer cleanup()
	test := NewTxn(parent)
	require.NoError(t, test.Set([]byte("1/a"), []byte("a")))
	test.Discard()
	require.NoError(t, test.Write())
	val, err := parent.Get([]byte("1/a"))
	require.NoError(t, err)
	require.Nil(t, val)
}

func TestTxnIterateMerged(t *testing.T) {
	tests := []struct {
		name     string
		detail   string
		parent   []string
		set      []string
		delete   []string
		expected []string
	}{
		{
			name:     "parent only",
			detail:   "keys only in the parent are iterated",
			parent:   []string{"a", "c"},
			expected: []string{"a", "c"},
		},
		{
			name:     "interleaved",
			detail:   "in-memory and parent keys are interleaved in order",
			parent:   []string{"a", "c", "e"},
			set:      []string{"b", "d", "f"},
			expected: []string{"a", "b", "c", "d", "e", "f"},
		},
		{
			name:     "shadowed deletes",
			detail:   "in-memory deletes hide parent keys",
			parent:   []string{"a", "b", "c"},
			delete:   []string{"a", "c"},
			set:      []string{"d"},
			expected: []string{"b", "d"},
		},
		{
			name:     "delete then set",
			detail:   "a key deleted and set again is visible",
			parent:   []string{"a"},
			delete:   []string{"a"},
			set:      []string{"a"},
			expected: []string{"a"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			prefix := "p/"
			parent, cleanup := testStore(t)
			defer cleanup()
			bulkSetKV(t, parent, prefix, test.parent...)
			// keys outside the prefix on both sides
			bulkSetKV(t, parent, "q/", "z")
			txn := NewTxn(parent)
			bulkSetKV(t, txn, "o/", "z")
			for _, k := range test.delete {
				require.NoError(t, txn.Delete([]byte(prefix+k)))
			}
			bulkSetKV(t, txn, prefix, test.set...)
			it, err := txn.Iterator([]byte(prefix))
			require.NoError(t, err)
			validateIterators(t, prefix, test.expected, it)
			it.Close()
			// the reverse iterator yields the same keys backwards
			var reversed []string
			for i := len(test.expected) - 1; i >= 0; i-- {
				reversed = append(reversed, test.expected[i])
			}
			rIt, err := txn.RevIterator([]byte(prefix))
			require.NoError(t, err)
			validateIterators(t, prefix, reversed, rIt)
			rIt.Close()
		})
	}
}

func TestNestedTxn(t *testing.T) {
	parent, cleanup := testStore(t)
	defer cleanup()
	outer := NewTxn(parent)
	inner := NewTxn(outer)
	bulkSetKV(t, inner, "n/", "a")
	// nothing reaches the outer before write
	val, err := outer.Get([]byte("n/a"))
	require.NoError(t, err)
	require.Nil(t, val)
	require.NoError(t, inner.Write())
	it, err := outer.Iterator([]byte("n/"))
	require.NoError(t, err)
	validateIterators(t, "n/", []string{"a"}, it)
	var _ lib.StoreTxnI = inner
}
