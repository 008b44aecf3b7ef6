package vtio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrieInsertAndLookup(t *testing.T) {
	tr := newTrie()
	require.NoError(t, tr.insert([]byte("\x1b[A"), 1))
	require.NoError(t, tr.insert([]byte("\x1b[B"), 2))
	require.NoError(t, tr.insert([]byte("\x1bOA"), 3))

	idx, ok := tr.lookup([]byte("\x1b[A"))
	require.True(t, ok)
	assert.EqualValues(t, 1, idx)

	idx, ok = tr.lookup([]byte("\x1bOA"))
	require.True(t, ok)
	assert.EqualValues(t, 3, idx)

	_, ok = tr.lookup([]byte("\x1b[Z"))
	assert.False(t, ok)
}

func TestTrieInsertDuplicateKeySameIndexIsIdempotent(t *testing.T) {
	tr := newTrie()
	require.NoError(t, tr.insert([]byte("\x1b[A"), 1))
	require.NoError(t, tr.insert([]byte("\x1b[A"), 1))
}

func TestTrieInsertDuplicateKeyDifferentIndexErrors(t *testing.T) {
	tr := newTrie()
	require.NoError(t, tr.insert([]byte("\x1b[A"), 1))
	err := tr.insert([]byte("\x1b[A"), 2)
	assert.ErrorIs(t, err, ErrDuplicateDescriptor)
}

func TestTrieCursorWalkByteAtATime(t *testing.T) {
	tr := newTrie()
	require.NoError(t, tr.insert([]byte("\x1b[200~"), 7))

	cur := tr.root()
	var ok bool
	for _, b := range []byte("\x1b[200~") {
		cur, ok = cur.advance(b)
		require.True(t, ok)
	}
	idx, ok := cur.terminal()
	require.True(t, ok)
	assert.EqualValues(t, 7, idx)
}

func TestTrieCursorNoEdgeStopsWalk(t *testing.T) {
	tr := newTrie()
	require.NoError(t, tr.insert([]byte("\x1b[A"), 1))

	cur := tr.root()
	cur, ok := cur.advance(0x1b)
	require.True(t, ok)
	cur, ok = cur.advance('[')
	require.True(t, ok)
	_, ok = cur.advance('Z')
	assert.False(t, ok)
}

func TestTrieRejectsHighBit(t *testing.T) {
	tr := newTrie()
	require.NoError(t, tr.insert([]byte("\x1b[A"), 1))

	cur := tr.root()
	_, ok := cur.advance(0x80)
	assert.False(t, ok)
}

func TestTriePrefixIsNotTerminalUnlessRegistered(t *testing.T) {
	tr := newTrie()
	require.NoError(t, tr.insert([]byte("\x1b[200~"), 7))

	_, ok := tr.lookup([]byte("\x1b[200"))
	assert.False(t, ok)
}
