package vtio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRegistryTrieIsIdempotent(t *testing.T) {
	t1, err := buildRegistryTrie()
	require.NoError(t, err)
	t2, err := buildRegistryTrie()
	require.NoError(t, err)
	assert.Same(t, t1, t2)
}

func TestRegisterDescriptorsAfterFreezeErrors(t *testing.T) {
	_, err := buildRegistryTrie()
	require.NoError(t, err)

	err = registerDescriptors([]Descriptor{{Class: classCSI, Final: 'z'}})
	assert.ErrorIs(t, err, ErrRegistryFrozen)
}

func TestKnownDescriptorsResolveThroughTheSharedTrie(t *testing.T) {
	tr, err := buildRegistryTrie()
	require.NoError(t, err)

	idx, ok := tr.lookup([]byte{byte(classCSI), 'A'})
	require.True(t, ok)
	desc := descriptorAt(idx)
	assert.Equal(t, classCSI, desc.Class)
	assert.Equal(t, byte('A'), desc.Final)
}
