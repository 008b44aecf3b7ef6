package vtio

import "errors"

var (
	// ErrDuplicateDescriptor is returned by buildRegistryTrie (and so by
	// NewParser) when two registered descriptors share the same (class,
	// private, intermediates, final) key. It is a configuration-time
	// error: it surfaces when the trie is first built.
	ErrDuplicateDescriptor = errors.New("vtio: duplicate descriptor key")

	// ErrRegistryFrozen is returned by registerDescriptors when called
	// after the trie has already been built. The registry is immutable
	// once any Parser has been constructed.
	ErrRegistryFrozen = errors.New("vtio: descriptor registry already frozen")

	// ErrBufferOverflow is returned by encode operations when the
	// destination buffer is too small to hold the encoded sequence.
	ErrBufferOverflow = errors.New("vtio: buffer overflow")
)
