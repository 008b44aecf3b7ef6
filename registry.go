package vtio

import "sync"

// descriptorClass identifies which tokenizer frame kind a Descriptor
// applies to (spec.md §3's Descriptor.class).
type descriptorClass uint8

const (
	classCSI descriptorClass = iota + 1
	classOSC
	classSS3
	classSS2
	classDCS
)

// Descriptor is a registry entry naming one recognized control
// sequence: its introducer class, optional private marker, fixed
// intermediate bytes, final byte, and the constructor that turns decoded
// Params into an event. Grounded on the `switch cmd := csi.Cmd; cmd {
// case ... }` dispatch in the teacher's parseCsi, with each case arm
// factored into its own Descriptor value.
type Descriptor struct {
	Class         descriptorClass
	Private       byte // 0 means "no private marker"
	Intermediates []byte
	Final         byte

	// Construct decodes params (already split by decodeParams) into an
	// event. It returns ok=false on a parameter schema mismatch, which
	// the decoder turns into UnknownEvent per spec.md §7.
	Construct func(params Params, raw []byte) (TerminalInputEvent, bool)
}

// key returns the discriminator byte string this descriptor occupies in
// the trie: class tag, private marker (if any), intermediates, final
// byte. All of these are 7-bit bytes, matching trie's requirement.
func (d Descriptor) key() []byte {
	k := make([]byte, 0, 4+len(d.Intermediates))
	k = append(k, byte(d.Class))
	if d.Private != 0 {
		k = append(k, d.Private)
	}
	k = append(k, d.Intermediates...)
	k = append(k, d.Final)
	return k
}

var registryMu sync.Mutex
var registryDescriptors []Descriptor
var registryTrie *trie
var registryFrozen bool

// registerDescriptors appends ds to the process-wide registry. It must
// be called before the first Parser is constructed; afterward the
// registry is frozen and registerDescriptors returns ErrRegistryFrozen.
// Keys are not checked here: two descriptors sharing the same (class,
// private, intermediates, final) key are reported as
// ErrDuplicateDescriptor by buildRegistryTrie, not deferred until
// lookup time.
func registerDescriptors(ds []Descriptor) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if registryFrozen {
		return ErrRegistryFrozen
	}
	registryDescriptors = append(registryDescriptors, ds...)
	return nil
}

// buildRegistryTrie builds (if not already built) and freezes the
// registry trie, returning it. Called lazily on first Parser
// construction, per spec.md §4.3.
func buildRegistryTrie() (*trie, error) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if registryTrie != nil {
		return registryTrie, nil
	}
	t := newTrie()
	for i, d := range registryDescriptors {
		if err := t.insert(d.key(), int32(i)); err != nil {
			return nil, err
		}
	}
	registryTrie = t
	registryFrozen = true
	return registryTrie, nil
}

// descriptorAt returns the descriptor registered at index i. Valid only
// after buildRegistryTrie has succeeded at least once.
func descriptorAt(i int32) Descriptor {
	return registryDescriptors[i]
}
