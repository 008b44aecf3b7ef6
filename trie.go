package vtio

// trie is a dense trie over 7-bit bytes (0x00..0x7F). Each node holds a
// fixed 128-slot child table plus an optional terminal payload: the index
// of a descriptor in the registry this trie was built from.
//
// Descriptor keys never contain bytes with the top bit set, so lookup can
// reject those outright without consulting the table.
type trie struct {
	nodes []trieNode
}

type trieNode struct {
	children [128]int32
	terminal int32
}

const trieNoChild = int32(-1)

func newEmptyTrieNode() trieNode {
	n := trieNode{terminal: trieNoChild}
	for i := range n.children {
		n.children[i] = trieNoChild
	}
	return n
}

func newTrie() *trie {
	t := &trie{}
	t.nodes = append(t.nodes, newEmptyTrieNode())
	return t
}

// insert adds key, associating it with descriptor idx. It reports
// ErrDuplicateDescriptor if key is already associated with a different
// descriptor index.
func (t *trie) insert(key []byte, idx int32) error {
	cur := int32(0)
	for _, b := range key {
		if b >= 0x80 {
			panic("vtio: trie key byte out of 7-bit range")
		}
		next := t.nodes[cur].children[b]
		if next == trieNoChild {
			next = int32(len(t.nodes))
			t.nodes = append(t.nodes, newEmptyTrieNode())
			t.nodes[cur].children[b] = next
		}
		cur = next
	}
	if existing := t.nodes[cur].terminal; existing != trieNoChild && existing != idx {
		return ErrDuplicateDescriptor
	}
	t.nodes[cur].terminal = idx
	return nil
}

// trieCursor is a cheap, copyable walk position into a trie.
type trieCursor struct {
	t    *trie
	node int32
}

// root returns a cursor positioned at the trie's root.
func (t *trie) root() trieCursor {
	return trieCursor{t: t, node: 0}
}

// advance moves the cursor by one byte. It reports ok=false if b has its
// top bit set or there is no edge for b from the current node; the
// cursor itself is left unchanged in that case.
func (c trieCursor) advance(b byte) (trieCursor, bool) {
	if b >= 0x80 {
		return c, false
	}
	next := c.t.nodes[c.node].children[b]
	if next == trieNoChild {
		return c, false
	}
	return trieCursor{t: c.t, node: next}, true
}

// terminal returns the descriptor index stored at the cursor's node, if
// any.
func (c trieCursor) terminal() (int32, bool) {
	idx := c.t.nodes[c.node].terminal
	if idx == trieNoChild {
		return 0, false
	}
	return idx, true
}

// lookup walks key from the root and returns the descriptor index at an
// exact match, if one exists.
func (t *trie) lookup(key []byte) (int32, bool) {
	cur := t.root()
	for _, b := range key {
		next, ok := cur.advance(b)
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur.terminal()
}
