package vtio

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeXTVersionReply(t *testing.T) {
	d := newTestDecoder(t)
	res := d.decodeToken(token{kind: tokDcs, private: '>', final: '|', data: []byte("vtio(1.0.0)")})
	require.Len(t, res.events, 1)
	resp := res.events[0].(TerminalResponseEvent).Response.(TerminalNameVersionReport)
	assert.Equal(t, "vtio(1.0.0)", resp.Text)
}

func TestDecodeXTGetTcapReplyFound(t *testing.T) {
	d := newTestDecoder(t)
	name := hex.EncodeToString([]byte("colors"))
	value := hex.EncodeToString([]byte("256"))
	res := d.decodeToken(token{
		kind:          tokDcs,
		intermediates: []byte("+"),
		final:         'r',
		params:        []byte("1"),
		data:          []byte(name + "=" + value),
	})
	require.Len(t, res.events, 1)
	resp := res.events[0].(TerminalResponseEvent).Response.(TermcapEntryReport)
	assert.True(t, resp.Found)
	assert.Equal(t, "colors", resp.Name)
	assert.Equal(t, "256", resp.Value)
}

func TestDecodeXTGetTcapReplyNotFound(t *testing.T) {
	d := newTestDecoder(t)
	res := d.decodeToken(token{
		kind:          tokDcs,
		intermediates: []byte("+"),
		final:         'r',
		params:        []byte("0"),
	})
	require.Len(t, res.events, 1)
	resp := res.events[0].(TerminalResponseEvent).Response.(TermcapEntryReport)
	assert.False(t, resp.Found)
}

func TestDecodeUnknownDcsPreservesRaw(t *testing.T) {
	d := newTestDecoder(t)
	res := d.decodeToken(token{kind: tokDcs, final: 'q', data: []byte("whatever")})
	unk, ok := res.events[0].(UnknownEvent)
	require.True(t, ok)
	assert.Equal(t, []byte("\x1bPqwhatever"), unk.Raw)
}
