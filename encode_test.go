package vtio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeOne(t *testing.T, raw []byte) TerminalInputEvent {
	events, err := DecodeBuffer(raw)
	require.NoError(t, err)
	require.Len(t, events, 1)
	return events[0]
}

func TestRoundTripKeyEvent(t *testing.T) {
	ev := KeyEvent{Code: CharKey('a'), Modifiers: ModCtrl | ModShift, Kind: KeyRelease}
	buf := make([]byte, 32)
	n, err := ev.Encode(buf)
	require.NoError(t, err)

	got := decodeOne(t, buf[:n]).(KeyEvent)
	assert.Equal(t, ev.Code, got.Code)
	assert.Equal(t, ev.Modifiers, got.Modifiers)
	assert.Equal(t, ev.Kind, got.Kind)
}

func TestRoundTripKeyEventPressDefaultsOmitEventType(t *testing.T) {
	ev := KeyEvent{Code: CharKey('x'), Kind: KeyPress}
	buf := make([]byte, 32)
	n, err := ev.Encode(buf)
	require.NoError(t, err)

	got := decodeOne(t, buf[:n]).(KeyEvent)
	assert.Equal(t, ev.Code, got.Code)
	assert.Equal(t, KeyPress, got.Kind)
}

func TestRoundTripMouseSGR(t *testing.T) {
	ev := MouseEvent{Kind: MouseDown, Button: MouseButton{Kind: ButtonLeft}, Column: 10, Row: 5, Modifiers: ModShift}
	buf := make([]byte, 32)
	n, err := ev.Encode(buf)
	require.NoError(t, err)

	got := decodeOne(t, buf[:n]).(MouseEvent)
	assert.Equal(t, ev.Kind, got.Kind)
	assert.Equal(t, ev.Button, got.Button)
	assert.Equal(t, ev.Column, got.Column)
	assert.Equal(t, ev.Row, got.Row)
	assert.Equal(t, ev.Modifiers, got.Modifiers)
}

func TestRoundTripFocus(t *testing.T) {
	for _, gained := range []bool{true, false} {
		ev := FocusEvent{Gained: gained}
		buf := make([]byte, 8)
		n, err := ev.Encode(buf)
		require.NoError(t, err)
		got := decodeOne(t, buf[:n]).(FocusEvent)
		assert.Equal(t, ev.Gained, got.Gained)
	}
}

func TestRoundTripPaste(t *testing.T) {
	ev := PasteEvent{Text: []byte("hello world")}
	buf := make([]byte, 64)
	n, err := ev.Encode(buf)
	require.NoError(t, err)
	got := decodeOne(t, buf[:n]).(PasteEvent)
	assert.Equal(t, ev.Text, got.Text)
}

func TestRoundTripKittyKeyboardFlags(t *testing.T) {
	rep := KittyKeyboardFlagsReport{Flags: KittyDisambiguateEscapeCodes | KittyReportAlternateKeys}
	buf := make([]byte, 16)
	n, err := rep.Encode(buf)
	require.NoError(t, err)
	got := decodeOne(t, buf[:n]).(TerminalResponseEvent).Response.(KittyKeyboardFlagsReport)
	assert.Equal(t, rep.Flags, got.Flags)
}

func TestKittyModifierBitLayoutRoundTrip(t *testing.T) {
	for bits := 0; bits < 256; bits++ {
		mods := Modifiers(bits)
		wire := encodeModifierParam(mods)
		assert.Equal(t, mods, decodeModifierParam(wire), "bits=%d", bits)
	}
}

func TestEncodeBufferOverflow(t *testing.T) {
	ev := KeyEvent{Code: CharKey('a'), Kind: KeyPress}
	buf := make([]byte, 1)
	_, err := ev.Encode(buf)
	assert.ErrorIs(t, err, ErrBufferOverflow)
}

func TestEncodeKittyKeyboardPushPop(t *testing.T) {
	buf := make([]byte, 16)
	n, err := EncodeKittyKeyboardPush(buf, KittyReportAllKeysAsEscapeCodes)
	require.NoError(t, err)
	assert.Equal(t, "\x1b[>8u", string(buf[:n]))

	n, err = EncodeKittyKeyboardPop(buf)
	require.NoError(t, err)
	assert.Equal(t, "\x1b[<u", string(buf[:n]))
}

func TestEncodeSetAndResetMode(t *testing.T) {
	buf := make([]byte, 16)
	n, err := EncodeSetMode(buf, ModeBracketedPaste)
	require.NoError(t, err)
	assert.Equal(t, "\x1b[?2004h", string(buf[:n]))

	n, err = EncodeResetMode(buf, ModeBracketedPaste)
	require.NoError(t, err)
	assert.Equal(t, "\x1b[?2004l", string(buf[:n]))
}
