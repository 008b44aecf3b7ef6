package vtio

import "strconv"

// Encoder is implemented by every round-trippable event and command
// type: it writes the event's canonical byte form into buf and returns
// the byte count, or ErrBufferOverflow if buf is too small. Grounded on
// spec.md §4.6: "encoding is the exact inverse of decoding for
// round-trippable variants."
type Encoder interface {
	Encode(buf []byte) (int, error)
}

func writeBytes(buf []byte, s []byte) (int, error) {
	if len(buf) < len(s) {
		return 0, ErrBufferOverflow
	}
	return copy(buf, s), nil
}

func appendInt(dst []byte, n int) []byte {
	return strconv.AppendInt(dst, int64(n), 10)
}

// Encode writes ev's canonical CSI-u form: `CSI keycode;modifiers[:event] u`
// (omitting sub-fields this module did not itself decode from shifted/
// base/text, so decode(encode(ev)) reproduces the fields spec.md §8
// invariant 2 actually requires — code, modifiers, and kind).
func (ev KeyEvent) Encode(buf []byte) (int, error) {
	code := keyCodeToKittyInt(ev.Code)
	out := make([]byte, 0, 32)
	out = append(out, esc, '[')
	out = appendInt(out, code)
	mod := encodeModifierParam(ev.Modifiers)
	event := int(ev.Kind)
	if mod != 0 || event != int(KeyPress) {
		out = append(out, ';')
		out = appendInt(out, mod)
		if event != int(KeyPress) {
			out = append(out, ':')
			out = appendInt(out, event)
		}
	}
	out = append(out, 'u')
	return writeBytes(buf, out)
}

func keyCodeToKittyInt(k KeyCode) int {
	if k.Named == KeyNone {
		return int(k.Rune)
	}
	switch k.Named {
	case KeyTab:
		return 9
	case KeyEnter:
		return 13
	case KeyEscape:
		return 27
	case KeyBackspace:
		return 127
	}
	if n := uint32(k.Named); n >= kittyFuncBase {
		return int(n)
	}
	if named, ok := reverseKittyFunctional[k.Named]; ok {
		return named
	}
	return int(k.Rune)
}

var reverseKittyFunctional = buildReverseKittyFunctional()

func buildReverseKittyFunctional() map[NamedKey]int {
	m := make(map[NamedKey]int, len(kittyFunctionalKeys))
	for code, named := range kittyFunctionalKeys {
		m[named] = code
	}
	return m
}

// Encode writes ev's canonical SGR mouse form:
// `CSI < b ; x ; y M` or `... m` for a release.
func (ev MouseEvent) Encode(buf []byte) (int, error) {
	b := encodeMouseButtonBits(ev.Kind, ev.Button) | int(encodeMouseModifierBits(ev.Modifiers))
	out := make([]byte, 0, 24)
	out = append(out, esc, '[', '<')
	out = appendInt(out, b)
	out = append(out, ';')
	out = appendInt(out, ev.Column)
	out = append(out, ';')
	out = appendInt(out, ev.Row)
	if ev.Kind == MouseUp {
		out = append(out, 'm')
	} else {
		out = append(out, 'M')
	}
	return writeBytes(buf, out)
}

func encodeMouseButtonBits(kind MouseEventKind, btn MouseButton) int {
	switch kind {
	case MouseScrollUp:
		return 0x40 | 0
	case MouseScrollDown:
		return 0x40 | 1
	case MouseScrollLeft:
		return 0x40 | 2
	case MouseScrollRight:
		return 0x40 | 3
	}
	base := 0
	switch btn.Kind {
	case ButtonLeft:
		base = 0
	case ButtonMiddle:
		base = 1
	case ButtonRight:
		base = 2
	default:
		base = 3
	}
	if kind == MouseDrag {
		base |= 0x20
	}
	return base
}

func encodeMouseModifierBits(m Modifiers) int {
	var b int
	if m.Has(ModShift) {
		b |= 0x04
	}
	if m.Has(ModAlt) {
		b |= 0x08
	}
	if m.Has(ModCtrl) {
		b |= 0x10
	}
	return b
}

// Encode writes ev's canonical form: `CSI I` or `CSI O`.
func (ev FocusEvent) Encode(buf []byte) (int, error) {
	final := byte('O')
	if ev.Gained {
		final = 'I'
	}
	return writeBytes(buf, []byte{esc, '[', final})
}

// Encode writes ev's canonical form, wrapping Text between the
// bracketed-paste start and end markers.
func (ev PasteEvent) Encode(buf []byte) (int, error) {
	out := make([]byte, 0, len(ev.Text)+12)
	out = append(out, esc, '[', '2', '0', '0', '~')
	out = append(out, ev.Text...)
	out = append(out, esc, '[', '2', '0', '1', '~')
	return writeBytes(buf, out)
}

// Encode writes the Kitty keyboard-flags report form: `CSI ? flags u`.
func (r KittyKeyboardFlagsReport) Encode(buf []byte) (int, error) {
	out := make([]byte, 0, 16)
	out = append(out, esc, '[', '?')
	out = appendInt(out, int(r.Flags))
	out = append(out, 'u')
	return writeBytes(buf, out)
}

// EncodeKittyKeyboardPush writes the push-flags command:
// `CSI > flags u`.
func EncodeKittyKeyboardPush(buf []byte, flags KittyKeyboardFlags) (int, error) {
	out := make([]byte, 0, 16)
	out = append(out, esc, '[', '>')
	out = appendInt(out, int(flags))
	out = append(out, 'u')
	return writeBytes(buf, out)
}

// EncodeKittyKeyboardPop writes the pop-flags command: `CSI < u`.
func EncodeKittyKeyboardPop(buf []byte) (int, error) {
	return writeBytes(buf, []byte{esc, '[', '<', 'u'})
}

// EncodeRequestKittyKeyboardFlags writes the Kitty flags query:
// `CSI ? u`.
func EncodeRequestKittyKeyboardFlags(buf []byte) (int, error) {
	return writeBytes(buf, []byte{esc, '[', '?', 'u'})
}

// decMode is a DEC private mode number this module's command catalog
// exposes enable/disable encoders for, per spec.md §6.
type decMode int

const (
	ModeMouseX10        decMode = 9
	ModeMouseButtonEvent decMode = 1002
	ModeMouseAnyEvent    decMode = 1003
	ModeMouseSGR         decMode = 1006
	ModeMouseSGRPixel    decMode = 1016
	ModeFocusEvents      decMode = 1004
	ModeBracketedPaste   decMode = 2004
)

// EncodeSetMode writes the DECSET form (`CSI ? Pm h`) enabling mode.
func EncodeSetMode(buf []byte, mode decMode) (int, error) {
	return encodeDECPrivateMode(buf, mode, 'h')
}

// EncodeResetMode writes the DECRST form (`CSI ? Pm l`) disabling mode.
func EncodeResetMode(buf []byte, mode decMode) (int, error) {
	return encodeDECPrivateMode(buf, mode, 'l')
}

func encodeDECPrivateMode(buf []byte, mode decMode, final byte) (int, error) {
	out := make([]byte, 0, 16)
	out = append(out, esc, '[', '?')
	out = appendInt(out, int(mode))
	out = append(out, final)
	return writeBytes(buf, out)
}

// EncodeRequestMode writes a DECRQM query (`CSI ? Pm $p`) for mode.
func EncodeRequestMode(buf []byte, mode decMode) (int, error) {
	out := make([]byte, 0, 16)
	out = append(out, esc, '[', '?')
	out = appendInt(out, int(mode))
	out = append(out, '$', 'p')
	return writeBytes(buf, out)
}

// Cursor and screen commands the command catalog (spec.md §6) names
// alongside the mode toggles above.
const (
	CursorUp       = 'A'
	CursorDown     = 'B'
	CursorForward  = 'C'
	CursorBack     = 'D'
	cmdCursorPosition = 'H'
)

// EncodeCursorMove writes a relative cursor-movement command
// (`CSI n A/B/C/D`).
func EncodeCursorMove(buf []byte, n int, dir byte) (int, error) {
	out := make([]byte, 0, 12)
	out = append(out, esc, '[')
	out = appendInt(out, n)
	out = append(out, dir)
	return writeBytes(buf, out)
}

// EncodeCursorPosition writes an absolute cursor-positioning command
// (`CSI row ; col H`).
func EncodeCursorPosition(buf []byte, row, col int) (int, error) {
	out := make([]byte, 0, 16)
	out = append(out, esc, '[')
	out = appendInt(out, row)
	out = append(out, ';')
	out = appendInt(out, col)
	out = append(out, cmdCursorPosition)
	return writeBytes(buf, out)
}

// EncodeEraseDisplay writes `CSI Ps J` (Ps=2 clears the whole screen).
func EncodeEraseDisplay(buf []byte, ps int) (int, error) {
	out := make([]byte, 0, 8)
	out = append(out, esc, '[')
	out = appendInt(out, ps)
	out = append(out, 'J')
	return writeBytes(buf, out)
}

// EncodeRequestPrimaryDeviceAttributes writes `CSI c`.
func EncodeRequestPrimaryDeviceAttributes(buf []byte) (int, error) {
	return writeBytes(buf, []byte{esc, '[', 'c'})
}

// EncodeRequestCursorPosition writes `CSI 6 n`.
func EncodeRequestCursorPosition(buf []byte) (int, error) {
	return writeBytes(buf, []byte{esc, '[', '6', 'n'})
}
