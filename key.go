package vtio

import "strings"

// Modifiers is the Kitty modifier bitmask: bit 0 shift, 1 alt, 2 ctrl,
// 3 super, 4 hyper, 5 meta, 6 caps-lock, 7 num-lock. The wire encoding of
// a modifier parameter is 1+bits; Modifiers itself stores the decoded
// bits, never the +1 wire form.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
	ModHyper
	ModMeta
	ModCapsLock
	ModNumLock
)

// Has reports whether all bits in m are set.
func (mods Modifiers) Has(m Modifiers) bool { return mods&m == m }

// decodeModifierParam converts a wire modifier parameter (the "1+bits"
// encoding used by both legacy modifyOtherKeys and Kitty CSI-u) to
// Modifiers. A value of 0 or 1 means "no modifiers".
func decodeModifierParam(v int) Modifiers {
	if v <= 1 {
		return 0
	}
	return Modifiers(v - 1)
}

// encodeModifierParam is the inverse of decodeModifierParam.
func encodeModifierParam(m Modifiers) int {
	if m == 0 {
		return 0
	}
	return int(m) + 1
}

// KeyEventKind distinguishes press, repeat and release, per the Kitty
// keyboard protocol's event-type sub-parameter.
type KeyEventKind uint8

const (
	KeyPress KeyEventKind = iota + 1
	KeyRepeat
	KeyRelease
)

// KeyCode identifies a key independent of modifiers. A Char code carries
// its rune directly; named codes use the Kitty functional-key numbering
// from spec range 57344-57454 plus the legacy named keys bubbletea's
// kittyKeyMap and key_sequences.go both enumerate.
type KeyCode struct {
	// Rune is set when this code represents a literal character (ASCII
	// or Unicode). Named is used instead of Rune when non-zero.
	Rune  rune
	Named NamedKey
}

// NamedKey enumerates the non-character keys this module recognizes.
// The named constants below occupy small values; values at or above
// 57344 mirror the Kitty functional-key code so an unrecognized Kitty
// code can still be round-tripped by storing Named = NamedKey(code).
type NamedKey uint32

const (
	KeyNone NamedKey = 0

	KeyEnter NamedKey = iota + 1
	KeyTab
	KeyBackspace
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Kitty functional-key numeric ranges, per the spec's CSI-u layout.
const (
	kittyFuncBase      = 57344 // F1..F35 start here
	kittyKeypadBase    = 57399
	kittyKeypadEnd     = 57416
	kittyNavBase       = 57417
	kittyNavEnd        = 57427
	kittyMediaBase     = 57428
	kittyMediaEnd      = 57440
	kittyModifierBase  = 57441
	kittyModifierEnd   = 57454
)

// IsKeypad reports whether code falls in the Kitty keypad numeric range.
func (k KeyCode) IsKeypad() bool {
	n := uint32(k.Named)
	return n >= kittyKeypadBase && n <= kittyKeypadEnd
}

// IsModifierKey reports whether code identifies a bare modifier key
// (e.g. left Shift) rather than a combination of modifiers on some
// other key.
func (k KeyCode) IsModifierKey() bool {
	n := uint32(k.Named)
	return n >= kittyModifierBase && n <= kittyModifierEnd
}

// CharKey builds a KeyCode for a literal rune.
func CharKey(r rune) KeyCode { return KeyCode{Rune: r} }

// NamedKeyCode builds a KeyCode for a named, non-character key.
func NamedKeyCode(n NamedKey) KeyCode { return KeyCode{Named: n} }

// KeyState carries the auxiliary lock/lifecycle flags spec.md §3's Key
// variant groups under `state`.
type KeyState struct {
	Keypad   bool
	CapsLock bool
	NumLock  bool
}

// KeyEvent is the Key variant of TerminalInputEvent.
type KeyEvent struct {
	Code      KeyCode
	Modifiers Modifiers
	Kind      KeyEventKind
	State     KeyState

	// BaseLayoutKey and ShiftedKey are set only when the Kitty CSI-u
	// form supplied the corresponding sub-parameter.
	BaseLayoutKey *KeyCode
	ShiftedKey    *KeyCode

	// Text holds associated codepoints from the Kitty CSI-u text
	// sub-parameter, or the rendered rune(s) for a Print-derived key.
	Text string
}

func (KeyEvent) isTerminalInputEvent() {}

// isUpperASCII reports whether r is an ASCII uppercase letter, the one case
// spec.md §4.5 calls out as implying an implicit Shift modifier on a
// plain Print token.
func isUpperASCII(r rune) bool { return r >= 'A' && r <= 'Z' }

// newPrintKeyEvent builds the KeyEvent for a Print token, folding in an
// implicit Shift for uppercase ASCII and any pending ALT-prefix bit.
func newPrintKeyEvent(r rune, altPending bool) KeyEvent {
	var mods Modifiers
	if isUpperASCII(r) {
		mods |= ModShift
	}
	if altPending {
		mods |= ModAlt
	}
	return KeyEvent{
		Code:      CharKey(r),
		Modifiers: mods,
		Kind:      KeyPress,
		Text:      string(r),
	}
}

// c0KeyTable maps C0 control bytes (spec.md §4.5) to their KeyEvent,
// excluding ESC which the tokenizer never emits as a C0 token.
var c0KeyTable = map[byte]KeyEvent{
	0x00: {Code: CharKey(' '), Modifiers: ModCtrl, Kind: KeyPress},
	0x09: {Code: NamedKeyCode(KeyTab), Kind: KeyPress},
	0x0A: {Code: CharKey('\n'), Kind: KeyPress},
	0x0D: {Code: NamedKeyCode(KeyEnter), Kind: KeyPress},
	0x08: {Code: NamedKeyCode(KeyBackspace), Kind: KeyPress},
	0x7F: {Code: NamedKeyCode(KeyBackspace), Kind: KeyPress},
	0x1C: {Code: CharKey('\\'), Modifiers: ModCtrl, Kind: KeyPress},
	0x1D: {Code: CharKey(']'), Modifiers: ModCtrl, Kind: KeyPress},
	0x1E: {Code: CharKey('^'), Modifiers: ModCtrl, Kind: KeyPress},
	0x1F: {Code: CharKey('_'), Modifiers: ModCtrl, Kind: KeyPress},
}

// decodeC0 builds the KeyEvent for a C0 control byte per spec.md §4.5,
// folding in an implicit Ctrl+letter mapping for 0x01..0x1A and any
// pending ALT-prefix bit.
func decodeC0(b byte, altPending bool) (KeyEvent, bool) {
	var ev KeyEvent
	switch {
	case b >= 0x01 && b <= 0x1A && b != 0x08 && b != 0x09 && b != 0x0A && b != 0x0D:
		ev = KeyEvent{Code: CharKey(rune('a' + b - 1)), Modifiers: ModCtrl, Kind: KeyPress}
	default:
		e, ok := c0KeyTable[b]
		if !ok {
			return KeyEvent{}, false
		}
		ev = e
	}
	if altPending {
		ev.Modifiers |= ModAlt
	}
	return ev, true
}

// String renders a short human-readable form for diagnostics; not part
// of the wire format.
func (k KeyCode) String() string {
	if k.Named == KeyNone {
		return string(k.Rune)
	}
	var b strings.Builder
	b.WriteString("Named(")
	b.WriteString(namedKeyName(k.Named))
	b.WriteByte(')')
	return b.String()
}

var namedKeyNames = map[NamedKey]string{
	KeyEnter: "Enter", KeyTab: "Tab", KeyBackspace: "Backspace", KeyEscape: "Escape",
	KeyUp: "Up", KeyDown: "Down", KeyLeft: "Left", KeyRight: "Right",
	KeyHome: "Home", KeyEnd: "End", KeyPageUp: "PageUp", KeyPageDown: "PageDown",
	KeyInsert: "Insert", KeyDelete: "Delete",
	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5", KeyF6: "F6",
	KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10", KeyF11: "F11", KeyF12: "F12",
}

func namedKeyName(n NamedKey) string {
	if s, ok := namedKeyNames[n]; ok {
		return s
	}
	return "Unknown"
}
