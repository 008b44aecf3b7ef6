package vtio

// Legacy arrow/Home/End keys: `CSI A/B/C/D/H/F` and the modified form
// `CSI 1;mod A/B/C/D/H/F`, per spec.md §4.5.
func init() {
	arrows := []struct {
		final byte
		named NamedKey
	}{
		{'A', KeyUp}, {'B', KeyDown}, {'C', KeyRight}, {'D', KeyLeft},
		{'H', KeyHome}, {'F', KeyEnd},
	}
	var ds []Descriptor
	for _, a := range arrows {
		named := a.named
		ds = append(ds, Descriptor{
			Class: classCSI,
			Final: a.final,
			Construct: func(params Params, raw []byte) (TerminalInputEvent, bool) {
				mods := decodeModifierParam(params.Param(1, 1))
				return KeyEvent{Code: NamedKeyCode(named), Modifiers: mods, Kind: KeyPress}, true
			},
		})
	}
	if err := registerDescriptors(ds); err != nil {
		panic(err)
	}
}

// Extended legacy keys terminated by `~`: Home/Insert/Delete/End/
// PageUp/PageDown/F1..F12, plus bracketed-paste boundaries (200/201)
// which Parser also special-cases for raw byte accumulation.
var tildeKeyTable = map[int]NamedKey{
	1: KeyHome, 2: KeyInsert, 3: KeyDelete, 4: KeyEnd, 5: KeyPageUp, 6: KeyPageDown,
	7: KeyHome, 8: KeyEnd,
	11: KeyF1, 12: KeyF2, 13: KeyF3, 14: KeyF4,
	15: KeyF5, 17: KeyF6, 18: KeyF7, 19: KeyF8,
	20: KeyF9, 21: KeyF10, 23: KeyF11, 24: KeyF12,
}

func init() {
	d := Descriptor{
		Class: classCSI,
		Final: '~',
		Construct: func(params Params, raw []byte) (TerminalInputEvent, bool) {
			code := params.Param(0, 0)
			switch code {
			case 200:
				return PasteStartEvent{}, true
			case 201:
				return PasteEndEvent{}, true
			}
			named, ok := tildeKeyTable[code]
			if !ok {
				return nil, false
			}
			mods := decodeModifierParam(params.Param(1, 1))
			return KeyEvent{Code: NamedKeyCode(named), Modifiers: mods, Kind: KeyPress}, true
		},
	}
	if err := registerDescriptors([]Descriptor{d}); err != nil {
		panic(err)
	}
}

// Shifted/Ctrl/Alt F1, F2 and F4: `CSI 1;mod P/Q/S`. F3's final byte `R`
// is shared with the cursor position report and is registered there.
func init() {
	final4 := []struct {
		final byte
		named NamedKey
	}{{'P', KeyF1}, {'Q', KeyF2}, {'S', KeyF4}}
	var ds []Descriptor
	for _, f := range final4 {
		named := f.named
		ds = append(ds, Descriptor{
			Class: classCSI,
			Final: f.final,
			Construct: func(params Params, raw []byte) (TerminalInputEvent, bool) {
				mods := decodeModifierParam(params.Param(1, 1))
				return KeyEvent{Code: NamedKeyCode(named), Modifiers: mods, Kind: KeyPress}, true
			},
		})
	}
	if err := registerDescriptors(ds); err != nil {
		panic(err)
	}
}

// Kitty CSI-u key event: plain `CSI ... u`, no private marker. Decoded
// in full by decodeKittyKeyEvent (kitty.go).
func init() {
	d := Descriptor{
		Class: classCSI,
		Final: 'u',
		Construct: func(params Params, raw []byte) (TerminalInputEvent, bool) {
			return decodeKittyKeyEvent(params)
		},
	}
	if err := registerDescriptors([]Descriptor{d}); err != nil {
		panic(err)
	}
}

// Kitty keyboard-flags report: `CSI ? flags u`.
func init() {
	d := Descriptor{
		Class:   classCSI,
		Private: '?',
		Final:   'u',
		Construct: func(params Params, raw []byte) (TerminalInputEvent, bool) {
			flags := KittyKeyboardFlags(params.Param(0, 0))
			return TerminalResponseEvent{Response: KittyKeyboardFlagsReport{Flags: flags}}, true
		},
	}
	if err := registerDescriptors([]Descriptor{d}); err != nil {
		panic(err)
	}
}

// Device attributes: primary `CSI ? Pc ; Pa ... c`, secondary
// `CSI > ... c`, tertiary `CSI = ... c`, grounded on the teacher's
// da1.go.
func init() {
	tiers := []struct {
		private byte
		tier    int
	}{{'?', 1}, {'>', 2}, {'=', 3}}
	var ds []Descriptor
	for _, t := range tiers {
		tier := t.tier
		ds = append(ds, Descriptor{
			Class:   classCSI,
			Private: t.private,
			Final:   'c',
			Construct: func(params Params, raw []byte) (TerminalInputEvent, bool) {
				var vals []int
				params.Range(func(i, v int, hasMore bool) bool {
					vals = append(vals, v)
					return true
				})
				return TerminalResponseEvent{Response: DeviceAttributesReport{Tier: tier, Params: vals}}, true
			},
		})
	}
	if err := registerDescriptors(ds); err != nil {
		panic(err)
	}
}

// DECRQM mode report: `CSI ? Ps ; Pm $y`.
func init() {
	d := Descriptor{
		Class:         classCSI,
		Private:       '?',
		Intermediates: []byte{'$'},
		Final:         'y',
		Construct: func(params Params, raw []byte) (TerminalInputEvent, bool) {
			if params.Len() < 2 {
				return nil, false
			}
			return TerminalResponseEvent{Response: ModeReport{
				Mode:  params.Param(0, 0),
				Value: ModeValue(params.Param(1, 0)),
			}}, true
		},
	}
	if err := registerDescriptors([]Descriptor{d}); err != nil {
		panic(err)
	}
}

// Focus events: `CSI I` / `CSI O`.
func init() {
	ds := []Descriptor{
		{Class: classCSI, Final: 'I', Construct: func(Params, []byte) (TerminalInputEvent, bool) {
			return FocusEvent{Gained: true}, true
		}},
		{Class: classCSI, Final: 'O', Construct: func(Params, []byte) (TerminalInputEvent, bool) {
			return FocusEvent{Gained: false}, true
		}},
	}
	if err := registerDescriptors(ds); err != nil {
		panic(err)
	}
}

// Cursor position report: `CSI row ; col R`. A bare `CSI R` with no
// parameters decodes as an unmodified F3 press. Any `R` with parameters
// decodes as a cursor position report, so a modified F3 (`CSI 1;mod R`)
// comes out as a report for row 1.
func init() {
	d := Descriptor{
		Class: classCSI,
		Final: 'R',
		Construct: func(params Params, raw []byte) (TerminalInputEvent, bool) {
			if params.Len() == 0 {
				return KeyEvent{Code: NamedKeyCode(KeyF3), Kind: KeyPress}, true
			}
			return TerminalResponseEvent{Response: CursorPositionReport{
				Row: params.Param(0, 1),
				Col: params.Param(1, 1),
			}}, true
		},
	}
	if err := registerDescriptors([]Descriptor{d}); err != nil {
		panic(err)
	}
}

// Generic device status report: `CSI Ps n`.
func init() {
	d := Descriptor{
		Class: classCSI,
		Final: 'n',
		Construct: func(params Params, raw []byte) (TerminalInputEvent, bool) {
			return TerminalResponseEvent{Response: DeviceStatusReport{Code: params.Param(0, 0)}}, true
		},
	}
	if err := registerDescriptors([]Descriptor{d}); err != nil {
		panic(err)
	}
}

// SGR mouse: `CSI < b ; x ; y M` (press/drag/move) and `CSI < b ; x ; y m`
// (release), grounded on the teacher's SGR mouse handling in parse.go.
func init() {
	ds := []Descriptor{
		{Class: classCSI, Private: '<', Final: 'M', Construct: constructSGRMouse(false)},
		{Class: classCSI, Private: '<', Final: 'm', Construct: constructSGRMouse(true)},
	}
	if err := registerDescriptors(ds); err != nil {
		panic(err)
	}
}

func constructSGRMouse(release bool) func(Params, []byte) (TerminalInputEvent, bool) {
	return func(params Params, raw []byte) (TerminalInputEvent, bool) {
		if params.Len() < 3 {
			return nil, false
		}
		b := params.Param(0, 0)
		x := params.Param(1, 1)
		y := params.Param(2, 1)
		btn, kind := decodeMouseButtonBits(b)
		// Wheel events (bit 6 set) have no release form; "m" only
		// changes press/drag/move into a release for ordinary buttons.
		if release && b&0x40 == 0 {
			kind = MouseUp
		}
		mods := decodeMouseModifiers(b)
		return MouseEvent{Kind: kind, Button: btn, Column: x, Row: y, Modifiers: mods}, true
	}
}
