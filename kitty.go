package vtio

// kittyFunctionalKeys maps the Kitty functional-key numeric codes
// (57344-57454) to this module's NamedKey, grounded on the teacher's
// kittyKeyMap table in kitty.go. Only F1-F12 and the navigation range
// are covered; every other code in 57344-57454 round-trips as
// KeyCode{Named: NamedKey(code)} without a friendly name.
var kittyFunctionalKeys = map[int]NamedKey{
	57344 + 0: KeyF1, 57344 + 1: KeyF2, 57344 + 2: KeyF3, 57344 + 3: KeyF4,
	57344 + 4: KeyF5, 57344 + 5: KeyF6, 57344 + 6: KeyF7, 57344 + 7: KeyF8,
	57344 + 8: KeyF9, 57344 + 9: KeyF10, 57344 + 10: KeyF11, 57344 + 11: KeyF12,
	kittyNavBase + 0: KeyInsert, kittyNavBase + 1: KeyDelete,
	kittyNavBase + 2: KeyLeft, kittyNavBase + 3: KeyRight,
	kittyNavBase + 4: KeyUp, kittyNavBase + 5: KeyDown,
	kittyNavBase + 6: KeyPageUp, kittyNavBase + 7: KeyPageDown,
	kittyNavBase + 8: KeyHome, kittyNavBase + 9: KeyEnd,
}

// kittyCodeToKeyCode turns a single Kitty keycode sub-parameter value
// into a KeyCode: either an ASCII/Unicode scalar or a named/functional
// key. Values under 32 are treated as the corresponding C0 control
// (Kitty encodes plain Enter/Tab/Backspace/Escape this way too).
func kittyCodeToKeyCode(code int) KeyCode {
	switch code {
	case 9:
		return NamedKeyCode(KeyTab)
	case 13:
		return NamedKeyCode(KeyEnter)
	case 27:
		return NamedKeyCode(KeyEscape)
	case 127:
		return NamedKeyCode(KeyBackspace)
	}
	if named, ok := kittyFunctionalKeys[code]; ok {
		return NamedKeyCode(named)
	}
	if code >= kittyFuncBase && code <= kittyModifierEnd {
		// Recognized Kitty range without a friendly NamedKey constant
		// (keypad, media, bare-modifier codes): preserve the numeric
		// code verbatim so round-tripping and IsKeypad/IsModifierKey
		// still work.
		return KeyCode{Named: NamedKey(code)}
	}
	return CharKey(rune(code))
}

// decodeKittyKeyEvent decodes the CSI-u parameter layout spec.md §4.5
// describes: `keycode[:shifted[:base]];modifiers[:event];text...`.
// Grounded on the teacher's parseKittyKeyboard in kitty.go.
func decodeKittyKeyEvent(params Params) (TerminalInputEvent, bool) {
	if params.Len() == 0 {
		return nil, false
	}

	keySub := params.Subparams(0)
	keycode := keySub[0]
	if keycode == ParamMissing {
		return nil, false
	}

	ev := KeyEvent{
		Code: kittyCodeToKeyCode(keycode),
		Kind: KeyPress,
	}

	if len(keySub) >= 2 && keySub[1] != ParamMissing {
		shifted := kittyCodeToKeyCode(keySub[1])
		ev.ShiftedKey = &shifted
	}
	if len(keySub) >= 3 && keySub[2] != ParamMissing {
		base := kittyCodeToKeyCode(keySub[2])
		ev.BaseLayoutKey = &base
	}

	modSub := params.Subparams(1)
	if len(modSub) >= 1 && modSub[0] != ParamMissing {
		ev.Modifiers = decodeModifierParam(modSub[0])
	}
	if ev.Modifiers.Has(ModShift) && ev.ShiftedKey != nil {
		ev.Code = *ev.ShiftedKey
	}
	if len(modSub) >= 2 && modSub[1] != ParamMissing {
		switch modSub[1] {
		case 1:
			ev.Kind = KeyPress
		case 2:
			ev.Kind = KeyRepeat
		case 3:
			ev.Kind = KeyRelease
		}
	}

	if ev.Code.IsKeypad() {
		ev.State.Keypad = true
	}
	if ev.Modifiers.Has(ModCapsLock) {
		ev.State.CapsLock = true
	}
	if ev.Modifiers.Has(ModNumLock) {
		ev.State.NumLock = true
	}

	if textSub := params.Subparams(2); len(textSub) > 0 {
		var runes []rune
		for _, cp := range textSub {
			if cp != ParamMissing && cp > 0 {
				runes = append(runes, rune(cp))
			}
		}
		if len(runes) > 0 {
			ev.Text = string(runes)
		}
	}
	if ev.Text == "" && ev.Code.Named == KeyNone {
		ev.Text = string(ev.Code.Rune)
	}

	return ev, true
}
