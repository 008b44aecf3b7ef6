package vtio

// SS3 single-shift function keys and cursor keys (VT100/VT52 mode):
// `ESC O P/Q/R/S` -> F1-F4, `ESC O A/B/C/D/H/F` -> arrows/Home/End.
func init() {
	ss3Keys := []struct {
		final byte
		named NamedKey
	}{
		{'P', KeyF1}, {'Q', KeyF2}, {'R', KeyF3}, {'S', KeyF4},
		{'A', KeyUp}, {'B', KeyDown}, {'C', KeyRight}, {'D', KeyLeft},
		{'H', KeyHome}, {'F', KeyEnd},
	}
	var ds []Descriptor
	for _, k := range ss3Keys {
		named := k.named
		ds = append(ds, Descriptor{
			Class: classSS3,
			Final: k.final,
			Construct: func(params Params, raw []byte) (TerminalInputEvent, bool) {
				return KeyEvent{Code: NamedKeyCode(named), Kind: KeyPress}, true
			},
		})
	}
	if err := registerDescriptors(ds); err != nil {
		panic(err)
	}
}

// SS2 is rarely used for keyboard input but is part of the recognized
// introducer set (spec.md §6). No SS2 descriptors are registered: an SS2
// frame misses the trie lookup and surfaces as UnknownEvent rather than
// silently vanishing. No terminal in common use emits `ESC N <byte>` for
// keyboard input.
