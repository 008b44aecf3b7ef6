package vtio

// decoder holds the small scratch state spec.md §3's Lifecycle section
// calls out: a pending ALT-prefix flag and the most recent Kitty-flags
// snapshot. Bracketed-paste and X10-mouse raw-byte accumulation are
// owned by Parser (C7) instead, since they intercept bytes before the
// tokenizer ever sees them.
type decoder struct {
	altPending   bool
	kittyFlags   KittyKeyboardFlags
	sgrPixelMode bool
	registryTrie *trie
}

func newDecoder(t *trie) *decoder {
	return &decoder{registryTrie: t}
}

// decodeResult is what decodeToken hands back to Parser's feed loop:
// zero or more events, plus an optional byte the tokenizer must
// reprocess from Ground (the ALT-prefix disambiguation of spec.md
// §4.5's EscPrefix rule).
type decodeResult struct {
	events []TerminalInputEvent
	refeed *byte
}

func (d *decoder) decodeToken(tok token) decodeResult {
	switch tok.kind {
	case tokPrint:
		ev := newPrintKeyEvent(tok.r, d.altPending)
		d.altPending = false
		return decodeResult{events: []TerminalInputEvent{ev}}

	case tokC0:
		ev, ok := decodeC0(tok.b, d.altPending)
		d.altPending = false
		if !ok {
			return decodeResult{events: []TerminalInputEvent{UnknownEvent{Raw: []byte{tok.b}}}}
		}
		return decodeResult{events: []TerminalInputEvent{ev}}

	case tokEscPrefix:
		if tok.b == 0 {
			ev := KeyEvent{Code: NamedKeyCode(KeyEscape), Kind: KeyPress}
			if d.altPending {
				ev.Modifiers |= ModAlt
				d.altPending = false
			}
			return decodeResult{events: []TerminalInputEvent{ev}}
		}
		if tok.b == esc {
			// ESC ESC: the first ESC resolves immediately to a bare
			// Escape key rather than setting the ALT-prefix flag; the
			// second ESC is reprocessed to start its own escape
			// sequence, so "ESC ESC" + idle() yields two Escape keys
			// rather than one Alt+Escape.
			ev := KeyEvent{Code: NamedKeyCode(KeyEscape), Kind: KeyPress}
			if d.altPending {
				ev.Modifiers |= ModAlt
				d.altPending = false
			}
			b := tok.b
			return decodeResult{events: []TerminalInputEvent{ev}, refeed: &b}
		}
		// With DISAMBIGUATE_ESCAPE_CODES active, the far end encodes a
		// genuine Alt+key chord as its own CSI-u report rather than as
		// a bare ESC followed by the key byte, so an ESC immediately
		// followed by something else can only be a standalone Escape
		// keypress butted up against unrelated input, per spec.md
		// §4.7's "affects disambiguation of legacy sequences vs
		// CSI-u". Resolve it as such instead of folding it into an
		// ALT-prefix.
		if d.kittyFlags&KittyDisambiguateEscapeCodes != 0 {
			ev := KeyEvent{Code: NamedKeyCode(KeyEscape), Kind: KeyPress}
			b := tok.b
			return decodeResult{events: []TerminalInputEvent{ev}, refeed: &b}
		}
		d.altPending = true
		b := tok.b
		return decodeResult{refeed: &b}

	case tokInvalidUTF8:
		return decodeResult{events: []TerminalInputEvent{InvalidUTF8Event{Byte: tok.b}}}

	case tokAbort:
		return decodeResult{}

	case tokSs2:
		return d.decodeViaTrie(classSS2, 0, nil, tok.b, nil)
	case tokSs3:
		return d.decodeViaTrie(classSS3, 0, nil, tok.b, nil)

	case tokCsi:
		return d.decodeViaTrie(classCSI, tok.private, tok.intermediates, tok.final, tok.params)

	case tokOsc:
		return d.decodeOsc(tok.data)

	case tokDcs:
		return d.decodeDcs(tok)

	case tokPm:
		return decodeResult{events: []TerminalInputEvent{UnknownEvent{Raw: append([]byte{'^'}, tok.data...)}}}
	case tokApc:
		return decodeResult{events: []TerminalInputEvent{UnknownEvent{Raw: append([]byte{'_'}, tok.data...)}}}
	}
	return decodeResult{}
}

func (d *decoder) decodeViaTrie(class descriptorClass, private byte, intermediates []byte, final byte, rawParams []byte) decodeResult {
	key := make([]byte, 0, 4+len(intermediates))
	key = append(key, byte(class))
	if private != 0 {
		key = append(key, private)
	}
	key = append(key, intermediates...)
	key = append(key, final)

	idx, ok := d.registryTrie.lookup(key)
	if !ok {
		return decodeResult{events: []TerminalInputEvent{UnknownEvent{Raw: rebuildRawCsi(class, private, intermediates, rawParams, final)}}}
	}
	desc := descriptorAt(idx)
	params := decodeParams(rawParams)
	ev, ok := desc.Construct(params, rawParams)
	if !ok {
		return decodeResult{events: []TerminalInputEvent{UnknownEvent{Raw: rebuildRawCsi(class, private, intermediates, rawParams, final)}}}
	}
	if kittyReport, isKitty := ev.(TerminalResponseEvent); isKitty {
		if flagsReport, ok2 := kittyReport.Response.(KittyKeyboardFlagsReport); ok2 {
			d.kittyFlags = flagsReport.Flags
		}
	}
	if d.sgrPixelMode {
		if mouseEv, isMouse := ev.(MouseEvent); isMouse {
			mouseEv.PixelCoords = &PixelCoords{X: mouseEv.Column, Y: mouseEv.Row}
			mouseEv.Column, mouseEv.Row = 1, 1
			ev = mouseEv
		}
	}
	return decodeResult{events: []TerminalInputEvent{ev}}
}

func rebuildRawCsi(class descriptorClass, private byte, intermediates, params []byte, final byte) []byte {
	var raw []byte
	switch class {
	case classCSI:
		raw = append(raw, esc, '[')
	case classDCS:
		raw = append(raw, esc, 'P')
	case classSS2:
		return []byte{esc, 'N', final}
	case classSS3:
		return []byte{esc, 'O', final}
	}
	if private != 0 {
		raw = append(raw, private)
	}
	raw = append(raw, params...)
	raw = append(raw, intermediates...)
	raw = append(raw, final)
	return raw
}

// decodeOsc splits data at the first ';' per spec.md §4.5: the prefix is
// the OSC command number, the remainder is the payload.
func (d *decoder) decodeOsc(data []byte) decodeResult {
	i := 0
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		i++
	}
	if i == 0 {
		return decodeResult{events: []TerminalInputEvent{UnknownEvent{Raw: append([]byte{esc, ']'}, data...)}}}
	}
	cmdDigits := data[:i]
	payload := data[i:]
	if len(payload) > 0 && payload[0] == ';' {
		payload = payload[1:]
	}

	key := make([]byte, 0, 1+len(cmdDigits)+1)
	key = append(key, byte(classOSC))
	key = append(key, cmdDigits...)
	key = append(key, 0)

	idx, ok := d.registryTrie.lookup(key)
	if !ok {
		return decodeResult{events: []TerminalInputEvent{UnknownEvent{Raw: append([]byte{esc, ']'}, data...)}}}
	}
	desc := descriptorAt(idx)
	ev, ok := desc.Construct(Params{}, payload)
	if !ok {
		return decodeResult{events: []TerminalInputEvent{UnknownEvent{Raw: append([]byte{esc, ']'}, data...)}}}
	}
	return decodeResult{events: []TerminalInputEvent{ev}}
}

// decodeDcs handles the two DCS replies spec.md §6's external-interfaces
// list names as in-scope: XTGETTCAP and XTVersion-style string
// responses. Any other DCS frame surfaces as Unknown, preserving the raw
// bytes per spec.md §9.
func (d *decoder) decodeDcs(tok token) decodeResult {
	key := make([]byte, 0, 4+len(tok.intermediates))
	key = append(key, byte(classDCS))
	if tok.private != 0 {
		key = append(key, tok.private)
	}
	key = append(key, tok.intermediates...)
	key = append(key, tok.final)

	raw := rebuildRawCsi(classDCS, tok.private, tok.intermediates, tok.params, tok.final)
	raw = append(raw, tok.data...)

	idx, ok := d.registryTrie.lookup(key)
	if !ok {
		return decodeResult{events: []TerminalInputEvent{UnknownEvent{Raw: raw}}}
	}
	desc := descriptorAt(idx)
	params := decodeParams(tok.params)
	ev, ok := desc.Construct(params, tok.data)
	if !ok {
		return decodeResult{events: []TerminalInputEvent{UnknownEvent{Raw: raw}}}
	}
	return decodeResult{events: []TerminalInputEvent{ev}}
}
