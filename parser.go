package vtio

import "bytes"

var pasteTerminator = []byte{esc, '[', '2', '0', '1', '~'}

// defaultPasteWatchdog is the default size of the trailing window
// feedPasteByte keeps around to detect the paste terminator, per
// spec.md §5's "16-byte paste-end watchdog window".
const defaultPasteWatchdog = 16

// ParserOption configures a Parser at construction time, the functional
// options idiom the teacher uses for Program construction (WithInput,
// WithAltScreen, ...).
type ParserOption func(*Parser)

// WithCSIParamLimit overrides the default 256-byte CSI parameter buffer
// bound (spec.md §5).
func WithCSIParamLimit(n int) ParserOption {
	return func(p *Parser) { p.csiParamLimit = n }
}

// WithStringBufferSize overrides the default 4 KiB OSC/DCS/PM/APC
// payload buffer bound (spec.md §5).
func WithStringBufferSize(n int) ParserOption {
	return func(p *Parser) { p.stringBufSize = n }
}

// WithStreamingPaste makes the parser emit the PasteStart/PasteData/
// PasteEnd triple instead of the collapsed PasteEvent, per the either/or
// allowed by spec.md §3.
func WithStreamingPaste() ParserOption {
	return func(p *Parser) { p.pasteStreaming = true }
}

// WithPasteWatchdog overrides the default 16-byte trailing window
// feedPasteByte keeps buffered while scanning for the bracketed-paste
// terminator (spec.md §5). Bytes older than the window are flushed as
// soon as they can no longer be part of a terminator match, so an open
// paste never grows the watchdog window itself without bound. A value
// smaller than len(pasteTerminator)-1 is raised to it, so a partial
// terminator always fits in the window.
func WithPasteWatchdog(n int) ParserOption {
	return func(p *Parser) { p.pasteWatchdog = n }
}

// WithKeyboardFlags seeds the decoder's initial Kitty keyboard flags
// snapshot, equivalent to an early call to SetKeyboardFlags.
func WithKeyboardFlags(flags KittyKeyboardFlags) ParserOption {
	return func(p *Parser) { p.dec.kittyFlags = flags }
}

// WithSGRPixelMouse tells the decoder that DEC private mode 1016
// (SGR-Pixel) is active on the far end, so `CSI < b;x;y M/m` reports
// carry pixel coordinates rather than cell coordinates. The wire form is
// identical to plain SGR mouse mode 1006; the parser has no way to infer
// which mode is active from the reports alone, since it never sees the
// outgoing mode-set sequence, so the caller must say so explicitly.
func WithSGRPixelMouse() ParserOption {
	return func(p *Parser) { p.dec.sgrPixelMode = true }
}

// Parser is the façade of C7: it owns one tokenizer, one decoder, and
// the paste/X10-mouse raw-byte interception state those two components
// delegate to it. A Parser instance is single-owner; concurrent feeding
// is undefined, per spec.md §4.7.
type Parser struct {
	tok *tokenizer
	dec *decoder

	csiParamLimit int
	stringBufSize int

	pasteStreaming bool
	pasteWatchdog  int
	pasteActive    bool
	pasteBuf       []byte // trailing watchdog window, bounded to max(pasteWatchdog, len(pasteTerminator)-1)
	pasteAccum     []byte // full collapsed-mode text; unbounded, since PasteEvent must carry it whole

	x10Pending int
	x10Buf     [3]byte
}

// NewParser constructs a Parser with default configuration, building
// (and freezing, on first call in the process) the descriptor trie.
func NewParser(opts ...ParserOption) (*Parser, error) {
	t, err := buildRegistryTrie()
	if err != nil {
		return nil, err
	}
	p := &Parser{dec: newDecoder(t), pasteWatchdog: defaultPasteWatchdog}
	for _, o := range opts {
		o(p)
	}
	if p.pasteWatchdog <= 0 {
		p.pasteWatchdog = defaultPasteWatchdog
	}
	p.tok = newTokenizer(p.csiParamLimit, p.stringBufSize)
	return p, nil
}

// SetKeyboardFlags informs the decoder which Kitty features to expect,
// per spec.md §4.7. It affects only future decoding: with
// KittyDisambiguateEscapeCodes set, ESC followed by another byte is read
// as a standalone Escape key rather than as an ALT-prefix.
func (p *Parser) SetKeyboardFlags(flags KittyKeyboardFlags) {
	p.dec.kittyFlags = flags
}

// FeedWith pushes a byte slice through the parser, invoking sink for
// every event produced, in arrival order. Feeding may be split at any
// byte boundary across calls; see spec.md §8 invariant 1.
func (p *Parser) FeedWith(data []byte, sink func(TerminalInputEvent)) {
	var refeedStack []byte
	i := 0

	nextByte := func() (byte, bool) {
		if n := len(refeedStack); n > 0 {
			b := refeedStack[n-1]
			refeedStack = refeedStack[:n-1]
			return b, true
		}
		if i < len(data) {
			b := data[i]
			i++
			return b, true
		}
		return 0, false
	}

	for {
		b, ok := nextByte()
		if !ok {
			return
		}

		if p.x10Pending > 0 {
			p.x10Buf[3-p.x10Pending] = b
			p.x10Pending--
			if p.x10Pending == 0 {
				sink(decodeX10Mouse(p.x10Buf[0], p.x10Buf[1], p.x10Buf[2]))
			}
			continue
		}

		if p.pasteActive {
			p.feedPasteByte(b, sink)
			continue
		}

		var toks []token
		p.tok.feed(b, func(t token) { toks = append(toks, t) })

		for _, t := range toks {
			res := p.dec.decodeToken(t)
			for _, ev := range res.events {
				switch e := ev.(type) {
				case x10MousePendingEvent:
					p.x10Pending = 3
				case PasteStartEvent:
					p.pasteActive = true
					p.pasteBuf = p.pasteBuf[:0]
					p.pasteAccum = p.pasteAccum[:0]
					if p.pasteStreaming {
						sink(e)
					}
				default:
					sink(ev)
				}
			}
			if res.refeed != nil {
				refeedStack = append(refeedStack, *res.refeed)
			}
		}
	}
}

// feedPasteByte accumulates one byte of bracketed-paste data into a
// bounded watchdog window, watching for the exact terminator
// `ESC [ 2 0 1 ~`. Per spec.md §3 invariant 2, bytes inside an open
// paste are never reinterpreted as escape sequences, including the
// tokenizer's own CAN/SUB abort handling.
//
// Only the trailing len(pasteTerminator)-1 bytes can still be part of an
// unfinished terminator match. pasteBuf keeps the last pasteWatchdog
// bytes (never fewer than that) and anything older is flushed
// immediately instead of growing pasteBuf for the life of the paste.
func (p *Parser) feedPasteByte(b byte, sink func(TerminalInputEvent)) {
	p.pasteBuf = append(p.pasteBuf, b)
	if bytes.HasSuffix(p.pasteBuf, pasteTerminator) {
		data := p.pasteBuf[:len(p.pasteBuf)-len(pasteTerminator)]
		p.pasteActive = false
		p.emitPasteData(data, sink)
		p.pasteBuf = p.pasteBuf[:0]
		if p.pasteStreaming {
			sink(PasteEndEvent{})
			return
		}
		sink(PasteEvent{Text: p.pasteAccum})
		p.pasteAccum = nil
		return
	}
	window := p.pasteWatchdog
	if window < len(pasteTerminator)-1 {
		window = len(pasteTerminator) - 1
	}
	if excess := len(p.pasteBuf) - window; excess > 0 {
		p.emitPasteData(p.pasteBuf[:excess], sink)
		p.pasteBuf = append(p.pasteBuf[:0], p.pasteBuf[excess:]...)
	}
}

// emitPasteData moves watchdog-window bytes that can no longer affect
// terminator detection out of pasteBuf: in streaming mode straight to
// the caller as a PasteDataEvent, otherwise into pasteAccum for the
// eventual collapsed PasteEvent.
func (p *Parser) emitPasteData(data []byte, sink func(TerminalInputEvent)) {
	if len(data) == 0 {
		return
	}
	if p.pasteStreaming {
		sink(PasteDataEvent{Data: append([]byte(nil), data...)})
		return
	}
	p.pasteAccum = append(p.pasteAccum, data...)
}

// Idle flushes timer-driven events: a bare Escape with no follow-up byte
// becomes Key{Esc}, per spec.md §4.4's idle() contract. A partial CSI is
// discarded, per SPEC_FULL.md §7's Open Question (b) decision. Any other
// partial state (OSC, DCS, PM, APC, UTF-8) stays buffered and can still
// be completed by a later feed.
func (p *Parser) Idle(sink func(TerminalInputEvent)) {
	p.tok.idleFlush(func(t token) {
		res := p.dec.decodeToken(t)
		for _, ev := range res.events {
			sink(ev)
		}
		if res.refeed != nil {
			b := *res.refeed
			p.FeedWith([]byte{b}, sink)
		}
	})
}

// DecodeBuffer is the one-shot convenience spec.md §4.7 names:
// NewParser + FeedWith + Idle.
func DecodeBuffer(data []byte, opts ...ParserOption) ([]TerminalInputEvent, error) {
	p, err := NewParser(opts...)
	if err != nil {
		return nil, err
	}
	var events []TerminalInputEvent
	sink := func(ev TerminalInputEvent) { events = append(events, ev) }
	p.FeedWith(data, sink)
	p.Idle(sink)
	return events, nil
}
