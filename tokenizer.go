package vtio

import (
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

const (
	esc = ansi.ESC
	bel = ansi.BEL
	can = ansi.CAN
	sub = ansi.SUB
	// st0 is the synthetic C0-style marker emitted for a lone `ESC \`
	// with no open string to terminate (spec.md §4.4's Escape row for
	// `\`). It is not ansi.ST's 8-bit C1 byte value; 0x9C would collide
	// with a real payload byte if ever reprocessed.
	st0 = 0x1C
)

// tokenKind enumerates the frame kinds the tokenizer emits, per
// spec.md §3's "Frame kinds produced by the tokenizer".
type tokenKind uint8

const (
	tokPrint tokenKind = iota + 1
	tokC0
	tokCsi
	tokOsc
	tokDcs
	tokSs2
	tokSs3
	tokPm
	tokApc
	tokEscPrefix
	tokInvalidUTF8
	tokAbort
)

// token is the tokenizer's output unit. Only the fields relevant to
// kind are populated; byte-slice fields alias the tokenizer's internal
// scratch buffers and are only valid until the next feed call, matching
// the zero-copy contract of spec.md §1 — callers needing to retain one
// must copy it.
type token struct {
	kind tokenKind

	b byte // C0, Ss2, Ss3, EscPrefix, InvalidUTF8
	r rune // Print

	private       byte
	intermediates []byte
	params        []byte
	final         byte
	data          []byte // Osc data, Dcs data, Pm/Apc payload
}

// tokenizerState is the VT tokenizer's state, per spec.md §4.4's table.
type tokenizerState uint8

const (
	stGround tokenizerState = iota
	stUtf8
	stEscape
	stCsi
	stOsc
	stDcs
	stDcsString
	stPm
	stApc
	stSs2
	stSs3
	stStringEscape // saw ESC while inside Osc/Dcs/Pm/Apc, awaiting '\' or abort
)

const (
	defaultCSIParamLimit = 256
	defaultStringBufSize = 4096
)

// tokenizer is the streaming byte-at-a-time state machine of spec.md
// §4.4, grounded on tcell's inputParser.scan loop structure (an
// explicit state enum driven one byte at a time) rather than the
// teacher's (bubbletea's) one-shot whole-buffer parseSequence, since
// this module must support feeding arbitrary chunks down to a single
// byte.
type tokenizer struct {
	state tokenizerState

	// resumeState is the string-accumulation state (Osc/Dcs/Pm/Apc) to
	// return to after a stStringEscape byte turns out not to be ST.
	resumeState tokenizerState

	csiPrivate       byte
	csiIntermediates []byte
	csiParams        []byte

	stringBuf             []byte // Osc/Dcs/Pm/Apc payload
	dcsHeader             bool   // true while still reading Dcs's Csi-like header
	finalByteForDcsHeader byte
	pendingKind           tokenKind // which string kind stStringEscape is resolving

	utf8Buf  []byte
	utf8Need int

	paramLimit int
	bufLimit   int
}

func newTokenizer(paramLimit, bufLimit int) *tokenizer {
	if paramLimit <= 0 {
		paramLimit = defaultCSIParamLimit
	}
	if bufLimit <= 0 {
		bufLimit = defaultStringBufSize
	}
	return &tokenizer{state: stGround, paramLimit: paramLimit, bufLimit: bufLimit}
}

func isC0(b byte) bool { return b < 0x20 || b == 0x7F }

// feed processes one byte, invoking emit zero or more times (more than
// once when an abandoned UTF-8 sequence or an aborted string is followed
// by reprocessing of the same byte in the same call).
func (t *tokenizer) feed(b byte, emit func(token)) {
	switch t.state {
	case stGround:
		t.feedGround(b, emit)
	case stUtf8:
		t.feedUtf8(b, emit)
	case stEscape:
		t.feedEscape(b, emit)
	case stCsi:
		t.feedCsi(b, emit)
	case stOsc:
		t.feedStringByte(b, emit, tokOsc)
	case stDcs:
		t.feedDcsHeader(b, emit)
	case stDcsString:
		t.feedStringByte(b, emit, tokDcs)
	case stPm:
		t.feedStringByte(b, emit, tokPm)
	case stApc:
		t.feedStringByte(b, emit, tokApc)
	case stSs2:
		t.state = stGround
		emit(token{kind: tokSs2, b: b})
	case stSs3:
		t.state = stGround
		emit(token{kind: tokSs3, b: b})
	case stStringEscape:
		t.feedStringEscape(b, emit)
	}
}

func (t *tokenizer) feedGround(b byte, emit func(token)) {
	switch {
	case b == esc:
		t.state = stEscape
	case b >= 0x80:
		t.beginUtf8(b, emit)
	case isC0(b):
		emit(token{kind: tokC0, b: b})
	default:
		emit(token{kind: tokPrint, r: rune(b)})
	}
}

func (t *tokenizer) beginUtf8(lead byte, emit func(token)) {
	var need int
	switch {
	case lead&0xE0 == 0xC0:
		need = 1
	case lead&0xF0 == 0xE0:
		need = 2
	case lead&0xF8 == 0xF0:
		need = 3
	default:
		emit(token{kind: tokInvalidUTF8, b: lead})
		return
	}
	t.utf8Buf = append(t.utf8Buf[:0], lead)
	t.utf8Need = need
	t.state = stUtf8
}

func (t *tokenizer) feedUtf8(b byte, emit func(token)) {
	if b&0xC0 != 0x80 {
		// Non-continuation byte: abandon the partial sequence and
		// reprocess b fresh, per spec.md §4.4's Utf8(n) row.
		emit(token{kind: tokInvalidUTF8, b: t.utf8Buf[0]})
		t.state = stGround
		t.feedGround(b, emit)
		return
	}
	t.utf8Buf = append(t.utf8Buf, b)
	t.utf8Need--
	if t.utf8Need > 0 {
		return
	}
	r, size := utf8.DecodeRune(t.utf8Buf)
	t.state = stGround
	if r == utf8.RuneError && size <= 1 {
		emit(token{kind: tokInvalidUTF8, b: t.utf8Buf[0]})
		return
	}
	emit(token{kind: tokPrint, r: r})
}

func (t *tokenizer) feedEscape(b byte, emit func(token)) {
	switch b {
	case '[':
		t.resetCsi()
		t.state = stCsi
	case ']':
		t.stringBuf = t.stringBuf[:0]
		t.state = stOsc
	case 'P':
		t.resetCsi()
		t.stringBuf = t.stringBuf[:0]
		t.dcsHeader = true
		t.state = stDcs
	case 'N':
		t.state = stSs2
	case 'O':
		t.state = stSs3
	case '^':
		t.stringBuf = t.stringBuf[:0]
		t.state = stPm
	case '_':
		t.stringBuf = t.stringBuf[:0]
		t.state = stApc
	case '\\':
		t.state = stGround
		emit(token{kind: tokC0, b: st0})
	case can, sub:
		t.state = stGround
		emit(token{kind: tokAbort})
	default:
		t.state = stGround
		emit(token{kind: tokEscPrefix, b: b})
	}
}

func (t *tokenizer) resetCsi() {
	t.csiPrivate = 0
	t.csiIntermediates = t.csiIntermediates[:0]
	t.csiParams = t.csiParams[:0]
	t.dcsHeader = false
}

func (t *tokenizer) feedCsi(b byte, emit func(token)) {
	switch {
	case b == can || b == sub:
		t.state = stGround
		t.resetCsi()
		emit(token{kind: tokAbort})
	case b >= 0x3C && b <= 0x3F && len(t.csiParams) == 0 && len(t.csiIntermediates) == 0 && t.csiPrivate == 0:
		t.csiPrivate = b
	case b >= '0' && b <= ';':
		if len(t.csiParams) >= t.paramLimit {
			t.state = stGround
			t.resetCsi()
			emit(token{kind: tokAbort})
			return
		}
		t.csiParams = append(t.csiParams, b)
	case b >= 0x20 && b <= 0x2F:
		t.csiIntermediates = append(t.csiIntermediates, b)
	case b >= 0x40 && b <= 0x7E:
		t.state = stGround
		if t.dcsHeader {
			t.dcsHeader = false
			t.finalByteForDcsHeader = b
			t.state = stDcsString
			return
		}
		emit(token{
			kind:          tokCsi,
			private:       t.csiPrivate,
			intermediates: t.csiIntermediates,
			params:        t.csiParams,
			final:         b,
		})
	default:
		// Unrecognized byte in a CSI sequence: treat as malformed and
		// abort, matching the overflow/abort handling spec.md §4.4
		// prescribes for degenerate input.
		t.state = stGround
		t.resetCsi()
		emit(token{kind: tokAbort})
	}
}

func (t *tokenizer) feedDcsHeader(b byte, emit func(token)) {
	t.feedCsi(b, emit)
}

func (t *tokenizer) feedStringByte(b byte, emit func(token), kind tokenKind) {
	switch b {
	case bel:
		t.state = stGround
		emit(token{kind: kind, data: t.stringBuf, final: 0})
	case esc:
		t.resumeState = t.stateForKind(kind)
		t.pendingKind = kind
		t.state = stStringEscape
	default:
		if len(t.stringBuf) >= t.bufLimit {
			t.state = stGround
			emit(token{kind: tokAbort})
			return
		}
		t.stringBuf = append(t.stringBuf, b)
	}
}

func (t *tokenizer) stateForKind(kind tokenKind) tokenizerState {
	switch kind {
	case tokOsc:
		return stOsc
	case tokDcs:
		return stDcsString
	case tokPm:
		return stPm
	case tokApc:
		return stApc
	}
	return stGround
}

func (t *tokenizer) feedStringEscape(b byte, emit func(token)) {
	if b == '\\' {
		t.state = stGround
		kind := t.pendingKind
		if kind == tokDcs {
			emit(token{
				kind:          tokDcs,
				private:       t.csiPrivate,
				intermediates: t.csiIntermediates,
				params:        t.csiParams,
				final:         t.finalByteForDcsHeader,
				data:          t.stringBuf,
			})
		} else {
			emit(token{kind: kind, data: t.stringBuf})
		}
		return
	}
	if b == esc {
		// ESC ESC inside a string: the first ESC aborts the string per
		// spec.md §8's "OSC payload interrupted by ESC not followed by
		// \\ aborts and reprocesses from the ESC"; move to stEscape so
		// this ESC itself starts a fresh escape.
		emit(token{kind: tokAbort})
		t.state = stEscape
		return
	}
	// Any other byte: the ESC did not introduce ST. Abort the string
	// and reprocess both the ESC (as a fresh Escape-state entry) and
	// this byte.
	emit(token{kind: tokAbort})
	t.state = stEscape
	t.feedEscape(b, emit)
}

// idle implements spec.md §4.4's idle() contract: a lone Escape with no
// follow-up byte flushes a synthetic EscPrefix(0); any other
// intermediate state is a no-op. A bare `ESC [` with no final byte
// (Open Question b) discards the partial CSI per SPEC_FULL.md §7.
func (t *tokenizer) idleFlush(emit func(token)) {
	switch t.state {
	case stEscape:
		t.state = stGround
		emit(token{kind: tokEscPrefix, b: 0})
	case stCsi:
		t.state = stGround
		t.resetCsi()
	}
}
