package vtio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectEvents(t *testing.T, input []byte, opts ...ParserOption) []TerminalInputEvent {
	p, err := NewParser(opts...)
	require.NoError(t, err)
	var events []TerminalInputEvent
	p.FeedWith(input, func(ev TerminalInputEvent) { events = append(events, ev) })
	p.Idle(func(ev TerminalInputEvent) { events = append(events, ev) })
	return events
}

func TestScenarioArrowUp(t *testing.T) {
	events := collectEvents(t, []byte("\x1b[A"))
	require.Len(t, events, 1)
	key := events[0].(KeyEvent)
	assert.Equal(t, NamedKeyCode(KeyUp), key.Code)
	assert.Equal(t, Modifiers(0), key.Modifiers)
	assert.Equal(t, KeyPress, key.Kind)
}

func TestScenarioCtrlArrowUp(t *testing.T) {
	events := collectEvents(t, []byte("\x1b[1;5A"))
	require.Len(t, events, 1)
	key := events[0].(KeyEvent)
	assert.Equal(t, NamedKeyCode(KeyUp), key.Code)
	assert.Equal(t, ModCtrl, key.Modifiers)
}

func TestScenarioKittyCtrlShiftARelease(t *testing.T) {
	events := collectEvents(t, []byte("\x1b[97;6:3u"))
	require.Len(t, events, 1)
	key := events[0].(KeyEvent)
	assert.Equal(t, CharKey('a'), key.Code)
	assert.Equal(t, ModCtrl|ModShift, key.Modifiers)
	assert.Equal(t, KeyRelease, key.Kind)
}

func TestScenarioSGRMouseClick(t *testing.T) {
	events := collectEvents(t, []byte("\x1b[<0;10;5M\x1b[<0;10;5m"))
	require.Len(t, events, 2)
	down := events[0].(MouseEvent)
	up := events[1].(MouseEvent)
	assert.Equal(t, MouseDown, down.Kind)
	assert.Equal(t, ButtonLeft, down.Button.Kind)
	assert.Equal(t, 10, down.Column)
	assert.Equal(t, 5, down.Row)
	assert.Equal(t, MouseUp, up.Kind)
}

func TestScenarioBracketedPasteAggregate(t *testing.T) {
	events := collectEvents(t, []byte("\x1b[200~hello\x1b[201~"))
	require.Len(t, events, 1)
	paste := events[0].(PasteEvent)
	assert.Equal(t, "hello", string(paste.Text))
}

func TestScenarioBracketedPasteStreaming(t *testing.T) {
	events := collectEvents(t, []byte("\x1b[200~hello\x1b[201~"), WithStreamingPaste())
	require.Len(t, events, 3)
	_, isStart := events[0].(PasteStartEvent)
	assert.True(t, isStart)
	data := events[1].(PasteDataEvent)
	assert.Equal(t, "hello", string(data.Data))
	_, isEnd := events[2].(PasteEndEvent)
	assert.True(t, isEnd)
}

func TestScenarioPasteContentsNotReinterpreted(t *testing.T) {
	// An ESC sequence inside an open paste must not be decoded as CSI.
	events := collectEvents(t, []byte("\x1b[200~before\x1b[Aafter\x1b[201~"))
	require.Len(t, events, 1)
	paste := events[0].(PasteEvent)
	assert.Equal(t, "before\x1b[Aafter", string(paste.Text))
}

func TestScenarioPasteWatchdogFlushesInChunksUnderSmallWindow(t *testing.T) {
	// With the watchdog set to 1 (raised to the 5 bytes a partial
	// terminator can occupy), data that can't still be part of an
	// unfinished terminator match is flushed well before the paste ends,
	// so an 11-byte payload arrives as more than one PasteDataEvent.
	events := collectEvents(t, []byte("\x1b[200~helloworld!\x1b[201~"), WithStreamingPaste(), WithPasteWatchdog(1))
	require.True(t, len(events) > 3, "expected multiple PasteDataEvent chunks, got %d events", len(events))

	var assembled []byte
	var sawStart, sawEnd bool
	for _, ev := range events {
		switch e := ev.(type) {
		case PasteStartEvent:
			sawStart = true
		case PasteDataEvent:
			assembled = append(assembled, e.Data...)
		case PasteEndEvent:
			sawEnd = true
		}
	}
	assert.True(t, sawStart)
	assert.True(t, sawEnd)
	assert.Equal(t, "helloworld!", string(assembled))
}

func TestScenarioPasteWatchdogAggregateUnaffectedBySmallWindow(t *testing.T) {
	// The collapsed (non-streaming) PasteEvent must carry the full text
	// regardless of how small the watchdog window is.
	events := collectEvents(t, []byte("\x1b[200~helloworld!\x1b[201~"), WithPasteWatchdog(1))
	require.Len(t, events, 1)
	paste := events[0].(PasteEvent)
	assert.Equal(t, "helloworld!", string(paste.Text))
}

func TestScenarioKittyFlagsReport(t *testing.T) {
	events := collectEvents(t, []byte("\x1b[?5u"))
	require.Len(t, events, 1)
	resp := events[0].(TerminalResponseEvent).Response.(KittyKeyboardFlagsReport)
	assert.Equal(t, KittyDisambiguateEscapeCodes|KittyReportAlternateKeys, resp.Flags)
}

func TestScenarioLoneEscapeThenIdleIsEscapeKey(t *testing.T) {
	events := collectEvents(t, []byte{0x1b})
	require.Len(t, events, 1)
	key := events[0].(KeyEvent)
	assert.Equal(t, NamedKeyCode(KeyEscape), key.Code)
}

func TestScenarioLoneEscapeThenPrintableIsAltKey(t *testing.T) {
	events := collectEvents(t, []byte("\x1ba"))
	require.Len(t, events, 1)
	key := events[0].(KeyEvent)
	assert.Equal(t, CharKey('a'), key.Code)
	assert.Equal(t, ModAlt, key.Modifiers)
}

func TestScenarioEscEscThenIdleIsTwoEscapeKeys(t *testing.T) {
	events := collectEvents(t, []byte{0x1b, 0x1b})
	require.Len(t, events, 2)
	for _, ev := range events {
		key := ev.(KeyEvent)
		assert.Equal(t, NamedKeyCode(KeyEscape), key.Code)
	}
}

func TestScenarioChunkingInvarianceOneBytePerFeedCall(t *testing.T) {
	input := []byte("\x1b[1;5Aabc\x1b[<0;10;5M\x1b[<0;10;5m")

	whole := collectEvents(t, input)

	p, err := NewParser()
	require.NoError(t, err)
	var split []TerminalInputEvent
	sink := func(ev TerminalInputEvent) { split = append(split, ev) }
	for _, b := range input {
		p.FeedWith([]byte{b}, sink)
	}
	p.Idle(sink)

	require.Equal(t, len(whole), len(split))
	for i := range whole {
		assert.Equal(t, whole[i], split[i])
	}
}

func TestScenarioDecodeBufferConvenience(t *testing.T) {
	events, err := DecodeBuffer([]byte("\x1b[A"))
	require.NoError(t, err)
	require.Len(t, events, 1)
	_, ok := events[0].(KeyEvent)
	assert.True(t, ok)
}

func TestIdleDiscardsPartialCsiSequence(t *testing.T) {
	p, err := NewParser()
	require.NoError(t, err)
	var events []TerminalInputEvent
	sink := func(ev TerminalInputEvent) { events = append(events, ev) }
	p.FeedWith([]byte("\x1b["), sink)
	p.Idle(sink)
	assert.Empty(t, events)
}

// TestEveryByteIsAccountedFor exercises spec.md §8 invariant 3: plain
// text, a recognized sequence, and an unrecognized sequence all produce
// an event rather than disappearing silently. Recognized input becomes
// one event per unit (one Print per rune, one Key per CSI frame);
// unrecognized input surfaces as an UnknownEvent carrying its raw bytes
// back out rather than being swallowed.
func TestEveryByteIsAccountedFor(t *testing.T) {
	events := collectEvents(t, []byte("hi\x1b[A\x1b[9Z"))
	require.Len(t, events, 4)

	h := events[0].(KeyEvent)
	assert.Equal(t, CharKey('h'), h.Code)
	i := events[1].(KeyEvent)
	assert.Equal(t, CharKey('i'), i.Code)

	up := events[2].(KeyEvent)
	assert.Equal(t, NamedKeyCode(KeyUp), up.Code)

	unk := events[3].(UnknownEvent)
	assert.Equal(t, []byte("\x1b[9Z"), unk.Raw)
}
