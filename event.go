package vtio

// TerminalInputEvent is the sum type spec.md §3 describes as a tagged
// union. Each concrete event type implements the unexported marker
// method so the set of variants stays closed to this package, the same
// pattern tcell uses for its Event interface family (EventKey,
// EventMouse, EventPaste, ...).
type TerminalInputEvent interface {
	isTerminalInputEvent()
}

// FocusEvent reports a terminal focus-in/focus-out notification
// (`CSI I` / `CSI O`).
type FocusEvent struct {
	Gained bool
}

func (FocusEvent) isTerminalInputEvent() {}

// PasteEvent is the collapsed form of a bracketed paste: spec.md §3
// allows either a Start/Data/End triple or one aggregate event. This
// module emits the aggregate by default (see WithStreamingPaste)
// and the triple when streaming mode is requested.
type PasteEvent struct {
	Text []byte
}

func (PasteEvent) isTerminalInputEvent() {}

// PasteStartEvent and PasteEndEvent are emitted instead of PasteEvent
// when the parser is configured for streaming paste delivery.
type PasteStartEvent struct{}

func (PasteStartEvent) isTerminalInputEvent() {}

type PasteDataEvent struct {
	Data []byte
}

func (PasteDataEvent) isTerminalInputEvent() {}

type PasteEndEvent struct{}

func (PasteEndEvent) isTerminalInputEvent() {}

// ResizeEvent reports a terminal window size change. The tokenizer
// itself never produces this (window size arrives via SIGWINCH or an
// OS-specific ioctl, outside the byte stream); it exists in the event
// taxonomy so a caller's resize signal handler can inject one through
// the same sink as every other event, per spec.md §3.
type ResizeEvent struct {
	Cols, Rows int
}

func (ResizeEvent) isTerminalInputEvent() {}

// UnknownEvent preserves a recognized-class but undecodable frame
// verbatim, per spec.md §9's "never silently drop" design note.
type UnknownEvent struct {
	Raw []byte
}

func (UnknownEvent) isTerminalInputEvent() {}

// InvalidUTF8Event is the recovery event for a malformed UTF-8 lead or
// continuation byte. Per SPEC_FULL.md §7 (Open Question a), this
// replaces the teacher-era fallthrough-to-Ctrl+L behavior with a
// distinctly typed event.
type InvalidUTF8Event struct {
	Byte byte
}

func (InvalidUTF8Event) isTerminalInputEvent() {}
