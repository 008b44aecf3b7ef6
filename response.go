package vtio

// TerminalResponse is the payload of the TerminalResponse variant of
// TerminalInputEvent (spec.md §3). It is itself a small closed sum type,
// mirroring how bubbletea's da1.go/parse.go model each query reply as
// its own Msg type rather than one catch-all struct.
type TerminalResponse interface {
	isTerminalResponse()
}

// TerminalResponseEvent wraps a TerminalResponse as a TerminalInputEvent.
type TerminalResponseEvent struct {
	Response TerminalResponse
}

func (TerminalResponseEvent) isTerminalInputEvent() {}

// CursorPositionReport is the reply to a Device Status Report cursor
// position query (`CSI Ps n` with Ps=6 -> `CSI row ; col R`).
type CursorPositionReport struct {
	Row, Col int
}

func (CursorPositionReport) isTerminalResponse() {}

// DeviceAttributesReport is the reply to a Primary/Secondary/Tertiary
// Device Attributes query (`CSI ? Pc ; Pa ... c`, `CSI > ... c`,
// `CSI = ... c`), grounded on the teacher's da1.go.
type DeviceAttributesReport struct {
	// Tier is 1 for primary, 2 for secondary, 3 for tertiary.
	Tier   int
	Params []int
}

func (DeviceAttributesReport) isTerminalResponse() {}

// ModeReport is the reply to a DECRQM mode query (`CSI ? Ps ; Pm $y`).
type ModeReport struct {
	Mode  int
	Value ModeValue
}

func (ModeReport) isTerminalResponse() {}

// ModeValue is the DECRQM Pm value.
type ModeValue uint8

const (
	ModeNotRecognized ModeValue = iota
	ModeSet
	ModeReset
	ModePermanentlySet
	ModePermanentlyReset
)

// KittyKeyboardFlags is the bitset spec.md §4.5 defines for the Kitty
// keyboard-flags report (`CSI ? flags u`) and for the push command
// (`CSI > flags u`).
type KittyKeyboardFlags uint8

const (
	KittyDisambiguateEscapeCodes KittyKeyboardFlags = 1 << iota
	KittyReportEventTypes
	KittyReportAlternateKeys
	KittyReportAllKeysAsEscapeCodes
	KittyReportAssociatedText
)

// KittyKeyboardFlagsReport is the reply to `CSI ? u`.
type KittyKeyboardFlagsReport struct {
	Flags KittyKeyboardFlags
}

func (KittyKeyboardFlagsReport) isTerminalResponse() {}

// ColorResponse is the reply to an OSC 10 (foreground), 11 (background),
// 4 (palette entry) or 12 (cursor color) query.
type ColorResponse struct {
	// Which is 10, 11, 12, or 4.
	Which int
	// Index is the palette index for Which==4; zero otherwise.
	Index int
	R, G, B uint16
}

func (ColorResponse) isTerminalResponse() {}

// WorkingDirectoryReport is the OSC 7 "current working directory"
// notification, delivered as a file:// URI per the de facto OSC 7
// convention both shells and terminals follow.
type WorkingDirectoryReport struct {
	URI string
}

func (WorkingDirectoryReport) isTerminalResponse() {}

// ShellIntegrationReport is an OSC 133 shell-integration mark (A=prompt
// start, B=command start, C=command executed, D=command finished).
type ShellIntegrationReport struct {
	Mark     byte
	ExitCode int
	HasExit  bool
}

func (ShellIntegrationReport) isTerminalResponse() {}

// DeviceStatusReport is the reply to a generic Device Status Report
// query (`CSI Ps n`) other than the cursor-position form, which gets
// its own CursorPositionReport type.
type DeviceStatusReport struct {
	Code int
}

func (DeviceStatusReport) isTerminalResponse() {}

// TerminalNameVersionReport is the reply to an XTVERSION query
// (`DCS > | text ST`), carrying the terminal's self-reported name and
// version string verbatim.
type TerminalNameVersionReport struct {
	Text string
}

func (TerminalNameVersionReport) isTerminalResponse() {}

// TermcapEntryReport is one reply to an XTGETTCAP query
// (`DCS 1 + r Pt ST` on success, `DCS 0 + r ST` if nothing matched). Name
// and Value are already hex-decoded; Found is false for the `0+r` form.
type TermcapEntryReport struct {
	Name  string
	Value string
	Found bool
}

func (TermcapEntryReport) isTerminalResponse() {}
