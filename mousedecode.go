package vtio

// x10MousePendingEvent is an internal sentinel Construct for the bare
// `CSI M` introducer returns. X10 mouse reports encode their three data
// bytes raw, immediately after the final byte, rather than as CSI
// parameters — so the CSI frame itself carries no parameters and the
// parser façade must consume the next three bytes directly instead of
// re-tokenizing them. Grounded on the teacher's parseX10MouseEvent,
// which likewise reads three raw bytes following a recognized `\x1b[M`
// prefix instead of treating them as further escape-sequence input.
type x10MousePendingEvent struct{}

func (x10MousePendingEvent) isTerminalInputEvent() {}

func init() {
	d := Descriptor{
		Class: classCSI,
		Final: 'M',
		Construct: func(params Params, raw []byte) (TerminalInputEvent, bool) {
			if params.Len() != 0 {
				// Has parameters: not the bare X10 introducer. No
				// other plain (non-SGR) CSI...M descriptor exists, so
				// this is genuinely unrecognized.
				return nil, false
			}
			return x10MousePendingEvent{}, true
		},
	}
	if err := registerDescriptors([]Descriptor{d}); err != nil {
		panic(err)
	}
}

// decodeX10Mouse decodes the three raw data bytes following `CSI M`,
// per spec.md §4.5: button = (b1-32)&3 plus modifier/motion/scroll bits,
// coordinates = b2-32, b3-32 clamped to >= 1.
func decodeX10Mouse(b1, b2, b3 byte) MouseEvent {
	code := int(b1) - 32
	btn, kind := decodeMouseButtonBits(code)
	mods := decodeMouseModifiers(code)
	col := int(b2) - 32
	if col < 1 {
		col = 1
	}
	row := int(b3) - 32
	if row < 1 {
		row = 1
	}
	return MouseEvent{Kind: kind, Button: btn, Column: col, Row: row, Modifiers: mods}
}
