package vtio

import "encoding/hex"

// XTVERSION reply: `DCS > | text ST`, grounded on bubbletea's da1.go
// handling of the sibling DA1/DA2 replies (same dispatch shape, just a
// string payload instead of numeric params).
func init() {
	err := registerDescriptors([]Descriptor{
		{
			Class:   classDCS,
			Private: '>',
			Final:   '|',
			Construct: func(_ Params, payload []byte) (TerminalInputEvent, bool) {
				return TerminalResponseEvent{Response: TerminalNameVersionReport{Text: string(payload)}}, true
			},
		},
		{
			// XTGETTCAP reply: `DCS 1 + r Pt ST` on success, `DCS 0 + r ST`
			// when nothing matched. Pt is `<hex name>=<hex value>`; only
			// the first requested capability is surfaced.
			Class:         classDCS,
			Intermediates: []byte("+"),
			Final:         'r',
			Construct: func(params Params, payload []byte) (TerminalInputEvent, bool) {
				if params.Param(0, 0) == 0 {
					return TerminalResponseEvent{Response: TermcapEntryReport{Found: false}}, true
				}
				name, value := splitTermcapEntry(payload)
				return TerminalResponseEvent{Response: TermcapEntryReport{
					Name:  name,
					Value: value,
					Found: true,
				}}, true
			},
		},
	})
	if err != nil {
		panic(err)
	}
}

func splitTermcapEntry(payload []byte) (name, value string) {
	eq := -1
	for i, b := range payload {
		if b == '=' {
			eq = i
			break
		}
	}
	if eq < 0 {
		return string(hexDecodeBestEffort(payload)), ""
	}
	return string(hexDecodeBestEffort(payload[:eq])), string(hexDecodeBestEffort(payload[eq+1:]))
}

func hexDecodeBestEffort(b []byte) []byte {
	out, err := hex.DecodeString(string(b))
	if err != nil {
		return b
	}
	return out
}
