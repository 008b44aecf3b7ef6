package vtio

import (
	"strconv"
	"strings"

	"github.com/geldata/vtio/x11color"
)

// oscDescriptorKey builds the registry key for an OSC command number.
// OSC descriptors have no private marker or final byte in the CSI
// sense; the command digits themselves occupy the Intermediates slot so
// the same trie that dispatches CSI/SS3 descriptors also dispatches OSC
// ones, per spec.md §4.5 ("dispatch by number through the trie").
func oscDescriptorKey(command int) Descriptor {
	return Descriptor{
		Class:         classOSC,
		Intermediates: []byte(strconv.Itoa(command)),
		Final:         0,
	}
}

// OSC 10/11/12: foreground/background/cursor color query reply.
// Payload is "rgb:RRRR/GGGG/BBBB", "#RRGGBB", or a bare X11 name.
func init() {
	which := []int{10, 11, 12}
	var ds []Descriptor
	for _, w := range which {
		w := w
		d := oscDescriptorKey(w)
		d.Construct = func(params Params, raw []byte) (TerminalInputEvent, bool) {
			c, err := x11color.Parse(string(raw))
			if err != nil {
				return nil, false
			}
			return TerminalResponseEvent{Response: ColorResponse{
				Which: w, R: c.R, G: c.G, B: c.B,
			}}, true
		}
		ds = append(ds, d)
	}
	if err := registerDescriptors(ds); err != nil {
		panic(err)
	}
}

// OSC 4: indexed palette-entry color query reply, payload
// "index;rgb:RRRR/GGGG/BBBB".
func init() {
	d := oscDescriptorKey(4)
	d.Construct = func(params Params, raw []byte) (TerminalInputEvent, bool) {
		parts := strings.SplitN(string(raw), ";", 2)
		if len(parts) != 2 {
			return nil, false
		}
		idx, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, false
		}
		c, err := x11color.Parse(parts[1])
		if err != nil {
			return nil, false
		}
		return TerminalResponseEvent{Response: ColorResponse{
			Which: 4, Index: idx, R: c.R, G: c.G, B: c.B,
		}}, true
	}
	if err := registerDescriptors([]Descriptor{d}); err != nil {
		panic(err)
	}
}

// OSC 7: current working directory notification, payload a file:// URI.
func init() {
	d := oscDescriptorKey(7)
	d.Construct = func(params Params, raw []byte) (TerminalInputEvent, bool) {
		return TerminalResponseEvent{Response: WorkingDirectoryReport{URI: string(raw)}}, true
	}
	if err := registerDescriptors([]Descriptor{d}); err != nil {
		panic(err)
	}
}

// OSC 133: shell-integration marks. Payload is "A", "B", "C", or
// "D[;exit-code]".
func init() {
	d := oscDescriptorKey(133)
	d.Construct = func(params Params, raw []byte) (TerminalInputEvent, bool) {
		if len(raw) == 0 {
			return nil, false
		}
		rep := ShellIntegrationReport{Mark: raw[0]}
		if raw[0] == 'D' {
			rest := raw[1:]
			rest = []byte(strings.TrimPrefix(string(rest), ";"))
			if len(rest) > 0 {
				if code, err := strconv.Atoi(string(rest)); err == nil {
					rep.ExitCode = code
					rep.HasExit = true
				}
			}
		}
		return TerminalResponseEvent{Response: rep}, true
	}
	if err := registerDescriptors([]Descriptor{d}); err != nil {
		panic(err)
	}
}
