// Package x11color parses the color payloads terminals send in reply to
// OSC 10/11/12/4 queries: the XParseColor "rgb:RRRR/GGGG/BBBB" form,
// "#RRGGBB", and the bare X11 color names a handful of terminals still
// echo back verbatim.
package x11color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a parsed color at 16-bit-per-channel resolution, the
// precision XParseColor's "rgb:RRRR/GGGG/BBBB" form carries.
type Color struct {
	R, G, B uint16
}

// Parse decodes s, trying the rgb: form (parsed here) and the # form (via
// go-colorful) first and falling back to the X11 bare-name table.
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("x11color: empty payload")
	}

	if strings.HasPrefix(s, "rgb:") {
		return parseRGBColon(s[len("rgb:"):])
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("x11color: %w", err)
		}
		return fromColorful(c), nil
	}
	if rgb, ok := x11Names[strings.ToLower(s)]; ok {
		return rgb, nil
	}
	return Color{}, fmt.Errorf("x11color: unrecognized color payload %q", s)
}

// parseRGBColon parses the XParseColor "RRRR/GGGG/BBBB" body (each
// field 1-4 hex digits, independently scaled to 16 bits).
func parseRGBColon(body string) (Color, error) {
	parts := strings.Split(body, "/")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("x11color: malformed rgb: payload %q", body)
	}
	var out [3]uint16
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 16, 64)
		if err != nil {
			return Color{}, fmt.Errorf("x11color: bad hex field %q: %w", p, err)
		}
		out[i] = scaleToUint16(uint32(v), len(p))
	}
	return Color{R: out[0], G: out[1], B: out[2]}, nil
}

// scaleToUint16 scales a value expressed in nhex hex digits up to the
// full 16-bit range, matching XParseColor's documented behavior: a
// short field isn't just zero-padded, it's scaled as if its digits were
// replicated out to four (so "f" means 0xffff, not 0xf000).
func scaleToUint16(v uint32, nhex int) uint16 {
	bits := uint(nhex * 4)
	maxVal := uint64(1)<<bits - 1
	if maxVal == 0 {
		return 0
	}
	return uint16(uint64(v) * 65535 / maxVal)
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.R, c.G, c.B
	return Color{
		R: uint16(r * 65535),
		G: uint16(g * 65535),
		B: uint16(b * 65535),
	}
}

// RGB24 downsamples to the 8-bit-per-channel form most callers want.
func (c Color) RGB24() (r, g, b uint8) {
	return uint8(c.R >> 8), uint8(c.G >> 8), uint8(c.B >> 8)
}
