package vtio

import "github.com/charmbracelet/x/ansi/parser"

// ParamMissing marks a parameter position that was left empty, e.g. the
// first position in "CSI ;4m". Both CSI and DCS parameter scanning use this sentinel
// rather than 0, since 0 and "absent" mean different things for several
// descriptors (SGR 0 resets, a missing SGR parameter also defaults to 0,
// but e.g. a missing cursor-movement count defaults to 1).
const ParamMissing = parser.MissingParam

// Params is a parsed, semicolon/colon-delimited CSI or DCS parameter
// list. Each top-level parameter may itself carry colon-delimited
// sub-parameters (e.g. the Kitty "keycode:shifted:base" triple); Params
// stores both flattened.
type Params struct {
	// values holds one entry per top-level parameter. A parameter with
	// sub-parameters stores only its first (leading) value here.
	values []int
	// subs holds the sub-parameter lists in the same order as values;
	// subs[i] is nil when parameter i has no sub-parameters.
	subs [][]int
}

// Len reports the number of top-level parameters.
func (p Params) Len() int {
	return len(p.values)
}

// Param returns the value at index i, or def if i is out of range or the
// parameter at i was left empty.
func (p Params) Param(i, def int) int {
	if i < 0 || i >= len(p.values) {
		return def
	}
	if v := p.values[i]; v != ParamMissing {
		return v
	}
	return def
}

// HasParam reports whether index i is in range and was not left empty.
func (p Params) HasParam(i int) bool {
	return i >= 0 && i < len(p.values) && p.values[i] != ParamMissing
}

// Subparams returns the full colon-delimited group at index i, leading
// value first. It returns nil if i is out of range.
func (p Params) Subparams(i int) []int {
	if i < 0 || i >= len(p.values) {
		return nil
	}
	if len(p.subs[i]) > 0 {
		return p.subs[i]
	}
	return []int{p.values[i]}
}

// Subparam returns sub-position j of top-level parameter i, or def if
// either index is out of range or the value is empty.
func (p Params) Subparam(i, j int, def int) int {
	sub := p.Subparams(i)
	if j < 0 || j >= len(sub) {
		return def
	}
	if v := sub[j]; v != ParamMissing {
		return v
	}
	return def
}

// Range calls fn for each top-level parameter in order, passing its
// index, value (ParamMissing if empty), and whether more parameters
// follow. Range stops early if fn returns false. Grounded on
// ansi.CsiSequence.Range's iteration shape.
func (p Params) Range(fn func(i, value int, hasMore bool) bool) {
	for i, v := range p.values {
		if !fn(i, v, i < len(p.values)-1) {
			return
		}
	}
}

// decodeParams parses a raw CSI/DCS parameter byte string (everything
// between the introducer/private-marker and the first intermediate or
// final byte) into a Params value. It never returns an error: malformed
// numeric runs decode to ParamMissing, matching the teacher's
// permissive-scanner behavior (spec.md requires degrade-to-Unknown, not
// reject-the-byte-stream).
func decodeParams(raw []byte) Params {
	if len(raw) == 0 {
		return Params{}
	}

	var values []int
	var subs [][]int

	start := 0
	flushGroup := func(group []byte) {
		var groupValues []int
		gs := 0
		for gi := 0; gi <= len(group); gi++ {
			if gi == len(group) || group[gi] == ':' {
				groupValues = append(groupValues, parseParamInt(group[gs:gi]))
				gs = gi + 1
			}
		}
		values = append(values, groupValues[0])
		if len(groupValues) > 1 {
			subs = append(subs, groupValues)
		} else {
			subs = append(subs, nil)
		}
	}

	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ';' {
			flushGroup(raw[start:i])
			start = i + 1
		}
	}

	return Params{values: values, subs: subs}
}

// parseParamInt parses a single numeric parameter field. An empty field
// is ParamMissing; a non-numeric field also decodes to ParamMissing
// rather than erroring, per decodeParams's degrade-gracefully contract.
func parseParamInt(field []byte) int {
	if len(field) == 0 {
		return ParamMissing
	}
	n := 0
	for _, b := range field {
		if b < '0' || b > '9' {
			return ParamMissing
		}
		n = n*10 + int(b-'0')
		if n > 1<<30 {
			return ParamMissing
		}
	}
	return n
}
