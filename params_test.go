package vtio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeParamsBasic(t *testing.T) {
	p := decodeParams([]byte("1;2;3"))
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 1, p.Param(0, 0))
	assert.Equal(t, 2, p.Param(1, 0))
	assert.Equal(t, 3, p.Param(2, 0))
}

func TestDecodeParamsEmptyIsMissing(t *testing.T) {
	p := decodeParams([]byte(""))
	assert.Equal(t, 0, p.Len())
}

func TestDecodeParamsWithEmptyFields(t *testing.T) {
	p := decodeParams([]byte(";4"))
	assert.Equal(t, 2, p.Len())
	assert.False(t, p.HasParam(0))
	assert.Equal(t, 9, p.Param(0, 9))
	assert.True(t, p.HasParam(1))
	assert.Equal(t, 4, p.Param(1, 0))
}

func TestDecodeParamsSubparams(t *testing.T) {
	// Kitty CSI-u keycode:shifted:base
	p := decodeParams([]byte("97:65:97;2"))
	assert.Equal(t, 2, p.Len())
	sub := p.Subparams(0)
	assert.Equal(t, []int{97, 65, 97}, sub)
	assert.Equal(t, 97, p.Subparam(0, 0, 0))
	assert.Equal(t, 65, p.Subparam(0, 1, 0))
	assert.Equal(t, 97, p.Subparam(0, 2, 0))
	assert.Equal(t, 2, p.Param(1, 0))
}

func TestDecodeParamsNonNumericDegradesToMissing(t *testing.T) {
	p := decodeParams([]byte("12;ab;3"))
	assert.Equal(t, 12, p.Param(0, 0))
	assert.False(t, p.HasParam(1))
	assert.Equal(t, 3, p.Param(2, 0))
}

func TestParamsRangeVisitsInOrder(t *testing.T) {
	p := decodeParams([]byte("1;2;3"))
	var seen []int
	p.Range(func(i, v int, hasMore bool) bool {
		seen = append(seen, v)
		return true
	})
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestParamsRangeStopsEarly(t *testing.T) {
	p := decodeParams([]byte("1;2;3"))
	var seen []int
	p.Range(func(i, v int, hasMore bool) bool {
		seen = append(seen, v)
		return i < 1
	})
	assert.Equal(t, []int{1, 2}, seen)
}

func TestParamsOutOfRangeReturnsDefault(t *testing.T) {
	p := decodeParams([]byte("1"))
	assert.Equal(t, 42, p.Param(5, 42))
	assert.Nil(t, p.Subparams(5))
	assert.Equal(t, 7, p.Subparam(5, 0, 7))
}
