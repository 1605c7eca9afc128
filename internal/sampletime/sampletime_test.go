package sampletime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func Test_Add_NoWrap(t *testing.T) {
	var start Time = 1000
	result, wrapped := start.Add(500)
	assert.Equal(t, Time(1500), result)
	assert.False(t, wrapped)
}

func Test_Add_Wraps(t *testing.T) {
	var start Time = 0xFFFFF000
	result, wrapped := start.Add(8192)
	assert.Equal(t, Time(0x00001000), result)
	assert.True(t, wrapped)
}

func Test_Add_WrapsWithArbitraryWindowSize(t *testing.T) {
	var start Time = 0xFFFFFFFF - (BufferSize / 2)
	end, wrapped := start.Add(BufferSize)
	assert.True(t, wrapped)
	assert.Equal(t, Time(BufferSize/2-1), end)
}

func Test_Add_PropertyMatchesUint32Arithmetic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := rapid.Uint32().Draw(t, "start")
		delta := rapid.Uint32().Draw(t, "delta")

		result, wrapped := Time(start).Add(delta)

		wantWrapped := uint64(start)+uint64(delta) > 0xFFFFFFFF
		assert.Equal(t, wantWrapped, wrapped)
		assert.Equal(t, uint32(start+delta), uint32(result))
	})
}
