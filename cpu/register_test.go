package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	assert := assert.New(t)

	reg := Register{}
	assert.Equal(uint8(0), reg.A())
	assert.Equal(uint8(0), reg.B())
	assert.Equal(uint8(0), reg.Carry())
	assert.Equal(uint8(0), reg.Pc())

	reg.SetA(0x5)
	reg.SetB(0xa)
	reg.SetCarry(1)
	reg.SetPc(0x9)
	assert.Equal(uint8(0x5), reg.A())
	assert.Equal(uint8(0xa), reg.B())
	assert.Equal(uint8(1), reg.Carry())
	assert.Equal(uint8(0x9), reg.Pc())
	assert.Equal("pc:09 a:0101 b:1010 c:1", reg.String())

	reg.Reset()
	assert.Equal(Register{}, reg)
}

func TestRegister_Mask(t *testing.T) {
	assert := assert.New(t)

	reg := Register{}
	reg.SetA(0x1f)
	reg.SetB(0xf3)
	reg.SetCarry(2)
	reg.SetPc(0x12)

	assert.Equal(uint8(0xf), reg.A())
	assert.Equal(uint8(0x3), reg.B())
	assert.Equal(uint8(0), reg.Carry())
	assert.Equal(uint8(0x2), reg.Pc())
}

func TestRegister_IncrementPc(t *testing.T) {
	assert := assert.New(t)

	reg := Register{}
	for n := range PC_END {
		assert.Equal(uint8(n), reg.Pc())
		reg.IncrementPc()
	}
	assert.Equal(uint8(PC_END), reg.Pc())

	// Saturates past the end of memory.
	reg.IncrementPc()
	assert.Equal(uint8(PC_END), reg.Pc())
}
