package cpu

import (
	"fmt"
)

// PC_END is the PC value past the last addressable program byte.
const PC_END = 16

// Register is the TD4 register file.
//
// Every mutator masks its argument, so the registers always hold 4-bit
// values, and the carry a 1-bit value.
type Register struct {
	a     uint8
	b     uint8
	carry uint8
	pc    uint8
}

func (reg *Register) A() uint8 {
	return reg.a
}

func (reg *Register) SetA(value uint8) {
	reg.a = value & 0xf
}

func (reg *Register) B() uint8 {
	return reg.b
}

func (reg *Register) SetB(value uint8) {
	reg.b = value & 0xf
}

func (reg *Register) Carry() uint8 {
	return reg.carry
}

func (reg *Register) SetCarry(value uint8) {
	reg.carry = value & 1
}

// Pc returns the program counter, in the range 0..PC_END.
func (reg *Register) Pc() uint8 {
	return reg.pc
}

// SetPc sets the program counter to a 4-bit jump target.
func (reg *Register) SetPc(value uint8) {
	reg.pc = value & 0xf
}

// IncrementPc advances the program counter, stopping at PC_END.
func (reg *Register) IncrementPc() {
	if reg.pc < PC_END {
		reg.pc++
	}
}

// Reset zeros all registers.
func (reg *Register) Reset() {
	*reg = Register{}
}

// String returns the register file as a single line.
func (reg Register) String() string {
	return fmt.Sprintf("pc:%02d a:%04b b:%04b c:%d", reg.pc, reg.a, reg.b, reg.carry)
}
