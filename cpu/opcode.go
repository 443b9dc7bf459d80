package cpu

import (
	"fmt"
)

// CodeOp is the operation selected by the upper nibble of an instruction.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_ADD_A   = CodeOp(0x0) // add.a
	OP_MOV_B2A = CodeOp(0x1) // mov.a.b
	OP_IN_A    = CodeOp(0x2) // in.a
	OP_MOV_A   = CodeOp(0x3) // mov.a
	OP_MOV_A2B = CodeOp(0x4) // mov.b.a
	OP_ADD_B   = CodeOp(0x5) // add.b
	OP_IN_B    = CodeOp(0x6) // in.b
	OP_MOV_B   = CodeOp(0x7) // mov.b
	OP_OUT_B   = CodeOp(0x9) // out.b
	OP_OUT_IM  = CodeOp(0xb) // out
	OP_JNC     = CodeOp(0xe) // jnc
	OP_JMP     = CodeOp(0xf) // jmp
)

// IMM_MASK is the mask of the immediate field of an instruction.
const IMM_MASK = 0xf

// Valid returns true if the operation is assigned.
func (op CodeOp) Valid() bool {
	switch op {
	case OP_ADD_A, OP_MOV_B2A, OP_IN_A, OP_MOV_A,
		OP_MOV_A2B, OP_ADD_B, OP_IN_B, OP_MOV_B,
		OP_OUT_B, OP_OUT_IM, OP_JNC, OP_JMP:
		return true
	}
	return false
}

// Immediate returns true if the operation uses the immediate field.
func (op CodeOp) Immediate() bool {
	switch op {
	case OP_ADD_A, OP_ADD_B, OP_MOV_A, OP_MOV_B, OP_OUT_IM, OP_JNC, OP_JMP:
		return true
	}
	return false
}

// Jump returns true if the operation may load the PC from its immediate.
func (op CodeOp) Jump() bool {
	return op == OP_JMP || op == OP_JNC
}

// Code is a single raw instruction byte.
type Code uint8

// MakeCode creates an instruction byte from an operation and immediate.
func MakeCode(op CodeOp, imm uint8) Code {
	return Code((uint8(op)&0xf)<<4 | (imm & IMM_MASK))
}

// Op returns the operation field of the instruction.
func (code Code) Op() CodeOp {
	return CodeOp(code >> 4)
}

// Imm returns the immediate field of the instruction.
func (code Code) Imm() uint8 {
	return uint8(code) & IMM_MASK
}

// Instruction is a decoded instruction.
type Instruction struct {
	Op  CodeOp
	Imm uint8 // Zero for operations without an immediate.
}

// Decode an instruction byte.
//
// The immediate field of an operation that does not use it is discarded.
func Decode(code Code) (inst Instruction, err error) {
	op := code.Op()

	switch op {
	case OP_ADD_A, OP_ADD_B, OP_MOV_A, OP_MOV_B, OP_OUT_IM, OP_JNC, OP_JMP:
		inst = Instruction{Op: op, Imm: code.Imm()}
	case OP_MOV_B2A, OP_MOV_A2B, OP_IN_A, OP_IN_B, OP_OUT_B:
		inst = Instruction{Op: op}
	default:
		err = ErrOpcode(code)
	}

	return
}

// Code returns the encoding of the instruction.
func (inst Instruction) Code() Code {
	return MakeCode(inst.Op, inst.Imm)
}

// String returns the assembly language representation of the instruction.
func (inst Instruction) String() string {
	switch inst.Op {
	case OP_ADD_A:
		return fmt.Sprintf("add a, %d", inst.Imm)
	case OP_ADD_B:
		return fmt.Sprintf("add b, %d", inst.Imm)
	case OP_MOV_A:
		return fmt.Sprintf("mov a, %d", inst.Imm)
	case OP_MOV_B:
		return fmt.Sprintf("mov b, %d", inst.Imm)
	case OP_MOV_B2A:
		return "mov a, b"
	case OP_MOV_A2B:
		return "mov b, a"
	case OP_IN_A:
		return "in a"
	case OP_IN_B:
		return "in b"
	case OP_OUT_B:
		return "out b"
	case OP_OUT_IM:
		return fmt.Sprintf("out %d", inst.Imm)
	case OP_JNC:
		return fmt.Sprintf("jnc %d", inst.Imm)
	case OP_JMP:
		return fmt.Sprintf("jmp %d", inst.Imm)
	}

	return fmt.Sprintf(".byte %#02x", uint8(inst.Code()))
}
