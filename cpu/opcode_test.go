package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var assignedOps = []CodeOp{
	OP_ADD_A, OP_MOV_B2A, OP_IN_A, OP_MOV_A,
	OP_MOV_A2B, OP_ADD_B, OP_IN_B, OP_MOV_B,
	OP_OUT_B, OP_OUT_IM, OP_JNC, OP_JMP,
}

var unassignedOps = []CodeOp{0x8, 0xa, 0xc, 0xd}

func TestDecode_Assigned(t *testing.T) {
	assert := assert.New(t)

	for _, op := range assignedOps {
		assert.True(op.Valid(), op.String())
		for imm := range uint8(16) {
			code := MakeCode(op, imm)
			inst, err := Decode(code)
			assert.NoError(err, "%02x", uint8(code))
			assert.Equal(op, inst.Op)
			if op.Immediate() {
				assert.Equal(imm, inst.Imm, "%02x", uint8(code))
			} else {
				assert.Equal(uint8(0), inst.Imm, "%02x", uint8(code))
			}
		}
	}
}

func TestDecode_Unassigned(t *testing.T) {
	assert := assert.New(t)

	for _, op := range unassignedOps {
		assert.False(op.Valid())
		for imm := range uint8(16) {
			code := MakeCode(op, imm)
			_, err := Decode(code)
			assert.ErrorIs(err, ErrOpcodeDecode, "%02x", uint8(code))
			assert.Equal(ErrOpcode(code), err)
		}
	}
}

func TestDecode_Table(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code Code
		inst Instruction
		text string
	}){
		{0x00, Instruction{OP_ADD_A, 0}, "add a, 0"},
		{0x1f, Instruction{OP_MOV_B2A, 0}, "mov a, b"},
		{0x20, Instruction{OP_IN_A, 0}, "in a"},
		{0x3f, Instruction{OP_MOV_A, 15}, "mov a, 15"},
		{0x40, Instruction{OP_MOV_A2B, 0}, "mov b, a"},
		{0x51, Instruction{OP_ADD_B, 1}, "add b, 1"},
		{0x60, Instruction{OP_IN_B, 0}, "in b"},
		{0x7a, Instruction{OP_MOV_B, 10}, "mov b, 10"},
		{0x95, Instruction{OP_OUT_B, 0}, "out b"},
		{0xb5, Instruction{OP_OUT_IM, 5}, "out 5"},
		{0xe3, Instruction{OP_JNC, 3}, "jnc 3"},
		{0xf0, Instruction{OP_JMP, 0}, "jmp 0"},
	}

	for _, entry := range table {
		inst, err := Decode(entry.code)
		assert.NoError(err)
		assert.Equal(entry.inst, inst, entry.text)
		assert.Equal(entry.text, inst.String())
	}
}

func TestCodeOp_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("add.a", OP_ADD_A.String())
	assert.Equal("mov.a.b", OP_MOV_B2A.String())
	assert.Equal("mov.b.a", OP_MOV_A2B.String())
	assert.Equal("out.b", OP_OUT_B.String())
	assert.Equal("out", OP_OUT_IM.String())
	assert.Equal("jmp", OP_JMP.String())
	assert.Equal("CodeOp(8)", CodeOp(8).String())
}

func TestCode(t *testing.T) {
	assert := assert.New(t)

	code := MakeCode(OP_JNC, 0x1a)
	assert.Equal(Code(0xea), code, "immediate is masked")
	assert.Equal(OP_JNC, code.Op())
	assert.Equal(uint8(0xa), code.Imm())

	inst := Instruction{Op: OP_OUT_IM, Imm: 7}
	assert.Equal(Code(0xb7), inst.Code())
}

func TestErrOpcode(t *testing.T) {
	assert := assert.New(t)

	err := ErrOpcode(0xc3)
	assert.Equal("bad opcode 0xc3", err.Error())
	assert.True(errors.Is(err, ErrOpcodeDecode))
	assert.True(errors.Is(err, ErrOpcode(0)))
	assert.False(errors.Is(err, ErrImmediateRange))
}
