package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Opcode represents a line of assembled code with its source location and generated instruction.
type Opcode struct {
	LineNo    int
	Ip        int
	Words     []string
	Code      Code
	LinkLabel string
}

// Program is an assembled listing.
type Program struct {
	Opcodes []Opcode
}

// Disassemble creates a program listing from a raw program image.
// Each byte is given a line number of its address plus one.
func Disassemble(data []uint8) (prog *Program) {
	prog = &Program{}
	for ip, value := range data {
		code := Code(value)
		text := fmt.Sprintf(".byte %#02x", value)
		inst, err := Decode(code)
		if err == nil {
			text = inst.String()
		}
		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo: ip + 1,
			Ip:     ip,
			Words:  strings.Fields(strings.ReplaceAll(text, ",", "")),
			Code:   code,
		})
	}

	return
}

// Debug returns the opcode at the ip, or nil if there is none.
func (prog *Program) Debug(ip uint8) (op *Opcode) {
	for n := range prog.Opcodes {
		if prog.Opcodes[n].Ip == int(ip) {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Len returns the number of bytes in the program.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// Binary returns the program image.
func (prog *Program) Binary() (bins []uint8) {
	for _, code := range prog.Codes() {
		bins = append(bins, uint8(code))
	}

	return
}

// Codes iterates over the ip and code of each opcode.
func (prog *Program) Codes() iter.Seq2[uint8, Code] {
	return func(yield func(ip uint8, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(uint8(op.Ip), op.Code) {
				return
			}
		}
	}
}

// String returns an address, hex, and source listing of the program.
func (prog *Program) String() string {
	var sb strings.Builder
	for _, op := range prog.Opcodes {
		fmt.Fprintf(&sb, "%x: %02x %08b  %v\n", op.Ip, uint8(op.Code), uint8(op.Code), strings.Join(op.Words, " "))
	}
	return sb.String()
}
