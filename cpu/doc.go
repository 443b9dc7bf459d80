// Package cpu implements the processor and assembler for the TD4 4-bit CPU.
//
// The CPU consists of two 4-bit registers (A and B), a carry flag, and a
// 4-bit program counter (PC) that fetches from at most 16 bytes of program
// memory. Every instruction is a single byte: the upper nibble selects the
// operation, and the lower nibble is an immediate value for those operations
// that take one. There is no halt instruction; the CPU halts when the PC
// runs off the end of the loaded program.
//
// The assembler provides the traditional TD4 mnemonics, with labels,
// equates, and compile-time expression evaluation.
package cpu
