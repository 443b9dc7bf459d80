// Package io provides the program memory and the I/O port of the TD4
// emulator, and a console display for the port's output latch.
package io

const (
	ROM_SIZE  = 16  // Maximum program memory size, in bytes.
	PORT_MASK = 0xf // Meaningful bits of the port input and output.
)

// Memory is read-only program memory.
type Memory interface {
	// Size returns the number of loaded bytes.
	Size() int
	// Read returns the byte at address. address must be below Size().
	Read(address uint8) uint8
}

// Device is an input/output port.
type Device interface {
	// ReadInput returns the current input value, without consuming it.
	ReadInput() uint8
	// WriteOutput latches a new output value and makes it observable.
	WriteOutput(value uint8)
}
