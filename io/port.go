package io

import (
	"fmt"
	"io"
	"iter"
	"maps"
)

var _port_defines = map[string]string{
	"PORT_MASK": fmt.Sprintf("%#x", PORT_MASK),
}

// Port is the TD4 I/O port: a set of input switches, and an output latch.
type Port struct {
	Input  uint8     // Input switches. Only the low 4 bits are wired.
	Output uint8     // Output latch; the most recently written value.
	Writes int       // Number of writes to the output latch.
	Sink   io.Writer // If set, receives one byte per output write.
}

var _ Device = (*Port)(nil)

// Defines returns an iter of defines for the port.
func (port *Port) Defines() iter.Seq2[string, string] {
	return maps.All(_port_defines)
}

// Reset clears the output latch and write counter. Input is left alone,
// as it belongs to whoever is driving the switches.
func (port *Port) Reset() {
	port.Output = 0
	port.Writes = 0
}

func (port *Port) ReadInput() uint8 {
	return port.Input & PORT_MASK
}

// WriteOutput latches value, and forwards it to the Sink.
// Sink write errors are dropped; the latch is the source of truth.
func (port *Port) WriteOutput(value uint8) {
	port.Output = value
	port.Writes++

	if port.Sink != nil {
		port.Sink.Write([]byte{value})
	}
}
