package io

import (
	"fmt"
	"io"
	"strings"
)

// Display renders output port writes for a human. Attach it as a Port.Sink.
type Display struct {
	Output io.Writer // Where to render.
	Led    bool      // If set, draws a row of LEDs instead of numbers.
}

// Format renders a single output value, without a line terminator.
func (disp *Display) Format(value uint8) string {
	value &= PORT_MASK

	if !disp.Led {
		return f("out: %04b (%d)", value, value)
	}

	var sb strings.Builder
	for n := 3; n >= 0; n-- {
		if (value>>n)&1 != 0 {
			sb.WriteString("●")
		} else {
			sb.WriteString("○")
		}
	}
	return sb.String()
}

// Write renders each byte of data on its own line.
func (disp *Display) Write(data []byte) (n int, err error) {
	for _, value := range data {
		_, err = fmt.Fprintln(disp.Output, disp.Format(value))
		if err != nil {
			return
		}
		n++
	}

	return
}
