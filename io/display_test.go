package io

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplay_Format(t *testing.T) {
	assert := assert.New(t)

	disp := &Display{}
	assert.Equal("out: 0101 (5)", disp.Format(5))
	assert.Equal("out: 1111 (15)", disp.Format(0xff))

	disp.Led = true
	assert.Equal("○●○●", disp.Format(5))
	assert.Equal("●○○○", disp.Format(8))
	assert.Equal("○○○○", disp.Format(0))
}

func TestDisplay_Write(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	disp := &Display{Output: out}

	n, err := disp.Write([]byte{1, 2})
	assert.NoError(err)
	assert.Equal(2, n)
	assert.Equal("out: 0001 (1)\nout: 0010 (2)\n", out.String())
}

func TestDisplay_AsSink(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	port := &Port{Sink: &Display{Output: out, Led: true}}

	port.WriteOutput(0xa)
	assert.Equal("●○●○\n", out.String())
}
