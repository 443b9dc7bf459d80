package io

import (
	"maps"
	"testing"

	"github.com/cespare/xxhash"
	"github.com/stretchr/testify/assert"
)

func TestRom(t *testing.T) {
	assert := assert.New(t)

	data := []uint8{0x31, 0x52, 0xb3}
	rom, err := NewRom(data)
	assert.NoError(err)
	assert.Equal(3, rom.Size())
	assert.Equal(uint8(0x31), rom.Read(0))
	assert.Equal(uint8(0xb3), rom.Read(2))

	// The ROM holds its own copy.
	data[0] = 0xff
	assert.Equal(uint8(0x31), rom.Read(0))
}

func TestRom_Empty(t *testing.T) {
	assert := assert.New(t)

	rom, err := NewRom(nil)
	assert.NoError(err)
	assert.Equal(0, rom.Size())
}

func TestRom_Size(t *testing.T) {
	assert := assert.New(t)

	rom, err := NewRom(make([]uint8, ROM_SIZE))
	assert.NoError(err)
	assert.Equal(ROM_SIZE, rom.Size())

	rom, err = NewRom(make([]uint8, ROM_SIZE+1))
	assert.ErrorIs(err, ErrRomSize)
	assert.Nil(rom)
}

func TestRom_ReadOutOfRange(t *testing.T) {
	rom := &Rom{Data: []uint8{0x00}}
	assert.Panics(t, func() { rom.Read(1) })
}

func TestRom_Sum(t *testing.T) {
	assert := assert.New(t)

	a := &Rom{Data: []uint8{0x31, 0x52}}
	b := &Rom{Data: []uint8{0x31, 0x52}}
	c := &Rom{Data: []uint8{0x52, 0x31}}

	assert.Equal(xxhash.Sum64([]byte{0x31, 0x52}), a.Sum())
	assert.Equal(a.Sum(), b.Sum())
	assert.NotEqual(a.Sum(), c.Sum())
}

func TestRom_Defines(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}
	defs := maps.Collect(rom.Defines())
	assert.Equal("16", defs["ROM_SIZE"])
}
