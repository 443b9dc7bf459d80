package io

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/cespare/xxhash"
)

var _rom_defines = map[string]string{
	"ROM_SIZE": fmt.Sprintf("%v", ROM_SIZE),
}

// Rom is the program memory. Data must not be modified once a CPU
// has been attached to it.
type Rom struct {
	Data []uint8
}

var _ Memory = (*Rom)(nil)

// NewRom creates a ROM holding a copy of data.
func NewRom(data []uint8) (rom *Rom, err error) {
	if len(data) > ROM_SIZE {
		err = ErrRomSize
		return
	}

	rom = &Rom{Data: slices.Clone(data)}
	return
}

// Defines returns an iter of defines for the ROM.
func (rom *Rom) Defines() iter.Seq2[string, string] {
	return maps.All(_rom_defines)
}

func (rom *Rom) Size() int {
	return len(rom.Data)
}

func (rom *Rom) Read(address uint8) uint8 {
	return rom.Data[address]
}

// Sum returns the xxhash64 fingerprint of the ROM image.
func (rom *Rom) Sum() uint64 {
	return xxhash.Sum64(rom.Data)
}
