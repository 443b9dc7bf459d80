// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	stdio "io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/td4/cpu"
	"github.com/ezrec/td4/internal"
	"github.com/ezrec/td4/io"
)

var _emulator_defines = map[string]string{
	"ROM_LAST": fmt.Sprintf("%v", io.ROM_SIZE-1),
}

// Emulator state. CPU + program memory + port.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Port io.Port // Input switches and output latch.
	Rom  io.Rom  // Program memory.
}

// NewEmulator creates a new emulator, with an empty program.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	emu.Cpu = cpu.NewCpu(cpu.Register{}, &emu.Port, &emu.Rom)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Rom.Defines(),
		emu.Port.Defines(),
	)
}

// Assemble a program from source text, and make it the current program.
func (emu *Emulator) Assemble(input stdio.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for equ, value := range emu.Defines() {
		asm.Predefine(equ, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// Load a raw program image, and make it the current program.
func (emu *Emulator) Load(data []uint8) (err error) {
	if len(data) > io.ROM_SIZE {
		err = io.ErrRomSize
		return
	}

	emu.Program = cpu.Disassemble(data)
	return
}

// Reset the emulator: program memory is reloaded from the current program,
// the output latch is cleared, and a fresh CPU is attached.
func (emu *Emulator) Reset() (err error) {
	data := emu.Program.Binary()
	if len(data) > io.ROM_SIZE {
		err = io.ErrRomSize
		return
	}

	emu.Rom.Data = data
	emu.Port.Reset()

	emu.Cpu = cpu.NewCpu(cpu.Register{}, &emu.Port, &emu.Rom)
	emu.Cpu.Verbose = emu.Verbose

	if emu.Verbose {
		log.Printf("emulator: rom %d bytes, xxhash %016x", emu.Rom.Size(), emu.Rom.Sum())
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int {
	return int(emu.Cpu.Register.Pc())
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	return emu.Cpu.Fetch()
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Cpu.Register.Pc())
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator.
// done is set once the CPU has halted; a halted CPU is not ticked again
// until Reset.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	if emu.Ticks() > 0 && emu.Cpu.Halted() {
		done = true
		return
	}

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Cpu.Halted()
	return
}

// Run ticks the emulator until the CPU halts.
// If limit is positive, at most limit ticks are run before ErrTickLimit.
func (emu *Emulator) Run(limit int) (err error) {
	for done := false; !done; {
		if limit > 0 && emu.Ticks() >= limit {
			err = ErrTickLimit
			return
		}

		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
