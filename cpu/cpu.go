package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/td4/io"
)

// Memory is the program memory interface.
type Memory io.Memory

// Device is the I/O port interface.
type Device io.Device

var _cpu_defines = map[string]string{
	"IMM_MASK": fmt.Sprintf("%#x", IMM_MASK),
	"PC_END":   fmt.Sprintf("%v", PC_END),
}

// Cpu is the simulation context for the TD4 processor.
//
// The Cpu owns its register file, port, and program memory for as long
// as it is running; nothing else may modify them during a Tick or Run.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register Register // Register file.
	Port     Device   // Input/output port.
	Rom      Memory   // Program memory.

	Ticks int // Instruction cycles executed.
}

// NewCpu creates a CPU from its register file, port, and program memory.
//
// The TD4 can only address 16 bytes of program memory; NewCpu panics
// if rom is any larger.
func NewCpu(register Register, port Device, rom Memory) (cpu *Cpu) {
	if rom.Size() > io.ROM_SIZE {
		panic(fmt.Sprintf("cpu: program memory of %d bytes exceeds %d", rom.Size(), io.ROM_SIZE))
	}

	cpu = &Cpu{
		Register: register,
		Port:     port,
		Rom:      rom,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() string {
	return fmt.Sprintf("%v ticks:%d", cpu.Register, cpu.Ticks)
}

// Halted returns true if the PC has run off the end of the program.
func (cpu *Cpu) Halted() bool {
	return int(cpu.Register.Pc()) >= cpu.Rom.Size()
}

// Fetch returns the instruction byte at the PC.
// Past the end of the program, the fetched byte is zero.
func (cpu *Cpu) Fetch() Code {
	pc := cpu.Register.Pc()
	if int(pc) >= cpu.Rom.Size() {
		return 0
	}

	return Code(cpu.Rom.Read(pc))
}

// Tick executes a single fetch, decode, execute, and advance cycle.
// The halt condition is not checked; see Halted. Ticking a halted CPU
// executes the zero byte fetched past the end, add a, 0.
func (cpu *Cpu) Tick() (err error) {
	ip := cpu.Register.Pc()
	code := cpu.Fetch()

	inst, err := Decode(code)
	if err != nil {
		if cpu.Verbose {
			log.Printf("%x: %02x ??", ip, uint8(code))
		}
		err = &ErrDecode{Ip: ip, Code: code}
		return
	}

	cpu.Execute(inst)

	return
}

// Run ticks the CPU until it halts, or fails to decode an instruction.
//
// A program that loops forever never returns from Run; use Tick to
// bound execution.
func (cpu *Cpu) Run() (err error) {
	for {
		err = cpu.Tick()
		if err != nil {
			return
		}
		if cpu.Halted() {
			if cpu.Verbose {
				log.Printf("cpu: halt %v", cpu)
			}
			return
		}
	}
}

// Execute a decoded instruction, and advance the PC.
func (cpu *Cpu) Execute(inst Instruction) {
	reg := &cpu.Register

	if cpu.Verbose {
		log.Printf("%x: %v", reg.Pc(), inst)
	}

	jumped := false

	switch inst.Op {
	case OP_MOV_A:
		reg.SetA(inst.Imm)
		reg.SetCarry(0)
	case OP_MOV_B:
		reg.SetB(inst.Imm)
		reg.SetCarry(0)
	case OP_MOV_A2B:
		reg.SetB(reg.A())
		reg.SetCarry(0)
	case OP_MOV_B2A:
		reg.SetA(reg.B())
		reg.SetCarry(0)
	case OP_ADD_A:
		reg.SetA(cpu.add(reg.A(), inst.Imm))
	case OP_ADD_B:
		reg.SetB(cpu.add(reg.B(), inst.Imm))
	case OP_JMP:
		reg.SetPc(inst.Imm)
		reg.SetCarry(0)
		jumped = true
	case OP_JNC:
		// Untaken, falls through to the next instruction.
		if reg.Carry() == 0 {
			reg.SetPc(inst.Imm)
			jumped = true
		}
		reg.SetCarry(0)
	case OP_IN_A:
		reg.SetA(cpu.Port.ReadInput())
		reg.SetCarry(0)
	case OP_IN_B:
		reg.SetB(cpu.Port.ReadInput())
		reg.SetCarry(0)
	case OP_OUT_B:
		cpu.Port.WriteOutput(reg.B())
		reg.SetCarry(0)
	case OP_OUT_IM:
		cpu.Port.WriteOutput(inst.Imm)
		reg.SetCarry(0)
	default:
		panic(fmt.Sprintf("cpu: execute of undecoded operation %v", inst.Op))
	}

	if !jumped {
		reg.IncrementPc()
	}

	cpu.Ticks++
}

// add returns the 4-bit sum of a and b, and sets the carry on overflow.
func (cpu *Cpu) add(a, b uint8) uint8 {
	sum := a + b

	cpu.Register.SetCarry(0)
	if sum > 0xf {
		cpu.Register.SetCarry(1)
	}

	return sum & 0xf
}
