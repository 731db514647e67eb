// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/ezrec/regvm/cpu"
	"github.com/ezrec/regvm/internal"
	vmio "github.com/ezrec/regvm/io"
)

const (
	MEMORY_SIZE = cpu.MEMORY_SIZE // Data memory cells.
)

// Emulator state. CPU + program listing + tape.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Tape vmio.Tape // Tape IO channel, used unless the Cpu channels are replaced.

	MaxTicks int // If non-zero, Run fails after this many ticks.
}

// NewEmulator creates a new emulator with the default memory size.
func NewEmulator() (emu *Emulator) {
	return NewEmulatorSize(MEMORY_SIZE)
}

// NewEmulatorSize creates a new emulator with a specific memory size.
func NewEmulatorSize(memory uint) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(memory),
		Program: &cpu.Program{},
	}

	emu.Cpu.Input = &emu.Tape
	emu.Cpu.Output = &emu.Tape

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		maps.All(map[string]string{
			"MEMORY_SIZE": fmt.Sprintf("%v", emu.Cpu.Memory.Capacity()),
		}),
		emu.Cpu.Defines(),
	)
}

// Assemble parses a program with the emulator defines predeclared,
// and makes it the current program. Entries in predefine override the
// emulator defines.
func (emu *Emulator) Assemble(input io.Reader, predefine map[string]string) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for name, value := range internal.IterSeq2Concat(emu.Defines(), maps.All(predefine)) {
		asm.Predefine(name, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// Reset the emulator state, and load the current program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Tape.Rewind()
	emu.Cpu.Reset(emu.Program.Instructions())

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int64 {
	return emu.Cpu.Register[cpu.REG_IP]
}

// Code returns the current instruction, or nil past the end of the program.
func (emu *Emulator) Code() cpu.Instruction {
	inst, _ := emu.Cpu.Fetch()
	return inst
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Ip())
	if dbg == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	result, err := emu.Cpu.Step()
	if err != nil {
		return
	}

	done = result == cpu.STEP_HALTED
	return
}

// Run ticks the emulator until the program halts.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			return
		}
		if !done && emu.MaxTicks > 0 && emu.Ticks() >= emu.MaxTicks {
			if _, ok := emu.Cpu.Fetch(); ok {
				err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrTickLimit}
				return
			}
		}
	}

	return
}
