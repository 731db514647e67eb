package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/regvm/io"
)

// StepResult is the outcome of a single Step.
type StepResult int

//go:generate go tool stringer -linecomment -type=StepResult
const (
	STEP_CONTINUE = StepResult(0) // continue
	STEP_HALTED   = StepResult(1) // halted
)

var _cpu_defines = map[string]string{
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
	"REG_IP":         fmt.Sprintf("%d", REG_IP),
	"REG_SP":         fmt.Sprintf("%d", REG_SP),
}

// Cpu is the execution engine: registers, data memory, and a read-only program.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register RegisterFile  // Register bank. Register[REG_IP] is the instruction pointer.
	Memory   *Memory       // Data memory.
	Program  []Instruction // Program being executed. Never modified by the Cpu.

	Input  io.Input  // READ source.
	Output io.Output // WRITE sink.

	Ticks int // Executed instruction counter.

	halted bool
}

// NewCpu creates a new CPU with a specifically sized data memory.
func NewCpu(memory uint) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: NewMemory(memory),
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for n, val := range cpu.Register {
		reg := Register(n).String()
		switch Register(n) {
		case REG_IP:
			reg = "ip"
		case REG_SP:
			reg = "sp"
		}
		text += fmt.Sprintf("% 5s: %d\n", reg, val)
	}
	text += fmt.Sprintf("% 5s: %v\n", "halt", cpu.halted)

	return
}

// Reset the CPU state.
// - Clears the registers and data memory.
// - Zeros the tick counter.
// - Leaves the I/O channels untouched.
// - Installs the program to execute from index 0.
func (cpu *Cpu) Reset(program []Instruction) {
	if cpu.Verbose {
		log.Printf("cpu: reset, %d instructions", len(program))
	}

	if cpu.Memory == nil {
		cpu.Memory = NewMemory(MEMORY_SIZE)
	}

	cpu.Register.Reset()
	cpu.Memory.Reset()
	cpu.Program = program
	cpu.Ticks = 0
	cpu.halted = false
}

// Halted returns true once a Step has reported STEP_HALTED.
func (cpu *Cpu) Halted() bool {
	return cpu.halted
}

// Fetch returns the instruction addressed by ip.
// ok is false if ip addresses no instruction.
func (cpu *Cpu) Fetch() (inst Instruction, ok bool) {
	ip := cpu.Register[REG_IP]
	if ip < 0 || ip >= int64(len(cpu.Program)) {
		return
	}

	return cpu.Program[ip], true
}

// Step executes a single instruction.
func (cpu *Cpu) Step() (result StepResult, err error) {
	if cpu.halted {
		err = ErrStepAfterHalt
		return
	}

	inst, ok := cpu.Fetch()
	if !ok {
		if cpu.Verbose {
			log.Printf("cpu: halt at ip %d", cpu.Register[REG_IP])
		}
		cpu.halted = true
		result = STEP_HALTED
		return
	}

	err = cpu.Execute(inst)
	if err != nil {
		return
	}

	result = STEP_CONTINUE
	return
}

// Run steps until the program halts or an instruction fails.
func (cpu *Cpu) Run() (err error) {
	for {
		var result StepResult
		result, err = cpu.Step()
		if err != nil || result == STEP_HALTED {
			return
		}
	}
}

// Execute executes a single decoded instruction at the current ip.
// On error no register or memory cell is modified.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	ip := cpu.Register[REG_IP]

	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode{Ip: ip, Instruction: inst}, err)
		}
	}()

	if cpu.Verbose {
		log.Printf("%03d: %v", ip, inst)
	}

	next_ip := ip + 1

	switch inst := inst.(type) {
	case Cp:
		var value int64
		value, err = cpu.Register.Value(inst.Src)
		if err != nil {
			return
		}
		err = cpu.setTarget(inst.Tgt, value)
	case Load:
		var addr, value int64
		addr, err = cpu.Register.Value(inst.Addr)
		if err != nil {
			return
		}
		value, err = cpu.Memory.Read(addr)
		if err != nil {
			return
		}
		err = cpu.setTarget(inst.Tgt, value)
	case Store:
		var value, addr int64
		value, err = cpu.Register.Value(inst.Src)
		if err != nil {
			return
		}
		addr, err = cpu.Register.Value(inst.Addr)
		if err != nil {
			return
		}
		err = cpu.Memory.Write(addr, value)
	case Add:
		err = cpu.doAlu(OP_ADD, inst.Src1, inst.Src2, inst.Tgt)
	case Mul:
		err = cpu.doAlu(OP_MUL, inst.Src1, inst.Src2, inst.Tgt)
	case Sub:
		err = cpu.doAlu(OP_SUB, inst.Src1, inst.Src2, inst.Tgt)
	case Read:
		var slot *int64
		slot, err = cpu.Register.Target(inst.Tgt)
		if err != nil {
			return
		}
		if cpu.Input == nil {
			err = errors.Join(ErrChannelInvalid, ErrInputExhausted)
			return
		}
		var value int64
		value, err = cpu.Input.Receive()
		if err != nil {
			return
		}
		*slot = value
	case Write:
		var value int64
		value, err = cpu.Register.Value(inst.Src)
		if err != nil {
			return
		}
		if cpu.Output == nil {
			err = ErrChannelInvalid
			return
		}
		err = cpu.Output.Send(value)
	case Jump:
		if !inst.Cond.Valid() {
			err = errors.Join(ErrInstructionInvalid, ErrCondInvalid)
			return
		}
		var value, addr int64
		value, err = cpu.Register.Value(inst.Src)
		if err != nil {
			return
		}
		addr, err = cpu.Register.Value(inst.Addr)
		if err != nil {
			return
		}
		if inst.Cond.Evaluate(value) {
			next_ip = addr
		}
	default:
		err = ErrInstructionInvalid
	}
	if err != nil {
		return
	}

	// A write to ip by the instruction itself is advanced like any other.
	if cpu.Register[REG_IP] != ip {
		next_ip = cpu.Register[REG_IP] + 1
	}

	cpu.Register[REG_IP] = next_ip
	cpu.Ticks++

	return
}

// setTarget writes value to a target register.
func (cpu *Cpu) setTarget(tgt Register, value int64) (err error) {
	slot, err := cpu.Register.Target(tgt)
	if err != nil {
		return
	}

	*slot = value
	return
}

// doAlu resolves both sources, then writes the result to the target.
// Arithmetic wraps on overflow.
func (cpu *Cpu) doAlu(op Op, src1, src2 Operand, tgt Register) (err error) {
	a, err := cpu.Register.Value(src1)
	if err != nil {
		return
	}
	b, err := cpu.Register.Value(src2)
	if err != nil {
		return
	}

	var output int64
	switch op {
	case OP_ADD:
		output = a + b
	case OP_MUL:
		output = a * b
	case OP_SUB:
		output = a - b
	default:
		err = ErrInstructionInvalid
		return
	}

	err = cpu.setTarget(tgt, output)
	return
}
