// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":         "0",
	"HERE":           "0",
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reRegister   = regexp.MustCompile(`^r(1[0-5]|[0-9])$`)
	reRegWord    = regexp.MustCompile(`^r[0-9]+$`)
)

// Assembler is a single pass macro assembler for the register machine.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	expanding map[string]bool // Macros currently being expanded.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register aliases.
var regMap = map[string]Register{
	"ip": REG_IP,
	"sp": REG_SP,
}

// condMap is a map of condition names.
var condMap = map[string]Cond{
	COND_ZERO.String(): COND_ZERO,
	COND_POS.String():  COND_POS,
	COND_NEG.String():  COND_NEG,
}

// valueOf returns the value of a signed decimal word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// isRegister returns true if the word is spelled like a register,
// valid or not.
func isRegister(word string) bool {
	_, ok := regMap[word]
	return ok || reRegWord.MatchString(word)
}

// register returns the register named by a word.
func (asm *Assembler) register(word string) (reg Register, err error) {
	reg, ok := regMap[word]
	if ok {
		return
	}

	match := reRegister.FindStringSubmatch(word)
	if match == nil {
		err = errors.Join(ErrRegisterInvalid, ErrParseValue(word))
		return
	}

	index, err := strconv.Atoi(match[1])
	if err != nil {
		err = errors.Join(ErrRegisterInvalid, ErrParseValue(word))
		return
	}

	reg = Register(index)
	return
}

// operand returns the register or literal named by a word.
func (asm *Assembler) operand(word string) (src Operand, err error) {
	if isRegister(word) {
		return asm.register(word)
	}

	value, err := asm.valueOf(word)
	if err != nil {
		err = ErrParseValue(word)
		return
	}

	src = Literal(value)
	return
}

// cond returns the condition named by a word.
func (asm *Assembler) cond(word string) (cond Cond, err error) {
	cond, ok := condMap[word]
	if !ok {
		err = errors.Join(ErrCondInvalid, ErrParseValue(word))
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value64 int64
		value64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(value64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// splitArgs splits the comma separated operands of a line.
func splitArgs(text string) (args []string) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}

	for _, arg := range strings.Split(text, ",") {
		args = append(args, strings.TrimSpace(arg))
	}

	return
}

// parseLine parses a single line into an opcode name and its arguments.
// Directives and macro invocations are handled here and return no opcode.
func (asm *Assembler) parseLine(line string, lineno int) (op string, args []string, err error) {
	// Set line number and instruction index.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)
	asm.Equate["HERE"] = fmt.Sprintf("%v", asm.currentIp())

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "t":
				str = "\t"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	op, rest := line, ""
	if index := strings.IndexFunc(line, unicode.IsSpace); index >= 0 {
		op, rest = line[:index], line[index:]
	}

	// .equ CONST VALUE
	if op == ".equ" {
		words := strings.Fields(rest)
		if len(words) != 2 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[0]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[0]] = words[1]
		op = ""
		return
	}

	args = splitArgs(rest)
	for n, arg := range args {
		// Check for equate next
		equate, ok := asm.Equate[arg]
		if ok {
			args[n] = equate
		}
	}

	// .macro processing
	macro, ok := asm.Macro[op]
	if ok {
		name := op

		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		if asm.expanding[name] {
			err = ErrMacroRecursion
			return
		}
		asm.expanding[name] = true
		defer delete(asm.expanding, name)

		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			var mop string
			var margs []string
			mop, margs, err = asm.parseLine(line, lineno)
			if err == nil {
				err = asm.parseWords(mop, margs, lineno)
			}
			if err != nil {
				err = ErrMacro{Macro: name, Line: lineno, Err: err}
				err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		op = ""
		args = nil
		return
	}

	return
}

// currentIp gets the index of the next instruction to be assembled.
func (asm *Assembler) currentIp() int {
	return len(asm.Opcode)
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.expanding = map[string]bool{}
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text, _, _ = strings.Cut(text, "#")
		line = strings.TrimSpace(text)
		words := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		var op string
		var args []string
		op, args, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(op, args, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// opArity maps opcode names to their operation and argument count.
var opArity = map[string](struct {
	op    Op
	arity int
}){
	OP_CP.String():    {OP_CP, 2},
	OP_LOAD.String():  {OP_LOAD, 2},
	OP_STORE.String(): {OP_STORE, 2},
	OP_ADD.String():   {OP_ADD, 3},
	OP_MUL.String():   {OP_MUL, 3},
	OP_SUB.String():   {OP_SUB, 3},
	OP_READ.String():  {OP_READ, 1},
	OP_WRITE.String(): {OP_WRITE, 1},
	OP_JUMP.String():  {OP_JUMP, 3},
}

// parseWords builds the instruction for an opcode name and its arguments.
func (asm *Assembler) parseWords(name string, args []string, lineno int) (err error) {
	var inst Instruction

	// no-op
	if len(name) == 0 {
		return
	}

	defer func() {
		if inst == nil {
			return
		}
		words := append([]string{name}, args...)
		opcode := Opcode{LineNo: lineno, Ip: asm.currentIp(), Words: words, Instruction: inst}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	entry, ok := opArity[name]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	if len(args) < entry.arity || slices.Contains(args, "") {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > entry.arity {
		err = ErrOpcodeExtraArgs
		return
	}

	src := make([]Operand, len(args))
	var tgt Register
	var cond Cond

	// Parse the operands by position.
	parse := func(kinds string) (err error) {
		for n, kind := range kinds {
			switch kind {
			case 's':
				src[n], err = asm.operand(args[n])
			case 't':
				tgt, err = asm.register(args[n])
			case 'c':
				cond, err = asm.cond(args[n])
			}
			if err != nil {
				return
			}
		}
		return
	}

	switch entry.op {
	case OP_CP:
		if err = parse("st"); err == nil {
			inst = Cp{Src: src[0], Tgt: tgt}
		}
	case OP_LOAD:
		if err = parse("st"); err == nil {
			inst = Load{Addr: src[0], Tgt: tgt}
		}
	case OP_STORE:
		if err = parse("ss"); err == nil {
			inst = Store{Src: src[0], Addr: src[1]}
		}
	case OP_ADD:
		if err = parse("sst"); err == nil {
			inst = Add{Src1: src[0], Src2: src[1], Tgt: tgt}
		}
	case OP_MUL:
		if err = parse("sst"); err == nil {
			inst = Mul{Src1: src[0], Src2: src[1], Tgt: tgt}
		}
	case OP_SUB:
		if err = parse("sst"); err == nil {
			inst = Sub{Src1: src[0], Src2: src[1], Tgt: tgt}
		}
	case OP_READ:
		if err = parse("t"); err == nil {
			inst = Read{Tgt: tgt}
		}
	case OP_WRITE:
		if err = parse("s"); err == nil {
			inst = Write{Src: src[0]}
		}
	case OP_JUMP:
		if err = parse("css"); err == nil {
			inst = Jump{Cond: cond, Src: src[1], Addr: src[2]}
		}
	default:
		err = ErrOpcodeInvalid
	}

	return
}
