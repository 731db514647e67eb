// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ezrec/regvm/emulator"
	"github.com/ezrec/regvm/translate"
)

// defines collects repeated -D NAME=VALUE flags.
type defines map[string]string

func (d defines) String() string {
	return fmt.Sprintf("%v", map[string]string(d))
}

func (d defines) Set(text string) error {
	name, value, ok := strings.Cut(text, "=")
	if !ok || len(name) == 0 {
		return fmt.Errorf("%q is not NAME=VALUE", text)
	}
	d[name] = value
	return nil
}

func main() {
	var input string
	var output string
	var memory uint
	var ticks int
	var list bool
	var lang string
	var verbose bool
	predefine := defines{}

	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.UintVar(&memory, "m", emulator.MEMORY_SIZE, "Data memory cells")
	flag.IntVar(&ticks, "n", 0, "Tick limit (0 for none)")
	flag.BoolVar(&list, "l", false, "List the assembled program, do not execute")
	flag.StringVar(&lang, "lang", "", "Language (BCP 47) for formatted error details, overrides the locale")
	flag.Var(predefine, "D", "Predefine NAME=VALUE for the assembler (repeatable)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if len(lang) != 0 {
		translate.SetLocales(lang)
	}

	if flag.NArg() != 1 {
		log.Fatalf("usage: %v [options] <program_file>", os.Args[0])
	}

	compile := flag.Arg(0)

	emu := emulator.NewEmulatorSize(memory)
	emu.Verbose = verbose
	emu.MaxTicks = ticks

	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	defer inf.Close()

	err = emu.Assemble(inf, predefine)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if list {
		fmt.Print(emu.Program.String())
		return
	}

	if input == "-" {
		emu.Tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	err = emu.Run()
	if err != nil {
		if verbose {
			log.Print(emu.Cpu.String())
		}
		log.Fatalf("%v: %v", compile, err)
	}
}
