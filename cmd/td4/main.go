// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/td4/emulator"
	"github.com/ezrec/td4/io"
)

func main() {
	var compile string
	var rom string
	var save string
	var input uint
	var limit int
	var list bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".td4 file to compile")
	flag.StringVar(&rom, "r", "", "raw program image to load")
	flag.StringVar(&save, "s", "", "Save program image to file, do not execute")
	flag.UintVar(&input, "i", 0, "Input port switches (0-15)")
	flag.IntVar(&limit, "n", 0, "Maximum ticks to run (0 is unlimited)")
	flag.BoolVar(&list, "l", false, "List the program before running")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(rom) != 0 {
		log.Fatalf("%v: -c and -r are exclusive", os.Args[0])
	}

	if input > io.PORT_MASK {
		log.Fatalf("%v: input %v out of range", os.Args[0], input)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		err = emu.Assemble(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if len(rom) != 0 {
		data, err := os.ReadFile(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}

		err = emu.Load(data)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
	}

	if list {
		fmt.Print(emu.Program.String())
	}

	if len(save) != 0 {
		err := os.WriteFile(save, emu.Program.Binary(), 0o644)
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		return
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	emu.Port.Input = uint8(input)
	emu.Port.Sink = &io.Display{
		Output: os.Stdout,
		Led:    term.IsTerminal(int(os.Stdout.Fd())),
	}

	err = emu.Run(limit)
	if verbose {
		log.Printf("%v: %v", os.Args[0], emu.Cpu)
	}
	if err != nil {
		log.Fatal(err)
	}
}
