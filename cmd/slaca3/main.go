// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/k0kubun/pp/v3"
	"github.com/tebeka/atexit"

	"github.com/davidmaw/sLaCa3/emulator"
)

func main() {
	var source string
	var input string
	var dump bool
	var verbose bool

	flag.StringVar(&source, "c", "", ".asm file to assemble and run")
	flag.StringVar(&input, "i", "", "Value stored to INPUT_CELL before the run")
	flag.BoolVar(&dump, "d", false, "Dump symbols and registers after the run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(source) == 0 {
		flag.Usage()
		atexit.Exit(1)
	}

	inf, err := os.Open(source)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	emu, err := emulator.NewEmulator(inf)
	inf.Close()
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	emu.Verbose = verbose

	if len(input) != 0 {
		value, err := strconv.ParseInt(input, 0, 17)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		emu.SetMemory(emulator.INPUT_CELL, int16(value))
	}

	err = emu.Run()
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	if dump {
		pp.Println(emu.Object.Symbols)
		pp.Println(emu.Register)
	}

	fmt.Printf("x%04x\n", uint16(emu.GetMemory(emulator.OUTPUT_CELL)))

	atexit.Exit(0)
}
