// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	td4io "github.com/ezrec/td4/io"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":   "0",
	"IMM_MASK": fmt.Sprintf("%#x", IMM_MASK),
	"ROM_SIZE": fmt.Sprintf("%v", td4io.ROM_SIZE),
}

// Assembler is a single pass assembler for the TD4 instruction set.
//
// Syntax, one instruction per line, with ';' comments:
//
//	label:  mov a, 3        ; A := 3
//	        add a, $(X+1)   ; compile-time expression
//	        jnc label
//	.equ X 2
//	.byte 0x80              ; raw instruction byte
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to ips.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	v64, err := strconv.ParseUint(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)
	return
}

// immediateOf returns the 4-bit immediate value of a word.
func (asm *Assembler) immediateOf(word string) (imm uint8, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if value > IMM_MASK {
		err = ErrImmediateRange
		return
	}

	imm = uint8(value)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	err = nil
	for key, ip := range asm.Label {
		pred[key] = starlark.MakeInt(ip)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

var reParen = regexp.MustCompile(`\$\([^\$]*\)`)

// parseLine expands a single line into words, and handles directives and labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = len(asm.Opcode)
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, td4io.ROM_SIZE)
	asm.Opcode = asm.Opcode[:0]
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

		line = strings.TrimSpace(strings.Split(text, ";")[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if len(asm.Opcode) > td4io.ROM_SIZE {
		line = ""
		err = td4io.ErrRomSize
		return
	}

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		ip, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		if ip > IMM_MASK {
			err = ErrImmediateRange
			return
		}
		op.Code = MakeCode(op.Code.Op(), uint8(ip))
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// regMap maps register names.
var regMap = map[string]bool{
	"a": true,
	"b": true,
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var code Code
	var label string
	var emit bool

	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if !emit || err != nil {
			return
		}
		opcode := Opcode{LineNo: lineno, Ip: len(asm.Opcode), Words: initial_words, Code: code, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	mnemonic := strings.ToLower(words[0])
	args := make([]string, len(words)-1)
	for n, word := range words[1:] {
		if regMap[strings.ToLower(word)] {
			word = strings.ToLower(word)
		}
		args[n] = word
	}

	need := func(count int) error {
		switch {
		case len(args) < count:
			return ErrOpcodeValueMissing
		case len(args) > count:
			return ErrOpcodeExtraArgs
		}
		return nil
	}

	var imm uint8

	switch mnemonic {
	case ".byte":
		if err = need(1); err != nil {
			return
		}
		var value uint32
		value, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		if value > 0xff {
			err = ErrImmediateRange
			return
		}
		code = Code(value)
	case "nop":
		if err = need(0); err != nil {
			return
		}
		code = MakeCode(OP_ADD_A, 0)
	case "mov":
		if err = need(2); err != nil {
			return
		}
		switch {
		case args[0] == "a" && args[1] == "b":
			code = MakeCode(OP_MOV_B2A, 0)
		case args[0] == "b" && args[1] == "a":
			code = MakeCode(OP_MOV_A2B, 0)
		case args[0] == "a":
			imm, err = asm.immediateOf(args[1])
			code = MakeCode(OP_MOV_A, imm)
		case args[0] == "b":
			imm, err = asm.immediateOf(args[1])
			code = MakeCode(OP_MOV_B, imm)
		default:
			err = ErrRegisterInvalid
		}
	case "add":
		if err = need(2); err != nil {
			return
		}
		switch args[0] {
		case "a":
			imm, err = asm.immediateOf(args[1])
			code = MakeCode(OP_ADD_A, imm)
		case "b":
			imm, err = asm.immediateOf(args[1])
			code = MakeCode(OP_ADD_B, imm)
		default:
			err = ErrRegisterInvalid
		}
	case "in":
		if err = need(1); err != nil {
			return
		}
		switch args[0] {
		case "a":
			code = MakeCode(OP_IN_A, 0)
		case "b":
			code = MakeCode(OP_IN_B, 0)
		default:
			err = ErrRegisterInvalid
		}
	case "out":
		if err = need(1); err != nil {
			return
		}
		switch args[0] {
		case "b":
			code = MakeCode(OP_OUT_B, 0)
		case "a":
			err = ErrRegisterInvalid
		default:
			imm, err = asm.immediateOf(args[0])
			code = MakeCode(OP_OUT_IM, imm)
		}
	case "jmp", "jnc":
		if err = need(1); err != nil {
			return
		}
		op := OP_JMP
		if mnemonic == "jnc" {
			op = OP_JNC
		}
		imm, err = asm.immediateOf(args[0])
		if _, not_number := err.(ErrParseNumber); not_number {
			// Not a number, so link it as a label.
			err = nil
			label = args[0]
		}
		code = MakeCode(op, imm)
	default:
		err = ErrInstructionInvalid
		return
	}

	emit = true

	return
}
