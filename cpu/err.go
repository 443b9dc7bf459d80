package cpu

import (
	"errors"

	"github.com/ezrec/td4/translate"
)

var f = translate.From

var (
	// Instruction decode errors
	ErrOpcodeDecode = errors.New(f("decode"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrImmediateRange     = errors.New(f("immediate out of range"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrOpcode is an instruction byte with an unassigned operation.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x", uint8(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	if err == ErrOpcodeDecode {
		return true
	}
	_, ok = err.(ErrOpcode)
	return
}

// ErrDecode indicates the PC at which an instruction failed to decode.
type ErrDecode struct {
	Ip   uint8
	Code Code
}

func (err *ErrDecode) Error() string {
	return f("ip %d %v", err.Ip, ErrOpcode(err.Code))
}

func (err *ErrDecode) Unwrap() error {
	return ErrOpcode(err.Code)
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
