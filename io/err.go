package io

import (
	"errors"

	"github.com/ezrec/td4/translate"
)

var f = translate.From

var (
	// Program memory errors
	ErrRomSize = errors.New(f("program exceeds %d bytes", ROM_SIZE))
)
