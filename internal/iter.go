// Package internal holds helpers shared by the td4 packages.
package internal

import (
	"iter"
)

// IterSeq2Concat concatenates key/value iterators, in order.
//
// The emulator uses it to merge the assembler predefines published by
// the CPU, program memory, and port into a single sequence.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for k, v := range seq {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}
