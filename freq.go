package grin

import (
	"io"
)

// FrequencyTable records how many times each Symbol occurs in an input.
type FrequencyTable struct {
	counts [NumSymbols]uint64
}

// CountFrequencies reads src to exhaustion and returns its frequency table.
// The returned table always records exactly one occurrence of EOF, even when
// src is empty, so every tree built from it can terminate a payload.
func CountFrequencies(src io.ByteReader) (*FrequencyTable, error) {
	var ft FrequencyTable
	for {
		b, err := src.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		ft.counts[b]++
	}
	ft.counts[EOF] = 1
	return &ft, nil
}

// Count returns the number of occurrences recorded for symbol.
func (ft *FrequencyTable) Count(symbol Symbol) uint64 {
	return ft.counts[symbol]
}

// Distinct returns the number of symbols with a non-zero count.
func (ft *FrequencyTable) Distinct() int {
	var n int
	for _, c := range ft.counts {
		if c != 0 {
			n++
		}
	}
	return n
}
