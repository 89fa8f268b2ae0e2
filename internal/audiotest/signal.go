// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"sync/atomic"
)

// ConstantSignal fills every sample with Value.
type ConstantSignal struct {
	Value float32
}

func (s ConstantSignal) Fill(dst []float32) {
	for i := range dst {
		dst[i] = s.Value
	}
}

// CountingSignal yields 0, 1, 2, ... across calls and records how much was
// asked of it.
type CountingSignal struct {
	next     float32
	Calls    int
	Requests []int
}

func (s *CountingSignal) Fill(dst []float32) {
	s.Calls++
	s.Requests = append(s.Requests, len(dst))
	for i := range dst {
		dst[i] = s.next
		s.next++
	}
}

// ClosingSignal is a silent signal that counts Close calls and returns Err
// from them.
type ClosingSignal struct {
	Err    error
	closes atomic.Int32
}

func (s *ClosingSignal) Fill(dst []float32) { clear(dst) }

func (s *ClosingSignal) Close() error {
	s.closes.Add(1)
	return s.Err
}

// Closes is the number of times Close was called.
func (s *ClosingSignal) Closes() int { return int(s.closes.Load()) }

// DoneSignal is a silent signal whose Done result is set by the test.
type DoneSignal struct {
	done atomic.Bool
}

func (s *DoneSignal) Fill(dst []float32) { clear(dst) }
func (s *DoneSignal) Done() bool         { return s.done.Load() }
func (s *DoneSignal) Finish()            { s.done.Store(true) }
