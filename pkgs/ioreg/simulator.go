package ioreg

import (
	"context"
	"fmt"
	"sync"
)

// Simulator is an in-memory RegisterIO over two flat word tables, for
// exercising the gateway without real hardware. ReadErr/WriteErr, when set,
// are returned instead of touching the tables, so tests can script
// per-unit failures (spec §4.D.2/4.D.3 tolerate exactly this).
type Simulator struct {
	mu      sync.Mutex
	Input   map[uint16]uint16
	Holding map[uint16]uint16

	ReadErr  error
	WriteErr error

	ReadCalls  []SimCall
	WriteCalls []SimCall
}

// SimCall records one ReadRegisters or WriteRegisters invocation, for
// assertions on call counts and addresses in tests (e.g. post-write
// suppression, prepare idempotence).
type SimCall struct {
	Kind  Kind
	Addr  uint16
	Count int
}

// NewSimulator returns a Simulator with empty tables.
func NewSimulator() *Simulator {
	return &Simulator{Input: map[uint16]uint16{}, Holding: map[uint16]uint16{}}
}

// SetInput seeds count words of the input table starting at addr.
func (s *Simulator) SetInput(addr uint16, words []uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range words {
		s.Input[addr+uint16(i)] = w
	}
}

// SetHolding seeds count words of the holding table starting at addr.
func (s *Simulator) SetHolding(addr uint16, words []uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range words {
		s.Holding[addr+uint16(i)] = w
	}
}

func (s *Simulator) ReadRegisters(ctx context.Context, kind Kind, addr, count uint16) ([]uint16, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ReadCalls = append(s.ReadCalls, SimCall{Kind: kind, Addr: addr, Count: int(count)})
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	table := s.Input
	if kind == Holding {
		table = s.Holding
	}
	words := make([]uint16, count)
	for i := range words {
		words[i] = table[addr+uint16(i)]
	}
	return words, nil
}

func (s *Simulator) WriteRegisters(ctx context.Context, addr uint16, words []uint16) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.WriteCalls = append(s.WriteCalls, SimCall{Kind: Holding, Addr: addr, Count: len(words)})
	if s.WriteErr != nil {
		return s.WriteErr
	}
	if len(words) == 0 {
		return fmt.Errorf("ioreg: write count must be non-zero")
	}
	for i, w := range words {
		s.Holding[addr+uint16(i)] = w
	}
	return nil
}
