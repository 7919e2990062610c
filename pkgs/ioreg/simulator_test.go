package ioreg

import (
	"context"
	"testing"
)

func TestSimulatorReadWriteRoundtrip(t *testing.T) {
	sim := NewSimulator()
	sim.SetInput(0, []uint16{1, 2, 3})

	got, err := sim.ReadRegisters(context.Background(), Input, 0, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("got %v, want [1 2 3]", got)
	}

	if err := sim.WriteRegisters(context.Background(), 2000, []uint16{9, 8}); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
	hold, err := sim.ReadRegisters(context.Background(), Holding, 2000, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hold[0] != 9 || hold[1] != 8 {
		t.Fatalf("got %v, want [9 8]", hold)
	}
}

func TestSimulatorScriptedReadError(t *testing.T) {
	sim := NewSimulator()
	sim.ReadErr = context.DeadlineExceeded
	_, err := sim.ReadRegisters(context.Background(), Input, 0, 1)
	if err != context.DeadlineExceeded {
		t.Fatalf("expected scripted error to propagate, got %v", err)
	}
}
