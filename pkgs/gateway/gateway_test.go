package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/d3netgw/bridge/pkgs/ioreg"
	"github.com/d3netgw/bridge/pkgs/registers"
	"github.com/sirupsen/logrus"
)

// fakeClock is a manually-advanced Clock so tests can assert throttle
// behaviour without sleeping for real wall time.
type fakeClock struct {
	ms     int64
	sleeps []time.Duration
}

func (f *fakeClock) NowMs() int64 { return f.ms }
func (f *fakeClock) Sleep(d time.Duration) {
	f.sleeps = append(f.sleeps, d)
	f.ms += d.Milliseconds()
}

func newTestGateway(t *testing.T) (*Gateway, *ioreg.Simulator, *fakeClock) {
	t.Helper()
	sim := ioreg.NewSimulator()
	log := logrus.New()
	log.SetOutput(testWriter{t})
	gw := New(sim, 1, Config{PollIntervalS: 10, ThrottleMs: 25, CacheWriteS: 35, CacheErrorS: 10}, log)
	clock := &fakeClock{ms: 1_000_000}
	gw.clock = clock
	return gw, sim, clock
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestDiscoveryGatingS1(t *testing.T) {
	gw, sim, _ := newTestGateway(t)
	// adapter initialised, unit 0 connected, unit 0 also flagged error
	sim.SetInput(0, []uint16{0x0003, 0x0001, 0x0000, 0, 0, 0x0001, 0, 0, 0})

	if err := gw.Discover(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gw.Lock()
	defer gw.Unlock()
	if got := gw.DiscoveredCount(); got != 0 {
		t.Fatalf("discovered_count = %d, want 0", got)
	}
}

func TestDiscoveryMarksPresentUnit(t *testing.T) {
	gw, sim, _ := newTestGateway(t)
	sim.SetInput(0, []uint16{0x0001, 0, 1, 0, 0, 0, 0, 0, 0}) // initialised, unit 0 connected, no error
	sim.SetInput(1000, []uint16{0b1, 0, 0})                   // capability: has fan
	sim.SetInput(2000, []uint16{1, 0, 0, 0, 0, 0})            // status: power on

	if err := gw.Discover(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gw.Lock()
	defer gw.Unlock()
	if gw.DiscoveredCount() != 1 {
		t.Fatalf("discovered_count = %d, want 1", gw.DiscoveredCount())
	}
	u := gw.Unit(0)
	if !u.Present || u.ID != "1-00" {
		t.Fatalf("unit 0: present=%v id=%q", u.Present, u.ID)
	}
}

func TestThrottleEnforcesMinimumGap(t *testing.T) {
	gw, sim, clock := newTestGateway(t)
	sim.SetInput(0, []uint16{0, 0, 0, 0, 0, 0, 0, 0, 0})

	if err := gw.Discover(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = clock
	if len(sim.ReadCalls) != 1 {
		t.Fatalf("expected exactly 1 read call, got %d", len(sim.ReadCalls))
	}

	gw.Lock()
	before := gw.lastOpMs
	gw.throttle(logrus.New())
	after := gw.lastOpMs
	gw.Unlock()
	if after-before < 0 {
		t.Fatalf("lastOpMs must not move backwards")
	}
	if len(clock.sleeps) == 0 {
		t.Fatalf("expected a throttle sleep on back-to-back operations")
	}
}

func TestPostWriteSuppressionSkipsPoll(t *testing.T) {
	gw, sim, _ := newTestGateway(t)
	sim.SetInput(0, []uint16{0x0001, 0, 1, 0, 0, 0, 0, 0, 0})
	sim.SetInput(1000, []uint16{0b1, 0, 0})
	sim.SetInput(2000, []uint16{0, 0, 0, 0, 0, 0})
	if err := gw.Discover(context.Background()); err != nil {
		t.Fatalf("discover: %v", err)
	}

	gw.Lock()
	gw.Unit(0).Holding.LastWriteMs = gw.clock.NowMs()
	gw.Unlock()

	readsBefore := len(sim.ReadCalls)
	gw.Poll(context.Background())
	if len(sim.ReadCalls) != readsBefore {
		t.Fatalf("expected poll to skip a just-written unit, got %d new reads", len(sim.ReadCalls)-readsBefore)
	}
}

func TestPrepareIdempotence(t *testing.T) {
	gw, sim, _ := newTestGateway(t)
	sim.SetInput(0, []uint16{0x0001, 0, 1, 0, 0, 0, 0, 0, 0})
	sim.SetInput(1000, []uint16{0b1, 0, 0})
	sim.SetInput(2000, []uint16{0, 0, 0, 0, 0, 0})
	sim.SetHolding(2000, []uint16{0, 0, 0})
	if err := gw.Discover(context.Background()); err != nil {
		t.Fatalf("discover: %v", err)
	}

	gw.Lock()
	log := logrus.New()
	holdingReadsBefore := countHoldingReads(sim)
	if err := gw.prepareWrite(context.Background(), log, 0); err != nil {
		t.Fatalf("prepareWrite 1: %v", err)
	}
	firstCount := countHoldingReads(sim) - holdingReadsBefore
	if err := gw.prepareWrite(context.Background(), log, 0); err != nil {
		t.Fatalf("prepareWrite 2: %v", err)
	}
	secondCount := countHoldingReads(sim) - holdingReadsBefore - firstCount
	gw.Unlock()

	if firstCount != 1 {
		t.Fatalf("first prepareWrite: want exactly 1 holding read, got %d", firstCount)
	}
	if secondCount != 0 {
		t.Fatalf("second prepareWrite with no intervening change: want 0 holding reads, got %d", secondCount)
	}
}

func countHoldingReads(sim *ioreg.Simulator) int {
	n := 0
	for _, c := range sim.ReadCalls {
		if c.Kind == ioreg.Holding {
			n++
		}
	}
	return n
}

func TestFilterResetDualWrite(t *testing.T) {
	gw, sim, _ := newTestGateway(t)
	sim.SetInput(0, []uint16{0x0001, 0, 1, 0, 0, 0, 0, 0, 0})
	sim.SetInput(1000, []uint16{0b1, 0, 0})
	sim.SetInput(2000, []uint16{0, 0, 0, 0, 0, 0})
	sim.SetHolding(2000, []uint16{0, 0, 0})
	if err := gw.Discover(context.Background()); err != nil {
		t.Fatalf("discover: %v", err)
	}

	writesBefore := len(sim.WriteCalls)
	if err := gw.FilterReset(context.Background(), 0); err != nil {
		t.Fatalf("FilterReset: %v", err)
	}
	writes := sim.WriteCalls[writesBefore:]
	if len(writes) != 2 {
		t.Fatalf("want exactly 2 holding writes for filter reset, got %d", len(writes))
	}
}

func TestSetSetpointWritesEncodedValueToHoldingShadow(t *testing.T) {
	gw, sim, _ := newTestGateway(t)
	sim.SetInput(0, []uint16{0x0001, 0, 1, 0, 0, 0, 0, 0, 0})
	sim.SetInput(1000, []uint16{0b1, 0, 0})
	sim.SetInput(2000, []uint16{1, 0, 0, 0, 0, 0})
	sim.SetHolding(2000, []uint16{0, 0, 0})
	if err := gw.Discover(context.Background()); err != nil {
		t.Fatalf("discover: %v", err)
	}

	if err := gw.SetSetpointC(context.Background(), 0, 23.5); err != nil {
		t.Fatalf("SetSetpointC: %v", err)
	}

	gw.Lock()
	got := gw.Unit(0).Status.SetpointC()
	gw.Unlock()
	if got != 23.5 {
		t.Fatalf("status setpoint = %v, want 23.5", got)
	}

	var h registers.Holding
	h.Words[0] = sim.Holding[2000]
	h.Words[1] = sim.Holding[2001]
	h.Words[2] = sim.Holding[2002]
	if !h.Power() {
		t.Fatalf("expected power bit synced through to holding shadow")
	}
	if h.SetpointC() != 23.5 {
		t.Fatalf("holding setpoint = %v, want 23.5 (sint encoding of +235 at bits 32..47)", h.SetpointC())
	}
}
