package metrics

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/sirupsen/logrus"

	"github.com/d3netgw/bridge/pkgs/gateway"
	"github.com/d3netgw/bridge/pkgs/ioreg"
)

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func newTestGateway(t *testing.T) *gateway.Gateway {
	t.Helper()
	sim := ioreg.NewSimulator()
	sim.SetInput(0, []uint16{0x0001, 0, 1, 0, 0, 0, 0, 0, 0}) // initialised, unit 0 connected
	sim.SetInput(1000, []uint16{0b1, 0, 0})
	sim.SetInput(2000, []uint16{1, 0, 0, 0, 0, 0}) // status: power on

	log := logrus.New()
	log.SetOutput(discardWriter{})
	gw := gateway.New(sim, 1, gateway.DefaultConfig(), log)
	if err := gw.Discover(context.Background()); err != nil {
		t.Fatalf("discover: %v", err)
	}
	return gw
}

func gatherCounts(c *Collector) []*prometheus.Desc {
	ch := make(chan *prometheus.Desc, 16)
	c.Describe(ch)
	close(ch)
	var out []*prometheus.Desc
	for d := range ch {
		out = append(out, d)
	}
	return out
}

func TestCollectorDescribeListsAllSeries(t *testing.T) {
	gw := newTestGateway(t)
	c := NewCollector("d3netgw_test", gw, func(error) {})
	descs := gatherCounts(c)
	if len(descs) != 7 {
		t.Fatalf("want 7 described series, got %d", len(descs))
	}
}

func TestCollectorCollectEmitsDiscoveredUnit(t *testing.T) {
	gw := newTestGateway(t)
	c := NewCollector("d3netgw_test", gw, func(error) {})

	ch := make(chan prometheus.Metric, 64)
	c.Collect(ch)
	close(ch)

	sawDiscovered := false
	sawTemperature := false
	for m := range ch {
		var out dto.Metric
		if err := m.Write(&out); err != nil {
			t.Fatalf("write metric: %v", err)
		}
		desc := m.Desc().String()
		switch {
		case contains(desc, "discovered_units"):
			sawDiscovered = true
			if out.Gauge.GetValue() != 1 {
				t.Fatalf("discovered_units = %v, want 1", out.Gauge.GetValue())
			}
		case contains(desc, "unit_temperature_celsius"):
			sawTemperature = true
		}
	}
	if !sawDiscovered {
		t.Fatalf("expected a discovered_units sample")
	}
	if !sawTemperature {
		t.Fatalf("expected a unit_temperature_celsius sample for the discovered unit")
	}
}

func TestPollErrorHookIncrementsCounter(t *testing.T) {
	sim := ioreg.NewSimulator()
	sim.SetInput(0, []uint16{0x0001, 0, 1, 0, 0, 0, 0, 0, 0})
	sim.SetInput(1000, []uint16{0b1, 0, 0})
	sim.SetInput(2000, []uint16{1, 0, 0, 0, 0, 0})

	gw := gateway.New(sim, 1, gateway.DefaultConfig(), logrus.New())
	c := NewCollector("d3netgw_test2", gw, func(error) {})
	gw.SetPollErrorHook(c.IncPollError)

	if err := gw.Discover(context.Background()); err != nil {
		t.Fatalf("discover: %v", err)
	}

	sim.ReadErr = errReadFailed
	gw.Poll(context.Background())

	if got := counterValue(t, c.pollErrors); got != 1 {
		t.Fatalf("poll_errors_total = %v, want 1", got)
	}
}

func TestWriteErrorHookIncrementsCounter(t *testing.T) {
	sim := ioreg.NewSimulator()
	sim.SetInput(0, []uint16{0x0001, 0, 1, 0, 0, 0, 0, 0, 0})
	sim.SetInput(1000, []uint16{0b1, 0, 0})
	sim.SetInput(2000, []uint16{0, 0, 0, 0, 0, 0})
	sim.SetHolding(2000, []uint16{0, 0, 0})

	gw := gateway.New(sim, 1, gateway.DefaultConfig(), logrus.New())
	c := NewCollector("d3netgw_test3", gw, func(error) {})
	gw.SetWriteErrorHook(c.IncWriteError)

	if err := gw.Discover(context.Background()); err != nil {
		t.Fatalf("discover: %v", err)
	}

	sim.WriteErr = errWriteFailed
	if err := gw.SetPower(context.Background(), 0, true); err == nil {
		t.Fatalf("expected SetPower to surface the simulated write error")
	}

	if got := counterValue(t, c.writeErrors); got != 1 {
		t.Fatalf("write_errors_total = %v, want 1", got)
	}
}

func counterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	var out dto.Metric
	if err := counter.Write(&out); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	return out.Counter.GetValue()
}

var errReadFailed = fmt.Errorf("simulated read failure")
var errWriteFailed = fmt.Errorf("simulated write failure")

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
