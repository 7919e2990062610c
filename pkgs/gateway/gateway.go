// Package gateway implements the D3Net/Modbus gateway state machine:
// discovery, periodic polling, per-operation throttling, the holding-shadow
// coherence rules, and the prepare/commit write protocol that serialises
// operator commands against the adapter's read/write register tables.
package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/d3netgw/bridge/pkgs/ioreg"
	"github.com/d3netgw/bridge/pkgs/registers"
)

// Defaults for the gateway's tunables (spec §3).
const (
	DefaultPollIntervalS = 10
	DefaultThrottleMs    = 25
	DefaultCacheWriteS   = 35
	DefaultCacheErrorS   = 10
)

// Config bundles the gateway's runtime tunables.
type Config struct {
	PollIntervalS int
	ThrottleMs    int
	CacheWriteS   int
	CacheErrorS   int
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		PollIntervalS: DefaultPollIntervalS,
		ThrottleMs:    DefaultThrottleMs,
		CacheWriteS:   DefaultCacheWriteS,
		CacheErrorS:   DefaultCacheErrorS,
	}
}

// Clock is the time source the gateway uses for throttling and cache
// windows, abstracted so tests can control the passage of time instead of
// sleeping for real.
type Clock interface {
	NowMs() int64
	Sleep(d time.Duration)
}

// systemClock is the default Clock, backed by time.Now/time.Sleep.
type systemClock struct{}

func (systemClock) NowMs() int64    { return time.Now().UnixMilli() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Gateway is the single mutable owner of the adapter's discovered state. It
// holds an exclusive lock across every logical operation (one discover, one
// poll sweep, one operator command) so the throttle invariant — at least
// ThrottleMs between any two transport operations — holds even across
// suspensions.
type Gateway struct {
	io      ioreg.RegisterIO
	slaveID byte
	cfg     Config
	clock   Clock
	log     logrus.FieldLogger

	mu           sync.Mutex
	systemStatus registers.SystemStatus
	units        [MaxUnits]Unit
	lastOpMs     int64

	pollErrorHook  func(error)
	writeErrorHook func(error)
}

// SetPollErrorHook installs fn to be called, in addition to the usual log
// line, whenever Poll fails to read a unit's status. Intended for a
// read-only collaborator such as pkgs/metrics to mirror sweep failures into
// its own instrumentation; nil disables the hook.
func (g *Gateway) SetPollErrorHook(fn func(error)) { g.pollErrorHook = fn }

// SetWriteErrorHook installs fn to be called whenever a holding-register
// write — from any operator verb or prepare_write's reconciliation flush —
// fails. nil disables the hook.
func (g *Gateway) SetWriteErrorHook(fn func(error)) { g.writeErrorHook = fn }

// New constructs a Gateway bound to io (the register I/O boundary) and cfg.
// A zero-value field in cfg is replaced with its documented default.
func New(io ioreg.RegisterIO, slaveID byte, cfg Config, log logrus.FieldLogger) *Gateway {
	if cfg.PollIntervalS == 0 {
		cfg.PollIntervalS = DefaultPollIntervalS
	}
	if cfg.ThrottleMs == 0 {
		cfg.ThrottleMs = DefaultThrottleMs
	}
	if cfg.CacheWriteS == 0 {
		cfg.CacheWriteS = DefaultCacheWriteS
	}
	if cfg.CacheErrorS == 0 {
		cfg.CacheErrorS = DefaultCacheErrorS
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Gateway{
		io:      io,
		slaveID: slaveID,
		cfg:     cfg,
		clock:   systemClock{},
		log:     log,
		units:   newUnits(),
	}
}

// withCorrelation returns a logger tagged with a fresh correlation id, so a
// single operator command's log lines (throttle wait, reads, writes) can be
// grepped together.
func (g *Gateway) withCorrelation() logrus.FieldLogger {
	return g.log.WithField("op_id", xid.New().String())
}

// throttle blocks, if necessary, until at least ThrottleMs has passed since
// the previous transport operation, then stamps lastOpMs. Call this
// immediately before every read_registers/write_registers call.
func (g *Gateway) throttle(log logrus.FieldLogger) {
	now := g.clock.NowMs()
	min := int64(g.cfg.ThrottleMs)
	if g.lastOpMs != 0 {
		if delta := now - g.lastOpMs; delta < min {
			wait := time.Duration(min-delta) * time.Millisecond
			log.WithField("wait_ms", min-delta).Debug("throttling before transport operation")
			g.clock.Sleep(wait)
			now = g.clock.NowMs()
		}
	}
	g.lastOpMs = now
}

func (g *Gateway) readRegisters(ctx context.Context, log logrus.FieldLogger, kind ioreg.Kind, addr, count uint16) ([]uint16, error) {
	g.throttle(log)
	words, err := g.io.ReadRegisters(ctx, kind, addr, count)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{"kind": kind, "addr": addr, "count": count}).Warn("register read failed")
		return nil, fmt.Errorf("gateway: read %s @%d x%d: %w", kind, addr, count, err)
	}
	return words, nil
}

func (g *Gateway) writeRegisters(ctx context.Context, log logrus.FieldLogger, addr uint16, words []uint16) error {
	g.throttle(log)
	if err := g.io.WriteRegisters(ctx, addr, words); err != nil {
		log.WithError(err).WithFields(logrus.Fields{"addr": addr, "count": len(words)}).Warn("register write failed")
		wrapped := fmt.Errorf("gateway: write @%d x%d: %w", addr, len(words), err)
		if g.writeErrorHook != nil {
			g.writeErrorHook(wrapped)
		}
		return wrapped
	}
	return nil
}

// Lock acquires the gateway's exclusive lock. Every public entry point
// (Discover, Poll, operator commands) calls this and defers Unlock so a
// single logical operation — including its throttle waits — runs
// uninterrupted.
func (g *Gateway) Lock() { g.mu.Lock() }

// Unlock releases the exclusive lock.
func (g *Gateway) Unlock() { g.mu.Unlock() }

// DiscoveredCount returns the number of units currently flagged present.
// Callers should hold Lock.
func (g *Gateway) DiscoveredCount() int {
	n := 0
	for i := range g.units {
		if g.units[i].Present {
			n++
		}
	}
	return n
}

// Unit returns a pointer to unit i's record for inspection. Callers should
// hold Lock. Returns nil for an out-of-range index.
func (g *Gateway) Unit(i int) *Unit {
	if i < 0 || i >= MaxUnits {
		return nil
	}
	return &g.units[i]
}

// SystemStatus returns the last-observed system status view. Callers
// should hold Lock.
func (g *Gateway) SystemStatus() *registers.SystemStatus { return &g.systemStatus }
