package gateway

import (
	"context"

	"github.com/d3netgw/bridge/pkgs/ioreg"
	"github.com/d3netgw/bridge/pkgs/registers"
	"github.com/d3netgw/bridge/pkgs/rtu"
)

// ReadError is a no-op if unit i's error record was already read within
// CacheErrorS; otherwise it reads the 2-word error block and stamps
// LastErrorReadMs on success. Callers must hold Lock.
func (g *Gateway) ReadError(ctx context.Context, i int) error {
	u := g.Unit(i)
	if u == nil {
		return rtu.New(rtu.InvalidArgument, "unit index out of range")
	}
	if !u.Present {
		return rtu.New(rtu.NotFound, "unit not present")
	}
	log := g.withCorrelation().WithField("op", "read_error").WithField("unit", i)
	now := g.clock.NowMs()
	if withinS(u.LastErrorReadMs, now, g.cfg.CacheErrorS) {
		log.Debug("error read suppressed by cache")
		return nil
	}
	words, err := g.readRegisters(ctx, log, ioreg.Input, uint16(3600+2*i), registers.ErrorWords)
	if err != nil {
		return err
	}
	copy(u.Error.Words[:], words)
	u.LastErrorReadMs = g.clock.NowMs()
	return nil
}
