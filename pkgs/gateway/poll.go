package gateway

import (
	"context"

	"github.com/d3netgw/bridge/pkgs/ioreg"
	"github.com/d3netgw/bridge/pkgs/registers"
)

// withinS reports whether stampMs is non-zero and nowMs is within windowS
// seconds of it.
func withinS(stampMs, nowMs int64, windowS int) bool {
	if stampMs == 0 {
		return false
	}
	return nowMs-stampMs < int64(windowS)*1000
}

// Poll reads live status for every present unit, skipping any unit whose
// holding shadow was successfully written within CacheWriteS (post-write
// suppression: the adapter may still report stale or transitional values
// right after a write). A unit's read failure is logged and does not abort
// the sweep.
func (g *Gateway) Poll(ctx context.Context) {
	g.Lock()
	defer g.Unlock()
	log := g.withCorrelation().WithField("op", "poll")
	now := g.clock.NowMs()

	for i := range g.units {
		u := &g.units[i]
		if !u.Present {
			continue
		}
		unitLog := log.WithField("unit", i)
		if withinS(u.Holding.LastWriteMs, now, g.cfg.CacheWriteS) {
			unitLog.Debug("skipping poll, recent write suppresses status read")
			continue
		}
		words, err := g.readRegisters(ctx, unitLog, ioreg.Input, uint16(2000+6*i), registers.StatusWords)
		if err != nil {
			unitLog.WithError(err).Warn("poll error")
			if g.pollErrorHook != nil {
				g.pollErrorHook(err)
			}
			continue
		}
		copy(u.Status.Words[:], words)
	}
}
