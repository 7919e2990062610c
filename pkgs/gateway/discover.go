package gateway

import (
	"context"

	"github.com/d3netgw/bridge/pkgs/ioreg"
	"github.com/d3netgw/bridge/pkgs/registers"
)

// Discover resets all unit records, reads system status, and for every unit
// whose connected-bit is set and whose error-bit is NOT set, reads
// capability and status. A unit is marked present only once both of those
// reads succeed; any other unit is left absent without aborting the sweep.
// Discovery itself only fails if the initial system-status read fails.
func (g *Gateway) Discover(ctx context.Context) error {
	g.Lock()
	defer g.Unlock()
	log := g.withCorrelation().WithField("op", "discover")

	g.units = newUnits()

	words, err := g.readRegisters(ctx, log, ioreg.Input, 0, registers.SystemStatusWords)
	if err != nil {
		return err
	}
	copy(g.systemStatus.Words[:], words)

	for i := 0; i < MaxUnits; i++ {
		unitLog := log.WithField("unit", i)
		if !g.systemStatus.UnitConnected(i) || g.systemStatus.UnitError(i) {
			continue
		}

		capWords, err := g.readRegisters(ctx, unitLog, ioreg.Input, uint16(1000+3*i), registers.CapabilityWords)
		if err != nil {
			unitLog.WithError(err).Debug("capability read failed, unit left absent")
			continue
		}
		statusWords, err := g.readRegisters(ctx, unitLog, ioreg.Input, uint16(2000+6*i), registers.StatusWords)
		if err != nil {
			unitLog.WithError(err).Debug("status read failed, unit left absent")
			continue
		}

		u := &g.units[i]
		copy(u.Capability.Words[:], capWords)
		copy(u.Status.Words[:], statusWords)
		u.Present = true
		u.ID = unitID(i)
	}

	log.WithField("discovered_count", g.DiscoveredCount()).Info("discover complete")
	return nil
}
