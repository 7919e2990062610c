package gateway

import (
	"context"

	"github.com/d3netgw/bridge/pkgs/registers"
	"github.com/d3netgw/bridge/pkgs/rtu"
)

// operate runs the prepare/mutate/commit pattern shared by every operator
// verb except FilterReset: prepare_write (up to one read + one flush),
// mutate, commit_write (sync + flush). Concurrent calls on different units
// are serialised by Lock, held for the whole call.
func (g *Gateway) operate(ctx context.Context, op string, i int, mutate func(*registers.Status)) error {
	g.Lock()
	defer g.Unlock()

	u := g.Unit(i)
	if u == nil {
		return rtu.New(rtu.InvalidArgument, "unit index out of range")
	}
	if !u.Present {
		return rtu.New(rtu.NotFound, "unit not present")
	}

	log := g.withCorrelation().WithField("op", op).WithField("unit", i)

	if err := g.prepareWrite(ctx, log, i); err != nil {
		return err
	}
	mutate(&u.Status)
	if err := g.commitWrite(ctx, log, i); err != nil {
		return err
	}
	log.Info("write complete")
	return nil
}

// SetPower turns unit i on or off.
func (g *Gateway) SetPower(ctx context.Context, i int, on bool) error {
	return g.operate(ctx, "set_power", i, func(s *registers.Status) { s.SetPower(on) })
}

// SetMode changes unit i's operating mode. Per spec, this also forces
// power on (handled by registers.Status.SetMode). Mode=ModeDry on a unit
// that doesn't report dry-capability is written through unchanged — the
// adapter's behaviour here is unspecified — but logged at debug level so
// an operator can spot it in the trace.
func (g *Gateway) SetMode(ctx context.Context, i int, mode registers.Mode) error {
	if mode == registers.ModeDry {
		g.Lock()
		u := g.Unit(i)
		hasDry := u != nil && u.Capability.HasDry()
		g.Unlock()
		if !hasDry {
			g.withCorrelation().WithField("unit", i).Debug("mode=dry commanded on a unit without dry capability")
		}
	}
	return g.operate(ctx, "set_mode", i, func(s *registers.Status) { s.SetMode(mode) })
}

// SetSetpointC changes unit i's target temperature in degrees Celsius.
func (g *Gateway) SetSetpointC(ctx context.Context, i int, celsius float64) error {
	return g.operate(ctx, "set_setpoint", i, func(s *registers.Status) { s.SetSetpointC(celsius) })
}

// SetFanSpeed changes unit i's fan speed step.
func (g *Gateway) SetFanSpeed(ctx context.Context, i int, speed registers.FanSpeed) error {
	return g.operate(ctx, "set_fan_speed", i, func(s *registers.Status) { s.SetFanSpeed(speed) })
}

// SetFanDir changes unit i's louvre/swing position.
func (g *Gateway) SetFanDir(ctx context.Context, i int, dir registers.FanDir) error {
	return g.operate(ctx, "set_fan_dir", i, func(s *registers.Status) { s.SetFanDir(dir) })
}

// FilterReset pulses unit i's filter-reset field. Unlike the other verbs,
// filter-reset has no Status-view analog to mutate — the assert is staged
// directly on the holding shadow, and commit_write's dual-write carries out
// the 15->0 pulse.
func (g *Gateway) FilterReset(ctx context.Context, i int) error {
	g.Lock()
	defer g.Unlock()

	u := g.Unit(i)
	if u == nil {
		return rtu.New(rtu.InvalidArgument, "unit index out of range")
	}
	if !u.Present {
		return rtu.New(rtu.NotFound, "unit not present")
	}

	log := g.withCorrelation().WithField("op", "filter_reset").WithField("unit", i)

	if err := g.prepareWrite(ctx, log, i); err != nil {
		return err
	}
	u.Holding.AssertFilterReset()
	if err := g.commitWrite(ctx, log, i); err != nil {
		return err
	}
	log.Info("write complete")
	return nil
}
