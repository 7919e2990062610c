package registers

import (
	"math"

	"github.com/d3netgw/bridge/pkgs/bitfield"
)

// StatusWords is the fixed length, in 16-bit words, of the Unit Status
// input-register block for a single unit.
const StatusWords = 6

// Status is the gateway's view of a unit's live state (power, fan, mode,
// setpoint, current temperature) as last observed from the adapter's input
// registers. Between prepare_write and commit_write (spec §4.D.6) the
// operator-requested change is staged directly into this view — it is the
// single source of truth for operator intent during that window — and then
// folded into the Holding shadow by Holding.SyncFromStatus.
type Status struct {
	Words [StatusWords]uint16
}

func (s *Status) Power() bool { return bitfield.Get(s.Words[:], 0) }

// SetPower stages a power change on the status view.
func (s *Status) SetPower(on bool) { bitfield.Set(s.Words[:], 0, on) }

func (s *Status) FanDir() FanDir { return FanDir(bitfield.GetUint(s.Words[:], 8, 3)) }

func (s *Status) SetFanDir(d FanDir) { bitfield.SetUint(s.Words[:], 8, 3, uint32(d), nil) }

func (s *Status) FanSpeed() FanSpeed { return FanSpeed(bitfield.GetUint(s.Words[:], 12, 3)) }

func (s *Status) SetFanSpeed(f FanSpeed) { bitfield.SetUint(s.Words[:], 12, 3, uint32(f), nil) }

// CommandedMode is the mode last commanded through this gateway (or another
// controller on the bus); it is observed, never written directly — writes
// go through SetMode, which updates the same bits.
func (s *Status) CommandedMode() Mode { return Mode(bitfield.GetUint(s.Words[:], 16, 4)) }

// SetMode stages a mode change. Per spec §4.D.6, changing mode also forces
// power on — callers don't need to call SetPower separately.
func (s *Status) SetMode(m Mode) {
	bitfield.SetUint(s.Words[:], 16, 4, uint32(m), nil)
	s.SetPower(true)
}

// FilterWarning reports whether the filter-warning counter is non-zero.
func (s *Status) FilterWarning() bool { return bitfield.GetUint(s.Words[:], 20, 4) != 0 }

// CurrentMode is the mode the unit reports it is actually running in, which
// may differ transiently from CommandedMode. Observed only.
func (s *Status) CurrentMode() Mode { return Mode(bitfield.GetUint(s.Words[:], 24, 4)) }

// SetpointC is the commanded setpoint in degrees Celsius.
func (s *Status) SetpointC() float64 {
	return float64(bitfield.GetSint(s.Words[:], 32, 16)) / 10
}

// SetSetpointC stages a setpoint change, rounding to the nearest 0.1C using
// round-half-away-from-zero (matching the adapter's own tenths-of-a-degree
// resolution).
func (s *Status) SetSetpointC(c float64) {
	bitfield.SetSint(s.Words[:], 32, 16, roundTenths(c), nil)
}

// CurrentTemperatureC is the unit's measured room temperature in degrees
// Celsius. Observed only.
func (s *Status) CurrentTemperatureC() float64 {
	return float64(bitfield.GetSint(s.Words[:], 64, 16)) / 10
}

// roundTenths converts a float Celsius value to its sint16 x10 wire
// representation using round-half-away-from-zero, matching the hardware's
// own rounding rather than Go's round-half-to-even float formatting.
func roundTenths(c float64) int32 {
	scaled := c * 10
	if scaled >= 0 {
		return int32(math.Floor(scaled + 0.5))
	}
	return int32(math.Ceil(scaled - 0.5))
}
