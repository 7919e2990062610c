package registers

import "github.com/d3netgw/bridge/pkgs/bitfield"

// HoldingWords is the fixed length, in 16-bit words, of the Unit Holding
// read/write-register block for a single unit.
const HoldingWords = 3

// Holding is the gateway-local shadow of a unit's holding registers: power,
// fan direction, fan speed and mode share their bit layout with the first
// three words of Status; fan-control-enable and filter-reset are
// holding-only fields with no Status analog. Dirty is set the first time any
// setter actually changes a bit and is cleared by the caller once a write
// has been flushed to the adapter (spec §3 invariants).
type Holding struct {
	Words [HoldingWords]uint16
	Dirty bool

	// LastReadMs and LastWriteMs are Unix-millisecond timestamps of the
	// most recent successful holding read and write, used by the gateway
	// to decide when the shadow needs reloading and when a unit's status
	// poll should be suppressed.
	LastReadMs  int64
	LastWriteMs int64
}

func (h *Holding) Power() bool { return bitfield.Get(h.Words[:], 0) }

func (h *Holding) SetPower(on bool) {
	if bitfield.Set(h.Words[:], 0, on) {
		h.Dirty = true
	}
}

// FanControlEnabled reports whether the fan-control-enable field currently
// carries the adapter's required magic value.
func (h *Holding) FanControlEnabled() bool {
	return bitfield.GetUint(h.Words[:], 4, 4) == fanControlEnableValue
}

func (h *Holding) enableFanControl() {
	bitfield.SetUint(h.Words[:], 4, 4, fanControlEnableValue, &h.Dirty)
}

func (h *Holding) FanDir() FanDir { return FanDir(bitfield.GetUint(h.Words[:], 8, 3)) }

// SetFanDir stages a fan-direction change and, per the adapter's
// requirement, also asserts fan-control-enable so the change takes effect.
func (h *Holding) SetFanDir(d FanDir) {
	bitfield.SetUint(h.Words[:], 8, 3, uint32(d), &h.Dirty)
	h.enableFanControl()
}

func (h *Holding) FanSpeed() FanSpeed { return FanSpeed(bitfield.GetUint(h.Words[:], 12, 3)) }

// SetFanSpeed stages a fan-speed change and asserts fan-control-enable, same
// as SetFanDir.
func (h *Holding) SetFanSpeed(f FanSpeed) {
	bitfield.SetUint(h.Words[:], 12, 3, uint32(f), &h.Dirty)
	h.enableFanControl()
}

func (h *Holding) Mode() Mode { return Mode(bitfield.GetUint(h.Words[:], 16, 4)) }

// SetMode stages a mode change on the holding shadow. Unlike
// registers.Status.SetMode, this does not force power on: the holding
// shadow's power bit is driven independently by SetPower (direct operator
// intent, or a status->holding sync that may legitimately carry power off).
func (h *Holding) SetMode(m Mode) {
	bitfield.SetUint(h.Words[:], 16, 4, uint32(m), &h.Dirty)
}

// SetpointC is the holding shadow's staged setpoint in degrees Celsius,
// at bits 32..47 — the same layout Status.SetpointC uses.
func (h *Holding) SetpointC() float64 {
	return float64(bitfield.GetSint(h.Words[:], 32, 16)) / 10
}

// SetSetpointC stages a setpoint change, rounding to the nearest 0.1C the
// same way Status.SetSetpointC does.
func (h *Holding) SetSetpointC(c float64) {
	bitfield.SetSint(h.Words[:], 32, 16, roundTenths(c), &h.Dirty)
}

// FilterResetAsserted reports whether the filter-reset field currently
// carries the assert value (15).
func (h *Holding) FilterResetAsserted() bool {
	return bitfield.GetUint(h.Words[:], 20, 4) == filterResetAssert
}

// AssertFilterReset stages the reset-trigger value (15).
func (h *Holding) AssertFilterReset() {
	bitfield.SetUint(h.Words[:], 20, 4, filterResetAssert, &h.Dirty)
}

// ClearFilterReset writes 0 into the filter-reset field, completing the
// 15->0 pulse the adapter latches on (spec §9).
func (h *Holding) ClearFilterReset() {
	bitfield.SetUint(h.Words[:], 20, 4, filterResetClear, &h.Dirty)
}

// SyncFromStatus copies the live power/fan-dir/fan-speed/mode/setpoint
// values from status into this holding shadow, marking Dirty if any field
// actually changed. It never copies filter-reset or fan-control-enable —
// those are operator-driven fields with no Status analog — and leaves
// filter-reset alone; fan-control-enable is asserted only as a side effect
// of SetFanDir/SetFanSpeed when the fan direction or fan speed differs.
func (h *Holding) SyncFromStatus(s *Status) {
	h.SetPower(s.Power())
	if s.FanDir() != h.FanDir() {
		h.SetFanDir(s.FanDir())
	}
	if s.FanSpeed() != h.FanSpeed() {
		h.SetFanSpeed(s.FanSpeed())
	}
	h.SetMode(s.CommandedMode())
	if s.SetpointC() != h.SetpointC() {
		h.SetSetpointC(s.SetpointC())
	}
}
