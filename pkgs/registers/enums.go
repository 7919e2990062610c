// Package registers provides typed accessors over the fixed-layout word
// arrays the D3Net/Modbus adapter exposes: System Status, Unit Capability,
// Unit Status, Unit Holding and Unit Error. Every field has a getter;
// writeable fields also have a setter. Accessors are total functions — an
// out-of-range bit position (impossible for these fixed layouts, but shared
// with pkgs/bitfield's contract) never panics, it just reads a default.
package registers

import "fmt"

// Mode is the indoor unit's operating mode, as carried in both the
// commanded-mode and current-mode fields of Unit Status and in Unit Holding.
type Mode uint32

const (
	ModeFan       Mode = 0
	ModeHeat      Mode = 1
	ModeCool      Mode = 2
	ModeAuto      Mode = 3
	ModeVent      Mode = 4
	ModeUndefined Mode = 5
	ModeSlave     Mode = 6
	ModeDry       Mode = 7
)

func (m Mode) String() string {
	switch m {
	case ModeFan:
		return "fan"
	case ModeHeat:
		return "heat"
	case ModeCool:
		return "cool"
	case ModeAuto:
		return "auto"
	case ModeVent:
		return "vent"
	case ModeSlave:
		return "slave"
	case ModeDry:
		return "dry"
	default:
		return "undefined"
	}
}

// ParseMode maps a CLI-friendly mode name to Mode. Accepts the spellings
// String returns, except "undefined", which is rejected.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "fan":
		return ModeFan, nil
	case "heat":
		return ModeHeat, nil
	case "cool":
		return ModeCool, nil
	case "auto":
		return ModeAuto, nil
	case "vent":
		return ModeVent, nil
	case "slave":
		return ModeSlave, nil
	case "dry":
		return ModeDry, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want one of fan, heat, cool, auto, vent, slave, dry)", s)
	}
}

// FanSpeed is the indoor unit's fan speed step.
type FanSpeed uint32

const (
	FanAuto   FanSpeed = 0
	FanLow    FanSpeed = 1
	FanLowMed FanSpeed = 2
	FanMed    FanSpeed = 3
	FanHiMed  FanSpeed = 4
	FanHigh   FanSpeed = 5
)

func (f FanSpeed) String() string {
	switch f {
	case FanAuto:
		return "auto"
	case FanLow:
		return "low"
	case FanLowMed:
		return "low-med"
	case FanMed:
		return "med"
	case FanHiMed:
		return "hi-med"
	case FanHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseFanSpeed maps a CLI-friendly fan-speed name to FanSpeed.
func ParseFanSpeed(s string) (FanSpeed, error) {
	switch s {
	case "auto":
		return FanAuto, nil
	case "low":
		return FanLow, nil
	case "low-med":
		return FanLowMed, nil
	case "med":
		return FanMed, nil
	case "hi-med":
		return FanHiMed, nil
	case "high":
		return FanHigh, nil
	default:
		return 0, fmt.Errorf("unknown fan speed %q (want one of auto, low, low-med, med, hi-med, high)", s)
	}
}

// FanDir is the indoor unit's louvre/swing position.
type FanDir uint32

const (
	FanDirP0    FanDir = 0
	FanDirP1    FanDir = 1
	FanDirP2    FanDir = 2
	FanDirP3    FanDir = 3
	FanDirP4    FanDir = 4
	FanDirStop  FanDir = 6
	FanDirSwing FanDir = 7
)

func (f FanDir) String() string {
	switch f {
	case FanDirStop:
		return "stop"
	case FanDirSwing:
		return "swing"
	default:
		return "p" + string(rune('0'+f))
	}
}

// ParseFanDir maps a CLI-friendly fan-direction name to FanDir. Positions
// P0-P4 are given as "p0".."p4".
func ParseFanDir(s string) (FanDir, error) {
	switch s {
	case "stop":
		return FanDirStop, nil
	case "swing":
		return FanDirSwing, nil
	case "p0":
		return FanDirP0, nil
	case "p1":
		return FanDirP1, nil
	case "p2":
		return FanDirP2, nil
	case "p3":
		return FanDirP3, nil
	case "p4":
		return FanDirP4, nil
	default:
		return 0, fmt.Errorf("unknown fan direction %q (want one of stop, swing, p0, p1, p2, p3, p4)", s)
	}
}

// fanControlEnableValue is the magic value the adapter requires written into
// Unit Holding's fan-control-enable field before a fan-speed or fan-direction
// write takes effect. Its documented meaning is "required to commit
// fan-speed/fan-dir changes" and nothing more; preserve the value and its
// placement exactly — see spec Open Questions.
const fanControlEnableValue = 6

// filterResetAssert/filterResetClear are the two values written to Unit
// Holding's filter-reset field across the pulse described in spec §4.D.5/§9:
// the adapter latches the reset only on the 15->0 transition it observes in
// its own holding table, so both writes are load-bearing.
const (
	filterResetAssert = 15
	filterResetClear  = 0
)
