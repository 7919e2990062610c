package registers

import "github.com/d3netgw/bridge/pkgs/bitfield"

// CapabilityWords is the fixed length, in 16-bit words, of the Unit
// Capability input-register block for a single unit.
const CapabilityWords = 3

// Capability is a read-only view over a unit's Unit Capability block:
// supported modes, fan-direction/fan-speed capability and step counts, and
// signed setpoint bounds in whole degrees Celsius.
type Capability struct {
	Words [CapabilityWords]uint16
}

func (c *Capability) HasFan() bool  { return bitfield.Get(c.Words[:], 0) }
func (c *Capability) HasCool() bool { return bitfield.Get(c.Words[:], 1) }
func (c *Capability) HasHeat() bool { return bitfield.Get(c.Words[:], 2) }
func (c *Capability) HasAuto() bool { return bitfield.Get(c.Words[:], 3) }
func (c *Capability) HasDry() bool  { return bitfield.Get(c.Words[:], 4) }

func (c *Capability) HasFanDir() bool   { return bitfield.Get(c.Words[:], 11) }
func (c *Capability) HasFanSpeed() bool { return bitfield.Get(c.Words[:], 15) }

// FanDirSteps is the number of fan-direction positions the unit supports.
func (c *Capability) FanDirSteps() uint32 { return bitfield.GetUint(c.Words[:], 8, 3) }

// FanSpeedSteps is the number of fan-speed steps the unit supports.
func (c *Capability) FanSpeedSteps() uint32 { return bitfield.GetUint(c.Words[:], 12, 3) }

// CoolUpperC is the highest settable cooling setpoint, in whole degrees C.
func (c *Capability) CoolUpperC() int32 { return bitfield.GetSint(c.Words[:], 16, 8) }

// CoolLowerC is the lowest settable cooling setpoint, in whole degrees C.
func (c *Capability) CoolLowerC() int32 { return bitfield.GetSint(c.Words[:], 24, 8) }

// HeatUpperC is the highest settable heating setpoint, in whole degrees C.
func (c *Capability) HeatUpperC() int32 { return bitfield.GetSint(c.Words[:], 32, 8) }

// HeatLowerC is the lowest settable heating setpoint, in whole degrees C.
func (c *Capability) HeatLowerC() int32 { return bitfield.GetSint(c.Words[:], 40, 8) }
