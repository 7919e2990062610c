package registers

import "github.com/d3netgw/bridge/pkgs/bitfield"

// SystemStatusWords is the fixed length, in 16-bit words, of the System
// Status input-register block.
const SystemStatusWords = 9

// MaxUnits is the number of unit slots the adapter's bus can address.
const MaxUnits = 64

// SystemStatus is a read-only view over the adapter's System Status block:
// bit 0 adapter-initialised, bit 1 other-controller-present, bits 16..79
// per-unit connected flags, bits 80..143 per-unit error flags.
type SystemStatus struct {
	Words [SystemStatusWords]uint16
}

// Initialised reports whether the adapter has completed its own
// initialisation (bit 0).
func (s *SystemStatus) Initialised() bool {
	return bitfield.Get(s.Words[:], 0)
}

// OtherControllerPresent reports whether another DIII-Net controller shares
// the bus (bit 1).
func (s *SystemStatus) OtherControllerPresent() bool {
	return bitfield.Get(s.Words[:], 1)
}

// UnitConnected reports whether unit i (0..63) is attached to the bus.
func (s *SystemStatus) UnitConnected(i int) bool {
	if i < 0 || i >= MaxUnits {
		return false
	}
	return bitfield.Get(s.Words[:], 16+i)
}

// UnitError reports whether unit i (0..63) is currently flagging an error.
func (s *SystemStatus) UnitError(i int) bool {
	if i < 0 || i >= MaxUnits {
		return false
	}
	return bitfield.Get(s.Words[:], 80+i)
}
