package registers

import "github.com/d3netgw/bridge/pkgs/bitfield"

// ErrorWords is the fixed length, in 16-bit words, of the Unit Error
// input-register block for a single unit.
const ErrorWords = 2

// UnitError is a read-only view over a unit's Unit Error block: a two-
// character ASCII error code, a numeric subcode, three status flags and the
// unit number the adapter attributes the error to.
type UnitError struct {
	Words [ErrorWords]uint16
}

// Code is the two-character ASCII error code (e.g. "E1", "A3"), or the empty
// string if both characters are NUL.
func (e *UnitError) Code() string {
	hi := byte(bitfield.GetUint(e.Words[:], 0, 8))
	lo := byte(bitfield.GetUint(e.Words[:], 8, 8))
	if hi == 0 && lo == 0 {
		return ""
	}
	return string([]byte{hi, lo})
}

// Subcode is the adapter's numeric error subcode.
func (e *UnitError) Subcode() uint32 { return bitfield.GetUint(e.Words[:], 16, 6) }

func (e *UnitError) IsError() bool   { return bitfield.Get(e.Words[:], 24) }
func (e *UnitError) IsAlarm() bool   { return bitfield.Get(e.Words[:], 25) }
func (e *UnitError) IsWarning() bool { return bitfield.Get(e.Words[:], 26) }

// UnitNumber is the unit number the adapter attributes this error record to.
func (e *UnitError) UnitNumber() uint32 { return bitfield.GetUint(e.Words[:], 28, 4) }

// Active reports whether this record currently carries any error, alarm or
// warning condition.
func (e *UnitError) Active() bool {
	return e.IsError() || e.IsAlarm() || e.IsWarning()
}
