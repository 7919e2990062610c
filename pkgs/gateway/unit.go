package gateway

import (
	"fmt"

	"github.com/d3netgw/bridge/pkgs/registers"
)

// MaxUnits is the number of addressable unit slots on the bus.
const MaxUnits = registers.MaxUnits

// Unit is the gateway's per-slot record: whether a unit answered discovery,
// its typed register views, and the bookkeeping timestamps that drive
// post-write suppression and lazy error reads.
type Unit struct {
	Present bool
	Index   int
	ID      string

	Capability registers.Capability
	Status     registers.Status
	Holding    registers.Holding
	Error      registers.UnitError

	LastErrorReadMs int64
}

// unitID formats the adapter's "G-NN" id for index i: group = i/16+1,
// slot = i%16 zero-padded to two digits.
func unitID(i int) string {
	group := i/16 + 1
	slot := i % 16
	return fmt.Sprintf("%d-%02d", group, slot)
}

func newUnits() [MaxUnits]Unit {
	var units [MaxUnits]Unit
	for i := range units {
		units[i].Index = i
	}
	return units
}
