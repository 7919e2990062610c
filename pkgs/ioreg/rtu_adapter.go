package ioreg

import (
	"context"

	"github.com/d3netgw/bridge/pkgs/rtu"
)

// RTU adapts an rtu.Transport to the RegisterIO boundary.
type RTU struct {
	transport *rtu.Transport
}

// NewRTU wraps transport as a RegisterIO.
func NewRTU(transport *rtu.Transport) *RTU {
	return &RTU{transport: transport}
}

func (r *RTU) ReadRegisters(ctx context.Context, kind Kind, addr, count uint16) ([]uint16, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fn := byte(rtu.FuncReadInput)
	if kind == Holding {
		fn = rtu.FuncReadHolding
	}
	return r.transport.ReadRegisters(fn, addr, count)
}

func (r *RTU) WriteRegisters(ctx context.Context, addr uint16, words []uint16) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.transport.WriteRegisters(addr, words)
}
