package app

import (
	"context"
	"fmt"

	"github.com/d3netgw/bridge/pkgs/gateway"
)

// ErrorsAction reads (subject to the error-read cache) and prints the error
// record for every discovered unit that is currently flagging one.
func (a *GatewayApp) ErrorsAction() error {
	for i := 0; i < gateway.MaxUnits; i++ {
		a.GW.Lock()
		u := a.GW.Unit(i)
		present := u != nil && u.Present
		var err error
		if present {
			err = a.GW.ReadError(context.Background(), i)
		}
		a.GW.Unlock()
		if err != nil {
			return fmt.Errorf("unit %d: %w", i, err)
		}
	}

	a.GW.Lock()
	defer a.GW.Unlock()
	any := false
	for i := 0; i < gateway.MaxUnits; i++ {
		u := a.GW.Unit(i)
		if u == nil || !u.Present || !u.Error.Active() {
			continue
		}
		any = true
		a.P.Printf("%s  code=%s subcode=%d alarm=%v warning=%v\n",
			u.ID, u.Error.Code(), u.Error.Subcode(), u.Error.IsAlarm(), u.Error.IsWarning())
	}
	if !any {
		a.P.Printf("no active unit errors\n")
	}
	return nil
}
