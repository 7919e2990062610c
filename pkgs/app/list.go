package app

import "github.com/d3netgw/bridge/pkgs/gateway"

// ListAction prints a one-line summary for every discovered unit.
func (a *GatewayApp) ListAction() error {
	a.GW.Lock()
	defer a.GW.Unlock()

	for i := 0; i < gateway.MaxUnits; i++ {
		u := a.GW.Unit(i)
		if u == nil || !u.Present {
			continue
		}
		a.P.Printf("%s  power=%-5v mode=%-6s fan=%-8s setpoint=%.1fC temp=%.1fC\n",
			u.ID, u.Status.Power(), u.Status.CurrentMode(), u.Status.FanSpeed(),
			u.Status.SetpointC(), u.Status.CurrentTemperatureC())
	}
	return nil
}
