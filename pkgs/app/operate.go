package app

import (
	"context"

	"github.com/d3netgw/bridge/pkgs/registers"
)

// SetPowerAction turns unit i on or off.
func (a *GatewayApp) SetPowerAction(i int, on bool) error {
	if err := a.GW.SetPower(context.Background(), i, on); err != nil {
		return err
	}
	a.P.Printf("unit %d: power=%v\n", i, on)
	return nil
}

// SetModeAction changes unit i's mode.
func (a *GatewayApp) SetModeAction(i int, modeName string) error {
	mode, err := registers.ParseMode(modeName)
	if err != nil {
		return err
	}
	if err := a.GW.SetMode(context.Background(), i, mode); err != nil {
		return err
	}
	a.P.Printf("unit %d: mode=%s\n", i, mode)
	return nil
}

// SetSetpointAction changes unit i's target temperature in degrees Celsius.
func (a *GatewayApp) SetSetpointAction(i int, celsius float64) error {
	if err := a.GW.SetSetpointC(context.Background(), i, celsius); err != nil {
		return err
	}
	a.P.Printf("unit %d: setpoint=%.1fC\n", i, celsius)
	return nil
}

// SetFanSpeedAction changes unit i's fan speed step.
func (a *GatewayApp) SetFanSpeedAction(i int, speedName string) error {
	speed, err := registers.ParseFanSpeed(speedName)
	if err != nil {
		return err
	}
	if err := a.GW.SetFanSpeed(context.Background(), i, speed); err != nil {
		return err
	}
	a.P.Printf("unit %d: fan_speed=%s\n", i, speed)
	return nil
}

// SetFanDirAction changes unit i's louvre/swing position.
func (a *GatewayApp) SetFanDirAction(i int, dirName string) error {
	dir, err := registers.ParseFanDir(dirName)
	if err != nil {
		return err
	}
	if err := a.GW.SetFanDir(context.Background(), i, dir); err != nil {
		return err
	}
	a.P.Printf("unit %d: fan_dir=%s\n", i, dir)
	return nil
}

// FilterResetAction pulses unit i's filter-reset field.
func (a *GatewayApp) FilterResetAction(i int) error {
	if err := a.GW.FilterReset(context.Background(), i); err != nil {
		return err
	}
	a.P.Printf("unit %d: filter reset\n", i)
	return nil
}
