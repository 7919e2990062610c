package cli

import (
	"strconv"

	"github.com/d3netgw/bridge/pkgs/app"
	"github.com/spf13/cobra"
)

func NewSetCommand(a *app.GatewayApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "set",
		Short: "Change the state of a discovered unit",
		RunE: func(command *cobra.Command, args []string) error {
			return command.Help()
		},
	}

	command.AddCommand(newSetPowerCommand(a))
	command.AddCommand(newSetModeCommand(a))
	command.AddCommand(newSetSetpointCommand(a))
	command.AddCommand(newSetFanSpeedCommand(a))
	command.AddCommand(newSetFanDirCommand(a))
	command.AddCommand(newFilterResetCommand(a))

	return command
}

func initUnit(a *app.GatewayApp, unit *int) error {
	if err := a.Initialize(); err != nil {
		return err
	}
	return a.DiscoverAction()
}

func newSetPowerCommand(a *app.GatewayApp) *cobra.Command {
	var unit int
	command := &cobra.Command{
		Use:   "power on|off",
		Short: "Turn a unit on or off",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if err := initUnit(a, &unit); err != nil {
				return err
			}
			defer a.Close()
			on, err := strconv.ParseBool(args[0])
			if err != nil {
				return err
			}
			return a.SetPowerAction(unit, on)
		},
	}
	command.Flags().IntVarP(&unit, "unit", "u", 0, "Unit index (required)")
	command.Flags().BoolVarP(&a.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	command.MarkFlagRequired("unit")
	return command
}

func newSetModeCommand(a *app.GatewayApp) *cobra.Command {
	var unit int
	command := &cobra.Command{
		Use:   "mode MODE",
		Short: "Change a unit's operating mode (fan, heat, cool, auto, vent, dry)",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if err := initUnit(a, &unit); err != nil {
				return err
			}
			defer a.Close()
			return a.SetModeAction(unit, args[0])
		},
	}
	command.Flags().IntVarP(&unit, "unit", "u", 0, "Unit index (required)")
	command.Flags().BoolVarP(&a.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	command.MarkFlagRequired("unit")
	return command
}

func newSetSetpointCommand(a *app.GatewayApp) *cobra.Command {
	var unit int
	command := &cobra.Command{
		Use:   "setpoint CELSIUS",
		Short: "Change a unit's target temperature in degrees Celsius",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if err := initUnit(a, &unit); err != nil {
				return err
			}
			defer a.Close()
			celsius, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return err
			}
			return a.SetSetpointAction(unit, celsius)
		},
	}
	command.Flags().IntVarP(&unit, "unit", "u", 0, "Unit index (required)")
	command.Flags().BoolVarP(&a.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	command.MarkFlagRequired("unit")
	return command
}

func newSetFanSpeedCommand(a *app.GatewayApp) *cobra.Command {
	var unit int
	command := &cobra.Command{
		Use:   "fan-speed SPEED",
		Short: "Change a unit's fan speed (auto, low, low-med, med, hi-med, high)",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if err := initUnit(a, &unit); err != nil {
				return err
			}
			defer a.Close()
			return a.SetFanSpeedAction(unit, args[0])
		},
	}
	command.Flags().IntVarP(&unit, "unit", "u", 0, "Unit index (required)")
	command.Flags().BoolVarP(&a.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	command.MarkFlagRequired("unit")
	return command
}

func newSetFanDirCommand(a *app.GatewayApp) *cobra.Command {
	var unit int
	command := &cobra.Command{
		Use:   "fan-dir DIR",
		Short: "Change a unit's louvre/swing position (stop, swing, p0-p4)",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if err := initUnit(a, &unit); err != nil {
				return err
			}
			defer a.Close()
			return a.SetFanDirAction(unit, args[0])
		},
	}
	command.Flags().IntVarP(&unit, "unit", "u", 0, "Unit index (required)")
	command.Flags().BoolVarP(&a.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	command.MarkFlagRequired("unit")
	return command
}

func newFilterResetCommand(a *app.GatewayApp) *cobra.Command {
	var unit int
	command := &cobra.Command{
		Use:   "filter-reset",
		Short: "Pulse a unit's filter-reset field",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if err := initUnit(a, &unit); err != nil {
				return err
			}
			defer a.Close()
			return a.FilterResetAction(unit)
		},
	}
	command.Flags().IntVarP(&unit, "unit", "u", 0, "Unit index (required)")
	command.Flags().BoolVarP(&a.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	command.MarkFlagRequired("unit")
	return command
}
