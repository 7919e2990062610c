package cli

import (
	"errors"

	"github.com/d3netgw/bridge/pkgs/app"
	"github.com/spf13/cobra"
)

func NewRootCommand(a *app.GatewayApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "d3netgw",
		Short: "D3Net/Modbus HVAC gateway CLI",
		RunE: func(command *cobra.Command, args []string) error {
			return errors.New("please select a command")
		},
	}

	command.AddCommand(NewDiscoverCommand(a))
	command.AddCommand(NewPollCommand(a))
	command.AddCommand(NewListCommand(a))
	command.AddCommand(NewErrorsCommand(a))
	command.AddCommand(NewMonitorCommand(a))
	command.AddCommand(NewMetricsCommand(a))
	command.AddCommand(NewSetCommand(a))

	return command
}
