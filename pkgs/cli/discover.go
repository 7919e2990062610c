package cli

import (
	"github.com/d3netgw/bridge/pkgs/app"
	"github.com/spf13/cobra"
)

func NewDiscoverCommand(a *app.GatewayApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "discover",
		Short: "Run one discovery sweep and report discovered units",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if err := a.Initialize(); err != nil {
				return err
			}
			defer a.Close()
			return a.DiscoverAction()
		},
	}
	command.Flags().BoolVarP(&a.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	return command
}

func NewPollCommand(a *app.GatewayApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "poll",
		Short: "Run one poll sweep over previously-discovered units",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if err := a.Initialize(); err != nil {
				return err
			}
			defer a.Close()
			if err := a.DiscoverAction(); err != nil {
				return err
			}
			return a.PollAction()
		},
	}
	command.Flags().BoolVarP(&a.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	return command
}

func NewListCommand(a *app.GatewayApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "list",
		Short: "List discovered units and their last-polled state",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if err := a.Initialize(); err != nil {
				return err
			}
			defer a.Close()
			if err := a.DiscoverAction(); err != nil {
				return err
			}
			return a.ListAction()
		},
	}
	command.Flags().BoolVarP(&a.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	return command
}

func NewErrorsCommand(a *app.GatewayApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "errors",
		Short: "Read and print active unit error records",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if err := a.Initialize(); err != nil {
				return err
			}
			defer a.Close()
			if err := a.DiscoverAction(); err != nil {
				return err
			}
			return a.ErrorsAction()
		},
	}
	command.Flags().BoolVarP(&a.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	return command
}

func NewMetricsCommand(a *app.GatewayApp) *cobra.Command {
	var addr string
	command := &cobra.Command{
		Use:   "metrics",
		Short: "Serve Prometheus metrics over HTTP until killed",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if err := a.Initialize(); err != nil {
				return err
			}
			defer a.Close()
			if err := a.DiscoverAction(); err != nil {
				return err
			}
			return a.MetricsAction(addr)
		},
	}
	command.Flags().BoolVarP(&a.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	command.Flags().StringVarP(&addr, "addr", "a", ":9274", "Address to serve /metrics on")
	return command
}

func NewMonitorCommand(a *app.GatewayApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "monitor",
		Short: "Continuously poll and print unit state until 'q' or Ctrl+C",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if err := a.Initialize(); err != nil {
				return err
			}
			defer a.Close()
			if err := a.DiscoverAction(); err != nil {
				return err
			}
			return a.MonitorAction()
		},
	}
	command.Flags().BoolVarP(&a.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	return command
}
