package main

import (
	"os"

	"github.com/d3netgw/bridge/pkgs/app"
	"github.com/d3netgw/bridge/pkgs/cli"
	"github.com/d3netgw/bridge/pkgs/output"
)

func main() {
	gwApp := app.GatewayApp{P: output.ConsolePrinter{}}
	cmd := cli.NewRootCommand(&gwApp)
	args := os.Args
	if args != nil {
		args = args[1:]
		cmd.SetArgs(args)
	}
	err := cmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
