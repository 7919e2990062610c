// Package output is the render boundary between the gateway's host-facing
// action layer (pkgs/app) and whatever actually shows the operator a unit
// table, a discovery summary, or a metrics banner.
package output

import "fmt"

// Printer is the one thing pkgs/app is allowed to call to produce
// output — never fmt.Print* directly — so a future host (a TUI, a log
// sink) can swap in without touching the action layer.
type Printer interface {
	Printf(format string, a ...any) (n int, err error)
}

// ConsolePrinter writes gateway status and command results to stdout.
type ConsolePrinter struct{}

func (c ConsolePrinter) Printf(format string, a ...any) (n int, err error) {
	return fmt.Printf(format, a...)
}
