// Package app is the controller layer: everything needed to carry out a
// single action (discover, poll, list, set power, ...) sits here. Prints are
// allowed only through the Printer interface, never directly to stdout.
package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/d3netgw/bridge/pkgs/config"
	"github.com/d3netgw/bridge/pkgs/gateway"
	"github.com/d3netgw/bridge/pkgs/ioreg"
	"github.com/d3netgw/bridge/pkgs/output"
	"github.com/d3netgw/bridge/pkgs/rtu"
	"github.com/d3netgw/bridge/pkgs/serialport"
)

// GatewayApp wires a configured adapter connection to a gateway.Gateway and
// exposes one method per operator action. Every action is independent and
// re-enterable: cobra constructs one GatewayApp, calls Initialize once, then
// dispatches exactly one action per invocation.
type GatewayApp struct {
	Config *config.Configuration
	GW     *gateway.Gateway

	port *serialport.Port

	// runtime parameters
	Debug bool
	P     output.Printer
}

// Initialize reads configuration, opens the serial line, and builds the
// gateway state machine. Run once, after cobra has parsed flags, before any
// action method.
func (a *GatewayApp) Initialize() error {
	if a.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logrus.Debug("reading configuration")
	cfg, cfgErr := config.NewConfig()
	a.Config = cfg
	if cfgErr != nil {
		return fmt.Errorf("cannot initialize app: %w", cfgErr)
	}

	logrus.WithFields(logrus.Fields{
		"device": cfg.RTU.Device,
		"baud":   cfg.RTU.BaudRate,
	}).Debug("opening serial line")
	port, err := serialport.Open(serialport.Config{
		Device:   cfg.RTU.Device,
		BaudRate: cfg.RTU.BaudRate,
		DataBits: cfg.RTU.DataBits,
		StopBits: cfg.RTU.StopBits,
		Parity:   serialport.Parity(cfg.RTU.Parity[0]),
	})
	if err != nil {
		return fmt.Errorf("cannot initialize app: %w", err)
	}
	a.port = port

	timeout := timeoutFromMs(cfg.RTU.TimeoutMs)
	transport := rtu.NewTransport(port, cfg.RTU.SlaveID, timeout)
	io := ioreg.NewRTU(transport)

	a.GW = gateway.New(io, cfg.RTU.SlaveID, gateway.Config{
		PollIntervalS: cfg.Gateway.PollIntervalS,
		ThrottleMs:    cfg.Gateway.ThrottleMs,
		CacheWriteS:   cfg.Gateway.CacheWriteS,
		CacheErrorS:   cfg.Gateway.CacheErrorS,
	}, logrus.StandardLogger())

	return nil
}

// Close releases the serial port. Safe to call on a zero-value app that
// never reached Initialize.
func (a *GatewayApp) Close() error {
	if a.port == nil {
		return nil
	}
	return a.port.Close()
}
