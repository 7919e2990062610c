package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// RTU holds the Modbus-RTU line settings (spec §6, bus-facing contract).
// These take effect on restart; persistence of the blob itself is
// delegated to this package's viper-backed file, not mandated by format.
type RTU struct {
	Device    string
	BaudRate  uint32
	DataBits  int
	StopBits  int
	Parity    string
	SlaveID   uint8
	TimeoutMs uint32
}

// Gateway holds the gateway's tunables (spec §3). Zero values are replaced
// by gateway.DefaultConfig at construction time.
type Gateway struct {
	PollIntervalS int
	ThrottleMs    int
	CacheWriteS   int
	CacheErrorS   int
}

type Configuration struct {
	RTU     RTU
	Gateway Gateway
}

func NewConfig() (*Configuration, error) {
	config := Configuration{}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName(".d3netgw")
	v.AddConfigPath("$HOME/")
	v.AddConfigPath(".")
	_ = v.SafeWriteConfig()

	v.SetDefault("rtu.device", "/dev/ttyUSB0")
	v.SetDefault("rtu.baudrate", 9600)
	v.SetDefault("rtu.databits", 8)
	v.SetDefault("rtu.stopbits", 1)
	v.SetDefault("rtu.parity", "N")
	v.SetDefault("rtu.slaveid", 1)
	v.SetDefault("rtu.timeoutms", 500)

	v.SetDefault("gateway.pollintervals", 10)
	v.SetDefault("gateway.throttlems", 25)
	v.SetDefault("gateway.cachewrites", 35)
	v.SetDefault("gateway.cacheerrors", 10)

	if err := v.ReadInConfig(); err != nil {
		return &Configuration{}, fmt.Errorf("cannot parse config: %s", err.Error())
	}
	if err := v.Unmarshal(&config); err != nil {
		return &config, fmt.Errorf("cannot parse config: %s", err.Error())
	}

	if err := config.RTU.Validate(); err != nil {
		return &config, fmt.Errorf("invalid rtu configuration: %w", err)
	}

	return &config, nil
}

// Validate checks the RTU line settings against the constraints the
// adapter's serial port and the Modbus-RTU transport actually accept,
// catching a typo'd config file at startup instead of at the first
// transceive failure.
func (r *RTU) Validate() error {
	if r.Device == "" {
		return fmt.Errorf("device must not be empty")
	}
	if r.DataBits != 7 && r.DataBits != 8 {
		return fmt.Errorf("data bits must be 7 or 8, got %d", r.DataBits)
	}
	if r.StopBits != 1 && r.StopBits != 2 {
		return fmt.Errorf("stop bits must be 1 or 2, got %d", r.StopBits)
	}
	switch r.Parity {
	case "N", "E", "O":
	default:
		return fmt.Errorf("parity must be one of N, E, O, got %q", r.Parity)
	}
	if r.BaudRate == 0 {
		return fmt.Errorf("baud rate must be non-zero")
	}
	if r.TimeoutMs == 0 {
		return fmt.Errorf("timeout_ms must be non-zero")
	}
	return nil
}
