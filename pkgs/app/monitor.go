package app

import (
	"context"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/sirupsen/logrus"
)

// MonitorAction polls every PollIntervalS and reprints the unit list until
// the operator presses 'q' or Ctrl+C.
func (a *GatewayApp) MonitorAction() error {
	if err := keyboard.Open(); err != nil {
		return err
	}
	defer keyboard.Close()

	interval := time.Duration(a.Config.Gateway.PollIntervalS) * time.Second
	if interval <= 0 {
		interval = time.Second
	}

	quit := make(chan struct{})
	go func() {
		for {
			char, key, err := keyboard.GetSingleKey()
			if err != nil {
				close(quit)
				return
			}
			if char == 'q' || key == keyboard.KeyCtrlC || key == keyboard.KeyEsc {
				close(quit)
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		a.GW.Poll(context.Background())
		if err := a.ListAction(); err != nil {
			logrus.WithError(err).Warn("monitor: list failed")
		}

		select {
		case <-quit:
			return nil
		case <-ticker.C:
		}
	}
}
