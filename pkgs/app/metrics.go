package app

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/d3netgw/bridge/pkgs/metrics"
)

// MetricsAction registers a Collector over the gateway, starts a background
// poll loop at PollIntervalS so scrapes reflect fresh state, and serves
// Prometheus text format on addr until the process is killed.
func (a *GatewayApp) MetricsAction(addr string) error {
	collector := metrics.NewCollector("d3netgw", a.GW, func(err error) {
		logrus.WithError(err).Warn("metrics collection error")
	})
	prometheus.MustRegister(collector)
	a.GW.SetPollErrorHook(collector.IncPollError)
	a.GW.SetWriteErrorHook(collector.IncWriteError)

	interval := time.Duration(a.Config.Gateway.PollIntervalS) * time.Second
	if interval <= 0 {
		interval = time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			a.GW.Poll(context.Background())
		}
	}()

	http.Handle("/metrics", promhttp.Handler())
	a.P.Printf("serving metrics on %s/metrics\n", addr)
	return http.ListenAndServe(addr, nil)
}
