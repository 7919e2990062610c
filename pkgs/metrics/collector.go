package metrics

import (
	"github.com/d3netgw/bridge/pkgs/gateway"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes a Gateway's discovered units, their live temperature
// and setpoint, and operation error counts as Prometheus metrics. It reads
// the gateway's in-memory state under its own lock at Collect time rather
// than caching a copy, so every scrape reflects the latest poll.
type Collector struct {
	gw     *gateway.Gateway
	logger func(error)

	discovered  *prometheus.Desc
	temperature *prometheus.Desc
	setpoint    *prometheus.Desc
	fanSpeed    *prometheus.Desc
	unitError   *prometheus.Desc

	pollErrors  prometheus.Counter
	writeErrors prometheus.Counter
}

// NewCollector builds a Collector rooted at prefix (e.g. "d3netgw"). Callers
// must wire IncPollError/IncWriteError into the gateway's error hooks
// (Gateway.SetPollErrorHook/SetWriteErrorHook) for the series to ever move;
// errorLoggingCallback runs alongside each increment so a collaborator that
// doesn't scrape Prometheus still learns about the failure.
func NewCollector(prefix string, gw *gateway.Gateway, errorLoggingCallback func(error)) *Collector {
	unitLabels := []string{"unit"}
	return &Collector{
		gw:     gw,
		logger: errorLoggingCallback,
		discovered: prometheus.NewDesc(
			prefix+"_discovered_units",
			"Number of units found present by the most recent discovery sweep.",
			nil, nil,
		),
		temperature: prometheus.NewDesc(
			prefix+"_unit_temperature_celsius",
			"Last-polled room temperature for a unit.",
			unitLabels, nil,
		),
		setpoint: prometheus.NewDesc(
			prefix+"_unit_setpoint_celsius",
			"Last-polled target setpoint for a unit.",
			unitLabels, nil,
		),
		fanSpeed: prometheus.NewDesc(
			prefix+"_unit_fan_speed",
			"Last-polled fan speed step for a unit (0-7).",
			unitLabels, nil,
		),
		unitError: prometheus.NewDesc(
			prefix+"_unit_error_active",
			"1 if a unit's last-read error record is active, else 0.",
			unitLabels, nil,
		),
		pollErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_poll_errors_total",
			Help: "Number of poll-sweep register reads that returned an error.",
		}),
		writeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_write_errors_total",
			Help: "Number of operator write operations that returned an error.",
		}),
	}
}

func (c *Collector) Describe(descs chan<- *prometheus.Desc) {
	descs <- c.discovered
	descs <- c.temperature
	descs <- c.setpoint
	descs <- c.fanSpeed
	descs <- c.unitError
	descs <- c.pollErrors.Desc()
	descs <- c.writeErrors.Desc()
}

func (c *Collector) Collect(metrics chan<- prometheus.Metric) {
	c.gw.Lock()
	defer c.gw.Unlock()

	metrics <- prometheus.MustNewConstMetric(c.discovered, prometheus.GaugeValue, float64(c.gw.DiscoveredCount()))

	for i := 0; i < gateway.MaxUnits; i++ {
		u := c.gw.Unit(i)
		if u == nil || !u.Present {
			continue
		}
		label := u.ID
		metrics <- prometheus.MustNewConstMetric(c.temperature, prometheus.GaugeValue, u.Status.CurrentTemperatureC(), label)
		metrics <- prometheus.MustNewConstMetric(c.setpoint, prometheus.GaugeValue, u.Status.SetpointC(), label)
		metrics <- prometheus.MustNewConstMetric(c.fanSpeed, prometheus.GaugeValue, float64(u.Status.FanSpeed()), label)
		errVal := 0.0
		if u.Error.Active() {
			errVal = 1.0
		}
		metrics <- prometheus.MustNewConstMetric(c.unitError, prometheus.GaugeValue, errVal, label)
	}

	metrics <- c.pollErrors
	metrics <- c.writeErrors
}

// IncPollError records a failed poll-sweep register read and, if a logger
// callback was supplied, reports err through it. Wire this to
// Gateway.SetPollErrorHook.
func (c *Collector) IncPollError(err error) {
	c.pollErrors.Inc()
	if c.logger != nil {
		c.logger(err)
	}
}

// IncWriteError records a failed operator write and, if a logger callback
// was supplied, reports err through it. Wire this to
// Gateway.SetWriteErrorHook.
func (c *Collector) IncWriteError(err error) {
	c.writeErrors.Inc()
	if c.logger != nil {
		c.logger(err)
	}
}
