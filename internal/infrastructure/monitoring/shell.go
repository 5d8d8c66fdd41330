package monitoring

import "github.com/prometheus/client_golang/prometheus"

// ShellGauges is a point-in-time reading of session state.
type ShellGauges struct {
	WindowsOpen      int
	WindowsMinimized int
	Documents        int
	Recycled         int
	Subscribers      int
	StartMenuOpen    bool
}

// shellCollector reads the session once per scrape.
type shellCollector struct {
	read func() ShellGauges

	windows     *prometheus.Desc
	minimized   *prometheus.Desc
	documents   *prometheus.Desc
	recycled    *prometheus.Desc
	subscribers *prometheus.Desc
	startMenu   *prometheus.Desc
}

// ObserveShell registers gauges backed by read.
func (m *Metrics) ObserveShell(read func() ShellGauges) error {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "shell", name), help, nil, nil)
	}
	return m.registry.Register(&shellCollector{
		read:        read,
		windows:     desc("windows_open", "Open windows, minimized included"),
		minimized:   desc("windows_minimized", "Minimized windows"),
		documents:   desc("documents", "Live documents"),
		recycled:    desc("documents_recycled", "Documents in the recycle bin"),
		subscribers: desc("subscribers", "Change feed subscribers"),
		startMenu:   desc("start_menu_open", "1 while the start menu is open"),
	})
}

func (c *shellCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.windows
	ch <- c.minimized
	ch <- c.documents
	ch <- c.recycled
	ch <- c.subscribers
	ch <- c.startMenu
}

func (c *shellCollector) Collect(ch chan<- prometheus.Metric) {
	g := c.read()
	gauge := func(d *prometheus.Desc, v int) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v))
	}
	gauge(c.windows, g.WindowsOpen)
	gauge(c.minimized, g.WindowsMinimized)
	gauge(c.documents, g.Documents)
	gauge(c.recycled, g.Recycled)
	gauge(c.subscribers, g.Subscribers)
	open := 0
	if g.StartMenuOpen {
		open = 1
	}
	gauge(c.startMenu, open)
}
