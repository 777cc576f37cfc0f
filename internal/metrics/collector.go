// Package metrics exports cache statistics to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"gocache/internal/cache"
)

// Collector turns a cache.StatsSource into Prometheus metrics on every
// scrape. It holds no state of its own, so counters never drift from the
// cache; a Clear shows up as a counter reset.
type Collector struct {
	src cache.StatsSource

	hits      *prometheus.Desc
	misses    *prometheus.Desc
	evictions *prometheus.Desc
	requests  *prometheus.Desc
	hitRatio  *prometheus.Desc
	size      *prometheus.Desc
	capacity  *prometheus.Desc
}

// NewCollector describes metrics under namespace with a constant
// cache="name" label.
func NewCollector(namespace, name string, src cache.StatsSource) *Collector {
	labels := prometheus.Labels{"cache": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", metric), help, nil, labels)
	}
	return &Collector{
		src:       src,
		hits:      desc("hits_total", "Lookups that found a value."),
		misses:    desc("misses_total", "Lookups that found nothing."),
		evictions: desc("evictions_total", "Entries evicted to respect capacity."),
		requests:  desc("requests_total", "Lookups served, hits plus misses."),
		hitRatio:  desc("hit_ratio", "Hits divided by requests, 0 before the first request."),
		size:      desc("entries", "Entries currently cached."),
		capacity:  desc("capacity", "Maximum number of cached entries."),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
	ch <- c.requests
	ch <- c.hitRatio
	ch <- c.size
	ch <- c.capacity
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	m := c.src.Metrics()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(m.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(m.Misses))
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(m.Evictions))
	ch <- prometheus.MustNewConstMetric(c.requests, prometheus.CounterValue, float64(m.TotalRequests))
	ch <- prometheus.MustNewConstMetric(c.hitRatio, prometheus.GaugeValue, m.HitRate())
	ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(c.src.Len()))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(c.src.Cap()))
}
