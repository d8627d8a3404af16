// Copyright 2026 BLF Reader Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics instruments the container cache: how many containers
// were scanned and pulled, how many bytes of decompressed data are being
// retained, how often the index scan had to resync past stray bytes, and
// how long DEFLATE decompression takes. Collector satisfies
// internal/container.Metrics, so it can be handed straight to
// container.NewCache.
package metrics

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "blfreader"

var (
	containersScanned = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "containers_scanned_total",
		Help:      "Log containers discovered while building the container index.",
	})
	containersPulled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "containers_pulled_total",
		Help:      "Compressed log containers decompressed into memory.",
	}, []string{"compressed"})
	cacheBytesRetained = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "bytes_retained",
		Help:      "Cumulative decompressed bytes retained by the container cache.",
	})
	resyncEvents = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "resync_events_total",
		Help:      "Single-byte resyncs performed while scanning for the next object magic.",
	})
)

// Register adds the package's collectors to the default Prometheus
// registry. Safe to call at most once per process; a second call panics,
// matching prometheus.MustRegister's own contract.
func Register() {
	prometheus.MustRegister(containersScanned, containersPulled, cacheBytesRetained, resyncEvents)
}

// Collector implements internal/container.Metrics, feeding the package
// counters/gauges above plus an HdrHistogram of decompression latency
// that a Reader exposes through CacheStats.
type Collector struct {
	decompressLatency *hdrhistogram.Histogram
}

// NewCollector returns a Collector tracking decompression latency between
// 1 microsecond and 10 seconds at 3 significant figures, matching the
// precision HdrHistogram is built for.
func NewCollector() *Collector {
	return &Collector{
		decompressLatency: hdrhistogram.New(1, 10_000_000, 3),
	}
}

func (c *Collector) ContainerScanned() {
	containersScanned.Inc()
}

func (c *Collector) ContainerPulled(compressed bool) {
	label := "false"
	if compressed {
		label = "true"
	}
	containersPulled.WithLabelValues(label).Inc()
}

func (c *Collector) ResyncEvent() {
	resyncEvents.Inc()
}

func (c *Collector) DecompressLatency(d time.Duration) {
	_ = c.decompressLatency.RecordValue(d.Microseconds())
}

// BytesRetained adds n to the cache_bytes_retained gauge. Called once per
// successful pull with the decompressed container's size, through the
// BytesRetained method of internal/container.Metrics.
func (c *Collector) BytesRetained(n int64) {
	cacheBytesRetained.Add(float64(n))
}

// Snapshot is the point-in-time view of decompression latency returned by
// Reader.CacheStats.
type Snapshot struct {
	Count int64
	Mean  float64
	P50   int64
	P90   int64
	P99   int64
	Max   int64
}

// Snapshot reads the current HdrHistogram percentiles. Collector adds no
// locking around the histogram, so Snapshot is not synchronized with
// DecompressLatency.
func (c *Collector) Snapshot() Snapshot {
	h := c.decompressLatency
	return Snapshot{
		Count: h.TotalCount(),
		Mean:  h.Mean(),
		P50:   h.ValueAtQuantile(50),
		P90:   h.ValueAtQuantile(90),
		P99:   h.ValueAtQuantile(99),
		Max:   h.Max(),
	}
}
