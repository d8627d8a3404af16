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

package blfreader

import (
	"github.com/google/uuid"

	"github.com/13521900025/blfreader/internal/iface"
	"github.com/13521900025/blfreader/internal/xlate"
	"github.com/13521900025/blfreader/observability/metrics"
)

// options holds the small typed knobs Open accepts. There is no config
// file for the library itself — only the cmd/blfdump CLI built on top of
// it reads one.
type options struct {
	id      uuid.UUID
	metrics *metrics.Collector
	warner  xlate.Warner
	ifaceCB iface.Callback
}

func defaultOptions() options {
	return options{id: uuid.New()}
}

// Option configures a Reader at Open time.
type Option func(*options)

// WithID overrides the random Reader.ID Open would otherwise mint,
// useful when a caller wants to correlate a Reader with its own
// request/session id.
func WithID(id uuid.UUID) Option {
	return func(o *options) { o.id = id }
}

// WithMetrics attaches a Collector so the cache records container-scan,
// pull, byte-retention and resync metrics and Reader.CacheStats reports
// decompression latency. Omit for a Reader with no metrics overhead.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) { o.metrics = c }
}

// WithWarner overrides the default logrus-backed warning sink with a
// caller-supplied one, e.g. to route warnings somewhere other than
// observability/log.
func WithWarner(w xlate.Warner) Option {
	return func(o *options) { o.warner = w }
}

// WithInterfaceCallback attaches cb, called once for every interface the
// Reader's registry assigns an id to, with the fixed time resolution and
// snaplen this reader reports for all interfaces and the name assigned
// (synthesized, or overridden by the data itself). Useful for a caller
// building its own interface-description records, e.g. a pcapng writer.
func WithInterfaceCallback(cb iface.Callback) Option {
	return func(o *options) { o.ifaceCB = cb }
}
