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

package container

import (
	"bytes"
	"io"
	"time"

	"github.com/klauspost/compress/flate"

	"github.com/13521900025/blfreader/internal/blferr"
)

// Metrics is the subset of observability hooks the cache reports through;
// satisfied by observability/metrics.Collector in the running binary and
// left nil-safe so tests can omit it entirely.
type Metrics interface {
	ContainerScanned()
	ContainerPulled(compressed bool)
	DecompressLatency(time.Duration)
	ResyncEvent()
	BytesRetained(n int64)
}

// Cache turns an Index into a readable virtual byte space. Compressed
// containers are decompressed into memory on first touch and retained
// for the lifetime of the Cache, since re-inflating one on every read
// would defeat the purpose of caching it. Uncompressed containers are
// never allocated or cached at all: ReadVirtual satisfies them straight
// from src, since their bytes already live in the file untouched.
type Cache struct {
	src     Source
	index   *Index
	metrics Metrics
}

// NewCache builds a Cache over src using a previously-built Index. metrics
// may be nil.
func NewCache(src Source, idx *Index, metrics Metrics) *Cache {
	return &Cache{src: src, index: idx, metrics: metrics}
}

// pull returns the decompressed bytes of a compressed descriptor d,
// populating its cache entry on first call. Concurrent callers racing on
// the same descriptor both pull and the loser's result is discarded;
// correctness doesn't depend on the cache being populated exactly once,
// only on Descriptor's own bytes field being read and written under its
// own mutex. Callers must only invoke this for d.CompressionMethod !=
// wire.CompressionNone; uncompressed containers are read directly by
// ReadVirtual instead.
func (c *Cache) pull(d *Descriptor) ([]byte, error) {
	if b := d.bytes(); b != nil {
		return b, nil
	}

	raw := make([]byte, d.InfileLength-(d.InfileDataStart-d.InfileStartPos))
	if len(raw) > 0 {
		if err := readFull(c.src, d.InfileDataStart, raw); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	decoded, err := inflate(raw, d.RealLength)
	if c.metrics != nil {
		c.metrics.DecompressLatency(time.Since(start))
	}
	if err != nil {
		return nil, blferr.Wrap(blferr.KindDecompressFailed, err, "inflate log container")
	}

	if c.metrics != nil {
		c.metrics.ContainerPulled(true)
		c.metrics.BytesRetained(int64(len(decoded)))
	}

	d.setBytes(decoded)
	return decoded, nil
}

// inflate runs raw through a DEFLATE decompressor, returning exactly
// wantLen bytes. A stream that produces fewer bytes than the log
// container declared is a decompress-failed error; a stream that produces more is
// truncated to wantLen, matching the original dissector's tolerance of
// a few trailing pad bytes some writers emit.
func inflate(raw []byte, wantLen int64) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(raw))
	defer fr.Close()

	out := make([]byte, wantLen)
	n, err := io.ReadFull(fr, out)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	if int64(n) < wantLen {
		return nil, blferr.Newf(blferr.KindDecompressFailed, "inflated %d of %d expected bytes", n, wantLen)
	}
	return out, nil
}
