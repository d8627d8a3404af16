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

// Package container implements the on-demand decompression/cache engine
// described by the container layer: it maps a virtual (decompressed)
// byte range onto one or more physical log containers, some of which are
// DEFLATE-compressed, and exposes a single read_virtual entry point so
// every layer above only ever sees virtual offsets.
package container

import (
	"sync"
)

// Descriptor is one entry in the container index. Fields mirror
// blf_log_container_t in the Vector BLF format one-for-one.
type Descriptor struct {
	InfileStartPos  int64
	InfileLength    int64
	InfileDataStart int64

	RealStartPos int64
	RealLength   int64

	CompressionMethod uint16

	mu      sync.Mutex
	realData []byte // populated lazily by Cache.pull; never mutated once set
}

// Cached reports whether a compressed descriptor's decompressed buffer
// has already been pulled into memory. Always false for an uncompressed
// descriptor: those are never allocated or retained, since ReadVirtual
// serves them straight from the file on every call.
func (d *Descriptor) Cached() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.realData != nil
}

func (d *Descriptor) bytes() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.realData
}

func (d *Descriptor) setBytes(b []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.realData = b
}

// End returns the exclusive end of this container's virtual range.
func (d *Descriptor) End() int64 {
	return d.RealStartPos + d.RealLength
}

// Contains reports whether virtual offset pos falls within this
// container's virtual range.
func (d *Descriptor) Contains(pos int64) bool {
	return pos >= d.RealStartPos && pos < d.End()
}
