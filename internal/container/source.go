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

import "io"

// Source is the seekable byte source the reader consumes. A plain
// *os.File satisfies it; ReadAt keeps independent sequential and random
// access lanes from interfering with each other without needing two
// separate OS file descriptors, since pread never perturbs a shared
// cursor.
type Source interface {
	io.ReaderAt
}

// readFull reads exactly len(buf) bytes at off, treating a short read
// that hits EOF with zero bytes already consumed as io.EOF and any other
// short read as io.ErrUnexpectedEOF, matching io.ReadFull's contract but
// against a ReaderAt instead of a stream.
func readFull(src Source, off int64, buf []byte) error {
	n, err := src.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == io.EOF && n == 0 {
		return io.EOF
	}
	if err != nil && err != io.EOF {
		return err
	}
	return io.ErrUnexpectedEOF
}
