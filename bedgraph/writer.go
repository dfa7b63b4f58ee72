// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package bedgraph

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/dgryski/go-farm"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/bdp/coverage"
)

// Stats summarizes the runs written by a Writer.
type Stats struct {
	// Runs is the number of lines written.
	Runs int
	// Bases is the sum of End-Start over all runs.
	Bases int64
	// Fingerprint is a hash over the written runs, in order. Two tracks with
	// the same fingerprint have (with high probability) identical contents.
	Fingerprint uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("%d runs, %d bases, fingerprint %016x", s.Runs, s.Bases, s.Fingerprint)
}

// Writer writes runs as tab-separated "contig start end value" lines.
type Writer struct {
	tsvw  *tsv.Writer
	stats Stats
	buf   []byte
}

// NewWriter creates a Writer that writes to w. Flush must be called after the
// last Write.
func NewWriter(w io.Writer) *Writer {
	return &Writer{tsvw: tsv.NewWriter(w)}
}

// Write appends one line.
func (w *Writer) Write(r Run) error {
	if r.Start < 0 || r.End <= r.Start || r.Value < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("bedgraph: invalid run %v", r))
	}
	w.tsvw.WriteString(r.Contig)
	w.tsvw.WriteUint32(uint32(r.Start))
	w.tsvw.WriteUint32(uint32(r.End))
	w.tsvw.WriteUint32(uint32(r.Value))
	if err := w.tsvw.EndLine(); err != nil {
		return err
	}

	w.buf = append(w.buf[:0], r.Contig...)
	w.buf = append(w.buf, '\t')
	w.buf = strconv.AppendInt(w.buf, int64(r.Start), 10)
	w.buf = append(w.buf, '\t')
	w.buf = strconv.AppendInt(w.buf, int64(r.End), 10)
	w.buf = append(w.buf, '\t')
	w.buf = strconv.AppendInt(w.buf, int64(r.Value), 10)
	w.stats.Fingerprint = farm.Hash64WithSeed(w.buf, w.stats.Fingerprint)
	w.stats.Runs++
	w.stats.Bases += int64(r.End - r.Start)
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.tsvw.Flush()
}

// Stats returns the statistics of the runs written so far.
func (w *Writer) Stats() Stats {
	return w.stats
}

// WriteFile encodes locs into a new bedgraph file at path. See Encode for the
// meaning of the arguments.
func WriteFile(ctx context.Context, path string, locs []coverage.Location, value func(coverage.Location) int, names []string) (stats Stats, err error) {
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, out, &err)

	w := NewWriter(out.Writer(ctx))
	if err = Encode(locs, value, names, w.Write); err != nil {
		return
	}
	if err = w.Flush(); err != nil {
		return
	}
	stats = w.Stats()
	return
}
