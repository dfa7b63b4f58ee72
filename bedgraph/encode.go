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
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bdp/coverage"
)

// Run is one bedgraph interval. Start and End are 0-based, half-open.
type Run struct {
	Contig     string
	Start, End int
	Value      int
}

func (r Run) String() string {
	return fmt.Sprintf("%s:%d-%d=%d", r.Contig, r.Start, r.End, r.Value)
}

// runState is the state of one encoding pass. The zero value has not seen any
// location yet.
type runState struct {
	started bool
	refID   int32
	start   int32
	last    int32
	value   int
}

// observe feeds the next location and its value. If loc extends the current
// run, the extended state is returned. Otherwise next is a new run starting
// at loc, and closed holds the finished run; flushed reports whether closed is
// a real run (it is not for the very first location).
func (s runState) observe(loc coverage.Location, v int) (next, closed runState, flushed bool) {
	if s.started && loc.RefID == s.refID && v == s.value {
		s.last = loc.Pos
		return s, runState{}, false
	}
	next = runState{started: true, refID: loc.RefID, start: loc.Pos, last: loc.Pos, value: v}
	return next, s, s.started
}

func (s runState) run(names []string) (Run, error) {
	if s.refID < 0 || int(s.refID) >= len(names) {
		return Run{}, errors.E(errors.Invalid, fmt.Sprintf("bedgraph: no name for reference %d", s.refID))
	}
	return Run{
		Contig: names[s.refID],
		Start:  int(s.start),
		End:    int(s.last) + 1,
		Value:  s.value,
	}, nil
}

// Encode visits locs, which must be sorted by (RefID, Pos) with no duplicates,
// and calls emit once per run, in order.  value gives the value of each
// location, and names maps reference IDs to contig names.  The last run is
// always emitted; an empty locs emits nothing.  The first error from emit is
// returned.
func Encode(locs []coverage.Location, value func(coverage.Location) int, names []string, emit func(Run) error) error {
	var s runState
	for i, loc := range locs {
		if i > 0 && !locs[i-1].Less(loc) {
			return errors.E(errors.Invalid, fmt.Sprintf("bedgraph: locations out of order at index %d: %v, %v", i, locs[i-1], loc))
		}
		next, closed, flushed := s.observe(loc, value(loc))
		if flushed {
			if err := closed.emit(names, emit); err != nil {
				return err
			}
		}
		s = next
	}
	if !s.started {
		return nil
	}
	return s.emit(names, emit)
}

func (s runState) emit(names []string, emit func(Run) error) error {
	r, err := s.run(names)
	if err != nil {
		return err
	}
	return emit(r)
}

// EncodeRuns is a convenience wrapper around Encode that collects the runs in
// a slice.
func EncodeRuns(locs []coverage.Location, value func(coverage.Location) int, names []string) ([]Run, error) {
	var runs []Run
	err := Encode(locs, value, names, func(r Run) error {
		runs = append(runs, r)
		return nil
	})
	return runs, err
}
