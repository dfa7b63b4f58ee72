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
package coverage

import (
	"fmt"
	"math"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/hts/sam"
)

// Entry holds the statistics accumulated for one Location.  Count is at
// least 1 for every Entry stored in a Table.
type Entry struct {
	MapQSum float64
	Count   uint32
}

// AvgMapQ returns the mean MAPQ of the reads covering the location, rounded
// half away from zero.
func (e Entry) AvgMapQ() int {
	return int(math.Round(e.MapQSum / float64(e.Count)))
}

// Table maps each covered Location to its Entry.
type Table struct {
	entries map[Location]Entry
	bases   int64
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{entries: make(map[Location]Entry)}
}

// Len returns the number of distinct covered locations.
func (t *Table) Len() int { return len(t.entries) }

// Bases returns the number of (read, reference base) pairs added so far. It
// equals the sum of Count over all entries.
func (t *Table) Bases() int64 { return t.bases }

// Get returns the Entry for loc. ok is false if no read covers loc.
func (t *Table) Get(loc Location) (e Entry, ok bool) {
	e, ok = t.entries[loc]
	return
}

// Depth returns the number of reads covering loc, or 0.
func (t *Table) Depth(loc Location) int {
	return int(t.entries[loc].Count)
}

// AvgMapQ returns the rounded mean MAPQ at loc.
//
// REQUIRES: loc is covered.
func (t *Table) AvgMapQ(loc Location) int {
	return t.entries[loc].AvgMapQ()
}

// SortedLocations returns all covered locations in (RefID, Pos) order.
func (t *Table) SortedLocations() []Location {
	locs := make([]Location, 0, len(t.entries))
	for loc := range t.entries {
		locs = append(locs, loc)
	}
	SortLocations(locs)
	return locs
}

func (t *Table) add(loc Location, mapq float64) {
	e := t.entries[loc]
	e.MapQSum += mapq
	e.Count++
	t.entries[loc] = e
	t.bases++
}

// AddRecord adds r's contribution to the table.  Unmapped records (Pos < 0)
// are ignored.  Only CIGAR operations that consume the reference advance the
// position; insertions, clips and padding contribute nothing.
func (t *Table) AddRecord(r *sam.Record) error {
	if r.Pos < 0 {
		return nil
	}
	if r.Ref == nil || r.Ref.ID() < 0 {
		return errors.E(errors.Integrity, fmt.Sprintf("coverage: read %s is aligned at position %d but has no reference", r.Name, r.Pos))
	}
	if r.Pos > math.MaxInt32 {
		return errors.E(errors.Integrity, fmt.Sprintf("coverage: read %s position %d out of range", r.Name, r.Pos))
	}
	loc := Location{RefID: int32(r.Ref.ID()), Pos: int32(r.Pos)}
	mapq := float64(r.MapQ)
	for _, co := range r.Cigar {
		if co.Type().Consumes().Reference != 1 {
			continue
		}
		for n := co.Len(); n > 0; n-- {
			t.add(loc, mapq)
			loc.Pos++
		}
	}
	return nil
}
