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
	"sort"
)

// Location is a 0-based position on one reference sequence.  It is the key of
// a Table.
type Location struct {
	RefID int32
	Pos   int32
}

// Less orders Locations by reference ID, then position.
func (l Location) Less(o Location) bool {
	if l.RefID != o.RefID {
		return l.RefID < o.RefID
	}
	return l.Pos < o.Pos
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.RefID, l.Pos)
}

// SortLocations sorts locs in place by (RefID, Pos).
func SortLocations(locs []Location) {
	sort.Slice(locs, func(i, j int) bool { return locs[i].Less(locs[j]) })
}
