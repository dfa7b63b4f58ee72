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
	"github.com/grailbio/base/log"
	"github.com/grailbio/bdp/encoding/bamprovider"
	"github.com/grailbio/hts/sam"
)

// Aggregate reads every record from iter into a new Table.  iter is not
// closed.  If iter reports an error, or a record is malformed, Aggregate
// returns that error and no Table.
func Aggregate(iter bamprovider.Iterator) (*Table, error) {
	t := NewTable()
	var nRecs, nUnmapped int64
	for iter.Scan() {
		r := iter.Record()
		nRecs++
		if r.Pos < 0 {
			nUnmapped++
		}
		if err := t.AddRecord(r); err != nil {
			return nil, err
		}
		sam.PutInFreePool(r)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	log.Debug.Printf("coverage: %d records (%d unmapped), %d bases at %d locations",
		nRecs, nUnmapped, t.Bases(), t.Len())
	return t, nil
}
