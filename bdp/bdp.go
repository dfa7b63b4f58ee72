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
package bdp

import (
	"context"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bdp/bedgraph"
	"github.com/grailbio/bdp/coverage"
	"github.com/grailbio/bdp/encoding/bamprovider"
)

// MapQPath returns the path of the average-MAPQ track for outPrefix.
func MapQPath(outPrefix string) string { return outPrefix + ".mapq.bedgraph" }

// DepthPath returns the path of the depth track for outPrefix.
func DepthPath(outPrefix string) string { return outPrefix + ".dp.bedgraph" }

// Run reads the alignments in xampath and writes MapQPath(outPrefix) and
// DepthPath(outPrefix).
//
// The error, if any, names the phase that failed: "bdp open" when the input
// or its header cannot be read, "bdp parse" when a record is malformed, and
// "bdp write" when an output file cannot be written.
func Run(ctx context.Context, xampath, outPrefix string) (err error) {
	provider := bamprovider.NewProvider(xampath)
	defer func() {
		if e := provider.Close(); e != nil && err == nil {
			err = errors.E(e, "bdp parse", xampath)
		}
	}()
	return run(ctx, provider, xampath, outPrefix)
}

type track struct {
	name  string
	path  string
	value func(coverage.Location) int
}

func run(ctx context.Context, provider bamprovider.Provider, xampath, outPrefix string) error {
	header, err := provider.GetHeader()
	if err != nil {
		return errors.E(err, "bdp open", xampath)
	}
	names := bamprovider.RefNames(header)

	iter := provider.NewIterator()
	table, err := coverage.Aggregate(iter)
	if e := iter.Close(); e != nil && err == nil {
		err = e
	}
	if err != nil {
		return errors.E(err, "bdp parse", xampath)
	}
	log.Printf("bdp: %s: %d bases at %d positions", xampath, table.Bases(), table.Len())

	locs := table.SortedLocations()
	for _, t := range []track{
		{name: "mapq", path: MapQPath(outPrefix), value: table.AvgMapQ},
		{name: "depth", path: DepthPath(outPrefix), value: table.Depth},
	} {
		stats, err := bedgraph.WriteFile(ctx, t.path, locs, t.value, names)
		if err != nil {
			return errors.E(err, "bdp write", t.path)
		}
		log.Printf("bdp: wrote %s track %s: %v", t.name, t.path, stats)
	}
	return nil
}
