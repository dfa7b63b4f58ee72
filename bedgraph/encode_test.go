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
package bedgraph_test

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bdp/bedgraph"
	"github.com/grailbio/bdp/coverage"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

var names = []string{"chr1", "chr2", "chr3"}

type point struct {
	refID, pos, value int
}

func split(points []point) ([]coverage.Location, func(coverage.Location) int) {
	locs := make([]coverage.Location, len(points))
	values := make(map[coverage.Location]int, len(points))
	for i, p := range points {
		locs[i] = coverage.Location{RefID: int32(p.refID), Pos: int32(p.pos)}
		values[locs[i]] = p.value
	}
	return locs, func(loc coverage.Location) int { return values[loc] }
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		points []point
		want   []bedgraph.Run
	}{
		{
			name: "empty",
		},
		{
			name:   "single",
			points: []point{{0, 7, 1}},
			want:   []bedgraph.Run{{"chr1", 7, 8, 1}},
		},
		{
			name:   "constant",
			points: []point{{0, 7, 2}, {0, 8, 2}, {0, 9, 2}},
			want:   []bedgraph.Run{{"chr1", 7, 10, 2}},
		},
		{
			name:   "one_differing_base_splits_in_three",
			points: []point{{0, 7, 2}, {0, 8, 2}, {0, 9, 3}, {0, 10, 2}, {0, 11, 2}},
			want: []bedgraph.Run{
				{"chr1", 7, 9, 2},
				{"chr1", 9, 10, 3},
				{"chr1", 10, 12, 2},
			},
		},
		{
			name:   "gap_is_merged",
			points: []point{{0, 1, 5}, {0, 2, 5}, {0, 100, 5}},
			want:   []bedgraph.Run{{"chr1", 1, 101, 5}},
		},
		{
			name:   "contig_change_splits",
			points: []point{{0, 1, 5}, {0, 2, 5}, {2, 0, 5}, {2, 1, 6}},
			want: []bedgraph.Run{
				{"chr1", 1, 3, 5},
				{"chr3", 0, 1, 5},
				{"chr3", 1, 2, 6},
			},
		},
		{
			name:   "zero_value",
			points: []point{{1, 0, 0}, {1, 1, 0}},
			want:   []bedgraph.Run{{"chr2", 0, 2, 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locs, value := split(tt.points)
			runs, err := bedgraph.EncodeRuns(locs, value, names)
			assert.NoError(t, err)
			expect.EQ(t, runs, tt.want)
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	locs, value := split([]point{{0, 5, 1}, {0, 4, 1}})
	_, err := bedgraph.EncodeRuns(locs, value, names)
	expect.True(t, errors.Is(errors.Invalid, err))

	locs, value = split([]point{{0, 5, 1}, {0, 5, 1}})
	_, err = bedgraph.EncodeRuns(locs, value, names)
	expect.True(t, errors.Is(errors.Invalid, err))

	locs, value = split([]point{{3, 5, 1}})
	_, err = bedgraph.EncodeRuns(locs, value, names)
	expect.True(t, errors.Is(errors.Invalid, err))
	expect.HasSubstr(t, err.Error(), "reference 3")

	emitErr := fmt.Errorf("disk full")
	locs, value = split([]point{{0, 1, 1}, {0, 2, 2}, {0, 3, 3}})
	n := 0
	err = bedgraph.Encode(locs, value, names, func(bedgraph.Run) error {
		n++
		return emitErr
	})
	expect.EQ(t, err, emitErr)
	expect.EQ(t, n, 1)
}

// expand turns runs back into one point per position, over contiguous runs
// only.
func expand(runs []bedgraph.Run) []point {
	refIDs := map[string]int{}
	for i, n := range names {
		refIDs[n] = i
	}
	var points []point
	for _, r := range runs {
		for p := r.Start; p < r.End; p++ {
			points = append(points, point{refIDs[r.Contig], p, r.Value})
		}
	}
	return points
}

func TestReencodeIsIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for iter := 0; iter < 50; iter++ {
		var points []point
		for refID := range names {
			n := r.Intn(100)
			v := r.Intn(4)
			for pos := 0; pos < n; pos++ {
				if r.Intn(5) == 0 {
					v = r.Intn(4)
				}
				points = append(points, point{refID, pos, v})
			}
		}
		locs, value := split(points)
		runs, err := bedgraph.EncodeRuns(locs, value, names)
		assert.NoError(t, err)
		expect.EQ(t, expand(runs), points)

		locs2, value2 := split(expand(runs))
		runs2, err := bedgraph.EncodeRuns(locs2, value2, names)
		assert.NoError(t, err)
		expect.EQ(t, runs2, runs)

		// Adjacent runs on the same contig always differ in value.
		for i := 1; i < len(runs); i++ {
			if runs[i].Contig == runs[i-1].Contig {
				expect.True(t, runs[i].Value != runs[i-1].Value, "%v %v", runs[i-1], runs[i])
				expect.EQ(t, runs[i].Start, runs[i-1].End)
			}
		}
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := bedgraph.NewWriter(&buf)
	assert.NoError(t, w.Write(bedgraph.Run{"chr1", 0, 10, 60}))
	assert.NoError(t, w.Write(bedgraph.Run{"chr1", 10, 12, 0}))
	assert.NoError(t, w.Write(bedgraph.Run{"chrUn_KI270302v1", 5, 6, 1234}))
	assert.NotNil(t, w.Write(bedgraph.Run{"chr1", 12, 12, 1}))
	assert.NoError(t, w.Flush())
	expect.EQ(t, buf.String(), "chr1\t0\t10\t60\nchr1\t10\t12\t0\nchrUn_KI270302v1\t5\t6\t1234\n")

	stats := w.Stats()
	expect.EQ(t, stats.Runs, 3)
	expect.EQ(t, stats.Bases, int64(13))

	// The fingerprint depends on content and order.
	fp := func(runs ...bedgraph.Run) uint64 {
		w := bedgraph.NewWriter(ioutil.Discard)
		for _, r := range runs {
			assert.NoError(t, w.Write(r))
		}
		return w.Stats().Fingerprint
	}
	a, b := bedgraph.Run{"chr1", 0, 10, 60}, bedgraph.Run{"chr1", 10, 12, 0}
	expect.EQ(t, fp(a, b), fp(a, b))
	expect.True(t, fp(a, b) != fp(b, a))
	expect.True(t, fp(a) != fp(bedgraph.Run{"chr1", 0, 10, 61}))
}

func TestWriteFile(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	locs, value := split([]point{{0, 3, 1}, {0, 4, 1}, {1, 0, 2}})
	path := filepath.Join(tmpdir, "x.bedgraph")
	stats, err := bedgraph.WriteFile(ctx, path, locs, value, names)
	assert.NoError(t, err)
	expect.EQ(t, stats.Runs, 2)
	expect.EQ(t, stats.Bases, int64(3))
	got, err := ioutil.ReadFile(path)
	assert.NoError(t, err)
	expect.EQ(t, string(got), "chr1\t3\t5\t1\nchr2\t0\t1\t2\n")

	// A regular file where a directory is expected makes the output
	// uncreatable.
	blocker := filepath.Join(tmpdir, "blocker")
	assert.NoError(t, ioutil.WriteFile(blocker, nil, 0644))
	_, err = bedgraph.WriteFile(ctx, filepath.Join(blocker, "x.bedgraph"), locs, value, names)
	expect.NotNil(t, err)
}
