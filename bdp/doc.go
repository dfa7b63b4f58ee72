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

/*
Package bdp computes average-MAPQ and depth bedgraph tracks from a BAM or SAM
file.

Run makes one pass over the input, accumulating the MAPQ sum and read count of
every reference position covered by a mapped read, then writes two files:

  <prefix>.mapq.bedgraph   round(MAPQ sum / depth) per position
  <prefix>.dp.bedgraph     depth per position

Each file holds tab-separated "contig start end value" lines, 0-based and
half-open, in ascending (reference ID, position) order. Neighboring positions
with the same value are merged into one line.

Nothing is written until the whole input has been read, so a malformed input
leaves no partial output behind.
*/
package bdp
