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
bio-bdp summarizes a BAM (or SAM) file as two bedgraph tracks: the average
mapping quality and the read depth at every covered reference position.

Usage:
bio-bdp my.bam out/my

This writes out/my.mapq.bedgraph and out/my.dp.bedgraph. Each line is
"contig<TAB>start<TAB>end<TAB>value", 0-based and half-open. Unmapped reads are
ignored, and only CIGAR operations that consume the reference (M, D, N, =, X)
count toward a position.

The whole input is read into memory before either output file is created, so
memory use grows with the number of distinct covered positions.
*/
package main
