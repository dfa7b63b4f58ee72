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

// Package bedgraph encodes a per-position series into bedgraph tracks: lists
// of maximal runs of consecutive (in sort order) locations that share a
// contig and a value.
//
// Runs are split only when the value or the contig changes. Two locations
// with the same value are merged even if positions between them are not in
// the series, so a run may span an uncovered gap.
package bedgraph
