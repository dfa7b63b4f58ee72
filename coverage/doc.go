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

// Package coverage accumulates per-position mapping-quality sums and read
// depths from aligned reads.
//
// Every reference-consuming base of a mapped read contributes the read's
// MAPQ to the sum, and 1 to the count, of the Location it aligns to. The
// resulting Table has no intrinsic order; SortedLocations sorts its keys by
// (reference ID, position) for downstream encoding.
package coverage
