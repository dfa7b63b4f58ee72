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
package bamprovider

import (
	"strings"

	"github.com/grailbio/hts/sam"
	"v.io/x/lib/vlog"
)

// Provider allows reading one BAM or SAM file.
type Provider interface {
	// GetHeader returns the header for the provided alignment data.  The
	// callee must not modify the returned header object.
	//
	// REQUIRES: Close has not been called.
	GetHeader() (*sam.Header, error)

	// NewIterator returns an iterator over all the records in the file, in
	// file order. Unmapped records are included.
	//
	// REQUIRES: Close has not been called.
	NewIterator() Iterator

	// Close must be called exactly once. It returns any error encountered
	// by the provider, or any iterator created by the provider.
	//
	// REQUIRES: All the iterators created by NewIterator have been closed.
	Close() error
}

// Iterator iterates over the records of a file.
type Iterator interface {
	// Scan returns where there are any records remaining in the iterator,
	// and if so, advances the iterator to the next record. If the iterator
	// reaches the end of the file, Scan() returns false.  If an error
	// occurs, Scan() returns false and the error can be retrieved by
	// calling Err().
	//
	// REQUIRES: Close has not been called.
	Scan() bool

	// Record returns the current record in the iterator. This must be
	// called only after a call to Scan() returns true.
	//
	// REQUIRES: Close has not been called.
	Record() *sam.Record

	// Err returns the error encoutered during iteration, or nil if no error
	// occurred.  An io.EOF error will be translated to nil.
	Err() error

	// Close must be called exactly once. It returns the value of Err().
	Close() error
}

// FileType represents the type of an alignment file.
type FileType int

const (
	// Unknown is a sentinel. It is read as BAM.
	Unknown FileType = iota
	// BAM file
	BAM
	// SAM file, optionally gzip-compressed.
	SAM
)

func (t FileType) String() string {
	switch t {
	case BAM:
		return "bam"
	case SAM:
		return "sam"
	default:
		return "unknown"
	}
}

// GuessFileType infers the file type from the path's extension.
func GuessFileType(path string) FileType {
	if strings.HasSuffix(path, ".bam") {
		return BAM
	}
	if strings.HasSuffix(path, ".sam") || strings.HasSuffix(path, ".sam.gz") {
		return SAM
	}
	vlog.VI(1).Infof("%v: could not detect file type.", path)
	return Unknown
}

// NewProvider creates a Provider for the file at path. The decoder is chosen
// by GuessFileType.
func NewProvider(path string) Provider {
	return &BAMProvider{Path: path, Type: GuessFileType(path)}
}

// RefNames returns the reference names listed in the header, indexed by
// reference ID.
func RefNames(h *sam.Header) []string {
	refs := h.Refs()
	names := make([]string, len(refs))
	for _, ref := range refs {
		names[ref.ID()] = ref.Name()
	}
	return names
}
