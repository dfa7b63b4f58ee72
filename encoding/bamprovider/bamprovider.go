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
	"context"
	"io"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/klauspost/compress/gzip"
	"v.io/x/lib/vlog"
)

// BAMProvider implements Provider for BAM and SAM files. The path may be any
// URL that grailbio/base/file understands. The file is read front to back;
// no index is needed.
type BAMProvider struct {
	// Path of the input file. Must be nonempty.
	Path string
	// Type selects the decoder. Unknown is read as BAM.
	Type FileType
	err  errors.Once

	mu      sync.Mutex
	nActive int
	header  *sam.Header
}

// xamReader is the part of bam.Reader and sam.Reader used here.
type xamReader interface {
	Header() *sam.Header
	Read() (*sam.Record, error)
}

type bamIterator struct {
	provider *BAMProvider
	in       file.File
	reader   xamReader
	// closers are closed in reverse order by internalClose, before in.
	closers []io.Closer

	err  error
	next *sam.Record
}

// open opens b.Path and wraps it in the decoder for b.Type. On success the
// caller owns in and closers.
func (b *BAMProvider) open(ctx context.Context) (in file.File, reader xamReader, closers []io.Closer, err error) {
	if in, err = file.Open(ctx, b.Path); err != nil {
		return
	}
	r := io.Reader(in.Reader(ctx))
	switch b.Type {
	case SAM:
		if fileio.DetermineType(b.Path) == fileio.Gzip {
			var gz *gzip.Reader
			if gz, err = gzip.NewReader(r); err != nil {
				break
			}
			closers = append(closers, gz)
			r = gz
		}
		var sr *sam.Reader
		if sr, err = sam.NewReader(r); err != nil {
			break
		}
		reader = sr
	default:
		var br *bam.Reader
		if br, err = bam.NewReader(r, 1); err != nil {
			break
		}
		closers = append(closers, br)
		reader = br
	}
	if err != nil {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i].Close() // nolint: errcheck
		}
		in.Close(ctx) // nolint: errcheck
		in, reader, closers = nil, nil, nil
		return
	}
	vlog.VI(1).Infof("%v: opened as %v", b.Path, b.Type)
	return
}

// GetHeader implements the Provider interface.
func (b *BAMProvider) GetHeader() (*sam.Header, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.header != nil {
		return b.header, nil
	}

	ctx := vcontext.Background()
	in, reader, closers, err := b.open(ctx)
	if err != nil {
		b.err.Set(err)
		return nil, err
	}
	b.header = reader.Header()
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i].Close() // nolint: errcheck
	}
	if err := in.Close(ctx); err != nil {
		b.err.Set(err)
		return nil, err
	}
	return b.header, nil
}

// Close implements the Provider interface.
func (b *BAMProvider) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.nActive > 0 {
		vlog.Fatalf("%d iterators still active for %+v", b.nActive, b)
	}
	return b.err.Err()
}

// NewIterator implements the Provider interface.
func (b *BAMProvider) NewIterator() Iterator {
	in, reader, closers, err := b.open(vcontext.Background())
	if err != nil {
		b.err.Set(err)
		return NewErrorIterator(err)
	}
	b.mu.Lock()
	b.nActive++
	b.mu.Unlock()
	return &bamIterator{provider: b, in: in, reader: reader, closers: closers}
}

func (i *bamIterator) Scan() bool {
	if i.err != nil {
		return false
	}
	i.next, i.err = i.reader.Read()
	if i.err != nil && i.err != io.EOF {
		i.err = errors.E(i.err, i.provider.Path, "read record")
	}
	return i.err == nil
}

func (i *bamIterator) Record() *sam.Record {
	return i.next
}

// Err implements the Iterator interface.
func (i *bamIterator) Err() error {
	if i.err == io.EOF {
		return nil
	}
	return i.err
}

// Close implements the Iterator interface.
func (i *bamIterator) Close() error {
	i.internalClose()
	b := i.provider
	b.mu.Lock()
	b.nActive--
	if b.nActive < 0 {
		vlog.Fatalf("Negative active count for %+v", b)
	}
	b.mu.Unlock()
	return i.Err()
}

func (i *bamIterator) internalClose() {
	for j := len(i.closers) - 1; j >= 0; j-- {
		if err := i.closers[j].Close(); err != nil && i.Err() == nil {
			i.err = err
		}
	}
	i.closers = nil
	i.reader = nil
	if i.in != nil {
		if err := i.in.Close(vcontext.Background()); err != nil && i.Err() == nil {
			i.err = err
		}
		i.in = nil
	}
	if err := i.Err(); err != nil {
		i.provider.err.Set(err)
	}
}
