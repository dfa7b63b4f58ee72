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
	"github.com/grailbio/hts/sam"
)

// fakeProvider is only for unittests. It yields the given records.
type fakeProvider struct {
	header *sam.Header
	recs   []*sam.Record
	err    error
}

type fakeIterator struct {
	recs []*sam.Record
	rec  *sam.Record
	err  error
}

// NewFakeProvider creates a provider that returns "header" in response to a
// GetHeader() call, and recs by NewIterator calls.
func NewFakeProvider(header *sam.Header, recs []*sam.Record) Provider {
	return &fakeProvider{header: header, recs: recs}
}

// NewFakeErrorProvider is like NewFakeProvider, but iterators created by it
// fail with err after yielding all of recs.
func NewFakeErrorProvider(header *sam.Header, recs []*sam.Record, err error) Provider {
	return &fakeProvider{header: header, recs: recs, err: err}
}

// GetHeader implements the Provider interface. It returns the header passed to
// the constructor.
func (b *fakeProvider) GetHeader() (*sam.Header, error) {
	return b.header, nil
}

// Close implements the Provider interface.
func (b *fakeProvider) Close() error {
	return nil
}

// NewIterator implements the Provider interface.
func (b *fakeProvider) NewIterator() Iterator {
	return &fakeIterator{recs: b.recs, err: b.err}
}

// Err implements the Iterator interface.
func (i *fakeIterator) Err() error {
	if len(i.recs) > 0 {
		return nil
	}
	return i.err
}

// Close implements the Iterator interface.
func (i *fakeIterator) Close() error {
	return i.Err()
}

func (i *fakeIterator) Scan() bool {
	if len(i.recs) == 0 {
		return false
	}
	i.rec = i.recs[0]
	i.recs = i.recs[1:]
	return true
}

func (i *fakeIterator) Record() *sam.Record {
	// Return a copy so that the code under test cannot alter the
	// original test input data.
	copy := sam.GetFromFreePool()
	*copy = *i.rec
	return copy
}
