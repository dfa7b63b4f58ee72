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

// failedIterator is handed out when the input cannot be opened. It yields no
// records and reports the open error from both Err and Close.
type failedIterator struct {
	err error
}

// NewErrorIterator returns an Iterator that yields no records and reports
// err.
func NewErrorIterator(err error) Iterator {
	return &failedIterator{err: err}
}

func (i *failedIterator) Scan() bool { return false }

// Record always returns nil, since Scan never succeeds.
func (i *failedIterator) Record() *sam.Record { return nil }

// Err implements the Iterator interface.
func (i *failedIterator) Err() error { return i.err }

// Close implements the Iterator interface.
func (i *failedIterator) Close() error { return i.err }
