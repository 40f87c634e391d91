// Copyright (C) 2026 The itemcache Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"sync"

	"github.com/scaprun/itemcache"
)

// fileRecord simulates one observed file's scan result: a path and a
// permission mode. Two fileRecords with the same Path and Mode collapse
// to one canonical entry, mirroring a probe that repeatedly observes
// the same filesystem object.
type fileRecord struct {
	Path  string
	Mode  uint32
	stamp string
}

func (f *fileRecord) Fingerprint() uint64 {
	return itemcache.SipFingerprint(0x1, 0x2, []byte(fmt.Sprintf("%s:%o", f.Path, f.Mode)))
}

func (f *fileRecord) Equal(other itemcache.Identity) bool {
	o, ok := other.(*fileRecord)
	return ok && o.Path == f.Path && o.Mode == f.Mode
}

func (f *fileRecord) SetStamp(stamp string) { f.stamp = stamp }
func (f *fileRecord) Stamp() string         { return f.stamp }

// packageRecord simulates one observed installed-package result: a
// name and version. Two packageRecords with the same Name and
// Version collapse to one canonical entry.
type packageRecord struct {
	Name    string
	Version string
	stamp   string
}

func (p *packageRecord) Fingerprint() uint64 {
	return itemcache.SipFingerprint(0x3, 0x4, []byte(p.Name+"@"+p.Version))
}

func (p *packageRecord) Equal(other itemcache.Identity) bool {
	o, ok := other.(*packageRecord)
	return ok && o.Name == p.Name && o.Version == p.Version
}

func (p *packageRecord) SetStamp(stamp string) { p.stamp = stamp }
func (p *packageRecord) Stamp() string         { return p.stamp }

// memoryDestination accumulates canonical items in submission order.
// A Cache only ever calls Append from its single Worker goroutine,
// but the mutex here is kept anyway so this type stays safe to reuse
// as a Destination for more than one Cache at a time.
type memoryDestination struct {
	mu    sync.Mutex
	items []itemcache.Item
}

func (d *memoryDestination) Append(item itemcache.Item) error {
	d.mu.Lock()
	d.items = append(d.items, item)
	d.mu.Unlock()
	return nil
}
