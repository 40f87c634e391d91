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

package itemcache

import (
	"sync"

	"golang.org/x/exp/slices"
)

// bucket is the ordered collision chain for one fingerprint. Length is
// almost always 1; it only grows when distinct items happen to share
// a fingerprint. bucket is only ever written by the Worker goroutine
// and carries no lock of its own; the Worker grows it while holding
// dedupIndex.mu, so summarize can read its size.
type bucket struct {
	items []Item
}

// find walks the bucket looking for an item structurally equal to
// candidate, returning it (the canonical) and true on a hit.
func (b *bucket) find(candidate Identity) (Item, bool) {
	for _, it := range b.items {
		if it.Equal(candidate) {
			return it, true
		}
	}
	return nil, false
}

// dedupIndex is the map fingerprint -> bucket. Bucket *contents* are
// only ever touched by a single Cache's Worker goroutine. The map
// itself carries a thin mutex purely so Cache.Len and diagnostics can
// read its size and bucket sizes from another goroutine without racing
// the Worker's inserts and bucket growth.
type dedupIndex struct {
	mu sync.Mutex
	m  map[uint64]*bucket
}

func newDedupIndex() *dedupIndex {
	return &dedupIndex{m: make(map[uint64]*bucket)}
}

// get returns the bucket for fid, if any. Only called by the Worker.
func (d *dedupIndex) get(fid uint64) (*bucket, bool) {
	d.mu.Lock()
	b, ok := d.m[fid]
	d.mu.Unlock()
	return b, ok
}

// insert records a brand new bucket for a fingerprint that has never
// been seen before. Callers must not call insert for a fingerprint
// already present; the Worker only reaches this path on a true miss.
func (d *dedupIndex) insert(fid uint64, b *bucket) {
	d.mu.Lock()
	d.m[fid] = b
	d.mu.Unlock()
}

// len reports the number of distinct fingerprints currently indexed,
// i.e. the number of live buckets (Cache.Len).
func (d *dedupIndex) len() int {
	d.mu.Lock()
	n := len(d.m)
	d.mu.Unlock()
	return n
}

// BucketSummary is one row of a diagnostic snapshot: a fingerprint and
// the number of canonical items sharing it.
type BucketSummary struct {
	Fingerprint uint64
	Size        int
}

// summarize returns a deterministically ordered snapshot of bucket
// sizes, suitable for diagnostics or tests that want reproducible
// output across runs despite Go's randomized map iteration order.
func (d *dedupIndex) summarize() []BucketSummary {
	d.mu.Lock()
	rows := make([]BucketSummary, 0, len(d.m))
	for fid, b := range d.m {
		rows = append(rows, BucketSummary{Fingerprint: fid, Size: len(b.items)})
	}
	d.mu.Unlock()
	slices.SortFunc(rows, func(a, b BucketSummary) bool {
		return a.Fingerprint < b.Fingerprint
	})
	return rows
}

// free releases every bucket held by the index. It must only be
// called after the owning Worker goroutine has exited: Go's garbage
// collector reclaims the bucket and item memory once the last
// reference (here, and in any destination aggregate) is dropped, so
// "freeing" is simply discarding the index's own references.
func (d *dedupIndex) free() {
	d.mu.Lock()
	d.m = nil
	d.mu.Unlock()
}
