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

import "github.com/scaprun/itemcache/internal/osthread"

// worker is the single long-running consumer goroutine started by
// New. It drains the Work Queue one entry at a time, consults and
// updates the Dedup Index, stamps distinct items, and appends
// canonical items to their destination.
func (c *Cache) worker() {
	defer close(c.workerDone)
	for {
		entry, ok, discarded := c.queue.dequeue()
		if !ok {
			return
		}
		if discarded {
			// Free has begun and this entry was still buffered when it
			// did; it is dropped rather than processed (see Cache.Free).
			// A waiting Barrier must still be woken so its producer
			// doesn't hang forever.
			if entry.kind == barrierEntry {
				close(entry.done)
			}
			continue
		}
		switch entry.kind {
		case barrierEntry:
			close(entry.done)
		case insertEntry:
			if err := c.processInsert(entry); err != nil {
				c.fail(err)
				return
			}
		}
	}
}

// processInsert runs the dedup decision for one Insert entry: true
// miss, hit, or collision-miss. It returns a non-nil
// error only when the destination's Append fails, which is the one
// fatal condition the Worker cannot recover from.
func (c *Cache) processInsert(entry workEntry) error {
	fid := entry.item.Fingerprint()

	b, present := c.index.get(fid)
	if !present {
		// True miss: first time this fingerprint has ever been seen.
		nb := &bucket{items: []Item{entry.item}}
		c.index.insert(fid, nb)
		mintStamp(entry.item)
		c.stats.trueMiss()
		return entry.dest.Append(entry.item)
	}

	if canonical, hit := b.find(entry.item); hit {
		// Hit: the incoming item is structurally identical to one
		// already canonicalized. The incoming item is discarded in
		// favor of the canonical, whose stamp is left untouched.
		c.stats.hit()
		return entry.dest.Append(canonical)
	}

	// Collision-miss: same fingerprint, different content. Extend the
	// bucket with a new, independently-stamped canonical. The growth
	// happens under the index lock so BucketSummary can read bucket
	// sizes from another goroutine.
	c.index.mu.Lock()
	b.items = append(b.items, entry.item)
	c.index.mu.Unlock()
	mintStamp(entry.item)
	c.stats.collisionMiss()
	return entry.dest.Append(entry.item)
}

// fail latches the worker-dead condition and reports err through the
// configured Logger: the Worker
// stops consuming further entries from this run. Index insertion
// failures (out-of-memory growing the map or a bucket) are not
// modeled here because Go's allocator reports that condition as an
// unrecoverable panic, not a returnable error — which matches the
// spec's own "the process aborts... which is unrecoverable" language
// for that case.
func (c *Cache) fail(err error) {
	c.dead.Store(true)
	c.stats.fatal()
	if c.logger != nil {
		if tid, ok := osthread.Current(); ok {
			c.logger.Printf("itemcache: worker stopping after fatal error (thread %d): %s", tid, err)
		} else {
			c.logger.Printf("itemcache: worker stopping after fatal error: %s", err)
		}
	}
}
