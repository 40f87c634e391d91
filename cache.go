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

/*
Package itemcache implements an item-deduplicating, asynchronous
collection cache for a security-configuration probe runtime.

A probe produces structured result items as it scans a target system;
many of those items are structurally identical to ones already
produced. Cache stamps each distinct item with a stable unique
identifier, collapses structural duplicates so repeat observations
share storage, and appends each accepted item to a caller-supplied
destination aggregate (see Destination). Submission is synchronous
from the producer's perspective; deduplication, stamping, and
destination mutation all happen on a single background Worker
goroutine.

Producers call Submit (or the Collect boundary helper, which also
applies filter predicates) to hand an item to the cache, and Barrier
to block until every item they have already submitted has been fully
drained. Free tears the cache down; see its doc comment for the
shutdown-with-pending-work policy.
*/
package itemcache

import (
	"sync"
	"sync/atomic"
)

// Logger is the minimal sink the Worker uses to report fatal
// conditions. A nil Logger is valid and silently drops everything, so
// callers that don't care about diagnostics can skip plugging one in.
type Logger interface {
	Printf(format string, args ...any)
}

// Destination is the caller-owned, non-owning aggregate that
// accepts canonical items in submission order. The cache never
// allocates or frees a Destination; it only ever calls Append on one,
// sequentially, from the Worker goroutine.
type Destination interface {
	// Append records item. A non-nil error is treated as fatal: it
	// stops the Worker (see Cache.Free's doc comment for what happens
	// to work still queued at that point).
	Append(item Item) error
}

// Cache is the dedup/stamping cache described in the package doc. The
// zero value is not usable; construct one with New.
type Cache struct {
	logger Logger

	queue *workQueue
	index *dedupIndex
	stats Stats

	// dead is set the instant Submit/Barrier should stop accepting
	// work: either the Worker hit a fatal destination-append error, or
	// Free has begun. Checked before ever touching the queue so a
	// caller gets ErrWorkerDead instead of blocking forever.
	dead atomic.Bool

	workerDone chan struct{}
	freeOnce   sync.Once
}

// New creates a Cache and starts its Worker goroutine. capacity is the
// Work Queue's fixed ring-buffer size; a value less than 1 is replaced
// with DefaultQueueCapacity. logger may be nil.
//
// New cannot fail the way a native thread-create call can: a Go
// goroutine launch never returns an error, so this always returns a
// usable Cache and a nil error. The error return is kept so the
// public surface matches the other entry points and so a future
// resource-constrained embedding (e.g. one that caps goroutine counts)
// has somewhere to report failure without an API break.
func New(capacity int, logger Logger) (*Cache, error) {
	c := &Cache{
		logger:     logger,
		queue:      newWorkQueue(capacity),
		index:      newDedupIndex(),
		workerDone: make(chan struct{}),
	}
	go c.worker()
	return c, nil
}

// Submit hands item to the cache for asynchronous deduplication and
// stamping; it returns as soon as the item is enqueued, not once it
// has been processed (use Barrier to wait for that). It blocks while
// the Work Queue is full.
func (c *Cache) Submit(dest Destination, item Item) error {
	if c == nil || dest == nil || item == nil {
		return ErrInvalidArgument
	}
	if c.dead.Load() {
		return ErrWorkerDead
	}
	if ok := c.queue.enqueue(workEntry{kind: insertEntry, dest: dest, item: item}); !ok {
		return ErrWorkerDead
	}
	return nil
}

// Barrier blocks until every Insert this goroutine has already
// submitted has been fully processed: canonicalized (or resolved as a
// duplicate) and appended to its destination, or fatally dropped. It
// does not wait for submits made by other producers that race with
// it (see package doc).
func (c *Cache) Barrier() error {
	if c == nil {
		return ErrInvalidArgument
	}
	if c.dead.Load() {
		return ErrWorkerDead
	}
	done := make(chan struct{})
	if ok := c.queue.enqueue(workEntry{kind: barrierEntry, done: done}); !ok {
		return ErrWorkerDead
	}
	<-done
	return nil
}

// Free tears the cache down. Callers are expected to have drained
// producers (via Barrier) before calling Free: submitting after Free
// returns is undefined behavior.
//
// Work still sitting in the queue when Free is called is discarded,
// not processed — items there are never canonicalized, stamped, or
// appended to their destination. Any Barrier still waiting on such a
// discarded entry is unblocked immediately rather than left hanging.
// This is the "cancel-and-forget" policy documented as the chosen
// resolution for shutdown with work still pending; see DESIGN.md for the rationale.
//
// Free is idempotent: calling it more than once is a no-op after the
// first call.
func (c *Cache) Free() {
	c.freeOnce.Do(func() {
		c.dead.Store(true)
		c.queue.close()
		<-c.workerDone
		// If the Worker exited on its own (a fatal Append error) before
		// we closed the queue, it never got a chance to drain and
		// discard what was left; do that now. If the Worker instead
		// exited because of our close() above, it already drained
		// everything itself, and this is a no-op.
		c.queue.drainRemaining(func(e workEntry) {
			if e.kind == barrierEntry {
				close(e.done)
			}
		})
		c.index.free()
	})
}

// Len reports the number of distinct fingerprints currently held in
// the Dedup Index, i.e. the number of live buckets. Safe to call from
// any goroutine at any time; for a count that reflects everything the
// calling producer has itself submitted so far, call Barrier first.
func (c *Cache) Len() int {
	return c.index.len()
}

// Stats returns the cache's running counters.
func (c *Cache) Stats() *Stats {
	return &c.stats
}

// BucketSummary returns a fingerprint-sorted snapshot of every live
// bucket's size, for diagnostics (see the diag package). Safe to call
// from any goroutine at any time, with the same "reflects everything
// submitted so far only if Barrier was called first" caveat as Len.
func (c *Cache) BucketSummary() []BucketSummary {
	return c.index.summarize()
}
