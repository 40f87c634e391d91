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
	"fmt"
	"testing"
)

func TestWorkQueueFIFOOrdering(t *testing.T) {
	q := newWorkQueue(8)
	for i := 0; i < 8; i++ {
		it := &testItem{fp: uint64(i), key: fmt.Sprintf("n%d", i)}
		if ok := q.enqueue(workEntry{kind: insertEntry, item: it}); !ok {
			t.Fatalf("enqueue %d failed", i)
		}
	}
	for i := 0; i < 8; i++ {
		e, ok, discarded := q.dequeue()
		if !ok || discarded {
			t.Fatalf("dequeue %d: ok=%v discarded=%v", i, ok, discarded)
		}
		if got := e.item.(*testItem).fp; got != uint64(i) {
			t.Fatalf("dequeue %d returned fp %d, want %d (FIFO violated)", i, got, i)
		}
	}
}

func TestWorkQueueBackPressure(t *testing.T) {
	q := newWorkQueue(1)
	if ok := q.enqueue(workEntry{kind: insertEntry, item: &testItem{fp: 1}}); !ok {
		t.Fatalf("first enqueue should not block or fail")
	}

	blocked := make(chan bool, 1)
	go func() {
		ok := q.enqueue(workEntry{kind: insertEntry, item: &testItem{fp: 2}})
		blocked <- ok
	}()

	select {
	case <-blocked:
		t.Fatalf("second enqueue should have blocked: queue is at capacity")
	case <-afterShort():
	}

	if _, ok, _ := q.dequeue(); !ok {
		t.Fatalf("dequeue should succeed")
	}

	select {
	case ok := <-blocked:
		if !ok {
			t.Fatalf("second enqueue should have succeeded once a slot freed")
		}
	case <-timeoutCh():
		t.Fatalf("second enqueue never unblocked after a slot freed")
	}
}

func TestWorkQueueCloseWakesBlockedProducer(t *testing.T) {
	q := newWorkQueue(1)
	q.enqueue(workEntry{kind: insertEntry, item: &testItem{fp: 1}})

	blocked := make(chan bool, 1)
	go func() {
		ok := q.enqueue(workEntry{kind: insertEntry, item: &testItem{fp: 2}})
		blocked <- ok
	}()
	select {
	case <-blocked:
		t.Fatalf("enqueue should be blocked before close")
	case <-afterShort():
	}

	q.close()

	select {
	case ok := <-blocked:
		if ok {
			t.Fatalf("enqueue on a closed queue should report failure")
		}
	case <-timeoutCh():
		t.Fatalf("close() never woke the blocked producer")
	}
}

func TestWorkQueueDequeueDrainsThenClosesAfterClose(t *testing.T) {
	q := newWorkQueue(4)
	q.enqueue(workEntry{kind: insertEntry, item: &testItem{fp: 1}})
	q.enqueue(workEntry{kind: insertEntry, item: &testItem{fp: 2}})
	q.close()

	// Entries buffered before close are still handed out, flagged as
	// discarded so the Worker knows not to process them.
	for i := 0; i < 2; i++ {
		e, ok, discarded := q.dequeue()
		if !ok {
			t.Fatalf("dequeue %d: expected ok=true for a buffered entry", i)
		}
		if !discarded {
			t.Fatalf("dequeue %d: expected discarded=true after close", i)
		}
		_ = e
	}

	// Once empty and closed, dequeue reports ok=false.
	if _, ok, _ := q.dequeue(); ok {
		t.Fatalf("dequeue on an empty, closed queue should report ok=false")
	}
}

func TestWorkQueueEnqueueAfterCloseFailsImmediately(t *testing.T) {
	q := newWorkQueue(4)
	q.close()
	if ok := q.enqueue(workEntry{kind: insertEntry, item: &testItem{fp: 1}}); ok {
		t.Fatalf("enqueue on an already-closed queue should fail immediately")
	}
}

func TestWorkQueueDrainRemaining(t *testing.T) {
	q := newWorkQueue(4)
	done1 := make(chan struct{})
	done2 := make(chan struct{})
	q.enqueue(workEntry{kind: insertEntry, item: &testItem{fp: 1}})
	q.enqueue(workEntry{kind: barrierEntry, done: done1})
	q.enqueue(workEntry{kind: barrierEntry, done: done2})

	var kinds []entryKind
	q.drainRemaining(func(e workEntry) {
		kinds = append(kinds, e.kind)
		if e.kind == barrierEntry {
			close(e.done)
		}
	})

	if len(kinds) != 3 {
		t.Fatalf("drainRemaining visited %d entries, want 3", len(kinds))
	}
	select {
	case <-done1:
	default:
		t.Fatalf("barrier 1 was not signaled")
	}
	select {
	case <-done2:
	default:
		t.Fatalf("barrier 2 was not signaled")
	}
}
