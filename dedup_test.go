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

import "testing"

func TestBucketFind(t *testing.T) {
	a := &testItem{fp: 1, key: "a"}
	b := &testItem{fp: 1, key: "b"}
	bkt := &bucket{items: []Item{a, b}}

	got, ok := bkt.find(&testItem{fp: 1, key: "b"})
	if !ok || got != b {
		t.Fatalf("find(b) = (%v, %v), want (b, true)", got, ok)
	}
	if _, ok := bkt.find(&testItem{fp: 1, key: "c"}); ok {
		t.Fatalf("find(c) should miss")
	}
}

func TestDedupIndexGetInsertLen(t *testing.T) {
	idx := newDedupIndex()
	if idx.len() != 0 {
		t.Fatalf("new index should be empty")
	}
	b := &bucket{items: []Item{&testItem{fp: 5, key: "x"}}}
	idx.insert(5, b)
	if idx.len() != 1 {
		t.Fatalf("len() = %d, want 1", idx.len())
	}
	got, ok := idx.get(5)
	if !ok || got != b {
		t.Fatalf("get(5) = (%v, %v), want the inserted bucket", got, ok)
	}
	if _, ok := idx.get(6); ok {
		t.Fatalf("get(6) should miss on an empty fingerprint")
	}
}

func TestDedupIndexSummarizeIsSortedByFingerprint(t *testing.T) {
	idx := newDedupIndex()
	idx.insert(30, &bucket{items: []Item{&testItem{fp: 30, key: "a"}}})
	idx.insert(10, &bucket{items: []Item{&testItem{fp: 10, key: "b"}, &testItem{fp: 10, key: "c"}}})
	idx.insert(20, &bucket{items: []Item{&testItem{fp: 20, key: "d"}}})

	rows := idx.summarize()
	if len(rows) != 3 {
		t.Fatalf("summarize() returned %d rows, want 3", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Fingerprint >= rows[i].Fingerprint {
			t.Fatalf("summarize() not sorted ascending by fingerprint: %+v", rows)
		}
	}
	if rows[0].Fingerprint != 10 || rows[0].Size != 2 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
}

func TestDedupIndexFree(t *testing.T) {
	idx := newDedupIndex()
	idx.insert(1, &bucket{items: []Item{&testItem{fp: 1, key: "a"}}})
	idx.free()
	if idx.len() != 0 {
		t.Fatalf("len() after free() = %d, want 0", idx.len())
	}
}
