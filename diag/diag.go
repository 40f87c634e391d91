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

// Package diag writes an operator-facing, end-of-run diagnostic
// snapshot of a Cache: hit/miss/collision totals and the size of every
// live bucket. This is strictly observability, not cache persistence
// — nothing written here is ever read back into a Cache.
package diag

import (
	"bufio"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/klauspost/compress/s2"

	"github.com/scaprun/itemcache"
)

// Snapshot is the subset of a Cache's state a diagnostic dump reports,
// including the fingerprint-sorted per-bucket breakdown from
// Cache.BucketSummary.
type Snapshot struct {
	RunID         uuid.UUID
	LiveBuckets   int
	Hits          int64
	TrueMisses    int64
	Collisions    int64
	FatalFailures int64
	Buckets       []itemcache.BucketSummary
}

// FromCache builds a Snapshot from a live Cache, tagging it with a
// freshly generated run id.
func FromCache(c *itemcache.Cache) Snapshot {
	st := c.Stats()
	return Snapshot{
		RunID:         uuid.New(),
		LiveBuckets:   c.Len(),
		Hits:          st.Hits(),
		TrueMisses:    st.TrueMisses(),
		Collisions:    st.Collisions(),
		FatalFailures: st.FatalFailures(),
		Buckets:       c.BucketSummary(),
	}
}

// Dump writes snap to w as s2-compressed, newline-delimited text. This
// is a small, infrequently-written diagnostic blob, not a hot path, so
// s2's speed-over-ratio tradeoff is more a convenience than a
// requirement here.
func Dump(w io.Writer, snap Snapshot) error {
	sw := s2.NewWriter(w)
	bw := bufio.NewWriter(sw)
	fmt.Fprintf(bw, "run=%s\n", snap.RunID)
	fmt.Fprintf(bw, "live_buckets=%d\n", snap.LiveBuckets)
	fmt.Fprintf(bw, "hits=%d\n", snap.Hits)
	fmt.Fprintf(bw, "true_misses=%d\n", snap.TrueMisses)
	fmt.Fprintf(bw, "collisions=%d\n", snap.Collisions)
	fmt.Fprintf(bw, "fatal_failures=%d\n", snap.FatalFailures)
	for _, b := range snap.Buckets {
		fmt.Fprintf(bw, "bucket fingerprint=%d size=%d\n", b.Fingerprint, b.Size)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("diag: flushing snapshot: %w", err)
	}
	if err := sw.Close(); err != nil {
		return fmt.Errorf("diag: closing s2 writer: %w", err)
	}
	return nil
}
