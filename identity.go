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
	"os"
	"sync/atomic"

	"github.com/dchest/siphash"
)

// Identity is the content-addressing contract a producer's item type
// must satisfy. The cache never inspects an item beyond these two
// methods; everything else about the item's shape is opaque.
type Identity interface {
	// Fingerprint returns a 64-bit content digest. Collisions are
	// expected and handled by the cache via Equal.
	Fingerprint() uint64

	// Equal reports whether two items with the same Fingerprint are
	// structurally identical and should collapse to one canonical
	// instance.
	Equal(other Identity) bool
}

// Stamped is implemented by item types that carry a mutable unique-ID
// field the cache overwrites during processing. SetStamp is called at
// most once per distinct item (the canonical of an equality class);
// duplicates never see SetStamp called on their own copy because the
// duplicate is discarded in favor of the canonical.
type Stamped interface {
	SetStamp(stamp string)
	Stamp() string
}

// Item is the full contract the Work Queue and Dedup Index operate on:
// an opaque, content-addressable, stampable value.
type Item interface {
	Identity
	Stamped
}

// pid is captured once at process start and reused for every stamp
// minted by every Cache instance in this process, matching the
// textual stamp format "1" + 5-digit zero-padded pid + counter.
// A pid at or above 100000 is folded into the 5-digit field; this is
// a documented limitation, not a correctness bug, since stamps only
// need to be unique within one process's output stream.
var pid = os.Getpid() % 100000

// stampCounter is process-global and shared across every Cache
// instance constructed in this process, by design: this keeps minted
// stamps unique across the whole output stream even if a process
// builds more than one Cache over its lifetime. sync/atomic's counter
// operations are lock-free on every platform the Go runtime targets,
// satisfying the "lock-free if the platform supports it" requirement
// without a fallback mutex path.
var stampCounter atomic.Uint64

// mintStamp allocates a fresh, process-wide-unique stamp and writes it
// into item via Stamped.SetStamp. Only ever called by the Worker
// goroutine, for a true miss or a collision-miss, never for a hit.
func mintStamp(item Stamped) {
	n := stampCounter.Add(1)
	item.SetStamp(fmt.Sprintf("1%05d%d", pid, n))
}

// SipFingerprint is a ready-made Fingerprint implementation for
// producer item types that would rather not hand-roll a digest: it
// hashes content with SipHash-2-4 keyed by (k0, k1) and returns the
// low 64 bits of the 128-bit result. Two calls with the same key pair
// and equal content always agree; the key pair only needs to be
// stable within one process run.
func SipFingerprint(k0, k1 uint64, content []byte) uint64 {
	lo, _ := siphash.Hash128(k0, k1, content)
	return lo
}
