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

import "sync/atomic"

// Stats holds the cache-wide running counters, accessed atomically so
// it is safe to read concurrently with the Worker updating it.
type Stats struct {
	hits          atomic.Int64 // duplicate submissions resolved to an existing canonical
	trueMisses    atomic.Int64 // first-seen fingerprints
	collisions    atomic.Int64 // same fingerprint, unequal content
	fatalFailures atomic.Int64 // destination-append failures that killed the Worker
}

func (s *Stats) hit()           { s.hits.Add(1) }
func (s *Stats) trueMiss()      { s.trueMisses.Add(1) }
func (s *Stats) collisionMiss() { s.collisions.Add(1) }
func (s *Stats) fatal()         { s.fatalFailures.Add(1) }

// Hits returns the number of submits resolved against an existing
// canonical item.
func (s *Stats) Hits() int64 { return s.hits.Load() }

// TrueMisses returns the number of submits that introduced a brand
// new fingerprint.
func (s *Stats) TrueMisses() int64 { return s.trueMisses.Load() }

// Collisions returns the number of submits that shared a fingerprint
// with an existing bucket but were not structurally equal to any
// entry in it.
func (s *Stats) Collisions() int64 { return s.collisions.Load() }

// FatalFailures returns the number of times the Worker observed a
// destination-append failure (0 or 1 for the life of a Cache, since
// the first one stops the Worker).
func (s *Stats) FatalFailures() int64 { return s.fatalFailures.Load() }
