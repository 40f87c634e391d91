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

// Filter is a boolean predicate evaluated on the producer goroutine,
// never on the Worker. An item is kept only if every Filter in a
// CollectContext accepts it.
type Filter func(Identity) bool

// CollectContext bundles the three collaborators the boundary helper
// Collect needs: the filter chain, the destination the item should
// land in if accepted, and the cache to submit it to.
type CollectContext struct {
	Filters []Filter
	Dest    Destination
	Cache   *Cache
}

// Collect is the thin filter-then-submit boundary helper: it applies every
// filter in ctx.Filters and, if all accept item, submits it. It
// returns 0 on an accepted submit, 1 if a filter rejected the item,
// and -1 if Submit itself failed (e.g. ErrWorkerDead). In the two
// non-zero cases the item is never handed to the Worker and is simply
// left to be garbage collected — there is no explicit free in Go.
func Collect(ctx *CollectContext, item Item) int {
	for _, f := range ctx.Filters {
		if !f(item) {
			return 1
		}
	}
	if err := ctx.Cache.Submit(ctx.Dest, item); err != nil {
		return -1
	}
	return 0
}
