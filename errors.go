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

import "errors"

// ErrInvalidArgument is returned by Submit and Barrier when called with
// a nil cache, nil destination, or nil item.
var ErrInvalidArgument = errors.New("itemcache: invalid argument")

// ErrWorkerDead is returned by Submit and Barrier once the background
// Worker has latched a fatal condition (a destination-append failure)
// or the cache has been freed. Submits never block once this is
// returned; the caller should stop producing.
var ErrWorkerDead = errors.New("itemcache: worker is dead")

// ErrResource names the failure to construct the Worker goroutine or
// its synchronization primitives. New never returns it: starting a
// goroutine cannot fail in Go, so New always reports a nil error.
var ErrResource = errors.New("itemcache: resource allocation failed")
