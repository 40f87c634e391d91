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

// Package osthread reports the OS-level thread id backing the calling
// goroutine, for inclusion in the Worker's fatal-error log line. The
// Go runtime can migrate a goroutine between OS threads between
// calls, so this is only meaningful as a point-in-time diagnostic
// snapshot, never as a stable identifier.
package osthread

// current is set by init in whichever of osthread_linux.go /
// osthread_other.go this build includes.
var current func() int

// Current returns the calling goroutine's current OS thread id, and
// false if the platform this binary was built for doesn't expose one.
func Current() (int, bool) {
	if current == nil {
		return 0, false
	}
	if id := current(); id >= 0 {
		return id, true
	}
	return 0, false
}
