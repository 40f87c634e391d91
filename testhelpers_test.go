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

import "time"

// timeoutCh fires well past the time any of this package's tests
// should ever legitimately take, used to fail a test instead of
// hanging forever if a blocking call never returns.
func timeoutCh() <-chan time.Time {
	return time.After(5 * time.Second)
}

// afterShort fires quickly, used to assert that an operation did NOT
// complete within a short window (i.e. it is genuinely blocked).
func afterShort() <-chan time.Time {
	return time.After(50 * time.Millisecond)
}
