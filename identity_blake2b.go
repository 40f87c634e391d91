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
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// StrongFingerprint is an alternative to SipFingerprint for producer
// item types whose content is large enough (e.g. whole file records)
// that accidental 64-bit collisions from a faster digest are an
// operational nuisance worth paying a cryptographic hash for. The
// cache itself treats the result exactly like any other fingerprint:
// collisions, however unlikely, are still resolved by Equal.
func StrongFingerprint(content []byte) uint64 {
	sum := blake2b.Sum256(content)
	return binary.BigEndian.Uint64(sum[:8])
}
