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

package main

import (
	"fmt"
	"log"

	"github.com/scaprun/itemcache"
)

const itemsPerProducer = 40

// runProducer emits a mix of fileRecord and packageRecord items,
// deliberately repeating a handful of paths/packages across producers
// so the dedup index accumulates real hits, not just true misses. It
// stops early if ctx is closed.
func runProducer(ctx <-chan struct{}, producer int, cc *itemcache.CollectContext, verbose bool, logger *log.Logger) {
	// A small shared vocabulary of paths/packages every producer draws
	// from ensures cross-producer duplication, which is the scenario
	// the dedup index exists to collapse.
	paths := []string{"/etc/passwd", "/etc/shadow", "/etc/ssh/sshd_config"}
	packages := []struct{ name, version string }{
		{"openssl", "3.0.2"},
		{"curl", "7.81.0"},
	}

	for i := 0; i < itemsPerProducer; i++ {
		select {
		case <-ctx:
			return
		default:
		}

		var item itemcache.Item
		if i%2 == 0 {
			item = &fileRecord{Path: paths[i%len(paths)], Mode: 0644}
		} else {
			p := packages[(i/2)%len(packages)]
			item = &packageRecord{Name: p.name, Version: p.version}
		}

		switch itemcache.Collect(cc, item) {
		case 1:
			if verbose {
				logger.Printf("producer %d: item rejected by filter", producer)
			}
		case -1:
			logger.Printf("producer %d: submit failed, stopping", producer)
			return
		default:
			if verbose {
				logger.Printf("producer %d: submitted %s", producer, describe(item))
			}
		}
	}
}

func describe(item itemcache.Item) string {
	switch v := item.(type) {
	case *fileRecord:
		return fmt.Sprintf("file:%s", v.Path)
	case *packageRecord:
		return fmt.Sprintf("package:%s@%s", v.Name, v.Version)
	default:
		return "unknown"
	}
}
