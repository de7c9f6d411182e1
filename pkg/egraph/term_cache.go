// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package egraph

import "github.com/go-egraph/egraph/pkg/util/collection/hash"

// termCache is the hash-cons table mapping a term's structural key to the
// leaf id it was first assigned. It is a thin wrapper around hash.Map adding
// the identity-based eviction Graph.Rebuild needs (see Rebuild's doc
// comment).
type termCache struct {
	table *hash.Map[*Term, ClassId]
}

func newTermCache(size uint) *termCache {
	return &termCache{hash.NewMap[*Term, ClassId](size)}
}

func (c *termCache) get(term *Term) (ClassId, bool) {
	return c.table.Get(term)
}

func (c *termCache) insert(term *Term, id ClassId) {
	c.table.Insert(term, id)
}

// removeIdentity evicts the entry whose key is the very same *Term object as
// term, regardless of term's current structural value. See Rebuild's doc
// comment for why identity, not structural equality, is the right key here.
func (c *termCache) removeIdentity(term *Term) {
	c.table.RemoveIdentity(term, func(a, b *Term) bool {
		return a == b
	})
}
