// Copyright 2023 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package chainconfig

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/ethereum/go-ethereum/common"
)

// ForkCache bounds the number of remote block headers a forked replay
// keeps resident. Every preceding-transaction replay over a forked
// chain re-touches the same handful of recent headers (for BLOCKHASH
// and the fork's own header), so a small ARC-free LRU is enough to
// avoid re-fetching them over JSON-RPC on every step.
type ForkCache struct {
	headers *lru.Cache
}

// NewForkCache returns a ForkCache holding at most size headers.
func NewForkCache(size int) (*ForkCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("chainconfig: creating fork header cache: %w", err)
	}
	return &ForkCache{headers: cache}, nil
}

// forkKey identifies a cached header by origin URL and block number, so
// a single process tracing against more than one fork doesn't cross-
// contaminate entries.
type forkKey struct {
	url    string
	number uint64
}

// Get returns the cached header hash for (url, number), if present.
func (c *ForkCache) Get(url string, number uint64) (common.Hash, bool) {
	v, ok := c.headers.Get(forkKey{url: url, number: number})
	if !ok {
		return common.Hash{}, false
	}
	return v.(common.Hash), true
}

// Put records the header hash for (url, number), evicting the least
// recently used entry if the cache is full.
func (c *ForkCache) Put(url string, number uint64, hash common.Hash) {
	c.headers.Add(forkKey{url: url, number: number}, hash)
}

// Len reports how many headers are currently cached.
func (c *ForkCache) Len() int { return c.headers.Len() }
