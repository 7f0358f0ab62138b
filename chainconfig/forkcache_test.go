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
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestForkCachePutGet(t *testing.T) {
	cache, err := NewForkCache(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hash := common.HexToHash("0x1")
	cache.Put("https://rpc.example", 100, hash)

	got, ok := cache.Get("https://rpc.example", 100)
	if !ok {
		t.Fatalf("expected a cache hit")
	}
	if got != hash {
		t.Errorf("expected %s, got %s", hash.Hex(), got.Hex())
	}
}

func TestForkCacheMissOnDifferentURL(t *testing.T) {
	cache, _ := NewForkCache(2)
	cache.Put("https://rpc.example", 100, common.HexToHash("0x1"))
	if _, ok := cache.Get("https://other.example", 100); ok {
		t.Fatalf("expected a miss for a different origin URL")
	}
}

func TestForkCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache, _ := NewForkCache(1)
	cache.Put("https://rpc.example", 1, common.HexToHash("0x1"))
	cache.Put("https://rpc.example", 2, common.HexToHash("0x2"))

	if _, ok := cache.Get("https://rpc.example", 1); ok {
		t.Fatalf("expected the first entry to be evicted")
	}
	if cache.Len() != 1 {
		t.Errorf("expected exactly 1 cached entry, got %d", cache.Len())
	}
}

func TestBlockchainConfigIsForked(t *testing.T) {
	var cfg *BlockchainConfig
	if cfg.IsForked() {
		t.Fatalf("expected a nil config to report not forked")
	}

	cfg = &BlockchainConfig{}
	if cfg.IsForked() {
		t.Fatalf("expected an empty config to report not forked")
	}

	cfg.Forking = &RpcForkConfig{JSONRPCURL: "https://rpc.example"}
	if !cfg.IsForked() {
		t.Fatalf("expected a config with Forking set to report forked")
	}
}
