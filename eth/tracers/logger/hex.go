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

package logger

import (
	"github.com/VictoriaMetrics/fastcache"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// wordHexCache memoizes the 256-bit-word-to-hex conversion every stack
// entry of every step goes through. Struct logs for a single transaction
// routinely repeat the same small/common words (0, 1, a handful of
// offsets) thousands of times, so this turns a hot allocation-heavy path
// into a cache hit in the common case. Sized the same way the teacher
// sizes its trie-node fastcache, just repurposed for hex strings instead
// of trie nodes.
var wordHexCache = fastcache.New(4 * 1024 * 1024)

// wordHex formats w as the canonical 66-character, zero-padded, lowercase
// hex word spec.md §4.4 requires. common.Hash is a fixed 32-byte array, so
// routing the conversion through it gets the zero-padding (including the
// all-zero case) for free.
func wordHex(w *uint256.Int) string {
	b32 := w.Bytes32()
	if cached := wordHexCache.Get(nil, b32[:]); cached != nil {
		return string(cached)
	}
	h := common.Hash(b32).Hex()
	wordHexCache.Set(b32[:], []byte(h))
	return h
}
