// Copyright 2015 The go-ethereum Authors
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

package vm

// Memory is the EVM's byte-addressable, growable scratch space. It grows to
// exactly the byte length an access needs, not to a 32-byte word boundary.
type Memory struct {
	store []byte
}

func newMemory() *Memory {
	return &Memory{}
}

// Len returns the current length of the backing store in bytes.
func (m *Memory) Len() int { return len(m.store) }

// Resize grows the memory to at least size bytes, zero-filling the gap.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) < size {
		m.store = append(m.store, make([]byte, size-uint64(len(m.store)))...)
	}
}

// Set writes value at offset, resizing first if necessary.
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	m.Resize(offset + size)
	copy(m.store[offset:offset+size], value)
}

// GetCopy returns an independent copy of size bytes starting at offset.
func (m *Memory) GetCopy(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	cp := make([]byte, size)
	copy(cp, m.store[offset:offset+size])
	return cp
}

// Data returns the live backing store; callers needing a stable snapshot
// must clone it.
func (m *Memory) Data() []byte { return m.store }

// Clone returns an independent copy of the full backing store.
func (m *Memory) Clone() []byte {
	cp := make([]byte, len(m.store))
	copy(cp, m.store)
	return cp
}
