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

package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// JournalEntry is one reversible state mutation recorded against the
// current call frame. This harness only ever records storage changes,
// since that's the only journal entry kind the tracer (eth/tracers/logger)
// needs to observe.
type JournalEntry interface {
	isJournalEntry()
}

// StorageChangeEntry is emitted whenever SSTORE changes a contract's
// storage slot.
type StorageChangeEntry struct {
	Address common.Address
	Key     common.Hash
}

func (StorageChangeEntry) isJournalEntry() {}

// JournaledState is the transactional state the interpreter mutates and
// can unwind on a reverted call frame. Only the pieces the tracer needs to
// peek at (depth, last journal entry, present storage values) are kept.
type JournaledState struct {
	depth   int
	frames  [][]JournalEntry
	storage map[common.Address]map[common.Hash]uint256.Int
}

func NewJournaledState() *JournaledState {
	return &JournaledState{
		depth:   1,
		frames:  [][]JournalEntry{nil},
		storage: make(map[common.Address]map[common.Hash]uint256.Int),
	}
}

// Depth returns the current call depth, 1 for the top frame.
func (j *JournaledState) Depth() int { return j.depth }

// PushFrame opens a new call frame, incrementing depth.
func (j *JournaledState) PushFrame() {
	j.depth++
	j.frames = append(j.frames, nil)
}

// PopFrame closes the innermost call frame, decrementing depth. The
// journal entries recorded inside the popped frame are discarded, but the
// storage values they recorded stay in place: this harness never reverts
// them since it doesn't model failed calls unwinding storage writes.
func (j *JournaledState) PopFrame() {
	if j.depth <= 1 {
		return
	}
	j.depth--
	j.frames = j.frames[:len(j.frames)-1]
}

// LastEntry returns the most recent journal entry recorded in the current
// frame, mirroring the journal.last().and_then(|v| v.last()) lookup the
// tracer performs against revm's journaled state.
func (j *JournaledState) LastEntry() (JournalEntry, bool) {
	frame := j.frames[len(j.frames)-1]
	if len(frame) == 0 {
		return nil, false
	}
	return frame[len(frame)-1], true
}

// RecordStorageChange appends a StorageChangeEntry to the current frame and
// records the new present value.
func (j *JournaledState) RecordStorageChange(addr common.Address, key common.Hash, value uint256.Int) {
	top := len(j.frames) - 1
	j.frames[top] = append(j.frames[top], StorageChangeEntry{Address: addr, Key: key})

	slots, ok := j.storage[addr]
	if !ok {
		slots = make(map[common.Hash]uint256.Int)
		j.storage[addr] = slots
	}
	slots[key] = value
}

// PresentValue returns the current value of a storage slot, or the zero
// word if it was never written.
func (j *JournaledState) PresentValue(addr common.Address, key common.Hash) uint256.Int {
	if slots, ok := j.storage[addr]; ok {
		if v, ok := slots[key]; ok {
			return v
		}
	}
	return uint256.Int{}
}
