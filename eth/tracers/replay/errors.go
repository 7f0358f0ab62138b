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

package replay

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// InvalidSpecIdError is returned when EVMConfig.SpecID names a hardfork
// debug_trace doesn't know how to replay against: one older than Spurious
// Dragon, or a value outside the known SpecID range.
type InvalidSpecIdError struct {
	SpecID SpecID
}

func (e *InvalidSpecIdError) Error() string {
	return fmt.Sprintf("invalid spec id: %d", e.SpecID)
}

// MissingPrevrandaoError is returned when BlockEnv.Prevrandao is nil on a
// post-Merge block; Merge onward defines DIFFICULTY/PREVRANDAO in terms
// of it and the VM can't run without it.
type MissingPrevrandaoError struct {
	BlockNumber uint64
}

func (e *MissingPrevrandaoError) Error() string {
	return fmt.Sprintf("missing prevrandao for post-merge block %d", e.BlockNumber)
}

// InvalidTransactionHashError is returned when the target hash passed to
// DebugTraceTransaction does not match any transaction replayed out of
// the block.
type InvalidTransactionHashError struct {
	Hash        common.Hash
	BlockNumber uint64
}

func (e *InvalidTransactionHashError) Error() string {
	return fmt.Sprintf("transaction hash %s not found in block %d", e.Hash.Hex(), e.BlockNumber)
}

// SignatureError wraps a failure recovering a transaction's sender,
// surfaced while replaying one of the preceding transactions or the
// target itself.
type SignatureError struct {
	Hash common.Hash
	Err  error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("invalid signature for transaction %s: %v", e.Hash.Hex(), e.Err)
}

func (e *SignatureError) Unwrap() error { return e.Err }

// TransactionError wraps any other per-transaction failure the VM reports
// while running a specific transaction (plainly for a preceding one, under
// inspection for the target), identified by its position in the block.
type TransactionError struct {
	Hash  common.Hash
	Index int
	Err   error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %d (%s) failed: %v", e.Index, e.Hash.Hex(), e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

// ErrEmptyBlock is returned when DebugTraceTransaction is asked to find a
// target hash in a block that contains no transactions at all.
var ErrEmptyBlock = errors.New("block contains no transactions")
