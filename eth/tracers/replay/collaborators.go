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

// Package replay implements the debug_traceTransaction replay driver:
// re-execute the transactions preceding the target one to rebuild
// pre-state, then trace the target transaction at opcode granularity.
// This is a Go port of
// original_source/crates/rethnet_evm/src/debug_trace.rs's
// debug_trace_transaction.
package replay

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/evmlab/debugtrace/eth/tracers/logger"
)

// SpecID names an Ethereum hardfork, ordered the way revm::primitives::SpecId
// orders them — later forks compare greater.
type SpecID int

const (
	Frontier SpecID = iota
	Homestead
	TangerineWhistle
	SpuriousDragon
	Byzantium
	Constantinople
	Petersburg
	Istanbul
	Berlin
	London
	Merge
	Shanghai
	Cancun
)

// EVMConfig is the subset of chain configuration the replay driver needs
// to validate before it runs anything.
type EVMConfig struct {
	SpecID SpecID
}

// BlockEnv is the subset of block data the replay driver forwards to the
// VM builder and validates against the active fork.
type BlockEnv struct {
	Number     uint64
	Prevrandao *common.Hash
}

// Transaction is the minimal shape the replay driver needs from a
// decoded, already-signed transaction: its hash, for matching against the
// target, and whatever the VM builder needs to build a VM for it.
type Transaction interface {
	Hash() common.Hash
}

// ResultKind discriminates a VM's execution outcome.
type ResultKind int

const (
	Success ResultKind = iota
	Revert
	Halt
)

// ExecutionResult is the VM's raw per-transaction outcome, before the
// driver maps it onto a TraceResult.
type ExecutionResult struct {
	Kind    ResultKind
	GasUsed uint64
	Output  []byte
}

// StateDelta is an opaque set of account/storage changes a VM run
// produced; it's only ever handed back to MutableState.Commit.
type StateDelta interface{}

// Blockchain is the read-only collaborator the driver consults for block
// headers it doesn't already have in hand. It never needs to be mutated
// or even touched for a single-block trace, but is part of the contract
// VM builders may rely on (e.g. BLOCKHASH lookups).
type Blockchain interface {
	HeaderByNumber(number uint64) (common.Hash, bool)
}

// MutableState is the state the driver owns for the duration of one
// debug_trace call. It applies (and, implicitly, discards on error
// return) every preceding transaction's state delta.
type MutableState interface {
	Commit(delta StateDelta)
}

// VM is what a VMBuilder hands back: something that can either run under
// inspection (the traced transaction) or run plain (every transaction
// that precedes it).
type VM interface {
	InspectRef(tracer *logger.Tracer) (ExecutionResult, error)
	TransactRef() (ExecutionResult, StateDelta, error)
}

// VMBuilder constructs a VM bound to blockchain/state for one transaction.
type VMBuilder func(blockchain Blockchain, state MutableState, cfg EVMConfig, tx Transaction, blockEnv BlockEnv) VM
