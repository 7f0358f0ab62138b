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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"

	"github.com/evmlab/debugtrace/eth/tracers/logger"
)

var (
	replayedCounter = metrics.NewRegisteredCounter("tracer/replay/transactions", nil)
	tracedCounter   = metrics.NewRegisteredCounter("tracer/replay/traced", nil)
	failedCounter   = metrics.NewRegisteredCounter("tracer/replay/failed", nil)
)

// Driver replays a block's transactions to rebuild pre-state, then traces
// one transaction out of that block. One Driver is bound to one
// blockchain/state pair; it is not safe for concurrent use because it
// mutates the MutableState it was built with.
type Driver struct {
	blockchain Blockchain
	state      MutableState
	buildVM    VMBuilder
}

// NewDriver returns a Driver that replays against blockchain/state using
// buildVM to construct a VM for each transaction it runs.
func NewDriver(blockchain Blockchain, state MutableState, buildVM VMBuilder) *Driver {
	return &Driver{blockchain: blockchain, state: state, buildVM: buildVM}
}

// DebugTraceTransaction is the debug_trace entry point. It validates cfg
// and blockEnv, re-executes every transaction in txs that precedes the
// one whose hash matches target (committing each one's resulting state
// delta), then runs the target transaction under an EIP-3155 tracer and
// returns the resulting TraceResult.
//
// This mirrors debug_trace_transaction in
// original_source/crates/rethnet_evm/src/debug_trace.rs: validate once
// up front, replay blindly, trace once.
func (d *Driver) DebugTraceTransaction(cfg EVMConfig, blockEnv BlockEnv, txs []Transaction, target common.Hash, traceCfg logger.Config) (*TraceResult, error) {
	if cfg.SpecID < SpuriousDragon || cfg.SpecID > Cancun {
		return nil, &InvalidSpecIdError{SpecID: cfg.SpecID}
	}
	if cfg.SpecID >= Merge && blockEnv.Prevrandao == nil {
		return nil, &MissingPrevrandaoError{BlockNumber: blockEnv.Number}
	}
	if len(txs) == 0 {
		return nil, ErrEmptyBlock
	}

	targetIndex := -1
	for i, tx := range txs {
		if tx.Hash() == target {
			targetIndex = i
			break
		}
	}
	if targetIndex == -1 {
		return nil, &InvalidTransactionHashError{Hash: target, BlockNumber: blockEnv.Number}
	}

	log.Info("replaying block prefix for trace", "block", blockEnv.Number, "target", target, "precedingTxs", targetIndex)

	for i := 0; i < targetIndex; i++ {
		tx := txs[i]
		vm := d.buildVM(d.blockchain, d.state, cfg, tx, blockEnv)
		result, delta, err := vm.TransactRef()
		if err != nil {
			failedCounter.Inc(1)
			return nil, classifyTxError(tx.Hash(), i, err)
		}
		d.state.Commit(delta)
		replayedCounter.Inc(1)
		if result.Kind != Success {
			log.Warn("preceding transaction did not succeed during replay", "index", i, "hash", tx.Hash())
		}
	}

	targetTx := txs[targetIndex]
	tracer := logger.New(traceCfg)
	vm := d.buildVM(d.blockchain, d.state, cfg, targetTx, blockEnv)
	result, err := vm.InspectRef(tracer)
	if err != nil {
		failedCounter.Inc(1)
		return nil, classifyTxError(targetTx.Hash(), targetIndex, err)
	}
	tracedCounter.Inc(1)

	return toTraceResult(result, tracer.Logs()), nil
}

// classifyTxError recognizes signature-recovery failures and wraps
// everything else as a TransactionError carrying the failing
// transaction's identity.
func classifyTxError(hash common.Hash, index int, err error) error {
	if sigErr, ok := err.(interface{ IsSignatureError() bool }); ok && sigErr.IsSignatureError() {
		return &SignatureError{Hash: hash, Err: err}
	}
	return &TransactionError{Hash: hash, Index: index, Err: err}
}
