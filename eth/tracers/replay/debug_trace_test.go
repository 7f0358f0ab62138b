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
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/evmlab/debugtrace/eth/tracers/logger"
)

type fakeTx struct {
	hash common.Hash
	fail bool
}

func (tx fakeTx) Hash() common.Hash { return tx.hash }

type fakeVM struct {
	tx fakeTx
}

func (v fakeVM) TransactRef() (ExecutionResult, StateDelta, error) {
	if v.tx.fail {
		return ExecutionResult{}, nil, errors.New("boom")
	}
	return ExecutionResult{Kind: Success, GasUsed: 21000}, "delta", nil
}

func (v fakeVM) InspectRef(tracer *logger.Tracer) (ExecutionResult, error) {
	if v.tx.fail {
		return ExecutionResult{}, errors.New("boom")
	}
	return ExecutionResult{Kind: Success, GasUsed: 21000, Output: []byte{0x1}}, nil
}

type fakeState struct {
	commits int
}

func (s *fakeState) Commit(StateDelta) { s.commits++ }

type fakeChain struct{}

func (fakeChain) HeaderByNumber(uint64) (common.Hash, bool) { return common.Hash{}, false }

func buildFakeVM(_ Blockchain, _ MutableState, _ EVMConfig, tx Transaction, _ BlockEnv) VM {
	return fakeVM{tx: tx.(fakeTx)}
}

func blockEnvForSpec(spec SpecID) BlockEnv {
	if spec >= Merge {
		h := common.Hash{0x1}
		return BlockEnv{Number: 10, Prevrandao: &h}
	}
	return BlockEnv{Number: 10}
}

func TestDebugTraceTransactionHappyPath(t *testing.T) {
	state := &fakeState{}
	driver := NewDriver(fakeChain{}, state, buildFakeVM)
	txs := []Transaction{
		fakeTx{hash: common.Hash{0x1}},
		fakeTx{hash: common.Hash{0x2}},
		fakeTx{hash: common.Hash{0x3}},
	}

	result, err := driver.DebugTraceTransaction(EVMConfig{SpecID: London}, blockEnvForSpec(London), txs, common.Hash{0x3}, logger.Config{})
	require.NoError(t, err)
	require.True(t, result.Pass, "expected a passing trace")
	require.EqualValues(t, 21000, result.GasUsed)
	require.Equal(t, 2, state.commits, "expected 2 preceding transactions committed")
}

func TestDebugTraceTransactionUnknownHash(t *testing.T) {
	state := &fakeState{}
	driver := NewDriver(fakeChain{}, state, buildFakeVM)
	txs := []Transaction{fakeTx{hash: common.Hash{0x1}}}

	_, err := driver.DebugTraceTransaction(EVMConfig{SpecID: London}, blockEnvForSpec(London), txs, common.Hash{0x99}, logger.Config{})
	var want *InvalidTransactionHashError
	require.ErrorAs(t, err, &want)
	require.Equal(t, common.Hash{0x99}, want.Hash)
	require.EqualValues(t, 10, want.BlockNumber)
}

func TestDebugTraceTransactionMissingPrevrandao(t *testing.T) {
	state := &fakeState{}
	driver := NewDriver(fakeChain{}, state, buildFakeVM)
	txs := []Transaction{fakeTx{hash: common.Hash{0x1}}}

	_, err := driver.DebugTraceTransaction(EVMConfig{SpecID: Merge}, BlockEnv{Number: 10}, txs, common.Hash{0x1}, logger.Config{})
	var want *MissingPrevrandaoError
	require.ErrorAs(t, err, &want)
}

func TestDebugTraceTransactionInvalidSpecID(t *testing.T) {
	state := &fakeState{}
	driver := NewDriver(fakeChain{}, state, buildFakeVM)
	txs := []Transaction{fakeTx{hash: common.Hash{0x1}}}

	_, err := driver.DebugTraceTransaction(EVMConfig{SpecID: SpecID(99)}, BlockEnv{Number: 10}, txs, common.Hash{0x1}, logger.Config{})
	var want *InvalidSpecIdError
	require.ErrorAs(t, err, &want)
}

func TestDebugTraceTransactionPrecedingTxFails(t *testing.T) {
	state := &fakeState{}
	driver := NewDriver(fakeChain{}, state, buildFakeVM)
	txs := []Transaction{
		fakeTx{hash: common.Hash{0x1}, fail: true},
		fakeTx{hash: common.Hash{0x2}},
	}

	_, err := driver.DebugTraceTransaction(EVMConfig{SpecID: London}, blockEnvForSpec(London), txs, common.Hash{0x2}, logger.Config{})
	var want *TransactionError
	require.ErrorAs(t, err, &want)
	require.Equal(t, 0, want.Index, "expected failing index 0")
}

func TestDebugTraceTransactionEmptyBlock(t *testing.T) {
	state := &fakeState{}
	driver := NewDriver(fakeChain{}, state, buildFakeVM)

	_, err := driver.DebugTraceTransaction(EVMConfig{SpecID: London}, blockEnvForSpec(London), nil, common.Hash{0x1}, logger.Config{})
	require.ErrorIs(t, err, ErrEmptyBlock)
}
