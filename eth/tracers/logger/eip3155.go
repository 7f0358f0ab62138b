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

// Package logger implements the EIP-3155 struct-log tracer used by
// debug_traceTransaction. It is a Go port of the Hardhat/rethnet tracer at
// original_source/crates/rethnet_evm/src/debug_trace.rs, which is itself
// derived from revm's inspectors::tracer_eip3155.
package logger

import (
	"fmt"

	vm "github.com/evmlab/debugtrace/core/vm"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Config toggles the three optional capture fields off; all three default
// to captured (false).
type Config struct {
	DisableStack   bool
	DisableMemory  bool
	DisableStorage bool
}

// StepRecord is one EIP-3155 struct-log entry, camelCase-tagged to match
// the debug_traceTransaction wire format exactly.
type StepRecord struct {
	Pc      uint64             `json:"pc"`
	Op      byte               `json:"op"`
	OpName  string             `json:"opName"`
	Gas     string             `json:"gas"`
	GasCost string             `json:"gasCost"`
	Depth   int                `json:"depth"`
	MemSize uint64             `json:"memSize"`
	Stack   *[]string          `json:"stack,omitempty"`
	Memory  *[]string          `json:"memory,omitempty"`
	Storage *map[string]string `json:"storage,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// Tracer is the stateful inspector plugged into the interpreter for the
// one transaction being traced. It is not safe to reuse across traces or
// share across goroutines — spec.md §5 mandates one instance per traced
// transaction, single-threaded and synchronous.
type Tracer struct {
	config Config
	logs   []*StepRecord
	gas    gasInspector

	contractAddress common.Address
	gasRemaining    uint64
	memorySnapshot  []byte
	memSize         uint64
	opcode          vm.OpCode
	pc              uint64
	stackSnapshot   []uint256.Int

	skip bool

	// storageByContract mirrors every SLOAD/SSTORE observed so far,
	// keyed by the contract address whose storage it belongs to. It
	// grows monotonically for the lifetime of the trace.
	storageByContract map[common.Address]map[string]string
}

// New returns a fresh Tracer configured for one traced transaction.
func New(cfg Config) *Tracer {
	return &Tracer{
		config:            cfg,
		storageByContract: make(map[common.Address]map[string]string),
	}
}

// Logs returns the struct log accumulated so far, in execution order.
func (t *Tracer) Logs() []*StepRecord { return t.logs }

// InitializeInterp forwards to the gas accumulator so it can snapshot the
// transaction's starting gas.
func (t *Tracer) InitializeInterp(interp *vm.Interpreter) {
	t.gas.initializeInterp(interp)
}

// Step is the pre-opcode snapshot: spec.md §4.2 callback 2.
func (t *Tracer) Step(interp *vm.Interpreter) {
	t.contractAddress = interp.Contract.Address

	t.gas.step(interp)
	t.gasRemaining = t.gas.remaining

	if !t.config.DisableStack {
		t.stackSnapshot = interp.Stack.Clone()
	}
	if !t.config.DisableMemory {
		t.memorySnapshot = interp.Memory.Clone()
	}
	t.memSize = uint64(interp.Memory.Len())

	t.opcode = interp.CurrentOpcode()
	t.pc = interp.ProgramCounter()
}

// StepEnd is the post-opcode callback: spec.md §4.2 callback 3. If skip is
// set (the step right after a call/create returned), it is cleared and no
// record is emitted — that boundary was already logged from Call/Create.
func (t *Tracer) StepEnd(interp *vm.Interpreter, _ error) {
	t.gas.stepEnd(interp)

	if t.skip {
		t.skip = false
		return
	}
	t.recordLog(interp)
}

// Call logs the CALL-family opcode using the outer frame's most recent
// Step snapshot, then returns a continue verdict with no gas/output hint.
func (t *Tracer) Call(interp *vm.Interpreter, _ *vm.CallInput) (uint64, []byte) {
	t.recordLog(interp)
	return 0, nil
}

// CallEnd forwards to the gas accumulator and arms skip so the following
// StepEnd doesn't duplicate this boundary.
func (t *Tracer) CallEnd(interp *vm.Interpreter, _ *vm.CallInput, _ uint64, _ []byte, _ error) {
	t.gas.callEnd(interp)
	t.skip = true
}

// Create is Call's symmetric counterpart for CREATE-family opcodes.
func (t *Tracer) Create(interp *vm.Interpreter, _ *vm.CreateInput) (uint64, []byte) {
	t.recordLog(interp)
	return 0, nil
}

// CreateEnd is CallEnd's symmetric counterpart.
func (t *Tracer) CreateEnd(interp *vm.Interpreter, _ *vm.CreateInput, _ common.Address, _ uint64, _ []byte, _ error) {
	t.gas.createEnd(interp)
	t.skip = true
}

// recordLog builds a StepRecord out of the tracer's current snapshots and
// appends it to logs. This is spec.md §4.3.
func (t *Tracer) recordLog(interp *vm.Interpreter) {
	depth := interp.Journal().Depth()

	var stack *[]string
	if !t.config.DisableStack {
		s := make([]string, len(t.stackSnapshot))
		for i, w := range t.stackSnapshot {
			s[i] = wordHex(&w)
		}
		stack = &s
	}

	var memory *[]string
	if !t.config.DisableMemory {
		m := chunkHex(t.memorySnapshot)
		memory = &m
	}

	var storage *map[string]string
	if !t.config.DisableStorage {
		if t.opcode == vm.SLOAD || t.opcode == vm.SSTORE {
			if entry, ok := interp.Journal().LastEntry(); ok {
				if change, ok := entry.(vm.StorageChangeEntry); ok {
					value := interp.Journal().PresentValue(change.Address, change.Key)
					bucket := t.storageByContract[t.contractAddress]
					if bucket == nil {
						bucket = make(map[string]string)
						t.storageByContract[t.contractAddress] = bucket
					}
					bucket[change.Key.Hex()] = wordHex(&value)
				}
			}
		}
		m := cloneStringMap(t.storageByContract[t.contractAddress])
		storage = &m
	}

	opName, defined := vm.Mnemonic(t.opcode)
	var errStr string
	if !defined {
		errStr = opName
	}

	// The gas accumulator isn't updated for STATICCALL, so reporting the
	// previous opcode's cost would be misleading; force it to zero
	// instead. See spec.md §4.5.
	gasCost := t.gas.lastCost
	if t.opcode == vm.STATICCALL {
		gasCost = 0
	}

	t.logs = append(t.logs, &StepRecord{
		Pc:      t.pc,
		Op:      byte(t.opcode),
		OpName:  opName,
		Gas:     hexutil.EncodeUint64(t.gasRemaining),
		GasCost: hexutil.EncodeUint64(gasCost),
		Depth:   depth,
		MemSize: t.memSize,
		Stack:   stack,
		Memory:  memory,
		Storage: storage,
		Error:   errStr,
	})
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// chunkHex splits mem into 32-byte chunks of plain lowercase hex (no "0x"
// prefix); the final chunk may be shorter if len(mem) isn't a multiple of
// 32.
func chunkHex(mem []byte) []string {
	if len(mem) == 0 {
		return []string{}
	}
	chunks := make([]string, 0, (len(mem)+31)/32)
	for i := 0; i < len(mem); i += 32 {
		end := i + 32
		if end > len(mem) {
			end = len(mem)
		}
		chunks = append(chunks, fmt.Sprintf("%x", mem[i:end]))
	}
	return chunks
}
