// Copyright 2014 The go-ethereum Authors
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

// Package vm is a small, self-contained stand-in for the production EVM
// interpreter. The real interpreter, memory/stack/journal, and opcode
// dispatch are out of scope for this module (they're the collaborator the
// tracer plugs into) — this package exists only so that eth/tracers/logger
// and eth/tracers/replay have something real to drive in tests.
package vm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// BlockContext carries the subset of block data an inspector may need.
type BlockContext struct {
	Number     uint64
	Time       uint64
	Coinbase   common.Address
	PrevRandao *common.Hash
}

// CallInput describes a CALL/DELEGATECALL/STATICCALL about to open a
// nested frame.
type CallInput struct {
	Caller common.Address
	To     common.Address
	Value  *uint256.Int
	Input  []byte
	Gas    uint64
}

// CreateInput describes a CREATE/CREATE2 about to open a nested frame.
type CreateInput struct {
	Caller common.Address
	Value  *uint256.Int
	Code   []byte
	Gas    uint64
}

// Inspector is the observer the interpreter drives at each step and at
// every call/create boundary. It mirrors revm's Inspector trait (see
// original_source/crates/rethnet_evm/src/debug_trace.rs): every callback
// returns control to the interpreter immediately, never aborting
// execution itself.
type Inspector interface {
	InitializeInterp(interp *Interpreter)
	Step(interp *Interpreter)
	StepEnd(interp *Interpreter, stepErr error)
	Call(interp *Interpreter, input *CallInput) (gas uint64, ret []byte)
	CallEnd(interp *Interpreter, input *CallInput, remainingGas uint64, ret []byte, callErr error)
	Create(interp *Interpreter, input *CreateInput) (gas uint64, ret []byte)
	CreateEnd(interp *Interpreter, input *CreateInput, address common.Address, remainingGas uint64, out []byte, createErr error)
}

// Config configures the interpreter; Tracer is nil for a plain
// (non-inspecting) run.
type Config struct {
	Tracer Inspector
}

// Interpreter runs a single contract's bytecode to completion, driving an
// optional Inspector along the way.
type Interpreter struct {
	evm      *EVM
	Contract *Contract
	Stack    *Stack
	Memory   *Memory

	pc  uint64
	op  OpCode
	gas uint64
}

func (in *Interpreter) Journal() *JournaledState   { return in.evm.Journal }
func (in *Interpreter) BlockContext() BlockContext { return in.evm.BlockContext }
func (in *Interpreter) ProgramCounter() uint64     { return in.pc }
func (in *Interpreter) CurrentOpcode() OpCode      { return in.op }
func (in *Interpreter) GasLeft() uint64            { return in.gas }

// EVM owns the journaled state and the block context shared across every
// call frame of a single traced (or untraced) transaction.
type EVM struct {
	BlockContext BlockContext
	Config       Config
	Journal      *JournaledState
}

// NewEVM builds a fresh EVM with its own journaled state, ready to run one
// transaction.
func NewEVM(blockCtx BlockContext, cfg Config) *EVM {
	return &EVM{BlockContext: blockCtx, Config: cfg, Journal: NewJournaledState()}
}

// gasCost is a deliberately simplified, fixed per-opcode gas schedule —
// enough to exercise the gas accumulator's bookkeeping without
// reimplementing the real fee schedule, which is out of scope.
var gasCost = map[OpCode]uint64{
	STOP: 0, ADD: 3, POP: 2, MLOAD: 3, MSTORE: 3,
	SLOAD: 100, SSTORE: 100, JUMP: 8, JUMPI: 10, PC: 2, GAS: 2,
	JUMPDEST: 1, PUSH1: 3, PUSH2: 3, DUP1: 3, SWAP1: 3,
	CREATE: 32000, CALL: 100, RETURN: 0, DELEGATECALL: 100,
	CREATE2: 32000, STATICCALL: 100, REVERT: 0, INVALID: 0,
}

// run executes contract.Code from pc 0 until it halts, reverts, or hits an
// error. It reports every opcode to in.Config.Tracer, if set, following
// exactly the callback choreography spec.md §4.2 describes: a plain
// step/step_end pair for ordinary opcodes, and step + call/create +
// call_end/create_end + step_end for CALL-family and CREATE-family
// opcodes (the nested frame in between runs no code in this harness) —
// the duplicate-suppression across that last step_end is the tracer's job
// (its "skip" flag), not the interpreter's.
func (in *Interpreter) run(input []byte) (ret []byte, err error) {
	tracer := in.evm.Config.Tracer
	if tracer != nil {
		tracer.InitializeInterp(in)
	}

	contract := in.Contract
	for {
		if int(in.pc) >= len(contract.Code) {
			return nil, nil
		}
		op := OpCode(contract.Code[in.pc])
		in.op = op

		if tracer != nil {
			tracer.Step(in)
		}

		cost := gasCost[op]
		if in.gas < cost {
			err = ErrOutOfGas
		} else {
			in.gas -= cost
			ret, err = in.execute(op, input)
		}

		if tracer != nil {
			tracer.StepEnd(in, err)
		}

		if err != nil {
			if err == ErrExecutionReverted {
				return ret, err
			}
			return nil, err
		}
		if op == STOP || op == RETURN {
			return ret, nil
		}
	}
}

// execute runs the semantics of a single opcode and advances in.pc. It
// returns a non-nil ret only for RETURN/REVERT.
func (in *Interpreter) execute(op OpCode, input []byte) ([]byte, error) {
	_, defined := Mnemonic(op)
	if !defined {
		return nil, ErrInvalidOpcode
	}

	if isCallLike(op) {
		return in.dispatchCall(op)
	}
	if isCreateLike(op) {
		return in.dispatchCreate(op)
	}

	switch op {
	case STOP:
		in.pc++
	case JUMPDEST, PC, GAS:
		if op == GAS {
			in.Stack.push(new(uint256.Int).SetUint64(in.gas))
		}
		in.pc++
	case PUSH1:
		in.Stack.push(new(uint256.Int).SetUint64(uint64(in.byteAt(in.pc + 1))))
		in.pc += 2
	case PUSH2:
		v := uint64(in.byteAt(in.pc+1))<<8 | uint64(in.byteAt(in.pc+2))
		in.Stack.push(new(uint256.Int).SetUint64(v))
		in.pc += 3
	case POP:
		in.Stack.pop()
		in.pc++
	case DUP1:
		in.Stack.dup(1)
		in.pc++
	case SWAP1:
		in.Stack.swap(1)
		in.pc++
	case ADD:
		a := in.Stack.pop()
		b := in.Stack.pop()
		a.Add(&a, &b)
		in.Stack.push(&a)
		in.pc++
	case JUMP:
		dest := in.Stack.pop()
		in.pc = dest.Uint64()
	case JUMPI:
		dest := in.Stack.pop()
		cond := in.Stack.pop()
		if !cond.IsZero() {
			in.pc = dest.Uint64()
		} else {
			in.pc++
		}
	case MSTORE:
		offset := in.Stack.pop()
		value := in.Stack.pop()
		b := value.Bytes32()
		in.Memory.Set(offset.Uint64(), 32, b[:])
		in.pc++
	case MLOAD:
		offset := in.Stack.pop()
		in.Memory.Resize(offset.Uint64() + 32)
		var word uint256.Int
		word.SetBytes(in.Memory.GetCopy(offset.Uint64(), 32))
		in.Stack.push(&word)
		in.pc++
	case SLOAD:
		key := in.Stack.pop()
		hashKey := common.Hash(key.Bytes32())
		v := in.Journal().PresentValue(in.Contract.Address, hashKey)
		in.Stack.push(&v)
		in.pc++
	case SSTORE:
		key := in.Stack.pop()
		value := in.Stack.pop()
		hashKey := common.Hash(key.Bytes32())
		in.Journal().RecordStorageChange(in.Contract.Address, hashKey, value)
		in.pc++
	case RETURN, REVERT:
		offset := in.Stack.pop()
		size := in.Stack.pop()
		in.Memory.Resize(offset.Uint64() + size.Uint64())
		out := in.Memory.GetCopy(offset.Uint64(), size.Uint64())
		in.pc++
		if op == REVERT {
			return out, ErrExecutionReverted
		}
		return out, nil
	default:
		return nil, ErrInvalidOpcode
	}
	return nil, nil
}

func (in *Interpreter) byteAt(pc uint64) byte {
	if int(pc) >= len(in.Contract.Code) {
		return 0
	}
	return in.Contract.Code[pc]
}

// dispatchCall pops a CALL-family opcode's arguments, runs the call/call_end
// inspector hooks around a trivial (no sub-code) nested frame, and leaves a
// success flag on the stack as a real interpreter would.
func (in *Interpreter) dispatchCall(op OpCode) ([]byte, error) {
	gas := in.Stack.pop()
	addr := in.Stack.pop()
	var value uint256.Int
	if op == CALL {
		value = in.Stack.pop()
	}
	argsOffset := in.Stack.pop()
	argsSize := in.Stack.pop()
	retOffset := in.Stack.pop()
	retSize := in.Stack.pop()
	_ = retOffset
	_ = retSize

	addrBytes := addr.Bytes32()
	callInput := &CallInput{
		Caller: in.Contract.Address,
		To:     common.BytesToAddress(addrBytes[12:]),
		Value:  &value,
		Input:  in.Memory.GetCopy(argsOffset.Uint64(), argsSize.Uint64()),
		Gas:    gas.Uint64(),
	}

	var hookGas uint64
	var hookRet []byte
	if tracer := in.evm.Config.Tracer; tracer != nil {
		hookGas, hookRet = tracer.Call(in, callInput)
	}

	in.Journal().PushFrame()
	// This harness never executes the callee's own code — the interpreter
	// dispatch loop itself is out of scope; only the call/call_end
	// boundary bookkeeping matters to the tracer.
	remaining := callInput.Gas
	var out []byte
	var callErr error
	in.Journal().PopFrame()

	if tracer := in.evm.Config.Tracer; tracer != nil {
		tracer.CallEnd(in, callInput, remaining, out, callErr)
	}
	_ = hookGas
	_ = hookRet

	in.Stack.push(new(uint256.Int).SetOne())
	in.pc++
	return nil, nil
}

// dispatchCreate is dispatchCall's symmetric counterpart for CREATE/CREATE2.
func (in *Interpreter) dispatchCreate(op OpCode) ([]byte, error) {
	value := in.Stack.pop()
	offset := in.Stack.pop()
	size := in.Stack.pop()
	if op == CREATE2 {
		in.Stack.pop() // salt
	}

	createInput := &CreateInput{
		Caller: in.Contract.Address,
		Value:  &value,
		Code:   in.Memory.GetCopy(offset.Uint64(), size.Uint64()),
		Gas:    in.gas,
	}

	var hookGas uint64
	var hookRet []byte
	if tracer := in.evm.Config.Tracer; tracer != nil {
		hookGas, hookRet = tracer.Create(in, createInput)
	}

	in.Journal().PushFrame()
	newAddr := common.BytesToAddress(createInput.Code)
	in.Journal().PopFrame()

	if tracer := in.evm.Config.Tracer; tracer != nil {
		tracer.CreateEnd(in, createInput, newAddr, createInput.Gas, nil, nil)
	}
	_ = hookGas
	_ = hookRet

	var addrWord uint256.Int
	addrWord.SetBytes(newAddr.Bytes())
	in.Stack.push(&addrWord)
	in.pc++
	return nil, nil
}

// Run is the externally callable entry point: build a fresh Interpreter
// for contract and execute it, optionally driven by the EVM's configured
// tracer.
func (evm *EVM) Run(contract *Contract, input []byte) (ret []byte, gasUsed uint64, err error) {
	interp := &Interpreter{
		evm:      evm,
		Contract: contract,
		Stack:    newStack(),
		Memory:   newMemory(),
		gas:      contract.Gas,
	}
	ret, err = interp.run(input)
	gasUsed = contract.Gas - interp.gas
	return ret, gasUsed, err
}
