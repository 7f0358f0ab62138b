// Copyright 2016 The go-ethereum Authors
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
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// OpCode is a single-byte EVM opcode.
type OpCode byte

const (
	STOP OpCode = 0x00
	ADD  OpCode = 0x01

	POP   OpCode = 0x50
	MLOAD OpCode = 0x51

	MSTORE OpCode = 0x52
	SLOAD  OpCode = 0x54
	SSTORE OpCode = 0x55
	JUMP   OpCode = 0x56
	JUMPI  OpCode = 0x57
	PC     OpCode = 0x58
	GAS    OpCode = 0x5a

	JUMPDEST OpCode = 0x5b

	PUSH1 OpCode = 0x60
	PUSH2 OpCode = 0x61

	DUP1 OpCode = 0x80

	SWAP1 OpCode = 0x90

	CREATE     OpCode = 0xf0
	CALL       OpCode = 0xf1
	RETURN     OpCode = 0xf3
	DELEGATECALL OpCode = 0xf4
	CREATE2    OpCode = 0xf5
	STATICCALL OpCode = 0xfa
	REVERT     OpCode = 0xfd
	INVALID    OpCode = 0xfe
)

// opCodeToString mirrors the jump-table mnemonic map go-ethereum keeps in
// core/vm/opcodes.go, trimmed to the subset this harness executes. Bytes
// that aren't keys here are "gaps" in the jump table.
var opCodeToString = map[OpCode]string{
	STOP:         "STOP",
	ADD:          "ADD",
	POP:          "POP",
	MLOAD:        "MLOAD",
	MSTORE:       "MSTORE",
	SLOAD:        "SLOAD",
	SSTORE:       "SSTORE",
	JUMP:         "JUMP",
	JUMPI:        "JUMPI",
	PC:           "PC",
	GAS:          "GAS",
	JUMPDEST:     "JUMPDEST",
	PUSH1:        "PUSH1",
	PUSH2:        "PUSH2",
	DUP1:         "DUP1",
	SWAP1:        "SWAP1",
	CREATE:       "CREATE",
	CALL:         "CALL",
	RETURN:       "RETURN",
	DELEGATECALL: "DELEGATECALL",
	CREATE2:      "CREATE2",
	STATICCALL:   "STATICCALL",
	REVERT:       "REVERT",
	INVALID:      "INVALID",
}

// Mnemonic looks up the human name for op. The second return value is false
// for a byte that has no entry in the jump table ("gap"), matching the
// Hardhat vm-debug-tracer fallback message byte-for-byte including the
// literal dollar sign.
func Mnemonic(op OpCode) (name string, defined bool) {
	if name, ok := opCodeToString[op]; ok {
		return name, true
	}
	return fmt.Sprintf("opcode 0x$%x not defined", byte(op)), false
}

// callLikeOps and createLikeOps are consulted by the interpreter to decide
// whether an opcode opens a nested call/create frame, which needs the
// call/call_end (resp. create/create_end) inspector hooks instead of a
// plain step/step_end pair.
var callLikeOps = mapset.NewThreadUnsafeSet(CALL, DELEGATECALL, STATICCALL)

var createLikeOps = mapset.NewThreadUnsafeSet(CREATE, CREATE2)

func isCallLike(op OpCode) bool   { return callLikeOps.Contains(op) }
func isCreateLike(op OpCode) bool { return createLikeOps.Contains(op) }
