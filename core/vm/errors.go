// Copyright 2017 The go-ethereum Authors
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

import "errors"

var (
	// ErrExecutionReverted is returned by REVERT; the caller keeps the
	// output bytes and whatever gas was left.
	ErrExecutionReverted = errors.New("execution reverted")
	// ErrInvalidOpcode is returned when the jump table has no entry for
	// the current opcode byte.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrOutOfGas is returned when an opcode's cost exceeds the
	// contract's remaining gas.
	ErrOutOfGas = errors.New("out of gas")
	// ErrStackUnderflow is returned when an opcode needs more stack
	// elements than are present.
	ErrStackUnderflow = errors.New("stack underflow")
)
