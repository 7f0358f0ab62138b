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

package vm

import "github.com/holiman/uint256"

// Stack is the EVM execution stack, bottom-to-top, of 256-bit words.
type Stack struct {
	data []uint256.Int
}

func newStack() *Stack {
	return &Stack{data: make([]uint256.Int, 0, 16)}
}

func (st *Stack) push(d *uint256.Int) {
	st.data = append(st.data, *d)
}

func (st *Stack) pop() uint256.Int {
	n := len(st.data) - 1
	v := st.data[n]
	st.data = st.data[:n]
	return v
}

func (st *Stack) peek() *uint256.Int {
	return &st.data[len(st.data)-1]
}

// Back returns the n-th element from the top, 0-indexed.
func (st *Stack) Back(n int) *uint256.Int {
	return &st.data[len(st.data)-n-1]
}

func (st *Stack) len() int { return len(st.data) }

func (st *Stack) dup(n int) {
	st.push(&st.data[len(st.data)-n])
}

func (st *Stack) swap(n int) {
	top := len(st.data) - 1
	st.data[top], st.data[top-n] = st.data[top-n], st.data[top]
}

// Data returns the stack contents bottom-to-top. Callers that need a
// snapshot that outlives further mutation must clone it themselves.
func (st *Stack) Data() []uint256.Int {
	return st.data
}

// Clone returns an independent copy of the stack contents, bottom-to-top.
func (st *Stack) Clone() []uint256.Int {
	cp := make([]uint256.Int, len(st.data))
	copy(cp, st.data)
	return cp
}
