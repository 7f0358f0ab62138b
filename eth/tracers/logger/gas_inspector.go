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

package logger

import vm "github.com/evmlab/debugtrace/core/vm"

// gasInspector mirrors the VM's own gas bookkeeping so the tracer can
// report "gas remaining before this opcode" and "gas this opcode cost"
// without having to patch the interpreter itself. It's a direct port of
// revm's inspectors::GasInspector, which the original Hardhat tracer
// (original_source/crates/rethnet_evm/src/debug_trace.rs) delegates to by
// the same name.
type gasInspector struct {
	remaining uint64
	lastCost  uint64
}

func (g *gasInspector) initializeInterp(interp *vm.Interpreter) {
	g.remaining = interp.GasLeft()
}

func (g *gasInspector) step(interp *vm.Interpreter) {
	g.remaining = interp.GasLeft()
}

func (g *gasInspector) stepEnd(interp *vm.Interpreter) {
	after := interp.GasLeft()
	if g.remaining > after {
		g.lastCost = g.remaining - after
	} else {
		g.lastCost = 0
	}
	g.remaining = after
}

func (g *gasInspector) callEnd(interp *vm.Interpreter) {
	g.remaining = interp.GasLeft()
}

func (g *gasInspector) createEnd(interp *vm.Interpreter) {
	g.remaining = interp.GasLeft()
}
