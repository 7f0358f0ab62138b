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

import "github.com/evmlab/debugtrace/eth/tracers/logger"

// TraceResult is what DebugTraceTransaction returns: the debug_trace
// equivalent of an eth_call receipt plus the full struct log.
type TraceResult struct {
	Pass    bool                 `json:"pass"`
	GasUsed uint64               `json:"gasUsed"`
	Output  []byte               `json:"output,omitempty"`
	Logs    []*logger.StepRecord `json:"structLogs"`
}

// toTraceResult maps a VM's raw ExecutionResult onto the wire shape:
// Success is the only passing outcome, Revert and Halt both fail but
// still carry whatever output/gas the VM produced.
func toTraceResult(result ExecutionResult, logs []*logger.StepRecord) *TraceResult {
	return &TraceResult{
		Pass:    result.Kind == Success,
		GasUsed: result.GasUsed,
		Output:  result.Output,
		Logs:    logs,
	}
}
