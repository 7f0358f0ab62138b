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

import (
	"regexp"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/common"

	vm "github.com/evmlab/debugtrace/core/vm"
)

var hexWordRe = regexp.MustCompile(`^0x[0-9a-f]{64}$`)

func runTraced(t *testing.T, code []byte, cfg Config) (*Tracer, []byte, error) {
	t.Helper()
	tracer := New(cfg)
	evm := vm.NewEVM(vm.BlockContext{}, vm.Config{Tracer: tracer})
	contract := vm.NewContract(common.Address{}, common.Address{0x42}, code, 100000)
	out, _, err := evm.Run(contract, nil)
	return tracer, out, err
}

func TestStoreCapture(t *testing.T) {
	// PUSH1 0x01 PUSH1 0x00 SSTORE STOP
	code := []byte{byte(vm.PUSH1), 0x1, byte(vm.PUSH1), 0x0, byte(vm.SSTORE), byte(vm.STOP)}
	tracer, _, err := runTraced(t, code, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logs := tracer.Logs()
	const wantSteps = 4 // PUSH1, PUSH1, SSTORE, STOP
	if len(logs) != wantSteps {
		t.Fatalf("expected %d steps, got %d", wantSteps, len(logs))
	}

	sstoreLog := logs[2]
	if sstoreLog.OpName != "SSTORE" {
		t.Fatalf("expected SSTORE at index 2, got %s", sstoreLog.OpName)
	}
	if sstoreLog.Storage == nil || len(*sstoreLog.Storage) != 1 {
		t.Fatalf("expected exactly 1 changed slot, got %v", sstoreLog.Storage)
	}
	var zeroKey common.Hash
	exp := common.BigToHash(common.Big1)
	if got := (*sstoreLog.Storage)[zeroKey.Hex()]; got != exp.Hex() {
		t.Errorf("expected %s, got %s", exp.Hex(), got)
	}

	// The storage mirror carries forward into later steps of the same
	// contract even though they aren't SLOAD/SSTORE.
	stopLog := logs[len(logs)-1]
	if stopLog.Storage == nil || len(*stopLog.Storage) != 1 {
		t.Fatalf("expected storage mirror to persist, got %v", stopLog.Storage)
	}
}

func TestDisabledCaptures(t *testing.T) {
	code := []byte{byte(vm.PUSH1), 0x1, byte(vm.PUSH1), 0x0, byte(vm.SSTORE), byte(vm.STOP)}
	tracer, _, err := runTraced(t, code, Config{DisableStack: true, DisableMemory: true, DisableStorage: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, l := range tracer.Logs() {
		if l.Stack != nil {
			t.Fatalf("expected no stack field, got %v", l.Stack)
		}
		if l.Memory != nil {
			t.Fatalf("expected no memory field, got %v", l.Memory)
		}
		if l.Storage != nil {
			t.Fatalf("expected no storage field, got %v", l.Storage)
		}
	}
}

func TestUndefinedOpcode(t *testing.T) {
	// 0x0c has no entry in the jump table.
	code := []byte{0x0c}
	tracer, _, err := runTraced(t, code, Config{})
	if err == nil {
		t.Fatalf("expected an error for an undefined opcode")
	}
	logs := tracer.Logs()
	if len(logs) != 1 {
		t.Fatalf("expected exactly 1 log entry, got %d", len(logs))
	}
	want := "opcode 0x$c not defined"
	if logs[0].OpName != want {
		t.Errorf("expected opName %q, got %q", want, logs[0].OpName)
	}
	if logs[0].Error != want {
		t.Errorf("expected error %q, got %q", want, logs[0].Error)
	}
}

func TestStaticCallGasCostForcedZero(t *testing.T) {
	// PUSH1 0(retSize) PUSH1 0(retOffset) PUSH1 0(argsSize) PUSH1 0(argsOffset)
	// PUSH1 0(addr) PUSH1 0(gas) STATICCALL STOP
	code := []byte{
		byte(vm.PUSH1), 0, byte(vm.PUSH1), 0, byte(vm.PUSH1), 0, byte(vm.PUSH1), 0,
		byte(vm.PUSH1), 0, byte(vm.PUSH1), 0, byte(vm.STATICCALL), byte(vm.STOP),
	}
	tracer, _, err := runTraced(t, code, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sawStaticCall bool
	for _, l := range tracer.Logs() {
		if l.OpName == "STATICCALL" {
			sawStaticCall = true
			if l.GasCost != "0x0" {
				t.Errorf("expected gasCost 0x0 for STATICCALL, got %s", l.GasCost)
			}
		}
	}
	if !sawStaticCall {
		t.Fatalf("expected a STATICCALL step in the log")
	}
}

func TestWordHexPadding(t *testing.T) {
	code := []byte{byte(vm.PUSH1), 0x0, byte(vm.STOP)}
	tracer, _, err := runTraced(t, code, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stopLog := tracer.Logs()[len(tracer.Logs())-1]
	if stopLog.Stack == nil || len(*stopLog.Stack) != 1 {
		t.Fatalf("expected 1 stack word, got %v", stopLog.Stack)
	}
	if !hexWordRe.MatchString((*stopLog.Stack)[0]) {
		t.Errorf("expected a 66-char zero-padded lowercase hex word, got %q", (*stopLog.Stack)[0])
	}
}

func TestStepRecordFieldsMatchExpected(t *testing.T) {
	code := []byte{byte(vm.PUSH1), 0x2a, byte(vm.STOP)}
	tracer, _, err := runTraced(t, code, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := tracer.Logs()[0]
	emptyStack := []string{}
	want := &StepRecord{
		Pc:      0,
		Op:      byte(vm.PUSH1),
		OpName:  "PUSH1",
		Gas:     "0x186a0",
		GasCost: "0x3",
		Depth:   1,
		MemSize: 0,
		Stack:   &emptyStack,
	}
	if got.Pc != want.Pc || got.OpName != want.OpName || got.Gas != want.Gas || got.GasCost != want.GasCost ||
		got.Stack == nil || len(*got.Stack) != len(*want.Stack) {
		t.Fatalf("step record mismatch:\ngot:  %s\nwant: %s", spew.Sdump(got), spew.Sdump(want))
	}
}
