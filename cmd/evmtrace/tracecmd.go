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

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/golang/snappy"
	"github.com/urfave/cli/v2"

	vm "github.com/evmlab/debugtrace/core/vm"
	"github.com/evmlab/debugtrace/eth/tracers/logger"
)

var traceCommand = &cli.Command{
	Name:      "trace",
	Usage:     "trace the call described by -config and print its EIP-3155 struct log",
	ArgsUsage: " ",
	Action:    runTrace,
}

func runTrace(ctx *cli.Context) error {
	configPath := ctx.String("config")
	if configPath == "" {
		return cli.Exit("missing required -config flag", 1)
	}

	cfg, err := loadTraceFileConfig(configPath)
	if err != nil {
		return cli.Exit(err, 1)
	}

	code, err := hex.DecodeString(trimHexPrefix(cfg.Trace.CodeHex))
	if err != nil {
		return cli.Exit(fmt.Errorf("decoding trace.code: %w", err), 1)
	}
	input, err := hex.DecodeString(trimHexPrefix(cfg.Trace.InputHex))
	if err != nil {
		return cli.Exit(fmt.Errorf("decoding trace.input: %w", err), 1)
	}

	if cfg.Chain.IsForked() {
		log.Info("tracing against a forked chain", "url", cfg.Chain.Forking.JSONRPCURL)
	} else {
		log.Info("tracing against a local chain")
	}

	tracer := logger.New(logger.Config{
		DisableStack:   cfg.Trace.DisableStack,
		DisableMemory:  cfg.Trace.DisableMemory,
		DisableStorage: cfg.Trace.DisableStorage,
	})
	evm := vm.NewEVM(vm.BlockContext{}, vm.Config{Tracer: tracer})
	contract := vm.NewContract(common.Address{}, common.Address{}, code, cfg.Trace.GasLimit)

	output, gasUsed, runErr := evm.Run(contract, input)
	if runErr != nil {
		log.Warn("trace run ended with an error", "err", runErr)
	}

	printStructLogs(tracer.Logs(), !ctx.Bool("no-color"))
	fmt.Printf("gasUsed=%d output=0x%x\n", gasUsed, output)

	if dumpPath := ctx.String("dump"); dumpPath != "" {
		if err := dumpCompressed(dumpPath, tracer.Logs()); err != nil {
			return cli.Exit(fmt.Errorf("writing dump: %w", err), 1)
		}
	}
	return nil
}

func printStructLogs(logs []*logger.StepRecord, colorize bool) {
	opColor := color.New(color.FgCyan).SprintFunc()
	gasColor := color.New(color.FgYellow).SprintFunc()
	errColor := color.New(color.FgRed).SprintFunc()

	for _, l := range logs {
		op := l.OpName
		gas := fmt.Sprintf("gas=%s cost=%s", l.Gas, l.GasCost)
		if colorize {
			op = opColor(op)
			gas = gasColor(gas)
		}
		line := fmt.Sprintf("pc=%04d op=%-12s depth=%d %s", l.Pc, op, l.Depth, gas)
		if l.Error != "" {
			if colorize {
				line += " " + errColor("error="+l.Error)
			} else {
				line += " error=" + l.Error
			}
		}
		fmt.Println(line)
	}
}

// dumpCompressed writes logs to path as snappy-compressed JSON, so a
// long trace can be archived or shipped without re-running the replay.
func dumpCompressed(path string, logs []*logger.StepRecord) error {
	data, err := json.Marshal(logs)
	if err != nil {
		return err
	}
	compressed := snappy.Encode(nil, data)
	return os.WriteFile(path, compressed, 0o644)
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
