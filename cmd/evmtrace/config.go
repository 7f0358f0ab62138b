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
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/evmlab/debugtrace/chainconfig"
)

// traceFileConfig is the TOML shape evmtrace reads from -config. It
// names the chain to run against (chainconfig.BlockchainConfig, so a
// forked chain is configured the same way hardhat_reset accepts it)
// plus the one call to trace.
type traceFileConfig struct {
	Chain chainconfig.BlockchainConfig `toml:"chain"`
	Trace traceTarget                  `toml:"trace"`
}

// traceTarget names the code to run and the input to run it with. It
// stands in for a full transaction/block lookup: evmtrace traces
// exactly the call described here rather than replaying a real chain's
// block history.
type traceTarget struct {
	CodeHex        string `toml:"code"`
	InputHex       string `toml:"input"`
	GasLimit       uint64 `toml:"gas_limit"`
	DisableStack   bool   `toml:"disable_stack"`
	DisableMemory  bool   `toml:"disable_memory"`
	DisableStorage bool   `toml:"disable_storage"`
}

func loadTraceFileConfig(path string) (*traceFileConfig, error) {
	var cfg traceFileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unrecognized keys: %v", path, undecoded)
	}
	if cfg.Trace.GasLimit == 0 {
		cfg.Trace.GasLimit = 30_000_000
	}
	return &cfg, nil
}
