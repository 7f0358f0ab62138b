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

// Package chainconfig describes the blockchain a trace runs against:
// either a plain local chain, or one forked from a remote JSON-RPC
// endpoint at a given block. It is a Go port of the hardhat_reset
// configuration record at
// original_source/crates/edr_rpc_server/src/hardhat_methods/reset.rs.
package chainconfig

// BlockchainConfig is the top-level configuration hardhat_reset (and,
// by extension, the tracer's CLI) accepts. A nil Forking means "fresh
// local chain, genesis block 0".
type BlockchainConfig struct {
	Forking *RpcForkConfig `toml:"forking,omitempty"`
}

// RpcForkConfig names a remote JSON-RPC endpoint to fork chain state
// from, optionally pinned to a specific block.
type RpcForkConfig struct {
	JSONRPCURL  string            `toml:"json_rpc_url"`
	BlockNumber *uint64           `toml:"block_number,omitempty"`
	HTTPHeaders map[string]string `toml:"http_headers,omitempty"`
}

// IsForked reports whether cfg describes a forked chain.
func (cfg *BlockchainConfig) IsForked() bool {
	return cfg != nil && cfg.Forking != nil
}
