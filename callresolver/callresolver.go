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

// Package callresolver fills in the fields debug_traceCall and eth_call
// leave optional on their call-request payload, the way
// resolve_call_request does in
// original_source/crates/edr_provider/src/requests/eth/call.rs. The
// caller never signs these requests for real — FakeSign stamps a
// signature made with a fixed, well-known key onto the resulting
// transaction so
// downstream code can still hash and pass it through ordinary
// transaction plumbing.
package callresolver

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/ethereum/go-ethereum/common"
)

// CallRequest is the wire shape of an eth_call/debug_traceCall
// parameter object: every field but To is optional and gets defaulted
// by Resolve.
type CallRequest struct {
	From                 *common.Address
	To                   *common.Address
	Gas                  *uint64
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	Value                *big.Int
	Data                 []byte
	AccessList           []AccessTuple
}

// AccessTuple mirrors an EIP-2930 access list entry.
type AccessTuple struct {
	Address     common.Address
	StorageKeys []common.Hash
}

// Defaults carries the chain/block state Resolve needs to fill in
// whatever the caller left blank.
type Defaults struct {
	ChainID       *big.Int
	DefaultCaller common.Address
	BlockGasLimit uint64
	NonceOf       func(addr common.Address) (uint64, error)
	IsLondon      bool
	IsBerlin      bool
}

// ResolvedTransaction is the fully-defaulted, fake-signed transaction
// ready to be handed to the VM.
type ResolvedTransaction struct {
	From                 common.Address
	To                   *common.Address
	Nonce                uint64
	Gas                  uint64
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	Value                *big.Int
	Data                 []byte
	AccessList           []AccessTuple
	ChainID              *big.Int
	Signature            FakeSignature
}

// Resolve fills in every optional field of req against defaults,
// choosing a legacy/EIP-2930/EIP-1559 shape the same way
// resolve_call_request does: an explicit gas price (or a pre-London
// chain) forces a legacy-family transaction, an access list on a
// Berlin+ chain upgrades that to EIP-2930, and everything else is
// EIP-1559.
func Resolve(req CallRequest, d Defaults) (*ResolvedTransaction, error) {
	from := d.DefaultCaller
	if req.From != nil {
		from = *req.From
	}

	gas := d.BlockGasLimit
	if req.Gas != nil {
		gas = *req.Gas
	}

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}

	nonce, err := d.NonceOf(from)
	if err != nil {
		return nil, err
	}

	tx := &ResolvedTransaction{
		From:       from,
		To:         req.To,
		Nonce:      nonce,
		Gas:        gas,
		Value:      value,
		Data:       req.Data,
		AccessList: req.AccessList,
		ChainID:    d.ChainID,
	}

	legacyShape := !d.IsLondon || req.GasPrice != nil
	if legacyShape {
		gasPrice := req.GasPrice
		if gasPrice == nil {
			gasPrice = new(big.Int)
		}
		tx.GasPrice = gasPrice
		if req.AccessList != nil && d.IsBerlin {
			// EIP-2930 shape: keep the access list, legacy gas pricing.
		} else {
			tx.AccessList = nil
		}
	} else {
		maxFee := req.MaxFeePerGas
		if maxFee == nil {
			maxFee = req.MaxPriorityFeePerGas
		}
		if maxFee == nil {
			maxFee = new(big.Int)
		}
		maxPriority := req.MaxPriorityFeePerGas
		if maxPriority == nil {
			maxPriority = new(big.Int)
		}
		tx.MaxFeePerGas = maxFee
		tx.MaxPriorityFeePerGas = maxPriority
	}

	tx.Signature = FakeSign(from)
	return tx, nil
}

// FakeSignature is a recognizably-invalid (r, s, v) triple: a real
// signature, using a fixed, well-known private key, over a digest made of
// the sender's address bytes zero-padded to 32 bytes, rather than one that
// actually recovers to From.
type FakeSignature struct {
	R *big.Int
	S *big.Int
	V byte
}

// fakeSignerKey is an arbitrary, fixed scalar — never a real account's
// key — used only to produce a structurally valid but semantically
// meaningless signature.
var fakeSignerKey = func() *btcec.PrivateKey {
	var scalar [32]byte
	scalar[31] = 1
	key, _ := btcec.PrivKeyFromBytes(scalar[:])
	return key
}()

// FakeSign returns a signature that lets a call-simulation transaction
// pass through ordinary signed-transaction plumbing (hashing, RLP
// encoding) without claiming to be a genuine signature from sender. The
// VM is expected to take sender as the caller directly rather than
// recovering it from the signature, exactly as ExecutableTransaction's
// with_caller override does upstream.
func FakeSign(sender common.Address) FakeSignature {
	var digest [32]byte
	copy(digest[:], sender.Bytes())

	compact := ecdsa.SignCompact(fakeSignerKey, digest[:], false)
	// SignCompact's layout is [recovery+27, R(32), S(32)]; Ethereum wants
	// (r, s, v) with v as a bare recovery id.
	v := compact[0] - 27
	r := new(big.Int).SetBytes(compact[1:33])
	s := new(big.Int).SetBytes(compact[33:65])

	return FakeSignature{R: r, S: s, V: v}
}
