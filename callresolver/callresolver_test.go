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

package callresolver

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func defaults() Defaults {
	return Defaults{
		ChainID:       big.NewInt(1),
		DefaultCaller: common.HexToAddress("0xaaaa"),
		BlockGasLimit: 30_000_000,
		NonceOf:       func(common.Address) (uint64, error) { return 7, nil },
		IsLondon:      true,
		IsBerlin:      true,
	}
}

func TestResolveDefaultsFromAddrAndGas(t *testing.T) {
	to := common.HexToAddress("0xbbbb")
	tx, err := Resolve(CallRequest{To: &to}, defaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.From != defaults().DefaultCaller {
		t.Errorf("expected default caller, got %s", tx.From.Hex())
	}
	if tx.Gas != 30_000_000 {
		t.Errorf("expected default gas to be the block limit, got %d", tx.Gas)
	}
	if tx.Nonce != 7 {
		t.Errorf("expected nonce from NonceOf, got %d", tx.Nonce)
	}
}

func TestResolveLegacyShapeWhenGasPriceSet(t *testing.T) {
	gasPrice := big.NewInt(5)
	tx, err := Resolve(CallRequest{GasPrice: gasPrice}, defaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.GasPrice == nil || tx.GasPrice.Cmp(gasPrice) != 0 {
		t.Fatalf("expected legacy gas price %s, got %v", gasPrice, tx.GasPrice)
	}
	if tx.MaxFeePerGas != nil {
		t.Errorf("expected no EIP-1559 fields on a legacy-shaped request")
	}
}

func TestResolvePreLondonForcesLegacyShape(t *testing.T) {
	d := defaults()
	d.IsLondon = false
	tx, err := Resolve(CallRequest{}, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.GasPrice == nil {
		t.Fatalf("expected a defaulted legacy gas price pre-London")
	}
}

func TestResolveDefaultsToEip1559Shape(t *testing.T) {
	tx, err := Resolve(CallRequest{}, defaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.GasPrice != nil {
		t.Errorf("expected no legacy gas price on an EIP-1559-shaped request")
	}
	if tx.MaxFeePerGas == nil || tx.MaxPriorityFeePerGas == nil {
		t.Fatalf("expected both EIP-1559 fee fields to be defaulted")
	}
}

func TestResolvePropagatesNonceError(t *testing.T) {
	d := defaults()
	d.NonceOf = func(common.Address) (uint64, error) { return 0, errBoom }
	if _, err := Resolve(CallRequest{}, d); err != errBoom {
		t.Fatalf("expected the nonce lookup error to propagate, got %v", err)
	}
}

func TestFakeSignIsDeterministicAndNotZero(t *testing.T) {
	addr := common.HexToAddress("0xcccc")
	sig1 := FakeSign(addr)
	sig2 := FakeSign(addr)
	if sig1.R.Cmp(sig2.R) != 0 || sig1.S.Cmp(sig2.S) != 0 || sig1.V != sig2.V {
		t.Fatalf("expected FakeSign to be deterministic for the same address")
	}
	if sig1.R.Sign() == 0 || sig1.S.Sign() == 0 {
		t.Fatalf("expected a non-zero signature")
	}
}

func TestFakeSignVariesByAddress(t *testing.T) {
	a := FakeSign(common.HexToAddress("0x1"))
	b := FakeSign(common.HexToAddress("0x2"))
	if a.R.Cmp(b.R) == 0 && a.S.Cmp(b.S) == 0 {
		t.Fatalf("expected different addresses to produce different signatures")
	}
}

var errBoom = errNonce("boom")

type errNonce string

func (e errNonce) Error() string { return string(e) }
