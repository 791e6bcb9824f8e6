// Copyright 2023 The ethers-go Authors
// This file is part of the ethers-go library.
//
// The ethers-go library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ethers-go library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ethers-go library. If not, see <http://www.gnu.org/licenses/>.

package types

import (
	"encoding/json"
	"math/big"

	"github.com/austinabell/ethers-go/common"
	"github.com/austinabell/ethers-go/common/hexutil"
)

// Transaction represents a transaction as returned by the RPC API.
type Transaction struct {
	Hash             common.Hash     `json:"hash"`
	Nonce            hexutil.Uint64  `json:"nonce"`
	BlockHash        *common.Hash    `json:"blockHash"`        // nil when pending
	BlockNumber      *hexutil.Big    `json:"blockNumber"`      // nil when pending
	TransactionIndex *hexutil.Uint64 `json:"transactionIndex"` // nil when pending
	From             common.Address  `json:"from"`
	To               *common.Address `json:"to"` // nil for contract creation
	Value            *hexutil.Big    `json:"value"`
	GasPrice         *hexutil.Big    `json:"gasPrice"`
	Gas              *hexutil.Big    `json:"gas"`
	Input            hexutil.Bytes   `json:"input"`
	V                *hexutil.Big    `json:"v"`
	R                *hexutil.Big    `json:"r"`
	S                *hexutil.Big    `json:"s"`
}

// NameOrAddress holds either an ENS name or a plain address. Provider
// operations resolve names before dispatching the underlying call.
type NameOrAddress struct {
	name string
	addr *common.Address
}

// Name wraps an ENS name.
func Name(name string) NameOrAddress {
	return NameOrAddress{name: name}
}

// Addr wraps a plain address.
func Addr(addr common.Address) NameOrAddress {
	return NameOrAddress{addr: &addr}
}

// IsName reports whether the value is an unresolved ENS name.
func (n NameOrAddress) IsName() bool { return n.addr == nil }

// EnsName returns the wrapped name, or the empty string for an address.
func (n NameOrAddress) EnsName() string { return n.name }

// Address returns the wrapped address. It is only valid when IsName is false.
func (n NameOrAddress) Address() common.Address {
	if n.addr == nil {
		return common.Address{}
	}
	return *n.addr
}

func (n NameOrAddress) String() string {
	if n.addr != nil {
		return n.addr.Hex()
	}
	return n.name
}

// MarshalJSON implements json.Marshaler. Addresses marshal in hex syntax,
// names as plain strings.
func (n NameOrAddress) MarshalJSON() ([]byte, error) {
	if n.addr != nil {
		return json.Marshal(n.addr)
	}
	return json.Marshal(n.name)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NameOrAddress) UnmarshalJSON(input []byte) error {
	var addr common.Address
	if err := addr.UnmarshalJSON(input); err == nil {
		n.addr, n.name = &addr, ""
		return nil
	}
	var name string
	if err := json.Unmarshal(input, &name); err != nil {
		return err
	}
	n.addr, n.name = nil, name
	return nil
}

// TransactionRequest is the parameter object of eth_call, eth_estimateGas and
// eth_sendTransaction. Unset fields are omitted from the wire encoding and
// filled in by the node (or by the provider, for From/Gas/To name
// resolution in SendTransaction).
type TransactionRequest struct {
	From     *common.Address `json:"from,omitempty"`
	To       *NameOrAddress  `json:"to,omitempty"`
	Gas      *hexutil.Big    `json:"gas,omitempty"`
	GasPrice *hexutil.Big    `json:"gasPrice,omitempty"`
	Value    *hexutil.Big    `json:"value,omitempty"`
	Data     hexutil.Bytes   `json:"data,omitempty"`
	Nonce    *hexutil.Big    `json:"nonce,omitempty"`
}

// WithFrom sets the sender and returns the request for chaining.
func (tx TransactionRequest) WithFrom(from common.Address) TransactionRequest {
	tx.From = &from
	return tx
}

// WithTo sets the recipient and returns the request for chaining.
func (tx TransactionRequest) WithTo(to NameOrAddress) TransactionRequest {
	tx.To = &to
	return tx
}

// WithValue sets the transferred amount and returns the request for chaining.
func (tx TransactionRequest) WithValue(value *big.Int) TransactionRequest {
	tx.Value = hexutil.NewBig(value)
	return tx
}

// WithData sets the call payload and returns the request for chaining.
func (tx TransactionRequest) WithData(data []byte) TransactionRequest {
	tx.Data = data
	return tx
}
