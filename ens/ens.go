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

// Package ens implements the calldata plumbing of the Ethereum Name Service:
// the namehash algorithm, the registry and resolver call encodings, and
// decoding of their return values.
package ens

import (
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/austinabell/ethers-go/common"
	"github.com/austinabell/ethers-go/types"
)

// RegistryAddress is the address of the ENS registry contract. It is the
// same on mainnet and the public testnets.
var RegistryAddress = common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")

// 4-byte function selectors of the registry and resolver contracts.
var (
	resolverSelector = [4]byte{0x01, 0x78, 0xb8, 0xbf} // resolver(bytes32)
	addrSelector     = [4]byte{0x3b, 0x3b, 0x57, 0xde} // addr(bytes32)
	nameSelector     = [4]byte{0x69, 0x1f, 0x34, 0x31} // name(bytes32)
)

// Namehash computes the ENS node hash of a name per EIP-137: the labels are
// hashed right to left, folding each into the accumulated parent hash. The
// empty name hashes to thirty-two zero bytes.
func Namehash(name string) common.Hash {
	var node common.Hash
	if name == "" {
		return node
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		label := keccak256([]byte(labels[i]))
		node = keccak256(node[:], label[:])
	}
	return node
}

// ReverseAddress returns the reverse-registrar name of addr, which resolves
// to its primary ENS name: "<hex-address-without-0x>.addr.reverse".
func ReverseAddress(addr common.Address) string {
	return fmt.Sprintf("%x.addr.reverse", addr[:])
}

// GetResolver builds the eth_call request that asks the registry for the
// resolver contract responsible for name.
func GetResolver(registry common.Address, name string) *types.TransactionRequest {
	return selectorCall(registry, resolverSelector, Namehash(name))
}

// Resolve builds the eth_call request that asks the resolver for the address
// record of name.
func Resolve(resolver common.Address, name string) *types.TransactionRequest {
	return selectorCall(resolver, addrSelector, Namehash(name))
}

// Name builds the eth_call request that asks the resolver for the name
// record of node, used for reverse resolution.
func Name(resolver common.Address, node common.Hash) *types.TransactionRequest {
	return selectorCall(resolver, nameSelector, node)
}

func selectorCall(to common.Address, selector [4]byte, node common.Hash) *types.TransactionRequest {
	data := make([]byte, 0, 4+32)
	data = append(data, selector[:]...)
	data = append(data, node[:]...)
	req := types.TransactionRequest{}.WithTo(types.Addr(to)).WithData(data)
	return &req
}

// ParseAddress extracts an address from the return data of a call that
// returns a single address word: the last twenty bytes of the first
// thirty-two byte word.
func ParseAddress(data []byte) (common.Address, error) {
	if len(data) < 32 {
		return common.Address{}, fmt.Errorf("ens: return data too short for address: %d bytes", len(data))
	}
	return common.BytesToAddress(data[12:32]), nil
}

// ParseString extracts a string from the return data of a call that returns
// a single ABI-encoded dynamic string. The data comes from an untrusted
// resolver contract, so the offset and length words are validated with
// overflow-safe comparisons before any slicing.
func ParseString(data []byte) (string, error) {
	if len(data) < 64 {
		return "", fmt.Errorf("ens: return data too short for string: %d bytes", len(data))
	}
	offset, err := wordToIndex(data[:32])
	if err != nil {
		return "", fmt.Errorf("ens: string offset word: %v", err)
	}
	if offset > uint64(len(data))-32 {
		return "", fmt.Errorf("ens: string offset %d out of range", offset)
	}
	length, err := wordToIndex(data[offset : offset+32])
	if err != nil {
		return "", fmt.Errorf("ens: string length word: %v", err)
	}
	if length > uint64(len(data))-offset-32 {
		return "", fmt.Errorf("ens: string length %d out of range", length)
	}
	return string(data[offset+32 : offset+32+length]), nil
}

// wordToIndex interprets a 32-byte ABI word as a buffer index. Words that do
// not fit a uint64 are rejected rather than truncated.
func wordToIndex(word []byte) (uint64, error) {
	for _, b := range word[:24] {
		if b != 0 {
			return 0, fmt.Errorf("value exceeds 64 bits")
		}
	}
	return binary.BigEndian.Uint64(word[24:32]), nil
}

func keccak256(data ...[]byte) common.Hash {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out common.Hash
	h.Sum(out[:0])
	return out
}
