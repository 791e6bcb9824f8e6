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

// Package common contains the fixed-size value types shared by all packages.
package common

import (
	"fmt"

	"github.com/austinabell/ethers-go/common/hexutil"
)

const (
	// HashLength is the expected length of a hash in bytes.
	HashLength = 32
	// AddressLength is the expected length of an address in bytes.
	AddressLength = 20
	// SignatureLength is the expected length of an ECDSA signature in bytes:
	// 64 bytes of r || s followed by 1 recovery byte.
	SignatureLength = 65
)

// Hash represents the 32 byte Keccak256 hash of arbitrary data.
type Hash [HashLength]byte

// BytesToHash sets b to hash. If b is larger than 32 bytes, b will be
// cropped from the left; shorter input is left-padded with zeroes.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash parses s as a hex-encoded hash, ignoring a leading 0x prefix.
func HexToHash(s string) Hash { return BytesToHash(fromHexNoErr(s)) }

// SetBytes sets the hash to the value of b, keeping the rightmost 32 bytes.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the hash as a 0x-prefixed hex string.
func (h Hash) Hex() string { return hexutil.Encode(h[:]) }

func (h Hash) String() string { return h.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return hexutil.Bytes(h[:]).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Hash", input, h[:])
}

// UnmarshalJSON parses a hash in hex syntax.
func (h *Hash) UnmarshalJSON(input []byte) error {
	return hexutil.UnmarshalFixedJSON("Hash", input, h[:])
}

// Address represents the 20 byte address of an Ethereum account.
type Address [AddressLength]byte

// BytesToAddress sets b to address, cropping from the left or left-padding
// with zeroes as needed.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress parses s as a hex-encoded address, ignoring a leading 0x prefix.
func HexToAddress(s string) Address { return BytesToAddress(fromHexNoErr(s)) }

// SetBytes sets the address to the value of b, keeping the rightmost 20 bytes.
func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// Bytes returns the address as a byte slice.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the address as a 0x-prefixed hex string.
func (a Address) Hex() string { return hexutil.Encode(a[:]) }

func (a Address) String() string { return a.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return hexutil.Bytes(a[:]).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Address", input, a[:])
}

// UnmarshalJSON parses an address in hex syntax.
func (a *Address) UnmarshalJSON(input []byte) error {
	return hexutil.UnmarshalFixedJSON("Address", input, a[:])
}

// Signature is a 65 byte r || s || v signature as returned by eth_sign.
type Signature [SignatureLength]byte

// SignatureFromBytes converts b into a Signature, failing on any length
// other than 65 bytes.
func SignatureFromBytes(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureLength {
		return sig, fmt.Errorf("invalid signature length %d, want %d", len(b), SignatureLength)
	}
	copy(sig[:], b)
	return sig, nil
}

// Bytes returns the signature as a byte slice.
func (s Signature) Bytes() []byte { return s[:] }

// Hex returns the signature as a 0x-prefixed hex string.
func (s Signature) Hex() string { return hexutil.Encode(s[:]) }

func (s Signature) String() string { return s.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (s Signature) MarshalText() ([]byte, error) {
	return hexutil.Bytes(s[:]).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Signature) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Signature", input, s[:])
}

// fromHexNoErr decodes a hex string, ignoring the 0x prefix and any decode
// error. Used by the HexToX convenience constructors, which accept only
// trusted literals.
func fromHexNoErr(s string) []byte {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, _ := hexutil.Decode("0x" + s)
	return b
}
