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

package ens

import (
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/austinabell/ethers-go/common"
)

func TestNamehash(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "0x0000000000000000000000000000000000000000000000000000000000000000"},
		{"eth", "0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae"},
		{"foo.eth", "0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f"},
	}
	for _, tt := range tests {
		assert.Equal(t, common.HexToHash(tt.want), Namehash(tt.name), "name %q", tt.name)
	}
}

func TestReverseAddress(t *testing.T) {
	addr := common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")
	assert.Equal(t, "00000000000c2e074ec69a0dfb2997ba6c7d2e1e.addr.reverse", ReverseAddress(addr))
}

func TestGetResolverCalldata(t *testing.T) {
	req := GetResolver(RegistryAddress, "foo.eth")
	require.NotNil(t, req.To)
	assert.Equal(t, RegistryAddress, req.To.Address())

	require.Len(t, req.Data, 36)
	assert.Equal(t, []byte{0x01, 0x78, 0xb8, 0xbf}, []byte(req.Data[:4]))
	assert.Equal(t, Namehash("foo.eth"), common.BytesToHash(req.Data[4:]))
}

func TestResolveCalldata(t *testing.T) {
	resolver := common.HexToAddress("0x0000000000000000000000000000000000000123")
	req := Resolve(resolver, "foo.eth")
	require.Len(t, req.Data, 36)
	assert.Equal(t, []byte{0x3b, 0x3b, 0x57, 0xde}, []byte(req.Data[:4]))
	assert.Equal(t, Namehash("foo.eth"), common.BytesToHash(req.Data[4:]))

	// Requests marshal with only the to and data members set.
	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "from")
	assert.Contains(t, string(raw), `"to":"0x0000000000000000000000000000000000000123"`)
}

func TestParseAddress(t *testing.T) {
	word := make([]byte, 32)
	copy(word[12:], common.HexToAddress("0x4e4161E0a2b1aA9BFf2A2e8F0FD975fCb67de6c8").Bytes())
	addr, err := ParseAddress(word)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x4e4161E0a2b1aA9BFf2A2e8F0FD975fCb67de6c8"), addr)

	_, err = ParseAddress(word[:31])
	assert.Error(t, err)
}

func TestParseString(t *testing.T) {
	// ABI encoding of the string "vitalik.eth": offset word, length word,
	// padded bytes.
	data := make([]byte, 96)
	data[31] = 0x20
	data[63] = 11
	copy(data[64:], "vitalik.eth")

	s, err := ParseString(data)
	require.NoError(t, err)
	assert.Equal(t, "vitalik.eth", s)

	_, err = ParseString(data[:63])
	assert.Error(t, err)

	// Length running past the buffer is rejected.
	data[63] = 64
	_, err = ParseString(data)
	assert.Error(t, err)
}

func TestParseStringRejectsHostileWords(t *testing.T) {
	// An offset word near 2^64 must not wrap the bounds check into a
	// slice panic.
	data := make([]byte, 96)
	binary.BigEndian.PutUint64(data[24:32], ^uint64(0)-29)
	_, err := ParseString(data)
	assert.Error(t, err)

	// Same for a huge length word behind a valid offset.
	data = make([]byte, 96)
	data[31] = 0x20
	binary.BigEndian.PutUint64(data[32+24:64], ^uint64(0))
	_, err = ParseString(data)
	assert.Error(t, err)

	// Words wider than 64 bits are rejected, not truncated.
	data = make([]byte, 96)
	data[0] = 0x01
	data[31] = 0x20
	_, err = ParseString(data)
	assert.Error(t, err)
}
