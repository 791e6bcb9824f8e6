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

package common

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashSetBytes(t *testing.T) {
	var h Hash
	h.SetBytes([]byte{0x01, 0x02})
	assert.Equal(t, HexToHash("0x0102"), h)
	assert.Equal(t, uint8(0x02), h[31])

	// Longer input is cropped from the left.
	long := make([]byte, 40)
	long[39] = 0xff
	h.SetBytes(long)
	assert.Equal(t, HexToHash("0xff"), h)
}

func TestHashJSON(t *testing.T) {
	hex := "0x" + strings.Repeat("ab", 32)
	h := HexToHash(hex)

	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, `"`+hex+`"`, string(data))

	var back Hash
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, h, back)

	// Wrong length is rejected.
	assert.Error(t, json.Unmarshal([]byte(`"0xabcd"`), &back))
}

func TestAddressJSON(t *testing.T) {
	hex := "0x" + strings.Repeat("cd", 20)
	a := HexToAddress(hex)

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"`+hex+`"`, string(data))

	var back Address
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, a, back)
}

func TestSignatureFromBytes(t *testing.T) {
	raw := make([]byte, SignatureLength)
	raw[64] = 0x1b
	sig, err := SignatureFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x1b), sig[64])

	_, err = SignatureFromBytes(raw[:64])
	assert.Error(t, err)
}
