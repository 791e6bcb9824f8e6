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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/austinabell/ethers-go/common"
	"github.com/austinabell/ethers-go/common/hexutil"
)

func TestBlockNumberMarshal(t *testing.T) {
	tests := []struct {
		bn   BlockNumber
		want string
	}{
		{Latest, `"latest"`},
		{Pending, `"pending"`},
		{Earliest, `"earliest"`},
		{BlockNumber(100), `"0x64"`},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.bn)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(data))
	}

	_, err := json.Marshal(BlockNumber(-5))
	assert.Error(t, err)
}

func TestBlockNumberUnmarshal(t *testing.T) {
	var bn BlockNumber
	require.NoError(t, json.Unmarshal([]byte(`"latest"`), &bn))
	assert.Equal(t, Latest, bn)
	require.NoError(t, json.Unmarshal([]byte(`"0x64"`), &bn))
	assert.Equal(t, BlockNumber(100), bn)
	assert.Error(t, json.Unmarshal([]byte(`"100"`), &bn))
}

func TestNameOrAddressJSON(t *testing.T) {
	addr := common.HexToAddress("0x4e4161e0a2b1aa9bff2a2e8f0fd975fcb67de6c8")

	data, err := json.Marshal(Addr(addr))
	require.NoError(t, err)
	assert.Equal(t, `"0x4e4161e0a2b1aa9bff2a2e8f0fd975fcb67de6c8"`, string(data))

	data, err = json.Marshal(Name("foo.eth"))
	require.NoError(t, err)
	assert.Equal(t, `"foo.eth"`, string(data))

	var n NameOrAddress
	require.NoError(t, json.Unmarshal([]byte(`"0x4e4161e0a2b1aa9bff2a2e8f0fd975fcb67de6c8"`), &n))
	assert.False(t, n.IsName())
	assert.Equal(t, addr, n.Address())

	require.NoError(t, json.Unmarshal([]byte(`"foo.eth"`), &n))
	assert.True(t, n.IsName())
	assert.Equal(t, "foo.eth", n.EnsName())
}

func TestTransactionRequestOmitsUnsetFields(t *testing.T) {
	to := common.HexToAddress("0x4e4161e0a2b1aa9bff2a2e8f0fd975fcb67de6c8")
	req := TransactionRequest{}.
		WithTo(Addr(to)).
		WithValue(big.NewInt(4660))

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"to":"0x4e4161e0a2b1aa9bff2a2e8f0fd975fcb67de6c8","value":"0x1234"}`, string(data))
}

func TestBlockUnmarshal(t *testing.T) {
	raw := `{
		"hash": "0x3a1fba5abd9d41457944e91e097054f87c0a8a1e8b25c41f0bef0fcbddf33cc9",
		"parentHash": "0xa940437800ea24d5a08efbb37424d8c364bf7a56af1e9c2f4d1e7e1e9d6ca5ab",
		"number": "0x64",
		"gasUsed": "0x5208",
		"gasLimit": "0x1c9c380",
		"timestamp": "0x63f4b9c1",
		"transactions": [
			"0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"
		]
	}`
	var block Block[common.Hash]
	require.NoError(t, json.Unmarshal([]byte(raw), &block))
	assert.Equal(t, uint64(100), block.NumberU64())
	require.Len(t, block.Transactions, 1)
	assert.Equal(t,
		common.HexToHash("0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"),
		block.Transactions[0])

	// The pending block has no hash or number yet.
	var pending Block[common.Hash]
	require.NoError(t, json.Unmarshal([]byte(`{"hash":null,"number":null,"transactions":[]}`), &pending))
	assert.Nil(t, pending.Hash)
	assert.Equal(t, uint64(0), pending.NumberU64())
}

func TestReceiptSucceeded(t *testing.T) {
	var status0, status1 = new(hexutil.Uint64), new(hexutil.Uint64)
	*status1 = 1

	assert.True(t, (&Receipt{Status: status1}).Succeeded())
	assert.False(t, (&Receipt{Status: status0}).Succeeded())
	assert.True(t, (&Receipt{}).Succeeded())
}
