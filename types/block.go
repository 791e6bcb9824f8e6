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

// Package types contains the data types of the Ethereum RPC API.
package types

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/austinabell/ethers-go/common"
	"github.com/austinabell/ethers-go/common/hexutil"
)

// BlockNumber represents a block height or one of the special tags accepted
// by the RPC API in place of a height.
type BlockNumber int64

const (
	// Pending selects the block currently being assembled.
	Pending = BlockNumber(-2)
	// Latest selects the most recent canonical block. It is the default
	// wherever a block parameter is optional.
	Latest = BlockNumber(-1)
	// Earliest selects the genesis block.
	Earliest = BlockNumber(0)
)

// MarshalText implements encoding.TextMarshaler. Tags marshal to their
// protocol names, heights to 0x-hex quantities.
func (bn BlockNumber) MarshalText() ([]byte, error) {
	switch bn {
	case Earliest:
		return []byte("earliest"), nil
	case Latest:
		return []byte("latest"), nil
	case Pending:
		return []byte("pending"), nil
	default:
		if bn < 0 {
			return nil, fmt.Errorf("invalid block number %d", int64(bn))
		}
		return []byte(hexutil.EncodeUint64(uint64(bn))), nil
	}
}

// UnmarshalJSON parses the given JSON fragment into a BlockNumber. It accepts
// the special tags and 0x-hex quantities.
func (bn *BlockNumber) UnmarshalJSON(data []byte) error {
	var input string
	if err := json.Unmarshal(data, &input); err != nil {
		return err
	}
	switch input {
	case "earliest":
		*bn = Earliest
		return nil
	case "latest":
		*bn = Latest
		return nil
	case "pending":
		*bn = Pending
		return nil
	}
	n, err := hexutil.DecodeUint64(input)
	if err != nil {
		return err
	}
	if n > uint64(1)<<62 {
		return fmt.Errorf("block number %s out of range", input)
	}
	*bn = BlockNumber(n)
	return nil
}

func (bn BlockNumber) String() string {
	b, err := bn.MarshalText()
	if err != nil {
		return fmt.Sprintf("<invalid %d>", int64(bn))
	}
	return string(b)
}

// BlockID identifies a block either by hash or by number/tag. The zero value
// means "latest".
type BlockID struct {
	Hash   *common.Hash
	Number *BlockNumber
}

// BlockIDFromHash returns a BlockID selecting the block with the given hash.
func BlockIDFromHash(h common.Hash) BlockID {
	return BlockID{Hash: &h}
}

// BlockIDFromNumber returns a BlockID selecting the block at the given height
// or tag.
func BlockIDFromNumber(n BlockNumber) BlockID {
	return BlockID{Number: &n}
}

// Block represents an Ethereum block as returned by eth_getBlockByHash and
// eth_getBlockByNumber. The transaction element type T is either common.Hash
// or Transaction, selected by whether full transaction objects were
// requested.
type Block[T any] struct {
	Hash             *common.Hash    `json:"hash"` // nil for the pending block
	ParentHash       common.Hash     `json:"parentHash"`
	UncleHash        common.Hash     `json:"sha3Uncles"`
	Miner            common.Address  `json:"miner"`
	StateRoot        common.Hash     `json:"stateRoot"`
	TransactionsRoot common.Hash     `json:"transactionsRoot"`
	ReceiptsRoot     common.Hash     `json:"receiptsRoot"`
	Number           *hexutil.Big    `json:"number"` // nil for the pending block
	GasUsed          *hexutil.Big    `json:"gasUsed"`
	GasLimit         *hexutil.Big    `json:"gasLimit"`
	ExtraData        hexutil.Bytes   `json:"extraData"`
	LogsBloom        hexutil.Bytes   `json:"logsBloom"`
	Timestamp        *hexutil.Big    `json:"timestamp"`
	Difficulty       *hexutil.Big    `json:"difficulty"`
	TotalDifficulty  *hexutil.Big    `json:"totalDifficulty"`
	SealFields       []hexutil.Bytes `json:"sealFields,omitempty"`
	Uncles           []common.Hash   `json:"uncles"`
	Transactions     []T             `json:"transactions"`
	Size             *hexutil.Big    `json:"size"`
	MixHash          *common.Hash    `json:"mixHash,omitempty"`
	Nonce            hexutil.Bytes   `json:"nonce,omitempty"`
}

// NumberU64 returns the block height, or zero for the pending block.
func (b *Block[T]) NumberU64() uint64 {
	if b.Number == nil {
		return 0
	}
	return (*big.Int)(b.Number).Uint64()
}
