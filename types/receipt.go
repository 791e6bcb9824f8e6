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
	"github.com/austinabell/ethers-go/common"
	"github.com/austinabell/ethers-go/common/hexutil"
)

// Receipt represents the results of a mined transaction. It is absent from
// the node until the transaction is included in a block.
//
// Note that a receipt may describe a reverted execution; Status
// distinguishes success (1) from failure (0) on post-Byzantium chains.
type Receipt struct {
	TransactionHash   common.Hash     `json:"transactionHash"`
	TransactionIndex  hexutil.Uint64  `json:"transactionIndex"`
	BlockHash         *common.Hash    `json:"blockHash"`
	BlockNumber       *hexutil.Big    `json:"blockNumber"`
	CumulativeGasUsed *hexutil.Big    `json:"cumulativeGasUsed"`
	GasUsed           *hexutil.Big    `json:"gasUsed"`
	ContractAddress   *common.Address `json:"contractAddress"` // nil unless a contract creation
	Logs              []Log           `json:"logs"`
	Status            *hexutil.Uint64 `json:"status,omitempty"`
	Root              hexutil.Bytes   `json:"root,omitempty"` // pre-Byzantium state root
	LogsBloom         hexutil.Bytes   `json:"logsBloom"`
}

// Succeeded reports whether the receipt carries a success status. Receipts
// without a status field (pre-Byzantium) report true.
func (r *Receipt) Succeeded() bool {
	return r.Status == nil || *r.Status == 1
}
