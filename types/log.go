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

// Log represents a contract log event emitted during transaction execution.
type Log struct {
	Address          common.Address  `json:"address"`
	Topics           []common.Hash   `json:"topics"`
	Data             hexutil.Bytes   `json:"data"`
	BlockHash        *common.Hash    `json:"blockHash"`        // nil when pending
	BlockNumber      *hexutil.Uint64 `json:"blockNumber"`      // nil when pending
	TransactionHash  *common.Hash    `json:"transactionHash"`  // nil when pending
	TransactionIndex *hexutil.Uint64 `json:"transactionIndex"` // nil when pending
	LogIndex         *hexutil.Uint64 `json:"logIndex"`         // nil when pending
	Removed          bool            `json:"removed,omitempty"`
}

// Filter is the parameter object of eth_getLogs, eth_newFilter and the
// "logs" subscription topic. Unset fields match everything.
type Filter struct {
	FromBlock *BlockNumber    `json:"fromBlock,omitempty"`
	ToBlock   *BlockNumber    `json:"toBlock,omitempty"`
	Address   *common.Address `json:"address,omitempty"`
	Topics    []common.Hash   `json:"topics,omitempty"`
}

// NewFilter returns an empty filter matching all logs.
func NewFilter() *Filter {
	return new(Filter)
}

// SetFromBlock restricts the filter to blocks at or above from.
func (f *Filter) SetFromBlock(from BlockNumber) *Filter {
	f.FromBlock = &from
	return f
}

// SetToBlock restricts the filter to blocks at or below to.
func (f *Filter) SetToBlock(to BlockNumber) *Filter {
	f.ToBlock = &to
	return f
}

// SetAddress restricts the filter to logs emitted by addr.
func (f *Filter) SetAddress(addr common.Address) *Filter {
	f.Address = &addr
	return f
}

// SetTopics restricts the filter to logs carrying the given topics, in
// positional order.
func (f *Filter) SetTopics(topics ...common.Hash) *Filter {
	f.Topics = topics
	return f
}
