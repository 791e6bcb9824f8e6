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

	"github.com/austinabell/ethers-go/common"
	"github.com/austinabell/ethers-go/common/hexutil"
)

// TraceType selects which trace representations a trace_* call computes.
type TraceType string

const (
	// TraceTypeTrace requests the basic call trace.
	TraceTypeTrace = TraceType("trace")
	// TraceTypeVMTrace requests the full VM execution trace.
	TraceTypeVMTrace = TraceType("vmTrace")
	// TraceTypeStateDiff requests the state changes of the execution.
	TraceTypeStateDiff = TraceType("stateDiff")
)

// Trace is a single entry of a transaction's call trace, as returned by the
// trace_transaction and trace_block family. Action and Result are kept raw:
// their shape depends on the entry's Type (call, create, suicide, reward).
type Trace struct {
	Action              json.RawMessage `json:"action"`
	Result              json.RawMessage `json:"result,omitempty"`
	Error               string          `json:"error,omitempty"`
	Subtraces           uint64          `json:"subtraces"`
	TraceAddress        []uint64        `json:"traceAddress"`
	TransactionHash     *common.Hash    `json:"transactionHash,omitempty"`
	TransactionPosition *uint64         `json:"transactionPosition,omitempty"`
	BlockHash           *common.Hash    `json:"blockHash,omitempty"`
	BlockNumber         uint64          `json:"blockNumber,omitempty"`
	Type                string          `json:"type,omitempty"`
}

// BlockTrace is the result of the trace_call/trace_replayTransaction family:
// the call output plus the trace representations that were requested.
type BlockTrace struct {
	Output          hexutil.Bytes   `json:"output"`
	Trace           json.RawMessage `json:"trace,omitempty"`
	VMTrace         json.RawMessage `json:"vmTrace,omitempty"`
	StateDiff       json.RawMessage `json:"stateDiff,omitempty"`
	TransactionHash *common.Hash    `json:"transactionHash,omitempty"`
}

// TraceFilter is the parameter object of trace_filter.
type TraceFilter struct {
	FromBlock   *BlockNumber     `json:"fromBlock,omitempty"`
	ToBlock     *BlockNumber     `json:"toBlock,omitempty"`
	FromAddress []common.Address `json:"fromAddress,omitempty"`
	ToAddress   []common.Address `json:"toAddress,omitempty"`
	After       *uint64          `json:"after,omitempty"`
	Count       *uint64          `json:"count,omitempty"`
}
