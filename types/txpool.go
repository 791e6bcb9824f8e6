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

// TxpoolStatus is the result of txpool_status: the number of transactions
// pending inclusion and queued for future execution.
type TxpoolStatus struct {
	Pending hexutil.Uint64 `json:"pending"`
	Queued  hexutil.Uint64 `json:"queued"`
}

// TxpoolContent is the result of txpool_content: the full transactions in
// the pool, grouped by sender and keyed by nonce.
type TxpoolContent struct {
	Pending map[common.Address]map[string]Transaction `json:"pending"`
	Queued  map[common.Address]map[string]Transaction `json:"queued"`
}

// TxpoolInspect is the result of txpool_inspect: one-line textual summaries
// of the pool's transactions, grouped by sender and keyed by nonce.
type TxpoolInspect struct {
	Pending map[common.Address]map[string]string `json:"pending"`
	Queued  map[common.Address]map[string]string `json:"queued"`
}
