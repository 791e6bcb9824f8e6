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

package providers

import (
	"context"
	"sync"
	"time"

	"github.com/austinabell/ethers-go/common"
	"github.com/austinabell/ethers-go/types"
)

// PendingTransaction tracks a submitted transaction until its receipt
// appears. The hash is available immediately; Wait drives the confirmation
// poll loop. A receipt only proves inclusion, it may still describe a
// reverted execution.
type PendingTransaction struct {
	provider *Provider
	hash     common.Hash
	interval time.Duration

	mu      sync.Mutex
	receipt *types.Receipt
}

func newPendingTransaction(p *Provider, hash common.Hash) *PendingTransaction {
	return &PendingTransaction{provider: p, hash: hash, interval: p.Interval()}
}

// Hash returns the transaction hash. It never blocks.
func (tx *PendingTransaction) Hash() common.Hash { return tx.hash }

// WithInterval overrides the poll interval inherited from the provider.
// Must be called before Wait.
func (tx *PendingTransaction) WithInterval(interval time.Duration) *PendingTransaction {
	tx.interval = interval
	return tx
}

// Wait polls for the transaction receipt until it appears, sleeping the
// configured interval between polls. There is no built-in timeout; cancel
// through the context. The first receipt observed is cached, so concurrent
// and repeated waits resolve to the same receipt without further polling.
// The lock is never held across a poll or a sleep, so each concurrent
// waiter honors its own context.
func (tx *PendingTransaction) Wait(ctx context.Context) (*types.Receipt, error) {
	for {
		if receipt := tx.cached(); receipt != nil {
			return receipt, nil
		}
		receipt, err := tx.provider.GetTransactionReceipt(ctx, tx.hash)
		if err != nil {
			return nil, err
		}
		if receipt != nil {
			return tx.store(receipt), nil
		}
		select {
		case <-time.After(tx.interval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (tx *PendingTransaction) cached() *types.Receipt {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return tx.receipt
}

// store records the first receipt observed and returns the winning one, so
// racing waiters all resolve to the same value.
func (tx *PendingTransaction) store(receipt *types.Receipt) *types.Receipt {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.receipt == nil {
		tx.receipt = receipt
	}
	return tx.receipt
}
