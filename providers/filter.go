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

	"github.com/holiman/uint256"

	"github.com/austinabell/ethers-go/common"
	"github.com/austinabell/ethers-go/types"
)

// FilterKind describes the server-side filter to install: which creation
// method and which parameters. It is consumed once by NewFilter.
type FilterKind struct {
	method string
	params []interface{}
}

// LogsFilter matches logs against the given filter spec.
func LogsFilter(filter *types.Filter) FilterKind {
	return FilterKind{method: "eth_newFilter", params: []interface{}{filter}}
}

// NewBlocksFilter matches hashes of newly imported blocks.
func NewBlocksFilter() FilterKind {
	return FilterKind{method: "eth_newBlockFilter"}
}

// PendingTransactionsFilter matches hashes of new pending transactions.
func PendingTransactionsFilter() FilterKind {
	return FilterKind{method: "eth_newPendingTransactionFilter"}
}

// NewFilter installs a server-side filter and returns its identifier. The
// filter accumulates matches until polled with GetFilterChanges and lives
// until uninstalled or the node expires it.
func (p *Provider) NewFilter(ctx context.Context, kind FilterKind) (*uint256.Int, error) {
	return call[*uint256.Int](ctx, p, kind.method, kind.params...)
}

// UninstallFilter removes a server-side filter.
func (p *Provider) UninstallFilter(ctx context.Context, id *uint256.Int) (bool, error) {
	return call[bool](ctx, p, "eth_uninstallFilter", id)
}

// GetFilterChanges polls a filter for items accumulated since the last
// poll. The item type must match the filter's kind: types.Log for a logs
// filter, common.Hash for block and pending-transaction filters.
func GetFilterChanges[T any](ctx context.Context, p *Provider, id *uint256.Int) ([]T, error) {
	return call[[]T](ctx, p, "eth_getFilterChanges", id)
}

// FilterWatcher turns a server-side filter into a channel-based stream by
// polling it on a fixed cadence. Items of one poll batch are delivered in
// server order. The stream has no natural end; a failed poll delivers the
// error on Err and stops the watcher, and restarting means installing a
// fresh filter.
type FilterWatcher[T any] struct {
	provider *Provider
	id       *uint256.Int
	interval time.Duration

	changes chan T
	err     chan error
	cancel  context.CancelFunc
	once    sync.Once
}

// Watch installs a logs filter and starts polling it.
func (p *Provider) Watch(ctx context.Context, filter *types.Filter) (*FilterWatcher[types.Log], error) {
	return newFilterWatcher[types.Log](ctx, p, LogsFilter(filter))
}

// WatchBlocks installs a new-blocks filter and starts polling it for block
// hashes.
func (p *Provider) WatchBlocks(ctx context.Context) (*FilterWatcher[common.Hash], error) {
	return newFilterWatcher[common.Hash](ctx, p, NewBlocksFilter())
}

// WatchPendingTransactions installs a pending-transactions filter and
// starts polling it for transaction hashes.
func (p *Provider) WatchPendingTransactions(ctx context.Context) (*FilterWatcher[common.Hash], error) {
	return newFilterWatcher[common.Hash](ctx, p, PendingTransactionsFilter())
}

func newFilterWatcher[T any](ctx context.Context, p *Provider, kind FilterKind) (*FilterWatcher[T], error) {
	id, err := p.NewFilter(ctx, kind)
	if err != nil {
		return nil, err
	}
	loopCtx, cancel := context.WithCancel(context.Background())
	w := &FilterWatcher[T]{
		provider: p,
		id:       id,
		interval: p.Interval(),
		changes:  make(chan T),
		err:      make(chan error, 1),
		cancel:   cancel,
	}
	go w.loop(loopCtx)
	return w, nil
}

// ID returns the server-side filter identifier, usable with
// UninstallFilter for explicit cleanup.
func (w *FilterWatcher[T]) ID() *uint256.Int { return w.id }

// Changes returns the stream channel. It is closed when the watcher stops,
// either by Unsubscribe or after a poll error.
func (w *FilterWatcher[T]) Changes() <-chan T { return w.changes }

// Err reports the poll error that stopped the watcher, if any. It carries
// at most one error.
func (w *FilterWatcher[T]) Err() <-chan error { return w.err }

// Unsubscribe stops polling. It does not uninstall the server-side filter;
// call UninstallFilter with the watcher's ID if cleanup is desired.
func (w *FilterWatcher[T]) Unsubscribe() {
	w.once.Do(w.cancel)
}

// loop alternates a getFilterChanges poll with a timed sleep until the
// watcher is cancelled or a poll fails.
func (w *FilterWatcher[T]) loop(ctx context.Context) {
	defer close(w.changes)
	for {
		items, err := GetFilterChanges[T](ctx, w.provider, w.id)
		if err != nil {
			if ctx.Err() == nil {
				w.err <- err
			}
			return
		}
		for _, item := range items {
			select {
			case w.changes <- item:
			case <-ctx.Done():
				return
			}
		}
		select {
		case <-time.After(w.interval):
		case <-ctx.Done():
			return
		}
	}
}
