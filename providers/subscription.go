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
	"encoding/json"
	"sync"

	"github.com/austinabell/ethers-go/common"
	"github.com/austinabell/ethers-go/types"
)

// SubscriptionStream delivers server-pushed items of an eth_subscribe
// subscription in arrival order. It requires a pubsub-capable transport
// and has exactly one logical consumer. Dropping the stream without
// calling Unsubscribe leaves the server-side subscription active until the
// connection closes.
type SubscriptionStream[T any] struct {
	provider  *Provider
	transport PubsubTransport
	id        string

	out  chan T
	err  chan error
	quit chan struct{}
	once sync.Once
}

// SubscribeBlocks streams the headers of newly imported blocks.
func (p *Provider) SubscribeBlocks(ctx context.Context) (*SubscriptionStream[types.Block[common.Hash]], error) {
	return subscribe[types.Block[common.Hash]](ctx, p, "newHeads")
}

// SubscribePendingTransactions streams the hashes of new pending
// transactions.
func (p *Provider) SubscribePendingTransactions(ctx context.Context) (*SubscriptionStream[common.Hash], error) {
	return subscribe[common.Hash](ctx, p, "newPendingTransactions")
}

// SubscribeLogs streams logs matching the filter as they are emitted.
func (p *Provider) SubscribeLogs(ctx context.Context, filter *types.Filter) (*SubscriptionStream[types.Log], error) {
	return subscribe[types.Log](ctx, p, "logs", filter)
}

func subscribe[T any](ctx context.Context, p *Provider, params ...interface{}) (*SubscriptionStream[T], error) {
	transport, ok := p.transport.(PubsubTransport)
	if !ok {
		return nil, customErrorf("transport does not support subscriptions")
	}
	// The subscription id is an opaque server-assigned token. It is kept as
	// the raw string so registration and notification routing always agree,
	// whatever padding or casing the server uses.
	id, err := call[string](ctx, p, "eth_subscribe", params...)
	if err != nil {
		return nil, err
	}
	in, err := transport.Listen(id)
	if err != nil {
		// Best effort: the server-side subscription exists already, don't
		// leak it.
		call[bool](ctx, p, "eth_unsubscribe", id) //nolint:errcheck
		return nil, &TransportError{Method: "eth_subscribe", Err: err}
	}
	s := &SubscriptionStream[T]{
		provider:  p,
		transport: transport,
		id:        id,
		out:       make(chan T),
		err:       make(chan error, 1),
		quit:      make(chan struct{}),
	}
	go s.loop(in)
	return s, nil
}

// ID returns the server-side subscription identifier, verbatim as the
// server assigned it.
func (s *SubscriptionStream[T]) ID() string { return s.id }

// Notifications returns the stream channel. It is closed when the stream
// ends, whether by Unsubscribe, a decode failure or transport closure.
func (s *SubscriptionStream[T]) Notifications() <-chan T { return s.out }

// Err reports the decode error that stopped the stream, if any. It carries
// at most one error.
func (s *SubscriptionStream[T]) Err() <-chan error { return s.err }

// Unsubscribe cancels the server-side subscription with eth_unsubscribe
// and stops the stream. The returned flag is the server's answer; false
// means the server no longer knew the subscription.
func (s *SubscriptionStream[T]) Unsubscribe(ctx context.Context) (bool, error) {
	ok, err := call[bool](ctx, s.provider, "eth_unsubscribe", s.id)
	s.stop()
	return ok, err
}

func (s *SubscriptionStream[T]) stop() {
	s.once.Do(func() {
		s.transport.Forget(s.id)
		close(s.quit)
	})
}

// loop decodes pushed payloads in arrival order. A payload that does not
// match the item type stops the stream with a DecodeError.
func (s *SubscriptionStream[T]) loop(in <-chan json.RawMessage) {
	defer close(s.out)
	for {
		select {
		case raw, ok := <-in:
			if !ok {
				// Transport closed the push channel.
				return
			}
			var item T
			if err := json.Unmarshal(raw, &item); err != nil {
				s.err <- &DecodeError{Method: "eth_subscription", Err: err}
				return
			}
			select {
			case s.out <- item:
			case <-s.quit:
				return
			}
		case <-s.quit:
			return
		}
	}
}
