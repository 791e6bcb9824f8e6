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

package rpc

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
)

// notificationBufferSize is the capacity of each subscription's push
// channel. A consumer that falls this far behind loses the subscription:
// the channel is closed rather than stalling the whole connection.
const notificationBufferSize = 256

// maxStashedSubscriptions bounds how many unknown subscription ids may hold
// stashed notifications at once. Notifications can legitimately arrive
// between the eth_subscribe response and the Listen registration; ids beyond
// this bound are dropped.
const maxStashedSubscriptions = 16

// duplexConn is a bidirectional message stream. Implemented by the
// WebSocket and IPC connections.
type duplexConn interface {
	readMessage() ([]byte, error)
	writeMessage(ctx context.Context, data []byte) error
	close() error
}

// duplexClient matches responses to in-flight requests by id and routes
// eth_subscription notifications to per-subscription channels. It is shared
// by the WebSocket and IPC clients.
//
// Notification channels are written and closed exclusively by the read
// loop, so channel closure can never race a pending send.
type duplexClient struct {
	conn      duplexConn
	idCounter atomic.Uint64

	writeMu sync.Mutex // serializes writes to conn

	mu       sync.Mutex // protects the fields below
	pending  map[string]chan *jsonrpcMessage
	subs     map[string]chan json.RawMessage
	stash    map[string][]json.RawMessage // notifications awaiting Listen
	closeErr error

	closeOnce sync.Once
	closed    chan struct{}
}

func newDuplexClient(conn duplexConn) *duplexClient {
	c := &duplexClient{
		conn:    conn,
		pending: make(map[string]chan *jsonrpcMessage),
		subs:    make(map[string]chan json.RawMessage),
		stash:   make(map[string][]json.RawMessage),
		closed:  make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Call performs the JSON-RPC call with the given method and parameters and
// returns the raw result. Concurrent calls are dispatched independently;
// each response is matched to its own request by id.
func (c *duplexClient) Call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	msg, err := newMessage(c.idCounter.Add(1), method, params...)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	respCh := make(chan *jsonrpcMessage, 1)
	id := string(msg.ID)
	c.mu.Lock()
	if c.isClosed() {
		err := c.closeErr
		c.mu.Unlock()
		return nil, err
	}
	c.pending[id] = respCh
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	c.writeMu.Lock()
	err = c.conn.writeMessage(ctx, data)
	c.writeMu.Unlock()
	if err != nil {
		return nil, err
	}

	select {
	case resp := <-respCh:
		if resp.Error != nil {
			return nil, resp.Error
		}
		return resp.Result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.closed:
		c.mu.Lock()
		err := c.closeErr
		c.mu.Unlock()
		return nil, err
	}
}

// Listen registers a notification channel for the given subscription id.
// Notifications received for the id are delivered on the returned channel
// in arrival order. The channel is closed when the connection shuts down or
// when the consumer falls too far behind; a forgotten id simply stops
// receiving.
func (c *duplexClient) Listen(id string) (<-chan json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isClosed() {
		return nil, c.closeErr
	}
	if _, ok := c.subs[id]; ok {
		return nil, ErrDuplicateSubscription
	}
	ch := make(chan json.RawMessage, notificationBufferSize)
	// Replay notifications that raced the subscribe response. They fit the
	// fresh buffer since the stash is capped at the same size.
	for _, raw := range c.stash[id] {
		ch <- raw
	}
	delete(c.stash, id)
	c.subs[id] = ch
	return ch, nil
}

// Forget deregisters the notification channel for id. It has no effect on
// server-side subscription state, and it does not close the channel.
func (c *duplexClient) Forget(id string) {
	c.mu.Lock()
	delete(c.subs, id)
	delete(c.stash, id)
	c.mu.Unlock()
}

// Close terminates the connection. All in-flight calls fail with
// ErrClientQuit and all notification channels are closed.
func (c *duplexClient) Close() error {
	c.shutdown(ErrClientQuit)
	return nil
}

// isClosed must be called with c.mu held.
func (c *duplexClient) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *duplexClient) shutdown(err error) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closeErr = err
		c.mu.Unlock()
		close(c.closed)
		c.conn.close()
	})
}

func (c *duplexClient) readLoop() {
	defer c.dropSubs()
	for {
		data, err := c.conn.readMessage()
		if err != nil {
			c.shutdown(err)
			return
		}
		var msg jsonrpcMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			// Not a protocol message; skip it rather than killing the
			// connection.
			continue
		}
		switch {
		case msg.isNotification():
			c.handleNotification(&msg)
		case msg.isResponse():
			c.handleResponse(&msg)
		}
	}
}

// dropSubs closes all registered notification channels. Only called from
// the read loop exit path.
func (c *duplexClient) dropSubs() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
	c.stash = make(map[string][]json.RawMessage)
}

func (c *duplexClient) handleNotification(msg *jsonrpcMessage) {
	if msg.Method != subscriptionMethod {
		return
	}
	var sub subscriptionResult
	if err := json.Unmarshal(msg.Params, &sub); err != nil {
		return
	}
	c.mu.Lock()
	ch := c.subs[sub.ID]
	if ch == nil {
		// No listener yet. The notification may have overtaken the
		// eth_subscribe response, so hold on to it until Listen registers.
		queued, known := c.stash[sub.ID]
		if known || len(c.stash) < maxStashedSubscriptions {
			if len(queued) < notificationBufferSize {
				c.stash[sub.ID] = append(queued, sub.Result)
			}
		}
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	select {
	case ch <- sub.Result:
	default:
		// Consumer too slow. Drop the subscription instead of stalling
		// every other user of the connection.
		c.mu.Lock()
		delete(c.subs, sub.ID)
		c.mu.Unlock()
		close(ch)
	}
}

func (c *duplexClient) handleResponse(msg *jsonrpcMessage) {
	c.mu.Lock()
	ch := c.pending[string(msg.ID)]
	delete(c.pending, string(msg.ID))
	c.mu.Unlock()
	if ch != nil {
		ch <- msg
	}
}
