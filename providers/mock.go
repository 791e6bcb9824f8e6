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
	"fmt"
	"sync"
)

// MockRequest is one call recorded by the mock transport.
type MockRequest struct {
	Method string
	Params json.RawMessage
}

type mockResponse struct {
	data json.RawMessage
	err  error
}

// Mock is an in-memory transport for tests. Responses are queued with Push
// and consumed in FIFO order, one per call, regardless of method; every
// call is recorded for inspection. Mock also implements PubsubTransport,
// with notifications injected through Notify.
type Mock struct {
	mu        sync.Mutex
	responses []mockResponse
	requests  []MockRequest
	subs      map[string]chan json.RawMessage
}

// NewMock creates an empty mock transport.
func NewMock() *Mock {
	return &Mock{subs: make(map[string]chan json.RawMessage)}
}

// Push queues v, JSON-encoded, as the response to an upcoming call.
func (m *Mock) Push(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.responses = append(m.responses, mockResponse{data: data})
	m.mu.Unlock()
	return nil
}

// PushError queues err as the outcome of an upcoming call.
func (m *Mock) PushError(err error) {
	m.mu.Lock()
	m.responses = append(m.responses, mockResponse{err: err})
	m.mu.Unlock()
}

// Call implements Transport. It records the request and pops the next
// queued response.
func (m *Mock) Call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	var encoded json.RawMessage
	if len(params) > 0 {
		var err error
		if encoded, err = json.Marshal(params); err != nil {
			return nil, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, MockRequest{Method: method, Params: encoded})
	if len(m.responses) == 0 {
		return nil, fmt.Errorf("mock: no response queued for %s", method)
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	return next.data, next.err
}

// Requests returns a copy of all recorded requests in call order.
func (m *Mock) Requests() []MockRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockRequest(nil), m.requests...)
}

// Methods returns the method names of all recorded requests in call order.
func (m *Mock) Methods() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	methods := make([]string, len(m.requests))
	for i, req := range m.requests {
		methods[i] = req.Method
	}
	return methods
}

// Listen implements PubsubTransport.
func (m *Mock) Listen(id string) (<-chan json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan json.RawMessage, 16)
	m.subs[id] = ch
	return ch, nil
}

// Forget implements PubsubTransport.
func (m *Mock) Forget(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subs, id)
}

// Notify pushes v, JSON-encoded, to the subscription's channel. It fails
// if no listener is registered for the id.
func (m *Mock) Notify(id string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	ch := m.subs[id]
	m.mu.Unlock()
	if ch == nil {
		return fmt.Errorf("mock: no listener for subscription %s", id)
	}
	ch <- data
	return nil
}
