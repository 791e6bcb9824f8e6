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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/austinabell/ethers-go/common"
	"github.com/austinabell/ethers-go/types"
)

func TestPendingTransactionHashBeforeNetwork(t *testing.T) {
	mock := NewMock()
	p := New(mock)
	hash := common.HexToHash("0x" + strings.Repeat("cd", 32))

	pending := newPendingTransaction(p, hash)
	assert.Equal(t, hash, pending.Hash())
	assert.Empty(t, mock.Methods())
}

func TestPendingTransactionWait(t *testing.T) {
	mock := NewMock()
	p := New(mock)
	hash := common.HexToHash("0x" + strings.Repeat("cd", 32))

	// Three polls come back empty before the receipt appears.
	require.NoError(t, mock.Push(nil))
	require.NoError(t, mock.Push(nil))
	require.NoError(t, mock.Push(nil))
	require.NoError(t, mock.Push(types.Receipt{TransactionHash: hash}))

	interval := 10 * time.Millisecond
	pending := newPendingTransaction(p, hash).WithInterval(interval)

	start := time.Now()
	receipt, err := pending.Wait(context.Background())
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, hash, receipt.TransactionHash)
	assert.GreaterOrEqual(t, time.Since(start), 3*interval)

	methods := mock.Methods()
	require.Len(t, methods, 4)
	for _, m := range methods {
		assert.Equal(t, "eth_getTransactionReceipt", m)
	}

	// The receipt is cached; a second wait issues no further polls.
	again, err := pending.Wait(context.Background())
	require.NoError(t, err)
	assert.Same(t, receipt, again)
	assert.Len(t, mock.Methods(), 4)
}

func TestPendingTransactionWaitCancellation(t *testing.T) {
	mock := NewMock()
	p := New(mock)
	require.NoError(t, mock.Push(nil))

	pending := newPendingTransaction(p, common.Hash{}).WithInterval(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := pending.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPendingTransactionConcurrentWaiters(t *testing.T) {
	mock := NewMock()
	p := New(mock)
	require.NoError(t, mock.Push(nil))
	require.NoError(t, mock.Push(nil))

	// Both waiters poll once and then sleep effectively forever; each must
	// still answer to its own context instead of queueing behind the other.
	pending := newPendingTransaction(p, common.Hash{}).WithInterval(time.Hour)

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	errA := make(chan error, 1)
	go func() {
		_, err := pending.Wait(ctxA)
		errA <- err
	}()

	ctxB, cancelB := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelB()
	errB := make(chan error, 1)
	go func() {
		_, err := pending.Wait(ctxB)
		errB <- err
	}()

	select {
	case err := <-errB:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("second waiter blocked past its deadline")
	}

	cancelA()
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("first waiter did not observe cancellation")
	}
}

func TestPendingTransactionWaitPropagatesErrors(t *testing.T) {
	mock := NewMock()
	p := New(mock)
	mock.PushError(assert.AnError)

	pending := newPendingTransaction(p, common.Hash{})
	_, err := pending.Wait(context.Background())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}
