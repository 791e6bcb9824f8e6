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
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeServer answers newline-framed JSON-RPC requests on the server half of
// a net.Pipe, echoing the request id and method name back as the result.
func pipeServer(t *testing.T, conn net.Conn) {
	t.Helper()
	go func() {
		dec := json.NewDecoder(conn)
		for {
			var req jsonrpcMessage
			if err := dec.Decode(&req); err != nil {
				return
			}
			resp := jsonrpcMessage{
				Version: vsn,
				ID:      req.ID,
				Result:  json.RawMessage(`"` + req.Method + `"`),
			}
			out, _ := json.Marshal(&resp)
			if _, err := conn.Write(append(out, '\n')); err != nil {
				return
			}
		}
	}()
}

func TestDuplexClientMatchesResponsesByID(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	pipeServer(t, serverConn)

	client := newDuplexClient(newIPCConn(clientConn))
	defer client.Close()

	done := make(chan struct{})
	for _, method := range []string{"eth_chainId", "eth_gasPrice", "eth_blockNumber"} {
		go func(method string) {
			defer func() { done <- struct{}{} }()
			result, err := client.Call(context.Background(), method)
			assert.NoError(t, err)
			assert.Equal(t, `"`+method+`"`, string(result))
		}(method)
	}
	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for calls")
		}
	}
}

func TestDuplexClientCallCancellation(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	// The server never answers.
	go func() {
		buf := make([]byte, 1024)
		for {
			if _, err := serverConn.Read(buf); err != nil {
				return
			}
		}
	}()

	client := newDuplexClient(newIPCConn(clientConn))
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.Call(ctx, "eth_blockNumber")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDuplexClientNotificationRouting(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	client := newDuplexClient(newIPCConn(clientConn))
	defer client.Close()

	chA, err := client.Listen("0xa")
	require.NoError(t, err)
	chB, err := client.Listen("0xb")
	require.NoError(t, err)

	push := func(id, result string) {
		msg := `{"jsonrpc":"2.0","method":"eth_subscription","params":{"subscription":"` + id + `","result":` + result + `}}`
		_, err := serverConn.Write([]byte(msg + "\n"))
		require.NoError(t, err)
	}
	push("0xa", `1`)
	push("0xb", `2`)
	push("0xa", `3`)

	expect := func(ch <-chan json.RawMessage, want string) {
		select {
		case raw := <-ch:
			assert.Equal(t, want, string(raw))
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}
	expect(chA, "1")
	expect(chA, "3")
	expect(chB, "2")

	// A forgotten id stops receiving without closing the channel.
	client.Forget("0xb")
	push("0xb", `4`)
	push("0xa", `5`)
	expect(chA, "5")
	select {
	case raw := <-chB:
		t.Fatalf("unexpected notification %s after forget", raw)
	default:
	}
}

func TestDuplexClientBuffersEarlyNotifications(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	client := newDuplexClient(newIPCConn(clientConn))
	defer client.Close()

	// The server pushes notifications before answering the subscribe
	// request, so they arrive before any Listen registration exists.
	go func() {
		dec := json.NewDecoder(serverConn)
		var req jsonrpcMessage
		if err := dec.Decode(&req); err != nil {
			return
		}
		notify := `{"jsonrpc":"2.0","method":"eth_subscription","params":{"subscription":"0x7","result":%d}}` + "\n"
		for i := 1; i <= 2; i++ {
			if _, err := fmt.Fprintf(serverConn, notify, i); err != nil {
				return
			}
		}
		resp := jsonrpcMessage{Version: vsn, ID: req.ID, Result: json.RawMessage(`"0x7"`)}
		out, _ := json.Marshal(&resp)
		serverConn.Write(append(out, '\n'))
	}()

	// The pipe is synchronous, so when the call returns the read loop has
	// already seen both notifications.
	result, err := client.Call(context.Background(), "eth_subscribe", "newHeads")
	require.NoError(t, err)
	require.Equal(t, `"0x7"`, string(result))

	ch, err := client.Listen("0x7")
	require.NoError(t, err)
	for _, want := range []string{"1", "2"} {
		select {
		case raw := <-ch:
			assert.Equal(t, want, string(raw))
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for stashed notification %s", want)
		}
	}
}

func TestDuplexClientReadErrorShutdown(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	client := newDuplexClient(newIPCConn(clientConn))

	ch, err := client.Listen("0x1")
	require.NoError(t, err)

	require.NoError(t, serverConn.Close())

	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("notification channel not closed after connection loss")
	}

	_, err = client.Call(context.Background(), "eth_blockNumber")
	assert.Error(t, err)
}
