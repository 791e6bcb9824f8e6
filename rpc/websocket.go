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
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsReadBuffer       = 1024
	wsWriteBuffer      = 1024
	wsMessageSizeLimit = 32 * 1024 * 1024 // 32MB
	wsWriteTimeout     = 30 * time.Second
)

// WebSocket is a JSON-RPC client over a WebSocket connection. It supports
// concurrent calls and pubsub notification routing.
type WebSocket struct {
	*duplexClient
}

// DialWebsocket creates a client that connects to the given WebSocket URL.
// The endpoint should use the ws:// or wss:// scheme.
func DialWebsocket(ctx context.Context, endpoint string) (*WebSocket, error) {
	return DialWebsocketWithHeader(ctx, endpoint, nil)
}

// DialWebsocketWithHeader is like DialWebsocket but sends the given headers
// with the handshake request, e.g. for authentication.
func DialWebsocketWithHeader(ctx context.Context, endpoint string, header http.Header) (*WebSocket, error) {
	dialer := websocket.Dialer{
		ReadBufferSize:  wsReadBuffer,
		WriteBufferSize: wsWriteBuffer,
	}
	conn, resp, err := dialer.DialContext(ctx, endpoint, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket dial: %v (HTTP status %s)", err, resp.Status)
		}
		return nil, err
	}
	conn.SetReadLimit(wsMessageSizeLimit)
	return &WebSocket{newDuplexClient(&wsConn{conn: conn})}, nil
}

// wsConn adapts a gorilla connection to the duplex message stream. Writes
// are already serialized by the client's write lock.
type wsConn struct {
	conn *websocket.Conn
}

func (c *wsConn) readMessage() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	return data, err
}

func (c *wsConn) writeMessage(ctx context.Context, data []byte) error {
	deadline := time.Now().Add(wsWriteTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *wsConn) close() error {
	return c.conn.Close()
}
