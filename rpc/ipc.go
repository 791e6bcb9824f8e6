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
	"net"
	"time"
)

const ipcWriteTimeout = 30 * time.Second

// IPC is a JSON-RPC client over a local unix domain socket. Like the
// WebSocket client, it supports concurrent calls and pubsub notification
// routing.
type IPC struct {
	*duplexClient
}

// DialIPC creates a client that connects to the node's IPC socket at the
// given path.
func DialIPC(ctx context.Context, path string) (*IPC, error) {
	conn, err := new(net.Dialer).DialContext(ctx, "unix", path)
	if err != nil {
		return nil, err
	}
	return &IPC{newDuplexClient(newIPCConn(conn))}, nil
}

// ipcConn frames JSON-RPC messages on a byte stream. Responses are split by
// the JSON decoder; requests are written with a trailing newline the way
// nodes emit them.
type ipcConn struct {
	conn net.Conn
	dec  *json.Decoder
}

func newIPCConn(conn net.Conn) *ipcConn {
	return &ipcConn{conn: conn, dec: json.NewDecoder(conn)}
}

func (c *ipcConn) readMessage() ([]byte, error) {
	var raw json.RawMessage
	if err := c.dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *ipcConn) writeMessage(ctx context.Context, data []byte) error {
	deadline := time.Now().Add(ipcWriteTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	_, err := c.conn.Write(append(data, '\n'))
	return err
}

func (c *ipcConn) close() error {
	return c.conn.Close()
}
