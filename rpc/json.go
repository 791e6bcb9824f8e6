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

// Package rpc implements clients for the JSON-RPC 2.0 wire protocol over
// HTTP, WebSocket and IPC transports.
package rpc

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	vsn = "2.0"

	// subscriptionMethod is the notification method name used by the server
	// to push subscription items.
	subscriptionMethod = "eth_subscription"
)

// A value of this type can be a JSON-RPC request, notification, successful
// response or error response. Which one it is depends on the fields.
type jsonrpcMessage struct {
	Version string          `json:"jsonrpc,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Error   *jsonError      `json:"error,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

func (msg *jsonrpcMessage) isNotification() bool {
	return msg.Version == vsn && msg.ID == nil && msg.Method != ""
}

func (msg *jsonrpcMessage) isResponse() bool {
	return msg.ID != nil && msg.Method == "" && (msg.Result != nil || msg.Error != nil)
}

func (msg *jsonrpcMessage) String() string {
	b, _ := json.Marshal(msg)
	return string(b)
}

// newMessage builds a request message with the given id. Calls without
// parameters omit the params field entirely.
func newMessage(id uint64, method string, params ...interface{}) (*jsonrpcMessage, error) {
	msg := &jsonrpcMessage{
		Version: vsn,
		ID:      json.RawMessage(strconv.FormatUint(id, 10)),
		Method:  method,
	}
	if len(params) > 0 {
		var err error
		if msg.Params, err = json.Marshal(params); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

// subscriptionResult is the params member of an eth_subscription
// notification.
type subscriptionResult struct {
	ID     string          `json:"subscription"`
	Result json.RawMessage `json:"result,omitempty"`
}

// jsonError is the error member of a JSON-RPC response.
type jsonError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (err *jsonError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("json-rpc error %d", err.Code)
	}
	return err.Message
}

// ErrorCode implements Error.
func (err *jsonError) ErrorCode() int { return err.Code }

// ErrorData implements DataError.
func (err *jsonError) ErrorData() interface{} { return err.Data }
