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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
)

const (
	maxHTTPResponseSize = 32 * 1024 * 1024 // 32MB

	contentType = "application/json"
)

// HTTP is a JSON-RPC client that issues one POST request per call. It is
// safe for concurrent use; requests carry unique monotonically increasing
// ids even though HTTP responses cannot interleave.
type HTTP struct {
	endpoint  string
	client    *http.Client
	headers   http.Header
	idCounter atomic.Uint64
}

// DialHTTP creates a client that connects to the given URL using
// http.DefaultClient.
func DialHTTP(endpoint string) (*HTTP, error) {
	return DialHTTPWithClient(endpoint, http.DefaultClient)
}

// DialHTTPWithClient creates a client that connects to the given URL using
// the provided HTTP client.
func DialHTTPWithClient(endpoint string, client *http.Client) (*HTTP, error) {
	if _, err := url.Parse(endpoint); err != nil {
		return nil, err
	}
	headers := make(http.Header, 2)
	headers.Set("Accept", contentType)
	headers.Set("Content-Type", contentType)
	return &HTTP{endpoint: endpoint, client: client, headers: headers}, nil
}

// SetHeader adds a custom HTTP header to all future requests, e.g. for
// authentication against hosted node providers.
func (c *HTTP) SetHeader(key, value string) {
	c.headers.Set(key, value)
}

// Call performs the JSON-RPC call with the given method and parameters and
// returns the raw result member of the response.
func (c *HTTP) Call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	msg, err := newMessage(c.idCounter.Add(1), method, params...)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.ContentLength = int64(len(body))
	req.Header = c.headers.Clone()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var buf bytes.Buffer
		io.Copy(&buf, io.LimitReader(resp.Body, 1024)) //nolint:errcheck
		return nil, HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       buf.Bytes(),
		}
	}

	var respMsg jsonrpcMessage
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxHTTPResponseSize))
	if err := dec.Decode(&respMsg); err != nil {
		return nil, err
	}
	if !bytes.Equal(respMsg.ID, msg.ID) {
		return nil, fmt.Errorf("response id %s does not match request id %s", respMsg.ID, msg.ID)
	}
	if respMsg.Error != nil {
		return nil, respMsg.Error
	}
	return respMsg.Result, nil
}

// Close implements the transport interface. It is a no-op for HTTP.
func (c *HTTP) Close() error { return nil }
