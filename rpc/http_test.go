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
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCall(t *testing.T) {
	var got jsonrpcMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Header().Set("Content-Type", contentType)
		resp := jsonrpcMessage{Version: vsn, ID: got.ID, Result: json.RawMessage(`"0xc"`)}
		require.NoError(t, json.NewEncoder(w).Encode(&resp))
	}))
	defer srv.Close()

	client, err := DialHTTP(srv.URL)
	require.NoError(t, err)
	defer client.Close()

	result, err := client.Call(context.Background(), "eth_blockNumber")
	require.NoError(t, err)
	assert.Equal(t, `"0xc"`, string(result))

	assert.Equal(t, "eth_blockNumber", got.Method)
	assert.Equal(t, vsn, got.Version)
	// Calls without parameters omit the params member entirely.
	assert.Nil(t, got.Params)
}

func TestHTTPCallParams(t *testing.T) {
	var got jsonrpcMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		resp := jsonrpcMessage{Version: vsn, ID: got.ID, Result: json.RawMessage(`null`)}
		json.NewEncoder(w).Encode(&resp) //nolint:errcheck
	}))
	defer srv.Close()

	client, err := DialHTTP(srv.URL)
	require.NoError(t, err)

	_, err = client.Call(context.Background(), "eth_getBalance", "0x1234", "latest")
	require.NoError(t, err)
	assert.JSONEq(t, `["0x1234","latest"]`, string(got.Params))
}

func TestHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := DialHTTP(srv.URL)
	require.NoError(t, err)

	_, err = client.Call(context.Background(), "eth_blockNumber")
	var httpErr HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.Contains(t, string(httpErr.Body), "backend overloaded")
}

func TestHTTPServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req jsonrpcMessage
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		resp := jsonrpcMessage{
			Version: vsn,
			ID:      req.ID,
			Error:   &jsonError{Code: -32601, Message: "the method does not exist"},
		}
		json.NewEncoder(w).Encode(&resp) //nolint:errcheck
	}))
	defer srv.Close()

	client, err := DialHTTP(srv.URL)
	require.NoError(t, err)

	_, err = client.Call(context.Background(), "eth_unknown")
	var rpcErr Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32601, rpcErr.ErrorCode())
	assert.Equal(t, "the method does not exist", rpcErr.Error())
}

func TestHTTPSetHeader(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		resp := jsonrpcMessage{Version: vsn, ID: json.RawMessage("1"), Result: json.RawMessage(`null`)}
		json.NewEncoder(w).Encode(&resp) //nolint:errcheck
	}))
	defer srv.Close()

	client, err := DialHTTP(srv.URL)
	require.NoError(t, err)
	client.SetHeader("Authorization", "Bearer token")

	_, err = client.Call(context.Background(), "eth_blockNumber")
	require.NoError(t, err)
	assert.Equal(t, "Bearer token", auth)
}
