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

import "fmt"

// TransportError is returned when the underlying transport fails to deliver
// a call or reports a server-side error for it.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error calling %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is returned when a response body does not match the shape of
// the operation's declared result type.
type DecodeError struct {
	Method string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s result: %v", e.Method, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EnsError is returned when a name has no resolver registered, i.e. the
// registry reports the zero address for it.
type EnsError struct {
	Name string
}

func (e *EnsError) Error() string {
	return fmt.Sprintf("ens name not found: %s", e.Name)
}

// HexError is returned when a hex string in a response cannot be decoded
// into bytes.
type HexError struct {
	Err error
}

func (e *HexError) Error() string {
	return fmt.Sprintf("invalid hex in response: %v", e.Err)
}

func (e *HexError) Unwrap() error { return e.Err }

// CustomError reports a locally synthesized failure, e.g. a signature of
// the wrong length or resolver return data that violates the ABI contract.
type CustomError struct {
	Message string
}

func (e *CustomError) Error() string { return e.Message }

func customErrorf(format string, args ...interface{}) *CustomError {
	return &CustomError{Message: fmt.Sprintf(format, args...)}
}
