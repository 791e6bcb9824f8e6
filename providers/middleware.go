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

// Middleware is the contract for decorator stacks built around a Provider:
// each layer wraps an inner layer and delegates the operations it does not
// handle, with the base Provider terminating the chain.
type Middleware interface {
	// Inner returns the next layer down the stack, or nil at the base.
	Inner() Middleware
	// Provider returns the base Provider terminating the stack.
	Provider() *Provider
}

// Inner implements Middleware. The base of a stack has no inner layer.
func (p *Provider) Inner() Middleware { return nil }

// Provider implements Middleware.
func (p *Provider) Provider() *Provider { return p }
