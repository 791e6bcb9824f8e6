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

	"github.com/austinabell/ethers-go/common"
	"github.com/austinabell/ethers-go/ens"
	"github.com/austinabell/ethers-go/types"
)

// ResolveName resolves an ENS name to its address record via the two-hop
// registry/resolver protocol. An unregistered name fails with EnsError.
func (p *Provider) ResolveName(ctx context.Context, name string) (common.Address, error) {
	resolver, err := p.queryResolver(ctx, name)
	if err != nil {
		return common.Address{}, err
	}
	data, err := p.Call(ctx, ens.Resolve(resolver, name), nil)
	if err != nil {
		return common.Address{}, err
	}
	addr, err := ens.ParseAddress(data)
	if err != nil {
		// The resolver contract violated its ABI. Report it loudly instead
		// of defaulting to a zero address.
		return common.Address{}, customErrorf("resolver for %s returned malformed address data: %v", name, err)
	}
	return addr, nil
}

// LookupAddress reverse-resolves an address to its primary ENS name through
// the reverse registrar namespace.
func (p *Provider) LookupAddress(ctx context.Context, addr common.Address) (string, error) {
	reverse := ens.ReverseAddress(addr)
	resolver, err := p.queryResolver(ctx, reverse)
	if err != nil {
		return "", err
	}
	data, err := p.Call(ctx, ens.Name(resolver, ens.Namehash(reverse)), nil)
	if err != nil {
		return "", err
	}
	name, err := ens.ParseString(data)
	if err != nil {
		return "", customErrorf("resolver for %s returned malformed name data: %v", reverse, err)
	}
	return name, nil
}

// queryResolver asks the registry which resolver contract is responsible
// for name. The registry returns the zero address for unregistered names.
func (p *Provider) queryResolver(ctx context.Context, name string) (common.Address, error) {
	registry := ens.RegistryAddress
	if p.ens != nil {
		registry = *p.ens
	}
	data, err := p.Call(ctx, ens.GetResolver(registry, name), nil)
	if err != nil {
		return common.Address{}, err
	}
	resolver, err := ens.ParseAddress(data)
	if err != nil {
		return common.Address{}, customErrorf("registry returned malformed resolver data for %s: %v", name, err)
	}
	if resolver == (common.Address{}) {
		return common.Address{}, &EnsError{Name: name}
	}
	return resolver, nil
}

// resolveNameOrAddress normalizes a name-or-address argument to a plain
// address, resolving names through ENS.
func (p *Provider) resolveNameOrAddress(ctx context.Context, v types.NameOrAddress) (common.Address, error) {
	if v.IsName() {
		return p.ResolveName(ctx, v.EnsName())
	}
	return v.Address(), nil
}
