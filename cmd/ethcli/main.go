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

// ethcli is a small command line client for querying Ethereum nodes over
// JSON-RPC.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/austinabell/ethers-go/common"
	"github.com/austinabell/ethers-go/providers"
	"github.com/austinabell/ethers-go/types"
)

var (
	rpcFlag = &cli.StringFlag{
		Name:    "rpc",
		Usage:   "HTTP or WebSocket `URL` of the node",
		Value:   "http://localhost:8545",
		EnvVars: []string{"ETH_RPC_URL"},
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "log every dispatched RPC call",
	}
)

func main() {
	app := &cli.App{
		Name:  "ethcli",
		Usage: "query Ethereum nodes over JSON-RPC",
		Flags: []cli.Flag{rpcFlag, verboseFlag},
		Commands: []*cli.Command{
			{
				Name:   "block-number",
				Usage:  "print the latest block number",
				Action: blockNumber,
			},
			{
				Name:   "gas-price",
				Usage:  "print the node's gas price estimate in wei",
				Action: gasPrice,
			},
			{
				Name:      "balance",
				Usage:     "print an account's balance in wei",
				ArgsUsage: "<address or ENS name>",
				Action:    balance,
			},
			{
				Name:      "resolve",
				Usage:     "resolve an ENS name to its address",
				ArgsUsage: "<name>",
				Action:    resolve,
			},
			{
				Name:      "lookup",
				Usage:     "reverse-resolve an address to its primary ENS name",
				ArgsUsage: "<address>",
				Action:    lookup,
			},
			{
				Name:      "receipt",
				Usage:     "print a transaction's receipt",
				ArgsUsage: "<tx hash>",
				Action:    receipt,
			},
			{
				Name:   "watch-blocks",
				Usage:  "stream new block hashes until interrupted",
				Action: watchBlocks,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func dial(c *cli.Context) (*providers.Provider, error) {
	endpoint := c.String(rpcFlag.Name)
	var (
		p   *providers.Provider
		err error
	)
	if strings.HasPrefix(endpoint, "ws://") || strings.HasPrefix(endpoint, "wss://") {
		p, err = providers.DialWebsocket(c.Context, endpoint)
	} else {
		p, err = providers.DialHTTP(endpoint)
	}
	if err != nil {
		return nil, err
	}
	if c.Bool(verboseFlag.Name) {
		log, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		p.WithLogger(log)
	}
	return p, nil
}

func nameOrAddress(arg string) types.NameOrAddress {
	var addr common.Address
	if err := addr.UnmarshalText([]byte(arg)); err == nil {
		return types.Addr(addr)
	}
	return types.Name(arg)
}

func blockNumber(c *cli.Context) error {
	p, err := dial(c)
	if err != nil {
		return err
	}
	num, err := p.BlockNumber(c.Context)
	if err != nil {
		return err
	}
	fmt.Println(num)
	return nil
}

func gasPrice(c *cli.Context) error {
	p, err := dial(c)
	if err != nil {
		return err
	}
	price, err := p.GasPrice(c.Context)
	if err != nil {
		return err
	}
	fmt.Println(price)
	return nil
}

func balance(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected one account argument")
	}
	p, err := dial(c)
	if err != nil {
		return err
	}
	wei, err := p.GetBalance(c.Context, nameOrAddress(c.Args().First()), nil)
	if err != nil {
		return err
	}
	fmt.Println(wei)
	return nil
}

func resolve(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected one name argument")
	}
	p, err := dial(c)
	if err != nil {
		return err
	}
	addr, err := p.ResolveName(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	fmt.Println(addr.Hex())
	return nil
}

func lookup(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected one address argument")
	}
	var addr common.Address
	if err := addr.UnmarshalText([]byte(c.Args().First())); err != nil {
		return fmt.Errorf("invalid address: %v", err)
	}
	p, err := dial(c)
	if err != nil {
		return err
	}
	name, err := p.LookupAddress(c.Context, addr)
	if err != nil {
		return err
	}
	fmt.Println(name)
	return nil
}

func receipt(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected one transaction hash argument")
	}
	var hash common.Hash
	if err := hash.UnmarshalText([]byte(c.Args().First())); err != nil {
		return fmt.Errorf("invalid transaction hash: %v", err)
	}
	p, err := dial(c)
	if err != nil {
		return err
	}
	r, err := p.GetTransactionReceipt(c.Context, hash)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("transaction %s not yet included", hash)
	}
	fmt.Printf("transaction: %s\n", r.TransactionHash)
	if r.BlockNumber != nil {
		fmt.Printf("block:       %s (%s)\n", r.BlockNumber.ToInt(), r.BlockHash)
	}
	fmt.Printf("gas used:    %s\n", r.GasUsed.ToInt())
	fmt.Printf("succeeded:   %v\n", r.Succeeded())
	fmt.Printf("logs:        %d\n", len(r.Logs))
	return nil
}

func watchBlocks(c *cli.Context) error {
	p, err := dial(c)
	if err != nil {
		return err
	}
	watcher, err := p.WatchBlocks(c.Context)
	if err != nil {
		return err
	}
	defer watcher.Unsubscribe()

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	go func() {
		<-ctx.Done()
		watcher.Unsubscribe()
	}()

	for hash := range watcher.Changes() {
		fmt.Println(hash.Hex())
	}
	select {
	case err := <-watcher.Err():
		return err
	default:
		return nil
	}
}
