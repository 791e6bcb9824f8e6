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

// Package providers implements a client for the Ethereum JSON-RPC API on
// top of an exchangeable transport: one operation per chain RPC method,
// ENS name resolution, polled filter streams, pubsub subscription streams
// and pending-transaction confirmation tracking.
package providers

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/austinabell/ethers-go/common"
	"github.com/austinabell/ethers-go/common/hexutil"
	"github.com/austinabell/ethers-go/rpc"
	"github.com/austinabell/ethers-go/types"
)

// DefaultPollInterval is the cadence used by filter watchers and pending
// transactions when no interval is configured on the provider.
const DefaultPollInterval = 7 * time.Second

// Transport is the capability the provider requires: send a named call
// with positional parameters and receive the raw result or an error.
// Implementations must support concurrent independent calls.
type Transport interface {
	Call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error)
}

// PubsubTransport extends Transport with server push. Listen registers a
// notification channel for a subscription id previously returned by
// eth_subscribe; Forget deregisters it.
type PubsubTransport interface {
	Transport

	Listen(id string) (<-chan json.RawMessage, error)
	Forget(id string)
}

// Provider is the client façade over a transport. It is read-only after
// the builder calls and safe for concurrent use; watchers, subscription
// streams and pending transactions all share it and must not outlive it.
type Provider struct {
	transport Transport
	ens       *common.Address // registry override, nil for the well-known default
	sender    *common.Address
	interval  time.Duration // zero means DefaultPollInterval
	log       *zap.Logger
}

// New creates a provider on the given transport.
func New(transport Transport) *Provider {
	return &Provider{transport: transport, log: zap.NewNop()}
}

// DialHTTP creates a provider connected to an HTTP endpoint.
func DialHTTP(endpoint string) (*Provider, error) {
	t, err := rpc.DialHTTP(endpoint)
	if err != nil {
		return nil, err
	}
	return New(t), nil
}

// DialWebsocket creates a provider connected to a WebSocket endpoint,
// enabling the Subscribe* operations.
func DialWebsocket(ctx context.Context, endpoint string) (*Provider, error) {
	t, err := rpc.DialWebsocket(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return New(t), nil
}

// DialIPC creates a provider connected to a local IPC socket, enabling the
// Subscribe* operations.
func DialIPC(ctx context.Context, path string) (*Provider, error) {
	t, err := rpc.DialIPC(ctx, path)
	if err != nil {
		return nil, err
	}
	return New(t), nil
}

// WithSender sets the default sender filled into transactions that omit a
// from address. Builder calls must happen before concurrent use begins.
func (p *Provider) WithSender(sender common.Address) *Provider {
	p.sender = &sender
	return p
}

// WithEns overrides the ENS registry address, e.g. for private networks.
func (p *Provider) WithEns(registry common.Address) *Provider {
	p.ens = &registry
	return p
}

// WithInterval sets the poll interval inherited by watchers and pending
// transactions.
func (p *Provider) WithInterval(interval time.Duration) *Provider {
	p.interval = interval
	return p
}

// WithLogger sets the logger used to trace dispatched calls.
func (p *Provider) WithLogger(log *zap.Logger) *Provider {
	p.log = log
	return p
}

// Sender returns the configured default sender, or nil.
func (p *Provider) Sender() *common.Address { return p.sender }

// Interval returns the configured poll interval, falling back to
// DefaultPollInterval.
func (p *Provider) Interval() time.Duration {
	if p.interval == 0 {
		return DefaultPollInterval
	}
	return p.interval
}

// invoke dispatches a single call through the transport, tracing it on the
// provider's logger. Transport failures are wrapped; there are no retries.
func (p *Provider) invoke(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	p.log.Debug("dispatching call", zap.String("method", method), zap.Any("params", params))
	raw, err := p.transport.Call(ctx, method, params...)
	if err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}
	p.log.Debug("call returned", zap.String("method", method), zap.String("result", string(raw)))
	return raw, nil
}

// call dispatches method and decodes the result as R. The provider cannot
// make this a method because methods take no type parameters.
func call[R any](ctx context.Context, p *Provider, method string, params ...interface{}) (R, error) {
	var result R
	raw, err := p.invoke(ctx, method, params...)
	if err != nil {
		return result, err
	}
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, &DecodeError{Method: method, Err: err}
	}
	return result, nil
}

func callBig(ctx context.Context, p *Provider, method string, params ...interface{}) (*big.Int, error) {
	result, err := call[hexutil.Big](ctx, p, method, params...)
	if err != nil {
		return nil, err
	}
	return result.ToInt(), nil
}

// blockTag substitutes the latest tag when no explicit block is given.
func blockTag(block *types.BlockNumber) types.BlockNumber {
	if block == nil {
		return types.Latest
	}
	return *block
}

// BlockNumber returns the number of the most recent block.
func (p *Provider) BlockNumber(ctx context.Context) (uint64, error) {
	result, err := call[hexutil.Uint64](ctx, p, "eth_blockNumber")
	return uint64(result), err
}

// getBlock backs the two block lookup variants: the identifier selects the
// byHash or byNumber method, includeTxs selects the transaction shape.
func getBlock[T any](ctx context.Context, p *Provider, id types.BlockID, includeTxs bool) (*types.Block[T], error) {
	if id.Hash != nil {
		return call[*types.Block[T]](ctx, p, "eth_getBlockByHash", id.Hash, includeTxs)
	}
	return call[*types.Block[T]](ctx, p, "eth_getBlockByNumber", blockTag(id.Number), includeTxs)
}

// GetBlock returns the block with only transaction hashes, or nil if it is
// not known to the node.
func (p *Provider) GetBlock(ctx context.Context, id types.BlockID) (*types.Block[common.Hash], error) {
	return getBlock[common.Hash](ctx, p, id, false)
}

// GetBlockWithTxs returns the block with fully populated transactions, or
// nil if it is not known to the node.
func (p *Provider) GetBlockWithTxs(ctx context.Context, id types.BlockID) (*types.Block[types.Transaction], error) {
	return getBlock[types.Transaction](ctx, p, id, true)
}

// GetTransaction returns the transaction with the given hash, or nil if the
// node does not know it.
func (p *Provider) GetTransaction(ctx context.Context, hash common.Hash) (*types.Transaction, error) {
	return call[*types.Transaction](ctx, p, "eth_getTransactionByHash", hash)
}

// GetTransactionReceipt returns the receipt of the given transaction, or
// nil while it is not yet included in a block.
func (p *Provider) GetTransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return call[*types.Receipt](ctx, p, "eth_getTransactionReceipt", hash)
}

// GetBlockReceipts returns all receipts of the given block in one call
// (parity_getBlockReceipts, supported by OpenEthereum-lineage nodes).
func (p *Provider) GetBlockReceipts(ctx context.Context, block types.BlockNumber) ([]types.Receipt, error) {
	return call[[]types.Receipt](ctx, p, "parity_getBlockReceipts", block)
}

// GasPrice returns the node's gas price estimate in wei.
func (p *Provider) GasPrice(ctx context.Context) (*big.Int, error) {
	return callBig(ctx, p, "eth_gasPrice")
}

// Accounts returns the accounts the node controls.
func (p *Provider) Accounts(ctx context.Context) ([]common.Address, error) {
	return call[[]common.Address](ctx, p, "eth_accounts")
}

// GetTransactionCount returns the nonce of the account at the given block.
func (p *Provider) GetTransactionCount(ctx context.Context, from types.NameOrAddress, block *types.BlockNumber) (*big.Int, error) {
	addr, err := p.resolveNameOrAddress(ctx, from)
	if err != nil {
		return nil, err
	}
	return callBig(ctx, p, "eth_getTransactionCount", addr, blockTag(block))
}

// GetBalance returns the account's balance in wei at the given block.
func (p *Provider) GetBalance(ctx context.Context, from types.NameOrAddress, block *types.BlockNumber) (*big.Int, error) {
	addr, err := p.resolveNameOrAddress(ctx, from)
	if err != nil {
		return nil, err
	}
	return callBig(ctx, p, "eth_getBalance", addr, blockTag(block))
}

// ChainID returns the chain id used for transaction signing.
func (p *Provider) ChainID(ctx context.Context) (*big.Int, error) {
	return callBig(ctx, p, "eth_chainId")
}

// Call executes the request against the chain state at the given block
// without creating a transaction, and returns the call output.
func (p *Provider) Call(ctx context.Context, req *types.TransactionRequest, block *types.BlockNumber) (hexutil.Bytes, error) {
	return call[hexutil.Bytes](ctx, p, "eth_call", req, blockTag(block))
}

// EstimateGas returns the node's gas estimate for executing the request.
func (p *Provider) EstimateGas(ctx context.Context, req *types.TransactionRequest) (*big.Int, error) {
	return callBig(ctx, p, "eth_estimateGas", req)
}

// SendTransaction fills in missing request fields and submits it for
// signing and inclusion by the node: the default sender is applied if the
// request has no from address, gas is estimated if unset, and an ENS
// recipient is resolved to its address. The returned pending transaction
// carries the provider's poll interval.
func (p *Provider) SendTransaction(ctx context.Context, req types.TransactionRequest) (*PendingTransaction, error) {
	if req.From == nil && p.sender != nil {
		req.From = p.sender
	}
	if req.Gas == nil {
		gas, err := p.EstimateGas(ctx, &req)
		if err != nil {
			return nil, err
		}
		req.Gas = hexutil.NewBig(gas)
	}
	if req.To != nil && req.To.IsName() {
		addr, err := p.ResolveName(ctx, req.To.EnsName())
		if err != nil {
			return nil, err
		}
		to := types.Addr(addr)
		req.To = &to
	}
	hash, err := call[common.Hash](ctx, p, "eth_sendTransaction", req)
	if err != nil {
		return nil, err
	}
	return newPendingTransaction(p, hash), nil
}

// SendRawTransaction submits an already-signed transaction payload.
func (p *Provider) SendRawTransaction(ctx context.Context, raw hexutil.Bytes) (*PendingTransaction, error) {
	hash, err := call[common.Hash](ctx, p, "eth_sendRawTransaction", raw)
	if err != nil {
		return nil, err
	}
	return newPendingTransaction(p, hash), nil
}

// Sign asks the node to sign data with the key of the given unlocked
// account.
func (p *Provider) Sign(ctx context.Context, data hexutil.Bytes, from common.Address) (common.Signature, error) {
	encoded, err := call[string](ctx, p, "eth_sign", from, data)
	if err != nil {
		return common.Signature{}, err
	}
	decoded, err := hex.DecodeString(strings.TrimPrefix(encoded, "0x"))
	if err != nil {
		return common.Signature{}, &HexError{Err: err}
	}
	sig, err := common.SignatureFromBytes(decoded)
	if err != nil {
		return common.Signature{}, customErrorf("malformed signature: %v", err)
	}
	return sig, nil
}

// IsSigner reports whether the endpoint can sign for the configured
// default sender, probed with a zero-length sign request.
func (p *Provider) IsSigner(ctx context.Context) bool {
	if p.sender == nil {
		return false
	}
	_, err := p.Sign(ctx, nil, *p.sender)
	return err == nil
}

// GetLogs returns all logs matching the filter.
func (p *Provider) GetLogs(ctx context.Context, filter *types.Filter) ([]types.Log, error) {
	return call[[]types.Log](ctx, p, "eth_getLogs", filter)
}

// GetCode returns the contract code of the account at the given block.
func (p *Provider) GetCode(ctx context.Context, at types.NameOrAddress, block *types.BlockNumber) (hexutil.Bytes, error) {
	addr, err := p.resolveNameOrAddress(ctx, at)
	if err != nil {
		return nil, err
	}
	return call[hexutil.Bytes](ctx, p, "eth_getCode", addr, blockTag(block))
}

// GetStorageAt returns the value of the account's storage slot at the
// given block. Nodes may return fewer than thirty-two bytes; the value is
// left-padded with zeros before interpretation.
func (p *Provider) GetStorageAt(ctx context.Context, from types.NameOrAddress, location common.Hash, block *types.BlockNumber) (common.Hash, error) {
	addr, err := p.resolveNameOrAddress(ctx, from)
	if err != nil {
		return common.Hash{}, err
	}
	encoded, err := call[string](ctx, p, "eth_getStorageAt", addr, location, blockTag(block))
	if err != nil {
		return common.Hash{}, err
	}
	text := strings.TrimPrefix(encoded, "0x")
	if pad := 2*common.HashLength - len(text); pad > 0 {
		text = strings.Repeat("0", pad) + text
	}
	value, err := hex.DecodeString(text)
	if err != nil {
		return common.Hash{}, &HexError{Err: err}
	}
	return common.BytesToHash(value), nil
}

// TxpoolContent returns the full transactions currently in the node's
// transaction pool.
func (p *Provider) TxpoolContent(ctx context.Context) (*types.TxpoolContent, error) {
	return call[*types.TxpoolContent](ctx, p, "txpool_content")
}

// TxpoolInspect returns textual summaries of the pool's transactions.
func (p *Provider) TxpoolInspect(ctx context.Context) (*types.TxpoolInspect, error) {
	return call[*types.TxpoolInspect](ctx, p, "txpool_inspect")
}

// TxpoolStatus returns the number of pending and queued pool transactions.
func (p *Provider) TxpoolStatus(ctx context.Context) (*types.TxpoolStatus, error) {
	return call[*types.TxpoolStatus](ctx, p, "txpool_status")
}

// TraceCall executes the request like Call and returns the requested trace
// representations of the execution.
func (p *Provider) TraceCall(ctx context.Context, req *types.TransactionRequest, traceTypes []types.TraceType, block *types.BlockNumber) (*types.BlockTrace, error) {
	return call[*types.BlockTrace](ctx, p, "trace_call", req, traceTypes, blockTag(block))
}

// TraceRawTransaction traces the execution of a signed raw transaction
// without submitting it.
func (p *Provider) TraceRawTransaction(ctx context.Context, data hexutil.Bytes, traceTypes []types.TraceType) (*types.BlockTrace, error) {
	return call[*types.BlockTrace](ctx, p, "trace_rawTransaction", data, traceTypes)
}

// TraceReplayTransaction replays the given transaction and returns the
// requested trace representations.
func (p *Provider) TraceReplayTransaction(ctx context.Context, hash common.Hash, traceTypes []types.TraceType) (*types.BlockTrace, error) {
	return call[*types.BlockTrace](ctx, p, "trace_replayTransaction", hash, traceTypes)
}

// TraceReplayBlockTransactions replays all transactions of the block and
// returns their trace representations.
func (p *Provider) TraceReplayBlockTransactions(ctx context.Context, block types.BlockNumber, traceTypes []types.TraceType) ([]types.BlockTrace, error) {
	return call[[]types.BlockTrace](ctx, p, "trace_replayBlockTransactions", block, traceTypes)
}

// TraceBlock returns the call traces of all transactions in the block.
func (p *Provider) TraceBlock(ctx context.Context, block types.BlockNumber) ([]types.Trace, error) {
	return call[[]types.Trace](ctx, p, "trace_block", block)
}

// TraceFilter returns the traces matching the filter.
func (p *Provider) TraceFilter(ctx context.Context, filter types.TraceFilter) ([]types.Trace, error) {
	return call[[]types.Trace](ctx, p, "trace_filter", filter)
}

// TraceGet returns the trace at the given index path of a transaction.
func (p *Provider) TraceGet(ctx context.Context, hash common.Hash, index []hexutil.Uint64) (*types.Trace, error) {
	return call[*types.Trace](ctx, p, "trace_get", hash, index)
}

// TraceTransaction returns all call traces of the transaction.
func (p *Provider) TraceTransaction(ctx context.Context, hash common.Hash) ([]types.Trace, error) {
	return call[[]types.Trace](ctx, p, "trace_transaction", hash)
}
