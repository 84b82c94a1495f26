package tx

import (
	"context"
	"errors"
	"fusiongo/metrics"
	"fusiongo/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"time"
)

// RpcTxSender broadcasts through the rpc node. The node is told not to retry; the
// transaction is sent exactly once.
type RpcTxSender struct {
	connection IRpcConnection
	opts       rpc.TransactionOpts
}

func CreateRpcTxSender(connection IRpcConnection) *RpcTxSender {
	return &RpcTxSender{
		connection: connection,
		opts: rpc.TransactionOpts{
			SkipPreflight:       true,
			PreflightCommitment: rpc.CommitmentConfirmed,
			MaxRetries:          utils.NewPtr(uint(0)),
		},
	}
}

func (p *RpcTxSender) deliveryStrategy() {}

func (p *RpcTxSender) Path() string {
	return metrics.PathRpc
}

func (p *RpcTxSender) Send(ctx context.Context, tx *solana.Transaction) (*DeliveryReceipt, error) {
	txSig, err := p.connection.SendTransactionWithOpts(ctx, tx, p.opts)
	if err != nil {
		return nil, newSmartTxError(ErrKindRpcClient, err)
	}
	return &DeliveryReceipt{Signature: &txSig}, nil
}

func (p *RpcTxSender) AwaitConfirmation(
	ctx context.Context,
	receipt *DeliveryReceipt,
	interval time.Duration,
	timeout time.Duration,
) (solana.Signature, error) {
	if receipt == nil || receipt.Signature == nil {
		return solana.Signature{}, newSmartTxError(ErrKindRpcClient, errors.New("receipt without signature"))
	}
	return PollTransactionConfirmation(ctx, p.connection, *receipt.Signature, interval, timeout)
}
