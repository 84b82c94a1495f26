package tx

import (
	"context"
	"github.com/gagliardetto/solana-go"
	"time"
)

// DeliveryReceipt identifies what a delivery strategy handed to the network.
type DeliveryReceipt struct {
	Signature *solana.Signature
	BundleId  *string
}

// IDeliveryStrategy is implemented by RpcTxSender and JitoTxSender only.
type IDeliveryStrategy interface {
	Path() string

	// Send submits tx exactly once. Acceptance does not imply inclusion.
	Send(ctx context.Context, tx *solana.Transaction) (*DeliveryReceipt, error)

	AwaitConfirmation(
		ctx context.Context,
		receipt *DeliveryReceipt,
		interval time.Duration,
		timeout time.Duration,
	) (solana.Signature, error)

	deliveryStrategy()
}
