package tx

import (
	"context"
	"errors"
	"fmt"
	"fusiongo/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"time"
)

// PollTransactionConfirmation waits until signature is confirmed or finalized. A status
// carrying an error fails immediately; no terminal status within timeout yields an
// ErrConfirmationTimeout, in which case the transaction may still land later.
func PollTransactionConfirmation(
	ctx context.Context,
	connection IRpcConnection,
	signature solana.Signature,
	interval time.Duration,
	timeout time.Duration,
) (solana.Signature, error) {
	start := time.Now()
	err := utils.Poll(ctx, interval, timeout, func(ctx context.Context) (bool, error) {
		statuses, err := connection.GetSignatureStatuses(ctx, false, signature)
		if err != nil {
			return false, newSmartTxError(ErrKindRpcClient, err)
		}
		if statuses == nil || len(statuses.Value) == 0 || statuses.Value[0] == nil {
			return false, nil
		}
		status := statuses.Value[0]
		if status.Err != nil {
			return false, newSmartTxError(ErrKindRpcClient, &TransactionFailedError{
				Signature: signature,
				Err:       status.Err,
			})
		}
		return status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
			status.ConfirmationStatus == rpc.ConfirmationStatusFinalized, nil
	})
	if err != nil {
		return solana.Signature{}, confirmationError(err, fmt.Sprintf(
			"unable to confirm transaction %s in %d seconds",
			signature,
			int64(time.Since(start).Seconds()),
		))
	}
	return signature, nil
}

// confirmationError turns poll timeouts and an expired caller context into
// ErrConfirmationTimeout and leaves errors of the sender untouched.
func confirmationError(err error, message string) error {
	var smartTxErr *SmartTxError
	if errors.As(err, &smartTxErr) {
		return err
	}
	if errors.Is(err, utils.ErrPollTimeout) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return newSmartTxError(ErrKindConfirmationTimeout, fmt.Errorf("%s: %w", message, err))
	}
	return err
}
