package priorityFee

import (
	"context"
	"fusiongo/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"slices"
)

type SolanaPriorityFeeResponse struct {
	Slot              uint64
	PrioritizationFee uint64
}

// FetchSolanaPriorityFee returns the recent fee samples for addresses, most recent slot
// first.
func FetchSolanaPriorityFee(
	ctx context.Context,
	connection IPriorityFeeConnection,
	addresses solana.PublicKeySlice,
) ([]SolanaPriorityFeeResponse, error) {
	response, err := GetRecentPrioritizationFees(ctx, connection, addresses)
	if err != nil {
		return nil, err
	}
	if len(response) == 0 {
		return []SolanaPriorityFeeResponse{}, nil
	}
	sorted := slices.Clone(response)
	slices.SortStableFunc(sorted, func(a, b rpc.PriorizationFeeResult) int {
		if a.Slot < b.Slot {
			return 1
		}
		if a.Slot > b.Slot {
			return -1
		}
		return 0
	})

	return utils.ValuesFunc(sorted, func(result rpc.PriorizationFeeResult) SolanaPriorityFeeResponse {
		return SolanaPriorityFeeResponse{Slot: result.Slot, PrioritizationFee: result.PrioritizationFee}
	}), nil
}
