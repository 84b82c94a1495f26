package priorityFee

import (
	"context"
	"fusiongo/utils"
	"github.com/gagliardetto/solana-go"
)

// GetPriorityFeeEstimate resolves level to micro-lamports per compute unit. None and
// Custom levels never touch the network.
func GetPriorityFeeEstimate(
	ctx context.Context,
	connection IPriorityFeeConnection,
	addresses solana.PublicKeySlice,
	level PriorityFeeLevel,
) (uint64, error) {
	if level.IsNone() {
		return 0, nil
	}
	if fee, isCustom := level.Custom(); isCustom {
		return fee, nil
	}
	levels, err := GetPriorityFeeLevelsEstimate(ctx, connection, addresses)
	if err != nil {
		return 0, err
	}
	return levels.Get(level), nil
}

// GetPriorityFeeLevelsEstimate computes every named level from the recent fee samples of
// addresses. Samples are split, newest first, into windows of PRIORITY_FEE_CHUNK_SIZE and
// at most PRIORITY_FEE_MAX_CHUNKS windows are processed.
//
// The levels come from the last window processed, not an aggregate of all of them, so
// with three full windows the estimate reflects the oldest one. Recent congestion can
// be under-estimated because of this; callers rely on the numbers as they are.
func GetPriorityFeeLevelsEstimate(
	ctx context.Context,
	connection IPriorityFeeConnection,
	addresses solana.PublicKeySlice,
) (PriorityFeeLevels, error) {
	levels := emptyPriorityFeeLevels()

	samples, err := FetchSolanaPriorityFee(ctx, connection, addresses)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return levels, nil
	}

	strategies := levelStrategies()
	for _, chunk := range utils.ArrayChunk(samples, PRIORITY_FEE_CHUNK_SIZE, PRIORITY_FEE_MAX_CHUNKS) {
		levels = calculateLevels(strategies, chunk)
	}
	return levels, nil
}
