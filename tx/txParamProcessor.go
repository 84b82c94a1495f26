package tx

import (
	"context"
	"errors"
	"fusiongo/metrics"
	"fusiongo/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"math"
)

func GetComputeUnitsFromSim(
	txSim *rpc.SimulateTransactionResponse,
) *uint64 {
	if txSim != nil && txSim.Value != nil && txSim.Value.UnitsConsumed != nil {
		return utils.NewPtr(*txSim.Value.UnitsConsumed)
	}
	return nil
}

// ApplyComputeUnitMargin returns floor(unitsConsumed * multiplier) capped at
// MAX_COMPUTE_UNIT_LIMIT. The multiplier is clamped to [1, 10].
func ApplyComputeUnitMargin(unitsConsumed uint64, multiplier float64) uint32 {
	if math.IsNaN(multiplier) {
		multiplier = DEFAULT_COMPUTE_UNIT_MARGIN_MULTIPLIER
	}
	multiplier = utils.Clamp(multiplier, MIN_COMPUTE_UNIT_MARGIN_MULTIPLIER, MAX_COMPUTE_UNIT_MARGIN_MULTIPLIER)
	maxLimit := decimal.NewFromInt(int64(MAX_COMPUTE_UNIT_LIMIT))
	units := decimal.NewFromInt(int64(min(unitsConsumed, uint64(MAX_COMPUTE_UNIT_LIMIT))))

	limit := units.Mul(decimal.NewFromFloat(multiplier)).Floor()
	if limit.GreaterThan(maxLimit) {
		return MAX_COMPUTE_UNIT_LIMIT
	}
	return uint32(limit.IntPart())
}

// SimulateTransaction runs props with the maximum compute unit limit. Without signature
// verification the transaction is bound to the zero blockhash and the node replaces it.
func SimulateTransaction(
	ctx context.Context,
	connection IRpcConnection,
	props *TransactionProps,
	blockhash *solana.Hash,
	sigVerify bool,
) (*rpc.SimulateTransactionResponse, error) {
	ixs := AssembleInstructions(MAX_COMPUTE_UNIT_LIMIT, 0, props.Instructions, nil)

	recentBlockhash := solana.Hash{}
	if sigVerify {
		var err error
		recentBlockhash, err = GetBlockhash(ctx, connection, blockhash)
		if err != nil {
			return nil, err
		}
	}

	txToSim, err := BuildTransaction(ixs, props.Payer, props.Signers, props.LookupTables, recentBlockhash)
	if err != nil {
		return nil, err
	}

	response, err := connection.SimulateTransactionWithOpts(ctx, txToSim, &rpc.SimulateTransactionOpts{
		SigVerify:              sigVerify,
		ReplaceRecentBlockhash: !sigVerify,
		Commitment:             rpc.CommitmentConfirmed,
	})
	if err != nil {
		return nil, newSmartTxError(ErrKindRpcClient, err)
	}
	return response, nil
}

// EstimateComputeUnitLimit simulates props and adds the configured margin to the consumed
// compute units. Transport failures and stale blockhashes are retried; when every attempt
// fails, or the simulation error is ignored, config.DefaultComputeUnitLimit is returned.
func EstimateComputeUnitLimit(
	ctx context.Context,
	connection IRpcConnection,
	props *TransactionProps,
	config *SmartTxConfig,
	logger *zap.Logger,
) (uint32, error) {
	fallbackLimit := min(config.DefaultComputeUnitLimit, MAX_COMPUTE_UNIT_LIMIT)
	if config.DisableSimulation {
		return fallbackLimit, nil
	}

	var computeUnits *uint64
	err := SimulationRetryPolicy().Do(ctx, func(attempt int) error {
		if attempt > 1 {
			metrics.IncSimulationRetries()
		}
		response, err := SimulateTransaction(ctx, connection, props, config.Blockhash, config.SigVerifyOnSimulation)
		if err != nil {
			return err
		}
		if response.Value != nil && response.Value.Err != nil {
			return newSmartTxError(ErrKindSimulation, &TransactionError{
				Err:  response.Value.Err,
				Logs: response.Value.Logs,
			})
		}
		computeUnits = utils.NewPtr(utils.ValueOr(GetComputeUnitsFromSim(response), 0))
		return nil
	})

	if err != nil {
		var txErr *TransactionError
		switch {
		case errors.As(err, &txErr) && !txErr.IsBlockhashNotFound():
			metrics.IncSimulationErrors()
			if !config.IgnoreSimulationError {
				return 0, err
			}
			logger.Warn("Simulation failed with error", zap.Error(err), zap.Strings("logs", txErr.Logs))
		case IsErrorKind(err, ErrKindCompile), IsErrorKind(err, ErrKindSigning):
			return 0, err
		case ctx.Err() != nil:
			return 0, newSmartTxError(ErrKindRpcClient, err)
		default:
			logger.Debug("Simulation attempts exhausted", zap.Error(err))
		}
	}

	var limit uint32
	if computeUnits != nil {
		limit = ApplyComputeUnitMargin(*computeUnits, config.ComputeUnitMarginMultiplier)
	}
	if limit == 0 {
		metrics.IncSimulationFallbacks()
		limit = fallbackLimit
		if limit > 0 {
			logger.Warn("Simulation failed; setting the CU limit to the default value", zap.Uint32("limit", limit))
		} else {
			logger.Warn("Simulation failed; omitting the CU limit")
		}
	}
	return limit, nil
}
