package tx

import (
	"context"
	go_fusion "fusiongo"
	"fusiongo/jito"
	"fusiongo/metrics"
	"fusiongo/priorityFee"
	"github.com/gagliardetto/solana-go"
	addresslookuptable "github.com/gagliardetto/solana-go/programs/address-lookup-table"
	"go.uber.org/zap"
	"time"
)

type SmartTxSenderConfig struct {
	/// rpc connection used for fees, simulation, blockhashes and direct sends
	Connection IRpcConnection
	/// jito block engine client, a default one is created when nil
	JitoClient *jito.Client
	/// zap.NewNop() when nil
	Logger *zap.Logger
}

// SmartTxSender only holds read-only handles and can serve concurrent submissions.
type SmartTxSender struct {
	connection IRpcConnection
	jitoClient *jito.Client
	logger     *zap.Logger
}

func CreateSmartTxSender(config SmartTxSenderConfig) *SmartTxSender {
	if config.Connection == nil {
		panic("connection must be provided to send smart transactions")
	}
	sender := &SmartTxSender{
		connection: config.Connection,
		jitoClient: config.JitoClient,
		logger:     config.Logger,
	}
	if sender.jitoClient == nil {
		sender.jitoClient = jito.CreateClient(jito.ClientConfig{})
	}
	if sender.logger == nil {
		sender.logger = zap.NewNop()
	}
	return sender
}

// SendSmartTransaction estimates the priority fee and the compute unit limit, builds and
// signs the transaction, delivers it over rpc or as a jito bundle and optionally waits for
// the confirmation.
//
// When the confirmation fails or times out the partial result is returned together with
// the error. A timeout means the outcome is unknown: the transaction may still land.
func (p *SmartTxSender) SendSmartTransaction(
	ctx context.Context,
	signers go_fusion.Signers,
	payer solana.PublicKey,
	instructions []solana.Instruction,
	lookupTables []addresslookuptable.KeyedAddressLookupTable,
	txConfig SmartTxConfig,
) (*SmartTxResult, error) {
	start := time.Now()
	config := txConfig.withDefaults()
	var elapsedTime ElapsedTime

	fee, err := p.getPriorityFee(ctx, instructions, &config)
	if err != nil {
		return nil, err
	}

	var tipInstruction solana.Instruction
	if config.Jito != nil {
		tipInstruction = jito.CreateTipInstruction(payer, config.Jito.Tips)
	}

	props := &TransactionProps{
		Instructions: AssembleInstructions(0, fee, instructions, tipInstruction),
		Payer:        payer,
		Signers:      signers,
		LookupTables: lookupTables,
	}
	computeUnitLimit, err := EstimateComputeUnitLimit(ctx, p.connection, props, &config, p.logger)
	if err != nil {
		return nil, err
	}

	blockhash, err := GetBlockhash(ctx, p.connection, config.Blockhash)
	if err != nil {
		return nil, err
	}
	transaction, err := BuildTransaction(
		AssembleInstructions(computeUnitLimit, 0, props.Instructions, nil),
		payer,
		signers,
		lookupTables,
		blockhash,
	)
	if err != nil {
		return nil, err
	}

	elapsedTime.PrepareAndSimulate = time.Since(start)
	metrics.RecordPrepareDuration(elapsedTime.PrepareAndSimulate.Milliseconds())
	metrics.RecordPriorityFee(fee)
	metrics.RecordComputeUnitLimit(computeUnitLimit)

	strategy := p.selectDeliveryStrategy(&config)
	logger := p.logger.With(zap.String("path", strategy.Path()))
	logger.Debug("Smart transaction state",
		zap.Stringer("state", DeliveryStateBuilt),
		zap.Uint64("priorityFee", fee),
		zap.Uint32("computeUnitLimit", computeUnitLimit),
	)

	receipt, err := strategy.Send(ctx, transaction)
	if err != nil {
		metrics.IncTxFailed(strategy.Path())
		logger.Debug("Smart transaction state", zap.Stringer("state", DeliveryStateFailed), zap.Error(err))
		return nil, err
	}
	elapsedTime.Send = time.Since(start)
	metrics.IncTxSent(strategy.Path())
	metrics.RecordSendDuration(strategy.Path(), (elapsedTime.Send - elapsedTime.PrepareAndSimulate).Milliseconds())

	result := &SmartTxResult{
		Signature:        receipt.Signature,
		PriorityFee:      fee,
		ComputeUnitLimit: computeUnitLimit,
		JitoBundleId:     receipt.BundleId,
		State:            DeliveryStateSent,
		ElapsedTime:      elapsedTime,
	}
	logger.Debug("Smart transaction state", zap.Stringer("state", result.State), zap.Stringer("elapsed", result.ElapsedTime))

	if !config.WaitForConfirmation {
		return result, nil
	}

	signature, err := strategy.AwaitConfirmation(ctx, receipt, config.PollingInterval, config.TransactionTimeout)
	if err != nil {
		if IsErrorKind(err, ErrKindConfirmationTimeout) {
			result.State = DeliveryStateTimedOut
			metrics.IncTxTimeout(strategy.Path())
		} else {
			result.State = DeliveryStateFailed
			metrics.IncTxFailed(strategy.Path())
		}
		logger.Warn("Smart transaction not confirmed", zap.Stringer("state", result.State), zap.Error(err))
		return result, err
	}

	result.Signature = &signature
	result.State = DeliveryStateConfirmed
	result.ElapsedTime.Confirm = time.Since(start)
	metrics.IncTxConfirmed(strategy.Path())
	metrics.RecordConfirmDuration(strategy.Path(), (result.ElapsedTime.Confirm - result.ElapsedTime.Send).Milliseconds())
	logger.Debug("Smart transaction state",
		zap.Stringer("state", result.State),
		zap.Stringer("signature", signature),
		zap.Stringer("elapsed", result.ElapsedTime),
	)
	return result, nil
}

// getPriorityFee resolves the configured level and applies the min/max bounds. Jito
// bundles and the None level pay no priority fee.
func (p *SmartTxSender) getPriorityFee(
	ctx context.Context,
	instructions []solana.Instruction,
	config *SmartTxConfig,
) (uint64, error) {
	feeConfig := config.PriorityFee
	if feeConfig == nil || config.Jito != nil || feeConfig.FeeLevel.IsNone() {
		return 0, nil
	}
	fee, err := priorityFee.GetPriorityFeeEstimate(
		ctx,
		p.connection,
		priorityFee.InstructionAccounts(instructions),
		feeConfig.FeeLevel,
	)
	if err != nil {
		return 0, newSmartTxError(ErrKindRpcClient, err)
	}
	return ClampPriorityFee(fee, feeConfig.FeeMin, feeConfig.FeeMax), nil
}

// ClampPriorityFee raises fee to feeMin and then lowers it to feeMax, when set.
func ClampPriorityFee(fee uint64, feeMin *uint64, feeMax *uint64) uint64 {
	if feeMin != nil {
		fee = max(fee, *feeMin)
	}
	if feeMax != nil {
		fee = min(fee, *feeMax)
	}
	return fee
}

func (p *SmartTxSender) selectDeliveryStrategy(config *SmartTxConfig) IDeliveryStrategy {
	if config.Jito != nil {
		return CreateJitoTxSender(p.jitoClient, config.Jito)
	}
	return CreateRpcTxSender(p.connection)
}
