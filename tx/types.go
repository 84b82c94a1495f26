package tx

import (
	"context"
	"fmt"
	go_fusion "fusiongo"
	"fusiongo/priorityFee"
	"github.com/gagliardetto/solana-go"
	addresslookuptable "github.com/gagliardetto/solana-go/programs/address-lookup-table"
	"github.com/gagliardetto/solana-go/rpc"
	"time"
)

const MAX_COMPUTE_UNIT_LIMIT = uint32(1_400_000)
const DEFAULT_TRANSACTION_TIMEOUT = 60 * time.Second
const DEFAULT_POLLING_INTERVAL = 2 * time.Second
const DEFAULT_COMPUTE_UNIT_MARGIN_MULTIPLIER = 1.15
const MIN_COMPUTE_UNIT_MARGIN_MULTIPLIER = 1.0
const MAX_COMPUTE_UNIT_MARGIN_MULTIPLIER = 10.0

// IRpcConnection is the part of *rpc.Client the sender uses.
type IRpcConnection interface {
	priorityFee.IPriorityFeeConnection

	GetLatestBlockhash(
		ctx context.Context,
		commitment rpc.CommitmentType,
	) (*rpc.GetLatestBlockhashResult, error)

	SimulateTransactionWithOpts(
		ctx context.Context,
		transaction *solana.Transaction,
		opts *rpc.SimulateTransactionOpts,
	) (*rpc.SimulateTransactionResponse, error)

	SendTransactionWithOpts(
		ctx context.Context,
		transaction *solana.Transaction,
		opts rpc.TransactionOpts,
	) (solana.Signature, error)

	GetSignatureStatuses(
		ctx context.Context,
		searchTransactionHistory bool,
		transactionSignatures ...solana.Signature,
	) (*rpc.GetSignatureStatusesResult, error)
}

var _ IRpcConnection = (*rpc.Client)(nil)

type TransactionProps struct {
	Instructions []solana.Instruction
	Payer        solana.PublicKey
	Signers      go_fusion.Signers
	LookupTables []addresslookuptable.KeyedAddressLookupTable
}

type PriorityFeeConfig struct {
	FeeLevel priorityFee.PriorityFeeLevel
	/// lower bound applied to the estimated fee, micro lamports per compute unit
	FeeMin *uint64
	/// upper bound applied after FeeMin
	FeeMax *uint64
}

type JitoConfig struct {
	/// optional block engine uuid, sent as the uuid query parameter
	Uuid string
	/// tip in lamports, raised to jito.MIN_JITO_TIP_LAMPORTS when lower
	Tips uint64
	/// block engine region, the default engine is used when empty or unknown
	Region string
	/// overrides the region lookup when set
	BlockEngineUrl string
}

type SmartTxConfig struct {
	/// priority fee options, nil when priority fees are not used
	PriorityFee *PriorityFeeConfig
	/// jito options, nil when jito is not used. Jito bundles never carry a priority fee.
	Jito *JitoConfig
	/// compute unit limit used when the estimation fails or is disabled, 0 omits the limit instruction
	DefaultComputeUnitLimit uint32
	/// multiplier applied to the simulated compute units, clamped to [1, 10]
	ComputeUnitMarginMultiplier float64
	/// skips the simulation
	DisableSimulation bool
	/// sends the transaction anyway when the simulation reports a transaction error
	IgnoreSimulationError bool
	/// verifies signatures during the simulation, a zero blockhash is simulated otherwise
	SigVerifyOnSimulation bool
	/// waits for the confirmation
	WaitForConfirmation bool
	/// confirmation polling interval, defaults to 2 seconds
	PollingInterval time.Duration
	/// confirmation timeout, defaults to 60 seconds
	TransactionTimeout time.Duration
	/// blockhash to use, the latest one is fetched when nil
	Blockhash *solana.Hash
}

func DefaultSmartTxConfig() SmartTxConfig {
	return SmartTxConfig{
		DefaultComputeUnitLimit:     MAX_COMPUTE_UNIT_LIMIT,
		ComputeUnitMarginMultiplier: DEFAULT_COMPUTE_UNIT_MARGIN_MULTIPLIER,
		SigVerifyOnSimulation:       true,
		WaitForConfirmation:         true,
		PollingInterval:             DEFAULT_POLLING_INTERVAL,
		TransactionTimeout:          DEFAULT_TRANSACTION_TIMEOUT,
	}
}

func (p SmartTxConfig) withDefaults() SmartTxConfig {
	if p.PollingInterval <= 0 {
		p.PollingInterval = DEFAULT_POLLING_INTERVAL
	}
	if p.TransactionTimeout <= 0 {
		p.TransactionTimeout = DEFAULT_TRANSACTION_TIMEOUT
	}
	p.DefaultComputeUnitLimit = min(p.DefaultComputeUnitLimit, MAX_COMPUTE_UNIT_LIMIT)
	return p
}

type ElapsedTime struct {
	/// since the call until the simulation and signing finished
	PrepareAndSimulate time.Duration
	/// since the call until the send request returned
	Send time.Duration
	/// since the call until the transaction was confirmed
	Confirm time.Duration
}

func (p ElapsedTime) String() string {
	return fmt.Sprintf(
		"sim/send/confirm: %d/%d/%d ms",
		p.PrepareAndSimulate.Milliseconds(),
		p.Send.Milliseconds(),
		p.Confirm.Milliseconds(),
	)
}

type DeliveryState uint8

const (
	DeliveryStateBuilt DeliveryState = iota
	DeliveryStateSent
	DeliveryStateConfirmed
	DeliveryStateFailed
	DeliveryStateTimedOut
)

func (p DeliveryState) String() string {
	switch p {
	case DeliveryStateBuilt:
		return "built"
	case DeliveryStateSent:
		return "sent"
	case DeliveryStateConfirmed:
		return "confirmed"
	case DeliveryStateFailed:
		return "failed"
	case DeliveryStateTimedOut:
		return "timedOut"
	}
	return "unknown"
}

type SmartTxResult struct {
	/// transaction signature, nil when a jito bundle was sent without waiting
	Signature *solana.Signature
	/// applied priority fee, micro lamports per compute unit
	PriorityFee uint64
	/// applied compute unit limit, 0 when no limit instruction was added
	ComputeUnitLimit uint32
	/// bundle id when the transaction went through jito
	JitoBundleId *string
	State        DeliveryState
	ElapsedTime  ElapsedTime
}
