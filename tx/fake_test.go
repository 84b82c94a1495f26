package tx

import (
	"context"
	"encoding/binary"
	"errors"
	go_fusion "fusiongo"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/require"
)

var errTransport = errors.New("connection reset by peer")

type fakeRpcConnection struct {
	mx sync.Mutex

	fees     []rpc.PriorizationFeeResult
	feeCalls int

	blockhash      solana.Hash
	blockhashErr   error
	blockhashCalls int

	simulate  func(attempt int) (*rpc.SimulateTransactionResponse, error)
	simulated []*solana.Transaction
	simOpts   []*rpc.SimulateTransactionOpts

	sendErr  error
	sent     []*solana.Transaction
	sendOpts []rpc.TransactionOpts

	statuses    func(call int) (*rpc.GetSignatureStatusesResult, error)
	statusCalls int
}

func newFakeRpcConnection() *fakeRpcConnection {
	return &fakeRpcConnection{
		blockhash: solana.Hash{7, 7, 7},
		simulate: func(attempt int) (*rpc.SimulateTransactionResponse, error) {
			return simulationResult(5000, nil), nil
		},
		statuses: func(call int) (*rpc.GetSignatureStatusesResult, error) {
			return signatureStatus(rpc.ConfirmationStatusConfirmed, nil), nil
		},
	}
}

func (p *fakeRpcConnection) GetRecentPrioritizationFees(
	ctx context.Context,
	accounts solana.PublicKeySlice,
) ([]rpc.PriorizationFeeResult, error) {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.feeCalls++
	return p.fees, nil
}

func (p *fakeRpcConnection) GetLatestBlockhash(
	ctx context.Context,
	commitment rpc.CommitmentType,
) (*rpc.GetLatestBlockhashResult, error) {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.blockhashCalls++
	if p.blockhashErr != nil {
		return nil, p.blockhashErr
	}
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{Blockhash: p.blockhash, LastValidBlockHeight: 100},
	}, nil
}

func (p *fakeRpcConnection) SimulateTransactionWithOpts(
	ctx context.Context,
	transaction *solana.Transaction,
	opts *rpc.SimulateTransactionOpts,
) (*rpc.SimulateTransactionResponse, error) {
	p.mx.Lock()
	p.simulated = append(p.simulated, transaction)
	p.simOpts = append(p.simOpts, opts)
	attempt := len(p.simulated)
	p.mx.Unlock()
	return p.simulate(attempt)
}

func (p *fakeRpcConnection) SendTransactionWithOpts(
	ctx context.Context,
	transaction *solana.Transaction,
	opts rpc.TransactionOpts,
) (solana.Signature, error) {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.sent = append(p.sent, transaction)
	p.sendOpts = append(p.sendOpts, opts)
	if p.sendErr != nil {
		return solana.Signature{}, p.sendErr
	}
	return transaction.Signatures[0], nil
}

func (p *fakeRpcConnection) GetSignatureStatuses(
	ctx context.Context,
	searchTransactionHistory bool,
	transactionSignatures ...solana.Signature,
) (*rpc.GetSignatureStatusesResult, error) {
	p.mx.Lock()
	p.statusCalls++
	call := p.statusCalls
	p.mx.Unlock()
	return p.statuses(call)
}

func simulationResult(unitsConsumed uint64, err interface{}) *rpc.SimulateTransactionResponse {
	return &rpc.SimulateTransactionResponse{
		Value: &rpc.SimulateTransactionResult{
			Err:           err,
			UnitsConsumed: &unitsConsumed,
			Logs:          []string{"Program 11111111111111111111111111111111 invoke [1]"},
		},
	}
}

func signatureStatus(confirmationStatus rpc.ConfirmationStatusType, err interface{}) *rpc.GetSignatureStatusesResult {
	return &rpc.GetSignatureStatusesResult{
		Value: []*rpc.SignatureStatusesResult{
			{Slot: 10, Err: err, ConfirmationStatus: confirmationStatus},
		},
	}
}

type testAccounts struct {
	payer     solana.PrivateKey
	recipient solana.PublicKey
	signers   go_fusion.Signers
}

func newTestAccounts(t *testing.T) testAccounts {
	payer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return testAccounts{
		payer:     payer,
		recipient: solana.NewWallet().PublicKey(),
		signers:   go_fusion.Signers{payer},
	}
}

func (p testAccounts) transfer(lamports uint64) solana.Instruction {
	return system.NewTransferInstruction(lamports, p.payer.PublicKey(), p.recipient).Build()
}

type decodedInstruction struct {
	program solana.PublicKey
	data    []byte
}

func decodeInstructions(t *testing.T, transaction *solana.Transaction) []decodedInstruction {
	var decoded []decodedInstruction
	for _, compiled := range transaction.Message.Instructions {
		require.Less(t, int(compiled.ProgramIDIndex), len(transaction.Message.AccountKeys))
		program := transaction.Message.AccountKeys[compiled.ProgramIDIndex]
		decoded = append(decoded, decodedInstruction{program: program, data: compiled.Data})
	}
	return decoded
}

func requireComputeUnitLimit(t *testing.T, ix decodedInstruction, limit uint32) {
	require.True(t, ix.program.Equals(solana.ComputeBudget))
	require.Equal(t, byte(computebudget.Instruction_SetComputeUnitLimit), ix.data[0])
	require.Equal(t, limit, binary.LittleEndian.Uint32(ix.data[1:5]))
}

func requireComputeUnitPrice(t *testing.T, ix decodedInstruction, microLamports uint64) {
	require.True(t, ix.program.Equals(solana.ComputeBudget))
	require.Equal(t, byte(computebudget.Instruction_SetComputeUnitPrice), ix.data[0])
	require.Equal(t, microLamports, binary.LittleEndian.Uint64(ix.data[1:9]))
}

func requireTransfer(t *testing.T, ix decodedInstruction, lamports uint64) {
	require.True(t, ix.program.Equals(solana.SystemProgramID))
	require.Equal(t, system.Instruction_Transfer, binary.LittleEndian.Uint32(ix.data[0:4]))
	require.Equal(t, lamports, binary.LittleEndian.Uint64(ix.data[4:12]))
}

func requireNoComputeUnitPrice(t *testing.T, transaction *solana.Transaction) {
	for _, ix := range decodeInstructions(t, transaction) {
		if ix.program.Equals(solana.ComputeBudget) {
			require.NotEqual(t, byte(computebudget.Instruction_SetComputeUnitPrice), ix.data[0])
		}
	}
}
