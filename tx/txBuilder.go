package tx

import (
	"context"
	go_fusion "fusiongo"
	"github.com/gagliardetto/solana-go"
	addresslookuptable "github.com/gagliardetto/solana-go/programs/address-lookup-table"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/rpc"
)

// AssembleInstructions orders the final instruction list: compute unit limit, compute
// unit price, the caller instructions and the tip. The budget instructions are left out
// when their value is 0 and the tip when it is nil.
func AssembleInstructions(
	computeUnitLimit uint32,
	computeUnitPrice uint64,
	instructions []solana.Instruction,
	tipInstruction solana.Instruction,
) []solana.Instruction {
	allIx := make([]solana.Instruction, 0, len(instructions)+3)
	if computeUnitLimit > 0 {
		allIx = append(allIx, computebudget.NewSetComputeUnitLimitInstructionBuilder().SetUnits(computeUnitLimit).Build())
	}
	if computeUnitPrice > 0 {
		allIx = append(allIx, computebudget.NewSetComputeUnitPriceInstructionBuilder().SetMicroLamports(computeUnitPrice).Build())
	}
	allIx = append(allIx, instructions...)
	if tipInstruction != nil {
		allIx = append(allIx, tipInstruction)
	}
	return allIx
}

// BuildTransaction compiles ixs against blockhash and signs the result with signers.
func BuildTransaction(
	ixs []solana.Instruction,
	payer solana.PublicKey,
	signers go_fusion.Signers,
	lookupTables []addresslookuptable.KeyedAddressLookupTable,
	blockhash solana.Hash,
) (*solana.Transaction, error) {
	var addressTables = make(map[solana.PublicKey]solana.PublicKeySlice)
	for _, table := range lookupTables {
		addressTables[table.Key] = table.State.Addresses
	}
	tx, err := solana.NewTransaction(
		ixs,
		blockhash,
		solana.TransactionPayer(payer),
		solana.TransactionAddressTables(addressTables),
	)
	if err != nil {
		return nil, newSmartTxError(ErrKindCompile, err)
	}
	if err = signers.SignTransaction(tx); err != nil {
		return nil, newSmartTxError(ErrKindSigning, err)
	}
	return tx, nil
}

// GetBlockhash returns pinned when set and the latest confirmed blockhash otherwise.
func GetBlockhash(
	ctx context.Context,
	connection IRpcConnection,
	pinned *solana.Hash,
) (solana.Hash, error) {
	if pinned != nil {
		return *pinned, nil
	}
	out, err := connection.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return solana.Hash{}, newSmartTxError(ErrKindRpcClient, err)
	}
	if out == nil || out.Value == nil {
		return solana.Hash{}, newSmartTxError(ErrKindRpcClient, errEmptyBlockhash)
	}
	return out.Value.Blockhash, nil
}
