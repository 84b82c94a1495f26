package priorityFee

import (
	"context"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// getRecentPrioritizationFees accepts at most this many accounts.
const MAX_PRIORITIZATION_FEE_ACCOUNTS = 128

// IPriorityFeeConnection is the slice of *rpc.Client the fee estimator needs.
type IPriorityFeeConnection interface {
	GetRecentPrioritizationFees(
		ctx context.Context,
		accounts solana.PublicKeySlice,
	) ([]rpc.PriorizationFeeResult, error)
}

// GetRecentPrioritizationFees returns a list of prioritization fees from recent blocks.
// Currently, a node's prioritization-fee cache stores data from up to 150 blocks.
func GetRecentPrioritizationFees(
	ctx context.Context,
	connection IPriorityFeeConnection,
	accounts solana.PublicKeySlice,
) ([]rpc.PriorizationFeeResult, error) {
	return connection.GetRecentPrioritizationFees(ctx, UniqueAccounts(accounts))
}

// UniqueAccounts drops duplicate keys, keeping first-seen order, and truncates the list
// to MAX_PRIORITIZATION_FEE_ACCOUNTS.
func UniqueAccounts(accounts solana.PublicKeySlice) solana.PublicKeySlice {
	seen := make(map[solana.PublicKey]struct{}, len(accounts))
	unique := make(solana.PublicKeySlice, 0, len(accounts))
	for _, account := range accounts {
		if _, exists := seen[account]; exists {
			continue
		}
		seen[account] = struct{}{}
		unique = append(unique, account)
		if len(unique) == MAX_PRIORITIZATION_FEE_ACCOUNTS {
			break
		}
	}
	return unique
}

// InstructionAccounts collects every account and program id referenced by ixs.
func InstructionAccounts(ixs []solana.Instruction) solana.PublicKeySlice {
	var accounts solana.PublicKeySlice
	for _, ix := range ixs {
		for _, meta := range ix.Accounts() {
			accounts = append(accounts, meta.PublicKey)
		}
	}
	for _, ix := range ixs {
		accounts = append(accounts, ix.ProgramID())
	}
	return accounts
}
