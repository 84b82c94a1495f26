package jito

import (
	"fusiongo/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// Smallest tip the block engine accepts for a bundle.
const MIN_JITO_TIP_LAMPORTS = uint64(1000)

var JitoTipAccounts = []solana.PublicKey{
	solana.MustPublicKeyFromBase58("96gYZGLnJYVFmbjzopPSU6QiEV5fGqZNyN9nmNhvrZU5"),
	solana.MustPublicKeyFromBase58("HFqU5x63VTqvQss8hp11i4wVV8bD44PvwucfZ2bU7gRe"),
	solana.MustPublicKeyFromBase58("Cw8CFyM9FkoMi7K7Crf6HNQqf4uEMzpKw6QNghXLvLkY"),
	solana.MustPublicKeyFromBase58("ADaUMid9yfUytqMBgopwjb2DTLSokTSzL1zt6iGPaS49"),
	solana.MustPublicKeyFromBase58("DfXygSm4jCyNCybVYYK6DwvWqjKee8pbDmJGcLWNDXjh"),
	solana.MustPublicKeyFromBase58("ADuUkR4vqLUMWXxW9gh6D6L8pMSawimctcNZ5pGwDcEt"),
	solana.MustPublicKeyFromBase58("DttWaMuVvTiduZRnguLF7jNxTgiMBZ1hyAumKUiL2KRL"),
}

func IsTipAccount(account solana.PublicKey) bool {
	for _, tipAccount := range JitoTipAccounts {
		if tipAccount.Equals(account) {
			return true
		}
	}
	return false
}

func GetTipAmount(tips uint64) uint64 {
	return max(tips, MIN_JITO_TIP_LAMPORTS)
}

// CreateTipInstruction transfers max(tips, MIN_JITO_TIP_LAMPORTS) from payer to a
// randomly picked tip account.
func CreateTipInstruction(payer solana.PublicKey, tips uint64) solana.Instruction {
	return system.NewTransferInstruction(
		GetTipAmount(tips),
		payer,
		utils.RandomElement(JitoTipAccounts),
	).Build()
}
