package go_fusion

import "github.com/gagliardetto/solana-go"

type Wallet struct {
	PrivateKey solana.PrivateKey
}

// CreateWalletFromKeygenFile loads a keypair written by solana-keygen.
func CreateWalletFromKeygenFile(path string) (*Wallet, error) {
	privateKey, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, err
	}
	return &Wallet{PrivateKey: privateKey}, nil
}

func (p *Wallet) GetPublicKey() solana.PublicKey {
	return p.PrivateKey.PublicKey()
}

func (p *Wallet) GetPrivateKey() solana.PrivateKey {
	return p.PrivateKey
}

// Signers is the key set a transaction is signed with.
type Signers []solana.PrivateKey

func CreateSigners(wallets ...*Wallet) Signers {
	signers := make(Signers, 0, len(wallets))
	for _, wallet := range wallets {
		signers = append(signers, wallet.PrivateKey)
	}
	return signers
}

// Get is a solana.PrivateKeyGetter over the set.
func (p Signers) Get(key solana.PublicKey) *solana.PrivateKey {
	for idx := range p {
		if p[idx].PublicKey().Equals(key) {
			return &p[idx]
		}
	}
	return nil
}

func (p Signers) PublicKeys() solana.PublicKeySlice {
	keys := make(solana.PublicKeySlice, 0, len(p))
	for _, key := range p {
		keys = append(keys, key.PublicKey())
	}
	return keys
}

// SignTransaction fills every signature the set holds a key for and fails when a
// required signer is missing.
func (p Signers) SignTransaction(tx *solana.Transaction) error {
	_, err := tx.Sign(p.Get)
	return err
}
