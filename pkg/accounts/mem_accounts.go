package accounts

import "github.com/gagliardetto/solana-go"

type MemAccounts struct {
	Map map[solana.PublicKey]*Account
}

func NewMemAccounts() MemAccounts {
	return MemAccounts{
		Map: make(map[solana.PublicKey]*Account),
	}
}

func (m MemAccounts) GetAccount(pubkey *solana.PublicKey) (*Account, error) {
	return m.Map[*pubkey], nil
}

func (m MemAccounts) SetAccount(pubkey *solana.PublicKey, acct *Account) error {
	m.Map[*pubkey] = acct
	return nil
}
