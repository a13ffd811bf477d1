package sealevel

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
)

func Test_TokenMint_RoundTrip(t *testing.T) {
	mintAuthority := solana.MustPublicKeyFromBase58("BPFLoaderUpgradeab1e11111111111111111111111")
	freezeAuthority := solana.MustPublicKeyFromBase58("Stake11111111111111111111111111111111111111")

	mint := TokenMint{MintAuthority: &mintAuthority, Supply: 123456789, Decimals: 6, IsInitialized: true, FreezeAuthority: &freezeAuthority}

	data := marshalTokenMint(&mint)
	assert.Equal(t, TokenMintSize, len(data))

	decoded, err := unmarshalTokenMint(data)
	assert.NoError(t, err)
	assert.Equal(t, &mint, decoded)
}

func Test_TokenMint_ZeroBufferIsUninitialized(t *testing.T) {
	mint, err := unmarshalTokenMint(make([]byte, TokenMintSize))
	assert.NoError(t, err)
	assert.False(t, mint.IsInitialized)
	assert.Nil(t, mint.MintAuthority)
	assert.Nil(t, mint.FreezeAuthority)
	assert.Equal(t, uint64(0), mint.Supply)
}

func Test_TokenMint_WrongLength(t *testing.T) {
	_, err := unmarshalTokenMint(make([]byte, TokenMintSize-1))
	assert.Equal(t, InstrErrInvalidAccountData, err)

	_, err = unmarshalTokenMint(make([]byte, TokenMintSize+1))
	assert.Equal(t, InstrErrInvalidAccountData, err)
}

func Test_TokenMint_InvalidOptionTag(t *testing.T) {
	data := make([]byte, TokenMintSize)
	data[0] = 2
	_, err := unmarshalTokenMint(data)
	assert.Equal(t, InstrErrInvalidAccountData, err)
}

func Test_TokenAccount_RoundTrip(t *testing.T) {
	mint := solana.MustPublicKeyFromBase58("BPFLoaderUpgradeab1e11111111111111111111111")
	owner := solana.MustPublicKeyFromBase58("Stake11111111111111111111111111111111111111")
	delegate := solana.MustPublicKeyFromBase58("Vote111111111111111111111111111111111111111")
	reserve := uint64(2039280)

	tokenAcct := TokenAccount{
		Mint: mint, Owner: owner, Amount: 42,
		Delegate: &delegate, State: TokenAccountStateInitialized,
		IsNative: &reserve, DelegatedAmount: 7, CloseAuthority: &owner,
	}

	data := marshalTokenAccount(&tokenAcct)
	assert.Equal(t, TokenAccountSize, len(data))

	decoded, err := unmarshalTokenAccount(data)
	assert.NoError(t, err)
	assert.Equal(t, &tokenAcct, decoded)
}

func Test_TokenAccount_ZeroBufferIsUninitialized(t *testing.T) {
	tokenAcct, err := unmarshalTokenAccount(make([]byte, TokenAccountSize))
	assert.NoError(t, err)
	assert.Equal(t, byte(TokenAccountStateUninitialized), tokenAcct.State)
	assert.False(t, tokenAcct.IsFrozen())
	assert.False(t, tokenAcct.IsNativeAccount())
}

func Test_TokenAccount_InvalidState(t *testing.T) {
	data := make([]byte, TokenAccountSize)
	data[108] = 3 // state byte past Frozen
	_, err := unmarshalTokenAccount(data)
	assert.Equal(t, InstrErrInvalidAccountData, err)
}

func Test_TokenAccount_WrongLength(t *testing.T) {
	_, err := unmarshalTokenAccount(make([]byte, TokenMintSize))
	assert.Equal(t, InstrErrInvalidAccountData, err)
}

func Test_TokenMultisig_RoundTrip(t *testing.T) {
	multisig := TokenMultisig{M: 2, N: 3, IsInitialized: true}
	multisig.Signers[0] = solana.MustPublicKeyFromBase58("BPFLoaderUpgradeab1e11111111111111111111111")
	multisig.Signers[1] = solana.MustPublicKeyFromBase58("Stake11111111111111111111111111111111111111")
	multisig.Signers[2] = solana.MustPublicKeyFromBase58("Vote111111111111111111111111111111111111111")

	data := marshalTokenMultisig(&multisig)
	assert.Equal(t, TokenMultisigSize, len(data))

	decoded, err := unmarshalTokenMultisig(data)
	assert.NoError(t, err)
	assert.Equal(t, &multisig, decoded)
}

func Test_TokenMultisig_WrongLength(t *testing.T) {
	_, err := unmarshalTokenMultisig(make([]byte, TokenAccountSize))
	assert.Equal(t, InstrErrInvalidAccountData, err)
}
