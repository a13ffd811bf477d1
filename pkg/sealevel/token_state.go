package sealevel

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const (
	TokenMintSize     = 82
	TokenAccountSize  = 165
	TokenMultisigSize = 355
)

const (
	TokenAccountStateUninitialized = iota
	TokenAccountStateInitialized
	TokenAccountStateFrozen
)

// TokenMint is the on-chain representation of a token mint.
type TokenMint struct {
	MintAuthority   *solana.PublicKey
	Supply          uint64
	Decimals        byte
	IsInitialized   bool
	FreezeAuthority *solana.PublicKey
}

// TokenAccount is the on-chain representation of a token holding account.
type TokenAccount struct {
	Mint            solana.PublicKey
	Owner           solana.PublicKey
	Amount          uint64
	Delegate        *solana.PublicKey
	State           byte
	IsNative        *uint64
	DelegatedAmount uint64
	CloseAuthority  *solana.PublicKey
}

// TokenMultisig is the on-chain representation of a multisignature authority.
type TokenMultisig struct {
	M             byte
	N             byte
	IsInitialized bool
	Signers       [TokenMultisigMaxSigners]solana.PublicKey
}

// state-level COption<Pubkey>: 4 byte LE tag followed by 32 bytes
func decodeStateOptionalPubkey(decoder *bin.Decoder) (*solana.PublicKey, error) {
	tag, err := decoder.ReadUint32(bin.LE)
	if err != nil {
		return nil, InstrErrInvalidAccountData
	}

	pkBytes, err := decoder.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return nil, InstrErrInvalidAccountData
	}

	switch tag {
	case 0:
		return nil, nil
	case 1:
		pk := solana.PublicKeyFromBytes(pkBytes)
		return &pk, nil
	default:
		return nil, InstrErrInvalidAccountData
	}
}

func encodeStateOptionalPubkey(encoder *bin.Encoder, pk *solana.PublicKey) error {
	if pk == nil {
		err := encoder.WriteUint32(0, bin.LE)
		if err != nil {
			return err
		}
		var zero solana.PublicKey
		return encoder.WriteBytes(zero[:], false)
	}

	err := encoder.WriteUint32(1, bin.LE)
	if err != nil {
		return err
	}
	return encoder.WriteBytes(pk[:], false)
}

func (mint *TokenMint) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	if decoder.Remaining() != TokenMintSize {
		return InstrErrInvalidAccountData
	}

	mintAuthority, err := decodeStateOptionalPubkey(decoder)
	if err != nil {
		return err
	}
	mint.MintAuthority = mintAuthority

	mint.Supply, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return InstrErrInvalidAccountData
	}

	mint.Decimals, err = decoder.ReadByte()
	if err != nil {
		return InstrErrInvalidAccountData
	}

	isInitialized, err := decoder.ReadByte()
	if err != nil {
		return InstrErrInvalidAccountData
	}
	switch isInitialized {
	case 0:
		mint.IsInitialized = false
	case 1:
		mint.IsInitialized = true
	default:
		return InstrErrInvalidAccountData
	}

	mint.FreezeAuthority, err = decodeStateOptionalPubkey(decoder)
	return err
}

func (mint *TokenMint) MarshalWithEncoder(encoder *bin.Encoder) error {
	err := encodeStateOptionalPubkey(encoder, mint.MintAuthority)
	if err != nil {
		return err
	}

	err = encoder.WriteUint64(mint.Supply, bin.LE)
	if err != nil {
		return err
	}

	err = encoder.WriteByte(mint.Decimals)
	if err != nil {
		return err
	}

	if mint.IsInitialized {
		err = encoder.WriteByte(1)
	} else {
		err = encoder.WriteByte(0)
	}
	if err != nil {
		return err
	}

	return encodeStateOptionalPubkey(encoder, mint.FreezeAuthority)
}

func (acct *TokenAccount) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	if decoder.Remaining() != TokenAccountSize {
		return InstrErrInvalidAccountData
	}

	mintBytes, err := decoder.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return InstrErrInvalidAccountData
	}
	acct.Mint = solana.PublicKeyFromBytes(mintBytes)

	ownerBytes, err := decoder.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return InstrErrInvalidAccountData
	}
	acct.Owner = solana.PublicKeyFromBytes(ownerBytes)

	acct.Amount, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return InstrErrInvalidAccountData
	}

	acct.Delegate, err = decodeStateOptionalPubkey(decoder)
	if err != nil {
		return err
	}

	acct.State, err = decoder.ReadByte()
	if err != nil {
		return InstrErrInvalidAccountData
	}
	if acct.State > TokenAccountStateFrozen {
		return InstrErrInvalidAccountData
	}

	isNativeTag, err := decoder.ReadUint32(bin.LE)
	if err != nil {
		return InstrErrInvalidAccountData
	}
	isNativeValue, err := decoder.ReadUint64(bin.LE)
	if err != nil {
		return InstrErrInvalidAccountData
	}
	switch isNativeTag {
	case 0:
		acct.IsNative = nil
	case 1:
		acct.IsNative = &isNativeValue
	default:
		return InstrErrInvalidAccountData
	}

	acct.DelegatedAmount, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return InstrErrInvalidAccountData
	}

	acct.CloseAuthority, err = decodeStateOptionalPubkey(decoder)
	return err
}

func (acct *TokenAccount) MarshalWithEncoder(encoder *bin.Encoder) error {
	err := encoder.WriteBytes(acct.Mint[:], false)
	if err != nil {
		return err
	}

	err = encoder.WriteBytes(acct.Owner[:], false)
	if err != nil {
		return err
	}

	err = encoder.WriteUint64(acct.Amount, bin.LE)
	if err != nil {
		return err
	}

	err = encodeStateOptionalPubkey(encoder, acct.Delegate)
	if err != nil {
		return err
	}

	err = encoder.WriteByte(acct.State)
	if err != nil {
		return err
	}

	if acct.IsNative != nil {
		err = encoder.WriteUint32(1, bin.LE)
		if err != nil {
			return err
		}
		err = encoder.WriteUint64(*acct.IsNative, bin.LE)
	} else {
		err = encoder.WriteUint32(0, bin.LE)
		if err != nil {
			return err
		}
		err = encoder.WriteUint64(0, bin.LE)
	}
	if err != nil {
		return err
	}

	err = encoder.WriteUint64(acct.DelegatedAmount, bin.LE)
	if err != nil {
		return err
	}

	return encodeStateOptionalPubkey(encoder, acct.CloseAuthority)
}

func (acct *TokenAccount) IsFrozen() bool {
	return acct.State == TokenAccountStateFrozen
}

func (acct *TokenAccount) IsNativeAccount() bool {
	return acct.IsNative != nil
}

func (multisig *TokenMultisig) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	if decoder.Remaining() != TokenMultisigSize {
		return InstrErrInvalidAccountData
	}

	var err error
	multisig.M, err = decoder.ReadByte()
	if err != nil {
		return InstrErrInvalidAccountData
	}

	multisig.N, err = decoder.ReadByte()
	if err != nil {
		return InstrErrInvalidAccountData
	}

	isInitialized, err := decoder.ReadByte()
	if err != nil {
		return InstrErrInvalidAccountData
	}
	switch isInitialized {
	case 0:
		multisig.IsInitialized = false
	case 1:
		multisig.IsInitialized = true
	default:
		return InstrErrInvalidAccountData
	}

	for idx := 0; idx < TokenMultisigMaxSigners; idx++ {
		signerBytes, err := decoder.ReadBytes(solana.PublicKeyLength)
		if err != nil {
			return InstrErrInvalidAccountData
		}
		multisig.Signers[idx] = solana.PublicKeyFromBytes(signerBytes)
	}

	return nil
}

func (multisig *TokenMultisig) MarshalWithEncoder(encoder *bin.Encoder) error {
	err := encoder.WriteByte(multisig.M)
	if err != nil {
		return err
	}

	err = encoder.WriteByte(multisig.N)
	if err != nil {
		return err
	}

	if multisig.IsInitialized {
		err = encoder.WriteByte(1)
	} else {
		err = encoder.WriteByte(0)
	}
	if err != nil {
		return err
	}

	for idx := 0; idx < TokenMultisigMaxSigners; idx++ {
		err = encoder.WriteBytes(multisig.Signers[idx][:], false)
		if err != nil {
			return err
		}
	}

	return nil
}

func unmarshalTokenMint(data []byte) (*TokenMint, error) {
	mint := new(TokenMint)
	decoder := bin.NewBinDecoder(data)
	err := mint.UnmarshalWithDecoder(decoder)
	if err != nil {
		return nil, err
	}
	return mint, nil
}

func marshalTokenMint(mint *TokenMint) []byte {
	writer := new(bytes.Buffer)
	encoder := bin.NewBinEncoder(writer)
	err := mint.MarshalWithEncoder(encoder)
	if err != nil {
		panic("shouldn't fail")
	}
	return writer.Bytes()
}

func marshalTokenAccount(acct *TokenAccount) []byte {
	writer := new(bytes.Buffer)
	encoder := bin.NewBinEncoder(writer)
	err := acct.MarshalWithEncoder(encoder)
	if err != nil {
		panic("shouldn't fail")
	}
	return writer.Bytes()
}

func marshalTokenMultisig(multisig *TokenMultisig) []byte {
	writer := new(bytes.Buffer)
	encoder := bin.NewBinEncoder(writer)
	err := multisig.MarshalWithEncoder(encoder)
	if err != nil {
		panic("shouldn't fail")
	}
	return writer.Bytes()
}

func unmarshalTokenAccount(data []byte) (*TokenAccount, error) {
	acct := new(TokenAccount)
	decoder := bin.NewBinDecoder(data)
	err := acct.UnmarshalWithDecoder(decoder)
	if err != nil {
		return nil, err
	}
	return acct, nil
}

func unmarshalTokenMultisig(data []byte) (*TokenMultisig, error) {
	multisig := new(TokenMultisig)
	decoder := bin.NewBinDecoder(data)
	err := multisig.UnmarshalWithDecoder(decoder)
	if err != nil {
		return nil, err
	}
	return multisig, nil
}
