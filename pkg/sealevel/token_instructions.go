package sealevel

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const (
	TokenProgramInstrTypeInitializeMint = iota
	TokenProgramInstrTypeInitializeAccount
	TokenProgramInstrTypeInitializeMultisig
	TokenProgramInstrTypeTransfer
	TokenProgramInstrTypeApprove
	TokenProgramInstrTypeRevoke
	TokenProgramInstrTypeSetAuthority
	TokenProgramInstrTypeMintTo
	TokenProgramInstrTypeBurn
	TokenProgramInstrTypeCloseAccount
	TokenProgramInstrTypeInitializeAccount2
	TokenProgramInstrTypeInitializeMultisig2
	TokenProgramInstrTypeInitializeMint2
)

const (
	TokenAuthorityTypeMintTokens = iota
	TokenAuthorityTypeFreezeAccount
	TokenAuthorityTypeAccountOwner
	TokenAuthorityTypeCloseAccount
)

const (
	TokenMultisigMinSigners = 1
	TokenMultisigMaxSigners = 11
)

type TokenInstrInitializeMint struct {
	Decimals        byte
	MintAuthority   solana.PublicKey
	FreezeAuthority *solana.PublicKey
}

type TokenInstrInitializeMultisig struct {
	M byte
}

type TokenInstrTransfer struct {
	Amount uint64
}

type TokenInstrApprove struct {
	Amount uint64
}

type TokenInstrSetAuthority struct {
	AuthorityType byte
	NewAuthority  *solana.PublicKey
}

type TokenInstrMintTo struct {
	Amount uint64
}

type TokenInstrBurn struct {
	Amount uint64
}

type TokenInstrInitializeAccount2 struct {
	Owner solana.PublicKey
}

// instruction-level optional pubkey: single byte tag, key bytes present only
// when the tag is 1
func decodeInstrOptionalPubkey(decoder *bin.Decoder) (*solana.PublicKey, error) {
	tag, err := decoder.ReadByte()
	if err != nil {
		return nil, InstrErrInvalidInstructionData
	}

	switch tag {
	case 0:
		return nil, nil
	case 1:
		pkBytes, err := decoder.ReadBytes(solana.PublicKeyLength)
		if err != nil {
			return nil, InstrErrInvalidInstructionData
		}
		pk := solana.PublicKeyFromBytes(pkBytes)
		return &pk, nil
	default:
		return nil, InstrErrInvalidInstructionData
	}
}

func encodeInstrOptionalPubkey(encoder *bin.Encoder, pk *solana.PublicKey) error {
	if pk == nil {
		return encoder.WriteByte(0)
	}

	err := encoder.WriteByte(1)
	if err != nil {
		return err
	}
	return encoder.WriteBytes(pk[:], false)
}

func (instr *TokenInstrInitializeMint) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	instr.Decimals, err = decoder.ReadByte()
	if err != nil {
		return InstrErrInvalidInstructionData
	}

	mintAuthBytes, err := decoder.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return InstrErrInvalidInstructionData
	}
	instr.MintAuthority = solana.PublicKeyFromBytes(mintAuthBytes)

	instr.FreezeAuthority, err = decodeInstrOptionalPubkey(decoder)
	return err
}

func (instr *TokenInstrInitializeMint) MarshalWithEncoder(encoder *bin.Encoder) error {
	err := encoder.WriteByte(instr.Decimals)
	if err != nil {
		return err
	}

	err = encoder.WriteBytes(instr.MintAuthority[:], false)
	if err != nil {
		return err
	}

	return encodeInstrOptionalPubkey(encoder, instr.FreezeAuthority)
}

func (instr *TokenInstrInitializeMultisig) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	instr.M, err = decoder.ReadByte()
	if err != nil {
		return InstrErrInvalidInstructionData
	}
	return nil
}

func (instr *TokenInstrInitializeMultisig) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.WriteByte(instr.M)
}

func (instr *TokenInstrTransfer) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	instr.Amount, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return InstrErrInvalidInstructionData
	}
	return nil
}

func (instr *TokenInstrTransfer) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.WriteUint64(instr.Amount, bin.LE)
}

func (instr *TokenInstrApprove) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	instr.Amount, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return InstrErrInvalidInstructionData
	}
	return nil
}

func (instr *TokenInstrApprove) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.WriteUint64(instr.Amount, bin.LE)
}

func (instr *TokenInstrSetAuthority) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	instr.AuthorityType, err = decoder.ReadByte()
	if err != nil {
		return InstrErrInvalidInstructionData
	}
	if instr.AuthorityType > TokenAuthorityTypeCloseAccount {
		return InstrErrInvalidInstructionData
	}

	instr.NewAuthority, err = decodeInstrOptionalPubkey(decoder)
	return err
}

func (instr *TokenInstrSetAuthority) MarshalWithEncoder(encoder *bin.Encoder) error {
	err := encoder.WriteByte(instr.AuthorityType)
	if err != nil {
		return err
	}
	return encodeInstrOptionalPubkey(encoder, instr.NewAuthority)
}

func (instr *TokenInstrMintTo) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	instr.Amount, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return InstrErrInvalidInstructionData
	}
	return nil
}

func (instr *TokenInstrMintTo) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.WriteUint64(instr.Amount, bin.LE)
}

func (instr *TokenInstrBurn) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	instr.Amount, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return InstrErrInvalidInstructionData
	}
	return nil
}

func (instr *TokenInstrBurn) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.WriteUint64(instr.Amount, bin.LE)
}

func (instr *TokenInstrInitializeAccount2) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	ownerBytes, err := decoder.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return InstrErrInvalidInstructionData
	}
	instr.Owner = solana.PublicKeyFromBytes(ownerBytes)
	return nil
}

func (instr *TokenInstrInitializeAccount2) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.WriteBytes(instr.Owner[:], false)
}

func checkTokenProgramAccount(programId solana.PublicKey) error {
	if programId != TokenProgramAddr {
		return InstrErrIncorrectProgramId
	}
	return nil
}

func marshalTokenInstruction(instrType byte, payload bin.BinaryMarshaler) []byte {
	writer := new(bytes.Buffer)
	encoder := bin.NewBinEncoder(writer)

	err := encoder.WriteByte(instrType)
	if err != nil {
		panic("shouldn't fail")
	}

	if payload != nil {
		err = payload.MarshalWithEncoder(encoder)
		if err != nil {
			panic("shouldn't fail")
		}
	}

	return writer.Bytes()
}

func newInitializeMintInstruction(mint solana.PublicKey, decimals byte, mintAuthority solana.PublicKey, freezeAuthority *solana.PublicKey) Instruction {
	instr := TokenInstrInitializeMint{Decimals: decimals, MintAuthority: mintAuthority, FreezeAuthority: freezeAuthority}
	acctMetas := []AccountMeta{
		{Pubkey: mint, IsSigner: false, IsWritable: true},
		{Pubkey: SysvarRentAddr, IsSigner: false, IsWritable: false},
	}
	return Instruction{Accounts: acctMetas, Data: marshalTokenInstruction(TokenProgramInstrTypeInitializeMint, &instr), ProgramId: TokenProgramAddr}
}

func newInitializeMint2Instruction(mint solana.PublicKey, decimals byte, mintAuthority solana.PublicKey, freezeAuthority *solana.PublicKey) Instruction {
	instr := TokenInstrInitializeMint{Decimals: decimals, MintAuthority: mintAuthority, FreezeAuthority: freezeAuthority}
	acctMetas := []AccountMeta{
		{Pubkey: mint, IsSigner: false, IsWritable: true},
	}
	return Instruction{Accounts: acctMetas, Data: marshalTokenInstruction(TokenProgramInstrTypeInitializeMint2, &instr), ProgramId: TokenProgramAddr}
}

func newInitializeAccountInstruction(acct solana.PublicKey, mint solana.PublicKey, owner solana.PublicKey) Instruction {
	acctMetas := []AccountMeta{
		{Pubkey: acct, IsSigner: false, IsWritable: true},
		{Pubkey: mint, IsSigner: false, IsWritable: false},
		{Pubkey: owner, IsSigner: false, IsWritable: false},
		{Pubkey: SysvarRentAddr, IsSigner: false, IsWritable: false},
	}
	return Instruction{Accounts: acctMetas, Data: marshalTokenInstruction(TokenProgramInstrTypeInitializeAccount, nil), ProgramId: TokenProgramAddr}
}

func newInitializeAccount2Instruction(acct solana.PublicKey, mint solana.PublicKey, owner solana.PublicKey) Instruction {
	instr := TokenInstrInitializeAccount2{Owner: owner}
	acctMetas := []AccountMeta{
		{Pubkey: acct, IsSigner: false, IsWritable: true},
		{Pubkey: mint, IsSigner: false, IsWritable: false},
		{Pubkey: SysvarRentAddr, IsSigner: false, IsWritable: false},
	}
	return Instruction{Accounts: acctMetas, Data: marshalTokenInstruction(TokenProgramInstrTypeInitializeAccount2, &instr), ProgramId: TokenProgramAddr}
}

func newInitializeMultisigInstruction(multisig solana.PublicKey, signers []solana.PublicKey, m byte) Instruction {
	instr := TokenInstrInitializeMultisig{M: m}
	acctMetas := []AccountMeta{
		{Pubkey: multisig, IsSigner: false, IsWritable: true},
		{Pubkey: SysvarRentAddr, IsSigner: false, IsWritable: false},
	}
	for _, signer := range signers {
		acctMetas = append(acctMetas, AccountMeta{Pubkey: signer, IsSigner: false, IsWritable: false})
	}
	return Instruction{Accounts: acctMetas, Data: marshalTokenInstruction(TokenProgramInstrTypeInitializeMultisig, &instr), ProgramId: TokenProgramAddr}
}

func newInitializeMultisig2Instruction(multisig solana.PublicKey, signers []solana.PublicKey, m byte) Instruction {
	instr := TokenInstrInitializeMultisig{M: m}
	acctMetas := []AccountMeta{
		{Pubkey: multisig, IsSigner: false, IsWritable: true},
	}
	for _, signer := range signers {
		acctMetas = append(acctMetas, AccountMeta{Pubkey: signer, IsSigner: false, IsWritable: false})
	}
	return Instruction{Accounts: acctMetas, Data: marshalTokenInstruction(TokenProgramInstrTypeInitializeMultisig2, &instr), ProgramId: TokenProgramAddr}
}

func newTransferInstruction(src solana.PublicKey, dst solana.PublicKey, authority solana.PublicKey, signers []solana.PublicKey, amount uint64) Instruction {
	instr := TokenInstrTransfer{Amount: amount}
	acctMetas := []AccountMeta{
		{Pubkey: src, IsSigner: false, IsWritable: true},
		{Pubkey: dst, IsSigner: false, IsWritable: true},
		{Pubkey: authority, IsSigner: len(signers) == 0, IsWritable: false},
	}
	for _, signer := range signers {
		acctMetas = append(acctMetas, AccountMeta{Pubkey: signer, IsSigner: true, IsWritable: false})
	}
	return Instruction{Accounts: acctMetas, Data: marshalTokenInstruction(TokenProgramInstrTypeTransfer, &instr), ProgramId: TokenProgramAddr}
}

func newApproveInstruction(src solana.PublicKey, delegate solana.PublicKey, owner solana.PublicKey, signers []solana.PublicKey, amount uint64) Instruction {
	instr := TokenInstrApprove{Amount: amount}
	acctMetas := []AccountMeta{
		{Pubkey: src, IsSigner: false, IsWritable: true},
		{Pubkey: delegate, IsSigner: false, IsWritable: false},
		{Pubkey: owner, IsSigner: len(signers) == 0, IsWritable: false},
	}
	for _, signer := range signers {
		acctMetas = append(acctMetas, AccountMeta{Pubkey: signer, IsSigner: true, IsWritable: false})
	}
	return Instruction{Accounts: acctMetas, Data: marshalTokenInstruction(TokenProgramInstrTypeApprove, &instr), ProgramId: TokenProgramAddr}
}

func newRevokeInstruction(src solana.PublicKey, owner solana.PublicKey, signers []solana.PublicKey) Instruction {
	acctMetas := []AccountMeta{
		{Pubkey: src, IsSigner: false, IsWritable: true},
		{Pubkey: owner, IsSigner: len(signers) == 0, IsWritable: false},
	}
	for _, signer := range signers {
		acctMetas = append(acctMetas, AccountMeta{Pubkey: signer, IsSigner: true, IsWritable: false})
	}
	return Instruction{Accounts: acctMetas, Data: marshalTokenInstruction(TokenProgramInstrTypeRevoke, nil), ProgramId: TokenProgramAddr}
}

func newSetAuthorityInstruction(target solana.PublicKey, authorityType byte, newAuthority *solana.PublicKey, currentAuthority solana.PublicKey, signers []solana.PublicKey) Instruction {
	instr := TokenInstrSetAuthority{AuthorityType: authorityType, NewAuthority: newAuthority}
	acctMetas := []AccountMeta{
		{Pubkey: target, IsSigner: false, IsWritable: true},
		{Pubkey: currentAuthority, IsSigner: len(signers) == 0, IsWritable: false},
	}
	for _, signer := range signers {
		acctMetas = append(acctMetas, AccountMeta{Pubkey: signer, IsSigner: true, IsWritable: false})
	}
	return Instruction{Accounts: acctMetas, Data: marshalTokenInstruction(TokenProgramInstrTypeSetAuthority, &instr), ProgramId: TokenProgramAddr}
}

func newMintToInstruction(mint solana.PublicKey, dst solana.PublicKey, mintAuthority solana.PublicKey, signers []solana.PublicKey, amount uint64) Instruction {
	instr := TokenInstrMintTo{Amount: amount}
	acctMetas := []AccountMeta{
		{Pubkey: mint, IsSigner: false, IsWritable: true},
		{Pubkey: dst, IsSigner: false, IsWritable: true},
		{Pubkey: mintAuthority, IsSigner: len(signers) == 0, IsWritable: false},
	}
	for _, signer := range signers {
		acctMetas = append(acctMetas, AccountMeta{Pubkey: signer, IsSigner: true, IsWritable: false})
	}
	return Instruction{Accounts: acctMetas, Data: marshalTokenInstruction(TokenProgramInstrTypeMintTo, &instr), ProgramId: TokenProgramAddr}
}

func newBurnInstruction(src solana.PublicKey, mint solana.PublicKey, authority solana.PublicKey, signers []solana.PublicKey, amount uint64) Instruction {
	instr := TokenInstrBurn{Amount: amount}
	acctMetas := []AccountMeta{
		{Pubkey: src, IsSigner: false, IsWritable: true},
		{Pubkey: mint, IsSigner: false, IsWritable: true},
		{Pubkey: authority, IsSigner: len(signers) == 0, IsWritable: false},
	}
	for _, signer := range signers {
		acctMetas = append(acctMetas, AccountMeta{Pubkey: signer, IsSigner: true, IsWritable: false})
	}
	return Instruction{Accounts: acctMetas, Data: marshalTokenInstruction(TokenProgramInstrTypeBurn, &instr), ProgramId: TokenProgramAddr}
}

func newCloseAccountInstruction(src solana.PublicKey, dst solana.PublicKey, authority solana.PublicKey, signers []solana.PublicKey) Instruction {
	acctMetas := []AccountMeta{
		{Pubkey: src, IsSigner: false, IsWritable: true},
		{Pubkey: dst, IsSigner: false, IsWritable: true},
		{Pubkey: authority, IsSigner: len(signers) == 0, IsWritable: false},
	}
	for _, signer := range signers {
		acctMetas = append(acctMetas, AccountMeta{Pubkey: signer, IsSigner: true, IsWritable: false})
	}
	return Instruction{Accounts: acctMetas, Data: marshalTokenInstruction(TokenProgramInstrTypeCloseAccount, nil), ProgramId: TokenProgramAddr}
}
