package sealevel

import (
	"github.com/gagliardetto/solana-go"

	"github.com/vermeil-labs/vermeil/pkg/safemath"
)

// Instruction is one instruction as submitted by a caller: the program to
// invoke, the accounts it touches, and the opaque instruction data.
type Instruction struct {
	Accounts  []AccountMeta
	Data      []byte
	ProgramId solana.PublicKey
}

type AccountMeta struct {
	Pubkey     solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

// InstructionAccount describes one account of an instruction in terms of
// transaction-level indices plus the privileges granted for this call.
type InstructionAccount struct {
	IndexInTransaction uint64
	IndexInCaller      uint64
	IndexInCallee      uint64
	IsSigner           bool
	IsWritable         bool
}

type InstructionCtx struct {
	ProgramAccounts     []uint64
	InstructionAccounts []InstructionAccount
	Data                []byte
}

func (instrCtx *InstructionCtx) Configure(programIndices []uint64, instrAccts []InstructionAccount, data []byte) {
	instrCtx.ProgramAccounts = programIndices
	instrCtx.InstructionAccounts = instrAccts
	instrCtx.Data = data
}

func (instrCtx *InstructionCtx) NumberOfProgramAccounts() uint64 {
	return uint64(len(instrCtx.ProgramAccounts))
}

func (instrCtx *InstructionCtx) NumberOfInstructionAccounts() uint64 {
	return uint64(len(instrCtx.InstructionAccounts))
}

func (instrCtx *InstructionCtx) CheckNumOfInstructionAccounts(num uint64) error {
	if instrCtx.NumberOfInstructionAccounts() < num {
		return InstrErrNotEnoughAccountKeys
	}
	return nil
}

func (instrCtx *InstructionCtx) IndexOfProgramAccountInTransaction(programAcctIdx uint64) (uint64, error) {
	if programAcctIdx >= instrCtx.NumberOfProgramAccounts() {
		return 0, InstrErrNotEnoughAccountKeys
	}
	return instrCtx.ProgramAccounts[programAcctIdx], nil
}

func (instrCtx *InstructionCtx) IndexOfInstructionAccountInTransaction(instrAcctIdx uint64) (uint64, error) {
	if instrAcctIdx >= instrCtx.NumberOfInstructionAccounts() {
		return 0, InstrErrNotEnoughAccountKeys
	}
	return instrCtx.InstructionAccounts[instrAcctIdx].IndexInTransaction, nil
}

func (instrCtx *InstructionCtx) IsInstructionAccountSigner(instrAcctIdx uint64) (bool, error) {
	if instrAcctIdx >= instrCtx.NumberOfInstructionAccounts() {
		return false, InstrErrNotEnoughAccountKeys
	}
	return instrCtx.InstructionAccounts[instrAcctIdx].IsSigner, nil
}

func (instrCtx *InstructionCtx) IsInstructionAccountWritable(instrAcctIdx uint64) (bool, error) {
	if instrAcctIdx >= instrCtx.NumberOfInstructionAccounts() {
		return false, InstrErrNotEnoughAccountKeys
	}
	return instrCtx.InstructionAccounts[instrAcctIdx].IsWritable, nil
}

func (instrCtx *InstructionCtx) KeyOfInstructionAccount(txCtx *TransactionCtx, instrAcctIdx uint64) (solana.PublicKey, error) {
	idxInTx, err := instrCtx.IndexOfInstructionAccountInTransaction(instrAcctIdx)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return txCtx.KeyOfAccountAtIndex(idxInTx)
}

func (instrCtx *InstructionCtx) LastProgramKey(txCtx *TransactionCtx) (solana.PublicKey, error) {
	programAcctIdx := safemath.SaturatingSubU64(instrCtx.NumberOfProgramAccounts(), 1)

	idx, err := instrCtx.IndexOfProgramAccountInTransaction(programAcctIdx)
	if err != nil {
		return solana.PublicKey{}, err
	}

	return txCtx.KeyOfAccountAtIndex(idx)
}

func (instrCtx *InstructionCtx) BorrowInstructionAccount(txCtx *TransactionCtx, instrAcctIdx uint64) (*BorrowedAccount, error) {
	idxInTx, err := instrCtx.IndexOfInstructionAccountInTransaction(instrAcctIdx)
	if err != nil {
		return nil, err
	}
	return instrCtx.borrowAccount(txCtx, idxInTx, instrCtx.NumberOfProgramAccounts()+instrAcctIdx)
}

func (instrCtx *InstructionCtx) BorrowProgramAccount(txCtx *TransactionCtx, programAcctIdx uint64) (*BorrowedAccount, error) {
	idxInTx, err := instrCtx.IndexOfProgramAccountInTransaction(programAcctIdx)
	if err != nil {
		return nil, err
	}
	return instrCtx.borrowAccount(txCtx, idxInTx, programAcctIdx)
}

func (instrCtx *InstructionCtx) borrowAccount(txCtx *TransactionCtx, idxInTx uint64, idxInInstr uint64) (*BorrowedAccount, error) {
	acct, err := txCtx.Accounts.GetAccount(idxInTx)
	if err != nil {
		return nil, err
	}
	if err = txCtx.Accounts.Lock(idxInTx); err != nil {
		return nil, err
	}

	return &BorrowedAccount{
		TxCtx:              txCtx,
		InstrCtx:           instrCtx,
		IndexInTransaction: idxInTx,
		IndexInInstruction: idxInInstr,
		Account:            acct,
	}, nil
}
