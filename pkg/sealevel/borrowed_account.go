package sealevel

import (
	"github.com/gagliardetto/solana-go"

	"github.com/vermeil-labs/vermeil/pkg/accounts"
	"github.com/vermeil-labs/vermeil/pkg/safemath"
)

// BorrowedAccount grants access to one transaction account for the duration
// of the current instruction. The borrow is exclusive; it must be released
// with Drop before the same account can be borrowed again.
type BorrowedAccount struct {
	TxCtx              *TransactionCtx
	InstrCtx           *InstructionCtx
	IndexInTransaction uint64
	IndexInInstruction uint64
	Account            *accounts.Account
	dropped            bool
}

func (acct *BorrowedAccount) Drop() {
	if acct.dropped {
		return
	}
	acct.dropped = true
	acct.TxCtx.Accounts.Unlock(acct.IndexInTransaction)
}

func (acct *BorrowedAccount) Key() solana.PublicKey {
	key, err := acct.TxCtx.KeyOfAccountAtIndex(acct.IndexInTransaction)
	if err != nil {
		panic("account index valid at borrow time")
	}
	return key
}

func (acct *BorrowedAccount) Owner() solana.PublicKey {
	return acct.Account.Owner
}

func (acct *BorrowedAccount) Data() []byte {
	return acct.Account.Data
}

func (acct *BorrowedAccount) Lamports() uint64 {
	return acct.Account.Lamports
}

func (acct *BorrowedAccount) IsExecutable() bool {
	return acct.Account.Executable
}

func (acct *BorrowedAccount) Touch() error {
	return acct.TxCtx.Accounts.Touch(acct.IndexInTransaction)
}

func (acct *BorrowedAccount) IsSigner() bool {
	instrCtx := acct.InstrCtx
	if acct.IndexInInstruction < instrCtx.NumberOfProgramAccounts() {
		return false
	}

	instrAcctIdx := safemath.SaturatingSubU64(acct.IndexInInstruction, instrCtx.NumberOfProgramAccounts())
	isSigner, err := instrCtx.IsInstructionAccountSigner(instrAcctIdx)
	if err != nil {
		return false
	}
	return isSigner
}

func (acct *BorrowedAccount) IsWritable() bool {
	instrCtx := acct.InstrCtx
	if acct.IndexInInstruction < instrCtx.NumberOfProgramAccounts() {
		return false
	}

	instrAcctIdx := safemath.SaturatingSubU64(acct.IndexInInstruction, instrCtx.NumberOfProgramAccounts())
	writable, err := instrCtx.IsInstructionAccountWritable(instrAcctIdx)
	if err != nil {
		return false
	}
	return writable
}

func (acct *BorrowedAccount) IsOwnedByCurrentProgram() bool {
	lastProgramKey, err := acct.InstrCtx.LastProgramKey(acct.TxCtx)
	if err != nil {
		return false
	}
	return lastProgramKey == acct.Owner()
}

func (acct *BorrowedAccount) DataCanBeChanged() error {
	if acct.IsExecutable() {
		return InstrErrExecutableDataModified
	}
	if !acct.IsWritable() {
		return InstrErrReadonlyDataModified
	}
	if !acct.IsOwnedByCurrentProgram() {
		return InstrErrExternalAccountDataModified
	}
	return nil
}

func (acct *BorrowedAccount) SetData(data []byte) error {
	if err := acct.DataCanBeChanged(); err != nil {
		return err
	}
	if err := acct.Touch(); err != nil {
		return err
	}

	acct.Account.SetData(data)
	return nil
}

func (acct *BorrowedAccount) lamportsCanBeChanged(newLamports uint64) error {
	if acct.IsExecutable() {
		return InstrErrExecutableLamportChange
	}
	if !acct.IsWritable() {
		return InstrErrReadonlyLamportChange
	}
	if !acct.IsOwnedByCurrentProgram() && newLamports < acct.Lamports() {
		return InstrErrExternalAccountLamportSpend
	}
	return nil
}

func (acct *BorrowedAccount) SetLamports(lamports uint64) error {
	if err := acct.lamportsCanBeChanged(lamports); err != nil {
		return err
	}
	if err := acct.Touch(); err != nil {
		return err
	}

	acct.Account.Lamports = lamports
	return nil
}

func (acct *BorrowedAccount) CheckedAddLamports(lamports uint64) error {
	newLamports, err := safemath.CheckedAddU64(acct.Lamports(), lamports)
	if err != nil {
		return InstrErrArithmeticOverflow
	}
	return acct.SetLamports(newLamports)
}

func (acct *BorrowedAccount) CheckedSubLamports(lamports uint64) error {
	newLamports, err := safemath.CheckedSubU64(acct.Lamports(), lamports)
	if err != nil {
		return InstrErrInsufficientFunds
	}
	return acct.SetLamports(newLamports)
}
