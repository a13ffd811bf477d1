package sealevel

import (
	"github.com/gagliardetto/solana-go"

	"github.com/vermeil-labs/vermeil/pkg/accounts"
)

// TransactionAccounts holds the accounts a transaction operates on, along
// with per-account touch and borrow bookkeeping.
type TransactionAccounts struct {
	Accounts []*accounts.Account
	Touched  []bool
	borrowed []bool
}

func NewTransactionAccounts(accts []accounts.Account) *TransactionAccounts {
	txAccounts := &TransactionAccounts{
		Accounts: make([]*accounts.Account, 0, len(accts)),
		Touched:  make([]bool, len(accts)),
		borrowed: make([]bool, len(accts)),
	}

	for i := range accts {
		acct := accts[i]
		txAccounts.Accounts = append(txAccounts.Accounts, &acct)
	}

	return txAccounts
}

func (txAccounts *TransactionAccounts) Len() uint64 {
	return uint64(len(txAccounts.Accounts))
}

func (txAccounts *TransactionAccounts) GetAccount(idx uint64) (*accounts.Account, error) {
	if idx >= txAccounts.Len() {
		return nil, InstrErrNotEnoughAccountKeys
	}
	return txAccounts.Accounts[idx], nil
}

func (txAccounts *TransactionAccounts) Touch(idx uint64) error {
	if idx >= txAccounts.Len() {
		return InstrErrNotEnoughAccountKeys
	}
	txAccounts.Touched[idx] = true
	return nil
}

func (txAccounts *TransactionAccounts) Lock(idx uint64) error {
	if idx >= txAccounts.Len() {
		return InstrErrNotEnoughAccountKeys
	}
	if txAccounts.borrowed[idx] {
		return InstrErrAccountBorrowOutstanding
	}
	txAccounts.borrowed[idx] = true
	return nil
}

func (txAccounts *TransactionAccounts) Unlock(idx uint64) {
	if idx < txAccounts.Len() {
		txAccounts.borrowed[idx] = false
	}
}

type TransactionCtx struct {
	Accounts                  TransactionAccounts
	AccountKeys               []solana.PublicKey
	instructionStack          []uint64
	instructionTrace          []*InstructionCtx
	maxInstructionStackHeight uint64
	maxInstructionTraceLength uint64
}

func NewTestTransactionCtx(txAccounts TransactionAccounts, maxStackHeight uint64, maxTraceLength uint64) *TransactionCtx {
	txCtx := &TransactionCtx{
		Accounts:                  txAccounts,
		maxInstructionStackHeight: maxStackHeight,
		maxInstructionTraceLength: maxTraceLength,
	}

	for _, acct := range txAccounts.Accounts {
		txCtx.AccountKeys = append(txCtx.AccountKeys, acct.Key)
	}

	return txCtx
}

func (txCtx *TransactionCtx) KeyOfAccountAtIndex(idx uint64) (solana.PublicKey, error) {
	if idx >= uint64(len(txCtx.AccountKeys)) {
		return solana.PublicKey{}, InstrErrNotEnoughAccountKeys
	}
	return txCtx.AccountKeys[idx], nil
}

func (txCtx *TransactionCtx) AccountAtIndex(idx uint64) (*accounts.Account, error) {
	return txCtx.Accounts.GetAccount(idx)
}

func (txCtx *TransactionCtx) InstructionCtxStackHeight() uint64 {
	return uint64(len(txCtx.instructionStack))
}

func (txCtx *TransactionCtx) InstructionTraceLength() uint64 {
	return uint64(len(txCtx.instructionTrace))
}

func (txCtx *TransactionCtx) CurrentInstructionCtx() (*InstructionCtx, error) {
	height := txCtx.InstructionCtxStackHeight()
	if height == 0 {
		return nil, InstrErrCallDepth
	}
	return txCtx.InstructionCtxAtNestingLevel(height - 1)
}

func (txCtx *TransactionCtx) InstructionCtxAtNestingLevel(level uint64) (*InstructionCtx, error) {
	if level >= txCtx.InstructionCtxStackHeight() {
		return nil, InstrErrCallDepth
	}
	return txCtx.instructionTrace[txCtx.instructionStack[level]], nil
}

func (txCtx *TransactionCtx) InstructionCtxAtIndexInTrace(idx uint64) (*InstructionCtx, error) {
	if idx >= txCtx.InstructionTraceLength() {
		return nil, InstrErrCallDepth
	}
	return txCtx.instructionTrace[idx], nil
}

// NextInstructionCtx appends a fresh instruction context to the trace. The
// context becomes current once Push succeeds.
func (txCtx *TransactionCtx) NextInstructionCtx() (*InstructionCtx, error) {
	if txCtx.InstructionTraceLength() >= txCtx.maxInstructionTraceLength {
		return nil, InstrErrMaxInstructionTraceLengthExceeded
	}
	instrCtx := new(InstructionCtx)
	txCtx.instructionTrace = append(txCtx.instructionTrace, instrCtx)
	return instrCtx, nil
}

func (txCtx *TransactionCtx) Push() error {
	if txCtx.InstructionTraceLength() == 0 {
		return InstrErrCallDepth
	}
	if txCtx.InstructionCtxStackHeight() >= txCtx.maxInstructionStackHeight {
		return InstrErrCallDepth
	}
	txCtx.instructionStack = append(txCtx.instructionStack, txCtx.InstructionTraceLength()-1)
	return nil
}

func (txCtx *TransactionCtx) Pop() error {
	if txCtx.InstructionCtxStackHeight() == 0 {
		return InstrErrCallDepth
	}
	txCtx.instructionStack = txCtx.instructionStack[:len(txCtx.instructionStack)-1]
	return nil
}
