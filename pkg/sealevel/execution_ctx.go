package sealevel

import (
	"k8s.io/klog/v2"

	"github.com/vermeil-labs/vermeil/pkg/accounts"
	"github.com/vermeil-labs/vermeil/pkg/cu"
)

// ExecutionCtx carries everything one instruction execution needs: the
// transaction context holding the account buffers, a global account store for
// sysvar lookups, the compute meter and the program log sink.
type ExecutionCtx struct {
	Log                Logger
	Accounts           accounts.Accounts
	TransactionContext *TransactionCtx
	ComputeMeter       cu.ComputeMeter
}

// ProcessInstruction configures the next instruction context and runs it to
// completion. A failing instruction leaves an error; the caller owns any
// transaction-level rollback.
func (execCtx *ExecutionCtx) ProcessInstruction(instrData []byte, instructionAccts []InstructionAccount, programIndices []uint64) error {
	nextInstrCtx, err := execCtx.TransactionContext.NextInstructionCtx()
	if err != nil {
		return err
	}

	nextInstrCtx.Configure(programIndices, instructionAccts, instrData)

	err = execCtx.Push()
	if err != nil {
		return err
	}

	executeErr := execCtx.ExecuteInstruction()
	popErr := execCtx.Pop()

	if executeErr != nil {
		return executeErr
	}
	return popErr
}

func (execCtx *ExecutionCtx) ExecuteInstruction() error {
	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	borrowedRootAccount, err := instrCtx.BorrowProgramAccount(txCtx, 0)
	if err != nil {
		return InstrErrUnsupportedProgramId
	}

	ownerId := borrowedRootAccount.Owner()
	programKey := borrowedRootAccount.Key()
	borrowedRootAccount.Drop()

	var builtinId = ownerId
	if ownerId == NativeLoaderAddr {
		builtinId = programKey
	}

	nativeProgramFn, err := resolveNativeProgramById(builtinId)
	if err != nil {
		klog.Errorf("unrecognised builtin program %s", builtinId)
		return err
	}

	return nativeProgramFn(execCtx)
}

func (execCtx *ExecutionCtx) Push() error {
	txCtx := execCtx.TransactionContext

	traceIdx := txCtx.InstructionTraceLength()
	if traceIdx == 0 {
		return InstrErrCallDepth
	}
	instrCtx, err := txCtx.InstructionCtxAtIndexInTrace(traceIdx - 1)
	if err != nil {
		return err
	}

	programId, err := instrCtx.LastProgramKey(txCtx)
	if err != nil {
		return InstrErrUnsupportedProgramId
	}

	// reentrancy: a program already on the stack may only be re-entered
	// when it sits directly on top
	if txCtx.InstructionCtxStackHeight() != 0 {
		var contains bool
		var isLast bool
		for level := uint64(0); level < txCtx.InstructionCtxStackHeight(); level++ {
			stackedCtx, err := txCtx.InstructionCtxAtNestingLevel(level)
			if err != nil {
				continue
			}
			stackedProgramId, err := stackedCtx.LastProgramKey(txCtx)
			if err != nil {
				continue
			}
			if stackedProgramId == programId {
				contains = true
				isLast = level == txCtx.InstructionCtxStackHeight()-1
			}
		}
		if contains && !isLast {
			return InstrErrReentrancyNotAllowed
		}
	}

	return txCtx.Push()
}

func (execCtx *ExecutionCtx) Pop() error {
	return execCtx.TransactionContext.Pop()
}

func (execCtx *ExecutionCtx) StackHeight() uint64 {
	return execCtx.TransactionContext.InstructionCtxStackHeight()
}
