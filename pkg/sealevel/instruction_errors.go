package sealevel

import "errors"

// instruction errors
var (
	InstrErrInvalidArgument                   = errors.New("InstrErrInvalidArgument")
	InstrErrInvalidInstructionData            = errors.New("InstrErrInvalidInstructionData")
	InstrErrInvalidAccountData                = errors.New("InstrErrInvalidAccountData")
	InstrErrInsufficientFunds                 = errors.New("InstrErrInsufficientFunds")
	InstrErrIncorrectProgramId                = errors.New("InstrErrIncorrectProgramId")
	InstrErrMissingRequiredSignature          = errors.New("InstrErrMissingRequiredSignature")
	InstrErrAccountAlreadyInitialized         = errors.New("InstrErrAccountAlreadyInitialized")
	InstrErrUninitializedAccount              = errors.New("InstrErrUninitializedAccount")
	InstrErrExternalAccountLamportSpend       = errors.New("InstrErrExternalAccountLamportSpend")
	InstrErrExternalAccountDataModified       = errors.New("InstrErrExternalAccountDataModified")
	InstrErrReadonlyLamportChange             = errors.New("InstrErrReadonlyLamportChange")
	InstrErrReadonlyDataModified              = errors.New("InstrErrReadonlyDataModified")
	InstrErrNotEnoughAccountKeys              = errors.New("InstrErrNotEnoughAccountKeys")
	InstrErrExecutableDataModified            = errors.New("InstrErrExecutableDataModified")
	InstrErrExecutableLamportChange           = errors.New("InstrErrExecutableLamportChange")
	InstrErrCallDepth                         = errors.New("InstrErrCallDepth")
	InstrErrMissingAccount                    = errors.New("InstrErrMissingAccount")
	InstrErrComputationalBudgetExceeded       = errors.New("InstrErrComputationalBudgetExceeded")
	InstrErrPrivilegeEscalation               = errors.New("InstrErrPrivilegeEscalation")
	InstrErrAccountNotExecutable              = errors.New("InstrErrAccountNotExecutable")
	InstrErrAccountBorrowOutstanding          = errors.New("InstrErrAccountBorrowOutstanding")
	InstrErrInvalidAccountOwner               = errors.New("InstrErrInvalidAccountOwner")
	InstrErrArithmeticOverflow                = errors.New("InstrErrArithmeticOverflow")
	InstrErrUnsupportedProgramId              = errors.New("InstrErrUnsupportedProgramId")
	InstrErrReentrancyNotAllowed              = errors.New("InstrErrReentrancyNotAllowed")
	InstrErrMaxInstructionTraceLengthExceeded = errors.New("InstrErrMaxInstructionTraceLengthExceeded")
)

// generic numerical error codes understood by the host
const (
	InstrErrCodeSuccess                     = 0
	InstrErrCodeInvalidArgument             = 2
	InstrErrCodeInvalidInstructionData      = 3
	InstrErrCodeInvalidAccountData          = 4
	InstrErrCodeInsufficientFunds           = 6
	InstrErrCodeIncorrectProgramId          = 7
	InstrErrCodeMissingRequiredSignature    = 8
	InstrErrCodeAccountAlreadyInitialized   = 9
	InstrErrCodeUninitializedAccount        = 10
	InstrErrCodeExternalAccountDataModified = 14
	InstrErrCodeReadonlyDataModified        = 16
	InstrErrCodeNotEnoughAccountKeys        = 20
	InstrErrCodeExecutableDataModified      = 28
	InstrErrCodeMissingAccount              = 33
	InstrErrCodeComputationalBudgetExceeded = 38
	InstrErrCodeInvalidAccountOwner         = 47
	InstrErrCodeArithmeticOverflow          = 48
)

// TranslateErrToInstrErrCode maps an instruction error to the generic
// numerical code space shared with the host.
func TranslateErrToInstrErrCode(err error) int {
	var errorCode int
	switch err {
	case InstrErrInvalidArgument:
		errorCode = InstrErrCodeInvalidArgument
	case InstrErrInvalidInstructionData:
		errorCode = InstrErrCodeInvalidInstructionData
	case InstrErrInvalidAccountData:
		errorCode = InstrErrCodeInvalidAccountData
	case InstrErrInsufficientFunds:
		errorCode = InstrErrCodeInsufficientFunds
	case InstrErrIncorrectProgramId:
		errorCode = InstrErrCodeIncorrectProgramId
	case InstrErrMissingRequiredSignature:
		errorCode = InstrErrCodeMissingRequiredSignature
	case InstrErrAccountAlreadyInitialized:
		errorCode = InstrErrCodeAccountAlreadyInitialized
	case InstrErrUninitializedAccount:
		errorCode = InstrErrCodeUninitializedAccount
	case InstrErrExternalAccountDataModified:
		errorCode = InstrErrCodeExternalAccountDataModified
	case InstrErrReadonlyDataModified:
		errorCode = InstrErrCodeReadonlyDataModified
	case InstrErrNotEnoughAccountKeys:
		errorCode = InstrErrCodeNotEnoughAccountKeys
	case InstrErrExecutableDataModified:
		errorCode = InstrErrCodeExecutableDataModified
	case InstrErrMissingAccount:
		errorCode = InstrErrCodeMissingAccount
	case InstrErrComputationalBudgetExceeded:
		errorCode = InstrErrCodeComputationalBudgetExceeded
	case InstrErrInvalidAccountOwner:
		errorCode = InstrErrCodeInvalidAccountOwner
	case InstrErrArithmeticOverflow:
		errorCode = InstrErrCodeArithmeticOverflow
	}
	return errorCode
}
