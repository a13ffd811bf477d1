package sealevel

import "errors"

// token program errors
var (
	TokenErrNotRentExempt                  = errors.New("TokenErrNotRentExempt")
	TokenErrInsufficientFunds              = errors.New("TokenErrInsufficientFunds")
	TokenErrInvalidMint                    = errors.New("TokenErrInvalidMint")
	TokenErrMintMismatch                   = errors.New("TokenErrMintMismatch")
	TokenErrOwnerMismatch                  = errors.New("TokenErrOwnerMismatch")
	TokenErrFixedSupply                    = errors.New("TokenErrFixedSupply")
	TokenErrAlreadyInUse                   = errors.New("TokenErrAlreadyInUse")
	TokenErrInvalidNumberOfProvidedSigners = errors.New("TokenErrInvalidNumberOfProvidedSigners")
	TokenErrInvalidNumberOfRequiredSigners = errors.New("TokenErrInvalidNumberOfRequiredSigners")
	TokenErrUninitializedState             = errors.New("TokenErrUninitializedState")
	TokenErrNativeNotSupported             = errors.New("TokenErrNativeNotSupported")
	TokenErrNonNativeHasBalance            = errors.New("TokenErrNonNativeHasBalance")
	TokenErrInvalidInstruction             = errors.New("TokenErrInvalidInstruction")
	TokenErrInvalidState                   = errors.New("TokenErrInvalidState")
	TokenErrOverflow                       = errors.New("TokenErrOverflow")
	TokenErrAuthorityTypeNotSupported      = errors.New("TokenErrAuthorityTypeNotSupported")
	TokenErrMintCannotFreeze               = errors.New("TokenErrMintCannotFreeze")
	TokenErrAccountFrozen                  = errors.New("TokenErrAccountFrozen")
	TokenErrMintDecimalsMismatch           = errors.New("TokenErrMintDecimalsMismatch")
)

// token program custom error codes, in canonical order
const (
	TokenErrCodeNotRentExempt = iota
	TokenErrCodeInsufficientFunds
	TokenErrCodeInvalidMint
	TokenErrCodeMintMismatch
	TokenErrCodeOwnerMismatch
	TokenErrCodeFixedSupply
	TokenErrCodeAlreadyInUse
	TokenErrCodeInvalidNumberOfProvidedSigners
	TokenErrCodeInvalidNumberOfRequiredSigners
	TokenErrCodeUninitializedState
	TokenErrCodeNativeNotSupported
	TokenErrCodeNonNativeHasBalance
	TokenErrCodeInvalidInstruction
	TokenErrCodeInvalidState
	TokenErrCodeOverflow
	TokenErrCodeAuthorityTypeNotSupported
	TokenErrCodeMintCannotFreeze
	TokenErrCodeAccountFrozen
	TokenErrCodeMintDecimalsMismatch
)

// TranslateTokenErrToCustomErrCode maps a token program error to its custom
// error code. The second return is false for errors outside the token
// program's own code space (those translate via TranslateErrToInstrErrCode).
func TranslateTokenErrToCustomErrCode(err error) (uint32, bool) {
	var errorCode uint32
	switch err {
	case TokenErrNotRentExempt:
		errorCode = TokenErrCodeNotRentExempt
	case TokenErrInsufficientFunds:
		errorCode = TokenErrCodeInsufficientFunds
	case TokenErrInvalidMint:
		errorCode = TokenErrCodeInvalidMint
	case TokenErrMintMismatch:
		errorCode = TokenErrCodeMintMismatch
	case TokenErrOwnerMismatch:
		errorCode = TokenErrCodeOwnerMismatch
	case TokenErrFixedSupply:
		errorCode = TokenErrCodeFixedSupply
	case TokenErrAlreadyInUse:
		errorCode = TokenErrCodeAlreadyInUse
	case TokenErrInvalidNumberOfProvidedSigners:
		errorCode = TokenErrCodeInvalidNumberOfProvidedSigners
	case TokenErrInvalidNumberOfRequiredSigners:
		errorCode = TokenErrCodeInvalidNumberOfRequiredSigners
	case TokenErrUninitializedState:
		errorCode = TokenErrCodeUninitializedState
	case TokenErrNativeNotSupported:
		errorCode = TokenErrCodeNativeNotSupported
	case TokenErrNonNativeHasBalance:
		errorCode = TokenErrCodeNonNativeHasBalance
	case TokenErrInvalidInstruction:
		errorCode = TokenErrCodeInvalidInstruction
	case TokenErrInvalidState:
		errorCode = TokenErrCodeInvalidState
	case TokenErrOverflow:
		errorCode = TokenErrCodeOverflow
	case TokenErrAuthorityTypeNotSupported:
		errorCode = TokenErrCodeAuthorityTypeNotSupported
	case TokenErrMintCannotFreeze:
		errorCode = TokenErrCodeMintCannotFreeze
	case TokenErrAccountFrozen:
		errorCode = TokenErrCodeAccountFrozen
	case TokenErrMintDecimalsMismatch:
		errorCode = TokenErrCodeMintDecimalsMismatch
	default:
		return 0, false
	}
	return errorCode, true
}
