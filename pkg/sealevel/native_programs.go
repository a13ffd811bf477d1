package sealevel

import (
	"github.com/gagliardetto/solana-go"

	"github.com/vermeil-labs/vermeil/pkg/base58"
)

const NativeLoaderAddrStr = "NativeLoader1111111111111111111111111111111"

var NativeLoaderAddr = solana.PublicKey(base58.MustDecodeFromString(NativeLoaderAddrStr))

const SystemProgramAddrStr = "11111111111111111111111111111111"

var SystemProgramAddr = solana.PublicKey(base58.MustDecodeFromString(SystemProgramAddrStr))

const SysvarOwnerAddrStr = "Sysvar1111111111111111111111111111111111111"

var SysvarOwnerAddr = solana.PublicKey(base58.MustDecodeFromString(SysvarOwnerAddrStr))

const TokenProgramAddrStr = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

var TokenProgramAddr = solana.PublicKey(base58.MustDecodeFromString(TokenProgramAddrStr))

// NativeMintAddr is the mint of the wrapped native asset. Token accounts of
// this mint mirror their lamport balance in the tracked token amount.
const NativeMintAddrStr = "So11111111111111111111111111111111111111112"

var NativeMintAddr = solana.PublicKey(base58.MustDecodeFromString(NativeMintAddrStr))

const NativeMintDecimals = 9

func resolveNativeProgramById(programId solana.PublicKey) (func(execCtx *ExecutionCtx) error, error) {
	switch programId {
	case TokenProgramAddr:
		return TokenProgramExecute, nil
	}

	return nil, InstrErrUnsupportedProgramId
}
