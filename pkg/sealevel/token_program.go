package sealevel

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/vermeil-labs/vermeil/pkg/safemath"
	"k8s.io/klog/v2"
)

// TokenProgramExecute is the entry point for the token program. It decodes
// the instruction tag, then dispatches to the relevant handler.
func TokenProgramExecute(execCtx *ExecutionCtx) error {
	err := execCtx.ComputeMeter.Consume(CUTokenProgramDefaultComputeUnits)
	if err != nil {
		return err
	}

	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	programId, err := instrCtx.LastProgramKey(txCtx)
	if err != nil {
		return err
	}
	err = checkTokenProgramAccount(programId)
	if err != nil {
		return err
	}

	decoder := bin.NewBinDecoder(instrCtx.Data)

	instructionType, err := decoder.ReadByte()
	if err != nil {
		klog.Errorf("failed to read token instruction tag: %s", err)
		return TokenErrInvalidInstruction
	}

	switch instructionType {
	case TokenProgramInstrTypeInitializeMint:
		{
			var initializeMint TokenInstrInitializeMint
			err = initializeMint.UnmarshalWithDecoder(decoder)
			if err != nil {
				return TokenErrInvalidInstruction
			}
			execCtx.programLog("Instruction: InitializeMint")
			err = TokenProgramInitializeMint(execCtx, initializeMint.Decimals, initializeMint.MintAuthority, initializeMint.FreezeAuthority, true)
		}

	case TokenProgramInstrTypeInitializeAccount:
		{
			execCtx.programLog("Instruction: InitializeAccount")
			err = TokenProgramInitializeAccount(execCtx, nil)
		}

	case TokenProgramInstrTypeInitializeMultisig:
		{
			var initializeMultisig TokenInstrInitializeMultisig
			err = initializeMultisig.UnmarshalWithDecoder(decoder)
			if err != nil {
				return TokenErrInvalidInstruction
			}
			execCtx.programLog("Instruction: InitializeMultisig")
			err = TokenProgramInitializeMultisig(execCtx, initializeMultisig.M, true)
		}

	case TokenProgramInstrTypeTransfer:
		{
			var transfer TokenInstrTransfer
			err = transfer.UnmarshalWithDecoder(decoder)
			if err != nil {
				return TokenErrInvalidInstruction
			}
			execCtx.programLog("Instruction: Transfer")
			err = TokenProgramTransfer(execCtx, transfer.Amount, nil)
		}

	case TokenProgramInstrTypeApprove:
		{
			var approve TokenInstrApprove
			err = approve.UnmarshalWithDecoder(decoder)
			if err != nil {
				return TokenErrInvalidInstruction
			}
			execCtx.programLog("Instruction: Approve")
			err = TokenProgramApprove(execCtx, approve.Amount, nil)
		}

	case TokenProgramInstrTypeRevoke:
		{
			execCtx.programLog("Instruction: Revoke")
			err = TokenProgramRevoke(execCtx)
		}

	case TokenProgramInstrTypeSetAuthority:
		{
			var setAuthority TokenInstrSetAuthority
			err = setAuthority.UnmarshalWithDecoder(decoder)
			if err != nil {
				return TokenErrInvalidInstruction
			}
			execCtx.programLog("Instruction: SetAuthority")
			err = TokenProgramSetAuthority(execCtx, setAuthority.AuthorityType, setAuthority.NewAuthority)
		}

	case TokenProgramInstrTypeMintTo:
		{
			var mintTo TokenInstrMintTo
			err = mintTo.UnmarshalWithDecoder(decoder)
			if err != nil {
				return TokenErrInvalidInstruction
			}
			execCtx.programLog("Instruction: MintTo")
			err = TokenProgramMintTo(execCtx, mintTo.Amount, nil)
		}

	case TokenProgramInstrTypeBurn:
		{
			var burn TokenInstrBurn
			err = burn.UnmarshalWithDecoder(decoder)
			if err != nil {
				return TokenErrInvalidInstruction
			}
			execCtx.programLog("Instruction: Burn")
			err = TokenProgramBurn(execCtx, burn.Amount, nil)
		}

	case TokenProgramInstrTypeCloseAccount:
		{
			execCtx.programLog("Instruction: CloseAccount")
			err = TokenProgramCloseAccount(execCtx)
		}

	case TokenProgramInstrTypeInitializeAccount2:
		{
			var initializeAccount2 TokenInstrInitializeAccount2
			err = initializeAccount2.UnmarshalWithDecoder(decoder)
			if err != nil {
				return TokenErrInvalidInstruction
			}
			execCtx.programLog("Instruction: InitializeAccount2")
			err = TokenProgramInitializeAccount(execCtx, &initializeAccount2.Owner)
		}

	case TokenProgramInstrTypeInitializeMultisig2:
		{
			var initializeMultisig TokenInstrInitializeMultisig
			err = initializeMultisig.UnmarshalWithDecoder(decoder)
			if err != nil {
				return TokenErrInvalidInstruction
			}
			execCtx.programLog("Instruction: InitializeMultisig2")
			err = TokenProgramInitializeMultisig(execCtx, initializeMultisig.M, false)
		}

	case TokenProgramInstrTypeInitializeMint2:
		{
			var initializeMint TokenInstrInitializeMint
			err = initializeMint.UnmarshalWithDecoder(decoder)
			if err != nil {
				return TokenErrInvalidInstruction
			}
			execCtx.programLog("Instruction: InitializeMint2")
			err = TokenProgramInitializeMint(execCtx, initializeMint.Decimals, initializeMint.MintAuthority, initializeMint.FreezeAuthority, false)
		}

	default:
		err = TokenErrInvalidInstruction
	}

	return err
}

// validateTokenOwner authorizes an operation for expectedOwner. When the
// owner account at ownerAcctIdx is a multisig record, the instruction
// accounts following it are matched against the stored signer set and at
// least m of them must have signed; otherwise the owner account itself must
// be a signer.
func validateTokenOwner(execCtx *ExecutionCtx, expectedOwner solana.PublicKey, ownerAcctIdx uint64) error {
	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	ownerKey, err := instrCtx.KeyOfInstructionAccount(txCtx, ownerAcctIdx)
	if err != nil {
		return err
	}
	if ownerKey != expectedOwner {
		return TokenErrOwnerMismatch
	}

	ownerAcct, err := instrCtx.BorrowInstructionAccount(txCtx, ownerAcctIdx)
	if err != nil {
		return err
	}
	ownerProgram := ownerAcct.Owner()
	ownerDataLen := uint64(len(ownerAcct.Data()))
	ownerData := make([]byte, ownerDataLen)
	copy(ownerData, ownerAcct.Data())
	ownerAcct.Drop()

	if ownerProgram == TokenProgramAddr && ownerDataLen == TokenMultisigSize {
		multisig, err := unmarshalTokenMultisig(ownerData)
		if err != nil {
			return err
		}
		if !multisig.IsInitialized {
			return TokenErrUninitializedState
		}

		numSigners := uint64(0)
		var matched [TokenMultisigMaxSigners]bool
		for signerIdx := ownerAcctIdx + 1; signerIdx < instrCtx.NumberOfInstructionAccounts(); signerIdx++ {
			signerKey, err := instrCtx.KeyOfInstructionAccount(txCtx, signerIdx)
			if err != nil {
				return err
			}
			for position := byte(0); position < multisig.N; position++ {
				if multisig.Signers[position] == signerKey && !matched[position] {
					isSigner, err := instrCtx.IsInstructionAccountSigner(signerIdx)
					if err != nil {
						return err
					}
					if !isSigner {
						return InstrErrMissingRequiredSignature
					}
					matched[position] = true
					numSigners++
				}
			}
		}

		if numSigners < uint64(multisig.M) {
			return InstrErrMissingRequiredSignature
		}
		return nil
	}

	isSigner, err := instrCtx.IsInstructionAccountSigner(ownerAcctIdx)
	if err != nil {
		return err
	}
	if !isSigner {
		return InstrErrMissingRequiredSignature
	}
	return nil
}

func TokenProgramInitializeMint(execCtx *ExecutionCtx, decimals byte, mintAuthority solana.PublicKey, freezeAuthority *solana.PublicKey, rentSysvarAccount bool) error {
	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	var requiredAccts uint64 = 1
	if rentSysvarAccount {
		requiredAccts = 2
	}
	err = instrCtx.CheckNumOfInstructionAccounts(requiredAccts)
	if err != nil {
		return err
	}

	mintAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 0)
	if err != nil {
		return err
	}
	defer mintAcct.Drop()

	mint, err := unmarshalTokenMint(mintAcct.Data())
	if err != nil {
		return err
	}
	if mint.IsInitialized {
		return TokenErrAlreadyInUse
	}

	if rentSysvarAccount {
		err = checkAcctForRentSysvar(txCtx, instrCtx, 1)
		if err != nil {
			return err
		}
		rent := ReadRentSysvar(&execCtx.Accounts)
		if !rent.IsExempt(mintAcct.Lamports(), uint64(len(mintAcct.Data()))) {
			return TokenErrNotRentExempt
		}
	}

	mint.MintAuthority = &mintAuthority
	mint.Supply = 0
	mint.Decimals = decimals
	mint.IsInitialized = true
	mint.FreezeAuthority = freezeAuthority

	return mintAcct.SetData(marshalTokenMint(mint))
}

func TokenProgramInitializeAccount(execCtx *ExecutionCtx, owner *solana.PublicKey) error {
	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	// [account, mint, rent] when the owner rides in the instruction data,
	// [account, mint, owner, rent] otherwise
	var ownerKey solana.PublicKey
	var rentAcctIdx uint64
	if owner != nil {
		err = instrCtx.CheckNumOfInstructionAccounts(3)
		if err != nil {
			return err
		}
		ownerKey = *owner
		rentAcctIdx = 2
	} else {
		err = instrCtx.CheckNumOfInstructionAccounts(4)
		if err != nil {
			return err
		}
		ownerKey, err = instrCtx.KeyOfInstructionAccount(txCtx, 2)
		if err != nil {
			return err
		}
		rentAcctIdx = 3
	}

	err = checkAcctForRentSysvar(txCtx, instrCtx, rentAcctIdx)
	if err != nil {
		return err
	}

	newAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 0)
	if err != nil {
		return err
	}
	defer newAcct.Drop()

	tokenAcct, err := unmarshalTokenAccount(newAcct.Data())
	if err != nil {
		return err
	}
	if tokenAcct.State != TokenAccountStateUninitialized {
		return TokenErrAlreadyInUse
	}

	rent := ReadRentSysvar(&execCtx.Accounts)
	if !rent.IsExempt(newAcct.Lamports(), uint64(len(newAcct.Data()))) {
		return TokenErrNotRentExempt
	}

	mintAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 1)
	if err != nil {
		return err
	}
	defer mintAcct.Drop()

	mintKey := mintAcct.Key()
	isNativeMint := mintKey == NativeMintAddr
	if !isNativeMint {
		if mintAcct.Owner() != TokenProgramAddr {
			return InstrErrIncorrectProgramId
		}
		mint, err := unmarshalTokenMint(mintAcct.Data())
		if err != nil {
			return TokenErrInvalidMint
		}
		if !mint.IsInitialized {
			return TokenErrInvalidMint
		}
	}

	tokenAcct.Mint = mintKey
	tokenAcct.Owner = ownerKey
	tokenAcct.Delegate = nil
	tokenAcct.DelegatedAmount = 0
	tokenAcct.CloseAuthority = nil
	tokenAcct.State = TokenAccountStateInitialized

	if isNativeMint {
		rentExemptReserve := rent.MinimumBalance(uint64(len(newAcct.Data())))
		tokenAcct.IsNative = &rentExemptReserve
		tokenAcct.Amount, err = safemath.CheckedSubU64(newAcct.Lamports(), rentExemptReserve)
		if err != nil {
			return TokenErrOverflow
		}
	} else {
		tokenAcct.IsNative = nil
		tokenAcct.Amount = 0
	}

	return newAcct.SetData(marshalTokenAccount(tokenAcct))
}

func TokenProgramInitializeMultisig(execCtx *ExecutionCtx, m byte, rentSysvarAccount bool) error {
	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	var firstSignerIdx uint64 = 1
	if rentSysvarAccount {
		firstSignerIdx = 2
	}
	err = instrCtx.CheckNumOfInstructionAccounts(firstSignerIdx)
	if err != nil {
		return err
	}

	multisigAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 0)
	if err != nil {
		return err
	}
	defer multisigAcct.Drop()

	multisig, err := unmarshalTokenMultisig(multisigAcct.Data())
	if err != nil {
		return err
	}
	if multisig.IsInitialized {
		return TokenErrAlreadyInUse
	}

	if rentSysvarAccount {
		err = checkAcctForRentSysvar(txCtx, instrCtx, 1)
		if err != nil {
			return err
		}
		rent := ReadRentSysvar(&execCtx.Accounts)
		if !rent.IsExempt(multisigAcct.Lamports(), uint64(len(multisigAcct.Data()))) {
			return TokenErrNotRentExempt
		}
	}

	numSigners := instrCtx.NumberOfInstructionAccounts() - firstSignerIdx
	if numSigners < TokenMultisigMinSigners || numSigners > TokenMultisigMaxSigners {
		return TokenErrInvalidNumberOfProvidedSigners
	}
	if m < TokenMultisigMinSigners || m > TokenMultisigMaxSigners {
		return TokenErrInvalidNumberOfRequiredSigners
	}
	if uint64(m) > numSigners {
		return TokenErrInvalidNumberOfRequiredSigners
	}

	multisig.M = m
	multisig.N = byte(numSigners)
	for idx := uint64(0); idx < numSigners; idx++ {
		signerKey, err := instrCtx.KeyOfInstructionAccount(txCtx, firstSignerIdx+idx)
		if err != nil {
			return err
		}
		multisig.Signers[idx] = signerKey
	}
	multisig.IsInitialized = true

	return multisigAcct.SetData(marshalTokenMultisig(multisig))
}

func TokenProgramTransfer(execCtx *ExecutionCtx, amount uint64, expectedDecimals *byte) error {
	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	// [source, dest, authority, multisig signers...]; a mint account is
	// inserted after source when a decimals cross-check was requested
	var dstAcctIdx, authorityAcctIdx uint64
	if expectedDecimals != nil {
		err = instrCtx.CheckNumOfInstructionAccounts(4)
		dstAcctIdx = 2
		authorityAcctIdx = 3
	} else {
		err = instrCtx.CheckNumOfInstructionAccounts(3)
		dstAcctIdx = 1
		authorityAcctIdx = 2
	}
	if err != nil {
		return err
	}

	srcAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 0)
	if err != nil {
		return err
	}
	defer srcAcct.Drop()

	srcTokenAcct, err := unmarshalTokenAccount(srcAcct.Data())
	if err != nil {
		return err
	}
	if srcTokenAcct.State == TokenAccountStateUninitialized {
		return TokenErrUninitializedState
	}

	srcTxIdx, err := instrCtx.IndexOfInstructionAccountInTransaction(0)
	if err != nil {
		return err
	}
	dstTxIdx, err := instrCtx.IndexOfInstructionAccountInTransaction(dstAcctIdx)
	if err != nil {
		return err
	}
	selfTransfer := srcTxIdx == dstTxIdx

	var dstAcct *BorrowedAccount
	var dstTokenAcct *TokenAccount
	if selfTransfer {
		dstAcct = srcAcct
		dstTokenAcct = srcTokenAcct
	} else {
		dstAcct, err = instrCtx.BorrowInstructionAccount(txCtx, dstAcctIdx)
		if err != nil {
			return err
		}
		defer dstAcct.Drop()

		dstTokenAcct, err = unmarshalTokenAccount(dstAcct.Data())
		if err != nil {
			return err
		}
		if dstTokenAcct.State == TokenAccountStateUninitialized {
			return TokenErrUninitializedState
		}
	}

	if srcTokenAcct.IsFrozen() || dstTokenAcct.IsFrozen() {
		return TokenErrAccountFrozen
	}
	if srcTokenAcct.Amount < amount {
		return TokenErrInsufficientFunds
	}
	if srcTokenAcct.Mint != dstTokenAcct.Mint {
		return TokenErrMintMismatch
	}

	if expectedDecimals != nil {
		mintAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 1)
		if err != nil {
			return err
		}
		mintKey := mintAcct.Key()
		mint, err := unmarshalTokenMint(mintAcct.Data())
		mintAcct.Drop()
		if err != nil {
			return err
		}
		if srcTokenAcct.Mint != mintKey {
			return TokenErrMintMismatch
		}
		if mint.Decimals != *expectedDecimals {
			return TokenErrMintDecimalsMismatch
		}
	}

	authorityKey, err := instrCtx.KeyOfInstructionAccount(txCtx, authorityAcctIdx)
	if err != nil {
		return err
	}

	if srcTokenAcct.Delegate != nil && *srcTokenAcct.Delegate == authorityKey {
		err = validateTokenOwner(execCtx, *srcTokenAcct.Delegate, authorityAcctIdx)
		if err != nil {
			return err
		}
		if srcTokenAcct.DelegatedAmount < amount {
			return TokenErrInsufficientFunds
		}
		if !selfTransfer {
			srcTokenAcct.DelegatedAmount, err = safemath.CheckedSubU64(srcTokenAcct.DelegatedAmount, amount)
			if err != nil {
				return TokenErrOverflow
			}
			if srcTokenAcct.DelegatedAmount == 0 {
				srcTokenAcct.Delegate = nil
			}
		}
	} else {
		err = validateTokenOwner(execCtx, srcTokenAcct.Owner, authorityAcctIdx)
		if err != nil {
			return err
		}
	}

	if selfTransfer || amount == 0 {
		if srcAcct.Owner() != TokenProgramAddr || dstAcct.Owner() != TokenProgramAddr {
			return InstrErrIncorrectProgramId
		}
	}

	// authorization still runs above, but a self-transfer changes nothing
	if selfTransfer {
		return nil
	}

	srcTokenAcct.Amount, err = safemath.CheckedSubU64(srcTokenAcct.Amount, amount)
	if err != nil {
		return TokenErrOverflow
	}
	dstTokenAcct.Amount, err = safemath.CheckedAddU64(dstTokenAcct.Amount, amount)
	if err != nil {
		return TokenErrOverflow
	}

	// run every remaining check before the first mutation lands
	err = srcAcct.DataCanBeChanged()
	if err != nil {
		return err
	}
	err = dstAcct.DataCanBeChanged()
	if err != nil {
		return err
	}

	if srcTokenAcct.IsNativeAccount() {
		newSrcLamports, err := safemath.CheckedSubU64(srcAcct.Lamports(), amount)
		if err != nil {
			return TokenErrOverflow
		}
		newDstLamports, err := safemath.CheckedAddU64(dstAcct.Lamports(), amount)
		if err != nil {
			return TokenErrOverflow
		}
		err = srcAcct.SetLamports(newSrcLamports)
		if err != nil {
			return err
		}
		err = dstAcct.SetLamports(newDstLamports)
		if err != nil {
			return err
		}
	}

	err = srcAcct.SetData(marshalTokenAccount(srcTokenAcct))
	if err != nil {
		return err
	}
	return dstAcct.SetData(marshalTokenAccount(dstTokenAcct))
}

func TokenProgramApprove(execCtx *ExecutionCtx, amount uint64, expectedDecimals *byte) error {
	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	// [source, delegate, owner, multisig signers...]; mint after source when
	// a decimals cross-check was requested
	var delegateAcctIdx, ownerAcctIdx uint64
	if expectedDecimals != nil {
		err = instrCtx.CheckNumOfInstructionAccounts(4)
		delegateAcctIdx = 2
		ownerAcctIdx = 3
	} else {
		err = instrCtx.CheckNumOfInstructionAccounts(3)
		delegateAcctIdx = 1
		ownerAcctIdx = 2
	}
	if err != nil {
		return err
	}

	srcAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 0)
	if err != nil {
		return err
	}
	defer srcAcct.Drop()

	srcTokenAcct, err := unmarshalTokenAccount(srcAcct.Data())
	if err != nil {
		return err
	}
	if srcTokenAcct.State == TokenAccountStateUninitialized {
		return TokenErrUninitializedState
	}
	if srcTokenAcct.IsFrozen() {
		return TokenErrAccountFrozen
	}

	if expectedDecimals != nil {
		mintAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 1)
		if err != nil {
			return err
		}
		mintKey := mintAcct.Key()
		mint, err := unmarshalTokenMint(mintAcct.Data())
		mintAcct.Drop()
		if err != nil {
			return err
		}
		if srcTokenAcct.Mint != mintKey {
			return TokenErrMintMismatch
		}
		if mint.Decimals != *expectedDecimals {
			return TokenErrMintDecimalsMismatch
		}
	}

	delegateKey, err := instrCtx.KeyOfInstructionAccount(txCtx, delegateAcctIdx)
	if err != nil {
		return err
	}

	err = validateTokenOwner(execCtx, srcTokenAcct.Owner, ownerAcctIdx)
	if err != nil {
		return err
	}

	srcTokenAcct.Delegate = &delegateKey
	srcTokenAcct.DelegatedAmount = amount

	return srcAcct.SetData(marshalTokenAccount(srcTokenAcct))
}

func TokenProgramRevoke(execCtx *ExecutionCtx) error {
	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	err = instrCtx.CheckNumOfInstructionAccounts(2)
	if err != nil {
		return err
	}

	srcAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 0)
	if err != nil {
		return err
	}
	defer srcAcct.Drop()

	srcTokenAcct, err := unmarshalTokenAccount(srcAcct.Data())
	if err != nil {
		return err
	}
	if srcTokenAcct.State == TokenAccountStateUninitialized {
		return TokenErrUninitializedState
	}
	if srcTokenAcct.IsFrozen() {
		return TokenErrAccountFrozen
	}

	err = validateTokenOwner(execCtx, srcTokenAcct.Owner, 1)
	if err != nil {
		return err
	}

	srcTokenAcct.Delegate = nil
	srcTokenAcct.DelegatedAmount = 0

	return srcAcct.SetData(marshalTokenAccount(srcTokenAcct))
}

func TokenProgramSetAuthority(execCtx *ExecutionCtx, authorityType byte, newAuthority *solana.PublicKey) error {
	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	err = instrCtx.CheckNumOfInstructionAccounts(2)
	if err != nil {
		return err
	}

	targetAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 0)
	if err != nil {
		return err
	}
	defer targetAcct.Drop()

	// the record kind is identified by its fixed width
	switch uint64(len(targetAcct.Data())) {
	case TokenAccountSize:
		{
			tokenAcct, err := unmarshalTokenAccount(targetAcct.Data())
			if err != nil {
				return err
			}
			if tokenAcct.State == TokenAccountStateUninitialized {
				return TokenErrUninitializedState
			}
			if tokenAcct.IsFrozen() {
				return TokenErrAccountFrozen
			}

			switch authorityType {
			case TokenAuthorityTypeAccountOwner:
				{
					err = validateTokenOwner(execCtx, tokenAcct.Owner, 1)
					if err != nil {
						return err
					}
					if newAuthority == nil {
						return TokenErrInvalidInstruction
					}
					tokenAcct.Owner = *newAuthority
					tokenAcct.Delegate = nil
					tokenAcct.DelegatedAmount = 0
					if tokenAcct.IsNativeAccount() {
						tokenAcct.CloseAuthority = nil
					}
				}
			case TokenAuthorityTypeCloseAccount:
				{
					authority := tokenAcct.Owner
					if tokenAcct.CloseAuthority != nil {
						authority = *tokenAcct.CloseAuthority
					}
					err = validateTokenOwner(execCtx, authority, 1)
					if err != nil {
						return err
					}
					tokenAcct.CloseAuthority = newAuthority
				}
			default:
				return TokenErrAuthorityTypeNotSupported
			}

			return targetAcct.SetData(marshalTokenAccount(tokenAcct))
		}

	case TokenMintSize:
		{
			mint, err := unmarshalTokenMint(targetAcct.Data())
			if err != nil {
				return err
			}
			if !mint.IsInitialized {
				return TokenErrUninitializedState
			}

			switch authorityType {
			case TokenAuthorityTypeMintTokens:
				{
					// once cleared, supply is fixed forever
					if mint.MintAuthority == nil {
						return TokenErrFixedSupply
					}
					err = validateTokenOwner(execCtx, *mint.MintAuthority, 1)
					if err != nil {
						return err
					}
					mint.MintAuthority = newAuthority
				}
			case TokenAuthorityTypeFreezeAccount:
				{
					if mint.FreezeAuthority == nil {
						return TokenErrMintCannotFreeze
					}
					err = validateTokenOwner(execCtx, *mint.FreezeAuthority, 1)
					if err != nil {
						return err
					}
					mint.FreezeAuthority = newAuthority
				}
			default:
				return TokenErrAuthorityTypeNotSupported
			}

			return targetAcct.SetData(marshalTokenMint(mint))
		}

	default:
		return InstrErrInvalidArgument
	}
}

func TokenProgramMintTo(execCtx *ExecutionCtx, amount uint64, expectedDecimals *byte) error {
	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	err = instrCtx.CheckNumOfInstructionAccounts(3)
	if err != nil {
		return err
	}

	mintAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 0)
	if err != nil {
		return err
	}
	defer mintAcct.Drop()

	dstAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 1)
	if err != nil {
		return err
	}
	defer dstAcct.Drop()

	dstTokenAcct, err := unmarshalTokenAccount(dstAcct.Data())
	if err != nil {
		return err
	}
	if dstTokenAcct.State == TokenAccountStateUninitialized {
		return TokenErrUninitializedState
	}
	if dstTokenAcct.IsFrozen() {
		return TokenErrAccountFrozen
	}
	if dstTokenAcct.IsNativeAccount() {
		return TokenErrNativeNotSupported
	}
	if mintAcct.Key() != dstTokenAcct.Mint {
		return TokenErrMintMismatch
	}

	mint, err := unmarshalTokenMint(mintAcct.Data())
	if err != nil {
		return err
	}
	if !mint.IsInitialized {
		return TokenErrUninitializedState
	}

	if expectedDecimals != nil && mint.Decimals != *expectedDecimals {
		return TokenErrMintDecimalsMismatch
	}

	if mint.MintAuthority == nil {
		return TokenErrFixedSupply
	}
	err = validateTokenOwner(execCtx, *mint.MintAuthority, 2)
	if err != nil {
		return err
	}

	if amount == 0 {
		if mintAcct.Owner() != TokenProgramAddr || dstAcct.Owner() != TokenProgramAddr {
			return InstrErrIncorrectProgramId
		}
	}

	dstTokenAcct.Amount, err = safemath.CheckedAddU64(dstTokenAcct.Amount, amount)
	if err != nil {
		return TokenErrOverflow
	}
	mint.Supply, err = safemath.CheckedAddU64(mint.Supply, amount)
	if err != nil {
		return TokenErrOverflow
	}

	err = dstAcct.DataCanBeChanged()
	if err != nil {
		return err
	}
	err = mintAcct.DataCanBeChanged()
	if err != nil {
		return err
	}

	err = dstAcct.SetData(marshalTokenAccount(dstTokenAcct))
	if err != nil {
		return err
	}
	return mintAcct.SetData(marshalTokenMint(mint))
}

func TokenProgramBurn(execCtx *ExecutionCtx, amount uint64, expectedDecimals *byte) error {
	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	err = instrCtx.CheckNumOfInstructionAccounts(3)
	if err != nil {
		return err
	}

	srcAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 0)
	if err != nil {
		return err
	}
	defer srcAcct.Drop()

	mintAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 1)
	if err != nil {
		return err
	}
	defer mintAcct.Drop()

	srcTokenAcct, err := unmarshalTokenAccount(srcAcct.Data())
	if err != nil {
		return err
	}
	if srcTokenAcct.State == TokenAccountStateUninitialized {
		return TokenErrUninitializedState
	}

	mint, err := unmarshalTokenMint(mintAcct.Data())
	if err != nil {
		return err
	}
	if !mint.IsInitialized {
		return TokenErrUninitializedState
	}

	if srcTokenAcct.IsFrozen() {
		return TokenErrAccountFrozen
	}
	if srcTokenAcct.IsNativeAccount() {
		return TokenErrNativeNotSupported
	}
	if srcTokenAcct.Amount < amount {
		return TokenErrInsufficientFunds
	}
	if mintAcct.Key() != srcTokenAcct.Mint {
		return TokenErrMintMismatch
	}

	if expectedDecimals != nil && mint.Decimals != *expectedDecimals {
		return TokenErrMintDecimalsMismatch
	}

	authorityKey, err := instrCtx.KeyOfInstructionAccount(txCtx, 2)
	if err != nil {
		return err
	}

	if srcTokenAcct.Delegate != nil && *srcTokenAcct.Delegate == authorityKey {
		err = validateTokenOwner(execCtx, *srcTokenAcct.Delegate, 2)
		if err != nil {
			return err
		}
		if srcTokenAcct.DelegatedAmount < amount {
			return TokenErrInsufficientFunds
		}
		srcTokenAcct.DelegatedAmount, err = safemath.CheckedSubU64(srcTokenAcct.DelegatedAmount, amount)
		if err != nil {
			return TokenErrOverflow
		}
		if srcTokenAcct.DelegatedAmount == 0 {
			srcTokenAcct.Delegate = nil
		}
	} else {
		err = validateTokenOwner(execCtx, srcTokenAcct.Owner, 2)
		if err != nil {
			return err
		}
	}

	if amount == 0 {
		if srcAcct.Owner() != TokenProgramAddr || mintAcct.Owner() != TokenProgramAddr {
			return InstrErrIncorrectProgramId
		}
	}

	srcTokenAcct.Amount, err = safemath.CheckedSubU64(srcTokenAcct.Amount, amount)
	if err != nil {
		return TokenErrOverflow
	}
	mint.Supply, err = safemath.CheckedSubU64(mint.Supply, amount)
	if err != nil {
		return TokenErrOverflow
	}

	err = srcAcct.DataCanBeChanged()
	if err != nil {
		return err
	}
	err = mintAcct.DataCanBeChanged()
	if err != nil {
		return err
	}

	err = srcAcct.SetData(marshalTokenAccount(srcTokenAcct))
	if err != nil {
		return err
	}
	return mintAcct.SetData(marshalTokenMint(mint))
}

func TokenProgramCloseAccount(execCtx *ExecutionCtx) error {
	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	err = instrCtx.CheckNumOfInstructionAccounts(3)
	if err != nil {
		return err
	}

	srcTxIdx, err := instrCtx.IndexOfInstructionAccountInTransaction(0)
	if err != nil {
		return err
	}
	dstTxIdx, err := instrCtx.IndexOfInstructionAccountInTransaction(1)
	if err != nil {
		return err
	}
	if srcTxIdx == dstTxIdx {
		return InstrErrInvalidAccountData
	}

	srcAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 0)
	if err != nil {
		return err
	}
	defer srcAcct.Drop()

	srcTokenAcct, err := unmarshalTokenAccount(srcAcct.Data())
	if err != nil {
		return err
	}
	if srcTokenAcct.State == TokenAccountStateUninitialized {
		return TokenErrUninitializedState
	}
	if !srcTokenAcct.IsNativeAccount() && srcTokenAcct.Amount != 0 {
		return TokenErrNonNativeHasBalance
	}

	authority := srcTokenAcct.Owner
	if srcTokenAcct.CloseAuthority != nil {
		authority = *srcTokenAcct.CloseAuthority
	}
	err = validateTokenOwner(execCtx, authority, 2)
	if err != nil {
		return err
	}

	dstAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 1)
	if err != nil {
		return err
	}
	defer dstAcct.Drop()

	newDstLamports, err := safemath.CheckedAddU64(dstAcct.Lamports(), srcAcct.Lamports())
	if err != nil {
		return InstrErrArithmeticOverflow
	}

	// run every remaining check before the first mutation lands
	err = srcAcct.DataCanBeChanged()
	if err != nil {
		return err
	}
	err = srcAcct.lamportsCanBeChanged(0)
	if err != nil {
		return err
	}
	err = dstAcct.lamportsCanBeChanged(newDstLamports)
	if err != nil {
		return err
	}

	err = dstAcct.CheckedAddLamports(srcAcct.Lamports())
	if err != nil {
		return err
	}
	err = srcAcct.CheckedSubLamports(srcAcct.Lamports())
	if err != nil {
		return err
	}

	return srcAcct.SetData(make([]byte, len(srcAcct.Data())))
}
