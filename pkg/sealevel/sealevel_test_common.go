package sealevel

// instructionAcctsFromAccountMetas resolves instruction account metas against
// the transaction's account list, deduplicating repeated keys onto the first
// callee slot that referenced them.
func instructionAcctsFromAccountMetas(instrAcctMetas []AccountMeta, txAccounts TransactionAccounts) []InstructionAccount {
	instrAccts := make([]InstructionAccount, 0, len(instrAcctMetas))

	for instrAcctIdx, accountMeta := range instrAcctMetas {
		idxInTx := len(txAccounts.Accounts)
		for pos, acct := range txAccounts.Accounts {
			if acct.Key == accountMeta.Pubkey {
				idxInTx = pos
				break
			}
		}

		idxInCallee := instrAcctIdx
		for pos, prev := range instrAccts {
			if prev.IndexInTransaction == uint64(idxInTx) {
				idxInCallee = pos
				break
			}
		}

		instrAccts = append(instrAccts, InstructionAccount{
			IndexInTransaction: uint64(idxInTx),
			IndexInCaller:      uint64(idxInTx),
			IndexInCallee:      uint64(idxInCallee),
			IsSigner:           accountMeta.IsSigner,
			IsWritable:         accountMeta.IsWritable,
		})
	}

	return instrAccts
}
