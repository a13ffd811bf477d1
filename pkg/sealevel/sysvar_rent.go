package sealevel

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/vermeil-labs/vermeil/pkg/accounts"
	"github.com/vermeil-labs/vermeil/pkg/base58"
)

const SysvarRentAddrStr = "SysvarRent111111111111111111111111111111111"

var SysvarRentAddr = solana.PublicKey(base58.MustDecodeFromString(SysvarRentAddrStr))

const SysvarRentStructLen = 17

const rentAccountStorageOverhead = 128

type SysvarRent struct {
	LamportsPerUint8Year uint64
	ExemptionThreshold   float64
	BurnPercent          byte
}

func (sr *SysvarRent) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	sr.LamportsPerUint8Year, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return fmt.Errorf("failed to read LamportsPerUint8Year when decoding SysvarRent: %w", err)
	}

	sr.ExemptionThreshold, err = decoder.ReadFloat64(bin.LE)
	if err != nil {
		return fmt.Errorf("failed to read ExemptionThreshold when decoding SysvarRent: %w", err)
	}

	sr.BurnPercent, err = decoder.ReadByte()
	if err != nil {
		return fmt.Errorf("failed to read BurnPercent when decoding SysvarRent: %w", err)
	}

	return nil
}

func (sr *SysvarRent) MustUnmarshalWithDecoder(decoder *bin.Decoder) {
	if err := sr.UnmarshalWithDecoder(decoder); err != nil {
		panic(err.Error())
	}
}

func (sr *SysvarRent) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint64(sr.LamportsPerUint8Year, bin.LE); err != nil {
		return err
	}
	if err := encoder.WriteFloat64(sr.ExemptionThreshold, bin.LE); err != nil {
		return err
	}
	return encoder.WriteByte(sr.BurnPercent)
}

// MinimumBalance returns the smallest lamport balance at which an account
// with dataLen bytes of data is exempt from rent collection.
func (sr *SysvarRent) MinimumBalance(dataLen uint64) uint64 {
	bytesAndOverhead := rentAccountStorageOverhead + dataLen
	return uint64(float64(bytesAndOverhead*sr.LamportsPerUint8Year) * sr.ExemptionThreshold)
}

func (sr *SysvarRent) IsExempt(lamports uint64, dataLen uint64) bool {
	return lamports >= sr.MinimumBalance(dataLen)
}

func ReadRentSysvar(accts *accounts.Accounts) SysvarRent {
	rentAcct, err := (*accts).GetAccount(&SysvarRentAddr)
	if err != nil || rentAcct == nil {
		panic("failed to read rent sysvar account")
	}

	decoder := bin.NewBinDecoder(rentAcct.Data)

	var rent SysvarRent
	rent.MustUnmarshalWithDecoder(decoder)

	return rent
}

func WriteRentSysvar(accts *accounts.Accounts, rent SysvarRent) {
	rentAcct, err := (*accts).GetAccount(&SysvarRentAddr)
	if err != nil || rentAcct == nil {
		panic("failed to read rent sysvar account")
	}

	buf := new(bytes.Buffer)
	encoder := bin.NewBinEncoder(buf)
	if err = rent.MarshalWithEncoder(encoder); err != nil {
		panic("failed to marshal rent sysvar")
	}

	rentAcct.SetData(buf.Bytes())
	(*accts).SetAccount(&SysvarRentAddr, rentAcct)
}

// checkAcctForRentSysvar verifies that the instruction account at the given
// index is the rent sysvar account.
func checkAcctForRentSysvar(txCtx *TransactionCtx, instrCtx *InstructionCtx, instrAcctIdx uint64) error {
	key, err := instrCtx.KeyOfInstructionAccount(txCtx, instrAcctIdx)
	if err != nil {
		return err
	}
	if key != SysvarRentAddr {
		return InstrErrInvalidArgument
	}
	return nil
}
