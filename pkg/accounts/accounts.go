package accounts

import (
	"io"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

type Accounts interface {
	GetAccount(pubkey *solana.PublicKey) (*Account, error)
	SetAccount(pubkey *solana.PublicKey, acct *Account) error
}

// Account is one host-side account record: address, lamport balance, data
// buffer, owning program, and the executable flag.
type Account struct {
	Key        solana.PublicKey
	Lamports   uint64
	Data       []byte
	Owner      solana.PublicKey
	Executable bool
	RentEpoch  uint64
}

func (a *Account) SetData(data []byte) {
	a.Data = data
}

func (a *Account) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	a.Lamports, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}

	var dataLen uint64
	dataLen, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}
	if dataLen > uint64(decoder.Remaining()) {
		return io.ErrUnexpectedEOF
	}
	a.Data, err = decoder.ReadNBytes(int(dataLen))
	if err != nil {
		return err
	}

	owner, err := decoder.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	a.Owner = solana.PublicKeyFromBytes(owner)

	a.Executable, err = decoder.ReadBool()
	if err != nil {
		return err
	}

	a.RentEpoch, err = decoder.ReadUint64(bin.LE)
	return err
}

func (a *Account) MarshalWithEncoder(encoder *bin.Encoder) error {
	_ = encoder.WriteUint64(a.Lamports, bin.LE)
	_ = encoder.WriteUint64(uint64(len(a.Data)), bin.LE)
	_ = encoder.WriteBytes(a.Data, false)
	_ = encoder.WriteBytes(a.Owner[:], false)
	_ = encoder.WriteBool(a.Executable)
	return encoder.WriteUint64(a.RentEpoch, bin.LE)
}
