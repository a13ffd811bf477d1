package base58

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// DecodeFromString decodes a base58 string into a 32-byte account address.
func DecodeFromString(in string) ([32]byte, error) {
	var out [32]byte

	decoded, err := base58.Decode(in)
	if err != nil {
		return out, err
	}
	if len(decoded) != 32 {
		return out, fmt.Errorf("decoded %d bytes, expected 32", len(decoded))
	}

	copy(out[:], decoded)
	return out, nil
}

// MustDecodeFromString is DecodeFromString for hardcoded well-known addresses.
func MustDecodeFromString(in string) [32]byte {
	out, err := DecodeFromString(in)
	if err != nil {
		panic(fmt.Sprintf("invalid base58 address %q: %s", in, err))
	}
	return out
}

func EncodeToString(in []byte) string {
	return base58.Encode(in)
}
