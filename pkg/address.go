package pkg

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	NamadaAddressHRP = "tnam"
	AddressHashLen   = 20

	// raw address discriminants, the first byte of the bech32m payload
	PrefixImplicit    byte = 0x00
	PrefixEstablished byte = 0x01
)

// EncodeNamadaAddress encodes a 20 byte address hash with its discriminant
// prefix as a bech32m tnam address.
func EncodeNamadaAddress(prefix byte, hash []byte) (string, error) {
	if len(hash) != AddressHashLen {
		return "", fmt.Errorf("address hash must be %d bytes, got %d", AddressHashLen, len(hash))
	}

	raw := make([]byte, 0, AddressHashLen+1)
	raw = append(raw, prefix)
	raw = append(raw, hash...)

	conv, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.EncodeM(NamadaAddressHRP, conv)
}

// DecodeNamadaAddress is the inverse of EncodeNamadaAddress.
func DecodeNamadaAddress(address string) (prefix byte, hash []byte, err error) {
	hrp, data, version, err := bech32.DecodeGeneric(address)
	if err != nil {
		return 0, nil, err
	}
	if hrp != NamadaAddressHRP {
		return 0, nil, fmt.Errorf("unexpected address prefix %q", hrp)
	}
	if version != bech32.VersionM {
		return 0, nil, fmt.Errorf("address %s is not bech32m encoded", address)
	}

	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return 0, nil, err
	}
	if len(raw) != AddressHashLen+1 {
		return 0, nil, fmt.Errorf("address payload must be %d bytes, got %d", AddressHashLen+1, len(raw))
	}

	return raw[0], raw[1:], nil
}

func ValidateNamadaAddress(address string) error {
	_, _, err := DecodeNamadaAddress(address)
	return err
}
