package namadaclient

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"slices"

	"cosmossdk.io/math"

	"github.com/yieldloop/namada-compounder/internal/types"
	"github.com/yieldloop/namada-compounder/pkg"
)

const (
	uint256Len = 32
	// Namada Dec values are fixed point with 12 decimal places
	decPrecision = 12

	addressTagEstablished byte = 0
	addressTagImplicit    byte = 1
	addressTagInternal    byte = 2
)

// borshReader decodes the borsh encoded values the Namada query router
// returns.
type borshReader struct {
	buf []byte
	off int
}

func newBorshReader(b []byte) *borshReader {
	return &borshReader{buf: b}
}

func (r *borshReader) take(n int) ([]byte, error) {
	if n < 0 || len(r.buf)-r.off < n {
		return nil, fmt.Errorf("need %d bytes at offset %d, have %d", n, r.off, len(r.buf)-r.off)
	}
	out := r.buf[r.off : r.off+n]
	r.off += n
	return out, nil
}

func (r *borshReader) u8() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *borshReader) u32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *borshReader) u64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// option reads the Option tag and reports whether a value follows.
func (r *borshReader) option() (bool, error) {
	tag, err := r.u8()
	if err != nil {
		return false, err
	}
	switch tag {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("invalid option tag %d", tag)
	}
}

func (r *borshReader) littleEndianInt() (*big.Int, error) {
	b, err := r.take(uint256Len)
	if err != nil {
		return nil, err
	}
	be := slices.Clone(b)
	slices.Reverse(be)
	return new(big.Int).SetBytes(be), nil
}

// amount reads a token Amount, an unsigned 256 bit little endian integer.
func (r *borshReader) amount() (math.Int, error) {
	v, err := r.littleEndianInt()
	if err != nil {
		return math.Int{}, err
	}
	return math.NewIntFromBigInt(v), nil
}

// dec reads a Dec, a two's complement 256 bit integer scaled by 10^12.
func (r *borshReader) dec() (math.LegacyDec, error) {
	v, err := r.littleEndianInt()
	if err != nil {
		return math.LegacyDec{}, err
	}
	if v.Bit(uint256Len*8-1) == 1 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint256Len*8))
	}
	return math.LegacyNewDecFromBigIntWithPrec(v, decPrecision), nil
}

func (r *borshReader) address() (types.Address, error) {
	tag, err := r.u8()
	if err != nil {
		return "", err
	}

	var prefix byte
	switch tag {
	case addressTagEstablished:
		prefix = pkg.PrefixEstablished
	case addressTagImplicit:
		prefix = pkg.PrefixImplicit
	case addressTagInternal:
		return "", fmt.Errorf("internal addresses are not supported")
	default:
		return "", fmt.Errorf("unknown address tag %d", tag)
	}

	hash, err := r.take(pkg.AddressHashLen)
	if err != nil {
		return "", err
	}
	encoded, err := pkg.EncodeNamadaAddress(prefix, hash)
	if err != nil {
		return "", err
	}
	return types.Address(encoded), nil
}

func (r *borshReader) addressSet() (types.ValidatorSet, error) {
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	// every address takes 21 bytes, reject lengths the buffer cannot hold
	if int(n) > (len(r.buf)-r.off)/(pkg.AddressHashLen+1) {
		return nil, fmt.Errorf("set of %d addresses exceeds the remaining %d bytes", n, len(r.buf)-r.off)
	}

	set := make(types.ValidatorSet, n)
	for range n {
		a, err := r.address()
		if err != nil {
			return nil, err
		}
		set.Add(a)
	}
	return set, nil
}

func (r *borshReader) finish() error {
	if r.off != len(r.buf) {
		return fmt.Errorf("%d trailing bytes", len(r.buf)-r.off)
	}
	return nil
}

// decode runs f over the whole of b and turns any failure into a ConversionError.
func decode[T any](what string, b []byte, f func(r *borshReader) (T, error)) (T, error) {
	r := newBorshReader(b)
	v, err := f(r)
	if err == nil {
		err = r.finish()
	}
	if err != nil {
		var zero T
		return zero, types.NewErrorWithMsg(types.ErrConversion, "failed to decode %s: %v", what, err)
	}
	return v, nil
}

func decodeEpoch(b []byte) (types.Epoch, error) {
	return decode("epoch", b, func(r *borshReader) (types.Epoch, error) {
		v, err := r.u64()
		return types.Epoch(v), err
	})
}

func decodeAddress(b []byte) (types.Address, error) {
	return decode("address", b, (*borshReader).address)
}

func decodeAmount(b []byte) (math.Int, error) {
	return decode("amount", b, (*borshReader).amount)
}

func decodeValidatorSet(b []byte) (types.ValidatorSet, error) {
	return decode("validator set", b, (*borshReader).addressSet)
}

// decodeRewardsRate reads the (inflation rate, staking rewards rate) pair and
// returns the inflation rate.
func decodeRewardsRate(b []byte) (math.LegacyDec, error) {
	return decode("staking rewards rate", b, func(r *borshReader) (math.LegacyDec, error) {
		inflation, err := r.dec()
		if err != nil {
			return math.LegacyDec{}, err
		}
		if _, err := r.dec(); err != nil {
			return math.LegacyDec{}, err
		}
		return inflation, nil
	})
}

// decodeCommission reads a CommissionPair and returns its commission rate.
func decodeCommission(b []byte) (math.LegacyDec, error) {
	return decode("commission pair", b, func(r *borshReader) (math.LegacyDec, error) {
		var rate *math.LegacyDec
		for i := range 2 {
			some, err := r.option()
			if err != nil {
				return math.LegacyDec{}, err
			}
			if !some {
				continue
			}
			d, err := r.dec()
			if err != nil {
				return math.LegacyDec{}, err
			}
			if i == 0 {
				rate = &d
			}
		}
		if _, err := r.u64(); err != nil {
			return math.LegacyDec{}, err
		}
		if rate == nil {
			return math.LegacyDec{}, fmt.Errorf("validator has no commission rate")
		}
		return *rate, nil
	})
}
