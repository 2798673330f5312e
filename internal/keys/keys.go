package keys

import (
	stded25519 "crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/cometbft/cometbft/crypto/ed25519"
	"github.com/cometbft/cometbft/crypto/tmhash"

	"github.com/yieldloop/namada-compounder/internal/types"
	"github.com/yieldloop/namada-compounder/pkg"
)

// ed25519KeyTag is the borsh variant tag Namada prefixes ed25519 keys with,
// both in their textual form and when hashing a public key into an address.
const ed25519KeyTag = 0x00

var ErrUnsupportedKey = errors.New("only ed25519 secret keys are supported")

// SigningKey is the delegator's ed25519 key. It never prints its secret.
type SigningKey struct {
	priv ed25519.PrivKey
}

// ParseSecretKey accepts the Namada textual form of an ed25519 secret key
// ("00" followed by the 32 byte seed in hex) or the bare hex seed.
func ParseSecretKey(s string) (*SigningKey, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")

	switch len(s) {
	case 2 + 2*stded25519.SeedSize:
		if !strings.HasPrefix(s, "00") {
			return nil, ErrUnsupportedKey
		}
		s = s[2:]
	case 2 * stded25519.SeedSize:
	default:
		return nil, fmt.Errorf("secret key must be %d hex characters, got %d", 2*stded25519.SeedSize, len(s))
	}

	seed, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("secret key is not valid hex: %w", err)
	}

	return &SigningKey{priv: ed25519.PrivKey(stded25519.NewKeyFromSeed(seed))}, nil
}

func (k *SigningKey) Sign(msg []byte) ([]byte, error) {
	return k.priv.Sign(msg)
}

func (k *SigningKey) PublicKeyBytes() []byte {
	return k.priv.PubKey().Bytes()
}

// PublicKey is the Namada textual form of the public key
func (k *SigningKey) PublicKey() string {
	return fmt.Sprintf("%02x%s", ed25519KeyTag, hex.EncodeToString(k.PublicKeyBytes()))
}

func (k *SigningKey) VerifySignature(msg, sig []byte) bool {
	return k.priv.PubKey().VerifySignature(msg, sig)
}

// ImplicitAddress derives the implicit account address owned by the key:
// the first 20 bytes of sha256 over the tagged public key.
func (k *SigningKey) ImplicitAddress() (types.Address, error) {
	tagged := append([]byte{ed25519KeyTag}, k.PublicKeyBytes()...)
	address, err := pkg.EncodeNamadaAddress(pkg.PrefixImplicit, tmhash.SumTruncated(tagged))
	if err != nil {
		return "", fmt.Errorf("failed to encode implicit address: %w", err)
	}
	return types.Address(address), nil
}

func (k *SigningKey) String() string {
	return "SigningKey(" + k.PublicKey() + ")"
}
