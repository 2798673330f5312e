package txbuilder

import (
	"context"

	"cosmossdk.io/math"

	"github.com/yieldloop/namada-compounder/internal/types"
)

// UnsignedTx is a transaction built by the sidecar together with the bytes
// the delegator key has to sign.
type UnsignedTx struct {
	Tx        []byte `json:"tx"`
	SignBytes []byte `json:"sign_bytes"`
}

type Builder interface {
	BuildClaimRewards(ctx context.Context, source, validator types.Address, publicKey string) (*UnsignedTx, error)
	BuildBond(ctx context.Context, source, validator types.Address, amount math.Int, publicKey string) (*UnsignedTx, error)
	// Seal attaches the signature to a built transaction and returns the
	// bytes ready for broadcast.
	Seal(ctx context.Context, tx []byte, publicKey string, signature []byte) ([]byte, error)
}
