package namadaclient

import (
	"context"

	"cosmossdk.io/math"

	"github.com/yieldloop/namada-compounder/internal/types"
)

// Signer signs transaction sign-bytes with the delegator key.
type Signer interface {
	Sign(msg []byte) ([]byte, error)
	PublicKey() string
}

// TxAck lists the hashes of the transactions accepted into the mempool.
type TxAck struct {
	TxHashes []string
}

func (a *TxAck) Hashes() []string {
	if a == nil {
		return nil
	}
	return a.TxHashes
}

//go:generate mockery --name=NamadaInterface --output=./mocks --outpkg=mocks --filename=mock_namada_client.go
type NamadaInterface interface {
	GetCurrentEpoch(ctx context.Context) (types.Epoch, error)
	GetInflationRate(ctx context.Context) (math.LegacyDec, error)
	GetDelegatorValidators(ctx context.Context, delegator types.Address, epoch types.Epoch) (types.ValidatorSet, error)
	GetValidatorCommission(ctx context.Context, validator types.Address, epoch types.Epoch) (math.LegacyDec, error)
	GetBond(ctx context.Context, validator, delegator types.Address, epoch types.Epoch) (math.Int, error)
	GetBalance(ctx context.Context, owner, token types.Address) (math.Int, error)
	GetNativeToken(ctx context.Context) (types.Address, error)
	SubmitClaimRewards(ctx context.Context, delegator types.Address, validators types.ValidatorSet, signer Signer) (*TxAck, error)
	SubmitBond(
		ctx context.Context, delegator types.Address, validators types.ValidatorSet, amount math.Int, signer Signer,
	) (*TxAck, error)
}
