package services

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/yieldloop/namada-compounder/internal/clients/namadaclient"
	"github.com/yieldloop/namada-compounder/internal/types"
)

// ReclaimAndRebond claims the rewards of every validator in the set and bonds
// what the claim added to the delegator's balance back to the same set. It
// returns the re-bonded reward. The steps run strictly in order and the first
// failure aborts the rest.
func (s *Service) ReclaimAndRebond(
	ctx context.Context, delegator types.Address, validators types.ValidatorSet, signer namadaclient.Signer,
) (math.Int, error) {
	log := log.Ctx(ctx)

	token, err := s.namada.GetNativeToken(ctx)
	if err != nil {
		return math.ZeroInt(), err
	}

	balancePre, err := s.namada.GetBalance(ctx, delegator, token)
	if err != nil {
		return math.ZeroInt(), fmt.Errorf("failed to read balance before claiming: %w", err)
	}

	claimAck, err := s.namada.SubmitClaimRewards(ctx, delegator, validators, signer)
	if err != nil {
		return math.ZeroInt(), fmt.Errorf("failed to claim rewards: %w", err)
	}
	log.Debug().Strs("tx_hashes", claimAck.Hashes()).Msg("rewards claimed")

	balancePost, err := s.namada.GetBalance(ctx, delegator, token)
	if err != nil {
		return math.ZeroInt(), fmt.Errorf("failed to read balance after claiming: %w", err)
	}

	reward := balancePost.Sub(balancePre)
	if reward.IsNegative() {
		return math.ZeroInt(), types.NewErrorWithMsg(types.ErrIntegrity,
			"balance dropped from %s to %s while claiming rewards", balancePre, balancePost)
	}

	if reward.IsZero() {
		log.Info().Msg("No rewards were claimed, skipping bond")
		return reward, nil
	}

	bondAck, err := s.namada.SubmitBond(ctx, delegator, validators, reward, signer)
	if err != nil {
		return math.ZeroInt(), fmt.Errorf("failed to bond %s: %w", reward, err)
	}

	log.Info().
		Str("reward", reward.String()).
		Int("validators", validators.Len()).
		Strs("tx_hashes", bondAck.Hashes()).
		Msg("Rewards re-bonded")

	return reward, nil
}
