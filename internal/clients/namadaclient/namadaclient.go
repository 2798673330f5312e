package namadaclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cosmossdk.io/math"
	"github.com/avast/retry-go/v4"
	cmtbytes "github.com/cometbft/cometbft/libs/bytes"
	rpchttp "github.com/cometbft/cometbft/rpc/client/http"
	ctypes "github.com/cometbft/cometbft/rpc/core/types"
	cmttypes "github.com/cometbft/cometbft/types"
	"github.com/rs/zerolog/log"

	"github.com/yieldloop/namada-compounder/internal/clients/txbuilder"
	"github.com/yieldloop/namada-compounder/internal/config"
	"github.com/yieldloop/namada-compounder/internal/types"
)

// rpcClient is the part of the CometBFT RPC client the Namada client uses.
type rpcClient interface {
	ABCIQuery(ctx context.Context, path string, data cmtbytes.HexBytes) (*ctypes.ResultABCIQuery, error)
	BroadcastTxSync(ctx context.Context, tx cmttypes.Tx) (*ctypes.ResultBroadcastTx, error)
	Tx(ctx context.Context, hash []byte, prove bool) (*ctypes.ResultTx, error)
}

const defaultCommitPollInterval = time.Second

type NamadaClient struct {
	rpc                rpcClient
	builder            txbuilder.Builder
	cfg                *config.NamadaConfig
	commitPollInterval time.Duration
}

func NewNamadaClient(cfg *config.NamadaConfig, builder txbuilder.Builder) (*NamadaClient, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	rpc, err := rpchttp.NewWithClient(cfg.RPCAddr, "/websocket", httpClient)
	if err != nil {
		return nil, fmt.Errorf("error while creating Namada RPC client: %w", err)
	}
	return &NamadaClient{
		rpc:                rpc,
		builder:            builder,
		cfg:                cfg,
		commitPollInterval: defaultCommitPollInterval,
	}, nil
}

func (c *NamadaClient) GetCurrentEpoch(ctx context.Context) (types.Epoch, error) {
	value, err := c.query(ctx, "/shell/epoch")
	if err != nil {
		return 0, fmt.Errorf("failed to get current epoch: %w", err)
	}
	return decodeEpoch(value)
}

func (c *NamadaClient) GetInflationRate(ctx context.Context) (math.LegacyDec, error) {
	value, err := c.query(ctx, "/vp/pos/staking_rewards_rate")
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("failed to get staking rewards rate: %w", err)
	}
	return decodeRewardsRate(value)
}

func (c *NamadaClient) GetDelegatorValidators(
	ctx context.Context, delegator types.Address, epoch types.Epoch,
) (types.ValidatorSet, error) {
	value, err := c.query(ctx, fmt.Sprintf("/vp/pos/delegations/%s/%s", delegator, epoch))
	if err != nil {
		return nil, fmt.Errorf("failed to get validators of %s: %w", delegator, err)
	}
	return decodeValidatorSet(value)
}

func (c *NamadaClient) GetValidatorCommission(
	ctx context.Context, validator types.Address, epoch types.Epoch,
) (math.LegacyDec, error) {
	value, err := c.query(ctx, fmt.Sprintf("/vp/pos/validator/commission/%s/%s", validator, epoch))
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("failed to get commission of %s: %w", validator, err)
	}
	return decodeCommission(value)
}

func (c *NamadaClient) GetBond(
	ctx context.Context, validator, delegator types.Address, epoch types.Epoch,
) (math.Int, error) {
	value, err := c.query(ctx, fmt.Sprintf("/vp/pos/bond/%s/%s/%s", delegator, validator, epoch))
	if err != nil {
		return math.Int{}, fmt.Errorf("failed to get bond of %s to %s: %w", delegator, validator, err)
	}
	return decodeAmount(value)
}

func (c *NamadaClient) GetBalance(ctx context.Context, owner, token types.Address) (math.Int, error) {
	value, err := c.query(ctx, fmt.Sprintf("/shell/value/#%s/balance/#%s", token, owner))
	if err != nil {
		return math.Int{}, fmt.Errorf("failed to get %s balance of %s: %w", token, owner, err)
	}
	// an account that never held the token has no storage value
	if len(value) == 0 {
		return math.ZeroInt(), nil
	}
	return decodeAmount(value)
}

func (c *NamadaClient) GetNativeToken(ctx context.Context) (types.Address, error) {
	value, err := c.query(ctx, "/shell/native_token")
	if err != nil {
		return "", fmt.Errorf("failed to get native token: %w", err)
	}
	return decodeAddress(value)
}

// SubmitClaimRewards broadcasts one claim-rewards transaction per validator,
// in sorted order, and stops at the first failure.
func (c *NamadaClient) SubmitClaimRewards(
	ctx context.Context, delegator types.Address, validators types.ValidatorSet, signer Signer,
) (*TxAck, error) {
	ack := &TxAck{}
	for _, validator := range validators.Sorted() {
		tx, err := c.builder.BuildClaimRewards(ctx, delegator, validator, signer.PublicKey())
		if err != nil {
			return ack, types.NewError(types.ErrTransport, err)
		}

		hash, err := c.signAndBroadcast(ctx, tx, signer)
		if err != nil {
			return ack, fmt.Errorf("failed to claim rewards from %s: %w", validator, err)
		}
		ack.TxHashes = append(ack.TxHashes, hash)

		log.Ctx(ctx).Info().
			Str("validator", validator.String()).
			Str("tx_hash", hash).
			Msg("claim-rewards tx submitted")
	}
	return ack, nil
}

// SubmitBond bonds amount split evenly across the validators, see
// types.SplitBond.
func (c *NamadaClient) SubmitBond(
	ctx context.Context, delegator types.Address, validators types.ValidatorSet, amount math.Int, signer Signer,
) (*TxAck, error) {
	ack := &TxAck{}
	for _, allocation := range types.SplitBond(amount, validators) {
		tx, err := c.builder.BuildBond(ctx, delegator, allocation.Validator, allocation.Amount, signer.PublicKey())
		if err != nil {
			return ack, types.NewError(types.ErrTransport, err)
		}

		hash, err := c.signAndBroadcast(ctx, tx, signer)
		if err != nil {
			return ack, fmt.Errorf("failed to bond %s to %s: %w", allocation.Amount, allocation.Validator, err)
		}
		ack.TxHashes = append(ack.TxHashes, hash)

		log.Ctx(ctx).Info().
			Str("validator", allocation.Validator.String()).
			Str("amount", allocation.Amount.String()).
			Str("tx_hash", hash).
			Msg("bond tx submitted")
	}
	return ack, nil
}

func (c *NamadaClient) signAndBroadcast(ctx context.Context, tx *txbuilder.UnsignedTx, signer Signer) (string, error) {
	signature, err := signer.Sign(tx.SignBytes)
	if err != nil {
		return "", fmt.Errorf("failed to sign tx: %w", err)
	}

	sealed, err := c.builder.Seal(ctx, tx.Tx, signer.PublicKey(), signature)
	if err != nil {
		return "", types.NewError(types.ErrTransport, err)
	}

	// broadcasts are never retried, a lost response does not mean a lost tx
	res, err := c.rpc.BroadcastTxSync(ctx, sealed)
	if err != nil {
		return "", types.NewError(types.ErrTransport, fmt.Errorf("failed to broadcast tx: %w", err))
	}
	if res.Code != 0 {
		return "", types.NewErrorWithMsg(types.ErrTransport,
			"tx %s rejected with code %d: %s", res.Hash, res.Code, res.Log)
	}

	if err := c.waitForCommit(ctx, res.Hash); err != nil {
		return "", err
	}
	return res.Hash.String(), nil
}

// waitForCommit polls the node until the tx is part of a block, so reads that
// follow see its effects.
func (c *NamadaClient) waitForCommit(ctx context.Context, hash cmtbytes.HexBytes) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.CommitTimeout)
	defer cancel()

	ticker := time.NewTicker(c.commitPollInterval)
	defer ticker.Stop()

	for {
		res, err := c.rpc.Tx(ctx, hash, false)
		if err == nil {
			if res.TxResult.Code != 0 {
				return types.NewErrorWithMsg(types.ErrTransport,
					"tx %s failed at height %d with code %d: %s", hash, res.Height, res.TxResult.Code, res.TxResult.Log)
			}
			return nil
		}
		log.Ctx(ctx).Debug().Err(err).Str("tx_hash", hash.String()).Msg("tx not committed yet")

		select {
		case <-ctx.Done():
			return types.NewErrorWithMsg(types.ErrTransport, "tx %s not committed within %s", hash, c.cfg.CommitTimeout)
		case <-ticker.C:
		}
	}
}

var errQueryRejected = errors.New("query rejected")

func (c *NamadaClient) query(ctx context.Context, path string) ([]byte, error) {
	callForQuery := func() (*ctypes.ResultABCIQuery, error) {
		res, err := c.rpc.ABCIQuery(ctx, path, nil)
		if err != nil {
			return nil, err
		}
		if res.Response.Code != 0 {
			// the node answered, asking again gives the same answer
			return nil, retry.Unrecoverable(fmt.Errorf("%w: %s returned code %d: %s",
				errQueryRejected, path, res.Response.Code, strings.TrimSpace(res.Response.Log)))
		}
		return res, nil
	}

	res, err := clientCallWithRetry(ctx, callForQuery, c.cfg)
	if err != nil {
		return nil, types.NewError(types.ErrTransport, err)
	}
	return res.Response.Value, nil
}

func clientCallWithRetry[T any](
	ctx context.Context, call retry.RetryableFuncWithData[*T], cfg *config.NamadaConfig,
) (*T, error) {
	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("failed to call the RPC client")
		}))

	if err != nil {
		return nil, err
	}
	return result, nil
}
