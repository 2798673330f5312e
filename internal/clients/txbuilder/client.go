package txbuilder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cosmossdk.io/math"
	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/yieldloop/namada-compounder/internal/clients/client"
	"github.com/yieldloop/namada-compounder/internal/config"
	"github.com/yieldloop/namada-compounder/internal/types"
)

const (
	claimRewardsEndpoint = "/v1/tx/claim-rewards"
	bondEndpoint         = "/v1/tx/bond"
	sealEndpoint         = "/v1/tx/seal"
)

type Client struct {
	httpClient *http.Client
	cfg        *config.TxBuilderConfig
}

func NewClient(cfg *config.TxBuilderConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

func (c *Client) GetBaseURL() string {
	return strings.TrimSuffix(c.cfg.URL, "/")
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

type claimRewardsRequest struct {
	Source    string `json:"source"`
	Validator string `json:"validator"`
	PublicKey string `json:"public_key"`
}

type bondRequest struct {
	Source    string `json:"source"`
	Validator string `json:"validator"`
	Amount    string `json:"amount"`
	PublicKey string `json:"public_key"`
}

type sealRequest struct {
	Tx        []byte `json:"tx"`
	PublicKey string `json:"public_key"`
	Signature []byte `json:"signature"`
}

type sealResponse struct {
	Tx []byte `json:"tx"`
}

func (c *Client) BuildClaimRewards(
	ctx context.Context, source, validator types.Address, publicKey string,
) (*UnsignedTx, error) {
	req := &claimRewardsRequest{
		Source:    source.String(),
		Validator: validator.String(),
		PublicKey: publicKey,
	}

	tx, err := clientCallWithRetry(ctx, func() (*UnsignedTx, error) {
		return build(ctx, c, claimRewardsEndpoint, req)
	}, c.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build claim-rewards tx for validator %s: %w", validator, err)
	}
	return tx, nil
}

func (c *Client) BuildBond(
	ctx context.Context, source, validator types.Address, amount math.Int, publicKey string,
) (*UnsignedTx, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("bond amount must be positive, got %s", amount)
	}

	req := &bondRequest{
		Source:    source.String(),
		Validator: validator.String(),
		Amount:    amount.String(),
		PublicKey: publicKey,
	}

	tx, err := clientCallWithRetry(ctx, func() (*UnsignedTx, error) {
		return build(ctx, c, bondEndpoint, req)
	}, c.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build bond tx for validator %s: %w", validator, err)
	}
	return tx, nil
}

func (c *Client) Seal(ctx context.Context, tx []byte, publicKey string, signature []byte) ([]byte, error) {
	req := &sealRequest{Tx: tx, PublicKey: publicKey, Signature: signature}

	sealed, err := clientCallWithRetry(ctx, func() ([]byte, error) {
		opts := &client.HttpClientOptions{Path: sealEndpoint}
		resp, err := client.SendRequest[sealRequest, sealResponse](ctx, c, http.MethodPost, opts, req)
		if err != nil {
			return nil, err
		}
		if len(resp.Tx) == 0 {
			return nil, retry.Unrecoverable(errors.New("tx builder returned an empty sealed tx"))
		}
		return resp.Tx, nil
	}, c.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to seal tx: %w", err)
	}
	return sealed, nil
}

func build[I any](ctx context.Context, c *Client, endpoint string, req *I) (*UnsignedTx, error) {
	opts := &client.HttpClientOptions{Path: endpoint}
	resp, err := client.SendRequest[I, UnsignedTx](ctx, c, http.MethodPost, opts, req)
	if err != nil {
		return nil, err
	}

	if len(resp.Tx) == 0 || len(resp.SignBytes) == 0 {
		return nil, retry.Unrecoverable(fmt.Errorf("tx builder returned an incomplete tx for %s", endpoint))
	}
	return resp, nil
}

// isRetryable replaces retry-go's default predicate, so errors marked
// retry.Unrecoverable have to be filtered here.
func isRetryable(err error) bool {
	if !retry.IsRecoverable(err) {
		return false
	}
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	// transport failures, the request never got an answer
	return !errors.Is(err, context.Canceled)
}

func clientCallWithRetry[T any](
	ctx context.Context,
	call retry.RetryableFuncWithData[T],
	cfg *config.TxBuilderConfig,
) (T, error) {
	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("failed to call the tx builder, retrying with exponential backoff")
		}))
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
