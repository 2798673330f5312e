package namadaclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cosmossdk.io/math"
	cmtbytes "github.com/cometbft/cometbft/libs/bytes"
	ctypes "github.com/cometbft/cometbft/rpc/core/types"
	cmttypes "github.com/cometbft/cometbft/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldloop/namada-compounder/internal/clients/txbuilder"
	"github.com/yieldloop/namada-compounder/internal/config"
	"github.com/yieldloop/namada-compounder/internal/types"
)

func testConfig(rpcAddr string) *config.NamadaConfig {
	return &config.NamadaConfig{
		RPCAddr:       rpcAddr,
		Timeout:       5 * time.Second,
		MaxRetryTimes: 3,
		RetryInterval: 10 * time.Millisecond,
		CommitTimeout: time.Second,
	}
}

// fakeCometRPC answers CometBFT JSON-RPC abci_query and broadcast_tx_sync
// requests from canned values.
type fakeCometRPC struct {
	mu         sync.Mutex
	values     map[string][]byte
	codes      map[string]uint32
	broadcasts [][]byte
	queries    atomic.Int32
}

type jsonRPCRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params struct {
		Path string `json:"path"`
		Tx   []byte `json:"tx"`
	} `json:"params"`
}

func (f *fakeCometRPC) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var req jsonRPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var result string
	switch req.Method {
	case "abci_query":
		f.queries.Add(1)
		code := f.codes[req.Params.Path]
		value := base64.StdEncoding.EncodeToString(f.values[req.Params.Path])
		result = fmt.Sprintf(`{"response":{"code":%d,"log":"rejected by test","value":%q}}`, code, value)
	case "broadcast_tx_sync":
		f.broadcasts = append(f.broadcasts, req.Params.Tx)
		result = `{"code":0,"log":"","codespace":"","hash":"0A0B0C"}`
	case "tx":
		result = `{"hash":"0A0B0C","height":"12","index":0,"tx_result":{"code":0},"tx":"AQ=="}`
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.ID, result)
}

func TestNamadaClient_JSONRPCRoundTrip(t *testing.T) {
	validatorSet := append([]byte{2, 0, 0, 0}, addressBytes(addressTagEstablished, 1)...)
	validatorSet = append(validatorSet, addressBytes(addressTagEstablished, 2)...)

	fake := &fakeCometRPC{
		values: map[string][]byte{
			"/shell/epoch":                                  u64Bytes(88),
			"/shell/native_token":                           addressBytes(addressTagEstablished, 0xee),
			"/vp/pos/staking_rewards_rate":                  append(decBytes(t, "0.118"), decBytes(t, "0.05")...),
			"/vp/pos/delegations/tnam1delegator/88":         validatorSet,
			"/vp/pos/bond/tnam1delegator/tnam1validator/88": uint256Bytes(big.NewInt(3_000_000)),
		},
		codes: map[string]uint32{
			"/vp/pos/validator/commission/tnam1unknown/88": 1,
		},
	}
	server := httptest.NewServer(fake)
	defer server.Close()

	c, err := NewNamadaClient(testConfig(server.URL), nil)
	require.NoError(t, err)
	ctx := t.Context()

	epoch, err := c.GetCurrentEpoch(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.Epoch(88), epoch)

	token, err := c.GetNativeToken(ctx)
	require.NoError(t, err)
	assert.Contains(t, token.String(), "tnam1")

	inflation, err := c.GetInflationRate(ctx)
	require.NoError(t, err)
	assert.True(t, math.LegacyMustNewDecFromStr("0.118").Equal(inflation))

	validators, err := c.GetDelegatorValidators(ctx, "tnam1delegator", epoch)
	require.NoError(t, err)
	assert.Equal(t, 2, validators.Len())

	bond, err := c.GetBond(ctx, "tnam1validator", "tnam1delegator", epoch)
	require.NoError(t, err)
	assert.True(t, bond.Equal(math.NewInt(3_000_000)))

	t.Run("missing balance reads as zero", func(t *testing.T) {
		balance, err := c.GetBalance(ctx, "tnam1delegator", token)
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})

	t.Run("rejected query is a transport error and is not retried", func(t *testing.T) {
		before := fake.queries.Load()
		_, err := c.GetValidatorCommission(ctx, "tnam1unknown", epoch)
		require.Error(t, err)
		assert.True(t, types.IsErrorCode(err, types.ErrTransport))
		assert.Contains(t, err.Error(), "rejected by test")
		assert.Equal(t, before+1, fake.queries.Load())
	})
}

func TestNamadaClient_UnreachableNode(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c, err := NewNamadaClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	_, err = c.GetCurrentEpoch(t.Context())
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrTransport))
	assert.Equal(t, int32(3), calls.Load())
}

type stubRPC struct {
	broadcastCode uint32
	broadcastErr  error
	broadcasts    []cmttypes.Tx
	// pendingPolls is how many Tx lookups fail before the tx shows up
	pendingPolls int
	txCode       uint32
	txLookups    int
}

func (s *stubRPC) ABCIQuery(context.Context, string, cmtbytes.HexBytes) (*ctypes.ResultABCIQuery, error) {
	return nil, errors.New("not used")
}

func (s *stubRPC) BroadcastTxSync(_ context.Context, tx cmttypes.Tx) (*ctypes.ResultBroadcastTx, error) {
	if s.broadcastErr != nil {
		return nil, s.broadcastErr
	}
	s.broadcasts = append(s.broadcasts, tx)
	return &ctypes.ResultBroadcastTx{Code: s.broadcastCode, Log: "out of gas", Hash: cmtbytes.HexBytes{byte(len(s.broadcasts))}}, nil
}

func (s *stubRPC) Tx(_ context.Context, hash []byte, _ bool) (*ctypes.ResultTx, error) {
	s.txLookups++
	if s.txLookups <= s.pendingPolls {
		return nil, fmt.Errorf("tx (%X) not found", hash)
	}
	res := &ctypes.ResultTx{Hash: hash, Height: 10}
	res.TxResult.Code = s.txCode
	res.TxResult.Log = "vp rejected"
	return res, nil
}

func newStubbedClient(rpc *stubRPC, builder *stubBuilder) *NamadaClient {
	return &NamadaClient{
		rpc:                rpc,
		builder:            builder,
		cfg:                testConfig("http://localhost"),
		commitPollInterval: time.Millisecond,
	}
}

type stubBuilder struct {
	claims []types.Address
	bonds  []types.BondAllocation
}

func (b *stubBuilder) BuildClaimRewards(_ context.Context, _, validator types.Address, _ string) (*txbuilder.UnsignedTx, error) {
	b.claims = append(b.claims, validator)
	return &txbuilder.UnsignedTx{Tx: []byte("claim:" + validator), SignBytes: []byte("sign")}, nil
}

func (b *stubBuilder) BuildBond(
	_ context.Context, _, validator types.Address, amount math.Int, _ string,
) (*txbuilder.UnsignedTx, error) {
	b.bonds = append(b.bonds, types.BondAllocation{Validator: validator, Amount: amount})
	return &txbuilder.UnsignedTx{Tx: []byte("bond:" + validator), SignBytes: []byte("sign")}, nil
}

func (b *stubBuilder) Seal(_ context.Context, tx []byte, _ string, signature []byte) ([]byte, error) {
	return append(append([]byte{}, tx...), signature...), nil
}

type stubSigner struct{}

func (stubSigner) Sign(msg []byte) ([]byte, error) { return []byte("|sig"), nil }
func (stubSigner) PublicKey() string               { return "00ff" }

func TestNamadaClient_Submissions(t *testing.T) {
	validators := types.NewValidatorSet("tnam1b", "tnam1a")

	t.Run("claim rewards from every validator in order", func(t *testing.T) {
		rpc := &stubRPC{}
		builder := &stubBuilder{}
		c := newStubbedClient(rpc, builder)

		ack, err := c.SubmitClaimRewards(t.Context(), "tnam1me", validators, stubSigner{})
		require.NoError(t, err)
		assert.Equal(t, []types.Address{"tnam1a", "tnam1b"}, builder.claims)
		assert.Len(t, ack.TxHashes, 2)
		require.Len(t, rpc.broadcasts, 2)
		assert.Equal(t, cmttypes.Tx("claim:tnam1a|sig"), rpc.broadcasts[0])
	})

	t.Run("bond splits the amount", func(t *testing.T) {
		rpc := &stubRPC{}
		builder := &stubBuilder{}
		c := newStubbedClient(rpc, builder)

		ack, err := c.SubmitBond(t.Context(), "tnam1me", validators, math.NewInt(11), stubSigner{})
		require.NoError(t, err)
		assert.Len(t, ack.TxHashes, 2)
		assert.Equal(t, []types.BondAllocation{
			{Validator: "tnam1a", Amount: math.NewInt(6)},
			{Validator: "tnam1b", Amount: math.NewInt(5)},
		}, builder.bonds)
	})

	t.Run("rejected broadcast stops the sequence", func(t *testing.T) {
		rpc := &stubRPC{broadcastCode: 11}
		builder := &stubBuilder{}
		c := newStubbedClient(rpc, builder)

		ack, err := c.SubmitClaimRewards(t.Context(), "tnam1me", validators, stubSigner{})
		require.Error(t, err)
		assert.True(t, types.IsErrorCode(err, types.ErrTransport))
		assert.Contains(t, err.Error(), "out of gas")
		assert.Empty(t, ack.TxHashes)
		assert.Len(t, builder.claims, 1)
	})

	t.Run("waits for the tx to be committed", func(t *testing.T) {
		rpc := &stubRPC{pendingPolls: 3}
		builder := &stubBuilder{}
		c := newStubbedClient(rpc, builder)

		_, err := c.SubmitBond(t.Context(), "tnam1me", types.NewValidatorSet("tnam1a"), math.NewInt(10), stubSigner{})
		require.NoError(t, err)
		assert.Equal(t, 4, rpc.txLookups)
	})

	t.Run("failed block result is a transport error", func(t *testing.T) {
		rpc := &stubRPC{txCode: 3}
		builder := &stubBuilder{}
		c := newStubbedClient(rpc, builder)

		_, err := c.SubmitClaimRewards(t.Context(), "tnam1me", validators, stubSigner{})
		require.Error(t, err)
		assert.True(t, types.IsErrorCode(err, types.ErrTransport))
		assert.Contains(t, err.Error(), "vp rejected")
	})

	t.Run("tx never committed", func(t *testing.T) {
		rpc := &stubRPC{pendingPolls: 1 << 30}
		builder := &stubBuilder{}
		c := newStubbedClient(rpc, builder)
		c.cfg.CommitTimeout = 20 * time.Millisecond

		_, err := c.SubmitClaimRewards(t.Context(), "tnam1me", validators, stubSigner{})
		require.Error(t, err)
		assert.True(t, types.IsErrorCode(err, types.ErrTransport))
		assert.Contains(t, err.Error(), "not committed")
	})

	t.Run("broadcast failures are not retried", func(t *testing.T) {
		rpc := &stubRPC{broadcastErr: errors.New("connection reset")}
		builder := &stubBuilder{}
		c := newStubbedClient(rpc, builder)

		_, err := c.SubmitBond(t.Context(), "tnam1me", validators, math.NewInt(10), stubSigner{})
		require.Error(t, err)
		assert.True(t, types.IsErrorCode(err, types.ErrTransport))
		assert.Len(t, builder.bonds, 1)
	})
}
