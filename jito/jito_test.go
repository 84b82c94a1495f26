package jito

import (
	"context"
	"encoding/json"
	"errors"
	"fusiongo/utils"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
)

type blockEngine struct {
	t        *testing.T
	requests atomic.Int32
	handle   func(request jsonRpcRequest, count int32) (int, string)
}

func newBlockEngine(t *testing.T, handle func(request jsonRpcRequest, count int32) (int, string)) (*blockEngine, *httptest.Server) {
	engine := &blockEngine{t: t, handle: handle}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var request jsonRpcRequest
		require.NoError(t, json.Unmarshal(body, &request))
		require.Equal(t, JITO_BUNDLES_PATH, r.URL.Path)
		status, reply := engine.handle(request, engine.requests.Add(1))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(server.Close)
	return engine, server
}

func TestGetJitoApiUrlByRegion(t *testing.T) {
	require.Equal(t, JitoApiUrls["frankfurt"], GetJitoApiUrlByRegion("Frankfurt"))
	require.Equal(t, JitoApiUrls["ny"], GetJitoApiUrlByRegion("NY"))
	require.Equal(t, JitoApiUrls["ny"], GetJitoApiUrlByRegion("new-york"))
	require.Equal(t, JitoApiUrls["slc"], GetJitoApiUrlByRegion("Salt Lake City"))
	require.Equal(t, JitoApiUrls[JITO_DEFAULT_REGION], GetJitoApiUrlByRegion("Default"))
	require.Equal(t, JitoApiUrls[JITO_DEFAULT_REGION], GetJitoApiUrlByRegion("mars"))
	require.Equal(t, JitoApiUrls[JITO_DEFAULT_REGION], GetJitoApiUrlByRegion(""))
}

func TestGetJitoBundlesUrl(t *testing.T) {
	require.Equal(t, "https://x.wtf/api/v1/bundles", GetJitoBundlesUrl("https://x.wtf/", ""))
	require.Equal(t, "https://x.wtf/api/v1/bundles?uuid=abc-123", GetJitoBundlesUrl("https://x.wtf", "abc-123"))
}

func TestJitoTipAccounts(t *testing.T) {
	require.NotEmpty(t, JitoTipAccounts)
	seen := make(map[solana.PublicKey]bool, len(JitoTipAccounts))
	for _, account := range JitoTipAccounts {
		require.False(t, account.IsZero())
		require.False(t, seen[account], "duplicate tip account %s", account)
		seen[account] = true
		require.True(t, IsTipAccount(account))
	}
	require.False(t, IsTipAccount(solana.SystemProgramID))
}

func TestCreateTipInstruction(t *testing.T) {
	payer := solana.NewWallet().PublicKey()

	for _, tc := range []struct {
		tips     uint64
		expected uint64
	}{
		{tips: 0, expected: 1000},
		{tips: 500, expected: 1000},
		{tips: 1000, expected: 1000},
		{tips: 25_000, expected: 25_000},
	} {
		ix := CreateTipInstruction(payer, tc.tips)
		require.True(t, ix.ProgramID().Equals(solana.SystemProgramID))
		accounts := ix.Accounts()
		require.True(t, accounts[0].PublicKey.Equals(payer))
		require.True(t, IsTipAccount(accounts[1].PublicKey))

		data, err := ix.Data()
		require.NoError(t, err)
		decoded, err := system.DecodeInstruction(accounts, data)
		require.NoError(t, err)
		transfer, ok := decoded.Impl.(*system.Transfer)
		require.True(t, ok)
		require.Equal(t, tc.expected, *transfer.Lamports)
	}
}

func TestSendBundle(t *testing.T) {
	_, server := newBlockEngine(t, func(request jsonRpcRequest, count int32) (int, string) {
		require.Equal(t, "sendBundle", request.Method)
		require.Equal(t, "2.0", request.Jsonrpc)
		require.Len(t, request.Params, 1)
		require.Equal(t, []interface{}{"tx1"}, request.Params[0])
		return http.StatusOK, `{"jsonrpc":"2.0","result":"bundle-1","id":1}`
	})
	client := CreateClient(ClientConfig{})

	bundleId, err := client.SendBundle(context.Background(), GetJitoBundlesUrl(server.URL, ""), []string{"tx1"})
	require.NoError(t, err)
	require.Equal(t, "bundle-1", bundleId)

	_, err = client.SendBundle(context.Background(), GetJitoBundlesUrl(server.URL, ""), nil)
	require.ErrorIs(t, err, ErrEmptyBundle)
}

func TestSendBundleErrors(t *testing.T) {
	t.Run("json-rpc error", func(t *testing.T) {
		_, server := newBlockEngine(t, func(request jsonRpcRequest, count int32) (int, string) {
			return http.StatusBadRequest, `{"jsonrpc":"2.0","error":{"code":-32602,"message":"bundle must tip"},"id":1}`
		})
		_, err := CreateClient(ClientConfig{}).SendBundle(context.Background(), GetJitoBundlesUrl(server.URL, ""), []string{"tx"})
		var rpcErr *JsonRpcError
		require.ErrorAs(t, err, &rpcErr)
		require.Equal(t, -32602, rpcErr.Code)
	})

	t.Run("http error", func(t *testing.T) {
		_, server := newBlockEngine(t, func(request jsonRpcRequest, count int32) (int, string) {
			return http.StatusTooManyRequests, `rate limited`
		})
		_, err := CreateClient(ClientConfig{}).SendBundle(context.Background(), GetJitoBundlesUrl(server.URL, ""), []string{"tx"})
		require.ErrorContains(t, err, "429")
	})
}

func TestPollBundleStatuses(t *testing.T) {
	signature := solana.Signature{1, 2, 3}
	engine, server := newBlockEngine(t, func(request jsonRpcRequest, count int32) (int, string) {
		require.Equal(t, "getBundleStatuses", request.Method)
		switch count {
		case 1:
			return http.StatusOK, `{"jsonrpc":"2.0","result":{"context":{"slot":1},"value":[]},"id":1}`
		case 2:
			return http.StatusOK, `{"jsonrpc":"2.0","result":{"context":{"slot":2},"value":[{"bundle_id":"b1","transactions":["` +
				signature.String() + `"],"slot":2,"confirmation_status":"processed","err":{"Ok":null}}]},"id":1}`
		}
		return http.StatusOK, `{"jsonrpc":"2.0","result":{"context":{"slot":3},"value":[{"bundle_id":"b1","transactions":["` +
			signature.String() + `"],"slot":2,"confirmation_status":"confirmed","err":{"Ok":null}}]},"id":1}`
	})

	got, err := CreateClient(ClientConfig{}).PollBundleStatuses(
		context.Background(), GetJitoBundlesUrl(server.URL, ""), "b1", time.Millisecond, time.Second)
	require.NoError(t, err)
	require.Equal(t, signature, got)
	require.Equal(t, int32(3), engine.requests.Load())
}

func TestPollBundleStatusesMatchesBundleId(t *testing.T) {
	signature := solana.Signature{4, 5, 6}
	engine, server := newBlockEngine(t, func(request jsonRpcRequest, count int32) (int, string) {
		if count == 1 {
			return http.StatusOK, `{"jsonrpc":"2.0","result":{"context":{"slot":1},"value":[` +
				`{"bundle_id":"","transactions":["` + solana.Signature{9}.String() + `"],"slot":1,"confirmation_status":"finalized","err":{"Ok":null}},` +
				`{"bundle_id":"other","transactions":["` + solana.Signature{8}.String() + `"],"slot":1,"confirmation_status":"finalized","err":{"Ok":null}}` +
				`]},"id":1}`
		}
		return http.StatusOK, `{"jsonrpc":"2.0","result":{"context":{"slot":2},"value":[` +
			`{"bundle_id":"","transactions":["` + solana.Signature{9}.String() + `"],"slot":1,"confirmation_status":"finalized","err":{"Ok":null}},` +
			`{"bundle_id":"b1","transactions":["` + signature.String() + `"],"slot":2,"confirmation_status":"confirmed","err":{"Ok":null}}` +
			`]},"id":1}`
	})

	got, err := CreateClient(ClientConfig{}).PollBundleStatuses(
		context.Background(), GetJitoBundlesUrl(server.URL, ""), "b1", time.Millisecond, time.Second)
	require.NoError(t, err)
	require.Equal(t, signature, got)
	require.Equal(t, int32(2), engine.requests.Load())
}

func TestPollBundleStatusesFailed(t *testing.T) {
	_, server := newBlockEngine(t, func(request jsonRpcRequest, count int32) (int, string) {
		return http.StatusOK, `{"jsonrpc":"2.0","result":{"context":{"slot":3},"value":[{"bundle_id":"b1","transactions":[],"slot":2,"confirmation_status":"processed","err":{"Err":"simulation failure"}}]},"id":1}`
	})

	_, err := CreateClient(ClientConfig{}).PollBundleStatuses(
		context.Background(), GetJitoBundlesUrl(server.URL, ""), "b1", time.Millisecond, time.Second)
	require.ErrorIs(t, err, ErrBundleFailed)
}

func TestPollBundleStatusesTimeout(t *testing.T) {
	_, server := newBlockEngine(t, func(request jsonRpcRequest, count int32) (int, string) {
		return http.StatusOK, `{"jsonrpc":"2.0","result":{"context":{"slot":3},"value":[null]},"id":1}`
	})

	_, err := CreateClient(ClientConfig{}).PollBundleStatuses(
		context.Background(), GetJitoBundlesUrl(server.URL, ""), "b1", 5*time.Millisecond, 20*time.Millisecond)
	require.True(t, errors.Is(err, utils.ErrPollTimeout))
}

func TestEncodeTransaction(t *testing.T) {
	payer := solana.NewWallet()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{CreateTipInstruction(payer.PublicKey(), 0)},
		solana.Hash{9},
		solana.TransactionPayer(payer.PublicKey()),
	)
	require.NoError(t, err)
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(payer.PublicKey()) {
			return &payer.PrivateKey
		}
		return nil
	})
	require.NoError(t, err)

	encoded, err := EncodeTransaction(tx)
	require.NoError(t, err)
	raw, err := base58.Decode(encoded)
	require.NoError(t, err)
	decoded, err := solana.TransactionFromBytes(raw)
	require.NoError(t, err)
	require.Equal(t, tx.Signatures, decoded.Signatures)
}
