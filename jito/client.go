package jito

import (
	"context"
	"encoding/json"
	"fmt"
	"fusiongo/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/go-resty/resty/v2"
	"github.com/mr-tron/base58"
	"golang.org/x/time/rate"
	"time"
)

const DEFAULT_JITO_HTTP_TIMEOUT = 10 * time.Second

type ClientConfig struct {
	/// http client, a fresh resty client is created when nil
	HttpClient *resty.Client
	/// requests per second allowed towards the block engine, unlimited when zero
	RateLimit float64
}

// Client talks JSON-RPC to a Jito block engine. It is safe for concurrent use.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
}

func CreateClient(config ClientConfig) *Client {
	httpClient := config.HttpClient
	if httpClient == nil {
		httpClient = resty.New().SetTimeout(DEFAULT_JITO_HTTP_TIMEOUT)
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}
	return &Client{
		http:    httpClient,
		limiter: limiter,
	}
}

// EncodeTransaction serializes a signed transaction in the base58 form sendBundle
// expects.
func EncodeTransaction(tx *solana.Transaction) (string, error) {
	rawTx, err := tx.MarshalBinary()
	if err != nil {
		return "", err
	}
	return base58.Encode(rawTx), nil
}

func call[T any](ctx context.Context, p *Client, url string, method string, params ...interface{}) (T, error) {
	var empty T
	if err := p.limiter.Wait(ctx); err != nil {
		return empty, err
	}
	resp, err := p.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(jsonRpcRequest{
			Jsonrpc: "2.0",
			Id:      1,
			Method:  method,
			Params:  params,
		}).
		Post(url)
	if err != nil {
		return empty, err
	}

	var response jsonRpcResponse[T]
	decodeErr := json.Unmarshal(resp.Body(), &response)
	if decodeErr == nil && response.Error != nil {
		return empty, response.Error
	}
	if resp.IsError() {
		return empty, fmt.Errorf("block engine http %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	if decodeErr != nil {
		return empty, fmt.Errorf("%w: %v", ErrUnexpectedReply, decodeErr)
	}
	return response.Result, nil
}

// SendBundle submits base58 encoded transactions as one bundle and returns the bundle id.
func (p *Client) SendBundle(ctx context.Context, url string, transactions []string) (string, error) {
	if len(transactions) == 0 {
		return "", ErrEmptyBundle
	}
	bundleId, err := call[string](ctx, p, url, "sendBundle", transactions)
	if err != nil {
		return "", err
	}
	if bundleId == "" {
		return "", fmt.Errorf("%w: empty bundle id", ErrUnexpectedReply)
	}
	return bundleId, nil
}

func (p *Client) GetBundleStatuses(ctx context.Context, url string, bundleIds []string) (*BundleStatusesResult, error) {
	result, err := call[*BundleStatusesResult](ctx, p, url, "getBundleStatuses", bundleIds)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return &BundleStatusesResult{}, nil
	}
	return result, nil
}

// PollBundleStatuses waits for bundleId to land and returns the signature of its first
// transaction. The first status check runs after one interval.
func (p *Client) PollBundleStatuses(
	ctx context.Context,
	url string,
	bundleId string,
	interval time.Duration,
	timeout time.Duration,
) (solana.Signature, error) {
	var signature solana.Signature
	err := utils.Poll(ctx, interval, timeout, func(ctx context.Context) (bool, error) {
		statuses, err := p.GetBundleStatuses(ctx, url, []string{bundleId})
		if err != nil {
			return false, err
		}
		status := findBundleStatus(statuses, bundleId)
		if status == nil {
			return false, nil
		}
		if status.Failed() {
			return false, fmt.Errorf("%w: bundle %s: %v", ErrBundleFailed, bundleId, status.Err)
		}
		if !status.Landed() {
			return false, nil
		}
		if len(status.Transactions) == 0 {
			return false, fmt.Errorf("%w: bundle %s", ErrBundleNoTx, bundleId)
		}
		signature, err = solana.SignatureFromBase58(status.Transactions[0])
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrUnexpectedReply, err)
		}
		return true, nil
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("bundle %s: %w", bundleId, err)
	}
	return signature, nil
}

func findBundleStatus(statuses *BundleStatusesResult, bundleId string) *BundleStatus {
	for _, status := range statuses.Value {
		if status != nil && status.BundleId == bundleId {
			return status
		}
	}
	return nil
}
