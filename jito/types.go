package jito

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrEmptyBundle     = errors.New("bundle has no transactions")
	ErrBundleFailed    = errors.New("bundle failed")
	ErrBundleNoTx      = errors.New("bundle status has no transactions")
	ErrUnexpectedReply = errors.New("unexpected block engine reply")
)

const (
	BundleStatusProcessed = "processed"
	BundleStatusConfirmed = "confirmed"
	BundleStatusFinalized = "finalized"
)

type jsonRpcRequest struct {
	Jsonrpc string        `json:"jsonrpc"`
	Id      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type jsonRpcResponse[T any] struct {
	Jsonrpc string        `json:"jsonrpc"`
	Id      int           `json:"id"`
	Result  T             `json:"result"`
	Error   *JsonRpcError `json:"error,omitempty"`
}

type JsonRpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (p *JsonRpcError) Error() string {
	return fmt.Sprintf("block engine error %d: %s", p.Code, p.Message)
}

type BundleStatusContext struct {
	Slot uint64 `json:"slot"`
}

type BundleStatus struct {
	BundleId           string                 `json:"bundle_id"`
	Transactions       []string               `json:"transactions"`
	Slot               uint64                 `json:"slot"`
	ConfirmationStatus string                 `json:"confirmation_status"`
	Err                map[string]interface{} `json:"err"`
}

// Failed reports whether the block engine attached a non-Ok error to the bundle.
func (p *BundleStatus) Failed() bool {
	if p.Err == nil {
		return false
	}
	_, ok := p.Err["Ok"]
	return !ok
}

func (p *BundleStatus) Landed() bool {
	return !p.Failed() &&
		(p.ConfirmationStatus == BundleStatusConfirmed || p.ConfirmationStatus == BundleStatusFinalized)
}

type BundleStatusesResult struct {
	Context BundleStatusContext `json:"context"`
	Value   []*BundleStatus     `json:"value"`
}
