package tx

import (
	"context"
	"errors"
	"fmt"
	"fusiongo/jito"
	"fusiongo/metrics"
	"fusiongo/utils"
	"github.com/gagliardetto/solana-go"
	"time"
)

// JitoTxSender delivers the transaction as a single transaction bundle through a Jito
// block engine. Every failure is reported as ErrJitoClient, except confirmation timeouts.
type JitoTxSender struct {
	client     *jito.Client
	bundlesUrl string
}

func CreateJitoTxSender(client *jito.Client, config *JitoConfig) *JitoTxSender {
	baseUrl := utils.TTF(
		config.BlockEngineUrl != "",
		func() string { return config.BlockEngineUrl },
		func() string { return jito.GetJitoApiUrlByRegion(config.Region) },
	)
	return &JitoTxSender{
		client:     client,
		bundlesUrl: jito.GetJitoBundlesUrl(baseUrl, config.Uuid),
	}
}

func (p *JitoTxSender) deliveryStrategy() {}

func (p *JitoTxSender) Path() string {
	return metrics.PathJito
}

func (p *JitoTxSender) BundlesUrl() string {
	return p.bundlesUrl
}

func (p *JitoTxSender) Send(ctx context.Context, tx *solana.Transaction) (*DeliveryReceipt, error) {
	encodedTx, err := jito.EncodeTransaction(tx)
	if err != nil {
		return nil, newSmartTxError(ErrKindJitoClient, err)
	}
	bundleId, err := p.client.SendBundle(ctx, p.bundlesUrl, []string{encodedTx})
	if err != nil {
		return nil, newSmartTxError(ErrKindJitoClient, err)
	}
	return &DeliveryReceipt{BundleId: &bundleId}, nil
}

func (p *JitoTxSender) AwaitConfirmation(
	ctx context.Context,
	receipt *DeliveryReceipt,
	interval time.Duration,
	timeout time.Duration,
) (solana.Signature, error) {
	if receipt == nil || receipt.BundleId == nil {
		return solana.Signature{}, newSmartTxError(ErrKindJitoClient, errors.New("receipt without bundle id"))
	}
	signature, err := p.client.PollBundleStatuses(ctx, p.bundlesUrl, *receipt.BundleId, interval, timeout)
	if err != nil {
		err = confirmationError(err, fmt.Sprintf("unable to confirm bundle %s", *receipt.BundleId))
		if IsErrorKind(err, ErrKindConfirmationTimeout) {
			return solana.Signature{}, err
		}
		return solana.Signature{}, newSmartTxError(ErrKindJitoClient, err)
	}
	return signature, nil
}
