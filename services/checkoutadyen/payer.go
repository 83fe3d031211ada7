package checkoutadyen

import (
	"context"
	"strings"

	"github.com/adyen/adyen-go-api-library/v6/src/adyen"
	"github.com/adyen/adyen-go-api-library/v6/src/checkout"
	"github.com/adyen/adyen-go-api-library/v6/src/common"
)

// Payer is the handle on the Adyen checkout API. Every call goes straight to the platform: no caching, no retries.
//
//go:generate mockgen -source=payer.go -package checkoutadyen -destination payer_mock.go Payer
type Payer interface {
	PaymentMethods(ctx context.Context, req checkout.PaymentMethodsRequest) (checkout.PaymentMethodsResponse, error)
	Sessions(ctx context.Context, req checkout.CreateCheckoutSessionRequest) (checkout.CreateCheckoutSessionResponse, error)
	Payments(ctx context.Context, req checkout.PaymentRequest, idempotencyKey string) (checkout.PaymentResponse, error)
}

type adyenPayer struct {
	client *adyen.APIClient
}

func NewPayer(environment string, apiKey string) Payer {
	return &adyenPayer{
		client: adyen.NewClient(&common.Config{
			ApiKey:      apiKey,
			Environment: common.Environment(strings.ToUpper(environment)),
			Debug:       false,
		}),
	}
}

func (p *adyenPayer) PaymentMethods(ctx context.Context, req checkout.PaymentMethodsRequest) (checkout.PaymentMethodsResponse, error) {
	resp, _, err := p.client.Checkout.PaymentMethods(&req, ctx)
	if err != nil {
		return checkout.PaymentMethodsResponse{}, err
	}
	return resp, nil
}

func (p *adyenPayer) Sessions(ctx context.Context, req checkout.CreateCheckoutSessionRequest) (checkout.CreateCheckoutSessionResponse, error) {
	resp, _, err := p.client.Checkout.Sessions(&req, ctx)
	if err != nil {
		return checkout.CreateCheckoutSessionResponse{}, err
	}
	return resp, nil
}

// Payments submits a payment. The platform deduplicates submissions carrying the same idempotency key.
func (p *adyenPayer) Payments(ctx context.Context, req checkout.PaymentRequest, idempotencyKey string) (checkout.PaymentResponse, error) {
	ctx = context.WithValue(ctx, common.IdempotencyKey, idempotencyKey)
	resp, _, err := p.client.Checkout.Payments(&req, ctx)
	if err != nil {
		return checkout.PaymentResponse{}, err
	}
	return resp, nil
}
