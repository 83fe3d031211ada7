package contracttests

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adyen/adyen-go-api-library/v6/src/checkout"

	"github.com/MarcGrol/adyendemo/lib/mystore"
	"github.com/MarcGrol/adyendemo/lib/myuuid"
	"github.com/MarcGrol/adyendemo/services/checkoutadyen"
)

var (
	ErrMissingMerchantAccount = errors.New("merchant account is required")
	ErrMissingReference       = errors.New("reference is required")
	ErrInvalidAmount          = errors.New("amount must be positive")
)

// Card numbers of the test environment that authorise, in the form the drop-in submits them unencrypted
var authorisingCards = map[string]bool{
	"test_4111111145551142": true,
	"test_2222400070000005": true,
	"test_370000000000002":  true,
}

var _ checkoutadyen.Payer = &FakePayer{}

// FakePayer behaves like the Adyen test environment for the calls we make
type FakePayer struct {
	uuider   myuuid.UUIDer
	sessions mystore.Store[checkout.CreateCheckoutSessionResponse]
	payments mystore.Store[checkout.PaymentResponse]
}

func NewFakePayer(uuider myuuid.UUIDer) *FakePayer {
	sessions, _, _ := mystore.NewInMemoryStore[checkout.CreateCheckoutSessionResponse](context.Background())
	payments, _, _ := mystore.NewInMemoryStore[checkout.PaymentResponse](context.Background())
	return &FakePayer{
		uuider:   uuider,
		sessions: sessions,
		payments: payments,
	}
}

func (p *FakePayer) PaymentMethods(ctx context.Context, req checkout.PaymentMethodsRequest) (checkout.PaymentMethodsResponse, error) {
	if req.MerchantAccount == "" {
		return checkout.PaymentMethodsResponse{}, ErrMissingMerchantAccount
	}
	return checkout.PaymentMethodsResponse{
		PaymentMethods: &[]checkout.PaymentMethod{
			{Name: "Cards", Type: "scheme"},
		},
	}, nil
}

func (p *FakePayer) Sessions(ctx context.Context, req checkout.CreateCheckoutSessionRequest) (checkout.CreateCheckoutSessionResponse, error) {
	if req.MerchantAccount == "" {
		return checkout.CreateCheckoutSessionResponse{}, ErrMissingMerchantAccount
	}
	if req.Reference == "" {
		return checkout.CreateCheckoutSessionResponse{}, ErrMissingReference
	}
	if req.Amount.Value <= 0 {
		return checkout.CreateCheckoutSessionResponse{}, ErrInvalidAmount
	}

	session := checkout.CreateCheckoutSessionResponse{
		Id:              "CS" + p.pspReference(),
		SessionData:     "Ab02b4c0!" + p.uuider.Create(),
		Amount:          req.Amount,
		CountryCode:     req.CountryCode,
		MerchantAccount: req.MerchantAccount,
		Reference:       req.Reference,
		ReturnUrl:       req.ReturnUrl,
	}
	err := p.sessions.Put(ctx, session.Id, session)
	if err != nil {
		return checkout.CreateCheckoutSessionResponse{}, err
	}
	return session, nil
}

// Payments answers a repeated idempotency key with the first response
func (p *FakePayer) Payments(ctx context.Context, req checkout.PaymentRequest, idempotencyKey string) (checkout.PaymentResponse, error) {
	if req.MerchantAccount == "" {
		return checkout.PaymentResponse{}, ErrMissingMerchantAccount
	}
	if req.Reference == "" {
		return checkout.PaymentResponse{}, ErrMissingReference
	}
	if req.Amount.Value <= 0 {
		return checkout.PaymentResponse{}, ErrInvalidAmount
	}

	resp := checkout.PaymentResponse{}
	err := p.payments.RunInTransaction(ctx, func(ctx context.Context) error {
		previous, exists, err := p.payments.Get(ctx, idempotencyKey)
		if err != nil {
			return err
		}
		if exists {
			resp = previous
			return nil
		}

		resp = p.authorise(req)
		if idempotencyKey == "" {
			return nil
		}
		return p.payments.Put(ctx, idempotencyKey, resp)
	})
	if err != nil {
		return checkout.PaymentResponse{}, fmt.Errorf("error storing payment %s: %w", req.Reference, err)
	}

	return resp, nil
}

func (p *FakePayer) authorise(req checkout.PaymentRequest) checkout.PaymentResponse {
	cardNumber, _ := req.PaymentMethod["encryptedCardNumber"].(string)
	if authorisingCards[cardNumber] {
		return checkout.PaymentResponse{
			PspReference: p.pspReference(),
			ResultCode:   "Authorised",
		}
	}
	return checkout.PaymentResponse{
		PspReference:  p.pspReference(),
		ResultCode:    "Refused",
		RefusalReason: "Refused",
	}
}

func (p *FakePayer) pspReference() string {
	ref := strings.ToUpper(strings.ReplaceAll(p.uuider.Create(), "-", ""))
	if len(ref) > 16 {
		return ref[:16]
	}
	return ref
}
