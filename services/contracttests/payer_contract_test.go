package contracttests

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/adyen/adyen-go-api-library/v6/src/checkout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/adyendemo/lib/myconfig"
	"github.com/MarcGrol/adyendemo/lib/myuuid"
	"github.com/MarcGrol/adyendemo/services/checkoutadyen"
)

func TestFakePayer(t *testing.T) {
	PayerContract{
		merchantAccount: "MyMerchantAccount",
		payer: func() checkoutadyen.Payer {
			return NewFakePayer(myuuid.RealUUIDer{})
		},
	}.Test(t)
}

// Runs the same contract against the Adyen test environment when credentials are available
func TestAdyenTestEnvironment(t *testing.T) {
	cfg, err := myconfig.Load()
	require.NoError(t, err)
	if len(cfg.Adyen.MissingPaymentCredentials()) > 0 || !strings.EqualFold(cfg.Adyen.Environment, myconfig.DefaultEnvironment) {
		t.Skip("no credentials for the Adyen test environment")
	}

	PayerContract{
		merchantAccount: cfg.Adyen.MerchantAccount,
		payer: func() checkoutadyen.Payer {
			return checkoutadyen.NewPayer(cfg.Adyen.Environment, cfg.Adyen.APIKey)
		},
	}.Test(t)
}

type PayerContract struct {
	merchantAccount string
	payer           func() checkoutadyen.Payer
}

func (c PayerContract) Test(t *testing.T) {
	t.Run("offers card payments", func(t *testing.T) {
		var (
			sut = c.payer()
			ctx = context.Background()
		)

		resp, err := sut.PaymentMethods(ctx, checkout.PaymentMethodsRequest{
			MerchantAccount: c.merchantAccount,
			Amount:          &checkout.Amount{Value: 100000, Currency: "MXN"},
			CountryCode:     "MX",
			ShopperLocale:   "es-MX",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.PaymentMethods)

		types := []string{}
		for _, pm := range *resp.PaymentMethods {
			types = append(types, pm.Type)
		}
		assert.Contains(t, types, "scheme")
	})

	t.Run("creates a session for the reference", func(t *testing.T) {
		var (
			sut       = c.payer()
			ctx       = context.Background()
			reference = newReference()
		)

		resp, err := sut.Sessions(ctx, checkout.CreateCheckoutSessionRequest{
			MerchantAccount: c.merchantAccount,
			Amount:          checkout.Amount{Value: 100000, Currency: "MXN"},
			CountryCode:     "MX",
			ShopperLocale:   "es-MX",
			Reference:       reference,
			ReturnUrl:       "http://localhost:8080/payment-test?session=" + reference,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Id)
		assert.NotEmpty(t, resp.SessionData)
		assert.Equal(t, reference, resp.Reference)
	})

	t.Run("authorises a test card once per idempotency key", func(t *testing.T) {
		var (
			sut       = c.payer()
			ctx       = context.Background()
			reference = newReference()
			req       = paymentRequest(c.merchantAccount, reference, "test_4111111145551142")
		)

		first, err := sut.Payments(ctx, req, reference)
		require.NoError(t, err)
		assert.Equal(t, "Authorised", first.ResultCode)
		assert.NotEmpty(t, first.PspReference)

		second, err := sut.Payments(ctx, req, reference)
		require.NoError(t, err)
		assert.Equal(t, first.PspReference, second.PspReference)
	})

	t.Run("rejects a session without merchant account", func(t *testing.T) {
		var (
			sut = c.payer()
			ctx = context.Background()
		)

		_, err := sut.Sessions(ctx, checkout.CreateCheckoutSessionRequest{
			Amount:    checkout.Amount{Value: 100000, Currency: "MXN"},
			Reference: newReference(),
			ReturnUrl: "http://localhost:8080/payment-test",
		})
		assert.Error(t, err)
	})
}

// example of behaviour only the fake guarantees
func TestFakePayerRefusesUnknownCard(t *testing.T) {
	sut := NewFakePayer(myuuid.RealUUIDer{})

	resp, err := sut.Payments(context.Background(), paymentRequest("MyMerchantAccount", "payment-1", "test_4000000000000002"), "payment-1")
	require.NoError(t, err)
	assert.Equal(t, "Refused", resp.ResultCode)
	assert.Len(t, resp.PspReference, 16)

	_, err = sut.Payments(context.Background(), paymentRequest("MyMerchantAccount", "", "test_4111111145551142"), "payment-2")
	assert.ErrorIs(t, err, ErrMissingReference)
}

func paymentRequest(merchantAccount string, reference string, cardNumber string) checkout.PaymentRequest {
	return checkout.PaymentRequest{
		MerchantAccount: merchantAccount,
		Reference:       reference,
		Amount:          checkout.Amount{Value: 100000, Currency: "MXN"},
		CountryCode:     "MX",
		ShopperLocale:   "es-MX",
		ReturnUrl:       "http://localhost:8080/payment-test?payment=" + reference,
		PaymentMethod: map[string]interface{}{
			"type":                  "scheme",
			"encryptedCardNumber":   cardNumber,
			"encryptedExpiryMonth":  "test_03",
			"encryptedExpiryYear":   "test_2030",
			"encryptedSecurityCode": "test_737",
		},
	}
}

func newReference() string {
	return fmt.Sprintf("payment-%d", time.Now().UnixNano())
}
