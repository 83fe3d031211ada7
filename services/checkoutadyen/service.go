package checkoutadyen

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/adyen/adyen-go-api-library/v6/src/checkout"

	"github.com/MarcGrol/adyendemo/lib/myconfig"
	"github.com/MarcGrol/adyendemo/lib/myerrors"
	"github.com/MarcGrol/adyendemo/lib/mylog"
)

type service struct {
	cfg    myconfig.AdyenConfig
	payer  Payer
	logger mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(cfg myconfig.AdyenConfig, payer Payer, logger mylog.Logger) *service {
	return &service{
		cfg:    cfg,
		payer:  payer,
		logger: logger,
	}
}

// paymentMethods asks the Adyen platform which payment methods apply to this shopper
func (s *service) paymentMethods(c context.Context, req PaymentMethodsRequest) (*PaymentMethodsOffer, error) {
	err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	paymentMethodsReq := checkout.PaymentMethodsRequest{
		MerchantAccount: s.cfg.MerchantAccount,
		Amount: &checkout.Amount{
			Currency: req.Amount.Currency,
			Value:    req.Amount.Value,
		},
		CountryCode:   withDefault(req.CountryCode, defaultCountryCode),
		ShopperLocale: withDefault(req.ShopperLocale, defaultShopperLocale),
	}

	s.logger.Log(c, req.Reference, mylog.SeverityInfo, "Payment-methods request: %+v", paymentMethodsReq)

	resp, err := s.payer.PaymentMethods(c, paymentMethodsReq)
	if err != nil {
		return nil, myerrors.NewGatewayError(fmt.Errorf("error fetching payment methods: %w", err))
	}

	return &PaymentMethodsOffer{
		Response:    resp,
		ClientKey:   s.cfg.ClientKey,
		Environment: s.cfg.Environment,
	}, nil
}

// createSession starts a checkout session on the Adyen platform
func (s *service) createSession(c context.Context, req SessionRequest, returnURLBase string) (*SessionHandle, error) {
	err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	err = requireCredentials(s.cfg.MissingSessionCredentials())
	if err != nil {
		return nil, err
	}

	sessionReq := checkout.CreateCheckoutSessionRequest{
		Amount: checkout.Amount{
			Currency: req.Amount.Currency,
			Value:    req.Amount.Value,
		},
		CountryCode:     req.CountryCode,
		MerchantAccount: s.cfg.MerchantAccount,
		Reference:       req.Reference,
		ReturnUrl:       returnURL(returnURLBase, "session", req.Reference),
		ShopperLocale:   withDefault(req.ShopperLocale, defaultShopperLocale),
	}

	s.logger.Log(c, req.Reference, mylog.SeverityInfo, "Creating session with request: %+v", sessionReq)

	resp, err := s.payer.Sessions(c, sessionReq)
	if err != nil {
		return nil, myerrors.NewGatewayError(fmt.Errorf("error creating payment session for %s: %w", req.Reference, err))
	}

	return &SessionHandle{
		ID:          resp.Id,
		SessionData: resp.SessionData,
		ClientKey:   s.cfg.ClientKey,
		Environment: s.cfg.Environment,
	}, nil
}

// submitPayment forwards the encrypted card data to the Adyen platform.
// The merchant reference is the idempotency key: resubmitting the same reference never charges twice.
func (s *service) submitPayment(c context.Context, req PaymentSubmission, returnURLBase string) (checkout.PaymentResponse, error) {
	err := validateRequest(req)
	if err != nil {
		return checkout.PaymentResponse{}, err
	}

	err = requireCredentials(s.cfg.MissingPaymentCredentials())
	if err != nil {
		return checkout.PaymentResponse{}, err
	}

	card := req.StateData.PaymentMethod
	paymentReq := checkout.PaymentRequest{
		Reference: req.Reference,
		Amount: checkout.Amount{
			Currency: withDefault(req.Amount.Currency, defaultCurrency),
			Value:    req.Amount.Value,
		},
		// Only the fields encrypted by the drop-in are passed on
		PaymentMethod: map[string]interface{}{
			"type":                  cardSchemeType,
			"encryptedCardNumber":   card.EncryptedCardNumber,
			"encryptedExpiryMonth":  card.EncryptedExpiryMonth,
			"encryptedExpiryYear":   card.EncryptedExpiryYear,
			"encryptedSecurityCode": card.EncryptedSecurityCode,
		},
		CountryCode:     req.CountryCode,
		ShopperLocale:   req.Locale,
		MerchantAccount: s.cfg.MerchantAccount,
		ReturnUrl:       returnURL(returnURLBase, "payment", req.Reference),
	}

	s.logger.Log(c, req.Reference, mylog.SeverityInfo, "Submitting payment %s for %s", req.Reference, req.Amount)

	resp, err := s.payer.Payments(c, paymentReq, req.Reference)
	if err != nil {
		return checkout.PaymentResponse{}, myerrors.NewGatewayError(fmt.Errorf("error submitting payment %s: %w", req.Reference, err))
	}

	s.logger.Log(c, req.Reference, mylog.SeverityInfo, "Payment %s -> %s", req.Reference, resp.ResultCode)

	return resp, nil
}

func requireCredentials(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return myerrors.NewConfigurationError(fmt.Errorf("missing required environment variables. Please check %s", strings.Join(missing, ", ")))
}

func returnURL(base string, param string, reference string) string {
	return fmt.Sprintf("%s/payment-test?%s=%s", base, param, url.QueryEscape(reference))
}

func withDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
