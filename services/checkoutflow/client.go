package checkoutflow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MarcGrol/adyendemo/lib/myhttpclient"
)

// Client calls the checkout endpoints of our own server
type Client struct {
	baseURL string
	sender  myhttpclient.HTTPSender
}

func NewClient(baseURL string, sender myhttpclient.HTTPSender) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		sender:  sender,
	}
}

func (c *Client) CreateSession(ctx context.Context, req ShopperRequest) (SessionHandle, error) {
	status, body, err := c.post(ctx, "/api/adyen/sessions", req)
	if err != nil {
		return SessionHandle{}, fmt.Errorf("failed to create session: %w", err)
	}
	if !isSuccess(status) {
		return SessionHandle{}, fmt.Errorf("failed to create session: %s", errorText(status, body))
	}

	session := SessionHandle{}
	err = json.Unmarshal(body, &session)
	if err != nil {
		return SessionHandle{}, fmt.Errorf("failed to create session: error parsing response: %w", err)
	}
	if session.Environment == "" {
		session.Environment = defaultEnvironment
	}
	return session, nil
}

// PaymentMethods fetches the catalog. The endpoint reports failures with status 200, so the body decides.
func (c *Client) PaymentMethods(ctx context.Context, req ShopperRequest) (PaymentMethodsOffer, error) {
	status, body, err := c.post(ctx, "/api/adyen/payment-methods", req)
	if err != nil {
		return PaymentMethodsOffer{}, fmt.Errorf("failed to fetch payment methods: %w", err)
	}
	if !isSuccess(status) {
		return PaymentMethodsOffer{}, fmt.Errorf("failed to fetch payment methods: %s", errorText(status, body))
	}

	failure := errorResponse{}
	if json.Unmarshal(body, &failure) == nil && failure.Error != "" {
		return PaymentMethodsOffer{}, fmt.Errorf("failed to fetch payment methods: %s: %s", failure.Error, failure.Details)
	}

	offer := PaymentMethodsOffer{}
	err = json.Unmarshal(body, &offer)
	if err != nil {
		return PaymentMethodsOffer{}, fmt.Errorf("failed to fetch payment methods: error parsing response: %w", err)
	}
	if offer.Environment == "" {
		offer.Environment = defaultEnvironment
	}
	return offer, nil
}

// SubmitPayment returns the raw gateway response
func (c *Client) SubmitPayment(ctx context.Context, req PaymentSubmission) (json.RawMessage, error) {
	status, body, err := c.post(ctx, "/api/adyen/payments", req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit payment: %w", err)
	}
	if !isSuccess(status) {
		return nil, fmt.Errorf("failed to submit payment: %s", errorText(status, body))
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("failed to submit payment: response is not json")
	}
	return json.RawMessage(body), nil
}

func (c *Client) post(ctx context.Context, path string, req any) (int, []byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return 0, nil, fmt.Errorf("error marshalling request: %w", err)
	}
	return c.sender.Send(ctx, http.MethodPost, c.baseURL+path, payload)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func errorText(status int, body []byte) string {
	failure := errorResponse{}
	if json.Unmarshal(body, &failure) == nil && failure.Error != "" {
		return failure.Error
	}
	return http.StatusText(status)
}
