package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MarcGrol/adyendemo/services/checkoutflow"
)

// Raw card fields accepted by the gateway's test environment in place of encrypted ones
type testCard struct {
	Number      string
	ExpiryMonth string
	ExpiryYear  string
	CVC         string
}

var testCards = map[string]testCard{
	"visa":       {Number: "4111111145551142", ExpiryMonth: "03", ExpiryYear: "2030", CVC: "737"},
	"mastercard": {Number: "2222400070000005", ExpiryMonth: "03", ExpiryYear: "2030", CVC: "737"},
	"amex":       {Number: "370000000000002", ExpiryMonth: "03", ExpiryYear: "2030", CVC: "7373"},
}

func (c testCard) stateData() json.RawMessage {
	state, _ := json.Marshal(map[string]any{
		"paymentMethod": map[string]string{
			"type":                  "scheme",
			"encryptedCardNumber":   "test_" + c.Number,
			"encryptedExpiryMonth":  "test_" + c.ExpiryMonth,
			"encryptedExpiryYear":   "test_" + c.ExpiryYear,
			"encryptedSecurityCode": "test_" + c.CVC,
		},
	})
	return state
}

// consoleWidgets stands in for the browser drop-in
type consoleWidgets struct {
	out     io.Writer
	card    testCard
	pageURL string
}

func (w consoleWidgets) NewCheckout(ctx context.Context, cfg checkoutflow.WidgetConfig) (checkoutflow.Checkout, error) {
	if cfg.ClientKey == "" {
		return nil, errors.New("missing client key")
	}
	return &consoleCheckout{widgets: w, cfg: cfg}, nil
}

type consoleCheckout struct {
	widgets consoleWidgets
	cfg     checkoutflow.WidgetConfig
}

func (c *consoleCheckout) Mount(ctx context.Context, container string, dropin checkoutflow.DropinConfig) error {
	out := c.widgets.out
	fmt.Fprintf(out, "Drop-in %q: %s %d, locale %s, country %s, environment %s\n",
		container, c.cfg.Amount.Currency, c.cfg.Amount.Value, c.cfg.Locale, c.cfg.CountryCode, c.cfg.Environment)

	switch flow := c.cfg.Flow.(type) {
	case checkoutflow.SessionsFlow:
		fmt.Fprintf(out, "Session %s created, complete the payment in a browser at %s\n", flow.Session.ID, c.widgets.pageURL)

	case checkoutflow.AdvancedFlow:
		if flow.OnSubmit == nil {
			return errors.New("advanced flow without submit handler")
		}
		flow.OnSubmit(ctx, c.widgets.card.stateData(), consoleActions{callbacks: c.cfg.Callbacks})

	default:
		return fmt.Errorf("unsupported flow %T", c.cfg.Flow)
	}

	return nil
}

// consoleActions settles a submission the way the drop-in does: an authorised result completes the payment
type consoleActions struct {
	callbacks checkoutflow.Callbacks
}

func (a consoleActions) Resolve(result json.RawMessage) {
	resp := struct {
		ResultCode string `json:"resultCode"`
	}{}
	_ = json.Unmarshal(result, &resp)

	if resp.ResultCode == "Authorised" {
		a.callbacks.OnPaymentCompleted(result)
		return
	}
	a.callbacks.OnPaymentFailed(result)
}

func (a consoleActions) Reject() {
	a.callbacks.OnError(errors.New("payment submission rejected"))
}
