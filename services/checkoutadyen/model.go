package checkoutadyen

import (
	"fmt"

	"github.com/adyen/adyen-go-api-library/v6/src/checkout"
)

const (
	defaultCountryCode   = "MX"
	defaultShopperLocale = "es-MX"
	defaultCurrency      = "MXN"

	// Marks the encrypted card fields as a regular card-scheme payment
	cardSchemeType = "scheme"
)

// Amount is expressed in minor units (cents)
type Amount struct {
	Value    int64  `json:"value"`
	Currency string `json:"currency"`
}

func (a Amount) String() string {
	return fmt.Sprintf("%s %.2f", a.Currency, float64(a.Value)/100.0)
}

type PaymentMethodsRequest struct {
	Amount        *Amount `json:"amount" validate:"required"`
	CountryCode   string  `json:"countryCode"`
	ShopperLocale string  `json:"shopperLocale"`
	Reference     string  `json:"reference"`
}

// PaymentMethodsOffer is what the drop-in needs to render the advanced flow
type PaymentMethodsOffer struct {
	Response    checkout.PaymentMethodsResponse `json:"response"`
	ClientKey   string                          `json:"clientKey"`
	Environment string                          `json:"environment"`
}

type SessionRequest struct {
	Amount        *Amount `json:"amount" validate:"required"`
	CountryCode   string  `json:"countryCode" validate:"required"`
	ShopperLocale string  `json:"shopperLocale"`
	Reference     string  `json:"reference" validate:"required"`
}

// SessionHandle is consumed as-is by the drop-in in the sessions flow
type SessionHandle struct {
	ID          string `json:"id"`
	SessionData string `json:"sessionData"`
	ClientKey   string `json:"clientKey"`
	Environment string `json:"environment"`
}

type PaymentSubmission struct {
	StateData   *StateData `json:"stateData" validate:"required"`
	CountryCode string     `json:"countryCode" validate:"required"`
	Locale      string     `json:"locale" validate:"required"`
	Amount      *Amount    `json:"amount" validate:"required"`
	Reference   string     `json:"reference" validate:"required"`
}

// StateData is the state collected by the drop-in. Card fields are encrypted client-side.
type StateData struct {
	PaymentMethod *EncryptedCard `json:"paymentMethod" validate:"required"`
}

type EncryptedCard struct {
	Type                  string `json:"type,omitempty"`
	EncryptedCardNumber   string `json:"encryptedCardNumber"`
	EncryptedExpiryMonth  string `json:"encryptedExpiryMonth"`
	EncryptedExpiryYear   string `json:"encryptedExpiryYear"`
	EncryptedSecurityCode string `json:"encryptedSecurityCode"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

type WebhookNotification struct {
	Live              string             `json:"live"`
	NotificationItems []NotificationItem `json:"notificationItems"`
}

type WebhookNotificationResponse struct {
	NotificationResponse string `json:"notificationResponse"`
}

type NotificationItem struct {
	NotificationRequestItem NotificationRequestItem `json:"NotificationRequestItem"`
}

type NotificationRequestItem struct {
	AdditionalData      map[string]any `json:"additionalData,omitempty"`
	Amount              Amount         `json:"amount"`
	EventCode           string         `json:"eventCode"`
	EventDate           string         `json:"eventDate,omitempty"`
	MerchantAccountCode string         `json:"merchantAccountCode"`
	MerchantReference   string         `json:"merchantReference"`
	Operations          []string       `json:"operations,omitempty"`
	PaymentMethod       string         `json:"paymentMethod"`
	PspReference        string         `json:"pspReference"`
	Reason              string         `json:"reason"`
	Success             string         `json:"success"`
}

type WebhookEventKind string

const (
	WebhookPaymentAuthorised WebhookEventKind = "authorised"
	WebhookPaymentFailed     WebhookEventKind = "failed"
	WebhookPaymentCaptured   WebhookEventKind = "captured"
	WebhookPaymentRefunded   WebhookEventKind = "refunded"
	WebhookUnhandled         WebhookEventKind = "unhandled"
)
