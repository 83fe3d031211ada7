package checkoutflow

import (
	"encoding/json"
	"math"
)

type FlowSelection string

const (
	FlowSessions FlowSelection = "sessions"
	FlowAdvanced FlowSelection = "advanced"
)

const (
	defaultCountryCode   = "MX"
	defaultShopperLocale = "es-MX"
	defaultEnvironment   = "TEST"
)

// Amount as entered by the shopper, in major units
type Amount struct {
	Value    float64
	Currency string
}

// MinorAmount is the gateway representation of an amount
type MinorAmount struct {
	Value    int64  `json:"value"`
	Currency string `json:"currency"`
}

// MinorUnits converts a major-unit value into minor units.
// Only currencies with two decimals are supported.
func MinorUnits(value float64) int64 {
	return int64(math.Round(value * 100))
}

func (a Amount) Minor() MinorAmount {
	return MinorAmount{
		Value:    MinorUnits(a.Value),
		Currency: a.Currency,
	}
}

// PaymentConfig is the shopper context of one checkout attempt. Reference must be unique per attempt.
type PaymentConfig struct {
	Amount        Amount
	CountryCode   string
	ShopperLocale string
	Reference     string
	Flow          FlowSelection
}

func (c PaymentConfig) countryCode() string {
	if c.CountryCode == "" {
		return defaultCountryCode
	}
	return c.CountryCode
}

func (c PaymentConfig) shopperLocale() string {
	if c.ShopperLocale == "" {
		return defaultShopperLocale
	}
	return c.ShopperLocale
}

type SessionHandle struct {
	ID          string `json:"id"`
	SessionData string `json:"sessionData"`
	ClientKey   string `json:"clientKey"`
	Environment string `json:"environment"`
}

// PaymentMethodsOffer keeps the catalog opaque: only the drop-in interprets it
type PaymentMethodsOffer struct {
	Response    json.RawMessage `json:"response"`
	ClientKey   string          `json:"clientKey"`
	Environment string          `json:"environment"`
}

type OutcomeType string

const (
	OutcomeCompleted OutcomeType = "completed"
	OutcomeFailed    OutcomeType = "failed"
	OutcomeError     OutcomeType = "error"
)

type PaymentOutcome struct {
	Type  OutcomeType     `json:"type"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

type ShopperRequest struct {
	Amount        MinorAmount `json:"amount"`
	CountryCode   string      `json:"countryCode"`
	ShopperLocale string      `json:"shopperLocale"`
	Reference     string      `json:"reference"`
}

type PaymentSubmission struct {
	StateData   json.RawMessage `json:"stateData"`
	CountryCode string          `json:"countryCode"`
	Locale      string          `json:"locale"`
	Amount      MinorAmount     `json:"amount"`
	Reference   string          `json:"reference"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}
