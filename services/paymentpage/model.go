package paymentpage

import (
	"fmt"
	"time"

	"github.com/MarcGrol/adyendemo/services/checkoutflow"
)

const (
	defaultAmount        = 1000
	defaultCurrency      = "MXN"
	defaultCountryCode   = "MX"
	defaultShopperLocale = "es-MX"
)

var supportedCurrencies = []string{"USD", "EUR", "GBP", "MXN"}

// PaymentForm is the shopper context as edited on the page
type PaymentForm struct {
	Amount        float64                    `form:"amount" validate:"gt=0"`
	Currency      string                     `form:"currency" validate:"oneof=USD EUR GBP MXN"`
	CountryCode   string                     `form:"countryCode" validate:"required,len=2"`
	ShopperLocale string                     `form:"shopperLocale"`
	Reference     string                     `form:"reference"`
	Flow          checkoutflow.FlowSelection `form:"flow" validate:"oneof=sessions advanced"`
	Previous      PreviousForm               `form:"previous"`
}

// PreviousForm carries the values the page was rendered with, so an edit can be detected
type PreviousForm struct {
	Amount   float64                    `form:"amount"`
	Currency string                     `form:"currency"`
	Flow     checkoutflow.FlowSelection `form:"flow"`
}

type TestCard struct {
	Brand  string
	Number string
	CVC    string
	Expiry string
}

var testCards = []TestCard{
	{Brand: "Visa", Number: "4111 1111 4555 1142", CVC: "737", Expiry: "03/2030"},
	{Brand: "Mastercard", Number: "2222 4000 7000 0005", CVC: "737", Expiry: "03/2030"},
	{Brand: "American Express", Number: "3700 0000 0000 002", CVC: "7373", Expiry: "03/2030"},
}

type pageData struct {
	Form            PaymentForm
	MinorAmount     checkoutflow.MinorAmount
	Currencies      []string
	TestCards       []TestCard
	ClearResults    bool
	ReturnedSession string
	ReturnedPayment string
	APIBase         string
}

func newReference(now time.Time) string {
	return fmt.Sprintf("payment-%d", now.UnixMilli())
}
