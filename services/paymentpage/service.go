package paymentpage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MarcGrol/adyendemo/lib/myerrors"
	"github.com/MarcGrol/adyendemo/lib/mylog"
	"github.com/MarcGrol/adyendemo/lib/mytime"
	"github.com/MarcGrol/adyendemo/services/checkoutflow"
)

type service struct {
	nower    mytime.Nower
	validate *validator.Validate
	logger   mylog.Logger
}

func newService(nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		nower:    nower,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *service) initialPage() pageData {
	form := PaymentForm{
		Amount:        defaultAmount,
		Currency:      defaultCurrency,
		CountryCode:   defaultCountryCode,
		ShopperLocale: defaultShopperLocale,
		Reference:     newReference(s.nower.Now()),
		Flow:          checkoutflow.FlowSessions,
	}
	return s.page(form, false)
}

// applyEdit regenerates the reference when amount or currency changed, and clears results when the flow changed
func (s *service) applyEdit(c context.Context, form PaymentForm) (pageData, error) {
	if form.Flow == "" {
		form.Flow = checkoutflow.FlowSessions
	}
	form.CountryCode = strings.ToUpper(form.CountryCode)

	err := s.validate.Struct(form)
	if err != nil {
		return pageData{}, myerrors.NewInvalidInputError(invalidFields(err))
	}

	if form.ShopperLocale == "" {
		form.ShopperLocale = defaultShopperLocale
	}

	if form.Reference == "" || form.Amount != form.Previous.Amount || form.Currency != form.Previous.Currency {
		form.Reference = newReference(s.nower.Now())
		s.logger.Log(c, form.Reference, mylog.SeverityInfo, "New payment reference for %s %.2f", form.Currency, form.Amount)
	}

	clearResults := form.Previous.Flow != "" && form.Flow != form.Previous.Flow

	return s.page(form, clearResults), nil
}

func (s *service) page(form PaymentForm, clearResults bool) pageData {
	form.Previous = PreviousForm{
		Amount:   form.Amount,
		Currency: form.Currency,
		Flow:     form.Flow,
	}
	return pageData{
		Form:         form,
		MinorAmount:  checkoutflow.Amount{Value: form.Amount, Currency: form.Currency}.Minor(),
		Currencies:   supportedCurrencies,
		TestCards:    testCards,
		ClearResults: clearResults,
	}
}

func invalidFields(err error) error {
	validationErrors := validator.ValidationErrors{}
	if !errors.As(err, &validationErrors) {
		return err
	}
	fields := []string{}
	for _, fe := range validationErrors {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("invalid fields: %s", strings.Join(fields, ", "))
}
