package paymentpage

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/adyendemo/lib/mycontext"
	"github.com/MarcGrol/adyendemo/lib/myerrors"
	"github.com/MarcGrol/adyendemo/lib/myhttp"
	"github.com/MarcGrol/adyendemo/lib/mylog"
	"github.com/MarcGrol/adyendemo/lib/mytime"
)

const apiBase = "/api/adyen"

type webService struct {
	service *service
	decoder *formcodec.Decoder
	logger  mylog.Logger
}

func NewWebService(nower mytime.Nower) *webService {
	logger := mylog.New("paymentpage")
	return &webService{
		service: newService(nower, logger),
		decoder: formcodec.NewDecoder(),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/payment-test", s.paymentPage()).Methods("GET")
	router.HandleFunc("/payment-test", s.editPaymentPage()).Methods("POST")

	return nil
}

//go:embed templates
var templateFolder embed.FS
var (
	paymentPageTemplate *template.Template
)

func init() {
	paymentPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/paymenttest.html"))
}

func (s *webService) paymentPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		page := s.service.initialPage()
		// Shopper returning from a redirect
		page.ReturnedSession = r.URL.Query().Get("session")
		page.ReturnedPayment = r.URL.Query().Get("payment")

		err := s.render(w, page)
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
			return
		}
	}
}

func (s *webService) editPaymentPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		form := PaymentForm{}
		err = s.decoder.Decode(&form, r.Form)
		if err != nil {
			responseWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(fmt.Errorf("error decoding form: %s", err)))
			return
		}

		page, err := s.service.applyEdit(c, form)
		if err != nil {
			responseWriter.WriteError(c, w, 3, err)
			return
		}

		err = s.render(w, page)
		if err != nil {
			responseWriter.WriteError(c, w, 4, myerrors.NewInternalError(err))
			return
		}
	}
}

func (s *webService) render(w http.ResponseWriter, page pageData) error {
	page.APIBase = apiBase
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return paymentPageTemplate.Execute(w, page)
}
