package checkoutadyen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/adyendemo/lib/myconfig"
	"github.com/MarcGrol/adyendemo/lib/mycontext"
	"github.com/MarcGrol/adyendemo/lib/myerrors"
	"github.com/MarcGrol/adyendemo/lib/myhttp"
	"github.com/MarcGrol/adyendemo/lib/mylog"
)

// The endpoints are served with and without the prefix used by the payment-test page
var pathPrefixes = []string{"", "/api/adyen"}

type Config struct {
	Adyen myconfig.AdyenConfig
	// Development adds a diagnostic trace to gateway error responses
	Development bool
}

type webService struct {
	logger      mylog.Logger
	development bool
	service     *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(cfg Config, payer Payer) *webService {
	logger := mylog.New("checkoutadyen")
	return &webService{
		logger:      logger,
		development: cfg.Development,
		service:     newService(cfg.Adyen, payer, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	for _, prefix := range pathPrefixes {
		router.HandleFunc(prefix+"/payment-methods", s.paymentMethods()).Methods("POST")
		router.HandleFunc(prefix+"/sessions", s.sessions()).Methods("POST")
		router.HandleFunc(prefix+"/payments", s.payments()).Methods("POST")

		// Called by Adyen at a later time
		router.HandleFunc(prefix+"/webhooks", s.webhookNotification()).Methods("POST")
	}
}

// paymentMethods always answers 200: callers detect failure by the presence of "error" in the body
func (s *webService) paymentMethods() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		req := PaymentMethodsRequest{}
		err := decodeJSON(r, &req)
		if err == nil {
			var offer *PaymentMethodsOffer
			offer, err = s.service.paymentMethods(c, req)
			if err == nil {
				writer.Write(c, w, http.StatusOK, offer)
				return
			}
		}

		s.logger.Log(c, req.Reference, mylog.SeverityWarn, "Error fetching payment methods: %s", err)
		writer.Write(c, w, http.StatusOK, errorResponse{
			Error:   "Failed to fetch payment methods",
			Details: myerrors.GetCause(err),
		})
	}
}

func (s *webService) sessions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		req := SessionRequest{}
		err := decodeJSON(r, &req)
		if err != nil {
			s.writeFailure(c, w, "", err)
			return
		}

		resp, err := s.service.createSession(c, req, s.returnURLBase(r))
		if err != nil {
			s.writeFailure(c, w, "Failed to create payment session", err)
			return
		}

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, resp)
	}
}

func (s *webService) payments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		req := PaymentSubmission{}
		err := decodeJSON(r, &req)
		if err != nil {
			s.writeFailure(c, w, "", err)
			return
		}

		resp, err := s.service.submitPayment(c, req, s.returnURLBase(r))
		if err != nil {
			s.writeFailure(c, w, "", err)
			return
		}

		// The gateway response is passed on as is
		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, resp)
	}
}

// webhookNotification acknowledges every parseable notification with "[accepted]"
func (s *webService) webhookNotification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			err = myerrors.NewParseError(fmt.Errorf("error reading webhook body: %w", err))
		}

		var event WebhookNotification
		if err == nil {
			event, err = parseWebhookNotification(body)
		}
		if err != nil {
			s.logger.Log(c, "", mylog.SeverityError, "Webhook processing error: %s", err)
			writer.Write(c, w, http.StatusInternalServerError, errorResponse{
				Error: "Failed to process webhook",
			})
			return
		}

		s.service.webhookNotification(c, event)

		// Body containing "[accepted]" is the signal that message has been successfully processed
		writer.Write(c, w, http.StatusOK, WebhookNotificationResponse{
			NotificationResponse: "[accepted]",
		})
	}
}

func (s *webService) returnURLBase(r *http.Request) string {
	if s.service.cfg.ReturnURLBase != "" {
		return s.service.cfg.ReturnURLBase
	}
	return myhttp.HostnameWithScheme(r)
}

// writeFailure maps the error taxonomy onto a json error body.
// Validation and configuration errors carry their own message; gateway errors get a summary plus details.
func (s *webService) writeFailure(c context.Context, w http.ResponseWriter, summary string, err error) {
	body := errorResponse{
		Error: myerrors.GetCause(err),
	}

	if myerrors.GetKind(err) == myerrors.KindGateway {
		if summary != "" {
			body.Error = summary
			body.Details = myerrors.GetCause(err)
		}
		if s.development {
			body.Stack = diagnosticTrace(err)
		}
	}

	status := myerrors.GetHTTPStatus(err)
	s.logger.Log(c, "", mylog.SeverityWarn, "Error response: http-status:%d, error-msg:%s", status, err)
	myhttp.NewWriter(s.logger).Write(c, w, status, body)
}

// diagnosticTrace lists the chain of wrapped errors, outermost first
func diagnosticTrace(err error) string {
	lines := []string{}
	for ; err != nil; err = errors.Unwrap(err) {
		lines = append(lines, fmt.Sprintf("%T: %s", err, err))
	}
	return strings.Join(lines, "\n")
}

func decodeJSON(r *http.Request, dest any) error {
	err := json.NewDecoder(r.Body).Decode(dest)
	if err != nil {
		return myerrors.NewInvalidInputError(fmt.Errorf("error parsing request body: %w", err))
	}
	return nil
}
