package checkoutflow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/adyendemo/lib/myhttpclient"
)

func TestClient(t *testing.T) {
	shopper := ShopperRequest{
		Amount:        MinorAmount{Value: 100000, Currency: "MXN"},
		CountryCode:   "MX",
		ShopperLocale: "es-MX",
		Reference:     "payment-123",
	}

	t.Run("Session environment defaults to TEST", func(t *testing.T) {
		// setup
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			_, _ = w.Write([]byte(`{"id":"CS123","sessionData":"Ab02","clientKey":"test_ck"}`))
		}))
		defer server.Close()

		// when
		handle, err := NewClient(server.URL+"/", myhttpclient.New(0)).CreateSession(context.TODO(), shopper)

		// then
		require.NoError(t, err)
		assert.Equal(t, SessionHandle{ID: "CS123", SessionData: "Ab02", ClientKey: "test_ck", Environment: "TEST"}, handle)
	})

	t.Run("Session failure without error body", func(t *testing.T) {
		// setup
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		// when
		_, err := NewClient(server.URL, myhttpclient.New(0)).CreateSession(context.TODO(), shopper)

		// then
		assert.EqualError(t, err, "failed to create session: Bad Gateway")
	})

	t.Run("Payment methods keep the catalog opaque", func(t *testing.T) {
		// setup
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"response":{"paymentMethods":[{"type":"scheme","brands":["visa","mc"]}]},"clientKey":"test_ck","environment":"LIVE"}`))
		}))
		defer server.Close()

		// when
		offer, err := NewClient(server.URL, myhttpclient.New(0)).PaymentMethods(context.TODO(), shopper)

		// then
		require.NoError(t, err)
		assert.JSONEq(t, `{"paymentMethods":[{"type":"scheme","brands":["visa","mc"]}]}`, string(offer.Response))
		assert.Equal(t, "LIVE", offer.Environment)
	})

	t.Run("Payment submission returns non json", func(t *testing.T) {
		// setup
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html></html>`))
		}))
		defer server.Close()

		// when
		_, err := NewClient(server.URL, myhttpclient.New(0)).SubmitPayment(context.TODO(), PaymentSubmission{Reference: "payment-123"})

		// then
		assert.EqualError(t, err, "failed to submit payment: response is not json")
	})

	t.Run("Server unreachable", func(t *testing.T) {
		// setup
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		// when
		_, err := NewClient(url, myhttpclient.New(0)).SubmitPayment(context.TODO(), PaymentSubmission{Reference: "payment-123"})

		// then
		assert.ErrorContains(t, err, "failed to submit payment: error sending POST")
	})
}
