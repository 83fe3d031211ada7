package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/adyendemo/lib/myconfig"
	"github.com/MarcGrol/adyendemo/lib/myuuid"
	"github.com/MarcGrol/adyendemo/services/checkoutadyen"
	"github.com/MarcGrol/adyendemo/services/contracttests"
)

func TestPaymentTestCommand(t *testing.T) {

	t.Run("Advanced flow authorised", func(t *testing.T) {
		// setup
		server := newFakeServer(t)
		out := &bytes.Buffer{}
		cmd := newRootCommand(out)

		// given
		cmd.SetArgs([]string{"--server", server.URL, "--flow", "advanced", "--amount", "10", "--currency", "EUR", "--reference", "payment-1"})

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Payment Methods Response")
		assert.Contains(t, out.String(), `"resultCode": "Authorised"`)
		assert.Contains(t, out.String(), `"type": "completed"`)
	})

	t.Run("Advanced flow refused", func(t *testing.T) {
		// setup
		server := newFakeServer(t)
		out := &bytes.Buffer{}
		cmd := newRootCommand(out)

		// given
		cmd.SetArgs([]string{"--server", server.URL, "--flow", "advanced", "--card", "amex", "--reference", "payment-2"})

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Contains(t, out.String(), `"type": "failed"`)
	})

	t.Run("Sessions flow", func(t *testing.T) {
		// setup
		server := newFakeServer(t)
		out := &bytes.Buffer{}
		cmd := newRootCommand(out)

		// given
		cmd.SetArgs([]string{"--server", server.URL + "/", "--reference", "payment-3"})

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Session Data")
		assert.Contains(t, out.String(), "Session CS123 created, complete the payment in a browser at "+server.URL+"/payment-test")
		assert.NotContains(t, out.String(), "Payment Result")
	})

	t.Run("Unknown card", func(t *testing.T) {
		// setup
		cmd := newRootCommand(&bytes.Buffer{})

		// given
		cmd.SetArgs([]string{"--card", "diners"})

		// when
		err := cmd.Execute()

		// then
		assert.EqualError(t, err, `unknown test card "diners"`)
	})

	t.Run("Unknown flow", func(t *testing.T) {
		// setup
		cmd := newRootCommand(&bytes.Buffer{})

		// given
		cmd.SetArgs([]string{"--flow", "express"})

		// when
		err := cmd.Execute()

		// then
		assert.EqualError(t, err, `unknown flow "express"`)
	})
}

func TestPaymentTestCommandAgainstCheckoutEndpoints(t *testing.T) {
	// setup
	router := mux.NewRouter()
	checkoutadyen.NewWebService(checkoutadyen.Config{
		Adyen: myconfig.AdyenConfig{
			APIKey:          "my_api_key",
			MerchantAccount: "MyMerchantAccount",
			ClientKey:       "test_my_client_key",
			Environment:     "TEST",
		},
	}, contracttests.NewFakePayer(myuuid.RealUUIDer{})).RegisterEndpoints(context.TODO(), router)
	server := httptest.NewServer(router)
	defer server.Close()

	for _, card := range cardNames() {
		t.Run(card, func(t *testing.T) {
			out := &bytes.Buffer{}
			cmd := newRootCommand(out)

			// given
			cmd.SetArgs([]string{"--server", server.URL, "--flow", "advanced", "--card", card})

			// when
			err := cmd.Execute()

			// then
			require.NoError(t, err)
			assert.Contains(t, out.String(), `"clientKey": "test_my_client_key"`)
			assert.Contains(t, out.String(), `"type": "completed"`)
		})
	}

	t.Run("sessions", func(t *testing.T) {
		out := &bytes.Buffer{}
		cmd := newRootCommand(out)

		// given
		cmd.SetArgs([]string{"--server", server.URL, "--flow", "sessions"})

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Contains(t, out.String(), `"sessionData": "Ab02b4c0!`)
	})
}

func TestTestCardStateData(t *testing.T) {
	assert.JSONEq(t, `{"paymentMethod":{
		"type":"scheme",
		"encryptedCardNumber":"test_4111111145551142",
		"encryptedExpiryMonth":"test_03",
		"encryptedExpiryYear":"test_2030",
		"encryptedSecurityCode":"test_737"
	}}`, string(testCards["visa"].stateData()))
}

func newFakeServer(t *testing.T) *httptest.Server {
	router := http.NewServeMux()
	router.HandleFunc("/api/adyen/sessions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"CS123","sessionData":"Ab02","clientKey":"test_ck","environment":"TEST"}`))
	})
	router.HandleFunc("/api/adyen/payment-methods", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"paymentMethods":[{"type":"scheme","name":"Cards"}]},"clientKey":"test_ck","environment":"TEST"}`))
	})
	router.HandleFunc("/api/adyen/payments", func(w http.ResponseWriter, r *http.Request) {
		req := struct {
			StateData struct {
				PaymentMethod map[string]string `json:"paymentMethod"`
			} `json:"stateData"`
		}{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid request"}`))
			return
		}
		if req.StateData.PaymentMethod["encryptedCardNumber"] == "test_4111111145551142" {
			_, _ = w.Write([]byte(`{"resultCode":"Authorised","pspReference":"993617895204576J"}`))
			return
		}
		_, _ = w.Write([]byte(`{"resultCode":"Refused","refusalReason":"Refused"}`))
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}
