package myhttp

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/adyendemo/lib/myerrors"
	"github.com/MarcGrol/adyendemo/lib/mylog"
)

func TestResponseWriter(t *testing.T) {
	writer := NewWriter(mylog.New("myhttp"))

	t.Run("Write success", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.Write(context.TODO(), response, http.StatusOK, SuccessResponse{Message: "ok"})

		assert.Equal(t, 200, response.Code)
		assert.Equal(t, "application/json", response.Header().Get("Content-Type"))
		assert.Equal(t, "{\n\t\"message\": \"ok\"\n}\n", response.Body.String())
	})

	t.Run("Write error", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.WriteError(context.TODO(), response, 3, myerrors.NewInvalidInputError(fmt.Errorf("missing amount")))

		assert.Equal(t, 400, response.Code)
		assert.JSONEq(t, `{"errorCode":3,"message":"status: 400, err: missing amount"}`, response.Body.String())
	})
}

func TestHostnameWithScheme(t *testing.T) {
	t.Run("Plain http", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.Host = "localhost:8080"
		assert.Equal(t, "http://localhost:8080", HostnameWithScheme(r))
	})

	t.Run("Tls", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.Host = "shop.example.com"
		r.TLS = &tls.ConnectionState{}
		assert.Equal(t, "https://shop.example.com", HostnameWithScheme(r))
	})

	t.Run("Behind proxy", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.Host = "tunnel.example.com"
		r.Header.Set("X-Forwarded-Proto", "https")
		assert.Equal(t, "https://tunnel.example.com", HostnameWithScheme(r))
	})
}
