package myconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		for _, name := range []string{portVarname, allowedOriginsVarname, apiKeyVarname, merchantAccountVarname,
			clientKeyVarname, environmentVarname, returnURLBaseVarname, appEnvVarname} {
			t.Setenv(name, "")
		}

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
		assert.Equal(t, "TEST", cfg.Adyen.Environment)
		assert.Equal(t, "", cfg.Adyen.ReturnURLBase)
		assert.False(t, cfg.Runtime.IsDevelopment())
		assert.Equal(t, []string{"ADYEN_API_KEY", "ADYEN_MERCHANT_ACCOUNT", "ADYEN_CLIENT_KEY"}, cfg.Adyen.MissingSessionCredentials())
		assert.Equal(t, []string{"ADYEN_API_KEY", "ADYEN_MERCHANT_ACCOUNT"}, cfg.Adyen.MissingPaymentCredentials())
	})

	t.Run("From environment", func(t *testing.T) {
		t.Setenv(portVarname, "9090")
		t.Setenv(allowedOriginsVarname, "https://a.example.com, https://b.example.com")
		t.Setenv(apiKeyVarname, "my_api_key")
		t.Setenv(merchantAccountVarname, "MyMerchantAccount")
		t.Setenv(clientKeyVarname, "test_my_client_key")
		t.Setenv(environmentVarname, "live")
		t.Setenv(returnURLBaseVarname, "https://tunnel.example.com/")
		t.Setenv(appEnvVarname, "development")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
		assert.Equal(t, "LIVE", cfg.Adyen.Environment)
		assert.Equal(t, "https://tunnel.example.com", cfg.Adyen.ReturnURLBase)
		assert.True(t, cfg.Runtime.IsDevelopment())
		assert.Empty(t, cfg.Adyen.MissingSessionCredentials())
	})

	t.Run("Invalid port", func(t *testing.T) {
		t.Setenv(portVarname, "eighty")

		_, err := Load()
		assert.Error(t, err)
	})
}
