package myconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	portVarname            = "PORT"
	allowedOriginsVarname  = "ALLOWED_ORIGINS"
	apiKeyVarname          = "ADYEN_API_KEY"
	merchantAccountVarname = "ADYEN_MERCHANT_ACCOUNT"
	clientKeyVarname       = "ADYEN_CLIENT_KEY"
	environmentVarname     = "ADYEN_ENVIRONMENT"
	returnURLBaseVarname   = "ADYEN_RETURN_URL_BASE"
	appEnvVarname          = "APP_ENV"

	DefaultEnvironment = "TEST"
	ModeDevelopment    = "development"
	ModeProduction     = "production"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Adyen   AdyenConfig
	Runtime RuntimeConfig
}

type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

// AdyenConfig holds the gateway credentials. Credentials may be empty: the endpoints check them per request.
type AdyenConfig struct {
	APIKey          string
	MerchantAccount string
	ClientKey       string
	Environment     string
	// ReturnURLBase is the scheme+host the shopper returns to; empty means derived from the request.
	ReturnURLBase string
}

type RuntimeConfig struct {
	Mode string
}

func (c RuntimeConfig) IsDevelopment() bool {
	return c.Mode == ModeDevelopment
}

// Load reads the configuration from the environment
func Load() (Config, error) {
	port, err := getEnvInt(portVarname, 8080)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Server: ServerConfig{
			Port:           port,
			AllowedOrigins: getEnvList(allowedOriginsVarname, []string{"*"}),
		},
		Adyen: AdyenConfig{
			APIKey:          os.Getenv(apiKeyVarname),
			MerchantAccount: os.Getenv(merchantAccountVarname),
			ClientKey:       os.Getenv(clientKeyVarname),
			Environment:     strings.ToUpper(getEnv(environmentVarname, DefaultEnvironment)),
			ReturnURLBase:   strings.TrimSuffix(os.Getenv(returnURLBaseVarname), "/"),
		},
		Runtime: RuntimeConfig{
			Mode: getEnv(appEnvVarname, ModeProduction),
		},
	}, nil
}

// MissingSessionCredentials lists the unset variables that creating a session depends on.
func (c AdyenConfig) MissingSessionCredentials() []string {
	missing := c.MissingPaymentCredentials()
	if c.ClientKey == "" {
		missing = append(missing, clientKeyVarname)
	}
	return missing
}

// MissingPaymentCredentials lists the unset variables that submitting a payment depends on.
func (c AdyenConfig) MissingPaymentCredentials() []string {
	missing := []string{}
	if c.APIKey == "" {
		missing = append(missing, apiKeyVarname)
	}
	if c.MerchantAccount == "" {
		missing = append(missing, merchantAccountVarname)
	}
	return missing
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for env-var %s: %w", key, err)
	}
	return intValue, nil
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result := []string{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
