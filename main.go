package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/adyendemo/lib/myconfig"
	"github.com/MarcGrol/adyendemo/lib/mylog"
	"github.com/MarcGrol/adyendemo/lib/mytime"
	"github.com/MarcGrol/adyendemo/services/checkoutadyen"
	"github.com/MarcGrol/adyendemo/services/health"
	"github.com/MarcGrol/adyendemo/services/paymentpage"
)

func main() {
	c := context.Background()
	logger := mylog.New("main")

	cfg, err := myconfig.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %s", err)
	}

	if missing := cfg.Adyen.MissingSessionCredentials(); len(missing) > 0 {
		logger.Log(c, "", mylog.SeverityWarn, "Missing Adyen configuration %v: checkout endpoints will fail", missing)
	}

	router := mux.NewRouter()

	health.NewService().RegisterEndpoints(c, router)

	checkoutService := checkoutadyen.NewWebService(checkoutadyen.Config{
		Adyen:       cfg.Adyen,
		Development: cfg.Runtime.IsDevelopment(),
	}, checkoutadyen.NewPayer(cfg.Adyen.Environment, cfg.Adyen.APIKey))
	checkoutService.RegisterEndpoints(c, router)

	pageService := paymentpage.NewWebService(mytime.RealNower{})
	err = pageService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering payment page: %s", err)
	}

	startWebServerBlocking(c, logger, cfg.Server, router)
}

func startWebServerBlocking(c context.Context, logger mylog.Logger, cfg myconfig.ServerConfig, router *mux.Router) {
	handler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Cloud-Trace-Context"},
		MaxAge:         300,
	})(router)

	logger.Log(c, "", mylog.SeverityInfo, "Starting webserver on port %d (try http://localhost:%d/payment-test)", cfg.Port, cfg.Port)
	err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), handler)
	if err != nil {
		log.Fatalf("Error starting webserver on port %d: %s", cfg.Port, err)
	}
}
