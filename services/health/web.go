package health

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/adyendemo/lib/mycontext"
	"github.com/MarcGrol/adyendemo/lib/myhttp"
	"github.com/MarcGrol/adyendemo/lib/mylog"
)

type Status struct {
	Status string `json:"status"`
}

type webService struct {
	logger mylog.Logger
}

func NewService() *webService {
	return &webService{
		logger: mylog.New("health"),
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/health", s.healthPage()).Methods("GET")
	router.HandleFunc("/_ah/warmup", s.healthPage()).Methods("GET")
}

func (s webService) healthPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, Status{
			Status: "ok",
		})
	}
}
