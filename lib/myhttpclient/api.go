package myhttpclient

import (
	"context"
	"time"

	"github.com/MarcGrol/adyendemo/lib/mylog"
)

type HTTPSender interface {
	Send(c context.Context, method string, url string, body []byte) (int, []byte, error)
}

// New returns a json-speaking client. A zero timeout means the call is only bounded by the context.
func New(timeout time.Duration) HTTPSender {
	return newJSONHTTPClient(timeout, mylog.New("myhttpclient"))
}
