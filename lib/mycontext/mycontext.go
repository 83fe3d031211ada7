package mycontext

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/MarcGrol/adyendemo/lib/myuuid"
)

// CtxTraceContext is a context key for the trace context this (used by mylog)
type CtxTraceContext struct{}

// ContextFromHTTPRequest derives the trace from the X-Cloud-Trace-Context header.
// Requests without that header get a fresh random trace, so log lines of one request still correlate.
func ContextFromHTTPRequest(r *http.Request) context.Context {
	traceID := myuuid.RealUUIDer{}.Create()

	traceContext := r.Header.Get("X-Cloud-Trace-Context")
	traceParts := strings.Split(traceContext, "/")
	if len(traceParts) > 0 && len(traceParts[0]) > 0 {
		traceID = traceParts[0]
	}

	trace := fmt.Sprintf("projects/%s/traces/%s", os.Getenv("GOOGLE_CLOUD_PROJECT"), traceID)

	return context.WithValue(r.Context(), CtxTraceContext{}, trace)
}

func TraceFromContext(ctx context.Context) string {
	trace, ok := ctx.Value(CtxTraceContext{}).(string)
	if !ok {
		return ""
	}
	return trace
}
