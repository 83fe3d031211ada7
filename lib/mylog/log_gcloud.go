package mylog

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MarcGrol/adyendemo/lib/mycontext"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		New = newGcloudLogger
	}
}

type structuredLogger struct {
	componentName string
	zap           *zap.Logger
}

func newGcloudLogger(componentName string) Logger {
	// Field names as understood by Cloud Logging.
	encoderCfg := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "severity",
		TimeKey:        "time",
		NameKey:        "component",
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.Lock(os.Stdout), zapcore.DebugLevel)

	return structuredLogger{
		componentName: componentName,
		zap:           zap.New(core).Named(componentName),
	}
}

func (l structuredLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	l.zap.Log(zapLevel(severity), l.componentName+":"+fmt.Sprintf(format, a...),
		zap.String("logging.googleapis.com/trace", mycontext.TraceFromContext(ctx)),
		zap.Any("logging.googleapis.com/labels", map[string]string{"aggregate": traceLabel}),
	)
}
