package auth

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

var (
	RequestIDKey = contextKey("requestID")
	ClientIPKey  = contextKey("clientIP")
)

func WithRequestInfo(ctx context.Context, requestID, clientIP string) context.Context {
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	return context.WithValue(ctx, ClientIPKey, clientIP)
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

func GetIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(ClientIPKey).(string); ok {
		return ip
	}
	return ""
}

// Logger returns base annotated with the request identity carried by ctx.
func Logger(ctx context.Context, base *zap.Logger) *zap.Logger {
	var fields []zap.Field
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if ip := GetIPFromContext(ctx); ip != "" {
		fields = append(fields, zap.String("client_ip", ip))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
