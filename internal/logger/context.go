package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// requestFields are attached to every line logged through a Ctx* helper.
type requestFields struct {
	requestID string
	userID    string
	role      string
}

func fieldsFrom(ctx context.Context) requestFields {
	if ctx == nil {
		return requestFields{}
	}
	f, _ := ctx.Value(ctxKey{}).(requestFields)
	return f
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	f := fieldsFrom(ctx)
	f.requestID = requestID
	return context.WithValue(ctx, ctxKey{}, f)
}

// WithUserID tags the context with the authenticated caller.
func WithUserID(ctx context.Context, userID string) context.Context {
	f := fieldsFrom(ctx)
	f.userID = userID
	return context.WithValue(ctx, ctxKey{}, f)
}

func WithRole(ctx context.Context, role string) context.Context {
	f := fieldsFrom(ctx)
	f.role = role
	return context.WithValue(ctx, ctxKey{}, f)
}

func GetRequestID(ctx context.Context) string {
	return fieldsFrom(ctx).requestID
}

func GetUserID(ctx context.Context) string {
	return fieldsFrom(ctx).userID
}

// FromContext returns the global logger with request_id, user_id and role added when set.
func FromContext(ctx context.Context) *slog.Logger {
	l := GetLogger()
	f := fieldsFrom(ctx)

	attrs := make([]any, 0, 6)
	if f.requestID != "" {
		attrs = append(attrs, "request_id", f.requestID)
	}
	if f.userID != "" {
		attrs = append(attrs, "user_id", f.userID)
	}
	if f.role != "" {
		attrs = append(attrs, "role", f.role)
	}
	if len(attrs) == 0 {
		return l
	}
	return l.With(attrs...)
}

func CtxInfo(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func CtxWarn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func CtxError(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Error(msg, args...)
}

// CtxWithError logs at error level with err under the "error" key.
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	FromContext(ctx).Error(msg, append([]any{"error", err.Error()}, args...)...)
}
