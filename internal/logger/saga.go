package logger

import (
	"context"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// SagaInfo identifies a lifecycle operation for log and sentry correlation
type SagaInfo struct {
	OperationID string
	Stage       string
	Action      string
	AccountID   string
}

func (i SagaInfo) fields() []zap.Field {
	return []zap.Field{
		zap.String("operationID", i.OperationID),
		zap.String("stage", i.Stage),
		zap.String("action", i.Action),
		zap.String("accountID", i.AccountID),
	}
}

// WithSaga returns a context carrying a sentry hub scoped to the operation.
// Loggers obtained through FromContext report errors under that scope.
func WithSaga(ctx context.Context, info SagaInfo) context.Context {
	if sentryClient == nil {
		return ctx
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.NewHub(sentryClient, sentry.NewScope())
	} else {
		hub = hub.Clone()
	}
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("operation_id", info.OperationID)
		scope.SetTag("stage", info.Stage)
		scope.SetTag("action", info.Action)
		scope.SetUser(sentry.User{ID: info.AccountID})
	})

	return sentry.SetHubOnContext(ctx, hub)
}

// FromSaga returns a context logger annotated with the operation fields
func FromSaga(ctx context.Context, info SagaInfo) *zap.Logger {
	return FromContext(ctx).With(info.fields()...)
}

// InfoSaga logs an info message with operation fields
func InfoSaga(ctx context.Context, info SagaInfo, msg string, fields ...zap.Field) {
	FromSaga(ctx, info).Info(msg, fields...)
}

// WarnSaga logs a warning message with operation fields
func WarnSaga(ctx context.Context, info SagaInfo, msg string, fields ...zap.Field) {
	FromSaga(ctx, info).Warn(msg, fields...)
}

// ErrorSaga logs an error with operation fields
func ErrorSaga(ctx context.Context, info SagaInfo, err error, fields ...zap.Field) {
	FromSaga(ctx, info).Error(errMessage(err), fields...)
}
