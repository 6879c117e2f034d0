// internal/app/system/steplog/steplog.go
package steplog

// The assignment and approval flows touch several collections without a
// surrounding transaction. When a later write fails the earlier ones stay
// applied, so every step is logged with a shared operation id that support
// staff can use to find and compensate the partial state by hand.

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey string

const opIDKey ctxKey = "steplogOpID"

// NewOperation stamps ctx with a fresh operation id and returns the id.
// All steps logged under the returned context carry it.
func NewOperation(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, opIDKey, id), id
}

// OperationID returns the operation id from ctx, or "" if none was set.
func OperationID(ctx context.Context) string {
	id, _ := ctx.Value(opIDKey).(string)
	return id
}

// Logger records the individual writes of a multi-collection operation.
type Logger struct {
	zapLog *zap.Logger
}

// New creates a step Logger.
func New(zapLog *zap.Logger) *Logger {
	return &Logger{zapLog: zapLog}
}

// Step logs a completed write. The extra fields should identify the document
// the step touched (contract id, customer id, collection scope).
func (l *Logger) Step(ctx context.Context, op, step string, fields ...zap.Field) {
	l.zapLog.Info("operation step",
		append([]zap.Field{
			zap.String("op", op),
			zap.String("step", step),
			zap.String("op_id", OperationID(ctx)),
			zap.Time("at", time.Now().UTC()),
		}, fields...)...)
}

// Failed logs a step that errored after earlier steps already committed.
// These entries are the starting point for manual compensation.
func (l *Logger) Failed(ctx context.Context, op, step string, err error, fields ...zap.Field) {
	l.zapLog.Error("operation step failed",
		append([]zap.Field{
			zap.String("op", op),
			zap.String("step", step),
			zap.String("op_id", OperationID(ctx)),
			zap.Error(err),
		}, fields...)...)
}
