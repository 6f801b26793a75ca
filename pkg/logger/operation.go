package logger

import (
	"context"
	"log/slog"
	"time"
)

// Operation tracks the lifecycle of a named operation (start/progress/complete/fail).
type Operation struct {
	logger    *Logger
	ctx       context.Context
	name      string
	startTime time.Time
	attrs     []any
}

// StartOp begins tracking an operation.
func (l *Logger) StartOp(ctx context.Context, name string, args ...any) *Operation {
	op := &Operation{
		logger:    l,
		ctx:       ctx,
		name:      name,
		startTime: time.Now(),
		attrs:     args,
	}

	attrs := append([]any{slog.String("operation", name)}, args...)
	l.WithContext(ctx).Debug("operation started", attrs...)

	return op
}

// With adds attributes to the operation.
func (op *Operation) With(args ...any) *Operation {
	op.attrs = append(op.attrs, args...)
	return op
}

// Progress logs an intermediate step of the operation.
func (op *Operation) Progress(msg string, args ...any) {
	attrs := append(op.baseAttrs(), args...)
	op.logger.WithContext(op.ctx).Debug(msg, attrs...)
}

// Complete logs successful completion of the operation.
func (op *Operation) Complete(msg string, args ...any) {
	attrs := append(op.baseAttrs(), args...)
	op.logger.WithContext(op.ctx).Info(msg, attrs...)
}

// Fail logs a failed operation.
func (op *Operation) Fail(err error, msg string, args ...any) {
	attrs := append(op.baseAttrs(), slog.String("error", err.Error()))
	attrs = append(attrs, args...)
	op.logger.WithContext(op.ctx).Error(msg, attrs...)
}

func (op *Operation) baseAttrs() []any {
	attrs := []any{
		slog.String("operation", op.name),
		slog.Duration("duration", time.Since(op.startTime)),
	}
	return append(attrs, op.attrs...)
}
