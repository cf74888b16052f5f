/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"

	"github.com/aws/smithy-go"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	storeerrors "github.com/suparena/ltistore/errors"
)

// call runs fn through the breaker and reports any failure as a
// StoreUnavailableError for op on table.
func (b *Backend) call(ctx context.Context, op, table string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return storeerrors.NewStoreUnavailableError(op, table, err)
	}
	if err := b.execute(fn); err != nil {
		return b.wrapError(op, table, err)
	}
	return nil
}

func (b *Backend) wrapError(op, table string, err error) error {
	fields := []zap.Field{
		zap.String("operation", op),
		zap.String("table", table),
		zap.Error(err),
	}

	var ae smithy.APIError
	switch {
	case errors.As(err, &ae):
		fields = append(fields, zap.String("code", ae.ErrorCode()), zap.String("fault", ae.ErrorFault().String()))
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		fields = append(fields, zap.String("code", "CircuitOpen"))
	}
	b.logger.Warn("dynamodb request failed", fields...)

	return storeerrors.NewStoreUnavailableError(op, table, err)
}
