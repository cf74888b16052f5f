/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/suparena/ltistore/codec"
	"github.com/suparena/ltistore/storagemodels"
)

// Scan reads every page of the table that matches req. Throttled or
// server-side failures of a page are retried with linear backoff.
func (b *Backend) Scan(ctx context.Context, req *storagemodels.ScanRequest, opts ...storagemodels.ScanOption) ([]storagemodels.Document, error) {
	options := b.scan
	for _, opt := range opts {
		opt(&options)
	}

	expr, hasFilter, err := buildScanExpression(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build scan expression: %w", err)
	}

	input := &sdk.ScanInput{TableName: aws.String(req.TableName)}
	if hasFilter {
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}
	if options.PageSize > 0 {
		input.Limit = aws.Int32(options.PageSize)
	}

	progress := storagemodels.ScanProgress{StartTime: time.Now()}
	results := make([]storagemodels.Document, 0)

	for {
		out, retries, err := b.scanWithRetry(ctx, input, options)
		progress.Retries += retries
		if err != nil {
			return nil, b.wrapError("Scan", req.TableName, err)
		}

		progress.PagesRead++
		for _, item := range out.Items {
			doc, err := codec.DecodeItem(item)
			if err != nil {
				return nil, fmt.Errorf("failed to unmarshal item: %w", err)
			}
			results = append(results, doc)
		}
		progress.ItemsMatched = int64(len(results))
		progress.LastPageEmpty = len(out.Items) == 0
		if options.ProgressHandler != nil {
			options.ProgressHandler(progress)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	b.logger.Debug("scan complete",
		zap.String("table", req.TableName),
		zap.Int("clauses", len(req.Clauses)),
		zap.Int("pages", progress.PagesRead),
		zap.Int("matched", len(results)))
	return results, nil
}

// scanWithRetry executes one page read, retrying retryable failures.
func (b *Backend) scanWithRetry(ctx context.Context, input *sdk.ScanInput, options storagemodels.ScanOptions) (*sdk.ScanOutput, int, error) {
	var lastErr error
	if options.MaxRetries < 0 {
		options.MaxRetries = 0
	}

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, attempt, ctx.Err()
		default:
		}

		var out *sdk.ScanOutput
		err := b.execute(func() error {
			var err error
			out, err = b.client.Scan(ctx, input)
			return err
		})
		if err == nil {
			return out, attempt, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			return nil, attempt, err
		}

		if attempt < options.MaxRetries {
			b.logger.Debug("retrying scan page",
				zap.String("table", aws.ToString(input.TableName)),
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			select {
			case <-ctx.Done():
				return nil, attempt, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, options.MaxRetries, fmt.Errorf("scan failed after %d retries: %w", options.MaxRetries, lastErr)
}

var retryableCodes = map[string]bool{
	"ProvisionedThroughputExceededException": true,
	"RequestLimitExceeded":                   true,
	"ThrottlingException":                    true,
	"InternalServerError":                    true,
	"ServiceUnavailable":                     true,
}

// isRetryableError determines if a DynamoDB error is retryable
func isRetryableError(err error) bool {
	var pte *types.ProvisionedThroughputExceededException
	var rle *types.RequestLimitExceeded
	var ise *types.InternalServerError
	if errors.As(err, &pte) || errors.As(err, &rle) || errors.As(err, &ise) {
		return true
	}

	var ae smithy.APIError
	if errors.As(err, &ae) && retryableCodes[ae.ErrorCode()] {
		return true
	}

	var retryable interface{ RetryableError() bool }
	if errors.As(err, &retryable) {
		return retryable.RetryableError()
	}
	return false
}
