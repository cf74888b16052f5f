/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/suparena/ltistore/config"
	"github.com/suparena/ltistore/datastore"
	"github.com/suparena/ltistore/storagemodels"
)

var _ datastore.Backend = (*Backend)(nil)

// Backend implements datastore.Backend on DynamoDB. Each collection lives in
// its own table keyed by the collection's hash and optional range key.
type Backend struct {
	client  Client
	logger  *zap.Logger
	breaker *gobreaker.CircuitBreaker
	scan    storagemodels.ScanOptions
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithCircuitBreaker guards every request with a breaker built from settings.
// OnStateChange is logged when settings does not set one.
func WithCircuitBreaker(settings gobreaker.Settings) Option {
	return func(b *Backend) {
		b.breaker = newBreaker(settings, b)
	}
}

// WithScanOptions sets the defaults applied to every scan before per-call options.
func WithScanOptions(opts ...storagemodels.ScanOption) Option {
	return func(b *Backend) {
		for _, opt := range opts {
			opt(&b.scan)
		}
	}
}

// New constructs a Backend around an existing client.
func New(client Client, opts ...Option) *Backend {
	b := &Backend{
		client: client,
		logger: zap.NewNop(),
		scan:   storagemodels.DefaultScanOptions(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromConfig builds the DynamoDB client from cfg and wraps it in a Backend
// carrying the configured retry policy and, if enabled, a circuit breaker.
func NewFromConfig(ctx context.Context, cfg config.Config, opts ...Option) (*Backend, error) {
	client, err := NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	base := []Option{WithScanOptions(
		storagemodels.WithMaxRetries(cfg.MaxRetries),
		storagemodels.WithRetryBackoff(cfg.RetryBackoff),
	)}
	if cfg.BreakerEnabled {
		base = append(base, WithCircuitBreaker(DefaultBreakerSettings("ltistore-dynamodb")))
	}
	return New(client, append(base, opts...)...), nil
}

// Create writes doc as a new item, replacing any item with the same key.
func (b *Backend) Create(ctx context.Context, table string, doc storagemodels.Document) error {
	item, err := attributevalue.MarshalMap(map[string]interface{}(doc))
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	return b.call(ctx, "PutItem", table, func() error {
		_, err := b.client.PutItem(ctx, &sdk.PutItemInput{
			TableName: aws.String(table),
			Item:      item,
		})
		return err
	})
}

// Update sets the fields of patch on the item identified by key.
func (b *Backend) Update(ctx context.Context, table string, key, patch storagemodels.Document) error {
	keyItem, err := attributevalue.MarshalMap(map[string]interface{}(key))
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}
	expr, err := buildUpdateExpression(patch)
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	b.logger.Debug("updating item",
		zap.String("table", table),
		zap.Strings("fields", sortedFields(patch)))

	return b.call(ctx, "UpdateItem", table, func() error {
		_, err := b.client.UpdateItem(ctx, &sdk.UpdateItemInput{
			TableName:                 aws.String(table),
			Key:                       keyItem,
			UpdateExpression:          expr.Update(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		})
		return err
	})
}

// Delete removes the item identified by key. DynamoDB treats deleting a
// missing item as success, so no existence check is made.
func (b *Backend) Delete(ctx context.Context, table string, key storagemodels.Document) error {
	keyItem, err := attributevalue.MarshalMap(map[string]interface{}(key))
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}

	return b.call(ctx, "DeleteItem", table, func() error {
		_, err := b.client.DeleteItem(ctx, &sdk.DeleteItemInput{
			TableName: aws.String(table),
			Key:       keyItem,
		})
		return err
	})
}
