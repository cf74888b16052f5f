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
	"go.uber.org/zap"

	"github.com/suparena/ltistore/storagemodels"
)

// TableWaitTimeout bounds how long Provision waits for a new table to become active.
var TableWaitTimeout = 5 * time.Minute

// Provision creates the table described by spec with on-demand billing if it
// does not exist yet, waits for it to become active and enables expiry on
// the declared attribute. Provisioning an existing table is not an error.
func (b *Backend) Provision(ctx context.Context, spec storagemodels.TableSpec) error {
	if err := b.ensureTable(ctx, spec); err != nil {
		return err
	}
	if spec.ExpiryAttribute == "" {
		return nil
	}
	return b.ensureTimeToLive(ctx, spec)
}

func (b *Backend) ensureTable(ctx context.Context, spec storagemodels.TableSpec) error {
	describe := &sdk.DescribeTableInput{TableName: aws.String(spec.TableName)}

	_, err := b.client.DescribeTable(ctx, describe)
	if err == nil {
		b.logger.Debug("table exists", zap.String("table", spec.TableName))
		return nil
	}
	var rnfe *types.ResourceNotFoundException
	if !errors.As(err, &rnfe) {
		return b.wrapError("DescribeTable", spec.TableName, err)
	}

	_, err = b.client.CreateTable(ctx, createTableInput(spec))
	if err != nil {
		var riue *types.ResourceInUseException
		if !errors.As(err, &riue) {
			return b.wrapError("CreateTable", spec.TableName, err)
		}
	}

	waiter := sdk.NewTableExistsWaiter(b.client)
	if err := waiter.Wait(ctx, describe, TableWaitTimeout); err != nil {
		return b.wrapError("DescribeTable", spec.TableName, fmt.Errorf("wait for table to become active: %w", err))
	}
	b.logger.Info("table created", zap.String("table", spec.TableName))
	return nil
}

func (b *Backend) ensureTimeToLive(ctx context.Context, spec storagemodels.TableSpec) error {
	out, err := b.client.DescribeTimeToLive(ctx, &sdk.DescribeTimeToLiveInput{
		TableName: aws.String(spec.TableName),
	})
	if err != nil {
		return b.wrapError("DescribeTimeToLive", spec.TableName, err)
	}
	if d := out.TimeToLiveDescription; d != nil && aws.ToString(d.AttributeName) == spec.ExpiryAttribute {
		switch d.TimeToLiveStatus {
		case types.TimeToLiveStatusEnabled, types.TimeToLiveStatusEnabling:
			return nil
		}
	}

	_, err = b.client.UpdateTimeToLive(ctx, &sdk.UpdateTimeToLiveInput{
		TableName: aws.String(spec.TableName),
		TimeToLiveSpecification: &types.TimeToLiveSpecification{
			AttributeName: aws.String(spec.ExpiryAttribute),
			Enabled:       aws.Bool(true),
		},
	})
	if err != nil {
		return b.wrapError("UpdateTimeToLive", spec.TableName, err)
	}
	b.logger.Info("expiry enabled",
		zap.String("table", spec.TableName),
		zap.String("attribute", spec.ExpiryAttribute))
	return nil
}

func createTableInput(spec storagemodels.TableSpec) *sdk.CreateTableInput {
	attrs := []types.AttributeDefinition{
		{AttributeName: aws.String(spec.HashKey), AttributeType: types.ScalarAttributeTypeS},
	}
	keys := []types.KeySchemaElement{
		{AttributeName: aws.String(spec.HashKey), KeyType: types.KeyTypeHash},
	}
	if spec.RangeKey != "" {
		attrs = append(attrs, types.AttributeDefinition{AttributeName: aws.String(spec.RangeKey), AttributeType: types.ScalarAttributeTypeS})
		keys = append(keys, types.KeySchemaElement{AttributeName: aws.String(spec.RangeKey), KeyType: types.KeyTypeRange})
	}

	return &sdk.CreateTableInput{
		TableName:            aws.String(spec.TableName),
		BillingMode:          types.BillingModePayPerRequest,
		AttributeDefinitions: attrs,
		KeySchema:            keys,
	}
}
