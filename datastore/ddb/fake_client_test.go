/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"sync"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeClient records every request and replays canned responses.
type fakeClient struct {
	mu sync.Mutex

	scanInputs   []*sdk.ScanInput
	scanPages    []*sdk.ScanOutput
	scanErrors   []error
	putInputs    []*sdk.PutItemInput
	updateInputs []*sdk.UpdateItemInput
	deleteInputs []*sdk.DeleteItemInput
	createInputs []*sdk.CreateTableInput
	ttlInputs    []*sdk.UpdateTimeToLiveInput

	tableExists bool
	ttlStatus   types.TimeToLiveStatus
	ttlAttr     string

	putErr    error
	updateErr error
	deleteErr error
	createErr error
}

var _ Client = (*fakeClient)(nil)

func (f *fakeClient) Scan(ctx context.Context, in *sdk.ScanInput, _ ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := *in
	f.scanInputs = append(f.scanInputs, &cp)
	if len(f.scanErrors) > 0 {
		err := f.scanErrors[0]
		f.scanErrors = f.scanErrors[1:]
		if err != nil {
			return nil, err
		}
	}
	if len(f.scanPages) == 0 {
		return &sdk.ScanOutput{}, nil
	}
	out := f.scanPages[0]
	f.scanPages = f.scanPages[1:]
	return out, nil
}

func (f *fakeClient) PutItem(ctx context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putInputs = append(f.putInputs, in)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeClient) UpdateItem(ctx context.Context, in *sdk.UpdateItemInput, _ ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateInputs = append(f.updateInputs, in)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &sdk.UpdateItemOutput{}, nil
}

func (f *fakeClient) DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteInputs = append(f.deleteInputs, in)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &sdk.DeleteItemOutput{}, nil
}

func (f *fakeClient) CreateTable(ctx context.Context, in *sdk.CreateTableInput, _ ...func(*sdk.Options)) (*sdk.CreateTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createInputs = append(f.createInputs, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.tableExists = true
	return &sdk.CreateTableOutput{}, nil
}

func (f *fakeClient) DescribeTable(ctx context.Context, in *sdk.DescribeTableInput, _ ...func(*sdk.Options)) (*sdk.DescribeTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.tableExists {
		return nil, &types.ResourceNotFoundException{Message: in.TableName}
	}
	return &sdk.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName:   in.TableName,
			TableStatus: types.TableStatusActive,
		},
	}, nil
}

func (f *fakeClient) DescribeTimeToLive(ctx context.Context, in *sdk.DescribeTimeToLiveInput, _ ...func(*sdk.Options)) (*sdk.DescribeTimeToLiveOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	desc := &types.TimeToLiveDescription{TimeToLiveStatus: types.TimeToLiveStatusDisabled}
	if f.ttlStatus != "" {
		desc.TimeToLiveStatus = f.ttlStatus
		attr := f.ttlAttr
		desc.AttributeName = &attr
	}
	return &sdk.DescribeTimeToLiveOutput{TimeToLiveDescription: desc}, nil
}

func (f *fakeClient) UpdateTimeToLive(ctx context.Context, in *sdk.UpdateTimeToLiveInput, _ ...func(*sdk.Options)) (*sdk.UpdateTimeToLiveOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ttlInputs = append(f.ttlInputs, in)
	f.ttlStatus = types.TimeToLiveStatusEnabled
	f.ttlAttr = *in.TimeToLiveSpecification.AttributeName
	return &sdk.UpdateTimeToLiveOutput{}, nil
}
