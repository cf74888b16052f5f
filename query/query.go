/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package query turns a collection filter into a backing-store scan.
package query

import (
	"context"
	"time"

	"github.com/suparena/ltistore/datastore"
	"github.com/suparena/ltistore/registry"
	"github.com/suparena/ltistore/storagemodels"
)

// Builder builds scan requests for the collections of a registry.
type Builder struct {
	TablePrefix string
	Now         func() time.Time
}

// Build returns the scan for filter against the collection described by s.
// A nil or empty filter scans the whole collection; otherwise every entry
// becomes one equality clause and the clauses are combined with AND.
// Collections with an expiry only return records that are still live.
func (b Builder) Build(s registry.Schema, filter storagemodels.Filter) *storagemodels.ScanRequest {
	req := &storagemodels.ScanRequest{
		TableName: s.TableName(b.TablePrefix),
		Clauses:   filter.Clauses(),
	}
	if s.Expires() {
		req.ExpiryAttribute = s.ExpiryAttribute
		req.Now = b.now()
	}
	return req
}

// Find runs the scan for filter and returns the matching stored records.
// No match yields an empty, non-nil slice.
func (b Builder) Find(ctx context.Context, backend datastore.Backend, s registry.Schema, filter storagemodels.Filter, opts ...storagemodels.ScanOption) ([]storagemodels.Document, error) {
	docs, err := backend.Scan(ctx, b.Build(s, filter), opts...)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []storagemodels.Document{}
	}
	return docs, nil
}

func (b Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}
