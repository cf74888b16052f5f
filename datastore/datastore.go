/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/ltistore/storagemodels"
)

// Backend is the backing store behind every collection. Tables are addressed
// by name; records and keys are plain documents.
type Backend interface {
	// Scan returns every live record of the table matching all clauses.
	Scan(ctx context.Context, req *storagemodels.ScanRequest, opts ...storagemodels.ScanOption) ([]storagemodels.Document, error)

	// Create writes a new record, overwriting any record with the same key.
	Create(ctx context.Context, table string, doc storagemodels.Document) error

	// Update sets the fields of patch on the record identified by key.
	Update(ctx context.Context, table string, key, patch storagemodels.Document) error

	// Delete removes the record identified by key. Deleting a missing record succeeds.
	Delete(ctx context.Context, table string, key storagemodels.Document) error

	// Provision creates the table if needed and enables record expiry.
	Provision(ctx context.Context, spec storagemodels.TableSpec) error
}
