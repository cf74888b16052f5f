/*
Package datastore defines the backing-store contract for ltistore.

The Backend interface covers the five capabilities the store facade needs
from a table:

	type Backend interface {
	    Scan(ctx context.Context, req *storagemodels.ScanRequest, opts ...storagemodels.ScanOption) ([]storagemodels.Document, error)
	    Create(ctx context.Context, table string, doc storagemodels.Document) error
	    Update(ctx context.Context, table string, key, patch storagemodels.Document) error
	    Delete(ctx context.Context, table string, key storagemodels.Document) error
	    Provision(ctx context.Context, spec storagemodels.TableSpec) error
	}

Implementations:
  - ddb: DynamoDB implementation with paged scans, retry and an optional circuit breaker
  - mock: In-memory implementation for testing

Transport failures are reported as errors.StoreUnavailableError.
*/
package datastore
