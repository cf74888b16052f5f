/*
Package ddb provides a DynamoDB implementation of the datastore.Backend interface.

Every collection lives in its own table whose primary key is the collection's
hash key and optional range key, both strings. The Backend supports:
  - Paged scans filtered by an AND of equality clauses
  - An expiry guard hiding records whose "ttl" has passed before DynamoDB removes them
  - Partial updates built as SET expressions
  - Table provisioning with on-demand billing and TTL enablement
  - Linear-backoff retry of throttled or failed scan pages
  - An optional gobreaker circuit breaker around every request

Construction:

	cfg, _ := config.FromEnv()
	backend, err := ddb.NewFromConfig(ctx, cfg, ddb.WithLogger(logger))

or around an existing client:

	backend := ddb.New(client,
	    ddb.WithScanOptions(storagemodels.WithPageSize(100)),
	    ddb.WithCircuitBreaker(ddb.DefaultBreakerSettings("lti")),
	)

Every transport failure is returned as an errors.StoreUnavailableError and
logged with its DynamoDB error code.
*/
package ddb
