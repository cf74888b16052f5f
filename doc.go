/*
Package ltistore is an encrypted document store for the nine record
collections an LTI 1.3 tool keeps between launches: id tokens, context
tokens, platform registrations and their activation flags, signing keys,
access tokens, nonces and login states.

Each collection is backed by one DynamoDB table. Records are flat: object
fields are stored as JSON strings and parsed back on read. A record can
instead be stored encrypted, as a set of caller-chosen key fields next to an
AES-256-CBC {iv, data} envelope of the whole document.

Updates are partial. Replace and Modify read the current record, compute the
fields that changed and write only those, addressing the record by the key
its collection declares.

Basic Usage:

	backend, err := ddb.NewFromConfig(ctx, cfg, ddb.WithLogger(logger))
	if err != nil {
	    return err
	}
	store := ltistore.New(backend, ltistore.WithLogger(logger))
	if err := store.Provision(ctx); err != nil {
	    return err
	}
	store.Setup()

	err = store.Insert(ctx, "", "nonce", storagemodels.Document{"nonceValue": n}, nil)
	docs, err := store.Get(ctx, "", "nonce", storagemodels.Filter{"nonceValue": n})

	// Encrypted
	err = store.Insert(ctx, secret, "access-token", token,
	    storagemodels.Document{"platformUrl": url, "clientId": id})

Typed access:

	states := ltistore.NewTyped[models.State](store)
	found, err := states.Get(ctx, "", storagemodels.Filter{"stateValue": v})

The store does not serialize writers. Two concurrent updates of the same
record both compute their patch from what they read, and the last write wins.
*/
package ltistore
