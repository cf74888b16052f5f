/*
Package errors provides semantic error types for ltistore.

Every failure the store facade reports falls into one of six categories, each
with a sentinel that can be checked with the standard errors.Is() function or
the provided helper functions.

Common Errors:

	var (
	    ErrNotDeployed       = errors.New("store not deployed")
	    ErrMissingParams     = errors.New("missing parameters")
	    ErrUnknownCollection = errors.New("unknown collection")
	    ErrStoreUnavailable  = errors.New("backing store unavailable")
	    ErrDecryptionFailed  = errors.New("decryption failed")
	    ErrKeyDerivation     = errors.New("key derivation failed")
	)

Usage:

	docs, err := store.Get(ctx, passphrase, "access-token", filter)
	if err != nil {
	    if errors.IsDecryptionFailed(err) {
	        // wrong passphrase or tampered envelope
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewMissingParamsError("insert", "keyFields")
	err := errors.NewStoreUnavailableError("Scan", "nonce", cause)

None of these errors is retried by the store. Retry policy belongs to the
backing store transport.
*/
package errors
