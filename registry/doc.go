/*
Package registry holds the static collection declarations for ltistore.

Each collection names its backing table, primary key (hash key plus an
optional range key), the fields stored as serialized objects, and whether
records get a creation timestamp and an expiry. The declarations ship
embedded in collections.yaml and are loaded once:

	schema, err := registry.Lookup(registry.Nonce)
	if err != nil {
	    // errors.IsUnknownCollection(err)
	}

The Key Deriver extracts the primary key of a stored record:

	key, err := registry.DeriveKey(schema, record)
	// key == {"nonceValue": "..."}

Schemas are values; the registry is safe for concurrent readers.
*/
package registry
