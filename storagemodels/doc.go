/*
Package storagemodels defines the value types shared by the store facade and its backends.

Key Types:

Document:
A record of a collection, keyed by field name:

	doc := storagemodels.Document{
	    "nonceValue": "abc123",
	}

Filter:
A conjunction of equality constraints. Clauses() returns them ordered by field name:

	filter := storagemodels.Filter{"platformUrl": "https://lms.example", "clientId": "c1"}
	for _, c := range filter.Clauses() {
	    // c.Field == "clientId", then "platformUrl"
	}

ScanRequest:
What a backend receives to run a scan:

	req := &storagemodels.ScanRequest{
	    TableName:       "nonce",
	    Clauses:         filter.Clauses(),
	    ExpiryAttribute: "ttl",
	    Now:             time.Now(),
	}

ScanOptions:
Paging and retry behaviour of a backend scan:

	opts := []storagemodels.ScanOption{
	    storagemodels.WithPageSize(100),
	    storagemodels.WithMaxRetries(3),
	}
*/
package storagemodels
