/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"github.com/suparena/ltistore/errors"
	"github.com/suparena/ltistore/storagemodels"
)

// DeriveKey extracts the primary key of a stored record. Every declared key
// field must be present and non-nil.
func DeriveKey(s Schema, doc storagemodels.Document) (storagemodels.Document, error) {
	key := make(storagemodels.Document, 2)
	for _, f := range s.KeyFields() {
		v, ok := doc[f]
		if !ok || v == nil {
			return nil, errors.NewKeyDerivationError(s.Name, f)
		}
		key[f] = v
	}
	return key, nil
}

// HasFullKey reports whether doc carries every key field of s and nothing else.
func HasFullKey(s Schema, doc storagemodels.Document) bool {
	if len(doc) != len(s.KeyFields()) {
		return false
	}
	_, err := DeriveKey(s, doc)
	return err == nil
}

// StripKey returns a copy of doc without the key fields of s.
func StripKey(s Schema, doc storagemodels.Document) storagemodels.Document {
	out := make(storagemodels.Document, len(doc))
	for k, v := range doc {
		if s.IsKeyField(k) {
			continue
		}
		out[k] = v
	}
	return out
}
