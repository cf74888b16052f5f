/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package diff computes the one-directional field patch between a candidate
// document and the stored record it would replace.
package diff

import (
	"reflect"

	"github.com/suparena/ltistore/codec"
	"github.com/suparena/ltistore/storagemodels"
)

// Diff returns the fields of candidate that differ from reference. When both
// sides hold an object under the same field the comparison recurses and the
// nested patch is kept only if it is non-empty. Fields present only in
// reference never appear. Values are compared strictly after normalisation,
// so 1 and 1.0 are equal while "1" and 1 are not.
func Diff(candidate, reference storagemodels.Document) storagemodels.Document {
	return diffMaps(candidate, reference)
}

// Changed returns the top-level field names of the patch.
func Changed(patch storagemodels.Document) []string {
	fields := make([]string, 0, len(patch))
	for _, c := range storagemodels.Filter(patch).Clauses() {
		fields = append(fields, c.Field)
	}
	return fields
}

func diffMaps(candidate, reference map[string]interface{}) storagemodels.Document {
	patch := storagemodels.Document{}
	for field, cv := range candidate {
		rv, present := reference[field]

		cm, cIsMap := asMap(cv)
		rm, rIsMap := asMap(rv)
		if present && cIsMap && rIsMap {
			if nested := diffMaps(cm, rm); len(nested) > 0 {
				patch[field] = nested
			}
			continue
		}

		if !present || !equal(cv, rv) {
			patch[field] = cv
		}
	}
	return patch
}

func equal(a, b interface{}) bool {
	return reflect.DeepEqual(codec.Normalize(a), codec.Normalize(b))
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, m != nil
	case storagemodels.Document:
		return m, m != nil
	}
	return nil, false
}
