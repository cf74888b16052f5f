/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package codec converts documents between their caller shape and their
// stored shape. Nested objects are stored as JSON strings.
package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/suparena/ltistore/registry"
	"github.com/suparena/ltistore/storagemodels"
)

// Flatten returns a copy of doc with every object-valued field replaced by
// its JSON serialization. Scalars, lists and nil are left as they are, so
// flattening an already flattened document changes nothing.
func Flatten(doc storagemodels.Document) (storagemodels.Document, error) {
	if doc == nil {
		return nil, nil
	}
	out := make(storagemodels.Document, len(doc))
	for field, v := range doc {
		if !isObject(v) {
			out[field] = v
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("codec: flatten field %q: %w", field, err)
		}
		out[field] = string(b)
	}
	return out, nil
}

// Unflatten parses the structured fields declared by the schema back into
// objects. A structured field that does not hold a JSON object or array is
// left untouched.
func Unflatten(s registry.Schema, doc storagemodels.Document) storagemodels.Document {
	if doc == nil {
		return nil
	}
	out := doc.Clone()
	for _, field := range s.Structured {
		raw, ok := out[field].(string)
		if !ok || raw == "" {
			continue
		}
		var v interface{}
		if err := decodeJSON(raw, &v); err != nil {
			continue
		}
		v = numbers(v)
		switch v.(type) {
		case map[string]interface{}, []interface{}:
			out[field] = v
		}
	}
	return out
}

// Normalize maps v onto the value space of stored attributes: numbers take
// the form DecodeItem gives them, typed maps and slices become their generic
// forms, structs become maps. Values that cannot be represented are returned
// unchanged.
func Normalize(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	av, err := attributevalue.Marshal(v)
	if err != nil {
		return v
	}
	var out interface{}
	if err := attributevalue.UnmarshalWithOptions(av, &out, useNumber); err != nil {
		return v
	}
	return numbers(out)
}

// Marshal serializes doc for encryption.
func Marshal(doc storagemodels.Document) (string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("codec: marshal document: %w", err)
	}
	return string(b), nil
}

// Unmarshal parses a decrypted payload back into a document.
func Unmarshal(payload string) (storagemodels.Document, error) {
	var doc map[string]interface{}
	if err := decodeJSON(payload, &doc); err != nil {
		return nil, fmt.Errorf("codec: unmarshal document: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return storagemodels.Document(numbers(doc).(map[string]interface{})), nil
}

// decodeJSON decodes a single JSON value keeping number literals intact.
func decodeJSON(data string, out interface{}) error {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}

func isObject(v interface{}) bool {
	switch m := v.(type) {
	case map[string]interface{}:
		return m != nil
	case storagemodels.Document:
		return m != nil
	case map[string]string:
		return m != nil
	}
	return false
}
