/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"encoding/json"
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/mitchellh/mapstructure"

	"github.com/suparena/ltistore/codec"
	"github.com/suparena/ltistore/storagemodels"
)

// Decode fills out, a pointer to a record type, from a document. Field names
// follow the json tags; date-time strings become strfmt.DateTime and numbers
// are converted to the target numeric type.
func Decode(doc storagemodels.Document, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Squash:           true,
		DecodeHook:       strfmt.Default.MapStructureHookFunc(),
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("models: %w", err)
	}
	if err := dec.Decode(map[string]interface{}(doc)); err != nil {
		return fmt.Errorf("models: decode %T: %w", out, err)
	}
	return nil
}

// Encode returns the document form of a record.
func Encode(v interface{}) (storagemodels.Document, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("models: encode %T: %w", v, err)
	}
	doc, err := codec.Unmarshal(string(b))
	if err != nil {
		return nil, fmt.Errorf("models: encode %T: %w", v, err)
	}
	return doc, nil
}
