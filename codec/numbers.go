/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/ltistore/storagemodels"
)

// maxExactFloat is the largest magnitude below which every integer is
// exactly representable as a float64.
const maxExactFloat = 1 << 53

func useNumber(o *attributevalue.DecoderOptions) {
	o.UseNumber = true
}

// DecodeItem converts a stored item into a document. Numbers keep their exact
// value: integers that fit an int64 decode as int64, other finite numbers as
// float64, and integers beyond int64 as their attributevalue.Number text.
func DecodeItem(item map[string]types.AttributeValue) (storagemodels.Document, error) {
	var doc map[string]interface{}
	if err := attributevalue.UnmarshalMapWithOptions(item, &doc, useNumber); err != nil {
		return nil, fmt.Errorf("codec: decode item: %w", err)
	}
	for field, v := range doc {
		doc[field] = numbers(v)
	}
	return storagemodels.Document(doc), nil
}

// numbers replaces the number literals inside v with their exact Go value.
func numbers(v interface{}) interface{} {
	switch x := v.(type) {
	case attributevalue.Number:
		return number(string(x), x)
	case json.Number:
		return number(string(x), x)
	case []attributevalue.Number:
		out := make([]interface{}, len(x))
		for i, n := range x {
			out[i] = number(string(n), n)
		}
		return out
	case []interface{}:
		for i := range x {
			x[i] = numbers(x[i])
		}
		return x
	case map[string]interface{}:
		for k := range x {
			x[k] = numbers(x[k])
		}
		return x
	}
	return v
}

func number(text string, raw interface{}) interface{} {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i
	}
	if !strings.ContainsAny(text, ".eE") {
		return raw
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return raw
	}
	if f == math.Trunc(f) && math.Abs(f) < maxExactFloat {
		return int64(f)
	}
	return f
}
