/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package diff

import (
	"reflect"
	"testing"

	"github.com/suparena/ltistore/storagemodels"
)

func TestDiffIdentity(t *testing.T) {
	docs := []storagemodels.Document{
		{},
		{"stateValue": "s1", "query": "a=1"},
		{"n": 1, "ok": true, "list": []interface{}{"a", "b"}},
		{"nested": map[string]interface{}{"a": map[string]interface{}{"b": 1}}},
	}

	for _, d := range docs {
		if patch := Diff(d, d); len(patch) != 0 {
			t.Errorf("Diff(d, d) = %v, want empty", patch)
		}
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name      string
		candidate storagemodels.Document
		reference storagemodels.Document
		want      storagemodels.Document
	}{
		{
			name:      "single changed field",
			candidate: storagemodels.Document{"stateValue": "s1", "query": "a=2"},
			reference: storagemodels.Document{"stateValue": "s1", "query": "a=1"},
			want:      storagemodels.Document{"query": "a=2"},
		},
		{
			name:      "field missing from reference",
			candidate: storagemodels.Document{"kid": "k1", "platformUrl": "https://lms"},
			reference: storagemodels.Document{"kid": "k1"},
			want:      storagemodels.Document{"platformUrl": "https://lms"},
		},
		{
			name:      "reference only fields are ignored",
			candidate: storagemodels.Document{"id": "p1"},
			reference: storagemodels.Document{"id": "p1", "active": true},
			want:      storagemodels.Document{},
		},
		{
			name:      "numeric normalisation",
			candidate: storagemodels.Document{"n": 1},
			reference: storagemodels.Document{"n": float64(1)},
			want:      storagemodels.Document{},
		},
		{
			name:      "integers beyond float precision",
			candidate: storagemodels.Document{"n": int64(9007199254740993)},
			reference: storagemodels.Document{"n": int64(9007199254740992)},
			want:      storagemodels.Document{"n": int64(9007199254740993)},
		},
		{
			name:      "equal large integers",
			candidate: storagemodels.Document{"n": int64(9007199254740993)},
			reference: storagemodels.Document{"n": int64(9007199254740993)},
			want:      storagemodels.Document{},
		},
		{
			name:      "string versus number is a change",
			candidate: storagemodels.Document{"n": "1"},
			reference: storagemodels.Document{"n": float64(1)},
			want:      storagemodels.Document{"n": "1"},
		},
		{
			name:      "nested objects recurse",
			candidate: storagemodels.Document{"cfg": map[string]interface{}{"a": 1, "b": 2}},
			reference: storagemodels.Document{"cfg": map[string]interface{}{"a": 1, "b": 3}},
			want:      storagemodels.Document{"cfg": storagemodels.Document{"b": 2}},
		},
		{
			name:      "unchanged nested object is omitted",
			candidate: storagemodels.Document{"cfg": map[string]interface{}{"a": 1}, "x": "y"},
			reference: storagemodels.Document{"cfg": map[string]interface{}{"a": 1}, "x": "z"},
			want:      storagemodels.Document{"x": "y"},
		},
		{
			name:      "object replacing a scalar",
			candidate: storagemodels.Document{"cfg": map[string]interface{}{"a": 1}},
			reference: storagemodels.Document{"cfg": "flat"},
			want:      storagemodels.Document{"cfg": map[string]interface{}{"a": 1}},
		},
		{
			name:      "list change",
			candidate: storagemodels.Document{"roles": []interface{}{"Learner", "Mentor"}},
			reference: storagemodels.Document{"roles": []interface{}{"Learner"}},
			want:      storagemodels.Document{"roles": []interface{}{"Learner", "Mentor"}},
		},
		{
			name:      "nil candidate value against absent field",
			candidate: storagemodels.Document{"x": nil},
			reference: storagemodels.Document{},
			want:      storagemodels.Document{"x": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.candidate, tt.reference)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Diff() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestChanged(t *testing.T) {
	got := Changed(storagemodels.Document{"b": 1, "a": 2})
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Changed() = %v, want %v", got, want)
	}
	if len(Changed(storagemodels.Document{})) != 0 {
		t.Error("Changed of an empty patch should be empty")
	}
}
