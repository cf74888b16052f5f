/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"sort"
	"time"
)

// Document is a single record of a collection, keyed by field name.
// Before storage a value may be a nested map or slice; once stored every
// map-valued field is carried as its JSON string form.
type Document map[string]interface{}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Filter is a conjunction of field equality constraints.
// A nil Filter selects every record of a collection.
type Filter map[string]interface{}

// Clauses returns the filter as equality clauses ordered by field name,
// so that the same filter always produces the same scan expression.
func (f Filter) Clauses() []Clause {
	if len(f) == 0 {
		return nil
	}
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	clauses := make([]Clause, 0, len(fields))
	for _, field := range fields {
		clauses = append(clauses, Clause{Field: field, Value: f[field]})
	}
	return clauses
}

// Clause is a single "field equals value" constraint.
type Clause struct {
	Field string
	Value interface{}
}

// ScanRequest describes a scan against one table.
type ScanRequest struct {
	// TableName is the backing table to scan.
	TableName string
	// Clauses are combined with logical AND. An empty list scans the whole table.
	Clauses []Clause
	// ExpiryAttribute, when set, excludes records whose expiry (unix seconds)
	// is at or before Now.
	ExpiryAttribute string
	// Now is the reference instant for the expiry guard.
	Now time.Time
}

// TableSpec is what the backing store needs to provision a table.
type TableSpec struct {
	TableName string
	HashKey   string
	// RangeKey is empty for hash-only tables.
	RangeKey string
	// ExpiryAttribute is empty for tables whose records never expire.
	ExpiryAttribute string
}

// Envelope is the at-rest form of an encrypted document body.
type Envelope struct {
	IV   string `json:"iv"`
	Data string `json:"data"`
}

// Field names used for an encrypted envelope inside a stored record.
const (
	EnvelopeIVField   = "iv"
	EnvelopeDataField = "data"
)
