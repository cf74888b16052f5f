/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.Backend for testing
package mock

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/ltistore/codec"
	"github.com/suparena/ltistore/datastore"
	"github.com/suparena/ltistore/errors"
	"github.com/suparena/ltistore/storagemodels"
)

var _ datastore.Backend = (*Backend)(nil)

type table struct {
	spec  storagemodels.TableSpec
	items map[string]map[string]types.AttributeValue
}

// Backend is an in-memory datastore.Backend. Records are held in their
// DynamoDB attribute form so values behave as they would after a round trip.
type Backend struct {
	mu     sync.RWMutex
	tables map[string]*table
	calls  map[string]int

	scanError      error
	createError    error
	updateError    error
	deleteError    error
	provisionError error
}

// New creates an empty Backend with the given tables already provisioned
func New(specs ...storagemodels.TableSpec) *Backend {
	m := &Backend{
		tables: make(map[string]*table),
		calls:  make(map[string]int),
	}
	for _, s := range specs {
		m.tables[s.TableName] = &table{spec: s, items: make(map[string]map[string]types.AttributeValue)}
	}
	return m
}

// WithScanError makes Scan operations return an error
func (m *Backend) WithScanError(err error) *Backend {
	m.scanError = err
	return m
}

// WithCreateError makes Create operations return an error
func (m *Backend) WithCreateError(err error) *Backend {
	m.createError = err
	return m
}

// WithUpdateError makes Update operations return an error
func (m *Backend) WithUpdateError(err error) *Backend {
	m.updateError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *Backend) WithDeleteError(err error) *Backend {
	m.deleteError = err
	return m
}

// WithProvisionError makes Provision operations return an error
func (m *Backend) WithProvisionError(err error) *Backend {
	m.provisionError = err
	return m
}

// Provision registers a table. Provisioning an existing table is a no-op.
func (m *Backend) Provision(ctx context.Context, spec storagemodels.TableSpec) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["Provision"]++

	if m.provisionError != nil {
		return m.provisionError
	}
	if _, exists := m.tables[spec.TableName]; !exists {
		m.tables[spec.TableName] = &table{spec: spec, items: make(map[string]map[string]types.AttributeValue)}
	}
	return nil
}

// Scan returns the live records of a table matching every clause, ordered by key
func (m *Backend) Scan(ctx context.Context, req *storagemodels.ScanRequest, opts ...storagemodels.ScanOption) ([]storagemodels.Document, error) {
	m.mu.Lock()
	m.calls["Scan"]++
	m.mu.Unlock()

	if m.scanError != nil {
		return nil, m.scanError
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	t, err := m.table("Scan", req.TableName)
	if err != nil {
		return nil, err
	}

	want := make([]interface{}, len(req.Clauses))
	for i, c := range req.Clauses {
		want[i] = codec.Normalize(c.Value)
	}

	keys := make([]string, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	results := make([]storagemodels.Document, 0)
	for _, k := range keys {
		doc, err := toDocument(t.items[k])
		if err != nil {
			return nil, err
		}
		if expired(doc, req) || !matches(doc, req.Clauses, want) {
			continue
		}
		results = append(results, doc)
	}
	return results, nil
}

// Create stores a record, replacing any record with the same key
func (m *Backend) Create(ctx context.Context, tableName string, doc storagemodels.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["Create"]++

	if m.createError != nil {
		return m.createError
	}
	t, err := m.table("Create", tableName)
	if err != nil {
		return err
	}

	return put(t, doc)
}

// Update sets the patch fields on the keyed record, creating it when absent
func (m *Backend) Update(ctx context.Context, tableName string, key, patch storagemodels.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["Update"]++

	if m.updateError != nil {
		return m.updateError
	}
	t, err := m.table("Update", tableName)
	if err != nil {
		return err
	}

	keyItem, err := attributevalue.MarshalMap(map[string]interface{}(key))
	if err != nil {
		return fmt.Errorf("mock: marshal key: %w", err)
	}
	k, err := keyOf(t.spec, keyItem)
	if err != nil {
		return err
	}
	patchItem, err := attributevalue.MarshalMap(map[string]interface{}(patch))
	if err != nil {
		return fmt.Errorf("mock: marshal patch: %w", err)
	}

	item, exists := t.items[k]
	if !exists {
		item = keyItem
	}
	for field, v := range patchItem {
		item[field] = v
	}
	t.items[k] = item
	return nil
}

// Delete removes the keyed record. A missing record is not an error.
func (m *Backend) Delete(ctx context.Context, tableName string, key storagemodels.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["Delete"]++

	if m.deleteError != nil {
		return m.deleteError
	}
	t, err := m.table("Delete", tableName)
	if err != nil {
		return err
	}

	keyItem, err := attributevalue.MarshalMap(map[string]interface{}(key))
	if err != nil {
		return fmt.Errorf("mock: marshal key: %w", err)
	}
	k, err := keyOf(t.spec, keyItem)
	if err != nil {
		return err
	}
	delete(t.items, k)
	return nil
}

// Helper methods for testing

// SetData replaces the records of a provisioned table (for testing)
func (m *Backend) SetData(tableName string, docs ...storagemodels.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[tableName]
	if !ok {
		return fmt.Errorf("mock: table %q not provisioned", tableName)
	}
	t.items = make(map[string]map[string]types.AttributeValue)
	for _, d := range docs {
		if err := put(t, d); err != nil {
			return err
		}
	}
	return nil
}

// GetData returns every record of a table regardless of expiry, ordered by key (for testing)
func (m *Backend) GetData(tableName string) []storagemodels.Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tables[tableName]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]storagemodels.Document, 0, len(keys))
	for _, k := range keys {
		doc, err := toDocument(t.items[k])
		if err == nil {
			out = append(out, doc)
		}
	}
	return out
}

// Count returns the number of records stored in a table
func (m *Backend) Count(tableName string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.tables[tableName]; ok {
		return len(t.items)
	}
	return 0
}

// Calls returns how many times the named operation was invoked
func (m *Backend) Calls(op string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[op]
}

// Tables returns the provisioned table specs ordered by name
func (m *Backend) Tables() []storagemodels.TableSpec {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]storagemodels.TableSpec, 0, len(m.tables))
	for _, t := range m.tables {
		out = append(out, t.spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TableName < out[j].TableName })
	return out
}

// Clear removes all records and resets call counters, keeping the tables
func (m *Backend) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tables {
		t.items = make(map[string]map[string]types.AttributeValue)
	}
	m.calls = make(map[string]int)
}

func (m *Backend) table(op, name string) (*table, error) {
	t, ok := m.tables[name]
	if !ok {
		return nil, errors.NewStoreUnavailableError(op, name, fmt.Errorf("table not provisioned"))
	}
	return t, nil
}

func put(t *table, doc storagemodels.Document) error {
	item, err := attributevalue.MarshalMap(map[string]interface{}(doc))
	if err != nil {
		return fmt.Errorf("mock: marshal record: %w", err)
	}
	k, err := keyOf(t.spec, item)
	if err != nil {
		return err
	}
	t.items[k] = item
	return nil
}

func keyOf(spec storagemodels.TableSpec, item map[string]types.AttributeValue) (string, error) {
	h, err := keyPart(spec.HashKey, item)
	if err != nil {
		return "", err
	}
	if spec.RangeKey == "" {
		return h, nil
	}
	r, err := keyPart(spec.RangeKey, item)
	if err != nil {
		return "", err
	}
	return h + "|" + r, nil
}

func keyPart(field string, item map[string]types.AttributeValue) (string, error) {
	switch v := item[field].(type) {
	case *types.AttributeValueMemberS:
		return v.Value, nil
	case *types.AttributeValueMemberN:
		return v.Value, nil
	}
	return "", fmt.Errorf("mock: record is missing key attribute %q", field)
}

func toDocument(item map[string]types.AttributeValue) (storagemodels.Document, error) {
	doc, err := codec.DecodeItem(item)
	if err != nil {
		return nil, fmt.Errorf("mock: unmarshal record: %w", err)
	}
	return doc, nil
}

func matches(doc storagemodels.Document, clauses []storagemodels.Clause, want []interface{}) bool {
	for i, c := range clauses {
		got, ok := doc[c.Field]
		if !ok || !reflect.DeepEqual(got, want[i]) {
			return false
		}
	}
	return true
}

func expired(doc storagemodels.Document, req *storagemodels.ScanRequest) bool {
	if req.ExpiryAttribute == "" {
		return false
	}
	v, ok := doc[req.ExpiryAttribute]
	if !ok {
		return false
	}
	var at float64
	switch n := v.(type) {
	case int64:
		return n <= req.Now.Unix()
	case float64:
		at = n
	case attributevalue.Number:
		f, err := n.Float64()
		if err != nil {
			return false
		}
		at = f
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return false
		}
		at = f
	default:
		return false
	}
	return at <= float64(req.Now.Unix())
}
