/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ltistore

import (
	"context"

	"github.com/suparena/ltistore/models"
	"github.com/suparena/ltistore/storagemodels"
)

// Typed provides type-safe access to the collection of record type T.
type Typed[T models.Model] struct {
	store      *Store
	collection string
}

// NewTyped returns typed access to T's collection in s.
func NewTyped[T models.Model](s *Store) *Typed[T] {
	var zero T
	return &Typed[T]{store: s, collection: zero.Collection()}
}

// Collection returns the collection name of T.
func (t *Typed[T]) Collection() string {
	return t.collection
}

// Get returns the records matching filter decoded as T. Nothing matching
// yields an empty result and no error.
func (t *Typed[T]) Get(ctx context.Context, passphrase string, filter storagemodels.Filter) ([]T, error) {
	docs, err := t.store.Get(ctx, passphrase, t.collection, filter)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := models.Decode(doc, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Insert stores v as a new record.
func (t *Typed[T]) Insert(ctx context.Context, passphrase string, v T, keyFields storagemodels.Document) error {
	doc, err := models.Encode(v)
	if err != nil {
		return err
	}
	return t.store.Insert(ctx, passphrase, t.collection, doc, keyFields)
}

// Replace makes the record matching filter look like v.
func (t *Typed[T]) Replace(ctx context.Context, passphrase string, filter storagemodels.Filter, v T, keyFields storagemodels.Document) error {
	doc, err := models.Encode(v)
	if err != nil {
		return err
	}
	return t.store.Replace(ctx, passphrase, t.collection, filter, doc, keyFields)
}

// Modify sets the given fields on the record matching filter.
func (t *Typed[T]) Modify(ctx context.Context, passphrase string, filter storagemodels.Filter, modification storagemodels.Document) error {
	return t.store.Modify(ctx, passphrase, t.collection, filter, modification)
}

// Delete removes the records matching filter.
func (t *Typed[T]) Delete(ctx context.Context, filter storagemodels.Filter) error {
	return t.store.Delete(ctx, t.collection, filter)
}
