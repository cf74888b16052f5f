/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ltistore

import (
	"context"
	"sort"
	"time"

	"github.com/go-openapi/strfmt"
	"go.uber.org/zap"

	"github.com/suparena/ltistore/cipher"
	"github.com/suparena/ltistore/codec"
	"github.com/suparena/ltistore/diff"
	"github.com/suparena/ltistore/errors"
	"github.com/suparena/ltistore/registry"
	"github.com/suparena/ltistore/storagemodels"
)

// Get returns the records of collection matching every field of filter. An
// empty filter matches all live records. Structured fields come back as
// objects.
//
// With a passphrase, each record's envelope is decrypted and the stored
// document is returned in place of the record, carrying the record's
// creation time.
//
// Get returns nil and no error when nothing matches.
func (s *Store) Get(ctx context.Context, passphrase, collection string, filter storagemodels.Filter) (docs []storagemodels.Document, err error) {
	defer s.observe(OpGet, collection, time.Now(), &err)

	schema, err := s.prepare(collection)
	if err != nil {
		return nil, err
	}

	found, err := s.finder().Find(ctx, s.backend, schema, filter)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("get",
		zap.String("collection", collection),
		zap.Int("clauses", len(filter)),
		zap.Int("matched", len(found)))
	if len(found) == 0 {
		return nil, nil
	}

	docs = make([]storagemodels.Document, 0, len(found))
	for _, record := range found {
		doc := codec.Unflatten(schema, record)
		if passphrase != "" {
			body, err := s.open(schema, doc, passphrase)
			if err != nil {
				return nil, err
			}
			restoreCreatedAt(body, doc)
			doc = body
		}
		if schema.ExpiryAttribute != "" {
			delete(doc, schema.ExpiryAttribute)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Insert creates a record in collection. With a passphrase the whole
// document is encrypted and stored as keyFields plus the {iv, data}
// envelope; keyFields is then required. Insert never checks for an existing
// record.
func (s *Store) Insert(ctx context.Context, passphrase, collection string, doc, keyFields storagemodels.Document) (err error) {
	defer s.observe(OpInsert, collection, time.Now(), &err)

	schema, err := s.prepare(collection)
	if err != nil {
		return err
	}
	if doc == nil {
		return errors.NewMissingParamsError(OpInsert, "document")
	}
	if passphrase != "" && len(keyFields) == 0 {
		return errors.NewMissingParamsError(OpInsert, "keyFields")
	}

	record, err := s.seal(passphrase, doc, keyFields)
	if err != nil {
		return err
	}
	return s.create(ctx, schema, record)
}

// Replace makes the first record matching filter look like doc, writing only
// the fields that differ. When nothing matches, the filter fields and doc
// are inserted as a new record, encrypted if a passphrase is given.
func (s *Store) Replace(ctx context.Context, passphrase, collection string, filter storagemodels.Filter, doc, keyFields storagemodels.Document) (err error) {
	defer s.observe(OpReplace, collection, time.Now(), &err)

	schema, err := s.prepare(collection)
	if err != nil {
		return err
	}
	switch {
	case len(filter) == 0:
		return errors.NewMissingParamsError(OpReplace, "filter")
	case doc == nil:
		return errors.NewMissingParamsError(OpReplace, "document")
	case passphrase != "" && len(keyFields) == 0:
		return errors.NewMissingParamsError(OpReplace, "keyFields")
	}

	found, err := s.finder().Find(ctx, s.backend, schema, filter)
	if err != nil {
		return err
	}

	if len(found) == 0 {
		var record storagemodels.Document
		if passphrase == "" {
			record, err = codec.Flatten(merge(storagemodels.Document(filter), doc))
		} else {
			record, err = s.seal(passphrase, doc, merge(storagemodels.Document(filter), keyFields))
		}
		if err != nil {
			return err
		}
		s.logger.Debug("replace found no record, inserting", zap.String("collection", collection))
		return s.create(ctx, schema, record)
	}

	candidate, err := s.seal(passphrase, doc, keyFields)
	if err != nil {
		return err
	}
	return s.apply(ctx, schema, found[0], candidate)
}

// Modify sets the fields of modification on the first record matching
// filter. With a passphrase the stored document is decrypted, modified and
// re-encrypted. A filter matching nothing is not an error.
func (s *Store) Modify(ctx context.Context, passphrase, collection string, filter storagemodels.Filter, modification storagemodels.Document) (err error) {
	defer s.observe(OpModify, collection, time.Now(), &err)

	schema, err := s.prepare(collection)
	if err != nil {
		return err
	}
	if len(filter) == 0 {
		return errors.NewMissingParamsError(OpModify, "filter")
	}
	if len(modification) == 0 {
		return errors.NewMissingParamsError(OpModify, "modification")
	}

	found, err := s.finder().Find(ctx, s.backend, schema, filter)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		s.logger.Debug("modify matched nothing", zap.String("collection", collection))
		return nil
	}
	current := found[0]

	var candidate storagemodels.Document
	if passphrase == "" {
		candidate, err = codec.Flatten(modification)
		if err != nil {
			return err
		}
	} else {
		body, err := s.open(schema, current, passphrase)
		if err != nil {
			return err
		}
		for field, v := range modification {
			body[field] = v
		}
		candidate, err = s.seal(passphrase, body, nil)
		if err != nil {
			return err
		}
	}
	return s.apply(ctx, schema, current, candidate)
}

// Delete removes the records of collection matching filter. A filter naming
// exactly the primary key deletes by key; any other filter deletes each
// match. Deleting something that does not exist succeeds.
func (s *Store) Delete(ctx context.Context, collection string, filter storagemodels.Filter) (err error) {
	defer s.observe(OpDelete, collection, time.Now(), &err)

	schema, err := s.prepare(collection)
	if err != nil {
		return err
	}
	if len(filter) == 0 {
		return errors.NewMissingParamsError(OpDelete, "filter")
	}

	table := s.table(schema)
	if key := storagemodels.Document(filter); registry.HasFullKey(schema, key) {
		return s.backend.Delete(ctx, table, key)
	}

	found, err := s.finder().Find(ctx, s.backend, schema, filter)
	if err != nil {
		return err
	}
	for _, record := range found {
		key, err := registry.DeriveKey(schema, record)
		if err != nil {
			return err
		}
		if err := s.backend.Delete(ctx, table, key); err != nil {
			return err
		}
	}
	s.logger.Debug("delete",
		zap.String("collection", collection),
		zap.Int("deleted", len(found)))
	return nil
}

// seal prepares doc for storage. Without a passphrase that is the flattened
// doc; with one, it is the flattened outer fields plus the envelope of doc.
func (s *Store) seal(passphrase string, doc, outer storagemodels.Document) (storagemodels.Document, error) {
	if passphrase == "" {
		return codec.Flatten(doc)
	}
	payload, err := codec.Marshal(doc)
	if err != nil {
		return nil, err
	}
	env, err := cipher.Encrypt(payload, passphrase)
	if err != nil {
		return nil, err
	}
	record := outer.Clone()
	if record == nil {
		record = make(storagemodels.Document, 2)
	}
	record[storagemodels.EnvelopeIVField] = env.IV
	record[storagemodels.EnvelopeDataField] = env.Data
	return codec.Flatten(record)
}

// open decrypts the envelope carried by record.
func (s *Store) open(schema registry.Schema, record storagemodels.Document, passphrase string) (storagemodels.Document, error) {
	iv, _ := record[storagemodels.EnvelopeIVField].(string)
	data, _ := record[storagemodels.EnvelopeDataField].(string)
	if iv == "" || data == "" {
		err := errors.NewDecryptionError("record carries no envelope", nil)
		s.logger.Warn("decryption failed", zap.String("collection", schema.Name), zap.Error(err))
		return nil, err
	}
	plaintext, err := cipher.Decrypt(data, iv, passphrase)
	if err != nil {
		s.logger.Warn("decryption failed", zap.String("collection", schema.Name), zap.Error(err))
		return nil, err
	}
	body, err := codec.Unmarshal(plaintext)
	if err != nil {
		return nil, errors.NewDecryptionError("payload is not a document", err)
	}
	if body == nil {
		body = make(storagemodels.Document)
	}
	return body, nil
}

// create stamps the generated fields on record and writes it.
func (s *Store) create(ctx context.Context, schema registry.Schema, record storagemodels.Document) error {
	record = record.Clone()
	now := s.now()

	if schema.GeneratedKey {
		if v, ok := record[schema.HashKey]; !ok || v == nil {
			record[schema.HashKey] = s.newID()
		}
	}
	if schema.CreatedAt {
		if _, ok := record[registry.CreatedAtField]; !ok {
			record[registry.CreatedAtField] = strfmt.DateTime(now.UTC()).String()
		}
	}
	if schema.Expires() {
		record[schema.ExpiryAttribute] = now.Add(schema.TTL).Unix()
	}
	for field, v := range schema.Defaults {
		if _, ok := record[field]; !ok {
			record[field] = v
		}
	}

	if _, err := registry.DeriveKey(schema, record); err != nil {
		return err
	}
	if extra := undeclared(schema, record); len(extra) > 0 {
		s.logger.Debug("record carries undeclared fields",
			zap.String("collection", schema.Name),
			zap.Strings("fields", extra))
	}
	return s.backend.Create(ctx, s.table(schema), record)
}

// apply writes the fields of candidate that differ from current. Key fields
// are never rewritten.
func (s *Store) apply(ctx context.Context, schema registry.Schema, current, candidate storagemodels.Document) error {
	patch := diff.Diff(candidate, current)

	update := make(storagemodels.Document, len(patch))
	for _, field := range diff.Changed(patch) {
		if schema.IsKeyField(field) {
			continue
		}
		update[field] = candidate[field]
	}
	if len(update) == 0 {
		s.logger.Debug("no changes", zap.String("collection", schema.Name))
		return nil
	}

	key, err := registry.DeriveKey(schema, current)
	if err != nil {
		return err
	}
	s.logger.Debug("update",
		zap.String("collection", schema.Name),
		zap.Strings("fields", diff.Changed(update)))
	return s.backend.Update(ctx, s.table(schema), key, update)
}

// restoreCreatedAt copies the record's creation time onto the decrypted body.
func restoreCreatedAt(body, record storagemodels.Document) {
	raw, ok := record[registry.CreatedAtField].(string)
	if !ok || raw == "" {
		return
	}
	if dt, err := strfmt.ParseDateTime(raw); err == nil {
		body[registry.CreatedAtField] = dt.String()
		return
	}
	body[registry.CreatedAtField] = raw
}

func merge(base, over storagemodels.Document) storagemodels.Document {
	out := make(storagemodels.Document, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

func undeclared(schema registry.Schema, record storagemodels.Document) []string {
	var extra []string
	for field := range record {
		switch field {
		case schema.ExpiryAttribute, storagemodels.EnvelopeIVField, storagemodels.EnvelopeDataField:
			continue
		}
		if !schema.Declares(field) {
			extra = append(extra, field)
		}
	}
	sort.Strings(extra)
	return extra
}
