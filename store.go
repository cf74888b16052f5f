/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ltistore

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suparena/ltistore/datastore"
	"github.com/suparena/ltistore/errors"
	"github.com/suparena/ltistore/query"
	"github.com/suparena/ltistore/registry"
)

// Store is the encrypted multi-collection document store. It owns no records
// itself; every read and write goes to the backend.
//
// Operations on the same record are not serialized: a Replace or Modify
// computes its patch from a point-in-time read, so concurrent writers to one
// key race and the last write wins. Callers that need ordering must provide it.
type Store struct {
	backend     datastore.Backend
	registry    *registry.Registry
	logger      *zap.Logger
	metrics     *Metrics
	tablePrefix string
	now         func() time.Time
	newID       func() string

	deployed atomic.Bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records every operation in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithTablePrefix prepends prefix to every backing table name.
func WithTablePrefix(prefix string) Option {
	return func(s *Store) { s.tablePrefix = prefix }
}

// WithRegistry replaces the built-in collection registry.
func WithRegistry(r *registry.Registry) Option {
	return func(s *Store) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithClock sets the time source used for creation stamps, expiry and scans.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the generator for generated hash keys.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New creates a Store over backend. The store rejects every operation until
// Setup is called.
func New(backend datastore.Backend, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		registry: registry.Default(),
		logger:   zap.NewNop(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Setup marks the store deployed. It always reports true.
func (s *Store) Setup() bool {
	s.deployed.Store(true)
	s.logger.Info("store deployed", zap.Strings("collections", s.registry.Names()))
	return true
}

// Teardown marks the store undeployed; later operations fail with ErrNotDeployed.
func (s *Store) Teardown() bool {
	s.deployed.Store(false)
	s.logger.Info("store torn down")
	return true
}

// Deployed reports whether the store accepts operations.
func (s *Store) Deployed() bool {
	return s.deployed.Load()
}

// Provision creates the backing table of every collection and enables expiry
// where the collection declares one. It does not require Setup.
func (s *Store) Provision(ctx context.Context) error {
	for _, schema := range s.registry.Schemas() {
		spec := schema.TableSpec(s.tablePrefix)
		if err := s.backend.Provision(ctx, spec); err != nil {
			return fmt.Errorf("provision %s: %w", schema.Name, err)
		}
		s.logger.Info("collection provisioned",
			zap.String("collection", schema.Name),
			zap.String("table", spec.TableName))
	}
	return nil
}

// prepare checks the deployed flag and resolves the collection.
func (s *Store) prepare(collection string) (registry.Schema, error) {
	if !s.deployed.Load() {
		return registry.Schema{}, errors.ErrNotDeployed
	}
	return s.registry.Lookup(collection)
}

func (s *Store) finder() query.Builder {
	return query.Builder{TablePrefix: s.tablePrefix, Now: s.now}
}

func (s *Store) table(schema registry.Schema) string {
	return schema.TableName(s.tablePrefix)
}
