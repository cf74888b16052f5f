/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ltistore

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/suparena/ltistore/errors"
)

// Operation names used as metric labels.
const (
	OpGet     = "get"
	OpInsert  = "insert"
	OpReplace = "replace"
	OpModify  = "modify"
	OpDelete  = "delete"
)

// Metrics holds the prometheus collectors for store operations.
type Metrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewMetrics creates the store collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ltistore",
				Name:      "operations_total",
				Help:      "Total number of store operations by outcome",
			},
			[]string{"collection", "operation", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ltistore",
				Name:      "operation_duration_seconds",
				Help:      "Store operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"collection", "operation"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Operations, m.Duration)
	}
	return m
}

func (m *Metrics) record(collection, op string, start time.Time, err error) {
	m.Operations.WithLabelValues(collection, op, outcome(err)).Inc()
	m.Duration.WithLabelValues(collection, op).Observe(time.Since(start).Seconds())
}

// outcome classifies err into a bounded label value.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.IsNotDeployed(err):
		return "not_deployed"
	case errors.IsMissingParams(err):
		return "missing_params"
	case errors.IsUnknownCollection(err):
		return "unknown_collection"
	case errors.IsStoreUnavailable(err):
		return "store_unavailable"
	case errors.IsDecryptionFailed(err):
		return "decryption_failed"
	case errors.IsKeyDerivation(err):
		return "key_derivation"
	default:
		return "error"
	}
}

// observe is deferred by every facade operation with a pointer to its named
// error result.
func (s *Store) observe(op, collection string, start time.Time, errp *error) {
	if s.metrics == nil {
		return
	}
	var err error
	if errp != nil {
		err = *errp
	}
	if errors.IsUnknownCollection(err) {
		collection = "unknown"
	}
	s.metrics.record(collection, op, start, err)
}
