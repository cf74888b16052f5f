/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"errors"
	"time"

	"github.com/aws/smithy-go"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// DefaultBreakerSettings trips after at least five requests in a 30s window
// of which 80% or more failed, and probes again after a minute.
func DefaultBreakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.8
		},
	}
}

func newBreaker(settings gobreaker.Settings, b *Backend) *gobreaker.CircuitBreaker {
	if settings.OnStateChange == nil {
		settings.OnStateChange = func(name string, from, to gobreaker.State) {
			b.logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		}
	}
	if settings.IsSuccessful == nil {
		settings.IsSuccessful = func(err error) bool {
			return err == nil || !isTransportFailure(err)
		}
	}
	return gobreaker.NewCircuitBreaker(settings)
}

// isTransportFailure reports whether err says something about the health of
// the service rather than about the request. Client faults other than
// throttling do not count against the breaker.
func isTransportFailure(err error) bool {
	var ae smithy.APIError
	if errors.As(err, &ae) && ae.ErrorFault() == smithy.FaultClient {
		return retryableCodes[ae.ErrorCode()]
	}
	return true
}

// execute runs fn through the breaker when one is configured.
func (b *Backend) execute(fn func() error) error {
	if b.breaker == nil {
		return fn()
	}
	_, err := b.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}
