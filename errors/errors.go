/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotDeployed is returned when the store is used before Setup or after Teardown
	ErrNotDeployed = errors.New("store not deployed")

	// ErrMissingParams is returned when a required argument is absent or inconsistent
	ErrMissingParams = errors.New("missing parameters")

	// ErrUnknownCollection is returned for an unrecognized collection name
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrStoreUnavailable is returned when the backing store transport fails
	ErrStoreUnavailable = errors.New("backing store unavailable")

	// ErrDecryptionFailed is returned when an envelope cannot be decrypted
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrKeyDerivation is returned when a record lacks a declared key field
	ErrKeyDerivation = errors.New("key derivation failed")
)

// MissingParamsError names the operation and the parameter that was missing
type MissingParamsError struct {
	Operation string
	Param     string
}

func (e *MissingParamsError) Error() string {
	return fmt.Sprintf("%s: missing parameter %q", e.Operation, e.Param)
}

func (e *MissingParamsError) Is(target error) bool {
	return target == ErrMissingParams
}

// UnknownCollectionError carries the collection name that was not found
type UnknownCollectionError struct {
	Name string
}

func (e *UnknownCollectionError) Error() string {
	return fmt.Sprintf("unknown collection %q", e.Name)
}

func (e *UnknownCollectionError) Is(target error) bool {
	return target == ErrUnknownCollection
}

// StoreUnavailableError wraps a transport failure from the backing store
type StoreUnavailableError struct {
	Operation string
	Table     string
	Err       error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s on table %q failed: %v", e.Operation, e.Table, e.Err)
}

func (e *StoreUnavailableError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// DecryptionError wraps the reason an envelope could not be opened
type DecryptionError struct {
	Reason string
	Err    error
}

func (e *DecryptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decryption failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decryption failed: %s", e.Reason)
}

func (e *DecryptionError) Is(target error) bool {
	return target == ErrDecryptionFailed
}

func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// KeyDerivationError names the collection and the key field that was absent
type KeyDerivationError struct {
	Collection string
	Field      string
}

func (e *KeyDerivationError) Error() string {
	return fmt.Sprintf("collection %q: record has no key field %q", e.Collection, e.Field)
}

func (e *KeyDerivationError) Is(target error) bool {
	return target == ErrKeyDerivation
}

// Helper functions for creating errors

// NewMissingParamsError creates a new MissingParamsError
func NewMissingParamsError(operation, param string) error {
	return &MissingParamsError{Operation: operation, Param: param}
}

// NewUnknownCollectionError creates a new UnknownCollectionError
func NewUnknownCollectionError(name string) error {
	return &UnknownCollectionError{Name: name}
}

// NewStoreUnavailableError creates a new StoreUnavailableError
func NewStoreUnavailableError(operation, table string, err error) error {
	return &StoreUnavailableError{Operation: operation, Table: table, Err: err}
}

// NewDecryptionError creates a new DecryptionError
func NewDecryptionError(reason string, err error) error {
	return &DecryptionError{Reason: reason, Err: err}
}

// NewKeyDerivationError creates a new KeyDerivationError
func NewKeyDerivationError(collection, field string) error {
	return &KeyDerivationError{Collection: collection, Field: field}
}

// IsNotDeployed checks if an error is a not deployed error
func IsNotDeployed(err error) bool {
	return errors.Is(err, ErrNotDeployed)
}

// IsMissingParams checks if an error is a missing parameters error
func IsMissingParams(err error) bool {
	return errors.Is(err, ErrMissingParams)
}

// IsUnknownCollection checks if an error is an unknown collection error
func IsUnknownCollection(err error) bool {
	return errors.Is(err, ErrUnknownCollection)
}

// IsStoreUnavailable checks if an error is a backing store transport error
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsDecryptionFailed checks if an error is a decryption error
func IsDecryptionFailed(err error) bool {
	return errors.Is(err, ErrDecryptionFailed)
}

// IsKeyDerivation checks if an error is a key derivation error
func IsKeyDerivation(err error) bool {
	return errors.Is(err, ErrKeyDerivation)
}
