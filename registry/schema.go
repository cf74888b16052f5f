/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"time"

	"github.com/suparena/ltistore/storagemodels"
)

// Collection names.
const (
	IDToken        = "id-token"
	ContextToken   = "context-token"
	Platform       = "platform"
	PlatformStatus = "platform-status"
	PrivateKey     = "private-key"
	PublicKey      = "public-key"
	AccessToken    = "access-token"
	Nonce          = "nonce"
	State          = "state"
)

// CreatedAtField is the creation timestamp stamped on collections that ask for it.
const CreatedAtField = "createdAt"

// Schema is the static declaration of one collection.
type Schema struct {
	// Name is the collection name callers address (e.g. "id-token").
	Name string `yaml:"name"`
	// Table is the backing table name, before any configured prefix.
	Table string `yaml:"table"`

	HashKey  string `yaml:"hashKey"`
	RangeKey string `yaml:"rangeKey,omitempty"`

	// GeneratedKey means the hash key is assigned on create when absent.
	GeneratedKey bool `yaml:"generatedKey,omitempty"`
	// CreatedAt means a creation timestamp is stamped on create.
	CreatedAt bool `yaml:"createdAt,omitempty"`

	// TTL is how long a record lives after creation. Zero never expires.
	TTL             time.Duration `yaml:"ttl,omitempty"`
	ExpiryAttribute string        `yaml:"expiryAttribute,omitempty"`

	// Structured lists fields stored as JSON strings standing in for objects.
	Structured []string `yaml:"structured,omitempty"`
	// Defaults are applied on create to fields the record does not carry.
	Defaults map[string]interface{} `yaml:"defaults,omitempty"`
	Fields   []string               `yaml:"fields"`
}

// KeyFields returns the primary key fields: the hash key, then the range key if any.
func (s Schema) KeyFields() []string {
	if s.RangeKey == "" {
		return []string{s.HashKey}
	}
	return []string{s.HashKey, s.RangeKey}
}

// IsKeyField reports whether field is part of the primary key.
func (s Schema) IsKeyField(field string) bool {
	return field == s.HashKey || (s.RangeKey != "" && field == s.RangeKey)
}

// IsStructured reports whether field holds a serialized object.
func (s Schema) IsStructured(field string) bool {
	for _, f := range s.Structured {
		if f == field {
			return true
		}
	}
	return false
}

// Declares reports whether field is part of the declared field list.
func (s Schema) Declares(field string) bool {
	for _, f := range s.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Expires reports whether records of this collection carry an expiry.
func (s Schema) Expires() bool {
	return s.TTL > 0 && s.ExpiryAttribute != ""
}

// TableName returns the backing table name with the given prefix.
func (s Schema) TableName(prefix string) string {
	return prefix + s.Table
}

// TableSpec describes the backing table for provisioning.
func (s Schema) TableSpec(prefix string) storagemodels.TableSpec {
	spec := storagemodels.TableSpec{
		TableName: s.TableName(prefix),
		HashKey:   s.HashKey,
		RangeKey:  s.RangeKey,
	}
	if s.Expires() {
		spec.ExpiryAttribute = s.ExpiryAttribute
	}
	return spec
}

func (s Schema) validate() error {
	if s.Name == "" {
		return fmt.Errorf("collection without a name")
	}
	if s.Table == "" {
		return fmt.Errorf("collection %q: table is required", s.Name)
	}
	if s.HashKey == "" {
		return fmt.Errorf("collection %q: hashKey is required", s.Name)
	}
	if s.RangeKey == s.HashKey {
		return fmt.Errorf("collection %q: rangeKey must differ from hashKey", s.Name)
	}
	if s.TTL < 0 {
		return fmt.Errorf("collection %q: negative ttl", s.Name)
	}
	if s.TTL > 0 && s.ExpiryAttribute == "" {
		return fmt.Errorf("collection %q: ttl set without expiryAttribute", s.Name)
	}
	return nil
}
