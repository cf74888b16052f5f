/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/ltistore/registry"
	"github.com/suparena/ltistore/storagemodels"
)

func TestCollections(t *testing.T) {
	models := []Model{
		IDToken{}, ContextToken{}, Platform{}, PlatformStatus{}, PrivateKey{},
		PublicKey{}, AccessToken{}, Nonce{}, State{},
	}
	seen := map[string]bool{}
	for _, m := range models {
		_, err := registry.Lookup(m.Collection())
		assert.NoError(t, err, "%T", m)
		assert.False(t, seen[m.Collection()], "duplicate collection %q", m.Collection())
		seen[m.Collection()] = true
	}
	assert.Len(t, seen, len(registry.Default().Names()))
}

func TestDecodeContextToken(t *testing.T) {
	doc := storagemodels.Document{
		"contextId":  "c1",
		"user":       "u1",
		"roles":      []interface{}{"Learner", "Mentor"},
		"context":    map[string]interface{}{"id": "ctx", "title": "Course"},
		"createdAt":  "2025-03-01T12:00:00.000Z",
		"iv":         "ignored",
		"namesRoles": map[string]interface{}{"context_memberships_url": "https://lms/members"},
	}

	var ct ContextToken
	require.NoError(t, Decode(doc, &ct))

	assert.Equal(t, "c1", ct.ContextID)
	assert.Equal(t, []string{"Learner", "Mentor"}, ct.Roles)
	assert.Equal(t, "Course", ct.Context["title"])
	assert.Equal(t, "https://lms/members", ct.NamesRoles["context_memberships_url"])
	require.NotNil(t, ct.CreatedAt)
	assert.True(t, time.Time(*ct.CreatedAt).Equal(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)))
}

func TestDecodeWeakTypes(t *testing.T) {
	var ps PlatformStatus
	require.NoError(t, Decode(storagemodels.Document{"id": "p1", "active": true}, &ps))
	assert.Equal(t, PlatformStatus{ID: "p1", Active: true}, ps)

	var p Platform
	require.NoError(t, Decode(storagemodels.Document{
		"platformUrl": "https://lms",
		"clientId":    "c1",
		"authConfig":  map[string]interface{}{"method": "JWK_SET", "key": "https://lms/keys"},
	}, &p))
	require.NotNil(t, p.AuthConfig)
	assert.Equal(t, "JWK_SET", p.AuthConfig.Method)
}

func TestDecodeEmbeddedKey(t *testing.T) {
	var k PrivateKey
	require.NoError(t, Decode(storagemodels.Document{"kid": "k1", "key": "-----BEGIN"}, &k))
	assert.Equal(t, "k1", k.Kid)
	assert.Equal(t, "-----BEGIN", k.Key.Key)
}

func TestDecodeRestoredDateTime(t *testing.T) {
	at := strfmt.DateTime(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	var n Nonce
	require.NoError(t, Decode(storagemodels.Document{"nonceValue": "n1", "createdAt": at}, &n))
	require.NotNil(t, n.CreatedAt)
	assert.Equal(t, at.String(), n.CreatedAt.String())
}

func TestEncode(t *testing.T) {
	doc, err := Encode(PublicKey{Key{Kid: "k1", Key: "pem"}})
	require.NoError(t, err)
	assert.Equal(t, storagemodels.Document{"kid": "k1", "key": "pem"}, doc)

	doc, err = Encode(PlatformStatus{ID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, storagemodels.Document{"id": "p1", "active": false}, doc)

	doc, err = Encode(State{StateValue: "s1", Query: map[string]interface{}{"iss": "https://lms"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"iss": "https://lms"}, doc["query"])
}
