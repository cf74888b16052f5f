/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package models holds the typed form of every collection record.
package models

import (
	"github.com/go-openapi/strfmt"

	"github.com/suparena/ltistore/registry"
)

// Model is implemented by every record type.
type Model interface {
	Collection() string
}

// IDToken is a validated LTI id token kept for the duration of a launch.
type IDToken struct {

	// Generated record identifier.
	RecordID string `json:"recordId,omitempty"`

	// Issuer of the token.
	Iss string `json:"iss,omitempty"`

	// Platform user identifier.
	User string `json:"user,omitempty"`

	// User claims (name, email, ...).
	UserInfo map[string]interface{} `json:"userInfo,omitempty"`

	// Platform instance claims.
	PlatformInfo map[string]interface{} `json:"platformInfo,omitempty"`

	ClientID     string `json:"clientId,omitempty"`
	PlatformID   string `json:"platformId,omitempty"`
	DeploymentID string `json:"deploymentId,omitempty"`

	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"createdAt,omitempty"`
}

// Collection implements Model.
func (IDToken) Collection() string { return registry.IDToken }

// ContextToken carries the launch context of one user in one context.
type ContextToken struct {

	// Context identifier.
	// Required: true
	ContextID string `json:"contextId,omitempty"`

	// Platform user identifier.
	// Required: true
	User string `json:"user,omitempty"`

	Roles         []string `json:"roles,omitempty"`
	Path          string   `json:"path,omitempty"`
	TargetLinkURI string   `json:"targetLinkUri,omitempty"`
	MessageType   string   `json:"messageType,omitempty"`
	Version       string   `json:"version,omitempty"`

	Context             map[string]interface{} `json:"context,omitempty"`
	Resource            map[string]interface{} `json:"resource,omitempty"`
	Custom              map[string]interface{} `json:"custom,omitempty"`
	LaunchPresentation  map[string]interface{} `json:"launchPresentation,omitempty"`
	DeepLinkingSettings map[string]interface{} `json:"deepLinkingSettings,omitempty"`
	Lis                 map[string]interface{} `json:"lis,omitempty"`
	Endpoint            map[string]interface{} `json:"endpoint,omitempty"`
	NamesRoles          map[string]interface{} `json:"namesRoles,omitempty"`

	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"createdAt,omitempty"`
}

// Collection implements Model.
func (ContextToken) Collection() string { return registry.ContextToken }

// AuthConfig describes how a platform signs its messages.
type AuthConfig struct {

	// One of JWK_SET, JWK_KEY or RSA_KEY.
	Method string `json:"method,omitempty"`

	// Key set URL or key material, depending on Method.
	Key string `json:"key,omitempty"`
}

// Platform is a registered LTI platform.
type Platform struct {

	// Required: true
	PlatformURL string `json:"platformUrl,omitempty"`

	// Required: true
	ClientID string `json:"clientId,omitempty"`

	PlatformName        string      `json:"platformName,omitempty"`
	AuthEndpoint        string      `json:"authEndpoint,omitempty"`
	AccesstokenEndpoint string      `json:"accesstokenEndpoint,omitempty"`
	AuthorizationServer string      `json:"authorizationServer,omitempty"`
	Kid                 string      `json:"kid,omitempty"`
	AuthConfig          *AuthConfig `json:"authConfig,omitempty"`
}

// Collection implements Model.
func (Platform) Collection() string { return registry.Platform }

// PlatformStatus records whether a platform registration is active.
type PlatformStatus struct {
	ID     string `json:"id,omitempty"`
	Active bool   `json:"active"`
}

// Collection implements Model.
func (PlatformStatus) Collection() string { return registry.PlatformStatus }

// Key is the decrypted body of a private or public key record.
type Key struct {
	Kid string `json:"kid,omitempty"`

	// PEM encoded key material.
	Key string `json:"key,omitempty"`
}

// PrivateKey is a tool private key.
type PrivateKey struct{ Key }

// Collection implements Model.
func (PrivateKey) Collection() string { return registry.PrivateKey }

// PublicKey is a tool public key.
type PublicKey struct{ Key }

// Collection implements Model.
func (PublicKey) Collection() string { return registry.PublicKey }

// AccessToken is the decrypted body of a cached platform access token.
type AccessToken struct {
	Token map[string]interface{} `json:"token,omitempty"`

	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"createdAt,omitempty"`
}

// Collection implements Model.
func (AccessToken) Collection() string { return registry.AccessToken }

// Nonce is a used launch nonce.
type Nonce struct {
	NonceValue string `json:"nonceValue,omitempty"`

	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"createdAt,omitempty"`
}

// Collection implements Model.
func (Nonce) Collection() string { return registry.Nonce }

// State is an OIDC login state with the query it was issued for.
type State struct {
	StateValue string `json:"stateValue,omitempty"`

	// Original login query, either as parsed parameters or as a raw string.
	Query interface{} `json:"query,omitempty"`

	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"createdAt,omitempty"`
}

// Collection implements Model.
func (State) Collection() string { return registry.State }
