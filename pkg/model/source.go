// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// SourceKind is the discriminant on a federation source descriptor. The set
// below is what this build knows how to render; the directory may hand us
// kinds outside of it, so every consumer needs a fallback path.
type SourceKind string

const (
	SourceKindLDAP  SourceKind = "ldap"
	SourceKindOAuth SourceKind = "oauth"
	SourceKindSAML  SourceKind = "saml"
)

// KnownSourceKinds lists the kinds this build ships a renderer for, in
// display order.
func KnownSourceKinds() []SourceKind {
	return []SourceKind{SourceKindLDAP, SourceKindOAuth, SourceKindSAML}
}

func (k SourceKind) Known() bool {
	switch k {
	case SourceKindLDAP, SourceKindOAuth, SourceKindSAML:
		return true
	}
	return false
}

// Source is the descriptor the directory resolves a slug to. Everything
// kind-specific lives in Properties and is opaque here; kind renderers pick
// the fields they need out of it.
type Source struct {
	Kind       SourceKind      `json:"Kind"`
	Slug       string          `json:"Slug"`
	Name       string          `json:"Name"`
	Enabled    bool            `json:"Enabled"`
	Properties json.RawMessage `json:"Properties,omitempty"`
}

// GetProperty retrieves a value from the opaque Properties blob by gjson
// path. Null values are treated as not found.
func (s *Source) GetProperty(path string) (string, bool) {
	if len(s.Properties) == 0 {
		return "", false
	}

	value := gjson.GetBytes(s.Properties, path)
	if !value.Exists() || value.Type == gjson.Null {
		return "", false
	}

	return value.String(), true
}
