package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceKindKnown(t *testing.T) {
	for _, kind := range KnownSourceKinds() {
		assert.True(t, kind.Known(), "kind %q should be known", kind)
	}

	assert.False(t, SourceKind("webauthn").Known())
	assert.False(t, SourceKind("").Known())
}

func TestSourceGetProperty(t *testing.T) {
	source := Source{
		Kind: SourceKindLDAP,
		Slug: "corp-ldap",
		Properties: json.RawMessage(`{
			"ServerURI": "ldap://ldap.corp.example.com",
			"Bind": {"DN": "cn=admin,dc=corp", "Password": null},
			"SyncUsers": true
		}`),
	}

	uri, found := source.GetProperty("ServerURI")
	assert.True(t, found)
	assert.Equal(t, "ldap://ldap.corp.example.com", uri)

	dn, found := source.GetProperty("Bind.DN")
	assert.True(t, found)
	assert.Equal(t, "cn=admin,dc=corp", dn)

	_, found = source.GetProperty("Bind.Password")
	assert.False(t, found, "null values are treated as absent")

	_, found = source.GetProperty("NoSuchField")
	assert.False(t, found)
}

func TestSourceGetPropertyWithoutProperties(t *testing.T) {
	source := Source{Kind: SourceKindOAuth, Slug: "github"}

	_, found := source.GetProperty("ConsumerKey")
	assert.False(t, found)
}
