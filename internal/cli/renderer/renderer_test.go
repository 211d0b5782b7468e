// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apimodel "github.com/gatehouse-id/gatehouse/internal/api/model"
	"github.com/gatehouse-id/gatehouse/internal/console/overview"
	"github.com/gatehouse-id/gatehouse/internal/console/sourceview"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

func TestRenderSourceViewLoading(t *testing.T) {
	view := &sourceview.View{
		State: sourceview.ViewStateLoading,
		Slug:  "corp-ldap",
	}

	result, err := RenderSourceView(view)
	assert.NoError(t, err)

	result = stripAnsiCodes(t, result)

	assert.Contains(t, result, `Resolving source "corp-ldap"`)
}

func TestRenderSourceViewLoadingWithNotice(t *testing.T) {
	view := &sourceview.View{
		State:  sourceview.ViewStateLoading,
		Slug:   "corp-ldap",
		Notice: "failed to resolve source corp-ldap: connection refused",
	}

	result, err := RenderSourceView(view)
	assert.NoError(t, err)

	result = stripAnsiCodes(t, result)

	assert.Contains(t, result, "connection refused")
}

func TestRenderSourceViewDetail(t *testing.T) {
	view := &sourceview.View{
		State: sourceview.ViewStateSource,
		Slug:  "corp-ldap",
		Kind:  pkgmodel.SourceKindLDAP,
		Detail: &sourceview.DetailView{
			Title: "LDAP source corp-ldap",
			Fields: []sourceview.Field{
				{Label: "Host", Value: "ldap.corp.example.com"},
				{Label: "Base DN", Value: "dc=corp,dc=example,dc=com"},
			},
		},
	}

	result, err := RenderSourceView(view)
	assert.NoError(t, err)

	result = stripAnsiCodes(t, result)

	assert.Contains(t, result, "LDAP source corp-ldap")
	assert.Contains(t, result, "ldap.corp.example.com")
	assert.Contains(t, result, "dc=corp,dc=example,dc=com")
}

func TestRenderSourceViewUnknownKind(t *testing.T) {
	view := &sourceview.View{
		State:  sourceview.ViewStateUnknownKind,
		Slug:   "corp-webauthn",
		Kind:   "webauthn",
		Notice: `no renderer for source kind "webauthn"`,
	}

	result, err := RenderSourceView(view)
	assert.NoError(t, err)

	result = stripAnsiCodes(t, result)

	assert.Contains(t, result, `no renderer for source kind "webauthn"`)
}

func TestRenderOverview(t *testing.T) {
	snapshot := &overview.Snapshot{
		CollectedAt: time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC),
		SourcesByKind: map[pkgmodel.SourceKind]int{
			pkgmodel.SourceKindLDAP:  2,
			pkgmodel.SourceKindOAuth: 3,
			pkgmodel.SourceKindSAML:  1,
		},
		UnknownKinds: 1,
		Enabled:      5,
		Disabled:     2,
		Version: overview.VersionStatus{
			Running:  "1.2.0",
			Latest:   "1.3.0",
			UpToDate: false,
		},
	}

	result, err := RenderOverview(snapshot)
	assert.NoError(t, err)

	result = stripAnsiCodes(t, result)

	assert.Contains(t, result, "Sources")
	assert.Contains(t, result, "ldap")
	assert.Contains(t, result, "oauth")
	assert.Contains(t, result, "saml")
	assert.Contains(t, result, "Unknown")
	assert.Contains(t, result, "Enabled")
	assert.Contains(t, result, "1.2.0")
	assert.Contains(t, result, "1.3.0")
	assert.Contains(t, result, "Collected at 2025-11-03T10:00:00Z")
}

func TestRenderOverviewBeforeFirstCollection(t *testing.T) {
	snapshot := &overview.Snapshot{
		Version: overview.VersionStatus{Running: "1.2.0", UpToDate: true},
	}

	result, err := RenderOverview(snapshot)
	assert.NoError(t, err)

	result = stripAnsiCodes(t, result)

	assert.Contains(t, result, "No collection has completed yet")
}

func TestRenderStats(t *testing.T) {
	stats := &apimodel.Stats{
		Version:   "1.2.0",
		ConsoleID: "console-id-1",
		OpenViews: 4,
		Kinds:     []string{"ldap", "oauth", "saml"},
	}

	result, err := RenderStats(stats)
	assert.NoError(t, err)

	result = stripAnsiCodes(t, result)

	assert.Contains(t, result, "1.2.0")
	assert.Contains(t, result, "console-id-1")
	assert.Contains(t, result, "ldap, oauth, saml")
}

func stripAnsiCodes(t *testing.T, s string) string {
	t.Helper()

	ansi := regexp.MustCompile("\x1b\\[[0-9;]*m")
	return ansi.ReplaceAllString(s, "")
}
