// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build integration

package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ergo.services/ergo/gen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse-id/gatehouse/internal/console/actornames"
	"github.com/gatehouse-id/gatehouse/internal/console/overview"
	"github.com/gatehouse-id/gatehouse/internal/console/sourceview"
	"github.com/gatehouse-id/gatehouse/internal/console/testutil"
	"github.com/gatehouse-id/gatehouse/internal/directory"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

// These tests start a real actor node against an httptest directory, so
// each one gets its own Ergo port and node name.

var testSources = []pkgmodel.Source{
	{
		Kind:    pkgmodel.SourceKindLDAP,
		Slug:    "corp-ldap",
		Name:    "Corporate LDAP",
		Enabled: true,
		Properties: json.RawMessage(`{
			"ServerURI": "ldaps://ldap.corp.example.com",
			"BindDN": "cn=sync,dc=corp,dc=example,dc=com",
			"BaseDN": "dc=corp,dc=example,dc=com",
			"SyncUsers": "true",
			"SyncGroups": "false"
		}`),
	},
	{
		Kind:    pkgmodel.SourceKindOAuth,
		Slug:    "github-oauth",
		Name:    "GitHub",
		Enabled: false,
	},
	{
		Kind: pkgmodel.SourceKind("scim"),
		Slug: "hr-scim",
		Name: "HR provisioning",
	},
}

func newTestDirectory(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/sources", func(w http.ResponseWriter, r *http.Request) {
		//nolint:errcheck
		json.NewEncoder(w).Encode(testSources)
	})
	mux.HandleFunc("GET /api/v3/sources/{slug}", func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")
		for _, source := range testSources {
			if source.Slug == slug {
				//nolint:errcheck
				json.NewEncoder(w).Encode(source)
				return
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("GET /api/v3/releases/gatehouse/latest", func(w http.ResponseWriter, r *http.Request) {
		//nolint:errcheck
		json.NewEncoder(w).Encode(map[string]string{"Version": "9.9.9"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func startTestConsole(t *testing.T, ergoPort int) *Console {
	t.Helper()

	cfg := pkgmodel.DefaultConfig()
	cfg.Console.Server.Nodename = fmt.Sprintf("gatehouse-int-%d", ergoPort)
	cfg.Console.Server.Hostname = "localhost"
	cfg.Console.Server.Secret = "integration-test-secret"
	cfg.Console.Server.ErgoPort = ergoPort
	cfg.Console.Directory.URL = newTestDirectory(t).URL
	cfg.Console.Directory.Timeout = 5 * time.Second
	cfg.Console.Overview.Interval = time.Hour

	client := directory.NewClient(cfg.Console.Directory)

	console, err := NewConsoleWithDirectory(context.Background(), cfg, client, "int-test-console")
	require.NoError(t, err)
	require.NoError(t, console.Start())
	t.Cleanup(func() { console.Stop(true) })

	return console
}

func TestConsole_ResolvesSourceEndToEnd(t *testing.T) {
	console := startTestConsole(t, 14931)

	viewID, err := console.OpenView()
	require.NoError(t, err)

	view, err := console.View(viewID)
	require.NoError(t, err)
	assert.Equal(t, sourceview.ViewStateLoading, view.State)

	require.NoError(t, console.ShowSource(viewID, "corp-ldap"))

	require.Eventually(t, func() bool {
		view, err = console.View(viewID)
		return err == nil && view.State == sourceview.ViewStateSource
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, pkgmodel.SourceKindLDAP, view.Kind)
	assert.Equal(t, "corp-ldap", view.Slug)
	require.NotNil(t, view.Detail)
	assert.Equal(t, "Corporate LDAP (LDAP)", view.Detail.Title)

	require.NoError(t, console.CloseView(viewID))

	require.Eventually(t, func() bool {
		_, err := console.View(viewID)
		return errors.Is(err, ErrViewNotFound)
	}, 5*time.Second, 50*time.Millisecond)
}

func TestConsole_MissingSourceLeavesViewLoadingWithNotice(t *testing.T) {
	console := startTestConsole(t, 14932)

	viewID, err := console.OpenView()
	require.NoError(t, err)

	require.NoError(t, console.ShowSource(viewID, "does-not-exist"))

	var view *sourceview.View
	require.Eventually(t, func() bool {
		view, err = console.View(viewID)
		return err == nil && view.Notice != ""
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, sourceview.ViewStateLoading, view.State)
	assert.Contains(t, view.Notice, "does-not-exist")
}

func TestConsole_UnknownKindFallsBackToDiagnosticView(t *testing.T) {
	console := startTestConsole(t, 14933)

	viewID, err := console.OpenView()
	require.NoError(t, err)

	require.NoError(t, console.ShowSource(viewID, "hr-scim"))

	var view *sourceview.View
	require.Eventually(t, func() bool {
		view, err = console.View(viewID)
		return err == nil && view.State == sourceview.ViewStateUnknownKind
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, pkgmodel.SourceKind("scim"), view.Kind)
	assert.Contains(t, view.Notice, `no renderer for source kind "scim"`)
	assert.Nil(t, view.Detail)
}

func TestConsole_NotifiesWatchersOnEveryRerender(t *testing.T) {
	console := startTestConsole(t, 14934)

	viewID, err := console.OpenView()
	require.NoError(t, err)

	messages := make(chan any, 16)
	helperPID, err := testutil.StartTestHelperActor(console.Node, messages)
	require.NoError(t, err)

	err = console.Node.Send(
		gen.ProcessID{Name: actornames.SourceView(viewID), Node: console.Node.Name()},
		sourceview.Watch{PID: helperPID},
	)
	require.NoError(t, err)

	require.NoError(t, console.ShowSource(viewID, "github-oauth"))

	// The slug change re-renders the loading view first, then the
	// resolution re-renders the detail view.
	loading := testutil.ExpectMessage[sourceview.ViewChanged](t, messages, 5*time.Second,
		func(m sourceview.ViewChanged) bool {
			return m.ViewID == viewID && m.View.State == sourceview.ViewStateLoading
		})
	assert.Equal(t, "github-oauth", loading.View.Slug)

	resolved := testutil.ExpectMessage[sourceview.ViewChanged](t, messages, 5*time.Second,
		func(m sourceview.ViewChanged) bool {
			return m.ViewID == viewID && m.View.State == sourceview.ViewStateSource
		})
	assert.Equal(t, pkgmodel.SourceKindOAuth, resolved.View.Kind)
}

func TestConsole_ViewSupervisorCountsOpenViews(t *testing.T) {
	console := startTestConsole(t, 14935)

	messages := make(chan any, 1)
	_, err := testutil.StartTestHelperActor(console.Node, messages)
	require.NoError(t, err)

	first, err := console.OpenView()
	require.NoError(t, err)
	second, err := console.OpenView()
	require.NoError(t, err)

	count, err := testutil.Call(console.Node, actornames.ViewSupervisor, OpenViewCount{})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, console.CloseView(first))

	assert.Eventually(t, func() bool {
		count, err := testutil.Call(console.Node, actornames.ViewSupervisor, OpenViewCount{})
		return err == nil && count == 1
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, console.CloseView(second))
}

func TestConsole_OverviewCollectsFromDirectory(t *testing.T) {
	console := startTestConsole(t, 14936)

	var snapshot *overview.Snapshot
	require.Eventually(t, func() bool {
		s, err := console.Overview()
		if err != nil || s.CollectedAt.IsZero() {
			return false
		}
		snapshot = s
		return true
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, 1, snapshot.SourcesByKind[pkgmodel.SourceKindLDAP])
	assert.Equal(t, 1, snapshot.SourcesByKind[pkgmodel.SourceKindOAuth])
	assert.Equal(t, 1, snapshot.UnknownKinds)
	assert.Equal(t, 1, snapshot.Enabled)
	assert.Equal(t, 2, snapshot.Disabled)
	assert.Equal(t, "9.9.9", snapshot.Version.Latest)
	assert.False(t, snapshot.Version.UpToDate)
}
