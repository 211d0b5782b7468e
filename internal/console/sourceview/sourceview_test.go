package sourceview

import (
	"testing"

	"ergo.services/ergo/gen"
	"ergo.services/ergo/testing/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

func newSourceViewForTest(t *testing.T) (*unit.TestActor, gen.PID, error) {
	registry, _ := newTestRegistry()
	env := map[gen.Env]any{
		"RendererRegistry": registry,
	}

	sender := gen.PID{Node: "test", ID: 100}
	view, err := unit.Spawn(t, NewSourceView, unit.WithArgs("view-1"), unit.WithEnv(env))
	if err != nil {
		return nil, gen.PID{}, err
	}

	return view, sender, nil
}

func currentViewOf(t *testing.T, view *unit.TestActor, sender gen.PID) View {
	t.Helper()

	res := view.Call(sender, CurrentView{})
	require.NoError(t, res.Error)
	require.NotNil(t, res.Response)
	current, ok := res.Response.(View)
	require.True(t, ok, "CurrentView should return a View, got %T", res.Response)

	return current
}

func TestSourceView_StartsWithLoadingView(t *testing.T) {
	view, sender, err := newSourceViewForTest(t)
	require.NoError(t, err)

	current := currentViewOf(t, view, sender)

	assert.Equal(t, ViewStateLoading, current.State)
	assert.Empty(t, current.Slug)
	assert.Nil(t, current.Detail)
}

func TestSourceView_ShowSourceRequestsFetchAndStaysLoading(t *testing.T) {
	view, sender, err := newSourceViewForTest(t)
	require.NoError(t, err)

	view.SendMessage(sender, ShowSource{Slug: "src-42"})

	view.ShouldSend().MessageMatching(func(msg any) bool {
		fetch, ok := msg.(FetchSource)
		return ok && fetch.Slug == "src-42" && fetch.ReplyTo == view.PID()
	}).Once().Assert()

	current := currentViewOf(t, view, sender)
	assert.Equal(t, ViewStateLoading, current.State)
	assert.Equal(t, "src-42", current.Slug)
}

func TestSourceView_EmptySlugIsIgnored(t *testing.T) {
	view, sender, err := newSourceViewForTest(t)
	require.NoError(t, err)

	view.SendMessage(sender, ShowSource{Slug: ""})

	view.ShouldNotSend().MessageMatching(func(msg any) bool {
		_, ok := msg.(FetchSource)
		return ok
	}).Once().Assert()
}

func TestSourceView_ResolutionRendersKindView(t *testing.T) {
	view, sender, err := newSourceViewForTest(t)
	require.NoError(t, err)

	view.SendMessage(sender, ShowSource{Slug: "src-42"})
	view.SendMessage(sender, sourceResolved{
		Slug:   "src-42",
		Source: &pkgmodel.Source{Kind: pkgmodel.SourceKindOAuth, Slug: "src-42"},
	})

	current := currentViewOf(t, view, sender)
	assert.Equal(t, ViewStateSource, current.State)
	assert.Equal(t, pkgmodel.SourceKindOAuth, current.Kind)
	require.NotNil(t, current.Detail)
	assert.Equal(t, "oauth source src-42", current.Detail.Title)
}

func TestSourceView_NewSlugResetsToLoading(t *testing.T) {
	view, sender, err := newSourceViewForTest(t)
	require.NoError(t, err)

	view.SendMessage(sender, ShowSource{Slug: "src-42"})
	view.SendMessage(sender, sourceResolved{
		Slug:   "src-42",
		Source: &pkgmodel.Source{Kind: pkgmodel.SourceKindOAuth, Slug: "src-42"},
	})
	view.SendMessage(sender, ShowSource{Slug: "src-99"})

	current := currentViewOf(t, view, sender)
	assert.Equal(t, ViewStateLoading, current.State)
	assert.Equal(t, "src-99", current.Slug)
	assert.Nil(t, current.Detail)
}

func TestSourceView_StaleResolutionIsDiscarded(t *testing.T) {
	view, sender, err := newSourceViewForTest(t)
	require.NoError(t, err)

	view.SendMessage(sender, ShowSource{Slug: "src-1"})
	view.SendMessage(sender, ShowSource{Slug: "src-2"})

	// The second fetch completes first; the first trickles in afterwards.
	view.SendMessage(sender, sourceResolved{
		Slug:   "src-2",
		Source: &pkgmodel.Source{Kind: pkgmodel.SourceKindSAML, Slug: "src-2"},
	})
	view.SendMessage(sender, sourceResolved{
		Slug:   "src-1",
		Source: &pkgmodel.Source{Kind: pkgmodel.SourceKindLDAP, Slug: "src-1"},
	})

	current := currentViewOf(t, view, sender)
	assert.Equal(t, ViewStateSource, current.State)
	assert.Equal(t, "src-2", current.Slug)
	assert.Equal(t, pkgmodel.SourceKindSAML, current.Kind)
}

func TestSourceView_StaleFailureIsDiscarded(t *testing.T) {
	view, sender, err := newSourceViewForTest(t)
	require.NoError(t, err)

	view.SendMessage(sender, ShowSource{Slug: "src-1"})
	view.SendMessage(sender, ShowSource{Slug: "src-2"})
	view.SendMessage(sender, sourceResolved{
		Slug:   "src-2",
		Source: &pkgmodel.Source{Kind: pkgmodel.SourceKindSAML, Slug: "src-2"},
	})
	view.SendMessage(sender, sourceUnresolved{Slug: "src-1", Err: "connection refused"})

	current := currentViewOf(t, view, sender)
	assert.Equal(t, ViewStateSource, current.State)
	assert.Equal(t, "src-2", current.Slug)
	assert.Empty(t, current.Notice)
}

func TestSourceView_FetchFailureKeepsLoadingWithNotice(t *testing.T) {
	view, sender, err := newSourceViewForTest(t)
	require.NoError(t, err)

	view.SendMessage(sender, ShowSource{Slug: "src-5"})
	view.SendMessage(sender, sourceUnresolved{Slug: "src-5", Err: "connection refused"})

	current := currentViewOf(t, view, sender)
	assert.Equal(t, ViewStateLoading, current.State)
	assert.Equal(t, "src-5", current.Slug)
	assert.Contains(t, current.Notice, "connection refused")
}

func TestSourceView_RefreshRetriesAfterFailure(t *testing.T) {
	view, sender, err := newSourceViewForTest(t)
	require.NoError(t, err)

	view.SendMessage(sender, ShowSource{Slug: "src-5"})
	view.SendMessage(sender, sourceUnresolved{Slug: "src-5", Err: "connection refused"})
	view.SendMessage(sender, Refresh{})
	view.SendMessage(sender, sourceResolved{
		Slug:   "src-5",
		Source: &pkgmodel.Source{Kind: pkgmodel.SourceKindLDAP, Slug: "src-5"},
	})

	current := currentViewOf(t, view, sender)
	assert.Equal(t, ViewStateSource, current.State)
	assert.Equal(t, pkgmodel.SourceKindLDAP, current.Kind)
	assert.Empty(t, current.Notice)
}

func TestSourceView_UnknownKindFallsBackToDiagnosticView(t *testing.T) {
	view, sender, err := newSourceViewForTest(t)
	require.NoError(t, err)

	view.SendMessage(sender, ShowSource{Slug: "src-7"})
	view.SendMessage(sender, sourceResolved{
		Slug:   "src-7",
		Source: &pkgmodel.Source{Kind: "webauthn", Slug: "src-7"},
	})

	current := currentViewOf(t, view, sender)
	assert.Equal(t, ViewStateUnknownKind, current.State)
	assert.Equal(t, pkgmodel.SourceKind("webauthn"), current.Kind)
	assert.Contains(t, current.Notice, `"webauthn"`)
	assert.Nil(t, current.Detail)
}

func TestSourceView_ShutdownTerminatesNormally(t *testing.T) {
	view, sender, err := newSourceViewForTest(t)
	require.NoError(t, err)

	view.SendMessage(sender, Shutdown{})

	assert.True(t, view.IsTerminated())
	assert.Equal(t, gen.TerminateReasonNormal, view.TerminationReason())
}

func TestSourceView_WatchersAreNotifiedOnEveryRerender(t *testing.T) {
	view, sender, err := newSourceViewForTest(t)
	require.NoError(t, err)

	watcher := gen.PID{Node: "test", ID: 200}
	view.SendMessage(sender, Watch{PID: watcher})
	view.SendMessage(sender, ShowSource{Slug: "src-42"})

	view.ShouldSend().To(watcher).MessageMatching(func(msg any) bool {
		changed, ok := msg.(ViewChanged)
		return ok && changed.ViewID == "view-1" && changed.View.State == ViewStateLoading
	}).Once().Assert()

	view.SendMessage(sender, sourceResolved{
		Slug:   "src-42",
		Source: &pkgmodel.Source{Kind: pkgmodel.SourceKindOAuth, Slug: "src-42"},
	})

	view.ShouldSend().To(watcher).MessageMatching(func(msg any) bool {
		changed, ok := msg.(ViewChanged)
		return ok && changed.View.State == ViewStateSource && changed.View.Kind == pkgmodel.SourceKindOAuth
	}).Once().Assert()
}
