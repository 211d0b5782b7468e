package overview

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ergo.services/ergo/gen"
	"ergo.services/ergo/testing/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

type fakeDirectory struct {
	sources       []pkgmodel.Source
	sourcesErr    error
	latest        string
	latestErr     error
	versionChecks int
}

func (f *fakeDirectory) Sources(ctx context.Context) ([]pkgmodel.Source, error) {
	if f.sourcesErr != nil {
		return nil, f.sourcesErr
	}
	return f.sources, nil
}

func (f *fakeDirectory) LatestVersion(ctx context.Context) (string, error) {
	f.versionChecks++
	if f.latestErr != nil {
		return "", f.latestErr
	}
	return f.latest, nil
}

func newCollectorForTest(t *testing.T, dir *fakeDirectory) (*unit.TestActor, gen.PID, error) {
	env := map[gen.Env]any{
		"DirectoryClient": dir,
		"OverviewConfig": pkgmodel.OverviewConfig{
			Enabled:         false, // tests trigger collections explicitly
			Interval:        time.Minute,
			VersionCacheTTL: time.Hour,
		},
	}

	sender := gen.PID{Node: "test", ID: 100}
	collector, err := unit.Spawn(t, NewCollector, unit.WithEnv(env))
	if err != nil {
		return nil, gen.PID{}, err
	}

	return collector, sender, nil
}

func snapshotOf(t *testing.T, collector *unit.TestActor, sender gen.PID) Snapshot {
	t.Helper()

	res := collector.Call(sender, CurrentSnapshot{})
	require.NoError(t, res.Error)
	snapshot, ok := res.Response.(Snapshot)
	require.True(t, ok, "CurrentSnapshot should return a Snapshot, got %T", res.Response)

	return snapshot
}

func collectOnce(collector *unit.TestActor, sender gen.PID) {
	collector.SendMessage(sender, Collect{Once: true})
	collector.SendMessage(sender, collectNow{})
}

func TestCollector_CountsSourcesByKind(t *testing.T) {
	dir := &fakeDirectory{sources: []pkgmodel.Source{
		{Kind: pkgmodel.SourceKindLDAP, Slug: "corp-ldap", Enabled: true},
		{Kind: pkgmodel.SourceKindLDAP, Slug: "lab-ldap", Enabled: false},
		{Kind: pkgmodel.SourceKindOAuth, Slug: "github", Enabled: true},
		{Kind: "webauthn", Slug: "keys", Enabled: true},
	}}
	collector, sender, err := newCollectorForTest(t, dir)
	require.NoError(t, err)

	collectOnce(collector, sender)

	snapshot := snapshotOf(t, collector, sender)
	assert.Equal(t, 2, snapshot.SourcesByKind[pkgmodel.SourceKindLDAP])
	assert.Equal(t, 1, snapshot.SourcesByKind[pkgmodel.SourceKindOAuth])
	assert.Equal(t, 0, snapshot.SourcesByKind[pkgmodel.SourceKindSAML])
	assert.Equal(t, 1, snapshot.UnknownKinds)
	assert.Equal(t, 3, snapshot.Enabled)
	assert.Equal(t, 1, snapshot.Disabled)
	assert.False(t, snapshot.CollectedAt.IsZero())
}

func TestCollector_KeepsPreviousSnapshotOnDirectoryFailure(t *testing.T) {
	dir := &fakeDirectory{sources: []pkgmodel.Source{
		{Kind: pkgmodel.SourceKindSAML, Slug: "adfs", Enabled: true},
	}}
	collector, sender, err := newCollectorForTest(t, dir)
	require.NoError(t, err)

	collectOnce(collector, sender)
	first := snapshotOf(t, collector, sender)
	require.Equal(t, 1, first.SourcesByKind[pkgmodel.SourceKindSAML])

	dir.sourcesErr = fmt.Errorf("directory unreachable")
	collectOnce(collector, sender)

	second := snapshotOf(t, collector, sender)
	assert.Equal(t, first, second)
}

func TestCollector_EmptySnapshotBeforeFirstCollection(t *testing.T) {
	collector, sender, err := newCollectorForTest(t, &fakeDirectory{})
	require.NoError(t, err)

	snapshot := snapshotOf(t, collector, sender)
	assert.True(t, snapshot.CollectedAt.IsZero())
	assert.Empty(t, snapshot.SourcesByKind)
	assert.True(t, snapshot.Version.UpToDate)
}

func TestCollector_VersionCheckUsesTTLCache(t *testing.T) {
	dir := &fakeDirectory{latest: "0.0.0"}
	collector, sender, err := newCollectorForTest(t, dir)
	require.NoError(t, err)

	collectOnce(collector, sender)
	collectOnce(collector, sender)
	snapshotOf(t, collector, sender)

	assert.Equal(t, 1, dir.versionChecks, "release feed should be consulted once per TTL window")
}

func TestCollector_FeedFailureDegradesToUpToDate(t *testing.T) {
	dir := &fakeDirectory{latestErr: fmt.Errorf("feed unreachable")}
	collector, sender, err := newCollectorForTest(t, dir)
	require.NoError(t, err)

	collectOnce(collector, sender)

	snapshot := snapshotOf(t, collector, sender)
	assert.True(t, snapshot.Version.UpToDate)
	assert.Empty(t, snapshot.Version.Latest)
}

func TestVersionStatus(t *testing.T) {
	status := versionStatus("")
	assert.True(t, status.UpToDate)

	// The dev build version 0.0.0 parses, so a released feed version wins.
	status = versionStatus("99.0.0")
	assert.False(t, status.UpToDate)
	assert.Equal(t, "99.0.0", status.Latest)

	status = versionStatus("not-a-version")
	assert.True(t, status.UpToDate)
}
