// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package overview aggregates the admin overview: how many federation
// sources the directory holds per kind, how many are enabled, and whether
// this console build is the latest released one.
package overview

import (
	"context"
	"fmt"
	"time"

	"ergo.services/actor/statemachine"
	"ergo.services/ergo/gen"
	"github.com/masterminds/semver"

	"github.com/gatehouse-id/gatehouse"
	"github.com/gatehouse-id/gatehouse/internal/directory"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

// Collector polls the directory on an interval and answers CurrentSnapshot
// calls from the last collected state, so the overview endpoint never blocks
// on the directory.
type Collector struct {
	statemachine.StateMachine[collectorData]
}

func NewCollector() gen.ProcessBehavior {
	return &Collector{}
}

const (
	StateIdle       = gen.Atom("idle")
	StateCollecting = gen.Atom("collecting")
)

// Directory is the slice of the directory client the collector needs.
type Directory interface {
	Sources(ctx context.Context) ([]pkgmodel.Source, error)
	LatestVersion(ctx context.Context) (string, error)
}

type collectorData struct {
	ctx    context.Context
	client Directory
	cfg    pkgmodel.OverviewConfig

	scheduled bool
	snapshot  Snapshot

	// latest release version, cached so the release feed is consulted at
	// most once per VersionCacheTTL
	latest        string
	latestChecked time.Time
}

// Snapshot is one collected overview, handed out as-is by the API layer.
type Snapshot struct {
	CollectedAt   time.Time                   `json:"CollectedAt"`
	SourcesByKind map[pkgmodel.SourceKind]int `json:"SourcesByKind"`
	UnknownKinds  int                         `json:"UnknownKinds"`
	Enabled       int                         `json:"Enabled"`
	Disabled      int                         `json:"Disabled"`
	Version       VersionStatus               `json:"Version"`
}

type VersionStatus struct {
	Running  string `json:"Running"`
	Latest   string `json:"Latest,omitempty"`
	UpToDate bool   `json:"UpToDate"`
}

// Messages processed by Collector

// Collect triggers a collection run. Scheduled runs re-arm themselves;
// Once runs do not.
type Collect struct {
	Once bool
}

// collectNow does the actual directory round-trips, in StateCollecting.
type collectNow struct{}

// CurrentSnapshot is a call returning the last collected Snapshot.
type CurrentSnapshot struct{}

func (c *Collector) Init(args ...any) (statemachine.StateMachineSpec[collectorData], error) {
	client, ok := c.Env("DirectoryClient")
	if !ok {
		c.Log().Error("Missing 'DirectoryClient' environment variable")
		return statemachine.StateMachineSpec[collectorData]{}, fmt.Errorf("overview: missing 'DirectoryClient' environment variable")
	}

	ocfg, ok := c.Env("OverviewConfig")
	if !ok {
		c.Log().Error("Missing 'OverviewConfig' environment variable")
		return statemachine.StateMachineSpec[collectorData]{}, fmt.Errorf("overview: missing 'OverviewConfig' environment variable")
	}
	cfg := ocfg.(pkgmodel.OverviewConfig)

	ctx := context.Background()
	if envCtx, ok := c.Env("Context"); ok {
		ctx = envCtx.(context.Context)
	}

	data := collectorData{
		ctx:    ctx,
		client: client.(Directory),
		cfg:    cfg,
		snapshot: Snapshot{
			SourcesByKind: make(map[pkgmodel.SourceKind]int),
			Version:       VersionStatus{Running: gatehouse.Version, UpToDate: true},
		},
	}

	spec := statemachine.NewStateMachineSpec(StateIdle,
		statemachine.WithData(data),

		statemachine.WithStateEnterCallback(onStateChange),

		statemachine.WithStateMessageHandler(StateIdle, collect),
		statemachine.WithStateMessageHandler(StateCollecting, collect),
		statemachine.WithStateMessageHandler(StateCollecting, performCollection),

		statemachine.WithStateCallHandler(StateIdle, currentSnapshot),
		statemachine.WithStateCallHandler(StateCollecting, currentSnapshot),
	)

	if cfg.Enabled {
		if err := c.Send(c.PID(), Collect{}); err != nil {
			return statemachine.StateMachineSpec[collectorData]{}, fmt.Errorf("failed to send initial collect message: %w", err)
		}
		c.Log().Info("Overview collector ready", "interval", cfg.Interval)
	}

	return spec, nil
}

func onStateChange(oldState gen.Atom, newState gen.Atom, data collectorData, proc gen.Process) (gen.Atom, collectorData, error) {
	if oldState == StateCollecting && newState == StateIdle && data.scheduled {
		if _, err := proc.SendAfter(proc.PID(), Collect{}, data.cfg.Interval); err != nil {
			proc.Log().Error("Failed to schedule next overview collection", "error", err)
			return newState, data, gen.TerminateReasonPanic
		}
	}
	return newState, data, nil
}

func collect(_ gen.PID, state gen.Atom, data collectorData, message Collect, proc gen.Process) (gen.Atom, collectorData, []statemachine.Action, error) {
	if state == StateCollecting {
		proc.Log().Debug("Overview collection already running, consider configuring a longer interval")
		return state, data, nil, nil
	}

	data.scheduled = !message.Once

	if err := proc.Send(proc.PID(), collectNow{}); err != nil {
		return state, data, nil, fmt.Errorf("failed to start overview collection: %w", err)
	}

	return StateCollecting, data, nil, nil
}

func performCollection(_ gen.PID, state gen.Atom, data collectorData, message collectNow, proc gen.Process) (gen.Atom, collectorData, []statemachine.Action, error) {
	started := time.Now()

	sources, err := data.client.Sources(data.ctx)
	if err != nil {
		collectionsTotal.WithLabelValues(outcomeFailed).Inc()
		proc.Log().Warning("Overview collection failed, keeping previous snapshot", "error", err)
		return StateIdle, data, nil, nil
	}

	snapshot := Snapshot{
		CollectedAt:   started,
		SourcesByKind: make(map[pkgmodel.SourceKind]int),
	}
	for _, source := range sources {
		if source.Kind.Known() {
			snapshot.SourcesByKind[source.Kind]++
		} else {
			snapshot.UnknownKinds++
		}
		if source.Enabled {
			snapshot.Enabled++
		} else {
			snapshot.Disabled++
		}
	}

	for _, kind := range pkgmodel.KnownSourceKinds() {
		sourcesGauge.WithLabelValues(string(kind)).Set(float64(snapshot.SourcesByKind[kind]))
	}

	data = refreshLatestVersion(data, proc)
	snapshot.Version = versionStatus(data.latest)

	data.snapshot = snapshot
	collectionsTotal.WithLabelValues(outcomeCollected).Inc()
	proc.Log().Debug("Overview collection finished", "sources", len(sources), "duration", time.Since(started))

	return StateIdle, data, nil, nil
}

func currentSnapshot(_ gen.PID, state gen.Atom, data collectorData, message CurrentSnapshot, proc gen.Process) (gen.Atom, collectorData, Snapshot, []statemachine.Action, error) {
	return state, data, data.snapshot, nil, nil
}

// refreshLatestVersion consults the release feed through the directory at
// most once per VersionCacheTTL. A failed check keeps the cached value; the
// check timestamp advances regardless so a dead feed is not hammered on
// every collection.
func refreshLatestVersion(data collectorData, proc gen.Process) collectorData {
	if !data.latestChecked.IsZero() && time.Since(data.latestChecked) < data.cfg.VersionCacheTTL {
		return data
	}
	data.latestChecked = time.Now()

	latest, err := data.client.LatestVersion(data.ctx)
	if err != nil {
		proc.Log().Debug("Release feed check failed", "error", err)
		return data
	}
	data.latest = latest

	return data
}

// versionStatus compares the running version against the latest released
// one. An absent or unparseable latest degrades to "up to date": the
// overview must never report an upgrade it cannot name.
func versionStatus(latest string) VersionStatus {
	status := VersionStatus{Running: gatehouse.Version, Latest: latest, UpToDate: true}
	if latest == "" {
		return status
	}

	runningVersion, err := semver.NewVersion(gatehouse.Version)
	if err != nil {
		return status
	}
	latestVersion, err := semver.NewVersion(latest)
	if err != nil {
		return status
	}

	status.UpToDate = !latestVersion.GreaterThan(runningVersion)

	return status
}

var _ Directory = (*directory.Client)(nil)
