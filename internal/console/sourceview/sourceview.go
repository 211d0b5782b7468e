// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package sourceview holds the source view component: given a source slug it
// resolves the descriptor asynchronously through the fetcher, classifies it
// by kind and renders the kind-specific view, a loading view while
// unresolved, or a diagnostic fallback for unknown kinds.
package sourceview

import (
	"context"
	"fmt"
	"slices"

	"ergo.services/actor/statemachine"
	"ergo.services/ergo/gen"

	"github.com/gatehouse-id/gatehouse/internal/console/actornames"
)

// SourceView is the Ergo state machine behind one view session. It owns the
// pair (current slug, resolution state) and is the only writer of it; the
// dispatcher in registry.go only ever reads.
//
// The machine transitions are as follows:
//
//	            ShowSource
//	          ┌───────────┐
//	          ▼           │
//	    +-----------------------+
//	    |        Pending        |◄──┐ sourceUnresolved,
//	    +-----------------------+───┘ stale sourceResolved
//	          │           ▲
//	  current │           │ ShowSource
//	  sourceResolved      │
//	          ▼           │
//	    +-----------------------+
//	    |        Resolved       |
//	    +-----------------------+
//
// A slug set while a fetch is outstanding supersedes it: results are applied
// in slug-currency order, not completion order, so a slow stale fetch can
// never clobber a newer one. The stale fetch is not aborted, its result is
// discarded on arrival.
type SourceView struct {
	statemachine.StateMachine[sourceViewData]
}

func NewSourceView() gen.ProcessBehavior {
	return &SourceView{}
}

const (
	StatePending  = gen.Atom("pending")
	StateResolved = gen.Atom("resolved")
)

type sourceViewData struct {
	ctx      context.Context
	registry *Registry
	viewID   string

	slug     string
	state    State
	view     View
	watchers []gen.PID // notified on every re-render

	fetcher gen.ProcessID
}

// Messages processed by SourceView

// ShowSource sets the slug the view should present. The caller never blocks
// on the resolution; it observes the outcome through CurrentView or a Watch.
type ShowSource struct {
	Slug string
}

// Refresh re-runs the fetch for the current slug, e.g. after a fetch
// failure left the view loading.
type Refresh struct{}

// Shutdown closes the view session.
type Shutdown struct{}

// CurrentView is a call returning the view rendered for the current state.
type CurrentView struct{}

// Watch subscribes a process to ViewChanged notifications.
type Watch struct {
	PID gen.PID
}

// ViewChanged tells watchers the view needs re-rendering.
type ViewChanged struct {
	ViewID string
	View   View
}

func (v *SourceView) Init(args ...any) (statemachine.StateMachineSpec[sourceViewData], error) {
	if len(args) < 1 {
		return statemachine.StateMachineSpec[sourceViewData]{}, fmt.Errorf("sourceview: missing view ID argument")
	}
	viewID, ok := args[0].(string)
	if !ok {
		return statemachine.StateMachineSpec[sourceViewData]{}, fmt.Errorf("sourceview: view ID argument must be a string, got %T", args[0])
	}

	reg, ok := v.Env("RendererRegistry")
	if !ok {
		v.Log().Error("Missing 'RendererRegistry' environment variable")
		return statemachine.StateMachineSpec[sourceViewData]{}, fmt.Errorf("sourceview: missing 'RendererRegistry' environment variable")
	}

	ctx := context.Background()
	if envCtx, ok := v.Env("Context"); ok {
		ctx = envCtx.(context.Context)
	}

	data := sourceViewData{
		ctx:      ctx,
		registry: reg.(*Registry),
		viewID:   viewID,
		fetcher:  gen.ProcessID{Name: actornames.SourceFetcher, Node: v.Node().Name()},
	}
	data.view = data.registry.Render(ctx, data.state)

	spec := statemachine.NewStateMachineSpec(StatePending,
		statemachine.WithData(data),

		statemachine.WithStateMessageHandler(StatePending, showSource),
		statemachine.WithStateMessageHandler(StateResolved, showSource),
		statemachine.WithStateMessageHandler(StatePending, refresh),
		statemachine.WithStateMessageHandler(StateResolved, refresh),
		statemachine.WithStateMessageHandler(StatePending, watch),
		statemachine.WithStateMessageHandler(StateResolved, watch),
		statemachine.WithStateMessageHandler(StatePending, shutdown),
		statemachine.WithStateMessageHandler(StateResolved, shutdown),

		// Resolution events can arrive in any state: a stale fetch may
		// complete long after a newer slug already resolved.
		statemachine.WithStateMessageHandler(StatePending, sourceResolvedHandler),
		statemachine.WithStateMessageHandler(StateResolved, sourceResolvedHandler),
		statemachine.WithStateMessageHandler(StatePending, sourceUnresolvedHandler),
		statemachine.WithStateMessageHandler(StateResolved, sourceUnresolvedHandler),

		statemachine.WithStateCallHandler(StatePending, currentView),
		statemachine.WithStateCallHandler(StateResolved, currentView),
	)

	openViews.Inc()
	v.Log().Debug("Source view opened", "viewID", viewID)

	return spec, nil
}

func (v *SourceView) Terminate(reason error) {
	openViews.Dec()
}

// showSource resets the machine to Pending for the new slug and hands the
// fetch to the fetcher actor. State resets before the fetch starts, so the
// host immediately observes the loading view again.
func showSource(_ gen.PID, state gen.Atom, data sourceViewData, message ShowSource, proc gen.Process) (gen.Atom, sourceViewData, []statemachine.Action, error) {
	if message.Slug == "" {
		proc.Log().Warning("Ignoring ShowSource with empty slug", "viewID", data.viewID)
		return state, data, nil, nil
	}

	data.slug = message.Slug
	data.state = State{Slug: message.Slug}
	data = rerender(data, proc)

	if err := proc.Send(data.fetcher, FetchSource{Slug: message.Slug, ReplyTo: proc.PID()}); err != nil {
		return StatePending, data, nil, fmt.Errorf("failed to hand fetch for %q to fetcher: %w", message.Slug, err)
	}

	return StatePending, data, nil, nil
}

func refresh(from gen.PID, state gen.Atom, data sourceViewData, message Refresh, proc gen.Process) (gen.Atom, sourceViewData, []statemachine.Action, error) {
	if data.slug == "" {
		return state, data, nil, nil
	}
	return showSource(from, state, data, ShowSource{Slug: data.slug}, proc)
}

func shutdown(_ gen.PID, state gen.Atom, data sourceViewData, message Shutdown, proc gen.Process) (gen.Atom, sourceViewData, []statemachine.Action, error) {
	return state, data, nil, gen.TerminateReasonNormal
}

func watch(_ gen.PID, state gen.Atom, data sourceViewData, message Watch, proc gen.Process) (gen.Atom, sourceViewData, []statemachine.Action, error) {
	if !slices.Contains(data.watchers, message.PID) {
		data.watchers = append(data.watchers, message.PID)
	}
	return state, data, nil, nil
}

// sourceResolvedHandler applies a fetch result, unless a newer slug has
// superseded the one it was fetched for.
func sourceResolvedHandler(_ gen.PID, state gen.Atom, data sourceViewData, message sourceResolved, proc gen.Process) (gen.Atom, sourceViewData, []statemachine.Action, error) {
	if message.Slug != data.slug {
		resolutionsTotal.WithLabelValues(outcomeStale).Inc()
		proc.Log().Debug("Discarding stale resolution", "viewID", data.viewID, "slug", message.Slug, "current", data.slug)
		return state, data, nil, nil
	}

	resolutionsTotal.WithLabelValues(outcomeResolved).Inc()
	data.state = State{Slug: data.slug, Source: message.Source}
	data = rerender(data, proc)

	return StateResolved, data, nil, nil
}

// sourceUnresolvedHandler records a fetch failure. The view stays loading,
// with a notice so the host can offer a retry; the failure never terminates
// the component.
func sourceUnresolvedHandler(_ gen.PID, state gen.Atom, data sourceViewData, message sourceUnresolved, proc gen.Process) (gen.Atom, sourceViewData, []statemachine.Action, error) {
	if message.Slug != data.slug {
		resolutionsTotal.WithLabelValues(outcomeStale).Inc()
		proc.Log().Debug("Discarding stale resolution failure", "viewID", data.viewID, "slug", message.Slug, "current", data.slug)
		return state, data, nil, nil
	}

	resolutionsTotal.WithLabelValues(outcomeFailed).Inc()
	proc.Log().Warning("Source resolution failed", "viewID", data.viewID, "slug", message.Slug, "error", message.Err)

	data.state = State{Slug: data.slug, Notice: message.Err}
	data = rerender(data, proc)

	return StatePending, data, nil, nil
}

func currentView(_ gen.PID, state gen.Atom, data sourceViewData, message CurrentView, proc gen.Process) (gen.Atom, sourceViewData, View, []statemachine.Action, error) {
	return state, data, data.view, nil, nil
}

// rerender recomputes the view from the current state and notifies every
// watcher that the host should re-render.
func rerender(data sourceViewData, proc gen.Process) sourceViewData {
	data.view = data.registry.Render(data.ctx, data.state)

	for _, watcher := range data.watchers {
		if err := proc.Send(watcher, ViewChanged{ViewID: data.viewID, View: data.view}); err != nil {
			proc.Log().Debug("Failed to notify watcher", "viewID", data.viewID, "watcher", watcher, "error", err)
		}
	}

	return data
}
