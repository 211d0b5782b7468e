// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package console

import (
	"fmt"

	"ergo.services/ergo/act"
	"ergo.services/ergo/gen"

	"github.com/gatehouse-id/gatehouse/internal/console/actornames"
	"github.com/gatehouse-id/gatehouse/internal/console/sourceview"
)

// ViewSupervisor owns the per-session source view actors. Sessions are
// opened and closed through it, so it is also the authority on which views
// exist.
type ViewSupervisor struct {
	act.Supervisor

	views map[string]struct{}
}

func NewViewSupervisor() gen.ProcessBehavior {
	return &ViewSupervisor{}
}

type EnsureSourceView struct {
	ViewID string
}

type CloseSourceView struct {
	ViewID string
}

type OpenViewCount struct{}

func (s *ViewSupervisor) Init(args ...any) (act.SupervisorSpec, error) {
	s.views = make(map[string]struct{})

	var spec act.SupervisorSpec
	spec.Type = act.SupervisorTypeOneForOne
	spec.Restart.Strategy = act.SupervisorStrategyTransient
	spec.Restart.Intensity = 2 // How big bursts of restarts you want to tolerate.
	spec.Restart.Period = 1    // In seconds.

	return spec, nil
}

func (s *ViewSupervisor) HandleCall(from gen.PID, ref gen.Ref, request any) (any, error) {
	switch req := request.(type) {
	case EnsureSourceView:
		if err := s.ensureSourceView(req); err != nil {
			return nil, fmt.Errorf("failed to ensure source view %s: %w", req.ViewID, err)
		}
		s.Log().Debug("ViewSupervisor ensured source view %s", req.ViewID)
		return true, nil

	case CloseSourceView:
		if err := s.closeSourceView(req); err != nil {
			return nil, err
		}
		return true, nil

	case OpenViewCount:
		return len(s.views), nil

	default:
		return nil, fmt.Errorf("viewSupervisor received unknown request type %T", request)
	}
}

func (s *ViewSupervisor) HandleMessage(from gen.PID, message any) error {
	switch msg := message.(type) {
	default:
		s.Log().Debug("ViewSupervisor got an unknown message: %v %T", message, msg)
	}

	return nil
}

func (s *ViewSupervisor) ensureSourceView(req EnsureSourceView) error {
	err := s.AddChild(act.SupervisorChildSpec{
		Name:    actornames.SourceView(req.ViewID),
		Factory: sourceview.NewSourceView,
		Args:    []any{req.ViewID},
	})
	if err != nil && err != act.ErrSupervisorChildDuplicate {
		return err
	}

	s.views[req.ViewID] = struct{}{}

	return nil
}

func (s *ViewSupervisor) closeSourceView(req CloseSourceView) error {
	if _, ok := s.views[req.ViewID]; !ok {
		return fmt.Errorf("%w: %s", ErrViewNotFound, req.ViewID)
	}

	target := gen.ProcessID{Name: actornames.SourceView(req.ViewID), Node: s.Node().Name()}
	if err := s.Send(target, sourceview.Shutdown{}); err != nil {
		return fmt.Errorf("failed to close source view %s: %w", req.ViewID, err)
	}

	delete(s.views, req.ViewID)
	s.Log().Debug("ViewSupervisor closed source view %s", req.ViewID)

	return nil
}
