// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package console

import (
	"ergo.services/ergo/act"
	"ergo.services/ergo/gen"

	"github.com/gatehouse-id/gatehouse/internal/console/overview"
	"github.com/gatehouse-id/gatehouse/internal/console/sourceview"
)

func newSupervisor() gen.ProcessBehavior {
	return &Supervisor{}
}

type Supervisor struct {
	act.Supervisor
}

// Init invoked on a spawn Supervisor process. This is a mandatory callback for the implementation
func (sup *Supervisor) Init(args ...any) (act.SupervisorSpec, error) {
	var spec act.SupervisorSpec

	spec.Type = act.SupervisorTypeOneForOne

	spec.Children = []act.SupervisorChildSpec{
		{
			Name:    "ConsoleBridge",
			Factory: NewConsoleBridge,
		},
		{
			Name:    "SourceFetcher",
			Factory: sourceview.NewFetcher,
		},
		{
			Name:    "OverviewCollector",
			Factory: overview.NewCollector,
		},
	}

	spec.Restart.Strategy = act.SupervisorStrategyTransient
	spec.Restart.Intensity = 2 // How big bursts of restarts you want to tolerate.
	spec.Restart.Period = 1    // In seconds.

	return spec, nil
}

func (sup *Supervisor) HandleMessage(from gen.PID, message any) error {
	switch msg := message.(type) {
	default:
		sup.Log().Debug("Supervisor got an unknown message: %v %T", message, msg)
	}

	return nil
}
