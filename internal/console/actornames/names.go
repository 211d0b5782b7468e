// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package actornames

import (
	"fmt"

	"ergo.services/ergo/gen"
)

const (
	ConsoleBridge     = gen.Atom("ConsoleBridge")
	ConsoleSupervisor = gen.Atom("ConsoleSupervisor")
	OverviewCollector = gen.Atom("OverviewCollector")
	SourceFetcher     = gen.Atom("SourceFetcher")
	ViewSupervisor    = gen.Atom("ViewSupervisor")
)

func SourceView(viewID string) gen.Atom {
	return gen.Atom(fmt.Sprintf("gatehouse://views/source/%s", viewID))
}
