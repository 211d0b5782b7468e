// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package sourceview

import (
	"context"
	"fmt"
	"slices"

	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

// Renderer presents one source kind. It receives only the identity slug and
// is responsible for any further data loading of its own.
type Renderer interface {
	Render(ctx context.Context, slug string) (*DetailView, error)
}

// Registry maps source kinds to their renderers and is the only branching
// logic in the view core. Kinds outside the registered set fall through to
// the diagnostic unknown-kind view; the mapping never panics on wire data.
type Registry struct {
	renderers map[pkgmodel.SourceKind]Renderer
}

func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[pkgmodel.SourceKind]Renderer),
	}
}

func (r *Registry) Register(kind pkgmodel.SourceKind, renderer Renderer) {
	r.renderers[kind] = renderer
}

// Kinds returns the registered kinds in lexical order.
func (r *Registry) Kinds() []pkgmodel.SourceKind {
	kinds := make([]pkgmodel.SourceKind, 0, len(r.renderers))
	for kind := range r.renderers {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// Render produces the view for a resolution state: the loading view while
// pending, the kind renderer's view once resolved, or the unknown-kind
// fallback. The routing decision is a pure function of the state.
func (r *Registry) Render(ctx context.Context, state State) View {
	if !state.Resolved() {
		return View{
			State:  ViewStateLoading,
			Slug:   state.Slug,
			Notice: state.Notice,
		}
	}

	source := state.Source

	renderer, ok := r.renderers[source.Kind]
	if !ok {
		unknownKindsTotal.Inc()
		return View{
			State:  ViewStateUnknownKind,
			Slug:   source.Slug,
			Kind:   source.Kind,
			Notice: fmt.Sprintf("no renderer for source kind %q", source.Kind),
		}
	}

	detail, err := renderer.Render(ctx, source.Slug)
	if err != nil {
		return View{
			State:  ViewStateSource,
			Slug:   source.Slug,
			Kind:   source.Kind,
			Notice: fmt.Sprintf("failed to render %s source: %s", source.Kind, err),
		}
	}

	return View{
		State:  ViewStateSource,
		Slug:   source.Slug,
		Kind:   source.Kind,
		Detail: detail,
	}
}
