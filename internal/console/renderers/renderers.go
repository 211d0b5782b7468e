// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package renderers holds the kind-specific detail renderers for the source
// view. Each renderer receives only the identity slug and performs its own
// variant-scoped lookup against the directory; the view core never reads
// anything beyond a descriptor's kind and slug.
package renderers

import (
	"context"
	"fmt"

	"github.com/gatehouse-id/gatehouse/internal/console/sourceview"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

// SourceLoader is the slice of the directory client the renderers need.
type SourceLoader interface {
	Source(ctx context.Context, slug string) (*pkgmodel.Source, error)
}

// DefaultRegistry wires every kind renderer this build ships into a fresh
// registry.
func DefaultRegistry(loader SourceLoader) *sourceview.Registry {
	registry := sourceview.NewRegistry()
	registry.Register(pkgmodel.SourceKindLDAP, NewLDAP(loader))
	registry.Register(pkgmodel.SourceKindOAuth, NewOAuth(loader))
	registry.Register(pkgmodel.SourceKindSAML, NewSAML(loader))
	return registry
}

func load(ctx context.Context, loader SourceLoader, slug string, kind pkgmodel.SourceKind) (*pkgmodel.Source, error) {
	source, err := loader.Source(ctx, slug)
	if err != nil {
		return nil, err
	}

	if source.Kind != kind {
		return nil, fmt.Errorf("source %q is %q, not %q", slug, source.Kind, kind)
	}

	return source, nil
}

func commonFields(source *pkgmodel.Source) []sourceview.Field {
	enabled := "no"
	if source.Enabled {
		enabled = "yes"
	}

	return []sourceview.Field{
		{Label: "Slug", Value: source.Slug},
		{Label: "Enabled", Value: enabled},
	}
}

// propertyField renders a property field, showing a dash for properties the
// directory chose not to expose.
func propertyField(source *pkgmodel.Source, label, path string) sourceview.Field {
	value, found := source.GetProperty(path)
	if !found {
		value = "-"
	}
	return sourceview.Field{Label: label, Value: value}
}

func title(source *pkgmodel.Source, kind string) string {
	if source.Name != "" {
		return fmt.Sprintf("%s (%s)", source.Name, kind)
	}
	return fmt.Sprintf("%s (%s)", source.Slug, kind)
}
