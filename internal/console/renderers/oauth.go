// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderers

import (
	"context"

	"github.com/gatehouse-id/gatehouse/internal/console/sourceview"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

// OAuth renders social-login and generic OAuth provider sources.
type OAuth struct {
	loader SourceLoader
}

func NewOAuth(loader SourceLoader) *OAuth {
	return &OAuth{loader: loader}
}

func (r *OAuth) Render(ctx context.Context, slug string) (*sourceview.DetailView, error) {
	source, err := load(ctx, r.loader, slug, pkgmodel.SourceKindOAuth)
	if err != nil {
		return nil, err
	}

	fields := commonFields(source)
	fields = append(fields,
		propertyField(source, "Provider type", "ProviderType"),
		propertyField(source, "Authorization URL", "AuthorizationURL"),
		propertyField(source, "Access token URL", "AccessTokenURL"),
		propertyField(source, "Profile URL", "ProfileURL"),
		propertyField(source, "Consumer key", "ConsumerKey"),
	)

	return &sourceview.DetailView{
		Title:  title(source, "OAuth"),
		Fields: fields,
	}, nil
}
