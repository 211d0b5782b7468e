// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderers

import (
	"context"

	"github.com/gatehouse-id/gatehouse/internal/console/sourceview"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

// SAML renders federation sources speaking SAML.
type SAML struct {
	loader SourceLoader
}

func NewSAML(loader SourceLoader) *SAML {
	return &SAML{loader: loader}
}

func (r *SAML) Render(ctx context.Context, slug string) (*sourceview.DetailView, error) {
	source, err := load(ctx, r.loader, slug, pkgmodel.SourceKindSAML)
	if err != nil {
		return nil, err
	}

	fields := commonFields(source)
	fields = append(fields,
		propertyField(source, "Issuer", "Issuer"),
		propertyField(source, "SSO URL", "SSOURL"),
		propertyField(source, "Binding", "BindingType"),
		propertyField(source, "Name ID policy", "NameIDPolicy"),
		propertyField(source, "Signing certificate", "SigningCertificateFingerprint"),
	)

	return &sourceview.DetailView{
		Title:  title(source, "SAML"),
		Fields: fields,
	}, nil
}
