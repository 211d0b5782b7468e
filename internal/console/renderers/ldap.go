// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderers

import (
	"context"

	"github.com/gatehouse-id/gatehouse/internal/console/sourceview"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

// LDAP renders directory-synchronization sources.
type LDAP struct {
	loader SourceLoader
}

func NewLDAP(loader SourceLoader) *LDAP {
	return &LDAP{loader: loader}
}

func (r *LDAP) Render(ctx context.Context, slug string) (*sourceview.DetailView, error) {
	source, err := load(ctx, r.loader, slug, pkgmodel.SourceKindLDAP)
	if err != nil {
		return nil, err
	}

	fields := commonFields(source)
	fields = append(fields,
		propertyField(source, "Server URI", "ServerURI"),
		propertyField(source, "Bind DN", "BindDN"),
		propertyField(source, "Base DN", "BaseDN"),
		propertyField(source, "Sync users", "SyncUsers"),
		propertyField(source, "Sync groups", "SyncGroups"),
	)

	return &sourceview.DetailView{
		Title:  title(source, "LDAP"),
		Fields: fields,
	}, nil
}
