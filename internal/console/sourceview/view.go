// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package sourceview

import (
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

type ViewState string

const (
	// ViewStateLoading is shown while no descriptor is available for the
	// current slug, including after a failed fetch.
	ViewStateLoading ViewState = "loading"
	// ViewStateSource is a resolved source rendered by its kind renderer.
	ViewStateSource ViewState = "source"
	// ViewStateUnknownKind is the diagnostic fallback for descriptors whose
	// kind this build has no renderer for.
	ViewStateUnknownKind ViewState = "unknown-kind"
)

// View is what the component hands to its host: a plain, serializable
// description of what to show right now.
type View struct {
	State  ViewState           `json:"State"`
	Slug   string              `json:"Slug"`
	Kind   pkgmodel.SourceKind `json:"Kind,omitempty"`
	Notice string              `json:"Notice,omitempty"`
	Detail *DetailView         `json:"Detail,omitempty"`
}

// DetailView is the output of a kind renderer: a titled, ordered list of
// fields. Presentation beyond that (tables, HTML) is the host's business.
type DetailView struct {
	Title  string  `json:"Title"`
	Fields []Field `json:"Fields"`
}

type Field struct {
	Label string `json:"Label"`
	Value string `json:"Value"`
}

// State is the resolution state the dispatcher renders from: pending while
// Source is nil, resolved afterwards. Notice carries a fetch-failure message
// onto the loading view.
type State struct {
	Slug   string
	Source *pkgmodel.Source
	Notice string
}

func (s State) Resolved() bool {
	return s.Source != nil
}
