// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package model holds the request and response bodies of the console's
// HTTP API.
package model

// OpenViewResponse is returned when a view session is opened.
type OpenViewResponse struct {
	ViewID string `json:"ViewID"`
}

// ShowSourceRequest sets the source a view session should present. The
// resolution is asynchronous; the caller polls the view for the outcome.
type ShowSourceRequest struct {
	Slug string `json:"Slug"`
}

// Stats describes the running console.
type Stats struct {
	Version   string   `json:"Version"`
	ConsoleID string   `json:"ConsoleID"`
	OpenViews int      `json:"OpenViews"`
	Kinds     []string `json:"Kinds"`
}
