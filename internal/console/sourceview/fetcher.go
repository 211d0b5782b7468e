// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package sourceview

import (
	"context"
	"fmt"

	"ergo.services/ergo/act"
	"ergo.services/ergo/gen"

	"github.com/gatehouse-id/gatehouse/internal/directory"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

// Fetcher performs the blocking directory lookups on behalf of the view
// actors and reports the outcome back to the requester. One fetch per
// request, no retry; timeouts belong to the directory client.
type Fetcher struct {
	act.Actor

	ctx    context.Context
	client SourceResolver
}

// SourceResolver is the slice of the directory client the fetcher needs.
type SourceResolver interface {
	Source(ctx context.Context, slug string) (*pkgmodel.Source, error)
}

func NewFetcher() gen.ProcessBehavior {
	return &Fetcher{}
}

// FetchSource asks the fetcher to resolve a slug and send the outcome to
// ReplyTo as a sourceResolved or sourceUnresolved message.
type FetchSource struct {
	Slug    string
	ReplyTo gen.PID
}

type sourceResolved struct {
	Slug   string
	Source *pkgmodel.Source
}

type sourceUnresolved struct {
	Slug string
	Err  string
}

func (f *Fetcher) Init(args ...any) error {
	client, ok := f.Env("DirectoryClient")
	if !ok {
		f.Log().Error("Missing 'DirectoryClient' environment variable")
		return fmt.Errorf("fetcher: missing 'DirectoryClient' environment variable")
	}
	f.client = client.(SourceResolver)

	f.ctx = context.Background()
	if envCtx, ok := f.Env("Context"); ok {
		f.ctx = envCtx.(context.Context)
	}

	return nil
}

func (f *Fetcher) HandleMessage(from gen.PID, message any) error {
	switch msg := message.(type) {
	case FetchSource:
		source, err := f.client.Source(f.ctx, msg.Slug)
		if err != nil {
			f.Log().Debug("Source fetch failed", "slug", msg.Slug, "error", err)
			return f.Send(msg.ReplyTo, sourceUnresolved{Slug: msg.Slug, Err: err.Error()})
		}
		return f.Send(msg.ReplyTo, sourceResolved{Slug: msg.Slug, Source: source})

	default:
		f.Log().Debug("Fetcher got an unknown message: %T", message)
		return nil
	}
}

var _ SourceResolver = (*directory.Client)(nil)
