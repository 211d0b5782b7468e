// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package console

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ergo.services/ergo/gen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse-id/gatehouse/internal/directory"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

func TestMapViewErrorPassesThroughViewNotFound(t *testing.T) {
	err := fmt.Errorf("%w: view-1", ErrViewNotFound)

	mapped := mapViewError("view-1", err)

	assert.ErrorIs(t, mapped, ErrViewNotFound)
}

func TestMapViewErrorTranslatesUnknownProcess(t *testing.T) {
	mapped := mapViewError("view-1", gen.ErrProcessUnknown)

	assert.ErrorIs(t, mapped, ErrViewNotFound)
	assert.Contains(t, mapped.Error(), "view-1")
}

func TestMapViewErrorLeavesOtherErrorsAlone(t *testing.T) {
	boom := errors.New("boom")

	mapped := mapViewError("view-1", boom)

	assert.Equal(t, boom, mapped)
	assert.NotErrorIs(t, mapped, ErrViewNotFound)
}

func TestNewConsoleWithDirectoryWiresNodeOptions(t *testing.T) {
	cfg := pkgmodel.DefaultConfig()
	cfg.Console.Server.Nodename = "gatehouse-test"
	cfg.Console.Server.Hostname = "localhost"
	cfg.Console.Server.ErgoPort = 14985
	client := directory.NewClient(cfg.Console.Directory)

	console, err := NewConsoleWithDirectory(context.Background(), cfg, client, "console-1")
	require.NoError(t, err)

	assert.Equal(t, "gatehouse-test@localhost", console.nodeName)
	assert.Equal(t, "console-1", console.ConsoleID)
	assert.Same(t, client, console.options.Env[gen.Env("DirectoryClient")])
	assert.Same(t, console.Registry, console.options.Env[gen.Env("RendererRegistry")])
	assert.False(t, console.options.Security.ExposeEnvRemoteSpawn)
	assert.Len(t, console.options.Network.Acceptors, 1)
	assert.Equal(t, uint16(14985), console.options.Network.Acceptors[0].Port)
}

func TestNewConsoleRegistersAllKnownKinds(t *testing.T) {
	cfg := pkgmodel.DefaultConfig()

	console, err := NewConsole(context.Background(), cfg, "console-1")
	require.NoError(t, err)

	assert.ElementsMatch(t, pkgmodel.KnownSourceKinds(), console.Registry.Kinds())
}
