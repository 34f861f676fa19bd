package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/graphcache/internal/adapters/cas"
	"go.trai.ch/graphcache/internal/adapters/config"
	"go.trai.ch/graphcache/internal/adapters/export"
	"go.trai.ch/graphcache/internal/adapters/logger"
	"go.trai.ch/graphcache/internal/app"
	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/graphcache/internal/core/ports"
	"go.trai.ch/graphcache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func mockComponents(t *testing.T) (*app.Components, *mocks.MockLogger, *mocks.MockResultStore) {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	store := mocks.NewMockResultStore(ctrl)
	renderers, err := export.Renderers()
	require.NoError(t, err)

	application := app.New(mocks.NewMockResolutionLoader(ctrl), store, renderers, log).WithRoot(t.TempDir())
	return &app.Components{App: application, Logger: log}, log, store
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	components, _, _ := mockComponents(t)
	provider := func(context.Context) (*app.Components, error) { return components, nil }

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "graphcache version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, error) {
		return nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that command failures are logged and return 1.
func TestRun_ExecutionError(t *testing.T) {
	components, log, store := mockComponents(t)
	provider := func(context.Context) (*app.Components, error) { return components, nil }

	store.EXPECT().Get(gomock.Any(), "compile").Return(nil, nil)
	log.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	exitCode := run(context.Background(), []string{"read", "compile"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

const resolution = `version: "1"
components:
  - id: 42
    module: com.x:lib:1.0
    reasons:
      - cause: requested
      - cause: selected_by_rule
        description: pinned by platform
    variant: apiElements
    attributes:
      org.gradle.usage: java-api
    repository: mavenCentral
  - id: 43
    module: com.x:util:2.1
    reasons:
      - cause: selected_by_rule
        description: pinned by platform
    component:
      opaque: flat dir jar
    variant: runtimeElements
`

// TestRun_WriteThenRead drives the real adapters through the CLI.
func TestRun_WriteThenRead(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	root := t.TempDir()
	path := filepath.Join(root, domain.ResolutionFileName)
	require.NoError(t, os.WriteFile(path, []byte(resolution), domain.FilePerm))

	log, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	logs := new(bytes.Buffer)
	log.SetOutput(logs)

	store, err := cas.NewStore()
	require.NoError(t, err)
	renderers, err := export.Renderers()
	require.NoError(t, err)

	var l ports.Logger = log
	application := app.New(config.NewLoader(l), store, renderers, l).WithRoot(root)
	provider := func(context.Context) (*app.Components, error) {
		return &app.Components{App: application, Logger: l}, nil
	}

	exitCode := run(context.Background(), []string{"write", path, "--session", "compile"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	require.Equal(t, 0, exitCode, logs.String())
	assert.Contains(t, logs.String(), "wrote 2 results to session compile")

	stdout := new(bytes.Buffer)
	exitCode = run(context.Background(), []string{"read", "compile", "--format", "json"}, stdout, new(bytes.Buffer), provider)
	require.Equal(t, 0, exitCode, logs.String())

	var sessions []struct {
		Session string `json:"session"`
		Results []struct {
			ID      int64 `json:"id"`
			Reasons []struct {
				Cause       string `json:"cause"`
				Description string `json:"description"`
			} `json:"reasons"`
			Component struct {
				Kind string `json:"kind"`
				Name string `json:"name"`
			} `json:"component"`
			Repository *string `json:"repository"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &sessions))
	require.Len(t, sessions, 1)
	require.Len(t, sessions[0].Results, 2)

	first, second := sessions[0].Results[0], sessions[0].Results[1]
	assert.Equal(t, int64(42), first.ID)
	assert.Equal(t, "module", first.Component.Kind)
	require.NotNil(t, first.Repository)
	assert.Equal(t, "mavenCentral", *first.Repository)
	assert.Equal(t, int64(43), second.ID)
	assert.Equal(t, "opaque", second.Component.Kind)
	assert.Nil(t, second.Repository)
	require.Len(t, second.Reasons, 1)
	assert.Equal(t, "pinned by platform", second.Reasons[0].Description)

	exitCode = run(context.Background(), []string{"clean"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	require.Equal(t, 0, exitCode)
	assert.NoDirExists(t, filepath.Join(root, domain.DefaultStorePath()))
}
