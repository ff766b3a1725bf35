package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytearena/streetboids/common/utils"
	"github.com/bytearena/streetboids/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func TestMain(m *testing.M) {
	utils.SetDebugOutput(io.Discard)
	os.Exit(m.Run())
}

// captureConfig runs the serve command with its action replaced, to observe
// how flags and file are merged.
func captureConfig(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()

	app := makeapp()

	var conf config.Config
	var resolveErr error

	for i := range app.Commands {
		if app.Commands[i].Name == "serve" {
			app.Commands[i].Action = func(c *cli.Context) error {
				conf, resolveErr = resolveConfig(c)
				return nil
			}
		}
	}

	require.NoError(t, app.Run(append([]string{"streetboids", "serve"}, args...)))
	return conf, resolveErr
}

func TestFlagsOverrideFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(filename, []byte(`{"server":{"port":9000,"tps":20},"world":{"width":640,"height":480,"boids":50}}`), 0644))

	conf, err := captureConfig(t, "--config", filename, "--tps", "45", "--boids", "80", "--disable", "moto")
	require.NoError(t, err)

	assert.Equal(t, 9000, conf.Server.Port)
	assert.Equal(t, 45, conf.Server.Tps)
	assert.Equal(t, 640.0, conf.World.Width)
	assert.Equal(t, 80, conf.World.Boids)
	assert.Equal(t, []string{"moto"}, conf.World.Disabled)
}

func TestInvalidFlags(t *testing.T) {
	_, err := captureConfig(t, "--tps", "0")
	assert.Error(t, err)

	_, err = captureConfig(t, "--disable", "tram")
	assert.Error(t, err)
}

func TestSimulateCommand(t *testing.T) {
	app := makeapp()

	err := app.Run([]string{
		"streetboids", "simulate",
		"--ticks", "20", "--no-progress",
		"--width", "400", "--height", "300", "--boids", "15", "--seed", "7",
		"--parallelism", "2", "--broadphase",
	})

	assert.NoError(t, err)
}

func TestSimulateRejectsZeroTicks(t *testing.T) {
	app := makeapp()

	err := app.Run([]string{"streetboids", "simulate", "--ticks", "0", "--no-progress"})
	assert.Error(t, err)
}
