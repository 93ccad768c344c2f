package cli_test

import (
	"bytes"
	"testing"

	"github.com/rshade/pokedeck/internal/cli"
	"github.com/rshade/pokedeck/internal/config"
	"github.com/rshade/pokedeck/internal/pokeapi/pokeapitest"
)

// setupCLITest points the CLI at a fake PokéAPI and an isolated home, and
// registers cleanup for global state.
func setupCLITest(t *testing.T) *pokeapitest.Server {
	t.Helper()
	srv := pokeapitest.NewServer(t)
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvAPIBaseURL, srv.URL)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvLogFile, "")
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(config.ResetGlobalConfigForTest)
	return srv
}

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
