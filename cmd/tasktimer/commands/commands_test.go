package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/tasktimer/internal/config"
	terrors "git.home.luguber.info/inful/tasktimer/internal/errors"
	"git.home.luguber.info/inful/tasktimer/internal/timerstore"
	"git.home.luguber.info/inful/tasktimer/internal/tools"
)

// runCLI parses args like the binary does and runs the selected command.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tasktimer"),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }),
	)
	require.NoError(t, err)

	// Keep tests independent of any tasktimer.yaml in the package directory.
	args = append([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}, args...)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	err = kctx.Run(&Global{Out: &out, In: strings.NewReader(stdin)}, cli)
	return out.String(), err
}

func TestStartStopCommands(t *testing.T) {
	store := filepath.Join(t.TempDir(), "timers.json")

	out, err := runCLI(t, "", "--store", store, "start", "write-report")
	require.NoError(t, err)
	assert.Contains(t, out, `Started timer for "write-report"`)

	out, err = runCLI(t, "", "--store", store, "start", "write-report")
	require.NoError(t, err)
	assert.Contains(t, out, "already running")

	out, err = runCLI(t, "", "--store", store, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "write-report")

	out, err = runCLI(t, "", "--store", store, "stop", "write-report")
	require.NoError(t, err)
	assert.Contains(t, out, "Elapsed time: 0 minutes")

	out, err = runCLI(t, "", "--store", store, "status")
	require.NoError(t, err)
	assert.Equal(t, "No timers running.\n", out)
}

func TestStartCommand_EmptyTaskIsToolError(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Path = filepath.Join(t.TempDir(), "timers.json")
	rt := NewRuntime(cfg)
	defer rt.Close()

	var out bytes.Buffer
	err := RunTool(t.Context(), rt, tools.StartTimer, "", &out)
	require.Error(t, err)
	assert.Empty(t, out.String())
	assert.True(t, terrors.IsCategory(err, terrors.CategoryTool))
	assert.Equal(t, 2, terrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestHistoryCommand(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "timers.json")
	db := filepath.Join(dir, "history.db")

	_, err := runCLI(t, "", "--store", store, "--history-db", db, "start", "a")
	require.NoError(t, err)
	_, err = runCLI(t, "", "--store", store, "--history-db", db, "stop", "a")
	require.NoError(t, err)

	out, err := runCLI(t, "", "--store", store, "--history-db", db, "history", "--task", "a")
	require.NoError(t, err)
	assert.Contains(t, out, "0 minutes, 0 seconds")

	out, err = runCLI(t, "", "--store", store, "--history-db", db, "history", "--task", "b")
	require.NoError(t, err)
	assert.Equal(t, "No completed sessions.\n", out)
}

func TestHistoryCommand_RequiresJournal(t *testing.T) {
	_, err := runCLI(t, "", "--store", filepath.Join(t.TempDir(), "timers.json"), "history")
	require.Error(t, err)
	assert.True(t, terrors.IsCategory(err, terrors.CategoryValidation))
}

func TestServeIsDefaultCommand(t *testing.T) {
	store := filepath.Join(t.TempDir(), "timers.json")
	stdin := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"start_timer","arguments":{"taskName":"served"}}}` + "\n"

	out, err := runCLI(t, stdin, "--store", store)
	require.NoError(t, err)
	assert.Contains(t, out, `Started timer for \"served\"`)

	timers := timerstore.NewFileStore(store).Load(t.Context())
	assert.Contains(t, timers, "served")
}

func TestImplicitConfig_MalformedFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(config.DefaultConfigPath, []byte("store: [unterminated"), 0o600))

	cli := &CLI{}
	parser, err := kong.New(cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	kctx, err := parser.Parse([]string{"start", "fallback"})
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cli.Resolved)

	var out bytes.Buffer
	require.NoError(t, kctx.Run(&Global{Out: &out}, cli))
	assert.Contains(t, out.String(), `Started timer for "fallback"`)
	assert.Contains(t, timerstore.NewFileStore(filepath.Join(dir, config.DefaultStorePath)).Load(t.Context()), "fallback")
}

func TestExplicitConfig_MalformedFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [unterminated"), 0o600))

	cli := &CLI{}
	parser, err := kong.New(cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	_, err = parser.Parse([]string{"--config", path, "status"})
	require.Error(t, err)
	assert.True(t, terrors.IsCategory(err, terrors.CategoryConfig))
}

func TestInitWithoutConfigFlagUsesDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cli := &CLI{}
	parser, err := kong.New(cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	kctx, err := parser.Parse([]string{"init"})
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, kctx.Run(&Global{Out: &out}, cli))

	_, statErr := os.Stat(filepath.Join(dir, config.DefaultConfigPath))
	require.NoError(t, statErr)
}

func TestInitAndVersionCommands(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "tasktimer.yaml")

	cli := &CLI{}
	parser, err := kong.New(cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	kctx, err := parser.Parse([]string{"--config", cfgPath, "init"})
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, kctx.Run(&Global{Out: &out}, cli))
	assert.Contains(t, out.String(), cfgPath)
	_, statErr := os.Stat(cfgPath)
	require.NoError(t, statErr)

	out2, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out2, "tasktimer "))
}
