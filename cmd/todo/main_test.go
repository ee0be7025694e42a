package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/todo/internal/config"
	"github.com/sandeepkv93/todo/internal/model"
)

const seededTasks = `Old task|Work|Low||False|2024-01-01 10:00:00
New task|Personal|High|02/01/2024|False|2024-01-02 10:00:00
Done task|Work|Medium||True|2023-12-31 10:00:00
`

// setupWorkspace isolates the environment and points the file backend at
// a fresh task file inside a temp dir, which is also the working directory.
func setupWorkspace(t *testing.T) (dir string, taskFile string) {
	t.Helper()
	for _, name := range []string{
		"TODO_BACKEND", "TODO_SQLITE_PATH", "TODO_CATEGORIES", "TODO_DEFAULT_CATEGORY",
		"TODO_DEFAULT_PRIORITY", "TODO_DEFAULT_SORT", "TODO_LOG_LEVEL", "TODO_LOG_FORMAT",
		"TODO_LOG_FILE", "TODO_ALT_SCREEN",
	} {
		t.Setenv(name, "")
	}
	dir = t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	t.Chdir(dir)

	taskFile = filepath.Join(dir, "tasks.txt")
	t.Setenv("TODO_FILE", taskFile)
	return dir, taskFile
}

func seed(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(seededTasks), 0o644))
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func TestAddAndList(t *testing.T) {
	setupWorkspace(t)

	out, err := runCLI(t, "add", "--title", "Pay rent", "--priority", "high", "--due", "01/02/2024")
	require.NoError(t, err)
	assert.Equal(t, "Added: [ ] [High] Pay rent - Personal (Due: 01/02/2024)\n", out)

	out, err = runCLI(t, "add", "Call", "mom", "--category", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "[Medium] Call mom - Work")

	out, err = runCLI(t, "list", "--sort", "priority")
	require.NoError(t, err)
	assert.Contains(t, out, "1. [ ] [High] Pay rent - Personal (Due: 01/02/2024)")
	assert.Contains(t, out, "2. [ ] [Medium] Call mom - Work")
	assert.Contains(t, out, "Total: 2 | Pending: 2 | Completed: 0")
}

func TestAddValidation(t *testing.T) {
	setupWorkspace(t)

	_, err := runCLI(t, "add")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = runCLI(t, "add", "--title", "Party", "--due", "13/40/2024")
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Contains(t, err.Error(), "due date")

	_, err = runCLI(t, "add", "--title", "Party", "--priority", "urgent")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = runCLI(t, "add", "--title", "a|b")
	assert.ErrorIs(t, err, model.ErrValidation)

	out, err := runCLI(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks found.")
	assert.Contains(t, out, "Total: 0 | Pending: 0 | Completed: 0")
}

func TestListFilters(t *testing.T) {
	_, file := setupWorkspace(t)
	seed(t, file)

	out, err := runCLI(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1. [ ] [High] New task - Personal (Due: 02/01/2024)")
	assert.Contains(t, out, "2. [ ] [Low] Old task - Work")
	assert.Contains(t, out, "3. [x] [Medium] Done task - Work")

	out, err = runCLI(t, "list", "--status", "pending", "--category", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "1. [ ] [Low] Old task - Work")
	assert.NotContains(t, out, "New task")
	assert.NotContains(t, out, "Done task")

	out, err = runCLI(t, "list", "--search", "TASK", "--sort", "date")
	require.NoError(t, err)
	assert.Contains(t, out, "1. [ ] [High] New task")
	assert.Contains(t, out, "Total: 3 | Pending: 2 | Completed: 1")

	_, err = runCLI(t, "list", "--status", "later")
	assert.ErrorIs(t, err, model.ErrInvalidCompletion)
}

func TestDoneToggles(t *testing.T) {
	_, file := setupWorkspace(t)
	seed(t, file)

	out, err := runCLI(t, "done", "2")
	require.NoError(t, err)
	assert.Equal(t, "Completed: Old task\n", out)

	out, err = runCLI(t, "list", "--status", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "Old task")

	out, err = runCLI(t, "done", "2")
	require.NoError(t, err)
	assert.Equal(t, "Reopened: Old task\n", out)

	_, err = runCLI(t, "done", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no task #9")

	_, err = runCLI(t, "done", "two")
	require.Error(t, err)
}

func TestDeleteByNumber(t *testing.T) {
	_, file := setupWorkspace(t)
	seed(t, file)

	out, err := runCLI(t, "delete", "2")
	require.NoError(t, err)
	assert.Equal(t, "Deleted: Old task\n", out)

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Old task")
	assert.Equal(t, 2, strings.Count(string(raw), "\n"))
}

func TestEditKeepsUnchangedFields(t *testing.T) {
	_, file := setupWorkspace(t)
	seed(t, file)

	out, err := runCLI(t, "edit", "1", "--priority", "low", "--clear-due")
	require.NoError(t, err)
	assert.Equal(t, "Updated: [ ] [Low] New task - Personal\n", out)

	out, err = runCLI(t, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "New task|Personal|Low||False|2024-01-02 10:00:00\n")
	assert.Contains(t, out, "Done task|Work|Medium||True|2023-12-31 10:00:00\n")

	_, err = runCLI(t, "edit", "1", "--title", "  ")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestSQLiteBackend(t *testing.T) {
	dir, _ := setupWorkspace(t)
	db := filepath.Join(dir, "tasks.db")

	_, err := runCLI(t, "add", "--title", "Stored in sqlite", "--backend", "sqlite", "--file", db)
	require.NoError(t, err)

	out, err := runCLI(t, "list", "--backend", "sqlite", "--file", db)
	require.NoError(t, err)
	assert.Contains(t, out, "1. [ ] [Medium] Stored in sqlite - Personal")

	out, err = runCLI(t, "done", "1", "--backend", "sqlite", "--file", db)
	require.NoError(t, err)
	assert.Equal(t, "Completed: Stored in sqlite\n", out)

	out, err = runCLI(t, "export", "--backend", "sqlite", "--file", db)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Stored in sqlite|Personal|Medium||True|"), out)

	_, err = os.Stat(filepath.Join(dir, "tasks.txt"))
	assert.True(t, os.IsNotExist(err), "file backend should be untouched")
}

func TestInvalidBackend(t *testing.T) {
	setupWorkspace(t)
	_, err := runCLI(t, "list", "--backend", "postgres")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestConfigFileCategories(t *testing.T) {
	dir, _ := setupWorkspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todo.toml"), []byte(`
categories = ["Home", "Errands"]
default_category = "Home"
default_priority = "High"
`), 0o644))

	out, err := runCLI(t, "add", "Fix sink")
	require.NoError(t, err)
	assert.Equal(t, "Added: [ ] [High] Fix sink - Home\n", out)

	out, err = runCLI(t, "add", "Buy stamps", "--category", "errands")
	require.NoError(t, err)
	assert.Contains(t, out, "- Errands")

	_, err = runCLI(t, "add", "Report", "--category", "work")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestEditKeepsStoredCategoryAndPriority(t *testing.T) {
	_, file := setupWorkspace(t)
	require.NoError(t, os.WriteFile(file, []byte("Buy milk|Home|Urgent||False|2024-01-01 10:00:00\n"), 0o644))

	out, err := runCLI(t, "edit", "1", "--title", "Buy oat milk")
	require.NoError(t, err)
	assert.Equal(t, "Updated: [ ] [Urgent] Buy oat milk - Home\n", out)

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk|Home|Urgent||False|2024-01-01 10:00:00\n", string(raw))

	out, err = runCLI(t, "add", "Fix tap", "--category", "home")
	require.NoError(t, err)
	assert.Contains(t, out, "- Home")

	_, err = runCLI(t, "edit", "1", "--priority", "urgent")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestFileFlagExpandsHome(t *testing.T) {
	dir, file := setupWorkspace(t)

	_, err := runCLI(t, "add", "Tilde path", "--file", "~/elsewhere.txt")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "elsewhere.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Tilde path|")
	_, err = os.Stat(file)
	assert.True(t, os.IsNotExist(err), "TODO_FILE should be overridden")
}

func TestSaveFailureFailsCommand(t *testing.T) {
	dir, _ := setupWorkspace(t)
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))
	t.Setenv("TODO_FILE", filepath.Join(blocker, "tasks.txt"))

	out, err := runCLI(t, "add", "Lost task")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save tasks")
	assert.NotContains(t, out, "Added")
}
