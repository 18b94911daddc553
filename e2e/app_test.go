//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startApp(t *testing.T, failFirst int) (*TUITestFramework, *DirectoryServer) {
	t.Helper()
	server := NewDirectoryServer(t, failFirst)
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	require.NoError(t, tf.StartApp(server.URL), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("User Explorer"), "Should show title")
	return tf, server
}

func TestLoadsAndListsUsers(t *testing.T) {
	t.Parallel()
	tf, server := startApp(t, 0)

	for _, name := range []string{"John Doe", "Jane Roe", "Bob Lee"} {
		require.True(t, tf.OutputContainsPlain(name, 5*time.Second), "%s should be listed", name)
	}
	require.True(t, tf.SeePlain("Search by name or email..."), "Search box should be shown")
	require.Equal(t, 1, server.Hits(), "One request per load")
}

func TestSearchFiltersUsers(t *testing.T) {
	t.Parallel()
	tf, _ := startApp(t, 0)
	require.True(t, tf.OutputContainsPlain("Bob Lee", 5*time.Second), "Users should load")

	tf.ResetOutput()
	require.NoError(t, tf.Search("jo"))

	err := tf.WaitForE(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), "1 user found")
	}, 3*time.Second, "Result count should appear after the quiet period")
	require.NoError(t, err)
	require.NotContains(t, tf.SnapshotPlain(), "Bob Lee", "Non-matching users should not be drawn")

	// Clearing brings everyone back
	tf.ResetOutput()
	require.NoError(t, tf.Clear())
	require.True(t, tf.OutputContainsPlain("Bob Lee", 3*time.Second), "Bob Lee should reappear after clearing")
}

func TestNoMatchesShowsEmptyState(t *testing.T) {
	t.Parallel()
	tf, _ := startApp(t, 0)
	require.True(t, tf.OutputContainsPlain("Bob Lee", 5*time.Second), "Users should load")

	require.NoError(t, tf.Search("zzz"))
	require.True(t, tf.OutputContainsPlain("No users found matching your search.", 3*time.Second),
		"Empty state should be shown")
	require.True(t, tf.SeePlain("0 users found"))
}

func TestFailureThenRetry(t *testing.T) {
	t.Parallel()
	tf, server := startApp(t, 1)

	require.True(t, tf.OutputContainsPlain("Server responded with status 500", 5*time.Second),
		"Failure message should be shown")

	tf.ResetOutput()
	require.NoError(t, tf.Retry())
	require.True(t, tf.OutputContainsPlain("John Doe", 5*time.Second), "Retry should load users")
	require.Equal(t, 2, server.Hits())
}

func TestPagerShowsResults(t *testing.T) {
	t.Parallel()
	tf, _ := startApp(t, 0)
	require.True(t, tf.OutputContainsPlain("Bob Lee", 5*time.Second), "Users should load")

	tf.ResetOutput()
	require.NoError(t, tf.OpenPager())
	require.True(t, tf.OutputContainsPlain("john@x.com", 3*time.Second), "Pager should show results")

	// Leave the pager, then the app
	tf.ResetOutput()
	require.NoError(t, tf.SendKeys(KeyQuit))
	require.True(t, tf.OutputContainsPlain("User Explorer", 3*time.Second), "App should redraw after the pager")
}

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf, _ := startApp(t, 0)

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	require.NoError(t, tf.Quit())

	select {
	case err := <-done:
		require.NoError(t, err, "Process should exit cleanly")
	case <-time.After(1500 * time.Millisecond):
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		t.Fatal("Application did not exit after q")
	}
}

func TestFirstRunWritesConfig(t *testing.T) {
	t.Parallel()
	tf, _ := startApp(t, 0)
	require.True(t, tf.OutputContainsPlain("Bob Lee", 5*time.Second), "Users should load")

	data, err := os.ReadFile(filepath.Join(tf.workspace, "config.toml"))
	require.NoError(t, err, "Config should be written on first run")
	require.Contains(t, string(data), "debounce_delay")
}

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	out, _ := exec.Command(binPath, "--help").CombinedOutput()
	output := string(out)
	require.Contains(t, output, "--endpoint")
	require.Contains(t, output, "--debounce")
	require.Contains(t, output, "--config")
}
