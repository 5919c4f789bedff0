package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftwell/sectiondiff/internal/store"
)

// diffInto runs the diff command so the database holds the history between
// the two documents.
func diffInto(t *testing.T, dbPath, oldPath, newPath string) {
	t.Helper()
	cmd := NewDiffCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{oldPath, newPath, "--db", dbPath, "--draft", "1", "--doc", "1"})
	require.NoError(t, cmd.Execute())
}

func TestReplayMissingDatabaseFlag(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewReplayCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"base.md", "--draft", "1"}) // Missing --db

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestReplayReconstructsDocument(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "changes.db")
	oldContent := "Intro.\n\n## Alpha\n\nOld body.\n\n## Beta\n\nBeta body.\n"
	newContent := "Intro.\n\n## Alpha\n\nNew body.\n\n## Beta\n\nBeta body.\n"
	oldPath := writeDoc(t, tmpDir, "old.md", oldContent)
	newPath := writeDoc(t, tmpDir, "new.md", newContent)
	diffInto(t, dbPath, oldPath, newPath)

	buf := &bytes.Buffer{}
	cmd := NewReplayCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{oldPath, "--db", dbPath, "--draft", "1"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, newContent+"\n", buf.String())
}

func TestReplayEmptyHistoryReturnsBase(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "changes.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	st.Close()

	baseContent := "## Alpha\n\nBody.\n"
	basePath := writeDoc(t, tmpDir, "base.md", baseContent)

	buf := &bytes.Buffer{}
	cmd := NewReplayCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{basePath, "--db", dbPath, "--draft", "1"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, baseContent+"\n", buf.String())
}

func TestReplayJSONReportsDeterministic(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "changes.db")
	oldPath := writeDoc(t, tmpDir, "old.md", "## Alpha\n\nOld.\n")
	newPath := writeDoc(t, tmpDir, "new.md", "## Alpha\n\nNew.\n\n## Beta\n\nFresh.\n")
	diffInto(t, dbPath, oldPath, newPath)

	buf := &bytes.Buffer{}
	cmd := NewReplayCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{oldPath, "--db", dbPath, "--draft", "1"})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["deterministic"])
	assert.Equal(t, float64(2), data["change_count"])
	assert.Equal(t, "## Alpha\n\nNew.\n\n## Beta\n\nFresh.\n", data["document"])
}

func TestReplayFailsWhenHistoryDoesNotFitBase(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "changes.db")
	oldPath := writeDoc(t, tmpDir, "old.md", "## Alpha\n\nOld.\n")
	newPath := writeDoc(t, tmpDir, "new.md", "## Alpha\n\nNew.\n")
	diffInto(t, dbPath, oldPath, newPath)

	// A base without the recorded section cannot absorb the update.
	strangerPath := writeDoc(t, tmpDir, "stranger.md", "## Omega\n\nUnrelated.\n")

	buf := &bytes.Buffer{}
	cmd := NewReplayCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{strangerPath, "--db", dbPath, "--draft", "1"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "SECTION_NOT_FOUND")
}
