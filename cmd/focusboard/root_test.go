package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FOCUSBOARD_DB", filepath.Join(dir, "focusboard.db"))
	t.Setenv("FOCUSBOARD_SETTINGS", filepath.Join(dir, "settings.toml"))
	t.Setenv("FOCUSBOARD_LOG_LEVEL", "error")
	t.Setenv("FOCUSBOARD_TZ", "UTC")
	t.Setenv("FOCUSBOARD_AUDIO", "false")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func TestClearHistoryRequiresConfirmation(t *testing.T) {
	setTestEnv(t)
	_, err := runCLI(t, "clear-history")
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("expected confirmation error, got %v", err)
	}

	out, err := runCLI(t, "clear-history", "--yes")
	if err != nil {
		t.Fatalf("clear-history --yes: %v", err)
	}
	if !strings.Contains(out, "cleared 0 submission(s)") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestStateListsSeededDocuments(t *testing.T) {
	setTestEnv(t)
	out, err := runCLI(t, "state", "--prefix", "task")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if !strings.HasPrefix(out, "tasks ") || strings.Contains(out, "habits") {
		t.Fatalf("unexpected state listing: %q", out)
	}
}

func TestHistoryOnEmptyStore(t *testing.T) {
	setTestEnv(t)
	out, err := runCLI(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "no sessions recorded") {
		t.Fatalf("unexpected output: %q", out)
	}

	out, err = runCLI(t, "history", "--json")
	if err != nil {
		t.Fatalf("history --json: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected empty payload list, got %q", out)
	}
}

func TestShareWithEmptyHistoryIsNoOp(t *testing.T) {
	setTestEnv(t)
	if _, err := runCLI(t, "share"); err != nil {
		t.Fatalf("share with empty history should be a no-op, got %v", err)
	}
}

func TestRejectsUnknownArgs(t *testing.T) {
	setTestEnv(t)
	if _, err := runCLI(t, "history", "extra"); err == nil {
		t.Fatal("expected error for unexpected argument")
	}
}
